package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrSiteNameRequired           = errors.New("docs config: site name is required")
	ErrLeadMarginInvalid          = errors.New("docs config: lead margin must be zero or positive")
	ErrStorageDriverUnknown       = errors.New("docs config: storage driver is invalid")
	ErrStorageDSNRequired         = errors.New("docs config: storage dsn is required for sql drivers")
	ErrCacheTTLInvalid            = errors.New("docs config: cache ttl must be positive when cache is enabled")
	ErrMarkdownContentDirRequired = errors.New("docs config: markdown content directory is required when markdown is enabled")
	ErrGeneratorOutputDirRequired = errors.New("docs config: generator output directory is required when generator is enabled")
	ErrHTTPAddrRequired           = errors.New("docs config: http address is required")
	ErrHTTPPrefixInvalid          = errors.New("docs config: http prefixes must start with / and differ")
	ErrRateLimitInvalid           = errors.New("docs config: rate limit must be zero or positive")
	ErrMCPTransportUnknown        = errors.New("docs config: mcp transport is invalid")
	ErrLoggingProviderUnknown     = errors.New("docs config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("docs config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("docs config: logging format is invalid")
)

// Config aggregates every runtime setting of the documentation module.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Storage    StorageConfig    `yaml:"storage"`
	Cache      CacheConfig      `yaml:"cache"`
	Navigation NavigationConfig `yaml:"navigation"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Commands   CommandsConfig   `yaml:"commands"`
	HTTP       HTTPConfig       `yaml:"http"`
	MCP        MCPConfig        `yaml:"mcp"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	// LeadMargin is how far above a heading the reader may be while it still
	// counts as active.
	LeadMargin float64 `yaml:"lead_margin"`
}

// StorageConfig selects the record store.
type StorageConfig struct {
	// Driver is memory, sqlite or postgres.
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	// Enabled wraps the bun repositories in go-repository-cache.
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
	// RenderTTL keeps rendered documents; zero disables the render cache.
	RenderTTL     time.Duration `yaml:"render_ttl"`
	RenderCleanup time.Duration `yaml:"render_cleanup"`
}

// NavigationConfig tunes sidebar and landing derivation.
type NavigationConfig struct {
	FirstFolderOpen bool `yaml:"first_folder_open"`
	LandingLinks    int  `yaml:"landing_links"`
}

// MarkdownConfig captures directory import behaviour.
type MarkdownConfig struct {
	Enabled         bool     `yaml:"enabled"`
	ContentDir      string   `yaml:"content_dir"`
	Patterns        []string `yaml:"patterns"`
	Recursive       bool     `yaml:"recursive"`
	PublishOnImport bool     `yaml:"publish_on_import"`
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool   `yaml:"enabled"`
	OutputDir       string `yaml:"output_dir"`
	BaseURL         string `yaml:"base_url"`
	Incremental     bool   `yaml:"incremental"`
	GenerateSitemap bool   `yaml:"generate_sitemap"`
	GenerateRobots  bool   `yaml:"generate_robots"`
	Workers         int    `yaml:"workers"`
	// Schedule is a cron expression for periodic rebuilds when commands are
	// registered with a cron scheduler.
	Schedule        string `yaml:"schedule"`
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool `yaml:"enabled"`
	AutoRegisterDispatcher bool `yaml:"auto_register_dispatcher"`
	MaxRetries             int  `yaml:"max_retries"`
}

// HTTPConfig configures the admin and public APIs.
type HTTPConfig struct {
	Addr         string `yaml:"addr"`
	AdminPrefix  string `yaml:"admin_prefix"`
	PublicPrefix string `yaml:"public_prefix"`
	MetricsPath  string `yaml:"metrics_path"`
	// RateLimit is requests per second on the public API; zero disables it.
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MCPConfig configures the agent tool server.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	// Transport is stdio or http.
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
}

// MetricsConfig toggles the Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string            `yaml:"provider"`
	Level     string            `yaml:"level"`
	Format    string            `yaml:"format"`
	AddSource bool              `yaml:"add_source"`
	Focus     []string          `yaml:"focus"`
	File      LoggingFileConfig `yaml:"file"`
}

// LoggingFileConfig mirrors the rotating file sink. An empty path disables it.
type LoggingFileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name:       "Documentation Hub",
			LeadMargin: 100,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Cache: CacheConfig{
			DefaultTTL:    time.Minute,
			RenderTTL:     10 * time.Minute,
			RenderCleanup: 20 * time.Minute,
		},
		Navigation: NavigationConfig{
			FirstFolderOpen: true,
			LandingLinks:    3,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Patterns:   []string{"*.md", "*.html"},
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			GenerateSitemap: true,
			GenerateRobots:  true,
		},
		Commands: CommandsConfig{
			Enabled: true,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			AdminPrefix:     "/admin/api",
			PublicPrefix:    "/api",
			MetricsPath:     "/metrics",
			RateLimit:       20,
			RateBurst:       40,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		MCP: MCPConfig{
			Name:      "go-docs",
			Version:   "0.1.0",
			Transport: "stdio",
			Addr:      ":8090",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "docs",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load reads a YAML file over DefaultConfig and validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("docs config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("docs config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Name) == "" {
		return ErrSiteNameRequired
	}
	if cfg.Site.LeadMargin < 0 {
		return ErrLeadMarginInvalid
	}

	switch driver := normalize(cfg.Storage.Driver); driver {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Markdown.Enabled && strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	if cfg.Generator.Enabled && strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	admin, public := strings.TrimRight(cfg.HTTP.AdminPrefix, "/"), strings.TrimRight(cfg.HTTP.PublicPrefix, "/")
	if !strings.HasPrefix(cfg.HTTP.AdminPrefix, "/") || !strings.HasPrefix(cfg.HTTP.PublicPrefix, "/") || admin == public {
		return ErrHTTPPrefixInvalid
	}
	if cfg.HTTP.RateLimit < 0 || cfg.HTTP.RateBurst < 0 {
		return ErrRateLimitInvalid
	}

	switch transport := normalize(cfg.MCP.Transport); transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("%w: %s", ErrMCPTransportUnknown, cfg.MCP.Transport)
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
