package docs

import "github.com/goliatone/go-docs/internal/runtimeconfig"

var (
	ErrSiteNameRequired           = runtimeconfig.ErrSiteNameRequired
	ErrLeadMarginInvalid          = runtimeconfig.ErrLeadMarginInvalid
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrHTTPAddrRequired           = runtimeconfig.ErrHTTPAddrRequired
	ErrHTTPPrefixInvalid          = runtimeconfig.ErrHTTPPrefixInvalid
	ErrRateLimitInvalid           = runtimeconfig.ErrRateLimitInvalid
	ErrMCPTransportUnknown        = runtimeconfig.ErrMCPTransportUnknown
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	SiteConfig        = runtimeconfig.SiteConfig
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	NavigationConfig  = runtimeconfig.NavigationConfig
	MarkdownConfig    = runtimeconfig.MarkdownConfig
	GeneratorConfig   = runtimeconfig.GeneratorConfig
	CommandsConfig    = runtimeconfig.CommandsConfig
	HTTPConfig        = runtimeconfig.HTTPConfig
	MCPConfig         = runtimeconfig.MCPConfig
	MetricsConfig     = runtimeconfig.MetricsConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	LoggingFileConfig = runtimeconfig.LoggingFileConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
