package di

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-docs/internal/logging/console"
	"github.com/goliatone/go-docs/internal/logging/gologger"
	"github.com/goliatone/go-docs/internal/runtimeconfig"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// NewLoggerProvider builds the provider named by cfg. The console provider
// writes to out, or stdout when out is nil.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig, out io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("di: build gologger provider: %w", err)
		}
		return provider, nil
	case "", "console":
		level, _ := console.ParseLevel(cfg.Level)
		opts := console.Options{Writer: out, MinLevel: &level}
		if path := strings.TrimSpace(cfg.File.Path); path != "" {
			opts.File = &console.FileSink{
				Path:       path,
				MaxSizeMB:  cfg.File.MaxSizeMB,
				MaxBackups: cfg.File.MaxBackups,
				MaxAgeDays: cfg.File.MaxAgeDays,
				Compress:   cfg.File.Compress,
			}
		}
		return console.NewProvider(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	provider, err := NewLoggerProvider(c.Config.Logging, nil)
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	c.ownsProvider = true
	return nil
}
