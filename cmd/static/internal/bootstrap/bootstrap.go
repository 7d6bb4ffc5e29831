package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/internal/di"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Options captures configuration for the static CLI bootstrap.
type Options struct {
	ConfigPath     string
	OutputDir      string
	BaseURL        string
	LoggerProvider interfaces.LoggerProvider
}

// Resources wraps the docs module built for generator runs.
type Resources struct {
	Module *docs.Module
}

// BuildModule constructs a docs module with the generator enabled.
func BuildModule(opts Options) (*Resources, error) {
	cfg := docs.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := docs.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Generator.Enabled = true
	cfg.Commands.Enabled = true
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Generator.BaseURL = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docs.Open(context.Background(), cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docs module: %w", err)
	}
	return &Resources{Module: module}, nil
}
