package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/internal/di"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Options captures configuration for markdown CLI bootstraps.
type Options struct {
	ConfigPath     string
	ContentDir     string
	Patterns       []string
	Recursive      bool
	Publish        bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the docs module and the markdown logger.
type Module struct {
	Module *docs.Module
	Logger interfaces.Logger
}

// BuildModule constructs a docs module configured for markdown operations.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Markdown.Enabled = true
	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.Markdown.ContentDir = trimmed
	}
	if len(opts.Patterns) > 0 {
		cfg.Markdown.Patterns = opts.Patterns
	}
	cfg.Markdown.Recursive = cfg.Markdown.Recursive || opts.Recursive
	cfg.Markdown.PublishOnImport = cfg.Markdown.PublishOnImport || opts.Publish

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docs.Open(context.Background(), cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docs module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: module.Container().Logger(logging.MarkdownModule),
	}, nil
}

// LoadConfig returns the defaults when path is blank.
func LoadConfig(path string) (docs.Config, error) {
	if strings.TrimSpace(path) == "" {
		return docs.DefaultConfig(), nil
	}
	cfg, err := docs.LoadConfig(path)
	if err != nil {
		return docs.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
