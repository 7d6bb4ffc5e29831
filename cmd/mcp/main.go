package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/internal/di"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/runtimeconfig"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("docs mcp: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs-mcp", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	transport := fs.String("transport", "", "stdio or http (overrides mcp.transport)")
	addr := fs.String("addr", "", "Listen address for the http transport")
	contentDir := fs.String("import", "", "Import a markdown content directory before serving")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := docs.DefaultConfig()
	if path := strings.TrimSpace(*configPath); path != "" {
		loaded, err := docs.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if trimmed := strings.TrimSpace(*transport); trimmed != "" {
		cfg.MCP.Transport = trimmed
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.MCP.Addr = trimmed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// stdout carries the stdio protocol, so logs always go to stderr
	provider, err := di.NewLoggerProvider(runtimeconfig.LoggingConfig{
		Provider: "console",
		Level:    cfg.Logging.Level,
		File:     cfg.Logging.File,
	}, os.Stderr)
	if err != nil {
		return err
	}

	module, err := docs.Open(ctx, cfg, di.WithLoggerProvider(provider))
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	if dir := strings.TrimSpace(*contentDir); dir != "" {
		if _, err := module.Import(ctx, docs.ImportOptions{Directory: dir}); err != nil {
			return fmt.Errorf("import %s: %w", dir, err)
		}
	}

	module.Container().Logger(logging.MCPModule).Info("docs.mcp.starting",
		"transport", cfg.MCP.Transport,
		"addr", cfg.MCP.Addr,
	)
	return module.ServeMCP(ctx)
}
