package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("docs server: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs-server", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address (overrides http.addr)")
	contentDir := fs.String("import", "", "Import a markdown content directory before serving")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.HTTP.Addr = trimmed
	}

	module, err := docs.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()
	logger := module.Container().Logger(logging.RootModule)

	if dir := strings.TrimSpace(*contentDir); dir != "" {
		result, err := module.Import(ctx, docs.ImportOptions{Directory: dir})
		if err != nil {
			return fmt.Errorf("import %s: %w", dir, err)
		}
		logger.Info("docs.server.imported",
			"directory", dir,
			"folders_created", result.FoldersCreated,
			"pages_created", result.PagesCreated,
			"pages_updated", result.PagesUpdated,
		)
	}

	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTP.Addr, err)
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return serve(ctx, srv, listener, cfg.HTTP.ShutdownTimeout, logger)
}

func loadConfig(path string) (docs.Config, error) {
	if strings.TrimSpace(path) == "" {
		return docs.DefaultConfig(), nil
	}
	cfg, err := docs.LoadConfig(path)
	if err != nil {
		return docs.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// serve blocks until ctx is done or the server fails, then drains in-flight
// requests for at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, listener net.Listener, shutdownTimeout time.Duration, logger interfaces.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("docs.server.listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("docs.server.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
