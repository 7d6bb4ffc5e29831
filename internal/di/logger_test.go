package di_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-docs/internal/di"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/logging/console"
	"github.com/goliatone/go-docs/internal/logging/gologger"
	"github.com/goliatone/go-docs/internal/runtimeconfig"
)

func TestNewLoggerProviderConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := runtimeconfig.DefaultConfig().Logging
	cfg.Level = "warn"

	provider, err := di.NewLoggerProvider(cfg, &buf)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, ok := provider.(*console.Provider); !ok {
		t.Fatalf("expected console provider, got %T", provider)
	}

	logger := logging.ModuleLogger(provider, logging.SiteModule)
	logger.Info("site.resolve.success")
	logger.Warn("site.resolve.slow", "path", "/guides/intro")

	out := buf.String()
	if strings.Contains(out, "site.resolve.success") {
		t.Fatalf("info entry should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "site.resolve.slow") || !strings.Contains(out, logging.SiteModule) {
		t.Fatalf("expected warn entry with module, got %q", out)
	}
}

func TestNewLoggerProviderGoLogger(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig().Logging
	cfg.Provider = "gologger"
	cfg.Format = "json"

	provider, err := di.NewLoggerProvider(cfg, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, ok := provider.(*gologger.Provider); !ok {
		t.Fatalf("expected gologger provider, got %T", provider)
	}
}

func TestNewLoggerProviderUnknown(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig().Logging
	cfg.Provider = "syslog"

	if _, err := di.NewLoggerProvider(cfg, nil); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}
