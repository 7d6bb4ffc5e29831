package console_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/logging/console"
)

var fixedNow = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func newProvider(buf *bytes.Buffer, level console.Level) *console.Provider {
	return console.NewProvider(console.Options{
		Writer:   buf,
		TimeFunc: func() time.Time { return fixedNow },
		MinLevel: &level,
	})
}

func TestLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	provider := newProvider(&buf, console.LevelDebug)

	logger := logging.ModuleLogger(provider, logging.PagesModule)
	ctx := logging.ContextWithRequest(context.Background(), "req-42", "")
	pageID := uuid.MustParse("0b7a3c2e-4a1f-4f51-9f0e-3c1e7d2a9b10")

	logger.WithContext(ctx).Info("pages.create.success", "page_id", pageID, "title", "Getting started")

	want := "2025-06-02T09:30:00Z INFO pages.create.success logger=docs.pages module=docs.pages " +
		"page_id=0b7a3c2e-4a1f-4f51-9f0e-3c1e7d2a9b10 request_id=req-42 title=\"Getting started\""
	if got := strings.TrimSpace(buf.String()); got != want {
		t.Fatalf("unexpected entry\nwant: %s\n got: %s", want, got)
	}
}

func TestLoggerRespectsMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newProvider(&buf, console.LevelWarn).GetLogger("docs")

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "WARN shown") {
		t.Fatalf("expected only the warning, got %q", buf.String())
	}
}

func TestLoggerKeepsUnpairedArguments(t *testing.T) {
	var buf bytes.Buffer
	logger := newProvider(&buf, console.LevelTrace).GetLogger("docs")

	logger.Trace("odd", "count", 3, "dangling")

	got := buf.String()
	if !strings.Contains(got, "count=3") || !strings.Contains(got, "arg_1=dangling") {
		t.Fatalf("expected paired and positional fields, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		"":        console.LevelInfo,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to report false")
	}
}

func TestFileSinkMirrorsOutput(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "docs.log")
	level := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return fixedNow },
		MinLevel: &level,
		File:     &console.FileSink{Path: path, MaxSizeMB: 1},
	})

	provider.GetLogger("docs.site").Info("site.resolve", "path", "/guides/intro")
	if err := provider.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if string(data) != buf.String() {
		t.Fatalf("expected file and writer to match\nfile: %q\nbuf:  %q", data, buf.String())
	}
}
