package main

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	markdowncmd "github.com/goliatone/go-docs/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-docs/internal/commands/static"
	"github.com/goliatone/go-docs/internal/generator"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/pkg/testsupport"
)

type stubGenerateHandler struct {
	calls []staticcmd.GenerateCommand
	err   error
}

func (s *stubGenerateHandler) Execute(_ context.Context, msg staticcmd.GenerateCommand) error {
	s.calls = append(s.calls, msg)
	if s.err != nil {
		return s.err
	}
	if msg.Result != nil {
		msg.Result(&generator.BuildResult{
			PagesBuilt: 1,
			DryRun:     msg.DryRun,
			Files:      []generator.ManifestFile{{Path: "guides/intro/index.html"}},
		})
	}
	return nil
}

type stubImportHandler struct {
	last  markdowncmd.ImportCommand
	calls int
}

func (s *stubImportHandler) Execute(_ context.Context, msg markdowncmd.ImportCommand) error {
	s.calls++
	s.last = msg
	if msg.Result != nil {
		msg.Result(&markdown.Result{FoldersCreated: 1, PagesCreated: 2})
	}
	return nil
}

func withStubModule(t *testing.T) (*stubGenerateHandler, *stubImportHandler) {
	t.Helper()
	original := moduleBuilder
	generate := &stubGenerateHandler{}
	importer := &stubImportHandler{}
	moduleBuilder = func(moduleOptions) (*moduleResources, error) {
		return &moduleResources{handlers: handlerSet{generate: generate, importer: importer}}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })
	return generate, importer
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOutput := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestRunBuild_UsesCommandHandler(t *testing.T) {
	generate, importer := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"build"}); err != nil {
		t.Fatalf("run build: %v", err)
	}
	if len(generate.calls) != 1 || generate.calls[0].DryRun || generate.calls[0].Clean {
		t.Fatalf("unexpected generate calls %+v", generate.calls)
	}
	if importer.calls != 0 {
		t.Fatalf("expected no import without -content, got %d", importer.calls)
	}
	out := buf.String()
	if !strings.Contains(out, "module=static operation=build summary pages_built=1") {
		t.Fatalf("expected build summary log, got %q", out)
	}
	if !strings.Contains(out, "file=guides/intro/index.html") {
		t.Fatalf("expected file log, got %q", out)
	}
}

func TestRunDiff_IsDryRun(t *testing.T) {
	generate, _ := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"diff"}); err != nil {
		t.Fatalf("run diff: %v", err)
	}
	if len(generate.calls) != 1 || !generate.calls[0].DryRun {
		t.Fatalf("expected a dry run, got %+v", generate.calls)
	}
	if !strings.Contains(buf.String(), "module=static operation=diff summary") {
		t.Fatalf("expected diff summary log, got %q", buf.String())
	}
}

func TestRunClean_SetsClean(t *testing.T) {
	generate, _ := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"clean"}); err != nil {
		t.Fatalf("run clean: %v", err)
	}
	if len(generate.calls) != 1 || !generate.calls[0].Clean {
		t.Fatalf("expected clean flag, got %+v", generate.calls)
	}
	if !strings.Contains(buf.String(), "module=static operation=clean") {
		t.Fatalf("expected clean log, got %q", buf.String())
	}
}

func TestRunBuild_ImportsContentFirst(t *testing.T) {
	generate, importer := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"build", "-content", "docs"}); err != nil {
		t.Fatalf("run build: %v", err)
	}
	if importer.calls != 1 || importer.last.Directory != "docs" || !importer.last.Publish {
		t.Fatalf("unexpected import %+v", importer.last)
	}
	if len(generate.calls) != 1 {
		t.Fatalf("expected one build after import, got %d", len(generate.calls))
	}
	if !strings.Contains(buf.String(), "operation=import folders_created=1 pages_created=2") {
		t.Fatalf("expected import log, got %q", buf.String())
	}
}

func TestRunHandlersPropagateErrors(t *testing.T) {
	generate, _ := withStubModule(t)
	generate.err = errors.New("boom")
	captureLogs(t)

	err := run([]string{"build"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected propagated error, got %v", err)
	}
}

func TestRun_ErrorsWhenHandlersMissing(t *testing.T) {
	original := moduleBuilder
	moduleBuilder = func(moduleOptions) (*moduleResources, error) {
		return &moduleResources{}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })

	err := run([]string{"build"})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run([]string{"unknown"})
	if err == nil || !strings.Contains(err.Error(), "unknown subcommand") {
		t.Fatalf("expected unknown subcommand error, got %v", err)
	}
}

func TestRun_NoArgs(t *testing.T) {
	err := run([]string{})
	if err == nil || !strings.Contains(err.Error(), "missing subcommand") {
		t.Fatalf("expected missing subcommand error, got %v", err)
	}
}

func TestRunBuild_WritesSiteToDisk(t *testing.T) {
	captureLogs(t)
	content := testsupport.WriteTree(t, map[string]string{
		"guides/intro.md": "# Intro\n\nHello.",
	})
	output := t.TempDir()

	if err := run([]string{"build", "-content", content, "-output", output, "-base-url", "https://docs.example.com"}); err != nil {
		t.Fatalf("run build: %v", err)
	}
	for _, rel := range []string{"index.html", "guides/intro/index.html", "sitemap.xml"} {
		if _, err := os.Stat(filepath.Join(output, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
}
