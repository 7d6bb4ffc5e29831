package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-docs/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-docs/pkg/testsupport"
)

func TestRunImportReportsChanges(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{
		"guides/intro.md":  "# Intro\n\nHello.",
		"guides/setup.md":  "---\ntitle: Setup\npublished: true\n---\nSteps.",
		"guides/notes.txt": "skipped",
	})

	var out bytes.Buffer
	if err := runImport([]string{"-content-dir", root, "-pattern", "*.md"}, &out); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "folders: 1 created") || !strings.Contains(got, "pages: 2 created") {
		t.Fatalf("unexpected summary %q", got)
	}
	if !strings.Contains(got, "create page setup.md") && !strings.Contains(got, "create page guides/setup.md") {
		t.Fatalf("expected page change lines, got %q", got)
	}
}

func TestRunImportDryRun(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{"guides/intro.md": "# Intro"})

	var out bytes.Buffer
	if err := runImport([]string{"-content-dir", root, "-dry-run"}, &out); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	if !strings.Contains(out.String(), "dry run: nothing was written") {
		t.Fatalf("expected dry run notice, got %q", out.String())
	}
}

func TestRunImportMissingDirectory(t *testing.T) {
	var out bytes.Buffer
	err := runImport([]string{"-content-dir", t.TempDir() + "/missing"}, &out)
	if err == nil || !strings.Contains(err.Error(), "execute import command") {
		t.Fatalf("expected import failure, got %v", err)
	}
}

func TestRunImportBootstrapFailure(t *testing.T) {
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return nil, errors.New("boom")
	}

	err := runImport(nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}
