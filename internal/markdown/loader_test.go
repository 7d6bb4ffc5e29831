package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("---\ntitle: Install\norder: 2\ndraft: true\n---\n# Install\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.Title != "Install" {
		t.Fatalf("expected title Install, got %q", meta.Title)
	}
	if meta.Order == nil || *meta.Order != 2 {
		t.Fatalf("expected order 2, got %v", meta.Order)
	}
	if meta.PublishState(true) {
		t.Fatalf("draft header must not publish")
	}
	if strings.TrimSpace(string(body)) != "# Install" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterWithoutHeader(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("plain text"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.Title != "" || string(body) != "plain text" {
		t.Fatalf("expected passthrough, got %+v %q", meta, body)
	}
	if !meta.PublishState(true) || meta.PublishState(false) {
		t.Fatalf("silent header must follow fallback")
	}
}

func TestLoaderGroupsFilesByTopLevelDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md":                 {Data: []byte("root file")},
		"guides/_folder.md":         {Data: []byte("---\ntitle: User Guides\norder: 1\n---\nHow to use it.")},
		"guides/install.md":         {Data: []byte("# Install")},
		"guides/intro.md":           {Data: []byte("# Intro")},
		"guides/logo.png":           {Data: []byte{0x89}},
		"guides/advanced/tuning.md": {Data: []byte("# Tuning")},
		"api/overview.html":         {Data: []byte("<h1>Overview</h1><p>Hello <strong>there</strong></p>")},
		".hidden/secret.md":         {Data: []byte("nope")},
	}

	folders, skipped, errs, err := NewLoader(fsys, LoaderConfig{}).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected file errors: %v", errs)
	}
	if skipped != 2 {
		t.Fatalf("expected root file and png skipped, got %d", skipped)
	}
	if len(folders) != 2 || folders[0].Dir != "api" || folders[1].Dir != "guides" {
		t.Fatalf("unexpected folders %+v", folders)
	}

	guides := folders[1]
	if guides.Meta.Title != "User Guides" || guides.Meta.Description != "How to use it." {
		t.Fatalf("unexpected folder meta %+v", guides.Meta)
	}
	if len(guides.Pages) != 2 {
		t.Fatalf("expected nested directory to be ignored, got %d pages", len(guides.Pages))
	}
	if guides.Pages[0].Stem() != "install" || guides.Pages[1].Stem() != "intro" {
		t.Fatalf("expected pages sorted by path, got %s, %s", guides.Pages[0].Path, guides.Pages[1].Path)
	}

	overview := folders[0].Pages[0]
	if !strings.Contains(overview.Body, "# Overview") || !strings.Contains(overview.Body, "**there**") {
		t.Fatalf("expected html converted to markup, got %q", overview.Body)
	}
}

func TestLoaderRecursiveFlattensNestedDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"guides/intro.md":           {Data: []byte("# Intro")},
		"guides/advanced/tuning.md": {Data: []byte("# Tuning")},
	}

	folders, _, _, err := NewLoader(fsys, LoaderConfig{Recursive: true, Patterns: []string{"*.md"}}).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(folders) != 1 || len(folders[0].Pages) != 2 {
		t.Fatalf("expected two pages in one folder, got %+v", folders)
	}
	if folders[0].Pages[0].Path != "guides/advanced/tuning.md" {
		t.Fatalf("unexpected order %s", folders[0].Pages[0].Path)
	}
}

func TestLoaderReportsMalformedFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"guides/broken.md": {Data: []byte("---\ntitle: [unclosed\n---\nbody")},
		"guides/ok.md":     {Data: []byte("fine")},
	}

	folders, _, errs, err := NewLoader(fsys, LoaderConfig{}).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(errs) != 1 || errs[0].Path != "guides/broken.md" {
		t.Fatalf("expected broken.md reported, got %v", errs)
	}
	if len(folders[0].Pages) != 1 {
		t.Fatalf("expected the valid page to load")
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewLoader(fstest.MapFS{"a/b.md": {Data: []byte("x")}}, LoaderConfig{}).Load(ctx)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}
