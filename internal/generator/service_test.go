package generator_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-docs/internal/generator"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/settings"
)

type fixture struct {
	authoring pages.Service
	writer    *generator.MemoryWriter
	intro     *pages.Page
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	stamp := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	authoring := pages.NewService(pages.NewMemoryStore(), pages.WithClock(func() time.Time { return stamp }))

	guides, err := authoring.CreateFolder(ctx, pages.CreateFolderRequest{Name: "Guides", Description: "Start here"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	create := func(title, content string, publish bool) *pages.Page {
		page, err := authoring.CreatePage(ctx, pages.CreatePageRequest{Title: title, Content: content, FolderID: guides.ID, IsPublished: publish})
		if err != nil {
			t.Fatalf("create page %q: %v", title, err)
		}
		return page
	}
	intro := create("Intro", "# Welcome\n\nHello *reader*.\n\n## Next steps", true)
	create("Install", "Run **it**.", true)
	create("Secret", "wip", false)

	return fixture{authoring: authoring, writer: generator.NewMemoryWriter(), intro: intro}
}

func (f fixture) service(cfg generator.Config, opts ...generator.Option) generator.Service {
	deps := generator.Dependencies{
		Pages:    f.authoring,
		Pipeline: markup.NewPipeline(nil, markup.PipelineConfig{}),
		Writer:   f.writer,
	}
	opts = append(opts, generator.WithClock(func() time.Time { return time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC) }))
	return generator.NewService(cfg, deps, opts...)
}

func (f fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := f.writer.ReadFile(context.Background(), name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestBuildWritesPublishedSite(t *testing.T) {
	f := newFixture(t)
	svc := f.service(generator.Config{BaseURL: "https://docs.test/", SiteName: "Docs", GenerateSitemap: true, GenerateRobots: true, Workers: 2})

	result, err := svc.Build(context.Background(), generator.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 2 || result.PagesSkipped != 0 {
		t.Fatalf("unexpected counts %+v", result)
	}

	want := []string{
		"guides/install/index.html",
		"guides/intro/index.html",
		"index.html",
		"manifest.json",
		"robots.txt",
		"sitemap.xml",
	}
	if got := f.writer.Paths(); !slices.Equal(got, want) {
		t.Fatalf("unexpected outputs\nwant %v\ngot  %v", want, got)
	}

	intro := f.read(t, "guides/intro/index.html")
	for _, fragment := range []string{
		`<h1 id="welcome">Welcome</h1>`,
		`<em>reader</em>`,
		`<a href="#next-steps">Next steps</a>`,
		`<a rel="next" href="/guides/install/">Install</a>`,
		`<link rel="canonical" href="https://docs.test/guides/intro/">`,
		`aria-current="page"`,
	} {
		if !strings.Contains(intro, fragment) {
			t.Fatalf("intro page missing %q\n%s", fragment, intro)
		}
	}
	if strings.Contains(intro, "Secret") {
		t.Fatalf("draft leaked into sidebar")
	}

	landing := f.read(t, "index.html")
	if !strings.Contains(landing, "Start here") || !strings.Contains(landing, "2 pages") {
		t.Fatalf("unexpected landing page\n%s", landing)
	}

	sitemap := f.read(t, "sitemap.xml")
	if !strings.Contains(sitemap, "<loc>https://docs.test/guides/intro/</loc>") {
		t.Fatalf("sitemap missing intro\n%s", sitemap)
	}
	if !strings.Contains(f.read(t, "robots.txt"), "Sitemap: https://docs.test/sitemap.xml") {
		t.Fatalf("robots missing sitemap reference")
	}
	if !strings.Contains(f.read(t, "manifest.json"), `"path": "guides/intro/index.html"`) {
		t.Fatalf("manifest missing page entry")
	}
}

func TestBuildIncrementalSkipsUnchangedPages(t *testing.T) {
	f := newFixture(t)
	svc := f.service(generator.Config{Incremental: true})
	ctx := context.Background()

	if _, err := svc.Build(ctx, generator.BuildOptions{}); err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := svc.Build(ctx, generator.BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.PagesBuilt != 0 || second.PagesSkipped != 2 {
		t.Fatalf("expected every page skipped, got %+v", second)
	}

	content := "# Welcome back"
	if _, err := f.authoring.UpdatePage(ctx, pages.UpdatePageRequest{ID: f.intro.ID, Content: &content}); err != nil {
		t.Fatalf("update: %v", err)
	}
	third, err := svc.Build(ctx, generator.BuildOptions{})
	if err != nil {
		t.Fatalf("third build: %v", err)
	}
	if third.PagesBuilt != 1 || third.PagesSkipped != 1 {
		t.Fatalf("expected one rebuilt page, got %+v", third)
	}
	if !strings.Contains(f.read(t, "guides/intro/index.html"), `id="welcome-back"`) {
		t.Fatalf("intro page not rewritten")
	}
}

func TestBuildRemovesStaleOutputs(t *testing.T) {
	f := newFixture(t)
	svc := f.service(generator.Config{})
	ctx := context.Background()

	if _, err := svc.Build(ctx, generator.BuildOptions{}); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := f.authoring.SetPublished(ctx, f.intro.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	result, err := svc.Build(ctx, generator.BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !slices.Equal(result.Removed, []string{"guides/intro/index.html"}) {
		t.Fatalf("unexpected removals %v", result.Removed)
	}
	if _, err := f.writer.ReadFile(ctx, "guides/intro/index.html"); !errors.Is(err, generator.ErrArtifactMissing) {
		t.Fatalf("expected unpublished page removed, got %v", err)
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	f := newFixture(t)
	result, err := f.service(generator.Config{GenerateSitemap: true}).Build(context.Background(), generator.BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !result.DryRun || result.PagesBuilt != 2 || len(result.Files) != 4 {
		t.Fatalf("unexpected plan %+v", result)
	}
	if paths := f.writer.Paths(); len(paths) != 0 {
		t.Fatalf("dry run wrote %v", paths)
	}
}

func TestCleanRemovesManifestedFiles(t *testing.T) {
	f := newFixture(t)
	svc := f.service(generator.Config{GenerateRobots: true})
	ctx := context.Background()

	if _, err := svc.Build(ctx, generator.BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := svc.Clean(ctx); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if paths := f.writer.Paths(); len(paths) != 0 {
		t.Fatalf("expected empty output, got %v", paths)
	}
}

func TestBuildUsesSiteSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteSettings := settings.NewService(settings.NewMemoryStore())
	current, err := siteSettings.Get(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	current.SiteName = "Acme Handbook"
	if _, err := siteSettings.Update(ctx, current); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	svc := generator.NewService(generator.Config{SiteName: "ignored"}, generator.Dependencies{
		Pages:    f.authoring,
		Pipeline: markup.NewPipeline(nil, markup.PipelineConfig{}),
		Writer:   f.writer,
		Settings: siteSettings,
	})
	if _, err := svc.Build(ctx, generator.BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(f.read(t, "index.html"), "<h1>Acme Handbook</h1>") {
		t.Fatalf("landing page does not use settings name")
	}
}

type recordingObserver struct {
	pages int
	err   error
	calls int
}

func (o *recordingObserver) ObserveBuild(pages int, _ time.Duration, err error) {
	o.pages, o.err = pages, err
	o.calls++
}

func TestBuildReportsToObserver(t *testing.T) {
	f := newFixture(t)
	observer := &recordingObserver{}
	if _, err := f.service(generator.Config{}, generator.WithBuildObserver(observer)).Build(context.Background(), generator.BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if observer.calls != 1 || observer.pages != 2 || observer.err != nil {
		t.Fatalf("unexpected observation %+v", observer)
	}
}

func TestBuildHonoursCancellation(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.service(generator.Config{}).Build(ctx, generator.BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDisabledService(t *testing.T) {
	svc := generator.NewDisabledService()
	if _, err := svc.Build(context.Background(), generator.BuildOptions{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if err := svc.Clean(context.Background()); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}
