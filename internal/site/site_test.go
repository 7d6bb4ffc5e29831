package site_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/site"
)

type fixture struct {
	authoring pages.Service
	site      site.Service
	guides    *pages.Folder
	draft     *pages.Page
}

func newFixture(t *testing.T, opts ...site.Option) fixture {
	t.Helper()
	ctx := context.Background()
	authoring := pages.NewService(pages.NewMemoryStore())

	guides, err := authoring.CreateFolder(ctx, pages.CreateFolderRequest{Name: "Guides"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	api, err := authoring.CreateFolder(ctx, pages.CreateFolderRequest{Name: "API"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	publish := func(folder *pages.Folder, title, content string) {
		page, err := authoring.CreatePage(ctx, pages.CreatePageRequest{Title: title, FolderID: folder.ID, Content: content})
		if err != nil {
			t.Fatalf("create page %q: %v", title, err)
		}
		if _, err := authoring.SetPublished(ctx, page.ID, true); err != nil {
			t.Fatalf("publish %q: %v", title, err)
		}
	}
	publish(guides, "Intro", "# Welcome\n\nHello *reader*.\n\n## Next steps")
	publish(guides, "Install", "install it")
	publish(api, "Overview", "the api")

	draft, err := authoring.CreatePage(ctx, pages.CreatePageRequest{Title: "Secret", FolderID: guides.ID, Content: "wip"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	return fixture{
		authoring: authoring,
		site:      site.NewService(authoring, markup.NewPipeline(nil, markup.PipelineConfig{}), opts...),
		guides:    guides,
		draft:     draft,
	}
}

func TestResolvePublishedPage(t *testing.T) {
	f := newFixture(t)

	doc, err := f.site.Resolve(context.Background(), "guides", "install")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if doc.Path != "/guides/install" || doc.HTML != "<p>install it</p>\n" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Prev == nil || doc.Prev.Path != "/guides/intro" {
		t.Fatalf("unexpected prev %+v", doc.Prev)
	}
	if doc.Next == nil || doc.Next.Path != "/api/overview" {
		t.Fatalf("unexpected next %+v", doc.Next)
	}
}

func TestResolveIncludesOutline(t *testing.T) {
	f := newFixture(t)

	doc, err := f.site.ResolvePath(context.Background(), "/guides/intro")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(doc.Headings) != 2 || doc.Headings[0].AnchorID != "welcome" || doc.Headings[1].AnchorID != "next-steps" {
		t.Fatalf("unexpected headings %+v", doc.Headings)
	}
}

type outcomes []site.Outcome

func (o *outcomes) ObserveResolve(outcome site.Outcome) { *o = append(*o, outcome) }

func TestResolveNotFound(t *testing.T) {
	var seen outcomes
	f := newFixture(t, site.WithResolveObserver(&seen))
	ctx := context.Background()

	cases := map[string]string{
		"draft page":     "/guides/secret",
		"unknown page":   "/guides/missing",
		"unknown folder": "/nope/intro",
		"wrong folder":   "/api/intro",
		"case mismatch":  "/Guides/intro",
		"single segment": "/guides",
		"extra segment":  "/guides/intro/more",
		"missing slash":  "guides/intro",
		"trailing slash": "/guides/intro/",
		"empty path":     "",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := f.site.ResolvePath(ctx, path)
			if doc != nil || !pages.IsNotFound(err) {
				t.Fatalf("expected NotFound for %q, got %+v, %v", path, doc, err)
			}
		})
	}
	for _, outcome := range seen {
		if outcome != site.OutcomeNotFound {
			t.Fatalf("expected only not_found outcomes, got %v", seen)
		}
	}
}

func TestResolveDraftBecomesVisibleAfterPublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.authoring.SetPublished(ctx, f.draft.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := f.site.Resolve(ctx, "guides", "secret"); err != nil {
		t.Fatalf("expected published page to resolve, got %v", err)
	}
	if _, err := f.authoring.SetPublished(ctx, f.draft.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, err := f.site.Resolve(ctx, "guides", "secret"); !pages.IsNotFound(err) {
		t.Fatalf("expected unpublished page to be hidden, got %v", err)
	}
}

type failingReader struct{}

var errDown = errors.New("store down")

func (failingReader) ListFolders(context.Context) ([]*pages.Folder, error) { return nil, errDown }

func (failingReader) ListPages(context.Context, pages.PageFilter) ([]*pages.Page, error) {
	return nil, errDown
}

func TestResolveStoreFailureIsDistinct(t *testing.T) {
	var seen outcomes
	svc := site.NewService(failingReader{}, nil, site.WithResolveObserver(&seen))

	_, err := svc.Resolve(context.Background(), "guides", "intro")
	if !pages.IsStoreFailure(err) || pages.IsNotFound(err) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if len(seen) != 1 || seen[0] != site.OutcomeError {
		t.Fatalf("expected error outcome, got %v", seen)
	}
}

func TestPreviewDevices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[site.Device]int{"": 1280, site.DeviceDesktop: 1280, site.DeviceTablet: 768, "Mobile": 375}
	for device, width := range cases {
		preview, err := f.site.Preview(ctx, "## Draft *idea*", device)
		if err != nil {
			t.Fatalf("preview %q: %v", device, err)
		}
		if preview.Width != width || preview.HTML != "<h2 id=\"draft-idea\">Draft <em>idea</em></h2>\n" {
			t.Fatalf("unexpected preview for %q: %+v", device, preview)
		}
	}

	_, err := f.site.Preview(ctx, "x", "watch")
	if !pages.IsValidationFailure(err) || !errors.Is(err, site.ErrUnknownDevice) {
		t.Fatalf("expected validation failure for unknown device, got %v", err)
	}
}

func TestActiveHeadingUsesLeadMargin(t *testing.T) {
	svc := site.NewService(nil, nil, site.WithLeadMargin(100))
	headings := []markup.Heading{{AnchorID: "a", Level: 1}, {AnchorID: "b", Level: 2}}

	if got, ok := svc.ActiveHeading(headings, []float64{0, 500}, 600); !ok || got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if _, ok := svc.ActiveHeading(headings, []float64{0, 500}, -10); ok {
		t.Fatal("expected no active heading above the document")
	}
}

func TestSplitPath(t *testing.T) {
	folder, page, ok := site.SplitPath("/guides/intro")
	if !ok || folder != "guides" || page != "intro" {
		t.Fatalf("unexpected split %q %q %v", folder, page, ok)
	}
}
