package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/pkg/testsupport"
	"github.com/google/uuid"
)

func newBunService(t *testing.T) (pages.Service, *pages.BunStore) {
	t.Helper()
	db := testsupport.NewBunDB(t, (*pages.Folder)(nil), (*pages.Page)(nil))
	store := pages.NewBunStore(db)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc := pages.NewService(store, pages.WithClock(func() time.Time {
		tick++
		return clock.Add(time.Duration(tick) * time.Second)
	}))
	return svc, store
}

func TestBunStoreAuthoringRoundTrip(t *testing.T) {
	svc, store := newBunService(t)
	ctx := context.Background()

	guides, err := svc.CreateFolder(ctx, pages.CreateFolderRequest{Name: "Guides", Description: "How-to"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := svc.CreateFolder(ctx, pages.CreateFolderRequest{Name: "guides"}); !errors.Is(err, pages.ErrSlugTaken) {
		t.Fatalf("expected duplicate folder slug to be rejected, got %v", err)
	}

	intro, err := svc.CreatePage(ctx, pages.CreatePageRequest{Title: "Intro", FolderID: guides.ID, Content: "# Intro"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := svc.CreatePage(ctx, pages.CreatePageRequest{Title: "Setup", FolderID: guides.ID, IsPublished: true}); err != nil {
		t.Fatalf("create second page: %v", err)
	}

	published, err := store.ListPages(ctx, pages.Published())
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "setup" {
		t.Fatalf("expected only setup to be published, got %+v", published)
	}

	if _, err := svc.SetPublished(ctx, intro.ID, true); err != nil {
		t.Fatalf("publish intro: %v", err)
	}
	inFolder, err := store.ListPages(ctx, pages.Published().InFolder(guides.ID))
	if err != nil {
		t.Fatalf("list folder pages: %v", err)
	}
	if len(inFolder) != 2 || inFolder[0].Slug != "intro" || inFolder[1].Slug != "setup" {
		t.Fatalf("expected intro then setup ordered by sort order, got %+v", inFolder)
	}

	if err := svc.DeleteFolder(ctx, guides.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}
	remaining, err := store.ListPages(ctx, pages.PageFilter{})
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected folder delete to cascade, got %d pages", len(remaining))
	}
}

func TestBunStoreGetUnknownIsNotFound(t *testing.T) {
	svc, _ := newBunService(t)

	_, err := svc.GetPage(context.Background(), uuid.New())
	if !pages.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
