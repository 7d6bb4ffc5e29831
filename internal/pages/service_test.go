package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func newTestService(t *testing.T) (Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return NewService(store, WithClock(func() time.Time { return fixed })), store
}

func mustFolder(t *testing.T, svc Service, name string) *Folder {
	t.Helper()
	folder, err := svc.CreateFolder(context.Background(), CreateFolderRequest{Name: name})
	if err != nil {
		t.Fatalf("create folder %q: %v", name, err)
	}
	return folder
}

func TestCreateFolderDerivesSlugAndOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := mustFolder(t, svc, "Getting Started!")
	if first.Slug != "getting-started" {
		t.Fatalf("expected slug getting-started, got %q", first.Slug)
	}
	if first.SortOrder != 0 {
		t.Fatalf("expected first sort order 0, got %d", first.SortOrder)
	}

	second, err := svc.CreateFolder(ctx, CreateFolderRequest{Name: "API", Slug: "Reference Docs", Description: "  endpoints  "})
	if err != nil {
		t.Fatalf("create second folder: %v", err)
	}
	if second.Slug != "reference-docs" {
		t.Fatalf("expected explicit slug to be normalised, got %q", second.Slug)
	}
	if second.SortOrder != 1 {
		t.Fatalf("expected sort order 1, got %d", second.SortOrder)
	}
	if second.Description != "endpoints" {
		t.Fatalf("expected trimmed description, got %q", second.Description)
	}
}

func TestCreateFolderRejectsDuplicateSlug(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	mustFolder(t, svc, "Guides")

	_, err := svc.CreateFolder(ctx, CreateFolderRequest{Name: "guides!!"})
	if err == nil {
		t.Fatal("expected duplicate slug to be rejected")
	}
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if !IsValidationFailure(err) {
		t.Fatalf("expected validation category, got %v", err)
	}

	folders, _ := store.ListFolders(ctx)
	if len(folders) != 1 {
		t.Fatalf("expected no additional folder to be stored, got %d", len(folders))
	}
}

func TestCreateFolderRejectsEmptyDerivedSlug(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, CreateFolderRequest{Name: "!!! ???"})
	if !errors.Is(err, ErrSlugEmpty) {
		t.Fatalf("expected ErrSlugEmpty, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	folders, _ := store.ListFolders(ctx)
	if len(folders) != 0 {
		t.Fatalf("expected store to stay empty, got %d folders", len(folders))
	}
}

func TestCreateFolderRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateFolder(context.Background(), CreateFolderRequest{Name: "   "})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if !IsValidationFailure(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreatePageRequiresExistingFolder(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Intro"})
	if !errors.Is(err, ErrFolderRequired) {
		t.Fatalf("expected ErrFolderRequired, got %v", err)
	}

	_, err = svc.CreatePage(ctx, CreatePageRequest{Title: "Intro", FolderID: uuid.New()})
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
	if !IsValidationFailure(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	pages, _ := store.ListPages(ctx, PageFilter{})
	if len(pages) != 0 {
		t.Fatalf("expected no pages stored, got %d", len(pages))
	}
}

func TestCreatePageSlugScopedToFolder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	guides := mustFolder(t, svc, "Guides")
	api := mustFolder(t, svc, "API")

	page, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Overview", FolderID: guides.ID, Content: "# Overview"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if page.IsPublished {
		t.Fatal("expected new page to default to draft")
	}
	if page.Slug != "overview" || page.SortOrder != 0 {
		t.Fatalf("unexpected page slug/order: %q/%d", page.Slug, page.SortOrder)
	}

	if _, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Overview", FolderID: api.ID}); err != nil {
		t.Fatalf("expected same slug in another folder to be accepted: %v", err)
	}

	_, err = svc.CreatePage(ctx, CreatePageRequest{Title: "overview", FolderID: guides.ID})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken within folder, got %v", err)
	}

	next, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Install", FolderID: guides.ID, IsPublished: true})
	if err != nil {
		t.Fatalf("create second page: %v", err)
	}
	if next.SortOrder != 1 || !next.IsPublished {
		t.Fatalf("expected published page at order 1, got %+v", next)
	}
}

func TestSetPublishedTransitions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	folder := mustFolder(t, svc, "Guides")
	page, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Intro", FolderID: folder.ID})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	published, err := svc.SetPublished(ctx, page.ID, true)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.IsPublished {
		t.Fatal("expected page to be published")
	}

	drafted, err := svc.SetPublished(ctx, page.ID, false)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if drafted.IsPublished {
		t.Fatal("expected page to be draft again")
	}

	_, err = svc.SetPublished(ctx, uuid.New(), true)
	if !IsNotFound(err) {
		t.Fatalf("expected not found for unknown page, got %v", err)
	}
}

func TestUpdatePageMoveChecksTargetFolder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	guides := mustFolder(t, svc, "Guides")
	api := mustFolder(t, svc, "API")

	page, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Auth", FolderID: guides.ID})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Auth", FolderID: api.ID}); err != nil {
		t.Fatalf("create conflicting page: %v", err)
	}

	_, err = svc.UpdatePage(ctx, UpdatePageRequest{ID: page.ID, FolderID: &api.ID})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected slug conflict when moving, got %v", err)
	}

	title := "Authentication"
	content := "# Authentication"
	updated, err := svc.UpdatePage(ctx, UpdatePageRequest{ID: page.ID, Title: &title, Content: &content})
	if err != nil {
		t.Fatalf("update page: %v", err)
	}
	if updated.Title != title || updated.Content != content {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Slug != "auth" {
		t.Fatalf("expected slug to stay stable on rename, got %q", updated.Slug)
	}
}

func TestDeleteFolderRemovesContainedPages(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	folder := mustFolder(t, svc, "Guides")
	other := mustFolder(t, svc, "API")
	if _, err := svc.CreatePage(ctx, CreatePageRequest{Title: "One", FolderID: folder.ID}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	keep, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Two", FolderID: other.ID})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	if err := svc.DeleteFolder(ctx, folder.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	pages, _ := store.ListPages(ctx, PageFilter{})
	if len(pages) != 1 || pages[0].ID != keep.ID {
		t.Fatalf("expected only the other folder's page to remain, got %+v", pages)
	}
	if err := svc.DeleteFolder(ctx, folder.ID); !IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

type failingStore struct {
	*MemoryStore
	err error
}

func (f failingStore) ListFolders(context.Context) ([]*Folder, error) {
	return nil, f.err
}

func TestStoreFailureIsReported(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewService(failingStore{MemoryStore: NewMemoryStore(), err: cause})

	_, err := svc.CreateFolder(context.Background(), CreateFolderRequest{Name: "Guides"})
	if !IsStoreFailure(err) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected underlying cause to be preserved, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
	if IsValidationFailure(err) {
		t.Fatal("store failure must not be reported as validation failure")
	}
}
