package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreOrdersBySortOrderThenInsertion(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, f := range []*Folder{
		{ID: uuid.New(), Slug: "c", SortOrder: 2},
		{ID: uuid.New(), Slug: "a", SortOrder: 1},
		{ID: uuid.New(), Slug: "b", SortOrder: 1},
	} {
		if _, err := store.CreateFolder(ctx, f); err != nil {
			t.Fatalf("create folder: %v", err)
		}
	}

	folders, err := store.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	got := []string{folders[0].Slug, folders[1].Slug, folders[2].Slug}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestMemoryStoreFiltersPages(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	folderA, folderB := uuid.New(), uuid.New()

	seed := []*Page{
		{ID: uuid.New(), FolderID: folderA, Slug: "one", IsPublished: true, SortOrder: 1},
		{ID: uuid.New(), FolderID: folderA, Slug: "two", IsPublished: false, SortOrder: 0},
		{ID: uuid.New(), FolderID: folderB, Slug: "three", IsPublished: true, SortOrder: 0},
	}
	for _, p := range seed {
		if _, err := store.CreatePage(ctx, p); err != nil {
			t.Fatalf("create page: %v", err)
		}
	}

	published, _ := store.ListPages(ctx, Published())
	if len(published) != 2 {
		t.Fatalf("expected 2 published pages, got %d", len(published))
	}
	inA, _ := store.ListPages(ctx, PageFilter{}.InFolder(folderA))
	if len(inA) != 2 || inA[0].Slug != "two" {
		t.Fatalf("expected folder A pages ordered by sort order, got %+v", inA)
	}
	publishedInA, _ := store.ListPages(ctx, Published().InFolder(folderA))
	if len(publishedInA) != 1 || publishedInA[0].Slug != "one" {
		t.Fatalf("expected single published page in folder A, got %+v", publishedInA)
	}
}

func TestMemoryStoreEnforcesSlugScopes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateFolder(ctx, &Folder{Slug: "guides"}); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := store.CreateFolder(ctx, &Folder{Slug: "guides"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken for folder, got %v", err)
	}

	folderID := uuid.New()
	if _, err := store.CreatePage(ctx, &Page{FolderID: folderID, Slug: "intro"}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := store.CreatePage(ctx, &Page{FolderID: folderID, Slug: "intro"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken for page, got %v", err)
	}
	if _, err := store.CreatePage(ctx, &Page{FolderID: uuid.New(), Slug: "intro"}); err != nil {
		t.Fatalf("expected page slug in other folder to be accepted: %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.CreatePage(ctx, &Page{FolderID: uuid.New(), Slug: "intro", Title: "Intro"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	created.Title = "mutated"

	fetched, err := store.GetPage(ctx, created.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if fetched.Title != "Intro" {
		t.Fatalf("expected stored record to be isolated from caller mutation, got %q", fetched.Title)
	}
}

func TestMemoryStoreDeleteUnknown(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
