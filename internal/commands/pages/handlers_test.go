package pagescmd_test

import (
	"context"
	"testing"

	pagescmd "github.com/goliatone/go-docs/internal/commands/pages"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/google/uuid"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterWiresEveryHandler(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := pagescmd.Register(reg, pages.NewService(pages.NewMemoryStore()), nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.handlers) != 5 || set.CreatePage == nil {
		t.Fatalf("expected five handlers, got %d", len(reg.handlers))
	}
}

func TestRegisterRequiresService(t *testing.T) {
	if _, err := pagescmd.Register(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

func TestAuthoringLifecycle(t *testing.T) {
	ctx := context.Background()
	service := pages.NewService(pages.NewMemoryStore())
	set, err := pagescmd.NewHandlerSet(service, nil)
	if err != nil {
		t.Fatalf("handlers: %v", err)
	}

	var folder *pages.Folder
	if err := set.CreateFolder.Execute(ctx, pagescmd.CreateFolderCommand{
		Name:   "Getting Started",
		Result: func(f *pages.Folder) { folder = f },
	}); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if folder == nil || folder.Slug != "getting-started" {
		t.Fatalf("unexpected folder %+v", folder)
	}

	var page *pages.Page
	if err := set.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{
		FolderID: folder.ID,
		Title:    "Install",
		Content:  "# Install",
		Result:   func(p *pages.Page) { page = p },
	}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if page == nil || page.IsPublished {
		t.Fatalf("expected a draft page, got %+v", page)
	}

	if err := set.PublishPage.Execute(ctx, pagescmd.PublishPageCommand{PageID: page.ID, Published: true}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	stored, err := service.GetPage(ctx, page.ID)
	if err != nil || !stored.IsPublished {
		t.Fatalf("expected published page, got %+v, %v", stored, err)
	}

	if err := set.DeletePage.Execute(ctx, pagescmd.DeletePageCommand{PageID: page.ID}); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if err := set.DeleteFolder.Execute(ctx, pagescmd.DeleteFolderCommand{FolderID: folder.ID}); err != nil {
		t.Fatalf("delete folder: %v", err)
	}
	folders, _ := service.ListFolders(ctx)
	if len(folders) != 0 {
		t.Fatalf("expected folder removed, got %d", len(folders))
	}
}

func TestCommandsRejectInvalidInput(t *testing.T) {
	ctx := context.Background()
	service := pages.NewService(pages.NewMemoryStore())
	set, _ := pagescmd.NewHandlerSet(service, nil)

	cases := map[string]error{
		"folder without name": set.CreateFolder.Execute(ctx, pagescmd.CreateFolderCommand{}),
		"page without folder": set.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{Title: "x"}),
		"page without title":  set.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{FolderID: uuid.New()}),
		"publish without id":  set.PublishPage.Execute(ctx, pagescmd.PublishPageCommand{Published: true}),
		"unsluggable name":    set.CreateFolder.Execute(ctx, pagescmd.CreateFolderCommand{Name: "!!!"}),
		"unknown folder":      set.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{FolderID: uuid.New(), Title: "Orphan"}),
	}
	for name, err := range cases {
		if !pages.IsValidationFailure(err) {
			t.Errorf("%s: expected validation failure, got %v", name, err)
		}
	}

	if err := set.PublishPage.Execute(ctx, pagescmd.PublishPageCommand{PageID: uuid.New(), Published: true}); !pages.IsNotFound(err) {
		t.Fatalf("expected not found for unknown page, got %v", err)
	}
}
