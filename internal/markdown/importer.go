package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/slug"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

var (
	// ErrServiceRequired is returned when the importer has no authoring service.
	ErrServiceRequired = errors.New("markdown importer: pages service is required")
	// ErrFilesystemRequired is returned when Import runs without a source tree.
	ErrFilesystemRequired = errors.New("markdown importer: filesystem is required")
	// ErrPartialImport marks a run where at least one file failed.
	ErrPartialImport = errors.New("markdown importer: some files failed")
)

// Action names what the importer did (or would do) with a record.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
)

// ImportOptions tune a single run.
type ImportOptions struct {
	// DryRun reports planned changes without writing.
	DryRun bool
	// Publish is the publish state for pages whose header is silent.
	Publish bool
	Loader  LoaderConfig
}

// Change records one folder or page decision.
type Change struct {
	Kind   string `json:"kind"`
	Action Action `json:"action"`
	Path   string `json:"path"`
	Slug   string `json:"slug"`
}

// Result summarises an import run.
type Result struct {
	DryRun         bool        `json:"dry_run"`
	FoldersCreated int         `json:"folders_created"`
	FoldersUpdated int         `json:"folders_updated"`
	PagesCreated   int         `json:"pages_created"`
	PagesUpdated   int         `json:"pages_updated"`
	Unchanged      int         `json:"unchanged"`
	Skipped        int         `json:"skipped"`
	Changes        []Change    `json:"changes"`
	Errors         []FileError `json:"-"`
}

// Failed reports whether any file could not be imported.
func (r *Result) Failed() bool {
	return r != nil && len(r.Errors) > 0
}

func (r *Result) record(kind string, action Action, p, value string) {
	r.Changes = append(r.Changes, Change{Kind: kind, Action: action, Path: p, Slug: value})
	switch {
	case action == ActionUnchanged:
		r.Unchanged++
	case kind == "folder" && action == ActionCreate:
		r.FoldersCreated++
	case kind == "folder":
		r.FoldersUpdated++
	case action == ActionCreate:
		r.PagesCreated++
	default:
		r.PagesUpdated++
	}
}

// ImporterOption configures the importer.
type ImporterOption func(*Importer)

// WithLogger sets the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer syncs a directory tree into folders and pages. Records are matched
// by slug so repeated imports update in place.
type Importer struct {
	pages  pages.Service
	logger interfaces.Logger
}

// NewImporter builds an importer over the authoring service.
func NewImporter(service pages.Service, opts ...ImporterOption) *Importer {
	imp := &Importer{pages: service, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(imp)
		}
	}
	return imp
}

// Import walks filesystem and applies every folder and page it finds. File
// level failures are collected on the result; the returned error wraps
// ErrPartialImport when any occurred.
func (i *Importer) Import(ctx context.Context, filesystem fs.FS, opts ImportOptions) (*Result, error) {
	if i == nil || i.pages == nil {
		return nil, ErrServiceRequired
	}
	if filesystem == nil {
		return nil, ErrFilesystemRequired
	}

	folders, skipped, loadErrs, err := NewLoader(filesystem, opts.Loader).Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun, Skipped: skipped, Errors: loadErrs}

	existing, err := i.pages.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]*pages.Folder, len(existing))
	for _, folder := range existing {
		bySlug[folder.Slug] = folder
	}

	for _, source := range folders {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		folder, err := i.applyFolder(ctx, source, bySlug, result, opts.DryRun)
		if err != nil {
			result.Errors = append(result.Errors, FileError{Path: source.Dir, Err: err})
			continue
		}
		i.applyPages(ctx, folder, source, result, opts)
	}

	i.logger.Info("markdown.import.complete",
		"dry_run", opts.DryRun,
		"folders_created", result.FoldersCreated,
		"folders_updated", result.FoldersUpdated,
		"pages_created", result.PagesCreated,
		"pages_updated", result.PagesUpdated,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)

	if result.Failed() {
		return result, fmt.Errorf("%w: %d file(s)", ErrPartialImport, len(result.Errors))
	}
	return result, nil
}

func (i *Importer) applyFolder(ctx context.Context, source FolderSource, bySlug map[string]*pages.Folder, result *Result, dryRun bool) (*pages.Folder, error) {
	name := strings.TrimSpace(source.Meta.Title)
	if name == "" {
		name = humanize(source.Dir)
	}
	folderSlug := slug.Slugify(firstNonEmpty(source.Meta.Slug, source.Dir))
	logger := logging.WithImportContext(i.logger, source.Dir, "folder")

	current, ok := bySlug[folderSlug]
	if !ok {
		if dryRun {
			result.record("folder", ActionCreate, source.Dir, folderSlug)
			logger.Debug("markdown.import.folder.planned", "slug", folderSlug)
			return nil, nil
		}
		created, err := i.pages.CreateFolder(ctx, pages.CreateFolderRequest{
			Name:        name,
			Slug:        folderSlug,
			Description: source.Meta.Description,
			SortOrder:   source.Meta.Order,
		})
		if err != nil {
			logger.Warn("markdown.import.folder.failed", "error", err)
			return nil, err
		}
		result.record("folder", ActionCreate, source.Dir, created.Slug)
		bySlug[created.Slug] = created
		return created, nil
	}

	req := pages.UpdateFolderRequest{ID: current.ID}
	changed := false
	if name != current.Name {
		req.Name = &name
		changed = true
	}
	if source.Meta.Description != current.Description {
		description := source.Meta.Description
		req.Description = &description
		changed = true
	}
	if source.Meta.Order != nil && *source.Meta.Order != current.SortOrder {
		req.SortOrder = source.Meta.Order
		changed = true
	}
	if !changed {
		result.record("folder", ActionUnchanged, source.Dir, folderSlug)
		return current, nil
	}

	if dryRun {
		result.record("folder", ActionUpdate, source.Dir, folderSlug)
		return current, nil
	}
	updated, err := i.pages.UpdateFolder(ctx, req)
	if err != nil {
		logger.Warn("markdown.import.folder.failed", "error", err)
		return nil, err
	}
	result.record("folder", ActionUpdate, source.Dir, folderSlug)
	bySlug[updated.Slug] = updated
	return updated, nil
}

// applyPages runs with a nil folder during a dry run of a new folder; every
// page is then planned as a create.
func (i *Importer) applyPages(ctx context.Context, folder *pages.Folder, source FolderSource, result *Result, opts ImportOptions) {
	existing := map[string]*pages.Page{}
	if folder != nil {
		records, err := i.pages.ListPages(ctx, pages.PageFilter{}.InFolder(folder.ID))
		if err != nil {
			result.Errors = append(result.Errors, FileError{Path: source.Dir, Err: err})
			return
		}
		for _, record := range records {
			existing[record.Slug] = record
		}
	}

	for _, page := range source.Pages {
		if ctx.Err() != nil {
			return
		}
		if err := i.applyPage(ctx, folder, page, existing, result, opts); err != nil {
			result.Errors = append(result.Errors, FileError{Path: page.Path, Err: err})
		}
	}
}

func (i *Importer) applyPage(ctx context.Context, folder *pages.Folder, source PageSource, existing map[string]*pages.Page, result *Result, opts ImportOptions) error {
	title := pageTitle(source)
	pageSlug := slug.Slugify(firstNonEmpty(source.Meta.Slug, source.Stem(), title))
	published := source.Meta.PublishState(opts.Publish)
	logger := logging.WithImportContext(i.logger, source.Path, "page")

	current, ok := existing[pageSlug]
	if !ok {
		if opts.DryRun {
			result.record("page", ActionCreate, source.Path, pageSlug)
			return nil
		}
		created, err := i.pages.CreatePage(ctx, pages.CreatePageRequest{
			Title:       title,
			Slug:        pageSlug,
			Content:     source.Body,
			FolderID:    folder.ID,
			IsPublished: published,
			SortOrder:   source.Meta.Order,
		})
		if err != nil {
			logger.Warn("markdown.import.page.failed", "error", err)
			return err
		}
		result.record("page", ActionCreate, source.Path, created.Slug)
		existing[created.Slug] = created
		logger.Debug("markdown.import.page.created", "page_id", created.ID)
		return nil
	}

	req := pages.UpdatePageRequest{ID: current.ID}
	changed := false
	if title != current.Title {
		req.Title = &title
		changed = true
	}
	if source.Body != current.Content {
		body := source.Body
		req.Content = &body
		changed = true
	}
	if source.Meta.Order != nil && *source.Meta.Order != current.SortOrder {
		req.SortOrder = source.Meta.Order
		changed = true
	}
	publishChanged := published != current.IsPublished

	if !changed && !publishChanged {
		result.record("page", ActionUnchanged, source.Path, pageSlug)
		return nil
	}
	if opts.DryRun {
		result.record("page", ActionUpdate, source.Path, pageSlug)
		return nil
	}

	if changed {
		if _, err := i.pages.UpdatePage(ctx, req); err != nil {
			logger.Warn("markdown.import.page.failed", "error", err)
			return err
		}
	}
	if publishChanged {
		if _, err := i.pages.SetPublished(ctx, current.ID, published); err != nil {
			logger.Warn("markdown.import.page.failed", "error", err)
			return err
		}
	}
	result.record("page", ActionUpdate, source.Path, pageSlug)
	logger.Debug("markdown.import.page.updated", "page_id", current.ID)
	return nil
}

// pageTitle prefers the header title, then the first heading, then the file
// name.
func pageTitle(source PageSource) string {
	if title := strings.TrimSpace(source.Meta.Title); title != "" {
		return title
	}
	if headings := markup.Extract(source.Body); len(headings) > 0 {
		return headings[0].Text
	}
	return humanize(source.Stem())
}

func humanize(name string) string {
	name = path.Base(name)
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
