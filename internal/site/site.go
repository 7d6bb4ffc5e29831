package site

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/navigation"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

var ErrUnknownDevice = errors.New("site: unknown preview device")

// Document is a published page ready for display.
type Document struct {
	Folder   *pages.Folder    `json:"folder"`
	Page     *pages.Page      `json:"page"`
	Path     string           `json:"path"`
	HTML     string           `json:"html"`
	Headings []markup.Heading `json:"headings"`
	Prev     *navigation.Link `json:"prev,omitempty"`
	Next     *navigation.Link `json:"next,omitempty"`
}

// Outcome labels a route resolution for observers.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// ResolveObserver is notified after every route resolution.
type ResolveObserver interface {
	ObserveResolve(outcome Outcome)
}

// Service serves public pages and authoring previews.
type Service interface {
	Resolve(ctx context.Context, folderSlug, pageSlug string) (*Document, error)
	ResolvePath(ctx context.Context, path string) (*Document, error)
	Preview(ctx context.Context, content string, device Device) (*Preview, error)
	ActiveHeading(headings []markup.Heading, offsets []float64, scroll float64) (string, bool)
}

// Option configures the site service.
type Option func(*service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

// WithLeadMargin sets the scroll tracker lead margin.
func WithLeadMargin(margin float64) Option {
	return func(s *service) {
		s.tracker = markup.NewTracker(margin)
	}
}

// WithResolveObserver reports resolution outcomes.
func WithResolveObserver(observer ResolveObserver) Option {
	return func(s *service) {
		s.observer = observer
	}
}

type service struct {
	reader   navigation.Reader
	pipeline *markup.Pipeline
	tracker  markup.Tracker
	observer ResolveObserver
	logger   interfaces.Logger
}

// NewService builds the public site service. A nil pipeline gets an
// uncached default.
func NewService(reader navigation.Reader, pipeline *markup.Pipeline, opts ...Option) Service {
	if pipeline == nil {
		pipeline = markup.NewPipeline(nil, markup.PipelineConfig{})
	}
	s := &service{
		reader:   reader,
		pipeline: pipeline,
		tracker:  markup.NewTracker(markup.DefaultLeadMargin),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Resolve returns the published page at /{folderSlug}/{pageSlug}. Drafts,
// unknown slugs and pages in missing folders all report NotFound.
func (s *service) Resolve(ctx context.Context, folderSlug, pageSlug string) (*Document, error) {
	path := "/" + folderSlug + "/" + pageSlug
	doc, err := s.resolve(ctx, folderSlug, pageSlug, path)
	switch {
	case err == nil:
		s.observe(OutcomeFound)
		s.logger.Debug("site.resolve.found", "path", path)
	case pages.IsNotFound(err):
		s.observe(OutcomeNotFound)
		s.logger.Debug("site.resolve.not_found", "path", path)
	default:
		s.observe(OutcomeError)
		s.logger.Error("site.resolve.failed", "path", path, "error", err)
	}
	return doc, err
}

// ResolvePath accepts a route string; anything other than two non-empty
// segments is NotFound.
func (s *service) ResolvePath(ctx context.Context, path string) (*Document, error) {
	folderSlug, pageSlug, ok := SplitPath(path)
	if !ok {
		s.observe(OutcomeNotFound)
		return nil, pages.NewNotFound("page", path)
	}
	return s.Resolve(ctx, folderSlug, pageSlug)
}

func (s *service) resolve(ctx context.Context, folderSlug, pageSlug, path string) (*Document, error) {
	if s.reader == nil {
		return nil, pages.ErrStoreNotDefined
	}
	if folderSlug == "" || pageSlug == "" {
		return nil, pages.NewNotFound("page", path)
	}

	folders, err := s.reader.ListFolders(ctx)
	if err != nil {
		return nil, pages.NewStoreFailure("folders.list", err)
	}
	published, err := s.reader.ListPages(ctx, pages.Published())
	if err != nil {
		return nil, pages.NewStoreFailure("pages.list", err)
	}

	tree := navigation.Build(folders, published, navigation.BuildOptions{PublishedOnly: true})
	for _, section := range tree {
		if section.Folder.Slug != folderSlug {
			continue
		}
		for _, page := range section.Pages {
			if page.Slug == pageSlug && page.IsPublished {
				return s.document(tree, section.Folder, page), nil
			}
		}
	}
	return nil, pages.NewNotFound("page", path)
}

func (s *service) document(tree navigation.Tree, folder *pages.Folder, page *pages.Page) *Document {
	path := navigation.PagePath(folder, page)
	rendered := s.pipeline.Process(page.Content)
	doc := &Document{
		Folder:   folder,
		Page:     page,
		Path:     path,
		HTML:     rendered.HTML,
		Headings: rendered.Headings,
	}
	prev, next := tree.Neighbours(path)
	if prev != nil {
		doc.Prev = &navigation.Link{Title: prev.Page.Title, Path: prev.Path}
	}
	if next != nil {
		doc.Next = &navigation.Link{Title: next.Page.Title, Path: next.Path}
	}
	return doc
}

func (s *service) ActiveHeading(headings []markup.Heading, offsets []float64, scroll float64) (string, bool) {
	return s.tracker.Active(headings, offsets, scroll)
}

func (s *service) observe(outcome Outcome) {
	if s.observer != nil {
		s.observer.ObserveResolve(outcome)
	}
}

// SplitPath breaks "/{folder}/{page}" into its slugs.
func SplitPath(path string) (folderSlug, pageSlug string, ok bool) {
	trimmed, found := strings.CutPrefix(path, "/")
	if !found {
		return "", "", false
	}
	folderSlug, pageSlug, found = strings.Cut(trimmed, "/")
	if !found || folderSlug == "" || pageSlug == "" || strings.Contains(pageSlug, "/") {
		return "", "", false
	}
	return folderSlug, pageSlug, true
}
