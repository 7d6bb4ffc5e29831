package navigation

import (
	"context"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Reader is the read side of the record store. Both pages.Store and
// pages.Service satisfy it.
type Reader interface {
	ListFolders(ctx context.Context) ([]*pages.Folder, error)
	ListPages(ctx context.Context, filter pages.PageFilter) ([]*pages.Page, error)
}

// Service loads records and exposes the derived navigation views.
type Service interface {
	Tree(ctx context.Context, opts BuildOptions) (Tree, error)
	Sidebar(ctx context.Context, currentPath string, prefs OpenPreferences) ([]SidebarSection, error)
	Landing(ctx context.Context) ([]Card, error)
}

// Option configures the navigation service.
type Option func(*service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

// WithResolver overrides the open-state resolver.
func WithResolver(resolver Resolver) Option {
	return func(s *service) {
		s.resolver = resolver
	}
}

// WithLandingLinks caps the number of links per landing card.
func WithLandingLinks(n int) Option {
	return func(s *service) {
		s.landingLinks = n
	}
}

type service struct {
	reader       Reader
	resolver     Resolver
	landingLinks int
	logger       interfaces.Logger
}

// NewService returns a navigation service reading from reader.
func NewService(reader Reader, opts ...Option) Service {
	s := &service{
		reader:       reader,
		resolver:     DefaultResolver(),
		landingLinks: DefaultLandingLinks,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) Tree(ctx context.Context, opts BuildOptions) (Tree, error) {
	if s.reader == nil {
		return nil, pages.ErrStoreNotDefined
	}
	folders, err := s.reader.ListFolders(ctx)
	if err != nil {
		s.logger.Error("navigation.tree.folders_failed", "error", err)
		return nil, pages.NewStoreFailure("folders.list", err)
	}
	filter := pages.PageFilter{}
	if opts.PublishedOnly {
		filter = pages.Published()
	}
	records, err := s.reader.ListPages(ctx, filter)
	if err != nil {
		s.logger.Error("navigation.tree.pages_failed", "error", err)
		return nil, pages.NewStoreFailure("pages.list", err)
	}

	tree := Build(folders, records, opts)
	s.logger.Debug("navigation.tree.built",
		"published_only", opts.PublishedOnly,
		"sections", len(tree),
		"pages", tree.PageCount(),
	)
	return tree, nil
}

func (s *service) Sidebar(ctx context.Context, currentPath string, prefs OpenPreferences) ([]SidebarSection, error) {
	tree, err := s.Tree(ctx, BuildOptions{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	return s.resolver.Sidebar(tree, currentPath, prefs), nil
}

func (s *service) Landing(ctx context.Context) ([]Card, error) {
	tree, err := s.Tree(ctx, BuildOptions{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	return Landing(tree, s.landingLinks), nil
}
