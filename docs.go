package docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/uptrace/bun"

	markdowncmd "github.com/goliatone/go-docs/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-docs/internal/commands/static"
	"github.com/goliatone/go-docs/internal/di"
	"github.com/goliatone/go-docs/internal/generator"
	docshttp "github.com/goliatone/go-docs/internal/http"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/internal/markup"
	docsmcp "github.com/goliatone/go-docs/internal/mcp"
	"github.com/goliatone/go-docs/internal/navigation"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/settings"
	"github.com/goliatone/go-docs/internal/site"
	"github.com/goliatone/go-docs/internal/slug"
)

// PageService exports the authoring service contract.
type PageService = pages.Service

// NavigationService exports the tree, sidebar and landing contract.
type NavigationService = navigation.Service

// SiteService exports public route resolution and previews.
type SiteService = site.Service

// SettingsService exports the site settings contract.
type SettingsService = settings.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

type (
	Folder         = pages.Folder
	Page           = pages.Page
	Heading        = markup.Heading
	Tree           = navigation.Tree
	Section        = navigation.Section
	SidebarSection = navigation.SidebarSection
	Card           = navigation.Card
	Document       = site.Document
	SiteSettings   = settings.SiteSettings
	ImportResult   = markdown.Result
	BuildResult    = generator.BuildResult
)

// Slugify derives the URL segment used for folders and pages.
func Slugify(text string) string {
	return slug.Slugify(text)
}

// ExtractTOC lists the headings of content in document order.
func ExtractTOC(content string) []Heading {
	return markup.Extract(content)
}

// BuildTree groups folders and pages into the ordered navigation tree.
func BuildTree(folders []*Folder, records []*Page, publishedOnly bool) Tree {
	return navigation.Build(folders, records, navigation.BuildOptions{PublishedOnly: publishedOnly})
}

// Module represents the top level documentation runtime façade.
type Module struct {
	container *di.Container
	db        *bun.DB
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Open connects the configured storage, applies the embedded migrations when
// Storage.Migrate is set and builds the module. Close releases the handle.
func Open(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := di.OpenDatabase(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return New(cfg, opts...)
	}

	if cfg.Storage.Migrate {
		if _, err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	module, err := New(cfg, append([]di.Option{di.WithBunDB(db)}, opts...)...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	module.db = db
	return module, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the authoring service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Navigation returns the navigation service.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Site returns the public site service.
func (m *Module) Site() SiteService {
	return m.container.SiteService()
}

// Settings returns the site settings service.
func (m *Module) Settings() SettingsService {
	return m.container.SettingsService()
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// ImportOptions narrows one markdown import. Empty fields fall back to the
// Markdown section of the config.
type ImportOptions struct {
	Directory string
	DryRun    bool
}

// Import syncs a content directory into folders and pages.
func (m *Module) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	cfg := m.container.Config.Markdown
	dir := strings.TrimSpace(opts.Directory)
	if dir == "" {
		dir = cfg.ContentDir
	}

	if handler := m.container.ImportHandler(); handler != nil {
		var result *ImportResult
		err := handler.Execute(ctx, markdowncmd.ImportCommand{
			Directory: dir,
			Patterns:  cfg.Patterns,
			Recursive: cfg.Recursive,
			Publish:   cfg.PublishOnImport,
			DryRun:    opts.DryRun,
			Result:    func(r *markdown.Result) { result = r },
		})
		return result, err
	}

	return m.container.Importer().Import(ctx, os.DirFS(dir), markdown.ImportOptions{
		DryRun:  opts.DryRun,
		Publish: cfg.PublishOnImport,
		Loader:  markdown.LoaderConfig{Patterns: cfg.Patterns, Recursive: cfg.Recursive},
	})
}

// GenerateOptions narrows one static build.
type GenerateOptions struct {
	DryRun bool
	Clean  bool
}

// Generate exports the published site through the configured writer.
func (m *Module) Generate(ctx context.Context, opts GenerateOptions) (*BuildResult, error) {
	if handler := m.container.GenerateHandler(); handler != nil {
		var result *BuildResult
		err := handler.Execute(ctx, staticcmd.GenerateCommand{
			DryRun: opts.DryRun,
			Clean:  opts.Clean,
			Result: func(r *generator.BuildResult) { result = r },
		})
		return result, err
	}

	svc := m.container.GeneratorService()
	if opts.Clean {
		if opts.DryRun {
			return nil, errors.New("docs: clean cannot be combined with dry run")
		}
		if err := svc.Clean(ctx); err != nil {
			return nil, err
		}
	}
	return svc.Build(ctx, generator.BuildOptions{DryRun: opts.DryRun})
}

// Handler mounts the admin API, the public API and, when metrics are
// enabled, the Prometheus endpoint on a fresh mux.
func (m *Module) Handler() (http.Handler, error) {
	cfg := m.container.Config.HTTP
	logger := m.container.Logger(logging.HTTPModule)
	collectors := m.container.Metrics()
	mux := http.NewServeMux()

	admin := docshttp.NewAdminAPI(
		docshttp.WithBasePath(cfg.AdminPrefix),
		docshttp.WithPageService(m.container.PageService()),
		docshttp.WithSiteService(m.container.SiteService()),
		docshttp.WithSettingsService(m.container.SettingsService()),
		docshttp.WithAdminMetrics(collectors),
		docshttp.WithAdminLogger(logger),
	)
	if err := admin.Register(mux); err != nil {
		return nil, err
	}

	public := docshttp.NewPublicAPI(
		m.container.NavigationService(),
		m.container.SiteService(),
		docshttp.WithPublicBasePath(cfg.PublicPrefix),
		docshttp.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		docshttp.WithPublicMetrics(collectors),
		docshttp.WithPublicLogger(logger),
	)
	if err := public.Register(mux); err != nil {
		return nil, err
	}

	if collectors != nil && strings.TrimSpace(cfg.MetricsPath) != "" {
		mux.Handle("GET "+cfg.MetricsPath, collectors.Handler())
	}
	return mux, nil
}

// MCPServer builds the agent tool server over the navigation and site services.
func (m *Module) MCPServer() *server.MCPServer {
	return docsmcp.NewServer(m.mcpConfig(), docsmcp.Dependencies{
		Navigation: m.container.NavigationService(),
		Site:       m.container.SiteService(),
		Logger:     m.container.Logger(logging.MCPModule),
	})
}

// ServeMCP runs the agent tool server on the configured transport until ctx
// is done.
func (m *Module) ServeMCP(ctx context.Context) error {
	return docsmcp.Serve(ctx, m.MCPServer(), m.mcpConfig())
}

func (m *Module) mcpConfig() docsmcp.Config {
	cfg := m.container.Config.MCP
	return docsmcp.Config{Name: cfg.Name, Version: cfg.Version, Transport: cfg.Transport, Addr: cfg.Addr}
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	err := m.container.Close()
	if m.db != nil {
		err = errors.Join(err, m.db.Close())
		m.db = nil
	}
	return err
}
