package di

import (
	"errors"
	"io"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/internal/commands"
	markdowncmd "github.com/goliatone/go-docs/internal/commands/markdown"
	pagescmd "github.com/goliatone/go-docs/internal/commands/pages"
	staticcmd "github.com/goliatone/go-docs/internal/commands/static"
	"github.com/goliatone/go-docs/internal/generator"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/metrics"
	"github.com/goliatone/go-docs/internal/navigation"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/runtimeconfig"
	"github.com/goliatone/go-docs/internal/settings"
	"github.com/goliatone/go-docs/internal/site"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Container wires module dependencies. Without a bun handle every store is
// in memory.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	ownsProvider   bool

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	metrics       *metrics.Metrics
	writer        generator.ArtifactWriter
	registry      commands.Registry

	pageStore     pages.Store
	settingsStore settings.Store
	pipeline      *markup.Pipeline

	pageSvc      pages.Service
	navSvc       navigation.Service
	siteSvc      site.Service
	settingsSvc  settings.Service
	importer     *markdown.Importer
	generatorSvc generator.Service

	pageCommands    *pagescmd.HandlerSet
	importHandler   *markdowncmd.ImportHandler
	generateHandler *staticcmd.GenerateHandler
	subscriptions   []commands.Subscription
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches folders, pages and settings to SQL storage.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache used in front of bun stores.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMetrics overrides the collectors built from Config.Metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Container) {
		c.metrics = m
	}
}

// WithArtifactWriter overrides where the static generator writes.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithCommandRegistry hands every command handler to registry.
func WithCommandRegistry(registry commands.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithPageStore overrides the folder and page store.
func WithPageStore(store pages.Store) Option {
	return func(c *Container) {
		c.pageStore = store
	}
}

// WithSettingsStore overrides the settings store.
func WithSettingsStore(store settings.Store) Option {
	return func(c *Container) {
		c.settingsStore = store
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureMetrics()
	c.configureStores()
	c.configureServices()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	c.logger(logging.RootModule).Info("docs.container.ready",
		"storage", storageKind(c.bunDB),
		"repository_cache", c.cacheService != nil,
		"metrics", c.metrics != nil,
		"generator", cfg.Generator.Enabled,
	)
	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger(logging.RootModule).Warn("docs.container.cache_disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureMetrics() {
	if c.metrics == nil && c.Config.Metrics.Enabled {
		c.metrics = metrics.New(c.Config.Metrics.Namespace)
	}
}

func (c *Container) configureStores() {
	if c.pageStore == nil {
		if c.bunDB != nil {
			c.pageStore = pages.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.pageStore = pages.NewMemoryStore()
		}
	}
	if c.settingsStore == nil {
		if c.bunDB != nil {
			c.settingsStore = settings.NewBunStore(c.bunDB)
		} else {
			c.settingsStore = settings.NewMemoryStore()
		}
	}
}

func (c *Container) configureServices() {
	cfg := c.Config

	pipelineOpts := []markup.PipelineOption{}
	if c.metrics != nil {
		pipelineOpts = append(pipelineOpts, markup.WithCacheObserver(c.metrics))
	}
	c.pipeline = markup.NewPipeline(
		markup.NewRenderer(markup.WithRendererLogger(c.logger(logging.MarkupModule))),
		markup.PipelineConfig{TTL: cfg.Cache.RenderTTL, CleanupInterval: cfg.Cache.RenderCleanup},
		pipelineOpts...,
	)

	c.pageSvc = pages.NewService(c.pageStore, pages.WithLogger(c.logger(logging.PagesModule)))
	c.settingsSvc = settings.NewService(c.settingsStore, settings.WithLogger(c.logger(logging.SettingsModule)))

	c.navSvc = navigation.NewService(c.pageSvc,
		navigation.WithLogger(c.logger(logging.NavigationModule)),
		navigation.WithResolver(navigation.Resolver{FirstFolderOpen: cfg.Navigation.FirstFolderOpen}),
		navigation.WithLandingLinks(cfg.Navigation.LandingLinks),
	)

	siteOpts := []site.Option{
		site.WithLogger(c.logger(logging.SiteModule)),
		site.WithLeadMargin(cfg.Site.LeadMargin),
	}
	if c.metrics != nil {
		siteOpts = append(siteOpts, site.WithResolveObserver(c.metrics))
	}
	c.siteSvc = site.NewService(c.pageSvc, c.pipeline, siteOpts...)

	c.importer = markdown.NewImporter(c.pageSvc, markdown.WithLogger(c.logger(logging.MarkdownModule)))
	c.generatorSvc = c.buildGenerator()
}

func (c *Container) buildGenerator() generator.Service {
	cfg := c.Config
	if !cfg.Generator.Enabled {
		return generator.NewDisabledService()
	}
	if c.writer == nil {
		c.writer = generator.NewDirWriter(cfg.Generator.OutputDir)
	}
	opts := []generator.Option{generator.WithLogger(c.logger(logging.GeneratorModule))}
	if c.metrics != nil {
		opts = append(opts, generator.WithBuildObserver(c.metrics))
	}
	baseURL := strings.TrimSpace(cfg.Generator.BaseURL)
	if baseURL == "" {
		baseURL = cfg.Site.BaseURL
	}
	return generator.NewService(generator.Config{
		BaseURL:         baseURL,
		SiteName:        cfg.Site.Name,
		GenerateSitemap: cfg.Generator.GenerateSitemap,
		GenerateRobots:  cfg.Generator.GenerateRobots,
		Incremental:     cfg.Generator.Incremental,
		Workers:         cfg.Generator.Workers,
	}, generator.Dependencies{
		Pages:    c.pageSvc,
		Pipeline: c.pipeline,
		Writer:   c.writer,
		Settings: c.settingsSvc,
	}, opts...)
}

func (c *Container) configureCommands() error {
	cfg := c.Config.Commands
	if !cfg.Enabled {
		return nil
	}

	set, err := pagescmd.Register(c.registry, c.pageSvc, c.loggerProvider)
	if err != nil {
		return err
	}
	c.pageCommands = set

	importHandler, err := markdowncmd.Register(c.registry, c.importer, c.loggerProvider,
		commands.WithTelemetry(commands.ChainTelemetry(
			commands.DefaultTelemetry[markdowncmd.ImportCommand](commands.CommandLogger(c.loggerProvider, commands.GroupMarkdown)),
			metrics.CommandTelemetry[markdowncmd.ImportCommand](c.metrics),
		)),
	)
	if err != nil {
		return err
	}
	c.importHandler = importHandler

	generateHandler, err := staticcmd.Register(c.registry, c.generatorSvc, c.loggerProvider,
		commands.WithTelemetry(commands.ChainTelemetry(
			commands.DefaultTelemetry[staticcmd.GenerateCommand](commands.CommandLogger(c.loggerProvider, commands.GroupStatic)),
			metrics.CommandTelemetry[staticcmd.GenerateCommand](c.metrics),
		)),
	)
	if err != nil {
		return err
	}
	c.generateHandler = generateHandler.WithSchedule(c.Config.Generator.Schedule)

	if cfg.AutoRegisterDispatcher {
		c.subscriptions = append(c.subscriptions, set.Subscribe(cfg.MaxRetries)...)
		c.subscriptions = append(c.subscriptions, importHandler.Subscribe(), generateHandler.Subscribe())
	}
	return nil
}

func (c *Container) logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Close detaches dispatcher subscriptions and releases the logger provider
// when the container built it.
func (c *Container) Close() error {
	for _, sub := range c.subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	c.subscriptions = nil

	var errs []error
	if closer, ok := c.loggerProvider.(io.Closer); ok && c.ownsProvider {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Logger(module string) interfaces.Logger { return c.logger(module) }

func (c *Container) BunDB() *bun.DB { return c.bunDB }

func (c *Container) Metrics() *metrics.Metrics { return c.metrics }

func (c *Container) Pipeline() *markup.Pipeline { return c.pipeline }

func (c *Container) PageStore() pages.Store { return c.pageStore }

func (c *Container) PageService() pages.Service { return c.pageSvc }

func (c *Container) NavigationService() navigation.Service { return c.navSvc }

func (c *Container) SiteService() site.Service { return c.siteSvc }

func (c *Container) SettingsService() settings.Service { return c.settingsSvc }

func (c *Container) Importer() *markdown.Importer { return c.importer }

func (c *Container) GeneratorService() generator.Service { return c.generatorSvc }

// ArtifactWriter is nil when the generator is disabled.
func (c *Container) ArtifactWriter() generator.ArtifactWriter { return c.writer }

// PageCommands is nil when commands are disabled.
func (c *Container) PageCommands() *pagescmd.HandlerSet { return c.pageCommands }

func (c *Container) ImportHandler() *markdowncmd.ImportHandler { return c.importHandler }

func (c *Container) GenerateHandler() *staticcmd.GenerateHandler { return c.generateHandler }

func storageKind(db *bun.DB) string {
	if db == nil {
		return "memory"
	}
	return db.Dialect().Name().String()
}
