package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"html/template"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/navigation"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/settings"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errReaderRequired   = errors.New("generator: page reader is required")
	errWriterRequired   = errors.New("generator: artifact writer is required")
	errPipelineRequired = errors.New("generator: markup pipeline is required")
)

// Service exports the published site as static files.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	BaseURL         string
	SiteName        string
	GenerateSitemap bool
	GenerateRobots  bool
	// Incremental skips writes whose bytes match the previous manifest.
	Incremental bool
	Workers     int
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt   int            `json:"pages_built"`
	PagesSkipped int            `json:"pages_skipped"`
	Removed      []string       `json:"removed,omitempty"`
	Files        []ManifestFile `json:"files"`
	Duration     time.Duration  `json:"duration"`
	DryRun       bool           `json:"dry_run"`
}

// BuildObserver receives a summary of every finished build.
type BuildObserver interface {
	ObserveBuild(pages int, duration time.Duration, err error)
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Pages    navigation.Reader
	Pipeline *markup.Pipeline
	Writer   ArtifactWriter
	// Settings is optional; when present its name, description, URL and
	// favicon override Config.
	Settings settings.Service
}

// Option configures the generator.
type Option func(*service)

// WithLogger sets the generator logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the build timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithTemplates replaces the built-in layouts. The set must define "page"
// and "landing".
func WithTemplates(set *template.Template) Option {
	return func(s *service) {
		if set != nil {
			s.templates = set
		}
	}
}

// WithBuildObserver reports finished builds to observer.
func WithBuildObserver(observer BuildObserver) Option {
	return func(s *service) {
		s.observer = observer
	}
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies, opts ...Option) Service {
	s := &service{
		cfg:       cfg,
		deps:      deps,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logging.NoOp(),
		templates: defaultTemplates,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg       Config
	deps      Dependencies
	now       func() time.Time
	logger    interfaces.Logger
	templates *template.Template
	observer  BuildObserver
}

type disabledService struct{}

type renderedFile struct {
	request WriteRequest
	entry   ManifestFile
}

type renderOutcome struct {
	file renderedFile
	err  error
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (result *BuildResult, err error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		if s.observer != nil {
			built := 0
			if result != nil {
				built = result.PagesBuilt
			}
			s.observer.ObserveBuild(built, time.Since(start), err)
		}
	}()

	folders, err := s.deps.Pages.ListFolders(ctx)
	if err != nil {
		return nil, pages.NewStoreFailure("generator.folders.list", err)
	}
	records, err := s.deps.Pages.ListPages(ctx, pages.Published())
	if err != nil {
		return nil, pages.NewStoreFailure("generator.pages.list", err)
	}
	tree := navigation.Build(folders, records, navigation.BuildOptions{PublishedOnly: true})

	site, err := s.siteMetadata(ctx)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()

	previous, err := s.loadManifest(ctx)
	if err != nil {
		s.logger.Warn("generator.manifest.unreadable", "error", err)
		previous = nil
	}

	rendered, err := s.renderPages(ctx, site, tree)
	if err != nil {
		return nil, err
	}

	landing, err := s.renderLanding(site, tree, generatedAt)
	if err != nil {
		return nil, err
	}
	files := append(rendered, landing)
	if s.cfg.GenerateSitemap {
		files = append(files, s.sitemapFile(site, tree, generatedAt))
	}
	if s.cfg.GenerateRobots {
		files = append(files, textFile("robots.txt", categoryRobots, "text/plain; charset=utf-8", buildRobots(site.BaseURL, s.cfg.GenerateSitemap)))
	}

	manifest := newBuildManifest()
	manifest.GeneratedAt = generatedAt
	for _, file := range files {
		manifest.set(file.entry)
	}

	result = &BuildResult{DryRun: opts.DryRun, Files: manifest.sortedFiles()}
	result.Removed = previous.stale(manifest)

	for _, file := range files {
		skip := s.cfg.Incremental && previous.unchanged(file.entry.Path, file.entry.Checksum)
		if file.entry.Category == categoryPage {
			if skip {
				result.PagesSkipped++
			} else {
				result.PagesBuilt++
			}
		}
		if skip || opts.DryRun {
			continue
		}
		if err := s.deps.Writer.WriteFile(ctx, file.request); err != nil {
			return result, err
		}
	}

	if opts.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	for _, stale := range result.Removed {
		if err := s.deps.Writer.Remove(ctx, stale); err != nil {
			return result, err
		}
	}
	if err := s.persistManifest(ctx, manifest); err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	s.logger.Info("generator.build.success",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"removed", len(result.Removed),
		"duration", result.Duration,
	)
	return result, nil
}

// Clean removes every file listed in the manifest, then the manifest itself.
func (s *service) Clean(ctx context.Context) error {
	if s.deps.Writer == nil {
		return errWriterRequired
	}
	manifest, err := s.loadManifest(ctx)
	if err != nil {
		return err
	}
	for _, file := range manifest.sortedFiles() {
		if err := s.deps.Writer.Remove(ctx, file.Path); err != nil {
			return err
		}
	}
	if err := s.deps.Writer.Remove(ctx, manifestFileName); err != nil {
		return err
	}
	s.logger.Info("generator.clean.success", "removed", len(manifest.Files))
	return nil
}

func (s *service) ready() error {
	switch {
	case s.deps.Pages == nil:
		return errReaderRequired
	case s.deps.Writer == nil:
		return errWriterRequired
	case s.deps.Pipeline == nil:
		return errPipelineRequired
	}
	return nil
}

func (s *service) siteMetadata(ctx context.Context) (SiteMetadata, error) {
	meta := SiteMetadata{Name: s.cfg.SiteName, BaseURL: s.cfg.BaseURL}
	if s.deps.Settings != nil {
		current, err := s.deps.Settings.Get(ctx)
		if err != nil {
			return SiteMetadata{}, err
		}
		meta.Name = firstNonEmpty(current.SiteName, meta.Name)
		meta.Description = current.SiteDescription
		meta.Favicon = current.Favicon
		meta.BaseURL = firstNonEmpty(meta.BaseURL, current.SiteURL)
	}
	meta.Name = firstNonEmpty(meta.Name, settings.Defaults().SiteName)
	meta.BaseURL = normalizeBaseURL(meta.BaseURL)
	return meta, nil
}

func (s *service) renderPages(ctx context.Context, site SiteMetadata, tree navigation.Tree) ([]renderedFile, error) {
	entries := tree.Flatten()
	if len(entries) == 0 {
		return nil, nil
	}

	jobs := make(chan int)
	outcomes := make([]renderOutcome, len(entries))
	var wg sync.WaitGroup
	for range s.effectiveWorkerCount(len(entries)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				file, err := s.renderPage(site, tree, entries[index])
				outcomes[index] = renderOutcome{file: file, err: err}
			}
		}()
	}

dispatch:
	for index := range entries {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- index:
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := make([]renderedFile, 0, len(entries))
	var errs []error
	for _, outcome := range outcomes {
		if outcome.err != nil {
			errs = append(errs, outcome.err)
			continue
		}
		files = append(files, outcome.file)
	}
	return files, errors.Join(errs...)
}

func (s *service) renderPage(site SiteMetadata, tree navigation.Tree, entry navigation.Entry) (renderedFile, error) {
	doc := s.deps.Pipeline.Process(entry.Page.Content)
	prev, next := tree.Neighbours(entry.Path)

	view := PageView{
		Site:       site,
		Title:      entry.Page.Title + " | " + site.Name,
		Canonical:  site.BaseURL + entry.Path + "/",
		FolderName: entry.Folder.Name,
		PageTitle:  entry.Page.Title,
		Content:    template.HTML(doc.HTML),
		Headings:   doc.Headings,
		Sidebar:    navigation.DefaultResolver().Sidebar(tree, entry.Path, nil),
		Prev:       linkFor(prev),
		Next:       linkFor(next),
	}
	data, err := executeTemplate(s.templates, "page", view)
	if err != nil {
		return renderedFile{}, err
	}

	file := htmlFile(pageOutputPath(entry.Path), categoryPage, data)
	file.entry.PageID = entry.Page.ID.String()
	file.entry.LastModified = entry.Page.UpdatedAt
	return file, nil
}

func (s *service) renderLanding(site SiteMetadata, tree navigation.Tree, generatedAt time.Time) (renderedFile, error) {
	view := LandingView{
		Site:      site,
		Title:     site.Name,
		Canonical: site.BaseURL + "/",
		Cards:     navigation.Landing(tree, navigation.DefaultLandingLinks),
	}
	data, err := executeTemplate(s.templates, "landing", view)
	if err != nil {
		return renderedFile{}, err
	}
	file := htmlFile("index.html", categoryLanding, data)
	file.entry.LastModified = generatedAt
	return file, nil
}

func (s *service) sitemapFile(site SiteMetadata, tree navigation.Tree, generatedAt time.Time) renderedFile {
	routes := []sitemapEntry{{Route: "/", LastMod: generatedAt}}
	for _, entry := range tree.Flatten() {
		routes = append(routes, sitemapEntry{Route: entry.Path + "/", LastMod: entry.Page.UpdatedAt})
	}
	return textFile("sitemap.xml", categorySitemap, "application/xml", buildSitemap(site.BaseURL, routes, generatedAt))
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	data, err := s.deps.Writer.ReadFile(ctx, manifestFileName)
	if errors.Is(err, ErrArtifactMissing) {
		return newBuildManifest(), nil
	}
	if err != nil {
		return nil, err
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	return s.deps.Writer.WriteFile(ctx, WriteRequest{
		Path:        manifestFileName,
		Data:        data,
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
	})
}

func (s *service) effectiveWorkerCount(jobs int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return max(1, min(workers, jobs))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

// pageOutputPath maps /guides/intro to guides/intro/index.html.
func pageOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func linkFor(entry *navigation.Entry) *navigation.Link {
	if entry == nil {
		return nil
	}
	return &navigation.Link{Title: entry.Page.Title, Path: entry.Path}
}

func htmlFile(name string, category writeCategory, data []byte) renderedFile {
	return newRenderedFile(name, category, "text/html; charset=utf-8", data)
}

func textFile(name string, category writeCategory, contentType, body string) renderedFile {
	return newRenderedFile(name, category, contentType, []byte(body))
}

func newRenderedFile(name string, category writeCategory, contentType string, data []byte) renderedFile {
	checksum := computeHash(data)
	return renderedFile{
		request: WriteRequest{
			Path:        name,
			Data:        data,
			Category:    category,
			ContentType: contentType,
			Checksum:    checksum,
		},
		entry: ManifestFile{
			Path:     name,
			Checksum: checksum,
			Size:     len(data),
			Category: category,
		},
	}
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
