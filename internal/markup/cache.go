package markup

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
)

// Document is the rendered form of one content string.
type Document struct {
	HTML     string    `json:"html"`
	Headings []Heading `json:"headings"`
}

// CacheObserver receives render cache hit/miss notifications.
type CacheObserver interface {
	ObserveRenderCache(hit bool)
}

// Pipeline runs the renderer and the outline extractor over the same content
// and memoises the pair by content hash. Both stages are pure, so a cached
// Document is byte-identical to a fresh one.
type Pipeline struct {
	renderer *Renderer
	cache    *cache.Cache
	observer CacheObserver
}

// PipelineConfig controls the render cache. A zero TTL disables caching.
type PipelineConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithCacheObserver reports cache lookups to observer.
func WithCacheObserver(observer CacheObserver) PipelineOption {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// NewPipeline wires renderer behind an optional go-cache store.
func NewPipeline(renderer *Renderer, cfg PipelineConfig, opts ...PipelineOption) *Pipeline {
	if renderer == nil {
		renderer = NewRenderer()
	}
	p := &Pipeline{renderer: renderer}
	if cfg.TTL > 0 {
		cleanup := cfg.CleanupInterval
		if cleanup <= 0 {
			cleanup = 2 * cfg.TTL
		}
		p.cache = cache.New(cfg.TTL, cleanup)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Process returns the HTML and outline for content.
func (p *Pipeline) Process(content string) Document {
	if p.cache == nil {
		return p.build(content)
	}

	key := contentKey(content)
	if cached, ok := p.cache.Get(key); ok {
		p.observe(true)
		return cloneDocument(cached.(Document))
	}
	p.observe(false)

	doc := p.build(content)
	p.cache.Set(key, doc, cache.DefaultExpiration)
	return cloneDocument(doc)
}

// Render is Process without the outline.
func (p *Pipeline) Render(content string) string {
	return p.Process(content).HTML
}

// Purge drops every cached document.
func (p *Pipeline) Purge() {
	if p.cache != nil {
		p.cache.Flush()
	}
}

// Len reports how many documents are cached.
func (p *Pipeline) Len() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.ItemCount()
}

func (p *Pipeline) build(content string) Document {
	return Document{
		HTML:     p.renderer.Render(content),
		Headings: Extract(content),
	}
}

func (p *Pipeline) observe(hit bool) {
	if p.observer != nil {
		p.observer.ObserveRenderCache(hit)
	}
}

func contentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func cloneDocument(doc Document) Document {
	doc.Headings = slices.Clone(doc.Headings)
	return doc
}
