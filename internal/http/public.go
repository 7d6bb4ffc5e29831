package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/metrics"
	"github.com/goliatone/go-docs/internal/navigation"
	"github.com/goliatone/go-docs/internal/site"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// PublicAPI serves the reader-facing endpoints. Drafts never appear in any
// response.
type PublicAPI struct {
	basePath   string
	navigation navigation.Service
	site       site.Service
	metrics    *metrics.Metrics
	limiter    *rate.Limiter
	logger     interfaces.Logger
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI instance.
func NewPublicAPI(nav navigation.Service, siteSvc site.Service, opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		basePath:   "/api",
		navigation: nav,
		site:       siteSvc,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithPublicBasePath overrides the base path (defaults to "/api").
func WithPublicBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithRateLimit caps the public API at perSecond requests with burst.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) PublicOption {
	return func(api *PublicAPI) {
		api.limiter = newLimiter(perSecond, burst)
	}
}

// WithPublicMetrics instruments every public route.
func WithPublicMetrics(m *metrics.Metrics) PublicOption {
	return func(api *PublicAPI) {
		api.metrics = m
	}
}

// WithPublicLogger sets the API logger.
func WithPublicLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		api.logger = logging.OrNoOp(logger)
	}
}

// Register attaches the public endpoints to the provided mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	rt := router{mux: mux, metrics: api.metrics, limiter: api.limiter}
	rt.handle("GET "+joinPath(api.basePath, "tree"), api.handleTree)
	rt.handle("GET "+joinPath(api.basePath, "sidebar"), api.handleSidebar)
	rt.handle("GET "+joinPath(api.basePath, "landing"), api.handleLanding)
	rt.handle("GET "+joinPath(api.basePath, "pages/{folder}/{page}"), api.handlePage)
	rt.handle("GET "+joinPath(api.basePath, "pages/{folder}/{page}/toc"), api.handlePageTOC)
	rt.handle("POST "+joinPath(api.basePath, "toc"), api.handleTOC)
	rt.handle("POST "+joinPath(api.basePath, "active-heading"), api.handleActiveHeading)
	return nil
}

func (api *PublicAPI) handleTree(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
		writeUnavailable(w)
		return
	}
	tree, err := api.navigation.Tree(r.Context(), navigation.BuildOptions{PublishedOnly: true})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// handleSidebar reads the current route from ?path= and explicit open state
// from comma separated folder ids in ?open= and ?closed=.
func (api *PublicAPI) handleSidebar(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
		writeUnavailable(w)
		return
	}
	query := r.URL.Query()
	prefs := navigation.OpenPreferences{}
	for _, key := range []string{"open", "closed"} {
		for _, raw := range splitList(query.Get(key)) {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeBadRequest(w, "invalid folder id in "+key)
				return
			}
			prefs.Set(id, key == "open")
		}
	}
	sections, err := api.navigation.Sidebar(r.Context(), query.Get("path"), prefs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (api *PublicAPI) handleLanding(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
		writeUnavailable(w)
		return
	}
	cards, err := api.navigation.Landing(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (api *PublicAPI) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, ok := api.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (api *PublicAPI) handlePageTOC(w http.ResponseWriter, r *http.Request) {
	doc, ok := api.resolve(w, r)
	if !ok {
		return
	}
	headings := doc.Headings
	if headings == nil {
		headings = []markup.Heading{}
	}
	writeJSON(w, http.StatusOK, headings)
}

func (api *PublicAPI) resolve(w http.ResponseWriter, r *http.Request) (*site.Document, bool) {
	if api.site == nil {
		writeUnavailable(w)
		return nil, false
	}
	doc, err := api.site.Resolve(r.Context(), r.PathValue("folder"), r.PathValue("page"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return doc, true
}

type tocPayload struct {
	Content string `json:"content"`
}

func (api *PublicAPI) handleTOC(w http.ResponseWriter, r *http.Request) {
	var payload tocPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid toc payload")
		return
	}
	headings := markup.Extract(payload.Content)
	if headings == nil {
		headings = []markup.Heading{}
	}
	writeJSON(w, http.StatusOK, headings)
}

type activeHeadingPayload struct {
	Headings []markup.Heading `json:"headings"`
	Offsets  []float64        `json:"offsets"`
	Scroll   float64          `json:"scroll"`
}

type activeHeadingResponse struct {
	AnchorID string `json:"anchor_id,omitempty"`
	Active   bool   `json:"active"`
}

func (api *PublicAPI) handleActiveHeading(w http.ResponseWriter, r *http.Request) {
	if api.site == nil {
		writeUnavailable(w)
		return
	}
	var payload activeHeadingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid active heading payload")
		return
	}
	anchor, ok := api.site.ActiveHeading(payload.Headings, payload.Offsets, payload.Scroll)
	writeJSON(w, http.StatusOK, activeHeadingResponse{AnchorID: anchor, Active: ok})
}
