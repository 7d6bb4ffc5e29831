package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/metrics"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/settings"
	"github.com/goliatone/go-docs/internal/site"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// AdminAPI registers authoring endpoints for folders, pages, previews and
// site settings.
type AdminAPI struct {
	basePath string
	pages    pages.Service
	site     site.Service
	settings settings.Service
	metrics  *metrics.Metrics
	logger   interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPageService wires the authoring service.
func WithPageService(service pages.Service) AdminOption {
	return func(api *AdminAPI) {
		api.pages = service
	}
}

// WithSiteService wires the renderer used by previews.
func WithSiteService(service site.Service) AdminOption {
	return func(api *AdminAPI) {
		api.site = service
	}
}

// WithSettingsService wires site settings.
func WithSettingsService(service settings.Service) AdminOption {
	return func(api *AdminAPI) {
		api.settings = service
	}
}

// WithAdminMetrics instruments every admin route.
func WithAdminMetrics(m *metrics.Metrics) AdminOption {
	return func(api *AdminAPI) {
		api.metrics = m
	}
}

// WithAdminLogger sets the API logger.
func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		api.logger = logging.OrNoOp(logger)
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	rt := router{mux: mux, metrics: api.metrics}
	api.registerFolderRoutes(rt, api.basePath)
	api.registerPageRoutes(rt, api.basePath)
	api.registerSettingsRoutes(rt, api.basePath)
	rt.handle("POST "+joinPath(api.basePath, "preview"), api.handlePreview)
	api.logger.Debug("http.admin.registered", "base_path", api.basePath)
	return nil
}

type previewPayload struct {
	Content string `json:"content"`
	Device  string `json:"device,omitempty"`
}

func (api *AdminAPI) handlePreview(w http.ResponseWriter, r *http.Request) {
	if api.site == nil {
		writeUnavailable(w)
		return
	}
	var payload previewPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid preview payload")
		return
	}
	preview, err := api.site.Preview(r.Context(), payload.Content, site.Device(payload.Device))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
