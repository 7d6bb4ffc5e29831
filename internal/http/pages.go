package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/internal/pages"
)

type pageUpdatePayload struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	FolderID  *uuid.UUID `json:"folder_id,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
}

func (api *AdminAPI) registerPageRoutes(rt router, base string) {
	root := joinPath(base, "pages")
	rt.handle("GET "+root, api.handlePageList)
	rt.handle("POST "+root, api.handlePageCreate)
	rt.handle("GET "+root+"/{id}", api.handlePageGet)
	rt.handle("PUT "+root+"/{id}", api.handlePageUpdate)
	rt.handle("DELETE "+root+"/{id}", api.handlePageDelete)
	rt.handle("POST "+root+"/{id}/publish", api.handlePagePublish(true))
	rt.handle("POST "+root+"/{id}/unpublish", api.handlePagePublish(false))
}

// handlePageList accepts ?folder_id= and ?published= filters.
func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	var filter pages.PageFilter
	query := r.URL.Query()
	if raw := query.Get("folder_id"); raw != "" {
		folderID, err := parseUUID(raw)
		if err != nil {
			writeBadRequest(w, "invalid folder id")
			return
		}
		filter = filter.InFolder(folderID)
	}
	if query.Has("published") {
		published := parseBoolQuery(query.Get("published"), true)
		filter.IsPublished = &published
	}
	list, err := api.pages.ListPages(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	var req pages.CreatePageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid page payload")
		return
	}
	page, err := api.pages.CreatePage(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid page id")
		return
	}
	page, err := api.pages.GetPage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid page id")
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid page payload")
		return
	}
	page, err := api.pages.UpdatePage(r.Context(), pages.UpdatePageRequest{
		ID:        id,
		Title:     payload.Title,
		Content:   payload.Content,
		FolderID:  payload.FolderID,
		SortOrder: payload.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid page id")
		return
	}
	if err := api.pages.DeletePage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handlePagePublish(published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.pages == nil {
			writeUnavailable(w)
			return
		}
		id, err := parseUUID(r.PathValue("id"))
		if err != nil {
			writeBadRequest(w, "invalid page id")
			return
		}
		page, err := api.pages.SetPublished(r.Context(), id, published)
		if err != nil {
			writeError(w, err)
			return
		}
		api.logger.Info("http.admin.page_publish", "page_id", page.ID, "published", published)
		writeJSON(w, http.StatusOK, page)
	}
}
