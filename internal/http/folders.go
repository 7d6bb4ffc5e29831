package http

import (
	"net/http"

	"github.com/goliatone/go-docs/internal/pages"
)

type folderUpdatePayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

func (api *AdminAPI) registerFolderRoutes(rt router, base string) {
	root := joinPath(base, "folders")
	rt.handle("GET "+root, api.handleFolderList)
	rt.handle("POST "+root, api.handleFolderCreate)
	rt.handle("GET "+root+"/{id}", api.handleFolderGet)
	rt.handle("PUT "+root+"/{id}", api.handleFolderUpdate)
	rt.handle("DELETE "+root+"/{id}", api.handleFolderDelete)
}

func (api *AdminAPI) handleFolderList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	folders, err := api.pages.ListFolders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (api *AdminAPI) handleFolderCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	var req pages.CreateFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid folder payload")
		return
	}
	folder, err := api.pages.CreateFolder(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (api *AdminAPI) handleFolderGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid folder id")
		return
	}
	folder, err := api.pages.GetFolder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (api *AdminAPI) handleFolderUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid folder id")
		return
	}
	var payload folderUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid folder payload")
		return
	}
	folder, err := api.pages.UpdateFolder(r.Context(), pages.UpdateFolderRequest{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		SortOrder:   payload.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (api *AdminAPI) handleFolderDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid folder id")
		return
	}
	if err := api.pages.DeleteFolder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
