package http

import "net/http"

func (api *AdminAPI) registerSettingsRoutes(rt router, base string) {
	root := joinPath(base, "settings")
	rt.handle("GET "+root, api.handleSettingsGet)
	rt.handle("PUT "+root, api.handleSettingsUpdate)
	rt.handle("GET "+root+"/export", api.handleSettingsExport)
	rt.handle("POST "+root+"/import", api.handleSettingsImport)
	rt.handle("POST "+root+"/reset", api.handleSettingsReset)
}

func (api *AdminAPI) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	current, err := api.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (api *AdminAPI) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	current, err := api.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	next := current
	if err := decodeJSON(r, &next); err != nil {
		writeBadRequest(w, "invalid settings payload")
		return
	}
	saved, err := api.settings.Update(r.Context(), next)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (api *AdminAPI) handleSettingsExport(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	data, err := api.settings.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="site-settings.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (api *AdminAPI) handleSettingsImport(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	raw, err := readBody(r)
	if err != nil {
		writeBadRequest(w, "invalid settings payload")
		return
	}
	saved, err := api.settings.Import(r.Context(), raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (api *AdminAPI) handleSettingsReset(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeUnavailable(w)
		return
	}
	saved, err := api.settings.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
