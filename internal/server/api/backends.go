package api

import (
	"encoding/json"
	"net/http"

	"github.com/nmurthy/posecam/internal/app"
)

// BackendHandler handles backend listing and selection.
type BackendHandler struct {
	app *app.App
}

// NewBackendHandler creates a new BackendHandler over the application.
func NewBackendHandler(a *app.App) *BackendHandler {
	return &BackendHandler{app: a}
}

// ServeHTTP routes GET /api/backends and POST /api/backend.
func (h *BackendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.selectBackend(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list returns the registered backends, the active one and the last
// known good.
func (h *BackendHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Backends())
}

type selectBackendRequest struct {
	Backend string `json:"backend"`
}

// selectBackend applies a backend-select event from the option panel.
func (h *BackendHandler) selectBackend(w http.ResponseWriter, r *http.Request) {
	var req selectBackendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Backend == "" {
		http.Error(w, "backend is required", http.StatusBadRequest)
		return
	}

	if err := h.app.SetBackendAndFlags(r.Context(), nil, req.Backend); err != nil {
		writeConfigError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.app.ConfigSnapshot())
}
