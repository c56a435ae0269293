// Package api provides the HTTP option-panel handlers for the posecam
// demo: runtime configuration, backend selection and session history.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nmurthy/posecam/internal/app"
	"github.com/nmurthy/posecam/internal/backend"
	"github.com/nmurthy/posecam/internal/config"
)

// ConfigHandler handles HTTP requests for the runtime configuration.
type ConfigHandler struct {
	app *app.App
}

// NewConfigHandler creates a new ConfigHandler over the application.
func NewConfigHandler(a *app.App) *ConfigHandler {
	return &ConfigHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type configResponse struct {
	config.Snapshot
	TunableFlags map[string][]any `json:"tunableFlags"`
	Platform     Platform         `json:"platform"`
}

type updateConfigRequest struct {
	Backend       string              `json:"backend"`
	Model         *config.ModelConfig `json:"modelConfig"`
	FlagOverrides map[string]any      `json:"flagOverrides"`
}

// get returns the runtime configuration, the flag allow-list and the
// client platform classification.
func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	resp := configResponse{
		Snapshot:     h.app.ConfigSnapshot(),
		TunableFlags: h.app.TunableFlags(),
		Platform:     DetectPlatform(r.UserAgent()),
	}

	writeJSON(w, http.StatusOK, resp)
}

// update applies a flag-edit or backend-select event from the option
// panel. Flag overrides and the backend spec go through the configurator
// together; the model config is applied afterwards when present.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.FlagOverrides != nil || req.Backend != "" {
		err := h.app.SetBackendAndFlags(r.Context(), req.FlagOverrides, req.Backend)
		if err != nil {
			writeConfigError(w, err)
			return
		}
	}

	if req.Model != nil {
		if err := h.app.SetModelConfig(*req.Model); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, http.StatusOK, h.app.ConfigSnapshot())
}

// writeConfigError maps configurator failures onto HTTP statuses.
func writeConfigError(w http.ResponseWriter, err error) {
	var invalid *backend.InvalidArgumentError
	if errors.As(err, &invalid) {
		http.Error(w, invalid.Error(), http.StatusBadRequest)
		return
	}

	var unavailable *backend.BackendUnavailableError
	if errors.As(err, &unavailable) {
		http.Error(w, unavailable.Error(), http.StatusNotFound)
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
