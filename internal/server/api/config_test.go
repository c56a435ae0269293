package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nmurthy/posecam/internal/app"
	"github.com/nmurthy/posecam/internal/capture"
	"github.com/nmurthy/posecam/internal/config"
	"github.com/nmurthy/posecam/internal/detector"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	return app.New(app.Config{
		Camera:   capture.NewMockCamera(nil, true),
		Detector: detector.NewMockDetector(),
	})
}

func TestConfigHandler_Get(t *testing.T) {
	h := NewConfigHandler(newTestApp(t))

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Backend      string              `json:"backend"`
		Model        config.ModelConfig  `json:"modelConfig"`
		TunableFlags map[string][]any    `json:"tunableFlags"`
		Platform     Platform            `json:"platform"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Backend != config.DefaultBackend {
		t.Errorf("backend = %q, want %q", resp.Backend, config.DefaultBackend)
	}
	if resp.Model.Name != "movenet" {
		t.Errorf("model = %q, want movenet", resp.Model.Name)
	}
	if _, ok := resp.TunableFlags["NUM_THREADS"]; !ok {
		t.Error("tunableFlags should list NUM_THREADS")
	}
}

func TestConfigHandler_PutFlags(t *testing.T) {
	a := newTestApp(t)
	h := NewConfigHandler(a)

	body := `{"flagOverrides": {"NUM_THREADS": 4, "USE_XNNPACK": true}}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	snap := a.ConfigSnapshot()
	if snap.FlagOverrides["NUM_THREADS"] != 4 {
		t.Errorf("NUM_THREADS override = %v, want 4", snap.FlagOverrides["NUM_THREADS"])
	}
	if snap.FlagOverrides["USE_XNNPACK"] != true {
		t.Errorf("USE_XNNPACK override = %v, want true", snap.FlagOverrides["USE_XNNPACK"])
	}
}

func TestConfigHandler_PutInvalidFlag(t *testing.T) {
	a := newTestApp(t)
	h := NewConfigHandler(a)

	body := `{"flagOverrides": {"NUM_THREADS": 3}}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if len(a.ConfigSnapshot().FlagOverrides) != 0 {
		t.Errorf("invalid batch must not apply, got %v", a.ConfigSnapshot().FlagOverrides)
	}
}

func TestConfigHandler_PutUnknownBackend(t *testing.T) {
	h := NewConfigHandler(newTestApp(t))

	body := `{"backend": "litert-quantum"}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestConfigHandler_PutOptionalBackendFallsBack(t *testing.T) {
	a := newTestApp(t)
	h := NewConfigHandler(a)

	body := `{"backend": "litert-gpu"}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if got := a.ConfigSnapshot().Backend; got != "litert-cpu" {
		t.Errorf("backend after fallback = %q, want litert-cpu", got)
	}
}

func TestConfigHandler_PutModel(t *testing.T) {
	a := newTestApp(t)
	h := NewConfigHandler(a)

	body := `{"modelConfig": {"name": "blazepose", "scoreThreshold": 0.5, "enableTracking": false, "maxPoses": 1}}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	m := a.ConfigSnapshot().Model
	if m.Name != "blazepose" || m.ScoreThreshold != 0.5 || m.MaxPoses != 1 {
		t.Errorf("model after update = %+v", m)
	}
}

func TestConfigHandler_PutUnknownModel(t *testing.T) {
	h := NewConfigHandler(newTestApp(t))

	body := `{"modelConfig": {"name": "handpose"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestConfigHandler_PutInvalidJSON(t *testing.T) {
	h := NewConfigHandler(newTestApp(t))

	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestConfigHandler_MethodNotAllowed(t *testing.T) {
	h := NewConfigHandler(newTestApp(t))

	req := httptest.NewRequest(http.MethodDelete, "/api/config", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
