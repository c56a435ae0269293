// Package app wires the capture, detection, configuration and rendering
// pieces of the posecam demo into a single pipeline.
package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/nmurthy/posecam/internal/backend"
	"github.com/nmurthy/posecam/internal/capture"
	"github.com/nmurthy/posecam/internal/config"
	"github.com/nmurthy/posecam/internal/detector"
	"github.com/nmurthy/posecam/internal/pose"
	"github.com/nmurthy/posecam/internal/render"
	"github.com/nmurthy/posecam/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is static.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without activity before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	Camera         capture.Camera
	Detector       detector.Detector
	CameraID       int
	ActivityThresh float64
}

// App orchestrates the detection pipeline and owns the shared runtime
// configuration. Configuration changes go through the configurator;
// the pipeline goroutine only reads.
type App struct {
	config       Config
	camera       capture.Camera
	activity     *capture.ActivityDetector
	detector     detector.Detector
	runtimeCfg   *config.RuntimeConfig
	env          *backend.Environment
	registry     *backend.Registry
	configurator *backend.Configurator
	renderer     *render.Renderer

	enabled     bool
	onWarning   func(msg string)
	mu          sync.RWMutex
	stopCh      chan struct{}
	sessionID   string
	latestJPEG  []byte
	latestPoses []pose.Pose
}

// New creates an App with the given configuration. The backend registry
// starts with the CPU delegate; accelerated delegates are registered by
// the caller when the environment supports them.
func New(cfg Config) *App {
	threshold := cfg.ActivityThresh
	if threshold <= 0 {
		threshold = 1.0 // Default threshold: 1% pixel change
	}

	camera := cfg.Camera
	if camera == nil {
		camCfg := capture.DefaultConfig()
		camCfg.DeviceID = cfg.CameraID
		camera = capture.NewCamera(camCfg)
	}

	runtimeCfg := config.Default()

	meta, err := pose.MetaFor(runtimeCfg.Model().Name)
	if err != nil {
		// Default config names a known model.
		panic(err)
	}

	a := &App{
		config:     cfg,
		camera:     camera,
		activity:   capture.NewActivityDetector(threshold),
		runtimeCfg: runtimeCfg,
		env:        backend.NewEnvironment(),
		registry:   backend.NewRegistry(),
		renderer:   render.New(meta),
	}

	a.registry.Register(backend.NewDelegateFactory(backend.DefaultBackend))

	a.configurator = backend.New(config.DefaultRuntime, a.env, a.registry,
		a.runtimeCfg,
		backend.WithWarnFunc(a.notifyWarning),
		backend.WithRefreshHook(a.persistConfig))

	a.applyRenderSettings(runtimeCfg.Model())

	if cfg.Detector != nil {
		a.detector = cfg.Detector
	} else {
		a.detector = a.newDetector()
	}

	return a
}

// newDetector builds a detector for the current configuration. The model
// service is preferred; when its script is missing the mock detector
// keeps the rest of the demo usable.
func (a *App) newDetector() detector.Detector {
	mc := a.runtimeCfg.Model()
	dc := detector.Config{
		Model:          mc.Name,
		Backend:        a.backendName(),
		MaxPoses:       mc.MaxPoses,
		EnableTracking: mc.EnableTracking,
	}

	if svc, err := detector.NewServiceDetector(dc); err == nil {
		log.Printf("Using pose service (model=%s backend=%s)", dc.Model, dc.Backend)
		return svc
	} else {
		log.Printf("Pose service not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
}

// backendName strips the runtime prefix from the active backend spec.
func (a *App) backendName() string {
	spec := a.runtimeCfg.Backend()
	if _, name, ok := strings.Cut(spec, "-"); ok {
		return name
	}
	return spec
}

// applyRenderSettings pushes model settings into the renderer.
func (a *App) applyRenderSettings(mc config.ModelConfig) {
	if meta, err := pose.MetaFor(mc.Name); err == nil {
		a.renderer.SetModelMeta(meta)
	}
	a.renderer.SetScoreThreshold(mc.ScoreThreshold)
	a.renderer.SetTracking(mc.EnableTracking)
}

// RegisterBackend makes an additional backend delegate selectable.
func (a *App) RegisterBackend(f backend.Factory) {
	a.registry.Register(f)
}

// SetEnabled enables or disables pose detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether pose detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnWarning sets the callback invoked with user-facing warnings, such as
// the unsupported-backend fallback notice. Warnings are always logged;
// the callback is how they reach visible UI like the tray.
func (a *App) OnWarning(fn func(msg string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onWarning = fn
}

// notifyWarning logs a warning and forwards it to the warning listener.
func (a *App) notifyWarning(msg string) {
	log.Printf("warning: %s", msg)

	a.mu.RLock()
	fn := a.onWarning
	a.mu.RUnlock()

	if fn != nil {
		fn(msg)
	}
}

// SetDetector sets the detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// ConfigSnapshot returns a copy of the runtime configuration.
func (a *App) ConfigSnapshot() config.Snapshot {
	return a.runtimeCfg.Snapshot()
}

// SetBackendAndFlags is the entry point for option-panel events: it
// validates and applies flag overrides, switches the backend when the
// spec names the managed runtime, restarts the detector against the new
// backend and persists the resulting configuration.
func (a *App) SetBackendAndFlags(ctx context.Context, flags map[string]any,
	backendSpec string) error {

	if err := a.configurator.SetBackendAndEnvFlags(ctx, flags, backendSpec); err != nil {
		return err
	}

	a.reloadDetector()
	a.persistConfig()
	return nil
}

// SetModelConfig replaces the model settings, updates the renderer and
// restarts the detector with the new model.
func (a *App) SetModelConfig(mc config.ModelConfig) error {
	if _, err := pose.MetaFor(mc.Name); err != nil {
		return err
	}

	a.runtimeCfg.SetModel(mc)
	a.applyRenderSettings(mc)
	a.reloadDetector()
	a.persistConfig()
	return nil
}

// reloadDetector swaps in a detector built from the current config,
// unless the detector was injected (tests keep their mock).
func (a *App) reloadDetector() {
	if a.config.Detector != nil {
		return
	}

	a.mu.Lock()
	old := a.detector
	a.detector = a.newDetector()
	a.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
}

// persistConfig saves the runtime configuration snapshot. It doubles as
// the configurator's UI refresh hook, so fallback decisions land in the
// store and in anything watching it.
func (a *App) persistConfig() {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().SaveRuntimeConfig(a.runtimeCfg.Snapshot()); err != nil {
		log.Printf("Failed to persist config: %v", err)
	}
}

// LoadPersistedConfig restores settings saved by a previous run.
func (a *App) LoadPersistedConfig() error {
	if a.config.Store == nil {
		return nil
	}

	snap, err := a.config.Store.Settings().LoadRuntimeConfig()
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	a.runtimeCfg.Restore(snap)
	a.applyRenderSettings(a.runtimeCfg.Model())
	a.reloadDetector()
	return nil
}

// BackendInfo describes the selectable backends for the option panel.
type BackendInfo struct {
	Registered []string `json:"registered"`
	Active     string   `json:"active"`
	LastGood   string   `json:"lastGood"`
}

// Backends reports the registry state.
func (a *App) Backends() BackendInfo {
	info := BackendInfo{
		Registered: a.registry.Names(),
		LastGood:   a.registry.LastGood(),
	}
	if active := a.registry.Active(); active != nil {
		info.Active = active.Name()
	}
	return info
}

// TunableFlags returns the flag allow-list for the option panel.
func (a *App) TunableFlags() map[string][]any {
	flags := make(map[string][]any)
	for _, name := range backend.TunableFlagNames() {
		flags[name] = backend.AllowedValues(name)
	}
	return flags
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	if a.config.Store != nil {
		snap := a.runtimeCfg.Snapshot()
		id, err := a.config.Store.Sessions().Create(snap.Backend, snap.Model.Name)
		if err != nil {
			log.Printf("Failed to record session: %v", err)
		} else {
			a.sessionID = id
		}
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.activity.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.config.Store != nil && a.sessionID != "" {
		if err := a.config.Store.Sessions().End(a.sessionID); err != nil {
			log.Printf("Failed to end session: %v", err)
		}
		a.sessionID = ""
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// LatestFrame returns the most recent annotated frame as JPEG bytes,
// nil when no frame has been processed yet.
func (a *App) LatestFrame() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latestJPEG
}

// LatestPoses returns the poses detected in the most recent frame.
func (a *App) LatestPoses() []pose.Pose {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latestPoses
}
