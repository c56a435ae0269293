// Package config holds the runtime configuration shared by the
// detection pipeline, the backend configurator and the option-panel
// surfaces. The configuration is passed by reference and mutated only
// through its setters, which keep a single-writer discipline over the
// shared state.
package config

import "sync"

// Runtime and backend defaults.
const (
	DefaultRuntime = "litert"
	DefaultBackend = "litert-cpu"
)

// ModelConfig selects the pose model and its detection tunables.
type ModelConfig struct {
	Name           string  `json:"name"`
	ScoreThreshold float64 `json:"scoreThreshold"`
	EnableTracking bool    `json:"enableTracking"`
	MaxPoses       int     `json:"maxPoses"`
}

// DefaultModelConfig returns the model settings the demo starts with.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Name:           "movenet",
		ScoreThreshold: 0.3,
		EnableTracking: true,
		MaxPoses:       6,
	}
}

// RuntimeConfig is the mutable configuration of a detection session:
// the active backend spec, the model settings and the flag overrides
// applied to the compute environment. It persists for the lifetime of
// the session and, via the settings store, across sessions.
type RuntimeConfig struct {
	mu            sync.RWMutex
	backend       string
	model         ModelConfig
	flagOverrides map[string]any
}

// Default returns a RuntimeConfig with the demo's starting values.
func Default() *RuntimeConfig {
	return &RuntimeConfig{
		backend:       DefaultBackend,
		model:         DefaultModelConfig(),
		flagOverrides: make(map[string]any),
	}
}

// Backend returns the active backend spec, e.g. "litert-cpu".
func (c *RuntimeConfig) Backend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend
}

// SetBackend records the active backend spec.
func (c *RuntimeConfig) SetBackend(spec string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend = spec
}

// Model returns the current model settings.
func (c *RuntimeConfig) Model() ModelConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel replaces the model settings.
func (c *RuntimeConfig) SetModel(m ModelConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = m
}

// FlagOverrides returns a copy of the applied flag overrides.
func (c *RuntimeConfig) FlagOverrides() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.flagOverrides))
	for k, v := range c.flagOverrides {
		out[k] = v
	}
	return out
}

// SetFlagOverrides merges validated flag overrides into the config.
func (c *RuntimeConfig) SetFlagOverrides(flags map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range flags {
		c.flagOverrides[k] = v
	}
}

// Snapshot is a plain copy of the configuration for serialization.
type Snapshot struct {
	Backend       string         `json:"backend"`
	Model         ModelConfig    `json:"modelConfig"`
	FlagOverrides map[string]any `json:"flagOverrides"`
}

// Snapshot returns a copy of the full configuration.
func (c *RuntimeConfig) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	flags := make(map[string]any, len(c.flagOverrides))
	for k, v := range c.flagOverrides {
		flags[k] = v
	}
	return Snapshot{
		Backend:       c.backend,
		Model:         c.model,
		FlagOverrides: flags,
	}
}

// Restore replaces the whole configuration from a snapshot, used when
// loading persisted settings at startup.
func (c *RuntimeConfig) Restore(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Backend != "" {
		c.backend = s.Backend
	}
	if s.Model.Name != "" {
		c.model = s.Model
	}
	if s.FlagOverrides != nil {
		c.flagOverrides = make(map[string]any, len(s.FlagOverrides))
		for k, v := range s.FlagOverrides {
			c.flagOverrides[k] = v
		}
	}
}
