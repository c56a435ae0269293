package backend

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/nmurthy/posecam/internal/config"
)

// DefaultBackend is the fallback target when an optional backend is
// unavailable and no last-known-good backend has been recorded.
const DefaultBackend = "cpu"

// optionalBackends are accelerated backends that may legitimately be
// absent on a given device. Requesting one of these when it is not
// registered is a recoverable condition, not a failure.
var optionalBackends = map[string]bool{
	"gpu": true,
	"npu": true,
}

// Configurator applies tunable runtime flags and switches the active
// compute backend. It owns the single-writer discipline over the shared
// environment, registry and runtime configuration.
type Configurator struct {
	runtime   string
	env       *Environment
	registry  *Registry
	cfg       *config.RuntimeConfig
	warn      func(msg string)
	refreshUI func()
	mu        sync.Mutex
}

// Option customizes a Configurator.
type Option func(*Configurator)

// WithWarnFunc sets the hook used to surface user-facing warnings, such
// as the unsupported-backend fallback notice.
func WithWarnFunc(fn func(msg string)) Option {
	return func(c *Configurator) { c.warn = fn }
}

// WithRefreshHook sets the callback invoked when a fallback decision
// must be reflected in dependent UI state.
func WithRefreshHook(fn func()) Option {
	return func(c *Configurator) { c.refreshUI = fn }
}

// New creates a Configurator managing the named runtime. Backend specs
// whose runtime portion differs are left to other runtimes and only
// have their flags applied.
func New(runtime string, env *Environment, registry *Registry,
	cfg *config.RuntimeConfig, opts ...Option) *Configurator {

	c := &Configurator{
		runtime:  runtime,
		env:      env,
		registry: registry,
		cfg:      cfg,
		warn: func(msg string) {
			log.Printf("warning: %s", msg)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBackendAndEnvFlags validates flagConfig against the tunable-flag
// allow-list, applies all flags atomically to the environment, and then
// resets the compute backend named by backendSpec if its runtime portion
// matches the managed runtime. A nil flagConfig changes no flags.
//
// backendSpec has the form "<runtime>-<backendName>".
func (c *Configurator) SetBackendAndEnvFlags(ctx context.Context,
	flagConfig map[string]any, backendSpec string) error {

	c.mu.Lock()
	defer c.mu.Unlock()

	if flagConfig != nil {
		batch, err := validateFlags(flagConfig)
		if err != nil {
			return err
		}
		c.env.apply(batch)
		c.cfg.SetFlagOverrides(batch)
	}

	runtimeName, backendName, found := strings.Cut(backendSpec, "-")
	if !found || runtimeName != c.runtime {
		return nil
	}

	return c.resetBackend(ctx, backendName)
}

// resetBackend looks the backend up in the registry and activates a
// fresh instance. An unregistered optional backend triggers the warn and
// fallback path instead of failing; any other unregistered name is a
// BackendUnavailableError.
func (c *Configurator) resetBackend(ctx context.Context, name string) error {
	f, ok := c.registry.Lookup(name)
	if !ok {
		if optionalBackends[name] {
			fallback := c.registry.LastGood()
			if fallback == "" {
				fallback = DefaultBackend
			}
			c.warn(fmt.Sprintf(
				"the %s backend is not supported on this device, falling back to %s",
				name, fallback))
			c.cfg.SetBackend(c.spec(fallback))
			if c.refreshUI != nil {
				c.refreshUI()
			}
			return nil
		}
		return &BackendUnavailableError{Name: name}
	}

	if _, err := c.registry.activate(ctx, f); err != nil {
		return fmt.Errorf("reset backend %s: %w", name, err)
	}

	c.cfg.SetBackend(c.spec(name))
	return nil
}

// Runtime returns the managed runtime tag.
func (c *Configurator) Runtime() string {
	return c.runtime
}

// spec builds the full backend spec string for a backend name.
func (c *Configurator) spec(name string) string {
	return c.runtime + "-" + name
}
