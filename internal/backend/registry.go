package backend

import (
	"context"
	"sync"
)

// Backend is an activated compute execution target of the model runtime.
type Backend interface {
	Name() string
	Close() error
}

// Factory creates backend instances. New may block on device or context
// initialization; the passed context is the caller's suspend point.
type Factory interface {
	Name() string
	New(ctx context.Context) (Backend, error)
}

// Registry holds the known backend factories, the currently active
// backend instance and the last backend that activated successfully.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	active    Backend
	lastGood  string
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under its backend name, replacing any previous
// registration of the same name.
func (r *Registry) Register(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[f.Name()] = f
}

// Names returns the registered backend names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.factories[name]
	return f, ok
}

// Active returns the currently active backend instance, nil when none
// has been activated yet.
func (r *Registry) Active() Backend {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// LastGood returns the name of the last backend that activated
// successfully, empty when none has.
func (r *Registry) LastGood() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastGood
}

// activate tears down the active instance if one exists, re-registers
// the factory and creates a fresh instance from it, so a reset never
// reuses stale backend state. On success the backend is recorded as
// last known good.
func (r *Registry) activate(ctx context.Context, f Factory) (Backend, error) {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()

	if active != nil {
		if err := active.Close(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.active = nil
	r.factories[f.Name()] = f
	r.mu.Unlock()

	// Device init may block; runs outside the registry lock.
	b, err := f.New(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.active = b
	r.lastGood = f.Name()
	r.mu.Unlock()

	return b, nil
}
