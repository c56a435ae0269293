// Package backend validates and applies tunable runtime flags and
// switches the active compute backend of the model runtime, with
// fallback behavior when a requested backend is unavailable.
package backend

import "sync"

// tunableFlags is the allow-list of runtime flags and, per flag, the set
// of values it may take. Anything outside this table is rejected before
// a single flag is applied.
var tunableFlags = map[string][]any{
	"NUM_THREADS":              {1, 2, 4, 8},
	"USE_XNNPACK":              {true, false},
	"XNNPACK_FORCE_FP16":       {true, false},
	"GPU_ALLOW_PRECISION_LOSS": {true, false},
	"GPU_INFERENCE_PRIORITY":   {1, 2, 3},
	"CPU_FALLBACK":             {true, false},
	"FLUSH_THRESHOLD":          {-1.0, 0.0, 0.1, 0.25, 0.5, 1.0, 2.0},
}

// TunableFlagNames returns the names of all allow-listed flags, for the
// option panel to enumerate.
func TunableFlagNames() []string {
	names := make([]string, 0, len(tunableFlags))
	for name := range tunableFlags {
		names = append(names, name)
	}
	return names
}

// AllowedValues returns the declared value set for a flag, or nil when
// the flag is not tunable.
func AllowedValues(name string) []any {
	return tunableFlags[name]
}

// Environment is the compute-environment flag store. It is passed by
// reference into the configurator rather than living in package state,
// and all writes go through the validated setter path.
type Environment struct {
	mu    sync.RWMutex
	flags map[string]any
}

// NewEnvironment creates an empty flag store.
func NewEnvironment() *Environment {
	return &Environment{flags: make(map[string]any)}
}

// Get returns the current value of a flag and whether it has been set.
func (e *Environment) Get(name string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.flags[name]
	return v, ok
}

// Flags returns a copy of all currently set flags.
func (e *Environment) Flags() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]any, len(e.flags))
	for k, v := range e.flags {
		out[k] = v
	}
	return out
}

// apply stores a batch of already-validated flags in one step.
func (e *Environment) apply(flags map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range flags {
		e.flags[k] = v
	}
}

// validateFlags checks every entry of flagConfig against the allow-list
// and returns the canonical batch to apply. Values decoded from JSON
// arrive as float64, so integral numbers are matched against integer
// allow-list entries and stored in the allow-list's form.
func validateFlags(flagConfig map[string]any) (map[string]any, error) {
	canonical := make(map[string]any, len(flagConfig))

	for name, value := range flagConfig {
		allowed, ok := tunableFlags[name]
		if !ok {
			return nil, &InvalidArgumentError{
				Flag:   name,
				Reason: "is not a tunable flag",
			}
		}

		matched := false
		for _, a := range allowed {
			if flagValueEqual(a, value) {
				canonical[name] = a
				matched = true
				break
			}
		}
		if !matched {
			return nil, &InvalidArgumentError{
				Flag:   name,
				Value:  value,
				Reason: "value is outside the allowed range",
			}
		}
	}

	return canonical, nil
}

// flagValueEqual compares a candidate value against an allow-list entry,
// treating numeric types as interchangeable.
func flagValueEqual(allowed, v any) bool {
	if allowed == v {
		return true
	}
	av, aok := toFloat(allowed)
	vv, vok := toFloat(v)
	return aok && vok && av == vv
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
