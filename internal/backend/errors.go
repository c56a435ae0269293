package backend

import "fmt"

// InvalidArgumentError reports a malformed or out-of-range flag
// configuration. It always surfaces synchronously to the caller and is
// never silently dropped.
type InvalidArgumentError struct {
	Flag   string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid flag configuration: %s: %s (got %v)",
			e.Flag, e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid flag configuration: %s: %s", e.Flag, e.Reason)
}

// BackendUnavailableError reports a requested backend that is neither
// registered nor a recognized optional backend.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("backend %q is not registered", e.Name)
}
