package backend

import "context"

// DelegateFactory creates backends that select which compute delegate
// the model service runs with. Construction is cheap on the Go side;
// the heavy device initialization happens inside the model service when
// it is restarted against the new delegate, which is why New still
// takes a context.
type DelegateFactory struct {
	name string
}

// NewDelegateFactory returns a factory for the named delegate.
func NewDelegateFactory(name string) *DelegateFactory {
	return &DelegateFactory{name: name}
}

func (f *DelegateFactory) Name() string {
	return f.name
}

func (f *DelegateFactory) New(ctx context.Context) (Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &delegateBackend{name: f.name}, nil
}

type delegateBackend struct {
	name string
}

func (b *delegateBackend) Name() string {
	return b.name
}

func (b *delegateBackend) Close() error {
	return nil
}
