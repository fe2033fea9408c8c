package provider

import (
	"context"
	"net/http"
)

// Provider constructs the application object. Implementations may do real
// work in Application (route building, pool warmup); it is called once per
// process.
type Provider interface {
	// Name is the human-readable application name used in logs.
	Name() string

	// Application returns the handler that receives every request the
	// launcher's system surface does not claim.
	Application(ctx context.Context) (http.Handler, error)
}

// funcProvider adapts a constructor function to Provider.
type funcProvider struct {
	name string
	fn   func(ctx context.Context) (http.Handler, error)
}

func (p *funcProvider) Name() string { return p.name }

func (p *funcProvider) Application(ctx context.Context) (http.Handler, error) {
	return p.fn(ctx)
}

// Func returns a Provider backed by a constructor function.
func Func(name string, fn func(ctx context.Context) (http.Handler, error)) Provider {
	return &funcProvider{name: name, fn: fn}
}

// Static returns a Provider that always yields the given handler. Useful for
// test doubles and trivial applications.
func Static(name string, h http.Handler) Provider {
	return Func(name, func(context.Context) (http.Handler, error) {
		return h, nil
	})
}

// Handle is the resolved application reference held for the process
// lifetime. The launcher owns only this reference, not the application's
// internal state.
type Handle struct {
	ref     string
	name    string
	handler http.Handler
}

// Ref returns the reference string the handle was resolved from.
func (h *Handle) Ref() string { return h.ref }

// Name returns the application name.
func (h *Handle) Name() string { return h.name }

// Handler returns the application handler.
func (h *Handle) Handler() http.Handler { return h.handler }

// NewHandle wraps an already-constructed handler. Intended for tests and
// embedders that bypass the registry.
func NewHandle(ref, name string, handler http.Handler) *Handle {
	return &Handle{ref: ref, name: name, handler: handler}
}
