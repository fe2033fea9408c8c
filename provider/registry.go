package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/spiralnet/launchpad/errors"
	"github.com/spiralnet/launchpad/logger"
)

// Registry maps reference strings to application providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register binds a provider to a reference string. Registering the same
// reference twice is an error: the location reference is fixed and
// documented, and a silent override would change which application serves.
func (r *Registry) Register(ref string, p Provider) error {
	if ref == "" {
		return fmt.Errorf("provider: reference must not be empty")
	}
	if p == nil {
		return fmt.Errorf("provider: provider must not be nil for %q", ref)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[ref]; exists {
		return fmt.Errorf("provider: %q already registered", ref)
	}
	r.providers[ref] = p
	return nil
}

// Lookup returns the provider for a reference, or nil.
func (r *Registry) Lookup(ref string) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[ref]
}

// Refs returns all registered references, sorted.
func (r *Registry) Refs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	refs := make([]string, 0, len(r.providers))
	for ref := range r.providers {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Load resolves the application object behind ref. It fails with an
// APPLICATION_LOAD_FAILED error when the reference is unknown, the
// constructor fails, or the constructor yields a nil handler.
func (r *Registry) Load(ctx context.Context, ref string) (*Handle, error) {
	p := r.Lookup(ref)
	if p == nil {
		return nil, apperrors.ApplicationLoad(ref, fmt.Errorf("no provider registered (known: %v)", r.Refs()))
	}

	handler, err := p.Application(ctx)
	if err != nil {
		return nil, apperrors.ApplicationLoad(ref, err)
	}
	if handler == nil {
		return nil, apperrors.ApplicationLoad(ref, fmt.Errorf("provider %q returned a nil handler", p.Name()))
	}

	logger.Info("Application loaded", map[string]interface{}{
		logger.FieldAppRef: ref,
		"application":      p.Name(),
	})
	return &Handle{ref: ref, name: p.Name(), handler: handler}, nil
}

// defaultRegistry backs the package-level registration functions.
var defaultRegistry = NewRegistry()

// Register binds a provider in the default registry.
func Register(ref string, p Provider) error {
	return defaultRegistry.Register(ref, p)
}

// MustRegister is Register that panics on error, for use from init functions.
func MustRegister(ref string, p Provider) {
	if err := Register(ref, p); err != nil {
		panic(err)
	}
}

// Load resolves ref against the default registry.
func Load(ctx context.Context, ref string) (*Handle, error) {
	return defaultRegistry.Load(ctx, ref)
}
