package cart

import (
	"sync"

	"github.com/openrx/pharmacy-api/notify"
)

// Registry hands out one reservation engine per cart id, creating and
// restoring engines lazily on first touch.
type Registry struct {
	mu       sync.Mutex
	catalog  Catalog
	repo     Repository
	notifier notify.Notifier
	engines  map[string]*Engine
}

// NewRegistry creates a registry wiring every engine to the given catalog,
// repository, and notifier.
func NewRegistry(cat Catalog, repo Repository, notifier notify.Notifier) *Registry {
	return &Registry{
		catalog:  cat,
		repo:     repo,
		notifier: notifier,
		engines:  make(map[string]*Engine),
	}
}

// ForCart returns the engine for the cart id, creating it if needed.
func (r *Registry) ForCart(cartID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	if engine, ok := r.engines[cartID]; ok {
		return engine
	}

	engine := NewEngine(cartID, r.catalog, r.repo, r.notifier)
	r.engines[cartID] = engine
	return engine
}

// Len returns how many engines are active.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}
