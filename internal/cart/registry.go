package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks one cart per checkout session (a till or a handheld
// terminal). Carts live in memory only; an order snapshots its lines at
// placement, so losing a cart loses nothing that was sold.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Create opens a new empty cart and returns its session id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.carts[id] = New()
	r.mu.Unlock()
	return id
}

// Get returns the cart for a session id.
func (r *Registry) Get(id string) (*Cart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	return c, ok
}

// Delete closes a cart session. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.carts, id)
	r.mu.Unlock()
}
