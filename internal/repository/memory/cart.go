package memory

import (
	"context"
	"sync"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
)

// CartRepository keeps carts in a process-local map. Carts never expire.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartRepository creates an empty in-memory cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*domain.Cart)}
}

// Get returns a copy of the session's cart.
func (r *CartRepository) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, apperrors.NotFound("CART_NOT_FOUND", "Cart not found")
	}
	return cart.Clone(), nil
}

// Save stores a copy of cart.
func (r *CartRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.SessionID] = cart.Clone()
	return nil
}

// Len returns the number of stored carts.
func (r *CartRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
