package repository

import (
	"context"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
)

// ProductRepository is read-only access to the catalog.
type ProductRepository interface {
	// FindByID returns the product with the given id or a NotFound error.
	FindByID(ctx context.Context, id int) (*domain.Product, error)

	// List returns every product in catalog order.
	List(ctx context.Context) ([]domain.Product, error)
}

// CartRepository defines cart persistence. Implementations hand out copies,
// so a cart returned by Get can be mutated without touching stored state.
type CartRepository interface {
	// Get returns the cart for a session or a NotFound error.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save stores the cart, replacing any previous cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error
}
