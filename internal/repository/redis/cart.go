package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
)

const keyPrefix = "cart:"

// CartRepository stores each cart as a JSON document under cart:<session>.
// Keys are written without a TTL.
type CartRepository struct {
	client *redis.Client
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

// Key returns the Redis key for a session.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

// Get loads the session's cart.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, Key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("CART_NOT_FOUND", "Cart not found")
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	return &cart, nil
}

// Save writes the cart, replacing any previous document.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, Key(cart.SessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Ping checks connectivity for readiness probes.
func (r *CartRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
