package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartRepository(client), mr
}

func sampleCart() *domain.Cart {
	return &domain.Cart{
		SessionID: "sess-001",
		Items: []domain.CartItem{
			{
				ProductID: 1,
				Name:      "Laptop Pro 15",
				Price:     decimal.RequireFromString("999.99"),
				Image:     "https://images.example.com/products/laptop-pro-15.jpg",
				Quantity:  2,
			},
		},
	}
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	cart := sampleCart()
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "sess-001")
	require.NoError(t, err)
	assert.Equal(t, "sess-001", got.SessionID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("999.99")))
	assert.Equal(t, "1999.98", got.Total().StringFixed(2))
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_CorruptDocument(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(Key("bad"), "{not json"))

	_, err := repo.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart")
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_NullItemsBecomesEmpty(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(Key("s"), `{"session_id":"s","items":null}`))

	got, err := repo.Get(context.Background(), "s")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestCartRepository_Save_NoTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), sampleCart()))

	assert.True(t, mr.Exists("cart:sess-001"))
	assert.Zero(t, mr.TTL("cart:sess-001"))
}

func TestCartRepository_Save_Overwrites(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCart()))
	require.NoError(t, repo.Save(ctx, domain.NewCart("sess-001")))

	got, err := repo.Get(ctx, "sess-001")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartRepository_ServerDown(t *testing.T) {
	repo, mr := setupTestRedis(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "s")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	require.Error(t, repo.Save(context.Background(), sampleCart()))
	require.Error(t, repo.Ping(context.Background()))
}

func TestCartRepository_Ping(t *testing.T) {
	repo, _ := setupTestRedis(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
