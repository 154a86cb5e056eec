package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	"github.com/sneha01vaish/BackendAPICartItem/internal/repository/memory"
)

const testCatalog = `products:
  - id: 1
    name: Laptop Pro 15
    price: "999.99"
    image: https://images.example.com/laptop.jpg
    description: High-performance laptop
    stock: 50
  - id: 2
    name: Wireless Headphones
    price: "199.99"
    image: https://images.example.com/headphones.jpg
    description: Noise-cancelling over-ear headphones
    stock: 100
  - id: 3
    name: Smartphone X
    price: "399.99"
    image: https://images.example.com/phone.jpg
    description: Latest smartphone with triple camera
    stock: 75
  - id: 4
    name: Limited Edition Print
    price: "25.00"
    image: https://images.example.com/print.jpg
    description: Signed art print
    stock: 3
  - id: 5
    name: Sold Out Gadget
    price: "10.00"
    image: https://images.example.com/gadget.jpg
    description: Currently unavailable
    stock: 0
`

// --- Mock publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockPublisher) PublishCartCleared(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- Failing repository ---

type failingCartRepo struct {
	getErr  error
	saveErr error
	inner   *memory.CartRepository
}

func (f *failingCartRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.inner.Get(ctx, sessionID)
}

func (f *failingCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.inner.Save(ctx, cart)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestProducts(t *testing.T) *memory.ProductRepository {
	t.Helper()
	products, err := memory.LoadCatalog([]byte(testCatalog))
	require.NoError(t, err)
	return products
}

type cartFixture struct {
	svc       *CartService
	carts     *memory.CartRepository
	publisher *mockPublisher
	metrics   *Metrics
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	carts := memory.NewCartRepository()
	pub := &mockPublisher{}
	pub.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil).Maybe()
	pub.On("PublishCartCleared", mock.Anything, mock.Anything).Return(nil).Maybe()
	metrics := NewMetrics("test", prometheus.NewRegistry())

	return &cartFixture{
		svc:       NewCartService(carts, newTestProducts(t), pub, metrics, newTestLogger()),
		carts:     carts,
		publisher: pub,
		metrics:   metrics,
	}
}

func (f *cartFixture) stored(t *testing.T, sessionID string) *domain.Cart {
	t.Helper()
	cart, err := f.carts.Get(context.Background(), sessionID)
	require.NoError(t, err)
	return cart
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
