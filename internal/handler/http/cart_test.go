package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneha01vaish/BackendAPICartItem/internal/session"
)

func TestGetCart_NewSessionGetsID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	id := rec.Header().Get(session.HeaderName)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	data := decodeCart(t, rec)
	assert.Empty(t, data.Cart)
	assert.Zero(t, data.Total)
	assert.Zero(t, data.ItemCount)
	assert.Contains(t, rec.Body.String(), `"cart":[]`)

	_, err = s.carts.Get(context.Background(), id)
	assert.NoError(t, err, "cart should be created on first access")
}

func TestGetCart_EchoesProvidedSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/cart", "my-session", "")
	assert.Equal(t, "my-session", rec.Header().Get(session.HeaderName))
}

func TestAddItem_FreshSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Item added to cart", decodeEnvelope(t, rec).Message)

	data := decodeCart(t, rec)
	require.Len(t, data.Cart, 1)
	assert.Equal(t, lineItemResponse{
		ID:       1,
		Name:     "Laptop Pro 15",
		Price:    999.99,
		Image:    "https://images.example.com/laptop.jpg",
		Quantity: 2,
	}, data.Cart[0])
	assert.Equal(t, 1999.98, data.Total)
	assert.Equal(t, 2, data.ItemCount)
	assert.Contains(t, rec.Body.String(), `"total":1999.98`)
}

func TestAddItem_DefaultsToOne(t *testing.T) {
	s := newTestServer(t)

	for i, body := range []string{"", "{}", `{"quantity":null}`} {
		rec := s.do(t, http.MethodPost, "/api/cart/2", fmt.Sprintf("default-%d", i), body)
		require.Equal(t, http.StatusCreated, rec.Code, "body %q", body)
		assert.Equal(t, 1, decodeCart(t, rec).Cart[0].Quantity)
	}
}

func TestAddItem_MergesAndTotals(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":1}`)
	s.do(t, http.MethodPost, "/api/cart/3", "s1", `{"quantity":1}`)
	rec := s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeCart(t, rec)
	require.Len(t, data.Cart, 2)
	assert.Equal(t, 3, data.Cart[0].Quantity)
	assert.Equal(t, 4, data.ItemCount)
	assert.Equal(t, 3399.96, data.Total)
}

func TestAddItem_WholeNumberFloatAccepted(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":3.0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, decodeCart(t, rec).ItemCount)
}

func TestAddItem_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"invalid id", "/api/cart/abc", `{"quantity":1}`, http.StatusBadRequest, "INVALID_ID"},
		{"zero quantity", "/api/cart/1", `{"quantity":0}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"negative quantity", "/api/cart/1", `{"quantity":-1}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"fractional quantity", "/api/cart/1", `{"quantity":1.5}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"string quantity", "/api/cart/1", `{"quantity":"2"}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"malformed body", "/api/cart/1", `{"quantity":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown product", "/api/cart/999", `{"quantity":1}`, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"over stock", "/api/cart/1", `{"quantity":51}`, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := s.do(t, http.MethodPost, tt.path, "s1", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Code)
			assert.Zero(t, s.carts.Len())
		})
	}
}

func TestUpdateItem_Replaces(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":5}`)
	rec := s.do(t, http.MethodPut, "/api/cart/1", "s1", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeCart(t, rec)
	assert.Equal(t, 2, data.Cart[0].Quantity)
	assert.Equal(t, 1999.98, data.Total)
}

func TestUpdateItem_OverStockLeavesCartUnchanged(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":2}`)
	rec := s.do(t, http.MethodPut, "/api/cart/1", "s1", `{"quantity":51}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeEnvelope(t, rec).Code)

	data := decodeCart(t, s.do(t, http.MethodGet, "/api/cart", "s1", ""))
	assert.Equal(t, 2, data.Cart[0].Quantity)
}

func TestUpdateItem_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"missing quantity", "/api/cart/1", `{}`, http.StatusBadRequest, "QUANTITY_REQUIRED"},
		{"no body", "/api/cart/1", "", http.StatusBadRequest, "QUANTITY_REQUIRED"},
		{"zero quantity", "/api/cart/1", `{"quantity":0}`, http.StatusBadRequest, "QUANTITY_REQUIRED"},
		{"negative quantity", "/api/cart/1", `{"quantity":-3}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"invalid id", "/api/cart/x", `{"quantity":1}`, http.StatusBadRequest, "INVALID_ID"},
		{"unknown product", "/api/cart/999", `{"quantity":1}`, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"not in cart", "/api/cart/2", `{"quantity":1}`, http.StatusNotFound, "ITEM_NOT_IN_CART"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":1}`)

			rec := s.do(t, http.MethodPut, tt.path, "s1", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeEnvelope(t, rec).Code)
		})
	}
}

func TestRemoveItem(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":1}`)
	s.do(t, http.MethodPost, "/api/cart/2", "s1", `{"quantity":2}`)

	rec := s.do(t, http.MethodDelete, "/api/cart/1", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item removed from cart", decodeEnvelope(t, rec).Message)

	data := decodeCart(t, rec)
	require.NotNil(t, data.RemovedItem)
	assert.Equal(t, 1, data.RemovedItem.ID)
	require.Len(t, data.Cart, 1)
	assert.Equal(t, 2, data.Cart[0].ID)
	assert.Equal(t, 399.98, data.Total)
}

func TestRemoveItem_LastLine(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/3", "s1", `{"quantity":1}`)
	data := decodeCart(t, s.do(t, http.MethodDelete, "/api/cart/3", "s1", ""))

	assert.Empty(t, data.Cart)
	assert.Zero(t, data.ItemCount)
	assert.Zero(t, data.Total)
}

func TestRemoveItem_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodDelete, "/api/cart/999", "s1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ITEM_NOT_IN_CART", decodeEnvelope(t, rec).Code)

	rec = s.do(t, http.MethodDelete, "/api/cart/abc", "s1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", decodeEnvelope(t, rec).Code)
}

func TestClearCart(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/1", "s1", `{"quantity":1}`)
	rec := s.do(t, http.MethodDelete, "/api/cart", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Cart cleared","data":{"cart":[],"total":0,"itemCount":0}}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/cart", "s1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CART_ALREADY_EMPTY", decodeEnvelope(t, rec).Code)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/cart/1", "alice", `{"quantity":1}`)
	s.do(t, http.MethodPost, "/api/cart/2", "bob", `{"quantity":3}`)

	alice := decodeCart(t, s.do(t, http.MethodGet, "/api/cart", "alice", ""))
	bob := decodeCart(t, s.do(t, http.MethodGet, "/api/cart", "bob", ""))

	require.Len(t, alice.Cart, 1)
	require.Len(t, bob.Cart, 1)
	assert.Equal(t, 1, alice.Cart[0].ID)
	assert.Equal(t, 2, bob.Cart[0].ID)
	assert.Equal(t, 3, bob.ItemCount)
}
