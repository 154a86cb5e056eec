package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sneha01vaish/BackendAPICartItem/internal/service"
	"github.com/sneha01vaish/BackendAPICartItem/internal/session"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/httputil"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
	verbose bool
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger, verbose bool) *CartHandler {
	return &CartHandler{service: svc, logger: logger, verbose: verbose}
}

// QuantityRequest is the body of add and update requests.
type QuantityRequest struct {
	Quantity *float64 `json:"quantity"`
}

// quantity returns the requested quantity, or absent when none was sent.
// Fractional or out-of-range numbers are rejected.
func (req QuantityRequest) quantity(absent int) (int, error) {
	if req.Quantity == nil {
		return absent, nil
	}
	q := *req.Quantity
	if q != math.Trunc(q) || q > math.MaxInt32 || q < math.MinInt32 {
		return 0, invalidQuantity()
	}
	return int(q), nil
}

func invalidQuantity() error {
	return apperrors.Validation(service.CodeInvalidQuantity, "Quantity must be a positive integer")
}

// decodeQuantity reads the optional JSON body. A non-numeric quantity is
// reported as an invalid quantity rather than a malformed body.
func decodeQuantity(w http.ResponseWriter, r *http.Request, absent int) (int, error) {
	var req QuantityRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "quantity" {
			return 0, invalidQuantity()
		}
		return 0, apperrors.InvalidInput("Invalid request body")
	}
	return req.quantity(absent)
}

func sessionID(r *http.Request) string {
	id, ok := session.FromContext(r.Context())
	if !ok {
		return session.Resolve("")
	}
	return id
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK("", newCartResponse(cart)))
}

// AddItem handles POST /api/cart/{productId}. Quantity defaults to 1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	quantity, err := decodeQuantity(w, r, 1)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sessionID(r), chi.URLParam(r, "productId"), quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.OK("Item added to cart", newCartResponse(cart)))
}

// UpdateItem handles PUT /api/cart/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	quantity, err := decodeQuantity(w, r, 0)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	cart, err := h.service.UpdateItem(r.Context(), sessionID(r), chi.URLParam(r, "productId"), quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK("Cart updated", newCartResponse(cart)))
}

// RemoveItem handles DELETE /api/cart/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, removed, err := h.service.RemoveItem(r.Context(), sessionID(r), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	resp := newCartResponse(cart)
	item := newLineItemResponse(*removed)
	resp.RemovedItem = &item

	httputil.WriteJSON(w, http.StatusOK, httputil.OK("Item removed from cart", resp))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.ClearCart(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK("Cart cleared", newCartResponse(cart)))
}
