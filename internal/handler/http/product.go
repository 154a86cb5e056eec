package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sneha01vaish/BackendAPICartItem/internal/service"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/httputil"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/pagination"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
	verbose bool
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger, verbose bool) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger, verbose: verbose}
}

// ListProducts handles GET /api/products?page&limit&search
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	query := r.URL.Query().Get("search")

	products, meta, err := h.service.SearchProducts(r.Context(), query, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK("", newProductListResponse(products, meta)))
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.verbose)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK("", newProductResponse(product)))
}
