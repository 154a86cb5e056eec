package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	"github.com/sneha01vaish/BackendAPICartItem/internal/repository"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/pagination"
)

// ParseProductID parses a path value into a positive product ID.
func ParseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("INVALID_ID", "Invalid product ID")
	}
	return id, nil
}

// ProductService implements catalog reads.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// GetProduct resolves a raw path ID to a product.
func (s *ProductService) GetProduct(ctx context.Context, rawID string) (*domain.Product, error) {
	id, err := ParseProductID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// SearchProducts filters the catalog by a case-insensitive substring of name
// or description and returns the requested page. Catalog order is kept.
func (s *ProductService) SearchProducts(ctx context.Context, query string, params pagination.Params) ([]domain.Product, pagination.Meta, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list products: %w", err)
	}

	q := strings.ToLower(query)
	matched := all[:0]
	for i := range all {
		if all[i].Matches(q) {
			matched = append(matched, all[i])
		}
	}

	page, meta := pagination.Paginate(matched, params)

	s.logger.DebugContext(ctx, "products searched",
		slog.String("query", query),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("matches", meta.TotalProducts),
	)

	return page, meta, nil
}
