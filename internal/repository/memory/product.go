package memory

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/validator"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogDocument struct {
	Products []productRecord `yaml:"products" validate:"dive"`
}

type productRecord struct {
	ID          int    `yaml:"id" validate:"gt=0"`
	Name        string `yaml:"name" validate:"required"`
	Price       string `yaml:"price" validate:"required"`
	Image       string `yaml:"image" validate:"required,url"`
	Description string `yaml:"description"`
	Stock       int    `yaml:"stock" validate:"gte=0"`
}

// ProductRepository serves the catalog from memory. It is immutable after
// construction, so reads need no locking.
type ProductRepository struct {
	products []domain.Product
	byID     map[int]int
}

// NewDefaultProductRepository loads the built-in catalog.
func NewDefaultProductRepository() (*ProductRepository, error) {
	return LoadCatalog(defaultCatalog)
}

// LoadCatalogFile loads a catalog from a YAML file on disk.
func LoadCatalogFile(path string) (*ProductRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return LoadCatalog(data)
}

// LoadCatalog parses and validates a YAML catalog document.
func LoadCatalog(data []byte) (*ProductRepository, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	repo := &ProductRepository{
		products: make([]domain.Product, 0, len(doc.Products)),
		byID:     make(map[int]int, len(doc.Products)),
	}

	for _, rec := range doc.Products {
		price, err := decimal.NewFromString(rec.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: parse price %q: %w", rec.ID, rec.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("product %d: negative price %s", rec.ID, rec.Price)
		}
		if _, dup := repo.byID[rec.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id", rec.ID)
		}

		repo.byID[rec.ID] = len(repo.products)
		repo.products = append(repo.products, domain.Product{
			ID:          rec.ID,
			Name:        rec.Name,
			Price:       price,
			Image:       rec.Image,
			Description: rec.Description,
			Stock:       rec.Stock,
		})
	}

	return repo, nil
}

// FindByID returns a copy of the product with the given id.
func (r *ProductRepository) FindByID(_ context.Context, id int) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("PRODUCT_NOT_FOUND", "Product not found")
	}
	p := r.products[idx]
	return &p, nil
}

// List returns a copy of the catalog in load order.
func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Len returns the number of products loaded.
func (r *ProductRepository) Len() int {
	return len(r.products)
}
