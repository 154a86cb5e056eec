package http

import (
	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/pagination"
)

// Wire forms render money as JSON numbers rounded to cents.
type productResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

type productListResponse struct {
	Products   []productResponse `json:"products"`
	Pagination pagination.Meta   `json:"pagination"`
}

type lineItemResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type cartResponse struct {
	Cart        []lineItemResponse `json:"cart"`
	Total       float64            `json:"total"`
	ItemCount   int                `json:"itemCount"`
	RemovedItem *lineItemResponse  `json:"removedItem,omitempty"`
}

func newProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.Round(2).InexactFloat64(),
		Image:       p.Image,
		Description: p.Description,
		Stock:       p.Stock,
	}
}

func newProductListResponse(products []domain.Product, meta pagination.Meta) productListResponse {
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = newProductResponse(&products[i])
	}
	return productListResponse{Products: out, Pagination: meta}
}

func newLineItemResponse(item domain.CartItem) lineItemResponse {
	return lineItemResponse{
		ID:       item.ProductID,
		Name:     item.Name,
		Price:    item.Price.Round(2).InexactFloat64(),
		Image:    item.Image,
		Quantity: item.Quantity,
	}
}

func newCartResponse(cart *domain.Cart) cartResponse {
	items := make([]lineItemResponse, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = newLineItemResponse(item)
	}
	return cartResponse{
		Cart:      items,
		Total:     cart.Total().InexactFloat64(),
		ItemCount: cart.ItemCount(),
	}
}
