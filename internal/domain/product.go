package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is the most that may sit in one cart; it
// is never decremented.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
}

// Matches reports whether the lower-cased query is a substring of the
// product's name or description. An empty query matches everything.
func (p *Product) Matches(lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery)
}
