package pagination

import (
	"net/http"
	"strconv"
)

// Defaults applied when a query parameter is absent or not an integer.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params holds pagination parameters extracted from query strings.
// Values are taken as given: zero or negative numbers are not corrected.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultParams returns page 1 with 10 items per page.
func DefaultParams() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// FromRequest extracts page and limit from an HTTP request.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()
	q := r.URL.Query()

	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = v
	}
	return p
}

// Bounds returns the half-open window [start, end) described by the params.
// The window is not clamped.
func (p Params) Bounds() (start, end int) {
	return (p.Page - 1) * p.Limit, p.Page * p.Limit
}

// Meta describes the page that was returned.
type Meta struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
}

// Paginate slices items according to p and reports the page metadata.
// The returned slice is clamped into range so odd inputs yield an empty page
// instead of a panic; the flags are computed from the unclamped window.
func Paginate[T any](items []T, p Params) ([]T, Meta) {
	total := len(items)
	start, end := p.Bounds()

	meta := Meta{
		CurrentPage:   p.Page,
		TotalProducts: total,
		HasNext:       end < total,
		HasPrev:       start > 0,
	}
	if p.Limit > 0 {
		meta.TotalPages = (total + p.Limit - 1) / p.Limit
	}

	lo, hi := clamp(start, total), clamp(end, total)
	if p.Limit <= 0 || hi < lo {
		return []T{}, meta
	}

	page := make([]T, hi-lo)
	copy(page, items[lo:hi])
	return page, meta
}

func clamp(v, upper int) int {
	if v < 0 {
		return 0
	}
	if v > upper {
		return upper
	}
	return v
}
