package query

import "math"

// Page is the requested 1-based page and page size
type Page struct {
	Page  int
	Limit int
}

// Window is the slice of results a repository must return plus the
// metadata reported to the client
type Window struct {
	Skip  int
	Limit int
	Page  int
	Pages int
}

// Paginate computes the page window for a result set of total items.
// total must be counted with the same filter used for the page query.
func Paginate(p Page, total int) Window {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = 1
	}

	pages := 0
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}

	// Pages too far out to address saturate so callers see an empty page
	skip := math.MaxInt
	if p.Page-1 <= math.MaxInt/p.Limit {
		skip = (p.Page - 1) * p.Limit
	}

	return Window{
		Skip:  skip,
		Limit: p.Limit,
		Page:  p.Page,
		Pages: pages,
	}
}

// Offset returns the number of rows to skip for the page
func (p Page) Offset() int {
	return Paginate(p, 0).Skip
}

// Result is the response envelope shared by both listing endpoints
type Result[T any] struct {
	Count int `json:"count"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Data  []T `json:"data"`
}

// NewResult assembles the listing envelope from a page of items
func NewResult[T any](items []T, total int, p Page) Result[T] {
	w := Paginate(p, total)
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Count: len(items),
		Total: total,
		Page:  w.Page,
		Pages: w.Pages,
		Data:  items,
	}
}
