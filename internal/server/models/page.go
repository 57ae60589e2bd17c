package models

import "math"

// Paging defaults.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 30
)

// PageRequest selects one page of a list, optionally filtered by a
// case-insensitive substring.
type PageRequest struct {
	Number int
	Size   int
	Search string
}

// Normalize fills in defaults for unset values.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 1 {
		p.Number = DefaultPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset is the number of rows skipped before this page. Pages past
// the representable range saturate at math.MaxInt and so come back empty.
func (p PageRequest) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
}

// Page is one page of results plus its position in the full list.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds a page, keeping Data non-nil so it encodes as [].
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data:       items,
		Pagination: Pagination{PageNumber: req.Number, PageSize: req.Size, Total: total},
	}
}
