package domain

// Page size defaults and limits for listings.
const (
	DefaultPageSize = 9
	MaxPageSize     = 100
)

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// NewPaginationParams returns params for page with pageSize normalized:
// zero or negative falls back to DefaultPageSize, anything above MaxPageSize is clamped.
// Page is kept as given so Window can reject it.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// LastPage returns the number of the last page for total items. An empty set still has page 1.
func (p PaginationParams) LastPage(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Window returns ErrPageNotFound if Page is outside 1..LastPage(total).
func (p PaginationParams) Window(total int) error {
	if p.Page < 1 || p.Page > p.LastPage(total) {
		return ErrPageNotFound
	}
	return nil
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

// NewPage wraps items already cut to params.
func NewPage[T any](items []T, total int, params PaginationParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: params.Page, PageSize: params.PageSize}
}

// Paginate cuts the ordered slice all into the page described by params, keeping order.
func Paginate[T any](all []T, params PaginationParams) (*Page[T], error) {
	if err := params.Window(len(all)); err != nil {
		return nil, err
	}
	start := params.Offset()
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}
	return NewPage(all[start:end], len(all), params), nil
}

// HasNext reports whether a later page exists.
func (p *Page[T]) HasNext() bool {
	return p.Page*p.PageSize < p.Total
}

// HasPrev reports whether an earlier page exists.
func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}
