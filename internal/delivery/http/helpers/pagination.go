package helpers

import (
	"net/http"
	"net/url"
	"strconv"

	"eventlist/internal/domain"
)

// Pagination query parameter names.
const (
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// ParsePagination reads page and page_size from the request query string.
// A missing page means 1; a page that is not an integer returns domain.ErrPageNotFound.
// A missing, non-integer or non-positive page_size falls back to domain.DefaultPageSize
// and a larger one than domain.MaxPageSize is clamped.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	q := r.URL.Query()
	page := 1
	if s := q.Get(ParamPage); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return domain.PaginationParams{}, domain.ErrPageNotFound
		}
		page = v
	}
	pageSize := 0
	if s := q.Get(ParamPageSize); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			pageSize = v
		}
	}
	return domain.NewPaginationParams(page, pageSize), nil
}

// PageResponse is the body of a paginated listing.
type PageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPageResponse builds the listing body for page. Next and Previous are absolute URLs
// of r with only the page parameter changed, or nil at either end. A link to the
// first page drops the page parameter.
func NewPageResponse[T any](r *http.Request, page *domain.Page[T]) PageResponse[T] {
	resp := PageResponse[T]{Count: page.Total, Results: page.Items}
	if page.HasNext() {
		u := pageURL(r, page.Page+1)
		resp.Next = &u
	}
	if page.HasPrev() {
		u := pageURL(r, page.Page-1)
		resp.Previous = &u
	}
	return resp
}

// pageURL returns the absolute URL of r with page set to n.
func pageURL(r *http.Request, n int) string {
	u := url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	q := r.URL.Query()
	if n <= 1 {
		q.Del(ParamPage)
	} else {
		q.Set(ParamPage, strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
