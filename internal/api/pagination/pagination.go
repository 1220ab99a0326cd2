// Package pagination parses page/limit query parameters and builds
// the paginated response envelope.
package pagination

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matt-dz/foodgram/internal/config"
)

const (
	PageParam  = "page"
	LimitParam = "limit"
)

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// FromRequest reads the page and limit query parameters. Missing values fall
// back to the first page and the configured page size; limit is capped at
// the configured maximum.
func FromRequest(r *http.Request, conf config.Pagination) (Page, error) {
	query := r.URL.Query()
	page := Page{Number: 1, Limit: conf.PageSize}

	if raw := query.Get(PageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPage
		}
		page.Number = n
	}

	if raw := query.Get(LimitParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidLimit
		}
		page.Limit = n
	}
	if conf.MaxPageSize > 0 && page.Limit > conf.MaxPageSize {
		page.Limit = conf.MaxPageSize
	}
	// The offset must fit in a bigint.
	if page.Limit > 0 && int64(page.Number-1) > math.MaxInt64/int64(page.Limit) {
		return Page{}, ErrInvalidPage
	}

	return page, nil
}

type Response[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewResponse wraps results in the envelope. The next and previous links
// repeat the request's query with the page number replaced and are rooted
// at origin.
func NewResponse[T any](r *http.Request, origin string, page Page, count int64, results []T) Response[T] {
	if results == nil {
		results = []T{}
	}
	resp := Response[T]{Count: count, Results: results}

	if count-page.Offset() > int64(page.Limit) {
		next := pageURL(r, origin, page.Number+1)
		resp.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(r, origin, page.Number-1)
		resp.Previous = &prev
	}
	return resp
}

func pageURL(r *http.Request, origin string, number int) string {
	query := url.Values{}
	for k, v := range r.URL.Query() {
		query[k] = v
	}
	query.Set(PageParam, strconv.Itoa(number))

	return strings.TrimRight(origin, "/") + r.URL.Path + "?" + query.Encode()
}
