package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrInvalidParams is wrapped by every query parameter error.
var ErrInvalidParams = errors.New("invalid query parameter")

// Params are the 1-based page and the page size.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads page and limit from the query string. Missing values
// take the configured defaults; malformed or out-of-range values are errors.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: cfg.DefaultPage, Limit: cfg.DefaultLimit}
	q := r.URL.Query()

	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return params, fmt.Errorf("%w: page must be a positive integer", ErrInvalidParams)
		}
		params.Page = page
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParams, cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// Offset returns the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// WithDefaults replaces non-positive values with the defaults and caps Limit.
func (p Params) WithDefaults(cfg Config) Params {
	if p.Page <= 0 {
		p.Page = cfg.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	return p
}
