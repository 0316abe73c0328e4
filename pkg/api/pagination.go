package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// Query parameters reserved for paging. They never become example fields.
const (
	paramLimit  = "limit"
	paramOffset = "offset"
)

// parsePagination reads limit/offset from the query string. It returns nil
// when neither parameter is present.
func parsePagination(q url.Values) (*domain.PaginationOptions, error) {
	if !q.Has(paramLimit) && !q.Has(paramOffset) {
		return nil, nil
	}
	opts := domain.DefaultPaginationOptions()
	if s := q.Get(paramLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid limit %q", domain.ErrInvalidPagination, s)
		}
		opts.Limit = n
	}
	if s := q.Get(paramOffset); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid offset %q", domain.ErrInvalidPagination, s)
		}
		opts.Offset = n
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPagination, err)
	}
	return opts, nil
}
