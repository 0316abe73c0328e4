package domain

import (
	"fmt"
)

// PaginationOptions defines limit/offset paging over a result sequence.
type PaginationOptions struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	MaxLimit int `json:"max_limit,omitempty"` // Maximum allowed limit
}

// PaginationResult contains one page of records and paging metadata.
type PaginationResult struct {
	Records []*Record `json:"records"`
	HasNext bool      `json:"has_next"`
	HasPrev bool      `json:"has_prev"`
	Total   int64     `json:"total"`
}

// DefaultPaginationOptions returns default pagination settings
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		Limit:    50,
		MaxLimit: 1000,
	}
}

// Validate validates pagination options
func (po *PaginationOptions) Validate() error {
	if po.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if po.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	if po.MaxLimit > 0 && po.Limit > po.MaxLimit {
		return fmt.Errorf("limit %d exceeds maximum %d", po.Limit, po.MaxLimit)
	}
	return nil
}

// Paginate slices records according to the options. Order is preserved.
func Paginate(records []*Record, options *PaginationOptions) (*PaginationResult, error) {
	if options == nil {
		options = DefaultPaginationOptions()
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPagination, err)
	}

	result := &PaginationResult{
		Records: []*Record{},
		Total:   int64(len(records)),
	}

	limit := options.Limit
	if limit <= 0 {
		limit = 50 // default
	}
	if options.MaxLimit > 0 && limit > options.MaxLimit {
		limit = options.MaxLimit
	}

	start := options.Offset
	if start >= len(records) {
		result.HasPrev = start > 0 && len(records) > 0
		return result, nil
	}
	end := start + limit
	if end < len(records) {
		result.HasNext = true
	} else {
		end = len(records)
	}
	result.HasPrev = start > 0
	result.Records = records[start:end]
	return result, nil
}
