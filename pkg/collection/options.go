package collection

import "github.com/adfharrison1/go-qbe/pkg/domain"

// Option configures a Collection at construction.
type Option func(*config)

type config struct {
	mode   domain.IndexMode
	fields []string
}

// WithIndexes fixes the indexed fields. The list must be non-empty; leaving
// the option out selects autoindexing instead.
func WithIndexes(fields ...string) Option {
	return func(c *config) {
		c.mode = domain.IndexExplicit
		c.fields = append([]string{}, fields...)
	}
}

// WithAutoIndex indexes every field the collection encounters. This is the
// default.
func WithAutoIndex() Option {
	return func(c *config) {
		c.mode = domain.IndexAuto
		c.fields = nil
	}
}
