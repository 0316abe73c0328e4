package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrInvalidPagination  = errors.New("invalid pagination options")
	ErrInvalidRecord      = errors.New("invalid record")
	ErrInvalidName        = errors.New("invalid collection name")
	ErrCollectionLimit    = errors.New("collection limit reached")
)

// ConfigurationError reports an invalid collection configuration. It is a
// caller programming error and only returned at construction.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
