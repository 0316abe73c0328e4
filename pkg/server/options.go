package server

import (
	"github.com/adfharrison1/go-qbe/pkg/storage"
)

// Option configures a Server
type Option func(*config)

type config struct {
	storageOptions []storage.StorageOption
	rateLimit      float64
	rateBurst      int
	compression    bool
}

func defaultConfig() config {
	return config{compression: true}
}

// WithStorageOptions passes options through to the storage engine
func WithStorageOptions(opts ...storage.StorageOption) Option {
	return func(c *config) {
		c.storageOptions = append(c.storageOptions, opts...)
	}
}

// WithRateLimit limits the server to rps requests per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) {
		c.rateLimit = rps
		c.rateBurst = burst
	}
}

// WithCompression enables or disables response compression
func WithCompression(enabled bool) Option {
	return func(c *config) {
		c.compression = enabled
	}
}
