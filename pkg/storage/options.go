package storage

type StorageOption func(*StorageEngine)

// WithAutoCreate controls whether inserting into an unknown collection
// creates it with autoindexing (default: true).
func WithAutoCreate(enabled bool) StorageOption {
	return func(engine *StorageEngine) {
		engine.autoCreate = enabled
	}
}

// WithMaxCollections caps the number of collections. Zero means no limit.
func WithMaxCollections(n int) StorageOption {
	return func(engine *StorageEngine) {
		engine.maxCollections = n
	}
}
