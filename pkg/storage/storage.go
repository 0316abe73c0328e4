package storage

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/adfharrison1/go-qbe/pkg/collection"
	"github.com/adfharrison1/go-qbe/pkg/domain"
)

var _ domain.StorageEngine = (*StorageEngine)(nil)

// CollectionLock provides per-collection concurrency control
type CollectionLock struct {
	mu sync.RWMutex
}

// collectionEntry pairs a collection with its lock and bookkeeping.
type collectionEntry struct {
	lock         CollectionLock
	coll         *collection.Collection
	createdAt    time.Time
	lastModified time.Time
	queryCount   atomic.Int64
	updateCount  int64
}

// StorageEngine hosts named collections and serializes access to each of
// them. Collections themselves are single-threaded; every call goes through
// the owning entry's lock.
type StorageEngine struct {
	mu          sync.RWMutex
	collections map[string]*collectionEntry

	// Configuration
	autoCreate     bool
	maxCollections int
	startedAt      time.Time
}

// NewStorageEngine creates a new storage engine
func NewStorageEngine(options ...StorageOption) *StorageEngine {
	engine := &StorageEngine{
		collections:    make(map[string]*collectionEntry),
		autoCreate:     true,
		maxCollections: 0, // unlimited
		startedAt:      time.Now(),
	}

	// Apply options
	for _, option := range options {
		option(engine)
	}

	return engine
}

// withCollectionReadLock executes a function with a read lock on the specified collection
func (se *StorageEngine) withCollectionReadLock(collName string, fn func(*collectionEntry) error) error {
	entry, err := se.getEntry(collName)
	if err != nil {
		return err
	}
	entry.lock.mu.RLock()
	defer entry.lock.mu.RUnlock()
	return fn(entry)
}

// withCollectionWriteLock executes a function with a write lock on the specified collection
func (se *StorageEngine) withCollectionWriteLock(collName string, fn func(*collectionEntry) error) error {
	entry, err := se.getEntry(collName)
	if err != nil {
		return err
	}
	entry.lock.mu.Lock()
	defer entry.lock.mu.Unlock()
	return fn(entry)
}
