package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/adfharrison1/go-qbe/pkg/collection"
	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// getEntry looks up a collection without locking it
func (se *StorageEngine) getEntry(collName string) (*collectionEntry, error) {
	se.mu.RLock()
	defer se.mu.RUnlock()
	entry, exists := se.collections[collName]
	if !exists {
		return nil, fmt.Errorf("collection %s: %w", collName, domain.ErrCollectionNotFound)
	}
	return entry, nil
}

// getOrCreateEntry returns the named collection, creating an autoindexed one
// if auto-creation is enabled
func (se *StorageEngine) getOrCreateEntry(collName string) (*collectionEntry, error) {
	if entry, err := se.getEntry(collName); err == nil || !se.autoCreate {
		return entry, err
	}

	se.mu.Lock()
	defer se.mu.Unlock()

	// Double-check in case another goroutine created it
	if entry, exists := se.collections[collName]; exists {
		return entry, nil
	}
	return se.createEntryLocked(collName, nil)
}

// createEntryLocked builds and registers a collection; caller holds se.mu
func (se *StorageEngine) createEntryLocked(collName string, indexes []string) (*collectionEntry, error) {
	if collName == "" {
		return nil, fmt.Errorf("collection name cannot be empty: %w", domain.ErrInvalidName)
	}
	if se.maxCollections > 0 && len(se.collections) >= se.maxCollections {
		return nil, fmt.Errorf("%w: at most %d collections", domain.ErrCollectionLimit, se.maxCollections)
	}

	var opts []collection.Option
	if indexes != nil {
		opts = append(opts, collection.WithIndexes(indexes...))
	}
	coll, err := collection.New(opts...)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &collectionEntry{
		coll:         coll,
		createdAt:    now,
		lastModified: now,
	}
	se.collections[collName] = entry
	return entry, nil
}

// CreateCollection creates a new collection. A nil index list autoindexes;
// a non-nil empty list is a configuration error.
func (se *StorageEngine) CreateCollection(collName string, indexes []string) error {
	se.mu.Lock()
	defer se.mu.Unlock()

	if _, exists := se.collections[collName]; exists {
		return fmt.Errorf("collection %s: %w", collName, domain.ErrCollectionExists)
	}

	_, err := se.createEntryLocked(collName, indexes)
	return err
}

// GetCollectionInfo returns a summary of a collection
func (se *StorageEngine) GetCollectionInfo(collName string) (*domain.CollectionInfo, error) {
	var info *domain.CollectionInfo
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		info = &domain.CollectionInfo{
			Name:        collName,
			Mode:        entry.coll.Mode().String(),
			Indexes:     entry.coll.Indexes(),
			RecordCount: entry.coll.Len(),
		}
		return nil
	})
	return info, err
}

// ListCollections returns collection names in sorted order
func (se *StorageEngine) ListCollections() []string {
	se.mu.RLock()
	defer se.mu.RUnlock()

	names := make([]string, 0, len(se.collections))
	for name := range se.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
