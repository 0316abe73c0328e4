package storage

import (
	"fmt"
	"time"

	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// Insert adds a record to a collection, creating the collection if needed
func (se *StorageEngine) Insert(collName string, rec *domain.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: record cannot be nil", domain.ErrInvalidRecord)
	}
	entry, err := se.getOrCreateEntry(collName)
	if err != nil {
		return err
	}

	entry.lock.mu.Lock()
	defer entry.lock.mu.Unlock()

	entry.coll.Add(rec)
	entry.lastModified = time.Now()
	return nil
}

// BatchInsert adds several records under a single lock acquisition. Either
// all records are added or, if any is nil, none is.
func (se *StorageEngine) BatchInsert(collName string, recs []*domain.Record) (int, error) {
	for i, rec := range recs {
		if rec == nil {
			return 0, fmt.Errorf("%w: record %d cannot be nil", domain.ErrInvalidRecord, i)
		}
	}
	entry, err := se.getOrCreateEntry(collName)
	if err != nil {
		return 0, err
	}

	entry.lock.mu.Lock()
	defer entry.lock.mu.Unlock()

	for _, rec := range recs {
		entry.coll.Add(rec)
	}
	entry.lastModified = time.Now()
	return len(recs), nil
}

// FindAll returns a page of all records in insertion order. Nil options
// return every record.
func (se *StorageEngine) FindAll(collName string, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	return se.QBE(collName, nil, options)
}

// Get returns the records whose field equals value
func (se *StorageEngine) Get(collName, field string, value domain.Value) ([]*domain.Record, error) {
	var out []*domain.Record
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		entry.queryCount.Add(1)
		out = cloneAll(entry.coll.Get(field, value))
		return nil
	})
	return out, err
}

// QBE returns a page of the records matching every field of example. Nil
// options return every match.
func (se *StorageEngine) QBE(collName string, example *domain.Record, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	if options != nil {
		if err := options.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPagination, err)
		}
	}

	var matches []*domain.Record
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		entry.queryCount.Add(1)
		matches = cloneAll(entry.coll.QBE(example))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if options == nil {
		return &domain.PaginationResult{Records: matches, Total: int64(len(matches))}, nil
	}
	return domain.Paginate(matches, options)
}

// Explain reports how a query by example would be executed
func (se *StorageEngine) Explain(collName string, example *domain.Record) (*domain.QueryPlan, error) {
	var plan domain.QueryPlan
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		plan = entry.coll.Explain(example)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update applies patch to every record matching query and returns the
// number of matched records
func (se *StorageEngine) Update(collName string, query, patch *domain.Record) (int, error) {
	var matched int
	err := se.withCollectionWriteLock(collName, func(entry *collectionEntry) error {
		matched = entry.coll.Update(query, patch)
		entry.updateCount++
		if matched > 0 && patch.Len() > 0 {
			entry.lastModified = time.Now()
		}
		return nil
	})
	return matched, err
}

// cloneAll copies records so callers can use them after the collection lock
// is released
func cloneAll(recs []*domain.Record) []*domain.Record {
	out := make([]*domain.Record, len(recs))
	for i, rec := range recs {
		out[i] = rec.Clone()
	}
	return out
}
