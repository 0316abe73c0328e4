package indexing

import (
	"fmt"

	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// IndexEngine holds the secondary indexes of one collection.
type IndexEngine struct {
	indexes map[string]*Index // field name -> index
	order   []string          // field names in creation order
}

// NewIndexEngine creates a new index engine
func NewIndexEngine() *IndexEngine {
	return &IndexEngine{
		indexes: make(map[string]*Index),
	}
}

// Index stores a mapping from a field's value to the records holding it.
// Each bucket keeps records in insertion order.
type Index struct {
	Field    string
	Inverted map[domain.Value][]*domain.Record
}

// NewIndex creates an index on a specific field.
func NewIndex(field string) *Index {
	return &Index{
		Field:    field,
		Inverted: make(map[domain.Value][]*domain.Record),
	}
}

// Add appends rec to the bucket for value.
func (idx *Index) Add(value domain.Value, rec *domain.Record) {
	idx.Inverted[value] = append(idx.Inverted[value], rec)
}

// Query returns the live bucket for value. Callers must not modify it.
func (idx *Index) Query(value domain.Value) []*domain.Record {
	if recs, ok := idx.Inverted[value]; ok {
		return recs
	}
	return nil
}

// Cardinality returns the number of distinct indexed values.
func (idx *Index) Cardinality() int {
	return len(idx.Inverted)
}

// RemoveAll deletes every reference to rec from the bucket for value and
// returns how many were removed. Records are matched by identity, not by
// content. Empty buckets are dropped.
func (idx *Index) RemoveAll(value domain.Value, rec *domain.Record) int {
	bucket, ok := idx.Inverted[value]
	if !ok {
		return 0
	}
	kept := bucket[:0]
	for _, r := range bucket {
		if r != rec {
			kept = append(kept, r)
		}
	}
	removed := len(bucket) - len(kept)
	for i := len(kept); i < len(bucket); i++ {
		bucket[i] = nil
	}
	if len(kept) == 0 {
		delete(idx.Inverted, value)
	} else {
		idx.Inverted[value] = kept
	}
	return removed
}

// UpdateIndex moves every reference to rec from the bucket of oldVal to the
// bucket of newVal, so a record added more than once keeps its multiplicity.
// The record must be present under oldVal; a miss means the index is corrupt
// and panics.
func (idx *Index) UpdateIndex(rec *domain.Record, oldVal, newVal domain.Value) {
	n := idx.RemoveAll(oldVal, rec)
	if n == 0 {
		panic(fmt.Sprintf("indexing: record %s missing from bucket %s of index %q", rec, oldVal, idx.Field))
	}
	for i := 0; i < n; i++ {
		idx.Add(newVal, rec)
	}
}

// CreateIndex creates an empty index on a field
func (ie *IndexEngine) CreateIndex(fieldName string) (*Index, error) {
	if fieldName == "" {
		return nil, fmt.Errorf("field name cannot be empty")
	}
	if _, exists := ie.indexes[fieldName]; exists {
		return nil, fmt.Errorf("index on field %s already exists", fieldName)
	}

	index := NewIndex(fieldName)
	ie.indexes[fieldName] = index
	ie.order = append(ie.order, fieldName)
	return index, nil
}

// EnsureIndex returns the index on a field, creating it if absent.
func (ie *IndexEngine) EnsureIndex(fieldName string) *Index {
	if index, exists := ie.indexes[fieldName]; exists {
		return index
	}
	index := NewIndex(fieldName)
	ie.indexes[fieldName] = index
	ie.order = append(ie.order, fieldName)
	return index
}

// GetIndex returns the index on a field.
func (ie *IndexEngine) GetIndex(fieldName string) (*Index, bool) {
	index, exists := ie.indexes[fieldName]
	return index, exists
}

// GetIndexes returns all indexed field names in creation order.
func (ie *IndexEngine) GetIndexes() []string {
	out := make([]string, len(ie.order))
	copy(out, ie.order)
	return out
}

// Len returns the number of indexes.
func (ie *IndexEngine) Len() int {
	return len(ie.order)
}
