// Package collection implements an in-memory record collection with
// secondary indexes and query by example.
//
// A Collection is not safe for concurrent use. Index maintenance in Add and
// Update spans several steps, so hosts sharing a collection between
// goroutines must serialize every call, reads included.
package collection

import (
	"fmt"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/adfharrison1/go-qbe/pkg/indexing"
)

// Collection holds records in insertion order plus an index per indexed
// field mapping each value to the records holding it.
type Collection struct {
	mode    domain.IndexMode
	fields  []string // configured fields, explicit mode only
	items   []*domain.Record
	indexes *indexing.IndexEngine
}

// New creates a collection. Without options every field is autoindexed.
// WithIndexes with an empty, blank or duplicated field list fails with a
// *domain.ConfigurationError.
func New(opts ...Option) (*Collection, error) {
	cfg := &config{mode: domain.IndexAuto}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Collection{
		mode:    cfg.mode,
		indexes: indexing.NewIndexEngine(),
	}
	if cfg.mode == domain.IndexAuto {
		return c, nil
	}

	if len(cfg.fields) == 0 {
		return nil, &domain.ConfigurationError{Reason: "explicit index field list is empty"}
	}
	for _, field := range cfg.fields {
		if _, err := c.indexes.CreateIndex(field); err != nil {
			return nil, &domain.ConfigurationError{Reason: err.Error()}
		}
	}
	c.fields = cfg.fields
	return c, nil
}

// Mode reports how the collection picks indexed fields.
func (c *Collection) Mode() domain.IndexMode {
	return c.mode
}

// Add appends rec to the collection and indexes it.
//
// Autoindexing collections index every field present on rec. Explicit
// collections index every configured field; a record lacking one is filed
// under the Undefined value.
func (c *Collection) Add(rec *domain.Record) {
	if rec == nil {
		return
	}
	if c.mode == domain.IndexAuto {
		rec.Range(func(field string, v domain.Value) bool {
			c.indexes.EnsureIndex(field).Add(v, rec)
			return true
		})
	} else {
		for _, field := range c.fields {
			idx, _ := c.indexes.GetIndex(field)
			idx.Add(rec.Get(field), rec)
		}
	}
	c.items = append(c.items, rec)
}

// Get returns the records whose field equals value.
//
// Indexed fields are answered from the index, others by a linear scan. The
// result is always a new slice, empty when nothing matches; the records in it
// are the collection's own.
func (c *Collection) Get(field string, value domain.Value) []*domain.Record {
	idx, ok := c.indexes.GetIndex(field)
	// autoindexes never file records that lack the field
	if ok && (value.IsDefined() || c.mode == domain.IndexExplicit) {
		return cloneRecords(idx.Query(value))
	}
	out := []*domain.Record{}
	for _, rec := range c.items {
		if rec.Get(field) == value {
			out = append(out, rec)
		}
	}
	return out
}

// queryPlan is the outcome of planning a query by example.
type queryPlan struct {
	domain.QueryPlan
	driver []*domain.Record
	driven bool // driver came from an index
}

// plan walks the example once and picks the smallest non-empty index bucket
// as driver. Ties go to the earlier field.
func (c *Collection) plan(example *domain.Record) queryPlan {
	p := queryPlan{driver: c.items}
	p.IndexedFields = []string{}
	example.Range(func(field string, v domain.Value) bool {
		idx, ok := c.indexes.GetIndex(field)
		if !ok {
			return true
		}
		p.IndexedFields = append(p.IndexedFields, field)
		bucket := idx.Query(v)
		if len(bucket) == 0 {
			p.ShortCircuit = true
			p.DriverField = field
			p.driver = nil
			p.driven = true
			return false
		}
		if !p.driven || len(bucket) < len(p.driver) {
			p.DriverField = field
			p.driver = bucket
			p.driven = true
		}
		return true
	})
	p.Candidates = len(p.driver)
	p.DirectLookup = p.driven && !p.ShortCircuit && example.Len() == 1
	return p
}

// QBE returns the records matching every field of example, in the order of
// the bucket used to drive the scan. A nil or empty example returns all
// records in insertion order. The result is always a new slice.
func (c *Collection) QBE(example *domain.Record) []*domain.Record {
	if example.Len() == 0 {
		return cloneRecords(c.items)
	}

	p := c.plan(example)
	if p.ShortCircuit {
		return []*domain.Record{}
	}
	if p.DirectLookup {
		return cloneRecords(p.driver)
	}

	out := []*domain.Record{}
	for _, rec := range p.driver {
		if matchesExcept(rec, example, p.DriverField, p.driven) {
			out = append(out, rec)
		}
	}
	return out
}

// Explain reports how QBE would execute example without running it.
func (c *Collection) Explain(example *domain.Record) domain.QueryPlan {
	if example.Len() == 0 {
		return domain.QueryPlan{Candidates: len(c.items), IndexedFields: []string{}}
	}
	return c.plan(example).QueryPlan
}

func matchesExcept(rec, example *domain.Record, skip string, skipSet bool) bool {
	ok := true
	example.Range(func(field string, v domain.Value) bool {
		if skipSet && field == skip {
			return true
		}
		if rec.Get(field) != v {
			ok = false
		}
		return ok
	})
	return ok
}

// Update applies patch to every record matching query and returns how many
// distinct records matched.
//
// Each patched field whose value changes is moved to its new index bucket
// before the record is modified. In autoindex mode a field seen for the first
// time gets an index of its own. A record added more than once is patched
// once and every one of its index entries moves with it.
func (c *Collection) Update(query, patch *domain.Record) int {
	matches, copies := distinct(c.QBE(query))
	if patch.Len() == 0 {
		return len(matches)
	}

	for _, rec := range matches {
		patch.Range(func(field string, newVal domain.Value) bool {
			oldVal := rec.Get(field)
			if newVal == oldVal {
				return true
			}
			idx, ok := c.indexes.GetIndex(field)
			switch {
			case ok && (c.mode == domain.IndexExplicit || oldVal.IsDefined()):
				idx.UpdateIndex(rec, oldVal, newVal)
			case c.mode == domain.IndexAuto:
				// autoindexes hold no entry for a record lacking the field
				if !ok {
					idx = c.indexes.EnsureIndex(field)
				}
				for i := 0; i < copies[rec]; i++ {
					idx.Add(newVal, rec)
				}
			}
			rec.Set(field, newVal)
			return true
		})
	}
	return len(matches)
}

// distinct drops repeated references from recs, keeping first-seen order,
// and counts how often each record occurred. A query result lists a record
// once per time it was added.
func distinct(recs []*domain.Record) ([]*domain.Record, map[*domain.Record]int) {
	copies := make(map[*domain.Record]int, len(recs))
	out := recs[:0]
	for _, rec := range recs {
		if copies[rec] == 0 {
			out = append(out, rec)
		}
		copies[rec]++
	}
	return out, copies
}

// Items returns all records in insertion order.
func (c *Collection) Items() []*domain.Record {
	return cloneRecords(c.items)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.items)
}

// Indexes returns the indexed field names in the order the indexes were
// created.
func (c *Collection) Indexes() []string {
	return c.indexes.GetIndexes()
}

// Cardinality returns the number of distinct values held by each index.
func (c *Collection) Cardinality() map[string]int {
	out := make(map[string]int, c.indexes.Len())
	for _, field := range c.indexes.GetIndexes() {
		idx, _ := c.indexes.GetIndex(field)
		out[field] = idx.Cardinality()
	}
	return out
}

// IsIndexed reports whether field has an index.
func (c *Collection) IsIndexed(field string) bool {
	_, ok := c.indexes.GetIndex(field)
	return ok
}

func (c *Collection) String() string {
	return fmt.Sprintf("collection(%s, %d records, indexes %v)", c.mode, len(c.items), c.indexes.GetIndexes())
}

func cloneRecords(recs []*domain.Record) []*domain.Record {
	out := make([]*domain.Record, len(recs))
	copy(out, recs)
	return out
}
