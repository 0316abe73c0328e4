package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Record is an ordered set of field=value pairs.
//
// Field order is the order in which fields were first set. It decides the
// order in which an autoindexing collection discovers fields and the order in
// which a query example is planned.
//
// A record added to a collection is owned by it and must only be changed
// through the collection's Update; calling Set or Delete on an owned record
// desynchronizes the indexes.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// FromPairs builds a record from alternating field names and Go scalar values.
func FromPairs(kv ...interface{}) (*Record, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("odd number of arguments: %d", len(kv))
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		field, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("field name at position %d is %T, not string", i, kv[i])
		}
		v, err := FromAny(kv[i+1])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		r.Set(field, v)
	}
	return r, nil
}

// MustRecord is like FromPairs but panics on error. Meant for tests and
// literals known to be valid.
func MustRecord(kv ...interface{}) *Record {
	r, err := FromPairs(kv...)
	if err != nil {
		panic(err)
	}
	return r
}

// FromMap builds a record from a plain map. Go maps are unordered, so fields
// are added in sorted order.
func FromMap(m map[string]interface{}) (*Record, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := NewRecord()
	for _, k := range keys {
		v, err := FromAny(m[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		r.Set(k, v)
	}
	return r, nil
}

// Get returns the value of field, or Undefined if the field is absent.
func (r *Record) Get(field string) Value {
	if r == nil {
		return Value{}
	}
	return r.values[field]
}

// Has reports whether field is present.
func (r *Record) Has(field string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[field]
	return ok
}

// Set assigns v to field. Setting Undefined removes the field.
func (r *Record) Set(field string, v Value) {
	if !v.IsDefined() {
		r.Delete(field)
		return
	}
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[field]; !ok {
		r.keys = append(r.keys, field)
	}
	r.values[field] = v
}

// With sets field and returns r, for building records inline.
func (r *Record) With(field string, v Value) *Record {
	r.Set(field, v)
	return r
}

// Delete removes field from the record.
func (r *Record) Delete(field string) {
	if _, ok := r.values[field]; !ok {
		return
	}
	delete(r.values, field)
	for i, k := range r.keys {
		if k == field {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Fields returns the field names in order.
func (r *Record) Fields() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls fn for each field in order until fn returns false.
func (r *Record) Range(fn func(field string, v Value) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]Value, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether both records hold the same fields with the same
// values. Field order is ignored.
func (r *Record) Equal(other *Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.Len() == 0 {
		return true
	}
	for _, k := range r.keys {
		ov, ok := other.values[k]
		if !ok || ov != r.values[k] {
			return false
		}
	}
	return true
}

// Matches reports whether every field of example holds the same value on r.
func (r *Record) Matches(example *Record) bool {
	match := true
	example.Range(func(field string, v Value) bool {
		if r.Get(field) != v {
			match = false
		}
		return match
	})
	return match
}

func (r *Record) String() string {
	if r == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(r.values[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
