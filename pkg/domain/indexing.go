package domain

// IndexMode selects how a collection decides which fields to index.
type IndexMode int

const (
	// IndexAuto indexes every field seen on any added or updated record.
	IndexAuto IndexMode = iota
	// IndexExplicit indexes exactly the fields fixed at construction.
	IndexExplicit
)

func (m IndexMode) String() string {
	switch m {
	case IndexAuto:
		return "auto"
	case IndexExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// QueryPlan describes how a query by example was, or would be, executed.
type QueryPlan struct {
	// DriverField is the indexed field whose bucket was scanned, empty when
	// the full collection was scanned.
	DriverField string `json:"driver_field,omitempty"`
	// Candidates is the size of the scanned sequence.
	Candidates int `json:"candidates"`
	// IndexedFields lists the example fields that have an index.
	IndexedFields []string `json:"indexed_fields"`
	// ShortCircuit is set when an indexed field had no matching bucket.
	ShortCircuit bool `json:"short_circuit"`
	// DirectLookup is set when the result is the driver bucket itself.
	DirectLookup bool `json:"direct_lookup"`
}
