package domain

import "context"

// CollectionInfo summarizes a named collection.
type CollectionInfo struct {
	Name        string   `json:"name"`
	Mode        string   `json:"mode"`
	Indexes     []string `json:"indexes"`
	RecordCount int      `json:"record_count"`
}

// StorageEngine defines the operations the HTTP layer needs from the store.
// Every method is safe for concurrent use.
type StorageEngine interface {
	CreateCollection(collName string, indexes []string) error
	GetCollectionInfo(collName string) (*CollectionInfo, error)
	ListCollections() []string
	Insert(collName string, rec *Record) error
	BatchInsert(collName string, recs []*Record) (int, error)
	FindAll(collName string, options *PaginationOptions) (*PaginationResult, error)
	Get(collName, field string, value Value) ([]*Record, error)
	QBE(collName string, example *Record, options *PaginationOptions) (*PaginationResult, error)
	QBEStream(ctx context.Context, collName string, example *Record) (<-chan *Record, error)
	Explain(collName string, example *Record) (*QueryPlan, error)
	Update(collName string, query, patch *Record) (int, error)
	GetIndexes(collName string) ([]string, error)
	GetMemoryStats() map[string]interface{}
}
