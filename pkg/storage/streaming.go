package storage

import (
	"context"

	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// streamBuffer is the channel capacity used by QBEStream.
const streamBuffer = 64

// QBEStream streams the records matching example. The matches are captured
// under the collection lock, so later writes do not affect a running stream.
// The channel is closed when every match has been sent or ctx is done.
func (se *StorageEngine) QBEStream(ctx context.Context, collName string, example *domain.Record) (<-chan *domain.Record, error) {
	var matches []*domain.Record
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		entry.queryCount.Add(1)
		matches = cloneAll(entry.coll.QBE(example))
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(chan *domain.Record, streamBuffer)
	go func() {
		defer close(out)
		for _, rec := range matches {
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
