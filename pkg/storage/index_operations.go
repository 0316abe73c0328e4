package storage

// GetIndexes returns the indexed field names of a collection in creation order
func (se *StorageEngine) GetIndexes(collName string) ([]string, error) {
	var indexes []string
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		indexes = entry.coll.Indexes()
		return nil
	})
	return indexes, err
}

// IsIndexed reports whether a field of a collection has an index
func (se *StorageEngine) IsIndexed(collName, fieldName string) (bool, error) {
	var indexed bool
	err := se.withCollectionReadLock(collName, func(entry *collectionEntry) error {
		indexed = entry.coll.IsIndexed(fieldName)
		return nil
	})
	return indexed, err
}
