package storage

import (
	"runtime"
	"time"
)

// GetMemoryStats returns current memory usage and per-collection statistics
func (se *StorageEngine) GetMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	se.mu.RLock()
	entries := make(map[string]*collectionEntry, len(se.collections))
	for name, entry := range se.collections {
		entries[name] = entry
	}
	se.mu.RUnlock()

	records := 0
	perCollection := make(map[string]interface{}, len(entries))
	for name, entry := range entries {
		entry.lock.mu.RLock()
		count := entry.coll.Len()
		perCollection[name] = map[string]interface{}{
			"records":       count,
			"mode":          entry.coll.Mode().String(),
			"indexes":       entry.coll.Cardinality(),
			"queries":       entry.queryCount.Load(),
			"updates":       entry.updateCount,
			"created_at":    entry.createdAt.Format(time.RFC3339),
			"last_modified": entry.lastModified.Format(time.RFC3339),
		}
		entry.lock.mu.RUnlock()
		records += count
	}

	return map[string]interface{}{
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
		"sys_mb":         m.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
		"uptime_seconds": int64(time.Since(se.startedAt).Seconds()),
		"collections":    len(entries),
		"records":        records,
		"by_collection":  perCollection,
	}
}
