package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// Performance thresholds - tests will fail if performance degrades below these
const (
	// Indexed queries should be clearly faster than full scans on large datasets
	IndexedSpeedupThreshold = 2.0

	// Large dataset size (won't kill laptop but tests performance)
	LargeDatasetSize = 10000
)

func userRecord(i int) *domain.Record {
	return domain.MustRecord(
		"id", i,
		"name", fmt.Sprintf("user%d", i),
		"age", i%100, // 0-99
		"city", fmt.Sprintf("city%d", i%50), // 50 cities
		"role", fmt.Sprintf("role%d", i%10), // 10 roles
	)
}

func loadUsers(tb testing.TB, engine *StorageEngine, indexes []string) {
	tb.Helper()
	require.NoError(tb, engine.CreateCollection("users", indexes))
	recs := make([]*domain.Record, LargeDatasetSize)
	for i := range recs {
		recs[i] = userRecord(i)
	}
	_, err := engine.BatchInsert("users", recs)
	require.NoError(tb, err)
}

// timeQuery returns the mean duration of runs queries
func timeQuery(t *testing.T, runs int, fn func() int) (time.Duration, int) {
	t.Helper()
	var n int
	start := time.Now()
	for i := 0; i < runs; i++ {
		n = fn()
	}
	return time.Since(start) / time.Duration(runs), n
}

// TestIndexedVsNonIndexedPerformance measures the performance improvement
// of indexed lookups over full scans
func TestIndexedVsNonIndexedPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	engine := NewStorageEngine()
	loadUsers(t, engine, []string{"age", "city", "role"})

	t.Run("SingleField_IndexedVsNonIndexed", func(t *testing.T) {
		indexed, indexedCount := timeQuery(t, 50, func() int {
			res, err := engine.QBE("users", domain.MustRecord("role", "role3", "age", 23), nil)
			require.NoError(t, err)
			return len(res.Records)
		})
		scanned, scannedCount := timeQuery(t, 50, func() int {
			res, err := engine.QBE("users", domain.MustRecord("name", "user25"), nil)
			require.NoError(t, err)
			return len(res.Records)
		})

		// Every 100th user has age 23, all of them have role3
		assert.Equal(t, 100, indexedCount)
		assert.Equal(t, 1, scannedCount)

		speedup := float64(scanned) / float64(indexed)
		t.Logf("indexed %v, scan %v, speedup %.1fx", indexed, scanned, speedup)
		assert.GreaterOrEqual(t, speedup, IndexedSpeedupThreshold,
			"indexed lookup should be at least %.1fx faster than a full scan", IndexedSpeedupThreshold)
	})

	t.Run("SmallestBucketDrives", func(t *testing.T) {
		// city has 200 records per value, age 100, role 1000
		plan, err := engine.Explain("users", domain.MustRecord("role", "role0", "city", "city0", "age", 0))
		require.NoError(t, err)
		assert.Equal(t, "age", plan.DriverField)
		assert.Equal(t, 100, plan.Candidates)

		res, err := engine.QBE("users", domain.MustRecord("role", "role0", "city", "city0", "age", 0), nil)
		require.NoError(t, err)
		assert.Len(t, res.Records, 100)
	})

	t.Run("MissingValueShortCircuits", func(t *testing.T) {
		elapsed, n := timeQuery(t, 50, func() int {
			res, err := engine.QBE("users", domain.MustRecord("name", "user1", "age", 500), nil)
			require.NoError(t, err)
			return len(res.Records)
		})
		assert.Zero(t, n)
		t.Logf("short-circuit query took %v", elapsed)

		plan, err := engine.Explain("users", domain.MustRecord("name", "user1", "age", 500))
		require.NoError(t, err)
		assert.True(t, plan.ShortCircuit)
	})
}

// TestStreamingPerformance checks that a stream delivers every match
func TestStreamingPerformance(t *testing.T) {
	engine := NewStorageEngine()
	loadUsers(t, engine, nil)

	start := time.Now()
	ch, err := engine.QBEStream(context.Background(), "users", nil)
	require.NoError(t, err)
	count := 0
	for range ch {
		count++
	}
	duration := time.Since(start)
	t.Logf("Streamed %d records in %v (%.0f records/sec)", count, duration, float64(count)/duration.Seconds())
	assert.Equal(t, LargeDatasetSize, count)

	ch, err = engine.QBEStream(context.Background(), "users", domain.MustRecord("age", 25))
	require.NoError(t, err)
	count = 0
	for range ch {
		count++
	}
	assert.Equal(t, 100, count, "Should stream 100 records with age 25")
}

// Benchmark functions for performance regression testing
func BenchmarkIndexedQueries(b *testing.B) {
	engine := NewStorageEngine()
	loadUsers(b, engine, []string{"age", "city"})

	b.ResetTimer()

	b.Run("SingleIndex", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, err := engine.QBE("users", domain.MustRecord("age", 25), nil)
			require.NoError(b, err)
		}
	})

	b.Run("MultiIndex", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, err := engine.QBE("users", domain.MustRecord("age", 25, "city", "city25"), nil)
			require.NoError(b, err)
		}
	})

	b.Run("NonIndexed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, err := engine.QBE("users", domain.MustRecord("name", "user25"), nil)
			require.NoError(b, err)
		}
	})

	b.Run("Get", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, err := engine.Get("users", "city", domain.String("city7"))
			require.NoError(b, err)
		}
	})
}

func BenchmarkUpdate(b *testing.B) {
	engine := NewStorageEngine()
	loadUsers(b, engine, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := engine.Update("users",
			domain.MustRecord("role", fmt.Sprintf("role%d", i%10)),
			domain.MustRecord("age", i%100))
		require.NoError(b, err)
	}
}
