// Package contract provides interfaces and shared utilities for chartkit's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/chartkit/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetGeometryStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking render runs and the series they drew.
type RunStore interface {
	// BeginRun creates a new render run and returns its unique ID
	BeginRun(command string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the render run with completion data
	EndRun(runID int64, endTime time.Time, seriesCount, pointCount int, cacheHit bool) error

	// RecordSeriesSummary stores the extent of one rendered series
	RecordSeriesSummary(runID int64, summary schema.SeriesSummaryRecord) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every recorded run in ID order
	GetAllRuns() ([]schema.RenderRunRecord, error)

	// GetAllSeriesSummaries returns every recorded series summary
	GetAllSeriesSummaries() ([]schema.SeriesSummaryRecord, error)

	// Close closes the underlying connection
	Close() error
}
