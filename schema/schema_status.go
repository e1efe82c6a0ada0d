package schema

import "time"

// CacheStatus represents the status of the geometry cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RunStatus represents the status of the render-run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalSeries   int              `json:"total_series"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RenderRunRecord represents a row from the chartkit_render_runs table.
type RenderRunRecord struct {
	RunID         int64
	Command       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	SeriesCount   int
	PointCount    int
	CacheHit      bool
	ConfigParams  *string
}

// SeriesSummaryRecord represents a row from the chartkit_series_summaries table.
type SeriesSummaryRecord struct {
	RunID      int64
	SeriesID   string
	PointCount int
	MinX       float64
	MaxX       float64
	MinY       float64
	MaxY       float64
}
