package iocache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	store, err := NewRunStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func TestRunStoreLifecycle(t *testing.T) {
	store := newTestRunStore(t)
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun("render", start, map[string]any{"curve": "monotone", "ticks": 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	require.NoError(t, store.RecordSeriesSummary(runID, schema.SeriesSummaryRecord{
		SeriesID: "temp", PointCount: 3, MinX: 0, MaxX: 2, MinY: -1, MaxY: 5,
	}))
	require.NoError(t, store.RecordSeriesSummary(runID, schema.SeriesSummaryRecord{
		SeriesID: "load", PointCount: 1, MinX: 1, MaxX: 1, MinY: 3, MaxY: 3,
	}))
	require.NoError(t, store.EndRun(runID, start.Add(250*time.Millisecond), 2, 4, true))

	second, err := store.BeginRun("scale", start.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	first := runs[0]
	assert.Equal(t, "render", first.Command)
	assert.True(t, start.Equal(first.StartTime))
	require.NotNil(t, first.EndTime)
	require.NotNil(t, first.RunDurationMs)
	assert.Equal(t, int64(250), *first.RunDurationMs)
	assert.Equal(t, 2, first.SeriesCount)
	assert.Equal(t, 4, first.PointCount)
	assert.True(t, first.CacheHit)
	require.NotNil(t, first.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*first.ConfigParams), &params))
	assert.Equal(t, "monotone", params["curve"])

	assert.Nil(t, runs[1].EndTime)
	assert.False(t, runs[1].CacheHit)

	summaries, err := store.GetAllSeriesSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "load", summaries[0].SeriesID) // ordered by series id
	assert.Equal(t, "temp", summaries[1].SeriesID)
	assert.Equal(t, -1.0, summaries[1].MinY)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.True(t, start.Add(time.Hour).Equal(status.LastRunTime))
	assert.True(t, start.Equal(status.OldestRunTime))
	assert.Equal(t, 2, status.TotalSeries)
	assert.Equal(t, int64(2), status.TableSizes[renderRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[seriesSummariesTable])
}

func TestRunStoreDuplicateSummary(t *testing.T) {
	store := newTestRunStore(t)
	runID, err := store.BeginRun("render", time.Now(), nil)
	require.NoError(t, err)

	summary := schema.SeriesSummaryRecord{SeriesID: "a", PointCount: 1}
	require.NoError(t, store.RecordSeriesSummary(runID, summary))
	assert.Error(t, store.RecordSeriesSummary(runID, summary))
}

func TestRunStoreEndUnknownRun(t *testing.T) {
	store := newTestRunStore(t)
	assert.Error(t, store.EndRun(42, time.Now(), 0, 0, false))
}

func TestRunStoreNoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun("render", time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.EndRun(runID, time.Now(), 1, 1, false))
	assert.NoError(t, store.RecordSeriesSummary(runID, schema.SeriesSummaryRecord{SeriesID: "a"}))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestRunStoreQueries(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			assert.Contains(t, getCreateRenderRunsQuery(backend), "run_id")
			assert.Contains(t, getCreateSeriesSummariesQuery(backend), "PRIMARY KEY (run_id, series_id)")
		})
	}
	assert.Contains(t, getCreateRenderRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRenderRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
}
