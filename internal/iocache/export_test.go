package iocache

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunExport(t *testing.T) {
	t.Run("exports runs and summaries", func(t *testing.T) {
		store := newTestRunStore(t)
		runID, err := store.BeginRun("render", time.Now(), map[string]any{"curve": "step"})
		require.NoError(t, err)
		require.NoError(t, store.RecordSeriesSummary(runID, schema.SeriesSummaryRecord{SeriesID: "a", PointCount: 2, MaxX: 1, MaxY: 1}))
		require.NoError(t, store.EndRun(runID, time.Now(), 1, 2, false))

		out := filepath.Join(t.TempDir(), "export")
		var buf bytes.Buffer
		require.NoError(t, ExecuteRunExport(&buf, store, out))
		assert.Contains(t, buf.String(), "Exported 1 render runs")

		runs, err := parquet.ReadFile[parquet.RenderRun](out + ".render_runs.parquet")
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "render", runs[0].Command)

		summaries, err := parquet.ReadFile[parquet.SeriesSummary](out + ".series_summaries.parquet")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, int32(2), summaries[0].PointCount)
	})

	t.Run("requires output file", func(t *testing.T) {
		assert.Error(t, ExecuteRunExport(&bytes.Buffer{}, &MockRunStore{}, ""))
	})

	t.Run("requires store", func(t *testing.T) {
		assert.Error(t, ExecuteRunExport(&bytes.Buffer{}, nil, "x"))
	})

	t.Run("no runs", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("GetStatus").Return(schema.RunStatus{Backend: "sqlite"}, nil)
		err := ExecuteRunExport(&bytes.Buffer{}, store, "x")
		assert.ErrorContains(t, err, "no run data")
		store.AssertExpectations(t)
	})

	t.Run("status error", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("GetStatus").Return(schema.RunStatus{}, errors.New("boom"))
		assert.ErrorContains(t, ExecuteRunExport(&bytes.Buffer{}, store, "x"), "boom")
	})
}
