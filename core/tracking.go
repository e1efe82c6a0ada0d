package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
)

// trackedBuild wraps the cached build with render-run bookkeeping.
// Tracking failures are logged and never fail the build.
func trackedBuild(ctx context.Context, cfg *contract.Config, in ChartInput, mgr contract.CacheManager) (*schema.ChartGeometry, error) {
	startTime := time.Now()

	var runStore contract.RunStore
	if mgr != nil {
		runStore = mgr.GetRunStore()
	}
	if runStore != nil {
		runID, err := runStore.BeginRun(commandName(ctx), startTime, cfg.CacheParams())
		if err != nil {
			contract.LogWarn("Render run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	geom, err := cachedGeometry(cfg, in, mgr)
	if err != nil {
		return nil, err
	}

	if runID, ok := getRunID(ctx); ok {
		for _, s := range in.Series {
			if err := runStore.RecordSeriesSummary(runID, summarizeSeries(runID, s)); err != nil {
				logTrackingError("RecordSeriesSummary", s.ID, err)
			}
		}
		if err := runStore.EndRun(runID, time.Now(), len(in.Series), in.PointCount(), geom.CacheHit); err != nil {
			contract.LogWarn("Failed to finalize render run tracking", err)
		}
	}
	return geom, nil
}

// summarizeSeries computes the stored extent of a series. Non-finite values are skipped.
func summarizeSeries(runID int64, s schema.Series) schema.SeriesSummaryRecord {
	rec := schema.SeriesSummaryRecord{RunID: runID, SeriesID: s.ID, PointCount: len(s.Points)}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range s.Points {
		if !math.IsNaN(p.X) && !math.IsInf(p.X, 0) {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		}
		if !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) {
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if minX <= maxX {
		rec.MinX, rec.MaxX = minX, maxX
	}
	if minY <= maxY {
		rec.MinY, rec.MaxY = minY, maxY
	}
	return rec
}

// logTrackingError logs a tracking error with the series it concerns.
func logTrackingError(operation, seriesID string, err error) {
	contract.LogWarn(fmt.Sprintf("Render run tracking failed for %s on series %s", operation, seriesID), err)
}
