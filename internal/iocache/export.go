package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/parquet"
)

// ExecuteRunExport exports render runs and series summaries to two Parquet files
// named after outputFile.
func ExecuteRunExport(w io.Writer, store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run tracking is disabled. Set --run-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total render runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve render runs: %w", err)
	}
	summaries, err := store.GetAllSeriesSummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve series summaries: %w", err)
	}

	runsFile := outputFile + ".render_runs.parquet"
	runRows := parquet.ConvertRenderRunRecords(runs)
	if err := parquet.WriteFile(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write render runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d render runs to: %s\n", len(runRows), runsFile)

	summariesFile := outputFile + ".series_summaries.parquet"
	summaryRows := parquet.ConvertSeriesSummaryRecords(summaries)
	if err := parquet.WriteFile(summaryRows, summariesFile); err != nil {
		return fmt.Errorf("failed to write series summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d series summaries to: %s\n", len(summaryRows), summariesFile)

	return nil
}
