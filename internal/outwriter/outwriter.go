// Package outwriter has output and writer logic.
//
// Every result type gets a text table, a CSV layout and a JSON encoding. Results with
// a row-oriented shape (projected points, bands) also get a Parquet layout.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
)

// formatWriters holds the per-format writers for one result.
type formatWriters struct {
	name      string
	text      func(w io.Writer) error
	csvHeader []string
	csvRows   func(w *csv.Writer) error
	json      any
	parquet   func(outputFile string) error // nil when the result has no Parquet layout
}

// dispatch writes a result in the output format configured.
func dispatch(cfg *contract.Config, fw formatWriters) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, fw.json)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, fw.csvHeader, fw.csvRows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if fw.parquet == nil {
			return fmt.Errorf("parquet output is not supported for %s results", fw.name)
		}
		if err := fw.parquet(cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, fw.text, "Wrote table")
	}
	return nil
}
