package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBands outputs compressed bands, dispatching based on the output format configured.
func WriteBands(result schema.BandsResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "bands",
		text: func(w io.Writer) error {
			return writeBandsTable(w, result, cfg, fmtFloat, duration)
		},
		csvHeader: []string{"band", "category", "start_x", "end_x", "left", "right"},
		csvRows: func(w *csv.Writer) error {
			return writeCSVResultsForBands(w, result, fmtFloat)
		},
		json: result,
		parquet: func(outputFile string) error {
			bands := make([]schema.Band, len(result.Bands))
			for i, b := range result.Bands {
				bands[i] = b.Band
			}
			return writeParquetRows(parquet.ConvertBands(bands), outputFile, "Wrote Parquet bands")
		},
	})
}

// writeBandsTable writes one row per band.
func writeBandsTable(w io.Writer, result schema.BandsResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Band", "Category", "Start", "End", "Left", "Right", "Width"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, b := range result.Bands {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(b.Category, 24),
			formatAxisValue(cfg.XAxis, b.StartX, fmtFloat),
			formatAxisValue(cfg.XAxis, b.EndX, fmtFloat),
			fmtFloat(b.Left),
			fmtFloat(b.Right),
			fmtFloat(b.Right - b.Left),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, result.Description); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Compressed %d samples into %d bands in %v\n", result.Samples, len(result.Bands), duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForBands writes one row per band.
func writeCSVResultsForBands(w *csv.Writer, result schema.BandsResult, fmtFloat func(float64) string) error {
	for i, b := range result.Bands {
		rec := []string{
			strconv.Itoa(i + 1),
			b.Category,
			fmtFloat(b.StartX),
			fmtFloat(b.EndX),
			fmtFloat(b.Left),
			fmtFloat(b.Right),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteDescription outputs screen-reader text, dispatching based on the output format configured.
func WriteDescription(result schema.DescribeResult, cfg *contract.Config, _ time.Duration) error {
	return dispatch(cfg, formatWriters{
		name: "describe",
		text: func(w io.Writer) error {
			return writeDescriptionText(w, result)
		},
		csvHeader: []string{"kind", "text"},
		csvRows: func(w *csv.Writer) error {
			if err := w.Write([]string{"summary", result.Summary}); err != nil {
				return err
			}
			if result.Bands == "" {
				return nil
			}
			return w.Write([]string{"bands", result.Bands})
		},
		json: result,
	})
}

// writeDescriptionText writes the description as plain paragraphs.
func writeDescriptionText(w io.Writer, result schema.DescribeResult) error {
	if _, err := fmt.Fprintln(w, result.Summary); err != nil {
		return err
	}
	if result.Bands != "" {
		if _, err := fmt.Fprintln(w, result.Bands); err != nil {
			return err
		}
	}
	return nil
}
