package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteNearest outputs a pointer lookup, dispatching based on the output format configured.
func WriteNearest(result schema.NearestResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "nearest",
		text: func(w io.Writer) error {
			return writeNearestTable(w, result, cfg, fmtFloat, intFmt, duration)
		},
		csvHeader: []string{"found", "series_id", "name", "point_index", "x", "y", "pixel_x", "pixel_y", "pixel_distance_y", "narration"},
		csvRows: func(w *csv.Writer) error {
			return writeCSVResultsForNearest(w, result, fmtFloat)
		},
		json: result,
	})
}

// writeNearestTable writes the hit as a single-row table followed by its narration.
func writeNearestTable(w io.Writer, result schema.NearestResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if result.Found {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Series", "Name", "Point", "X", "Y", "Pixel X", "Pixel Y", "Distance"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		h := result.Hit
		row := []string{
			h.SeriesID,
			contract.TruncateLabel(result.SeriesName, 24),
			fmt.Sprintf(intFmt, h.PointIndex),
			formatAxisValue(cfg.XAxis, h.Point.X, fmtFloat),
			fmtFloat(h.Point.Y),
			fmtFloat(result.Pixel.X),
			fmtFloat(result.Pixel.Y),
			fmtFloat(h.PixelDistanceY),
		}
		if err := table.Bulk([][]string{row}); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Narration: %s\n", result.Narration); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Pointer at (%s, %s) px resolved in %v\n", fmtFloat(result.Pointer.X), fmtFloat(result.Pointer.Y), duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForNearest writes the hit as a single CSV row.
func writeCSVResultsForNearest(w *csv.Writer, result schema.NearestResult, fmtFloat func(float64) string) error {
	if !result.Found {
		return w.Write([]string{"false", "", "", "", "", "", "", "", "", result.Narration})
	}
	h := result.Hit
	return w.Write([]string{
		"true",
		h.SeriesID,
		result.SeriesName,
		strconv.Itoa(h.PointIndex),
		fmtFloat(h.Point.X),
		fmtFloat(h.Point.Y),
		fmtFloat(result.Pixel.X),
		fmtFloat(result.Pixel.Y),
		fmtFloat(h.PixelDistanceY),
		result.Narration,
	})
}

// WriteBrush outputs a brush selection, dispatching based on the output format configured.
func WriteBrush(result schema.BrushResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "brush",
		text: func(w io.Writer) error {
			return writeBrushTable(w, result, cfg, fmtFloat, intFmt, duration)
		},
		csvHeader: []string{"series_id", "name", "points", "domain_min", "domain_max", "pixel_min", "pixel_max"},
		csvRows: func(w *csv.Writer) error {
			return writeCSVResultsForBrush(w, result, fmtFloat)
		},
		json: result,
	})
}

// writeBrushTable writes per-series counts inside the selection.
func writeBrushTable(w io.Writer, result schema.BrushResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if result.Active {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Series", "Name", "Points In Range"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, c := range result.Series {
			data = append(data, []string{c.SeriesID, contract.TruncateLabel(c.Name, 24), fmt.Sprintf(intFmt, c.Points)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		sel := result.Selection
		if _, err := fmt.Fprintf(w, "Selection: x [%s, %s] at pixels [%s, %s]\n",
			formatAxisValue(cfg.XAxis, sel.DomainRange[0], fmtFloat),
			formatAxisValue(cfg.XAxis, sel.DomainRange[1], fmtFloat),
			fmtFloat(sel.PixelRange[0]), fmtFloat(sel.PixelRange[1])); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, result.Description); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Brush resolved in %v (minimum width %g px)\n", duration, cfg.MinBrushWidth); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForBrush writes one row per series. An inactive brush writes no rows.
func writeCSVResultsForBrush(w *csv.Writer, result schema.BrushResult, fmtFloat func(float64) string) error {
	sel := result.Selection
	for _, c := range result.Series {
		rec := []string{
			c.SeriesID,
			c.Name,
			strconv.Itoa(c.Points),
			fmtFloat(sel.DomainRange[0]),
			fmtFloat(sel.DomainRange[1]),
			fmtFloat(sel.PixelRange[0]),
			fmtFloat(sel.PixelRange[1]),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteNavigation outputs a replayed key sequence, dispatching based on the output format configured.
func WriteNavigation(result schema.NavigationResult, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, formatWriters{
		name: "navigation",
		text: func(w io.Writer) error {
			return writeNavigationTable(w, result, cfg, duration)
		},
		csvHeader: []string{"step", "key", "action", "series_index", "point_index", "selected", "narration"},
		csvRows: func(w *csv.Writer) error {
			return writeCSVResultsForNavigation(w, result)
		},
		json: result,
	})
}

// writeNavigationTable writes one row per key press.
func writeNavigationTable(w io.Writer, result schema.NavigationResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Step", "Key", "Action", "Series", "Point", "Selected", "Narration"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	width := GetMaxNarrationWidth(cfg)
	var data [][]string
	for i, step := range result.Steps {
		series, point := "-", "-"
		if !step.Focus.IsNone() {
			series, point = strconv.Itoa(step.Focus.SeriesIndex), strconv.Itoa(step.Focus.PointIndex)
		}
		selected := ""
		if step.Selected {
			selected = "yes"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			displayKey(step.Key),
			step.Action,
			series,
			point,
			selected,
			contract.TruncateLabel(step.Narration, width),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Replayed %d keys in %v (wrap: %s)\n", len(result.Steps), duration, cfg.Wrap); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForNavigation writes one row per key press.
func writeCSVResultsForNavigation(w *csv.Writer, result schema.NavigationResult) error {
	for i, step := range result.Steps {
		rec := []string{
			strconv.Itoa(i + 1),
			step.Key,
			step.Action,
			strconv.Itoa(step.Focus.SeriesIndex),
			strconv.Itoa(step.Focus.PointIndex),
			strconv.FormatBool(step.Selected),
			step.Narration,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// displayKey makes whitespace keys visible in tables.
func displayKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return "space"
	}
	return key
}

// WriteKeyBindings outputs the navigation key map, dispatching based on the output format configured.
func WriteKeyBindings(bindings []schema.KeyBinding, cfg *contract.Config) error {
	return dispatch(cfg, formatWriters{
		name: "key binding",
		text: func(w io.Writer) error {
			return writeKeyBindingsTable(w, bindings, cfg)
		},
		csvHeader: []string{"action", "keys"},
		csvRows: func(w *csv.Writer) error {
			for _, b := range bindings {
				if err := w.Write([]string{b.Action, strings.Join(b.Keys, "|")}); err != nil {
					return err
				}
			}
			return nil
		},
		json: bindings,
	})
}

// writeKeyBindingsTable writes one row per action.
func writeKeyBindingsTable(w io.Writer, bindings []schema.KeyBinding, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Action", "Keys"})

	var data [][]string
	for _, b := range bindings {
		keys := make([]string, len(b.Keys))
		for i, k := range b.Keys {
			keys[i] = displayKey(k)
		}
		data = append(data, []string{b.Action, strings.Join(keys, ", ")})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Keys are case-insensitive. At the ends of a series focus follows the %s policy.\n", cfg.Wrap); err != nil {
		return err
	}
	return nil
}
