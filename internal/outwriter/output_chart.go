package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteChart outputs a rendered chart, dispatching based on the output format configured.
func WriteChart(geom *schema.ChartGeometry, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "chart",
		text: func(w io.Writer) error {
			return writeChartTable(w, geom, cfg, fmtFloat, intFmt, duration)
		},
		csvHeader: []string{"series_id", "name", "point_index", "x", "y", "pixel_x", "pixel_y", "label"},
		csvRows: func(w *csv.Writer) error {
			return writeCSVResultsForChart(w, geom, fmtFloat)
		},
		json: jsonChart{ChartGeometry: geom, CacheHit: geom.CacheHit},
		parquet: func(outputFile string) error {
			return writeParquetChart(geom, outputFile)
		},
	})
}

// jsonChart exposes the cache flag that ChartGeometry keeps out of its own encoding.
type jsonChart struct {
	*schema.ChartGeometry
	CacheHit bool `json:"cache_hit"`
}

// writeChartTable generates and writes the human-readable chart table.
func writeChartTable(w io.Writer, geom *schema.ChartGeometry, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Series", "Name", "Points", "Length", "Label", "Path"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	pathWidth := GetMaxPathWidth(cfg)
	var data [][]string
	for _, sg := range geom.Series {
		data = append(data, []string{
			sg.SeriesID,
			contract.TruncateLabel(sg.Name, 24),
			fmt.Sprintf(intFmt, len(sg.Points)),
			fmtFloat(sg.Length),
			label(len(sg.Points), geom.CacheHit),
			contract.TruncateLabel(sg.SVG, pathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, line := range []string{
		"X " + describeAxis(geom.X, fmtFloat),
		"Y " + describeAxis(geom.Y, fmtFloat),
	} {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(geom.Bands) > 0 {
		if _, err := fmt.Fprintf(w, "Bands: %d\n", len(geom.Bands)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Summary: %s\n", geom.Summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rendered in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// describeAxis renders one axis as a single line for the text table footer.
func describeAxis(axis schema.AxisGeometry, fmtFloat func(float64) string) string {
	ticks := make([]string, len(axis.Ticks))
	for i, t := range axis.Ticks {
		ticks[i] = formatAxisValue(axis.Kind, t, fmtFloat)
	}
	return fmt.Sprintf("axis (%s): [%s, %s] -> [%s, %s] px, ticks: %s",
		axis.Kind,
		formatAxisValue(axis.Kind, axis.Domain[0], fmtFloat),
		formatAxisValue(axis.Kind, axis.Domain[1], fmtFloat),
		fmtFloat(axis.Range[0]), fmtFloat(axis.Range[1]),
		strings.Join(ticks, " "))
}

// formatAxisValue prints temporal values as UTC timestamps and others as numbers.
func formatAxisValue(kind schema.ScaleKind, v float64, fmtFloat func(float64) string) string {
	if kind == schema.TemporalScale {
		return schema.FromEpochMillis(v).Format(time.RFC3339)
	}
	return fmtFloat(v)
}

// writeCSVResultsForChart writes one row per projected point.
func writeCSVResultsForChart(w *csv.Writer, geom *schema.ChartGeometry, fmtFloat func(float64) string) error {
	for _, sg := range geom.Series {
		label := contract.GetPlainLabel(len(sg.Points), geom.CacheHit)
		for i, p := range sg.Points {
			var v schema.DataPoint
			if i < len(sg.Values) {
				v = sg.Values[i]
			}
			rec := []string{
				sg.SeriesID,
				sg.Name,
				strconv.Itoa(i),
				fmtFloat(v.X),
				fmtFloat(v.Y),
				fmtFloat(p.X),
				fmtFloat(p.Y),
				label,
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeParquetChart writes projected points to outputFile and bands next to it.
func writeParquetChart(geom *schema.ChartGeometry, outputFile string) error {
	if err := writeParquetRows(parquet.ConvertSeriesGeometry(geom.Series), outputFile, "Wrote Parquet points"); err != nil {
		return err
	}
	if len(geom.Bands) == 0 {
		return nil
	}
	return writeParquetRows(parquet.ConvertBands(geom.Bands), bandsFile(outputFile), "Wrote Parquet bands")
}

// bandsFile names the Parquet file that holds the bands of a chart.
func bandsFile(outputFile string) string {
	return strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".bands.parquet"
}

// WriteScales outputs fitted axes, dispatching based on the output format configured.
func WriteScales(result schema.ScaleResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "scale",
		text: func(w io.Writer) error {
			return writeScaleTable(w, result, fmtFloat, duration)
		},
		csvHeader: []string{"axis", "kind", "domain_min", "domain_max", "range_min", "range_max", "tick", "pixel"},
		csvRows: func(w *csv.Writer) error {
			return writeCSVResultsForScales(w, result, fmtFloat)
		},
		json: result,
	})
}

// writeScaleTable writes one row per axis.
func writeScaleTable(w io.Writer, result schema.ScaleResult, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Axis", "Kind", "Domain Min", "Domain Max", "Range Min", "Range Max", "Ticks"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, named := range []struct {
		name string
		axis schema.AxisGeometry
	}{{"x", result.X}, {"y", result.Y}} {
		data = append(data, []string{
			named.name,
			string(named.axis.Kind),
			formatAxisValue(named.axis.Kind, named.axis.Domain[0], fmtFloat),
			formatAxisValue(named.axis.Kind, named.axis.Domain[1], fmtFloat),
			fmtFloat(named.axis.Range[0]),
			fmtFloat(named.axis.Range[1]),
			strconv.Itoa(len(named.axis.Ticks)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scales fitted in %v for a %gx%g chart\n", duration, result.Dimensions.Width, result.Dimensions.Height); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScales writes one row per tick of each axis.
func writeCSVResultsForScales(w *csv.Writer, result schema.ScaleResult, fmtFloat func(float64) string) error {
	for _, named := range []struct {
		name string
		axis schema.AxisGeometry
	}{{"x", result.X}, {"y", result.Y}} {
		a := named.axis
		for i, tick := range a.Ticks {
			rec := []string{
				named.name,
				string(a.Kind),
				fmtFloat(a.Domain[0]),
				fmtFloat(a.Domain[1]),
				fmtFloat(a.Range[0]),
				fmtFloat(a.Range[1]),
				fmtFloat(tick),
				fmtFloat(a.TickPixels[i]),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
