package core

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/huangsam/chartkit/core/a11y"
	"github.com/huangsam/chartkit/core/bands"
	"github.com/huangsam/chartkit/core/curve"
	"github.com/huangsam/chartkit/core/scale"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
	"golang.org/x/sync/errgroup"
)

// ChartInput is the data a chart is built from.
type ChartInput struct {
	Series  []schema.Series         `json:"series"`
	Samples []schema.CategorySample `json:"samples,omitempty"`
	Stats   []schema.Stat           `json:"stats,omitempty"`
}

// PointCount is the total number of points across all series.
func (in ChartInput) PointCount() int {
	total := 0
	for _, s := range in.Series {
		total += len(s.Points)
	}
	return total
}

// BuildChart computes the full geometry for a chart: both axes, one path per series,
// the compressed categorical bands and the summary text. Results go through the
// geometry cache when mgr provides one, and the build is recorded as a render run
// when mgr provides a run store.
func BuildChart(ctx context.Context, cfg *contract.Config, in ChartInput, mgr contract.CacheManager) (*schema.ChartGeometry, error) {
	return trackedBuild(ctx, cfg, in, mgr)
}

// ComputeScales fits the x and y scales for the input. Category samples widen the
// x domain so that bands fit. A chart without series points falls back to a unit
// y domain when it has samples to show.
func ComputeScales(cfg *contract.Config, in ChartInput) (x, y scale.Scale, err error) {
	var xs, ys []float64
	for _, s := range in.Series {
		xs = append(xs, s.Xs()...)
		ys = append(ys, s.Ys()...)
	}
	for _, c := range in.Samples {
		xs = append(xs, c.X)
	}

	x, err = computeXScale(cfg, xs)
	if err != nil {
		return scale.Scale{}, scale.Scale{}, err
	}

	yMin, yMax := cfg.Dimensions.YRange()
	yOpts := scale.Options{Nice: cfg.Nice, Padding: cfg.PaddingRatio, TickCount: cfg.Ticks, Flip: true}
	y, err = scale.ComputeLinear(ys, yMin, yMax, yOpts)
	if err != nil {
		var empty *schema.EmptyDomainError
		if errors.As(err, &empty) && !empty.Overflow && len(in.Samples) > 0 {
			y, err = scale.New([2]float64{0, 1}, [2]float64{yMin, yMax}, schema.LinearScale, true)
			if err != nil {
				return scale.Scale{}, scale.Scale{}, err
			}
			y.TickCount = cfg.Ticks
			return x, y, nil
		}
		return scale.Scale{}, scale.Scale{}, onAxis(err, "y")
	}
	return x, y, nil
}

// computeXScale fits the position axis over the exact span of xs.
func computeXScale(cfg *contract.Config, xs []float64) (scale.Scale, error) {
	xMin, xMax := cfg.Dimensions.XRange()
	opts := scale.PositionAxis(cfg.Ticks)

	var (
		x   scale.Scale
		err error
	)
	if cfg.XAxis == schema.TemporalScale {
		x, err = scale.ComputeTemporalMillis(xs, xMin, xMax, opts)
	} else {
		x, err = scale.ComputeLinear(xs, xMin, xMax, opts)
	}
	if err != nil {
		return scale.Scale{}, onAxis(err, "x")
	}
	return x, nil
}

// computeGeometry does the uncached work of BuildChart.
func computeGeometry(cfg *contract.Config, in ChartInput) (*schema.ChartGeometry, error) {
	x, y, err := ComputeScales(cfg, in)
	if err != nil {
		return nil, err
	}

	geom := &schema.ChartGeometry{
		Dimensions: cfg.Dimensions,
		X:          x.Axis(),
		Y:          y.Axis(),
		Series:     make([]schema.SeriesGeometry, len(in.Series)),
	}

	// Each series writes only its own slot, so output order matches input order
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range in.Series {
		g.Go(func() error {
			sg, err := seriesGeometry(cfg, s, x, y)
			if err != nil {
				return err
			}
			geom.Series[i] = sg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	geom.Bands = bands.Compress(in.Samples)
	geom.Summary = describer(cfg).Summary(in.Series, allStats(cfg, in))
	return geom, nil
}

// seriesGeometry projects one series and builds its (possibly partially revealed) path.
// A series with nothing drawable yields an empty path rather than an error.
func seriesGeometry(cfg *contract.Config, s schema.Series, x, y scale.Scale) (schema.SeriesGeometry, error) {
	sg := schema.SeriesGeometry{
		SeriesID: s.ID,
		Name:     s.Label(),
		Color:    s.Color,
		Points:   []schema.Point{},
		Values:   []schema.DataPoint{},
		Path:     schema.Path{Kind: cfg.Curve},
	}

	path, pts, err := curve.ForSeries(s, x, y, cfg.Curve)
	if err != nil {
		var empty *schema.EmptyDomainError
		if errors.As(err, &empty) {
			return sg, nil
		}
		return sg, err
	}

	for i, p := range pts {
		if p.IsFinite() {
			sg.Points = append(sg.Points, p)
			sg.Values = append(sg.Values, s.Points[i])
		}
	}
	sg.Length = path.Length()
	if cfg.Reveal < 1 {
		path = path.Reveal(cfg.Reveal)
	}
	sg.Path = path
	sg.SVG = path.SVG()
	return sg, nil
}

// describer returns the text composer for the configured x axis.
func describer(cfg *contract.Config) a11y.Describer {
	return a11y.Describer{TemporalX: cfg.XAxis == schema.TemporalScale}
}

// allStats joins the stats shipped with the data and those declared in config.
func allStats(cfg *contract.Config, in ChartInput) []schema.Stat {
	stats := make([]schema.Stat, 0, len(in.Stats)+len(cfg.Stats))
	stats = append(stats, in.Stats...)
	return append(stats, cfg.Stats...)
}

// onAxis labels an empty-domain error with the axis it came from.
func onAxis(err error, axis string) error {
	var empty *schema.EmptyDomainError
	if errors.As(err, &empty) {
		return &schema.EmptyDomainError{Axis: axis, Overflow: empty.Overflow}
	}
	return fmt.Errorf("%s axis: %w", axis, err)
}
