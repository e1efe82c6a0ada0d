package schema

// SegmentOp is the drawing operation of a path segment.
type SegmentOp string

// All segment operations emitted by the curve interpolator.
const (
	LineTo  SegmentOp = "L"
	CubicTo SegmentOp = "C"
)

// Segment is one piece of a path. LineTo segments use only End; CubicTo segments
// also carry the two Bezier control points.
type Segment struct {
	Op  SegmentOp `json:"op"`
	C1  Point     `json:"c1,omitzero"`
	C2  Point     `json:"c2,omitzero"`
	End Point     `json:"end"`
}

// Path is renderable geometry in pixel space. A Degenerate path has a start point
// and no segments (a single-sample series).
type Path struct {
	Kind       CurveKind `json:"kind"`
	Start      Point     `json:"start"`
	Segments   []Segment `json:"segments"`
	Degenerate bool      `json:"degenerate,omitempty"`
}

// AxisGeometry is a computed scale together with its ticks, as handed to a renderer.
type AxisGeometry struct {
	Kind       ScaleKind  `json:"kind"`
	Domain     [2]float64 `json:"domain"`
	Range      [2]float64 `json:"range"`
	Ticks      []float64  `json:"ticks"`
	TickPixels []float64  `json:"tick_pixels"`
}

// SeriesGeometry is the projected path of one series. Points[i] is the pixel
// position of the data point Values[i]; non-finite points are left out of both.
type SeriesGeometry struct {
	SeriesID string      `json:"series_id"`
	Name     string      `json:"name"`
	Color    string      `json:"color,omitempty"`
	Points   []Point     `json:"points"`
	Values   []DataPoint `json:"values"`
	Path     Path        `json:"path"`
	SVG      string      `json:"svg"`
	Length   float64     `json:"length"`
}

// ChartGeometry is everything the kernel computes for one chart render.
type ChartGeometry struct {
	Dimensions Dimensions       `json:"dimensions"`
	X          AxisGeometry     `json:"x"`
	Y          AxisGeometry     `json:"y"`
	Series     []SeriesGeometry `json:"series"`
	Bands      []Band           `json:"bands,omitempty"`
	Summary    string           `json:"summary"`
	CacheHit   bool             `json:"-"`
}

// HitResult is the nearest data point to a pointer.
type HitResult struct {
	SeriesID       string    `json:"series_id"`
	SeriesIndex    int       `json:"series_index"`
	PointIndex     int       `json:"point_index"`
	Point          DataPoint `json:"point"`
	PixelDistanceY float64   `json:"pixel_distance_y"`
}

// NavigationStep records one keyboard action and the focus it produced.
type NavigationStep struct {
	Key       string     `json:"key"`
	Action    string     `json:"action"`
	Focus     FocusState `json:"focus"`
	Selected  bool       `json:"selected"`
	Narration string     `json:"narration"`
}
