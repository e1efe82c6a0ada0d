package schema

// ScaleResult is the pair of axes fitted to a dataset.
type ScaleResult struct {
	Dimensions Dimensions   `json:"dimensions"`
	X          AxisGeometry `json:"x"`
	Y          AxisGeometry `json:"y"`
}

// NearestResult is the answer to a pointer lookup. Found is false when no series
// had a finite point to match.
type NearestResult struct {
	Pointer    Point     `json:"pointer"`
	Found      bool      `json:"found"`
	Hit        HitResult `json:"hit,omitzero"`
	SeriesName string    `json:"series_name,omitempty"`
	Pixel      Point     `json:"pixel,omitzero"`
	Narration  string    `json:"narration"`
}

// SeriesCount is the number of points of one series inside a brushed domain range.
type SeriesCount struct {
	SeriesID string `json:"series_id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
}

// BrushResult is a completed brush gesture. Active is false when the gesture was
// narrower than the minimum width and selected nothing.
type BrushResult struct {
	Active      bool           `json:"active"`
	Selection   BrushSelection `json:"selection,omitzero"`
	Series      []SeriesCount  `json:"series,omitempty"`
	Description string         `json:"description"`
}

// BandSpan is a band together with its horizontal pixel extent.
type BandSpan struct {
	Band
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// BandsResult is a compressed categorical track.
type BandsResult struct {
	Samples     int        `json:"samples"`
	Bands       []BandSpan `json:"bands"`
	Description string     `json:"description"`
}

// NavigationResult is the trace of a key sequence and the focus it ended on.
type NavigationResult struct {
	Steps []NavigationStep `json:"steps"`
	Final FocusState       `json:"final"`
}

// DescribeResult holds the screen-reader text for a dataset.
type DescribeResult struct {
	Summary string `json:"summary"`
	Bands   string `json:"bands,omitempty"`
}

// KeyBinding is one keyboard navigation action and the key names that trigger it.
type KeyBinding struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys"`
}
