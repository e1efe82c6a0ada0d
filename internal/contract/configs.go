package contract

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/chartkit/schema"
)

// Default values for configuration.
const (
	DefaultWidth         = 800.0
	DefaultHeight        = 400.0
	DefaultMargin        = "20,20,30,40"
	DefaultTickCount     = 5
	MaxTickCount         = 50
	DefaultPaddingRatio  = 0.1
	DefaultMinBrushWidth = 2.0
	DefaultPrecision     = 2
)

// StatRawInput is one derived statistic declared in the config file.
type StatRawInput struct {
	Name  string  `mapstructure:"name"`
	Value float64 `mapstructure:"value"`
	Unit  string  `mapstructure:"unit"`
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a chart build.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile   string
	InputFormat schema.InputFormat
	SamplesFile string

	Dimensions   schema.Dimensions
	Curve        schema.CurveKind
	Nice         bool
	PaddingRatio float64
	Ticks        int
	XAxis        schema.ScaleKind
	Reveal       float64

	MinBrushWidth float64
	Wrap          schema.WrapPolicy

	// Pointer and drag positions for the nearest and brush commands
	PointerX  float64
	PointerY  float64
	PixelMode bool
	BrushFrom float64
	BrushTo   float64
	Keys      []string

	Stats []schema.Stat

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Input          string  `mapstructure:"input"`
	InputFormat    string  `mapstructure:"input-format"`
	Samples        string  `mapstructure:"samples"`
	ChartWidth     float64 `mapstructure:"chart-width"`
	ChartHeight    float64 `mapstructure:"chart-height"`
	Margin         string  `mapstructure:"margin"`
	Curve          string  `mapstructure:"curve"`
	Nice           string  `mapstructure:"nice"`
	PaddingRatio   float64 `mapstructure:"padding-ratio"`
	Ticks          int     `mapstructure:"ticks"`
	XAxis          string  `mapstructure:"x-axis"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Precision      int     `mapstructure:"precision"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
	CacheBackend   string  `mapstructure:"cache-backend"`
	CacheDBConnect string  `mapstructure:"cache-db-connect"`
	RunBackend     string  `mapstructure:"run-backend"`
	RunDBConnect   string  `mapstructure:"run-db-connect"`

	// --- Fields from renderCmd.Flags() ---
	Reveal float64 `mapstructure:"reveal"`

	// --- Fields from nearestCmd.Flags() ---
	X     float64 `mapstructure:"x"`
	Y     float64 `mapstructure:"y"`
	Pixel bool    `mapstructure:"pixel"`

	// --- Fields from brushCmd.Flags() ---
	From          float64 `mapstructure:"from"`
	To            float64 `mapstructure:"to"`
	MinBrushWidth float64 `mapstructure:"min-brush-width"`

	// --- Fields from navigateCmd.Flags() ---
	Keys string `mapstructure:"keys"`
	Wrap string `mapstructure:"wrap"`

	// --- Derived statistics from config file ---
	Stats []StatRawInput `mapstructure:"stats"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Keys != nil {
		clone.Keys = make([]string, len(c.Keys))
		copy(clone.Keys, c.Keys)
	}
	if c.Stats != nil {
		clone.Stats = make([]schema.Stat, len(c.Stats))
		copy(clone.Stats, c.Stats)
	}
	return &clone
}

// CacheParams returns the settings that change the computed geometry, for run records.
func (c *Config) CacheParams() map[string]any {
	params := map[string]any{
		"input":         c.InputFile,
		"width":         c.Dimensions.Width,
		"height":        c.Dimensions.Height,
		"curve":         string(c.Curve),
		"nice":          c.Nice,
		"padding_ratio": c.PaddingRatio,
		"ticks":         c.Ticks,
		"x_axis":        string(c.XAxis),
	}
	if c.SamplesFile != "" {
		params["samples"] = c.SamplesFile
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processInputs(cfg, input); err != nil {
		return err
	}
	if err := processLayout(cfg, input); err != nil {
		return err
	}
	if err := processInteraction(cfg, input); err != nil {
		return err
	}
	return processStats(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and run backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Run Backend Validation ---
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if cfg.RunBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return err
	}

	// The cache is dropped wholesale on clear, so it cannot share a SQLite file with runs
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		runDBPath := cfg.RunDBConnect
		if runDBPath == "" {
			runDBPath = GetRunDBFilePath()
		}
		if cacheDBPath == runDBPath {
			return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	return validateBackendConfigs(cfg, input)
}

// processInputs resolves the series and samples files and their format.
func processInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = strings.TrimSpace(input.Input)
	cfg.SamplesFile = strings.TrimSpace(input.Samples)

	format := strings.ToLower(strings.TrimSpace(input.InputFormat))
	if format == "" && cfg.InputFile != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.InputFile)), ".")
	}
	if format == "" {
		format = string(schema.JSONInput)
	}
	cfg.InputFormat = schema.InputFormat(format)
	if _, ok := schema.ValidInputFormats[cfg.InputFormat]; !ok {
		return fmt.Errorf("invalid input format '%s'. must be json, csv, parquet, xlsx", format)
	}
	return nil
}

// processLayout validates chart dimensions, curve and axis settings.
func processLayout(cfg *Config, input *ConfigRawInput) error {
	margins, err := ParseMargins(input.Margin)
	if err != nil {
		return err
	}
	cfg.Dimensions = schema.Dimensions{Width: input.ChartWidth, Height: input.ChartHeight, Margin: margins}
	if !(cfg.Dimensions.InnerWidth() > 0) || !(cfg.Dimensions.InnerHeight() > 0) {
		return fmt.Errorf("chart size %gx%g leaves no plot area inside margins %q", input.ChartWidth, input.ChartHeight, input.Margin)
	}

	cfg.Curve = schema.CurveKind(strings.ToLower(input.Curve))
	if _, ok := schema.ValidCurveKinds[cfg.Curve]; !ok {
		return fmt.Errorf("invalid curve '%s'. must be linear, monotone, step, natural", input.Curve)
	}

	nice, err := ParseBoolString(input.Nice)
	if err != nil {
		return fmt.Errorf("invalid --nice value: %w", err)
	}
	cfg.Nice = nice

	if input.PaddingRatio < 0 || input.PaddingRatio >= 1 || math.IsNaN(input.PaddingRatio) {
		return fmt.Errorf("padding ratio must be in [0, 1) (received %g)", input.PaddingRatio)
	}
	cfg.PaddingRatio = input.PaddingRatio

	if input.Ticks < 1 || input.Ticks > MaxTickCount {
		return fmt.Errorf("ticks must be between 1 and %d (received %d)", MaxTickCount, input.Ticks)
	}
	cfg.Ticks = input.Ticks

	cfg.XAxis = schema.ScaleKind(strings.ToLower(input.XAxis))
	if _, ok := schema.ValidScaleKinds[cfg.XAxis]; !ok {
		return fmt.Errorf("invalid x axis '%s'. must be linear, temporal", input.XAxis)
	}

	if input.Reveal < 0 || input.Reveal > 1 || math.IsNaN(input.Reveal) {
		return fmt.Errorf("reveal must be in [0, 1] (received %g)", input.Reveal)
	}
	cfg.Reveal = input.Reveal
	return nil
}

// processInteraction validates pointer, brush and keyboard settings.
func processInteraction(cfg *Config, input *ConfigRawInput) error {
	cfg.PointerX = input.X
	cfg.PointerY = input.Y
	cfg.PixelMode = input.Pixel
	cfg.BrushFrom = input.From
	cfg.BrushTo = input.To

	if input.MinBrushWidth < 0 || math.IsNaN(input.MinBrushWidth) {
		return fmt.Errorf("min brush width cannot be negative (received %g)", input.MinBrushWidth)
	}
	cfg.MinBrushWidth = input.MinBrushWidth
	if cfg.MinBrushWidth == 0 {
		cfg.MinBrushWidth = DefaultMinBrushWidth
	}

	cfg.Wrap = schema.WrapPolicy(strings.ToLower(input.Wrap))
	if cfg.Wrap == "" {
		cfg.Wrap = schema.ClampWrap
	}
	if _, ok := schema.ValidWrapPolicies[cfg.Wrap]; !ok {
		return fmt.Errorf("invalid wrap policy '%s'. must be clamp, wrap", input.Wrap)
	}

	cfg.Keys = ParseKeys(input.Keys)
	return nil
}

// ParseKeys splits a comma-separated key sequence.
func ParseKeys(s string) []string {
	var keys []string
	for key := range strings.SplitSeq(s, ",") {
		// A lone space is the Select key, so only trim keys that have other characters
		if key != " " {
			key = strings.TrimSpace(key)
		}
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// processStats converts derived statistics from the config file, keeping their order.
func processStats(cfg *Config, input *ConfigRawInput) error {
	cfg.Stats = nil
	for i, raw := range input.Stats {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return fmt.Errorf("stat %d has no name", i+1)
		}
		cfg.Stats = append(cfg.Stats, schema.Stat{Name: name, Value: raw.Value, Unit: strings.TrimSpace(raw.Unit)})
	}
	return nil
}

// ParseMargins parses "all", "vertical,horizontal" or "top,right,bottom,left" pixel margins.
func ParseMargins(s string) (schema.Margins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return schema.Margins{}, nil
	}
	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return schema.Margins{}, fmt.Errorf("invalid margin value '%s': %w", p, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return schema.Margins{}, fmt.Errorf("margin values must be finite and non-negative (received %s)", p)
		}
		values[i] = v
	}
	switch len(values) {
	case 1:
		return schema.Margins{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}, nil
	case 2:
		return schema.Margins{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 4:
		return schema.Margins{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return schema.Margins{}, fmt.Errorf("margin must have 1, 2 or 4 comma-separated values (received %d)", len(values))
	}
}

// RevalidateLayout re-runs layout validation on a cloned Config after a caller has
// overridden some of its fields. An empty margin keeps the current margins.
func RevalidateLayout(cfg *Config, margin string) error {
	if margin == "" {
		m := cfg.Dimensions.Margin
		margin = fmt.Sprintf("%g,%g,%g,%g", m.Top, m.Right, m.Bottom, m.Left)
	}
	return processLayout(cfg, &ConfigRawInput{
		ChartWidth:   cfg.Dimensions.Width,
		ChartHeight:  cfg.Dimensions.Height,
		Margin:       margin,
		Curve:        string(cfg.Curve),
		Nice:         strconv.FormatBool(cfg.Nice),
		PaddingRatio: cfg.PaddingRatio,
		Ticks:        cfg.Ticks,
		XAxis:        string(cfg.XAxis),
		Reveal:       cfg.Reveal,
	})
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
