package contract

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input matching the command-line defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Input:         "series.json",
		ChartWidth:    DefaultWidth,
		ChartHeight:   DefaultHeight,
		Margin:        DefaultMargin,
		Curve:         "linear",
		Nice:          "yes",
		PaddingRatio:  DefaultPaddingRatio,
		Ticks:         DefaultTickCount,
		XAxis:         "linear",
		Output:        "text",
		Precision:     DefaultPrecision,
		Color:         "yes",
		CacheBackend:  "sqlite",
		Reveal:        1,
		MinBrushWidth: DefaultMinBrushWidth,
		Wrap:          "clamp",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", modify: func(*ConfigRawInput) {}},
		{name: "invalid curve", modify: func(in *ConfigRawInput) { in.Curve = "bezier" }, expectError: true},
		{name: "uppercase curve accepted", modify: func(in *ConfigRawInput) { in.Curve = "MONOTONE" }},
		{name: "invalid output", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", modify: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", modify: func(in *ConfigRawInput) { in.Output = "parquet"; in.OutputFile = "out.parquet" }},
		{name: "negative precision", modify: func(in *ConfigRawInput) { in.Precision = -1 }, expectError: true},
		{name: "invalid color", modify: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid nice", modify: func(in *ConfigRawInput) { in.Nice = "sometimes" }, expectError: true},
		{name: "margins swallow the plot", modify: func(in *ConfigRawInput) { in.Margin = "200" }, expectError: true},
		{name: "zero ticks", modify: func(in *ConfigRawInput) { in.Ticks = 0 }, expectError: true},
		{name: "too many ticks", modify: func(in *ConfigRawInput) { in.Ticks = MaxTickCount + 1 }, expectError: true},
		{name: "padding ratio of one", modify: func(in *ConfigRawInput) { in.PaddingRatio = 1 }, expectError: true},
		{name: "invalid x axis", modify: func(in *ConfigRawInput) { in.XAxis = "log" }, expectError: true},
		{name: "temporal x axis", modify: func(in *ConfigRawInput) { in.XAxis = "temporal" }},
		{name: "reveal above one", modify: func(in *ConfigRawInput) { in.Reveal = 1.5 }, expectError: true},
		{name: "negative brush width", modify: func(in *ConfigRawInput) { in.MinBrushWidth = -1 }, expectError: true},
		{name: "invalid wrap", modify: func(in *ConfigRawInput) { in.Wrap = "bounce" }, expectError: true},
		{name: "unknown input extension", modify: func(in *ConfigRawInput) { in.Input = "series.xml" }, expectError: true},
		{name: "explicit input format", modify: func(in *ConfigRawInput) { in.Input = "series.txt"; in.InputFormat = "csv" }},
		{name: "invalid cache backend", modify: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: true},
		{name: "mysql cache without connection", modify: func(in *ConfigRawInput) { in.CacheBackend = "mysql" }, expectError: true},
		{
			name: "mysql cache with connection",
			modify: func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
				in.CacheDBConnect = "user:pass@tcp(localhost:3306)/chartkit"
			},
		},
		{
			name: "postgres run store with connection",
			modify: func(in *ConfigRawInput) {
				in.RunBackend = "postgresql"
				in.RunDBConnect = "host=localhost port=5432 user=u password=p dbname=chartkit"
			},
		},
		{name: "invalid run backend", modify: func(in *ConfigRawInput) { in.RunBackend = "mongo" }, expectError: true},
		{
			name: "sqlite cache and runs sharing a file",
			modify: func(in *ConfigRawInput) {
				in.CacheDBConnect = "/tmp/shared.db"
				in.RunBackend = "sqlite"
				in.RunDBConnect = "/tmp/shared.db"
			},
			expectError: true,
		},
		{name: "sqlite runs on default paths", modify: func(in *ConfigRawInput) { in.RunBackend = "sqlite" }},
		{name: "stat without name", modify: func(in *ConfigRawInput) { in.Stats = []StatRawInput{{Value: 1}} }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	input := validInput()
	input.Input = "data/temps.CSV"
	input.Curve = "Natural"
	input.Margin = "10,20"
	input.Keys = "ArrowRight, ArrowRight,Home, ,Escape"
	input.Stats = []StatRawInput{{Name: " rmse ", Value: 1.25, Unit: "mm"}, {Name: "mae", Value: 0.5}}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.CSVInput, cfg.InputFormat)
	assert.Equal(t, schema.NaturalCurve, cfg.Curve)
	assert.Equal(t, schema.Margins{Top: 10, Right: 20, Bottom: 10, Left: 20}, cfg.Dimensions.Margin)
	assert.Equal(t, 760.0, cfg.Dimensions.InnerWidth())
	assert.Equal(t, []string{"ArrowRight", "ArrowRight", "Home", " ", "Escape"}, cfg.Keys)
	assert.Equal(t, []schema.Stat{{Name: "rmse", Value: 1.25, Unit: "mm"}, {Name: "mae", Value: 0.5}}, cfg.Stats)
	assert.True(t, cfg.Nice)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.ClampWrap, cfg.Wrap)
	assert.Empty(t, cfg.RunBackend)
}

func TestProcessAndValidateDefaultsFallback(t *testing.T) {
	input := validInput()
	input.Input = ""
	input.Wrap = ""
	input.MinBrushWidth = 0

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.JSONInput, cfg.InputFormat)
	assert.Equal(t, schema.ClampWrap, cfg.Wrap)
	assert.Equal(t, DefaultMinBrushWidth, cfg.MinBrushWidth)
}

func TestParseMargins(t *testing.T) {
	tests := []struct {
		in       string
		expected schema.Margins
		wantErr  bool
	}{
		{"", schema.Margins{}, false},
		{"5", schema.Margins{Top: 5, Right: 5, Bottom: 5, Left: 5}, false},
		{"1,2", schema.Margins{Top: 1, Right: 2, Bottom: 1, Left: 2}, false},
		{"1, 2, 3, 4", schema.Margins{Top: 1, Right: 2, Bottom: 3, Left: 4}, false},
		{"1,2,3", schema.Margins{}, true},
		{"a", schema.Margins{}, true},
		{"-1", schema.Margins{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMargins(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/db", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@127.0.0.1/db", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=db dbname=charts", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=charts", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=db", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Keys:  []string{"Home"},
		Stats: []schema.Stat{{Name: "rmse", Value: 1}},
	}
	clone := cfg.Clone()
	clone.Keys[0] = "End"
	clone.Stats[0].Value = 2
	assert.Equal(t, "Home", cfg.Keys[0])
	assert.Equal(t, 1.0, cfg.Stats[0].Value)
}

func TestCacheParams(t *testing.T) {
	cfg := &Config{
		InputFile:  filepath.Join("data", "s.json"),
		Curve:      schema.StepCurve,
		Ticks:      5,
		XAxis:      schema.TemporalScale,
		Dimensions: schema.Dimensions{Width: 100, Height: 50},
	}
	params := cfg.CacheParams()
	assert.Equal(t, "step", params["curve"])
	assert.Equal(t, "temporal", params["x_axis"])
	assert.NotContains(t, params, "samples")

	cfg.SamplesFile = "states.csv"
	assert.Equal(t, "states.csv", cfg.CacheParams()["samples"])
}

func TestRevalidateLayout(t *testing.T) {
	base := func() *Config {
		return &Config{
			Dimensions:   schema.Dimensions{Width: 200, Height: 100, Margin: schema.Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}},
			Curve:        schema.LinearCurve,
			PaddingRatio: 0.1,
			Ticks:        5,
			XAxis:        schema.LinearScale,
			Reveal:       1,
		}
	}

	t.Run("keeps margins", func(t *testing.T) {
		cfg := base()
		require.NoError(t, RevalidateLayout(cfg, ""))
		assert.Equal(t, 10.0, cfg.Dimensions.Margin.Left)
	})

	t.Run("overrides margins", func(t *testing.T) {
		cfg := base()
		require.NoError(t, RevalidateLayout(cfg, "5"))
		assert.Equal(t, 190.0, cfg.Dimensions.InnerWidth())
	})

	t.Run("rejects bad overrides", func(t *testing.T) {
		cfg := base()
		cfg.Curve = "spline"
		assert.ErrorContains(t, RevalidateLayout(cfg, ""), "invalid curve 'spline'")

		cfg = base()
		cfg.Dimensions.Width = 15
		assert.ErrorContains(t, RevalidateLayout(cfg, ""), "leaves no plot area")
	})
}

func TestParseKeys(t *testing.T) {
	assert.Equal(t, []string{"ArrowRight", " ", "End"}, ParseKeys("ArrowRight, , End"))
	assert.Equal(t, []string{"Home", " "}, ParseKeys(" Home , "))
	assert.Nil(t, ParseKeys(""))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "chartkit"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "chartkit", profile.Prefix)
}
