// Package cmd defines the command-line interface for chartkit.
package cmd

import (
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(nearestCmd)
	rootCmd.AddCommand(brushCmd)
	rootCmd.AddCommand(bandsCmd)
	rootCmd.AddCommand(navigateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Series file (json, csv, parquet or xlsx)")
	rootCmd.PersistentFlags().String("input-format", "", "Input format: json or csv or parquet or xlsx (default: from the file extension)")
	rootCmd.PersistentFlags().String("samples", "", "Category samples file for bands (json, csv or xlsx)")
	rootCmd.PersistentFlags().Float64("chart-width", contract.DefaultWidth, "Chart width in pixels")
	rootCmd.PersistentFlags().Float64("chart-height", contract.DefaultHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().String("margin", contract.DefaultMargin, "Pixel margins: 'all' or 'vertical,horizontal' or 'top,right,bottom,left'")
	rootCmd.PersistentFlags().String("curve", string(schema.LinearCurve), "Curve interpolation: linear or monotone or step or natural")
	rootCmd.PersistentFlags().String("nice", "yes", "Extend the y domain to round tick values (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Float64("padding-ratio", contract.DefaultPaddingRatio, "Fraction of the y span added above and below the data")
	rootCmd.PersistentFlags().Int("ticks", contract.DefaultTickCount, "Approximate number of axis ticks")
	rootCmd.PersistentFlags().String("x-axis", string(schema.LinearScale), "X axis kind: linear or temporal")
	rootCmd.PersistentFlags().Bool("pixel", false, "Read pointer and brush positions as pixels instead of domain values")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("run-backend", "", "Render run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for run tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().Float64("reveal", 1, "Fraction of each path to draw, from 0 to 1")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of nearestCmd to Viper
	nearestCmd.Flags().Float64("x", 0, "Pointer x position")
	nearestCmd.Flags().Float64("y", 0, "Pointer y position")
	if err := viper.BindPFlags(nearestCmd.Flags()); err != nil {
		contract.LogFatal("Error binding nearest flags", err)
	}

	// Bind all flags of brushCmd to Viper
	brushCmd.Flags().Float64("from", 0, "Drag start position")
	brushCmd.Flags().Float64("to", 0, "Drag end position")
	brushCmd.Flags().Float64("min-brush-width", contract.DefaultMinBrushWidth, "Minimum drag width in pixels for a selection to count")
	if err := viper.BindPFlags(brushCmd.Flags()); err != nil {
		contract.LogFatal("Error binding brush flags", err)
	}

	// Bind all flags of navigateCmd to Viper
	navigateCmd.Flags().String("keys", "", "Comma-separated keys or actions to replay (e.g., 'ArrowRight,ArrowDown,Enter')")
	navigateCmd.Flags().String("wrap", string(schema.ClampWrap), "Behaviour at the ends of a series: clamp or wrap")
	if err := viper.BindPFlags(navigateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding navigate flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
