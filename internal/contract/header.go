package contract

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogChartHeader prints a concise, 2-line header before a command runs.
// It goes to stderr so that JSON and CSV on stdout stay machine-readable.
func LogChartHeader(cfg *Config, command string, seriesCount, pointCount int) {
	inputName := filepath.Base(cfg.InputFile)
	if cfg.InputFile == "" {
		inputName = filepath.Base(cfg.SamplesFile)
	}

	// Line 1: The input and command
	fmt.Fprintf(os.Stderr, "📈 Input: %s (Command: %s)\n", inputName, command)

	// Line 2: The layout the geometry is computed for
	fmt.Fprintf(os.Stderr, "📐 Layout: %gx%g, %s curve, %s x axis (%d series, %d points)\n",
		cfg.Dimensions.Width, cfg.Dimensions.Height, cfg.Curve, cfg.XAxis, seriesCount, pointCount)
}
