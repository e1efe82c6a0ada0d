// Package core has core logic for building chart geometry and replaying interactions.
//
// The geometry kernel lives in the subpackages (scale, curve, hit, brush, keynav,
// bands, a11y). This package loads data, wires the kernel together, caches results
// and hands them to the output writer.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/dataload"
	"github.com/huangsam/chartkit/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ErrNoInput is returned when a command needs series data and no input file was given.
var ErrNoInput = errors.New("no input file given (use --input)")

// ErrNoSamples is returned when a command needs category samples and none were given.
var ErrNoSamples = errors.New("no samples file given (use --samples)")

// LoadInput reads the configured series and samples files. needSeries and needSamples
// decide which of the two files are mandatory.
func LoadInput(cfg *contract.Config, needSeries, needSamples bool) (ChartInput, error) {
	var in ChartInput
	switch {
	case cfg.InputFile != "":
		data, err := dataload.LoadSeries(cfg.InputFile, cfg.InputFormat)
		if err != nil {
			return in, fmt.Errorf("loading series: %w", err)
		}
		in.Series, in.Stats = data.Series, data.Stats
	case needSeries:
		return in, ErrNoInput
	}

	switch {
	case cfg.SamplesFile != "":
		samples, err := dataload.LoadSamples(cfg.SamplesFile)
		if err != nil {
			return in, fmt.Errorf("loading samples: %w", err)
		}
		in.Samples = samples
	case needSamples:
		return in, ErrNoSamples
	}
	return in, nil
}

// loadWithHeader loads the input and prints the command header unless suppressed.
func loadWithHeader(ctx context.Context, cfg *contract.Config, command string, needSeries, needSamples bool) (ChartInput, error) {
	in, err := LoadInput(cfg, needSeries, needSamples)
	if err != nil {
		return in, err
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogChartHeader(cfg, command, len(in.Series), in.PointCount())
	}
	return in, nil
}

// ExecuteRender builds the full chart geometry and prints it.
// It serves as the main entry point for the 'render' command.
func ExecuteRender(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "render", true, false)
	if err != nil {
		return err
	}
	geom, err := BuildChart(ctx, cfg, in, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteChart(geom, cfg, duration)
}

// ExecuteScale fits and prints both axes for the input.
func ExecuteScale(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "scale", true, false)
	if err != nil {
		return err
	}
	result, err := FitScales(cfg, in)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteScales(result, cfg, duration)
}

// ExecuteNearest resolves the configured pointer to the nearest point and prints it.
func ExecuteNearest(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "nearest", true, false)
	if err != nil {
		return err
	}
	result, err := Nearest(cfg, in)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteNearest(result, cfg, duration)
}

// ExecuteBrush replays the configured drag and prints the resulting selection.
func ExecuteBrush(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "brush", true, false)
	if err != nil {
		return err
	}
	result, err := Brush(cfg, in)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteBrush(result, cfg, duration)
}

// ExecuteBands compresses the configured samples into bands and prints them.
func ExecuteBands(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "bands", false, true)
	if err != nil {
		return err
	}
	result, err := Bands(cfg, in)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteBands(result, cfg, duration)
}

// ExecuteNavigate replays the configured keys and prints each focus step.
func ExecuteNavigate(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "navigate", true, false)
	if err != nil {
		return err
	}
	result, err := Navigate(cfg, in, cfg.Keys)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteNavigation(result, cfg, duration)
}

// ExecuteDescribe prints the screen-reader description of the input.
func ExecuteDescribe(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	in, err := loadWithHeader(ctx, cfg, "describe", true, false)
	if err != nil {
		return err
	}
	result := Describe(cfg, in)
	duration := time.Since(start)
	return outwriter.WriteDescription(result, cfg, duration)
}

// ExecuteKeys prints the keyboard navigation key map. No input is read.
func ExecuteKeys(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.WriteKeyBindings(KeyBindings(), cfg)
}
