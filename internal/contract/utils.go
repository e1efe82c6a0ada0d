package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Status label constants.
const (
	CachedValue = "Cached" // Result was served from the geometry cache
	FreshValue  = "Fresh"  // Result was computed for this run
	SparseValue = "Sparse" // Series has a single point and renders as a marker
	EmptyValue  = "Empty"  // Series has no points to draw
)

// Color variables for console output.
var (
	CachedColor = color.New(color.FgCyan)
	FreshColor  = color.New(color.FgGreen, color.Bold)
	SparseColor = color.New(color.FgYellow)
	EmptyColor  = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text label describing how a series was drawn.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(pointCount int, cacheHit bool) string {
	switch {
	case pointCount == 0:
		return EmptyValue
	case pointCount == 1:
		return SparseValue
	case cacheHit:
		return CachedValue
	default:
		return FreshValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(pointCount int, cacheHit bool) string {
	text := GetPlainLabel(pointCount, cacheHit)

	switch text {
	case EmptyValue:
		return EmptyColor.Sprint(text)
	case SparseValue:
		return SparseColor.Sprint(text)
	case CachedValue:
		return CachedColor.Sprint(text)
	default:
		return FreshColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for geometry caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".chartkit_cache.db"
	}
	return filepath.Join(homeDir, ".chartkit_cache.db")
}

// GetRunDBFilePath returns the path to the SQLite DB file for render-run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".chartkit_runs.db"
	}
	return filepath.Join(homeDir, ".chartkit_runs.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
