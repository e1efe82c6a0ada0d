package schema

import "fmt"

// EmptyDomainError means there was no data available to build a scale or geometry from.
// Overflow is set when values exist but their span is not a finite float64.
type EmptyDomainError struct {
	Axis     string // "x", "y" or a caller-chosen label
	Overflow bool
}

func (e *EmptyDomainError) Error() string {
	if e.Overflow {
		if e.Axis == "" {
			return "empty domain: value span overflows float64"
		}
		return fmt.Sprintf("empty domain on %s axis: value span overflows float64", e.Axis)
	}
	if e.Axis == "" {
		return "empty domain: no finite values to scale"
	}
	return fmt.Sprintf("empty domain on %s axis: no finite values to scale", e.Axis)
}

// InvalidRangeError means the pixel range has zero or negative width.
type InvalidRangeError struct {
	Min float64
	Max float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid pixel range [%g, %g]: width must be positive", e.Min, e.Max)
}

// OutOfBoundsFocusError means keyboard navigation was requested with no focusable points.
type OutOfBoundsFocusError struct {
	Action string
}

func (e *OutOfBoundsFocusError) Error() string {
	return fmt.Sprintf("cannot %s: no series with points to focus", e.Action)
}
