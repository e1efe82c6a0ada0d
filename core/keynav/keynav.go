// Package keynav is the keyboard focus state machine over (series, point) positions.
package keynav

import (
	"fmt"
	"strings"

	"github.com/huangsam/chartkit/schema"
)

// Action is a keyboard navigation command.
type Action int

const (
	ActionNone Action = iota
	NextPoint
	PreviousPoint
	NextSeries
	PreviousSeries
	FirstPoint
	LastPoint
	Select
	Clear
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	NextPoint:      "next-point",
	PreviousPoint:  "previous-point",
	NextSeries:     "next-series",
	PreviousSeries: "previous-series",
	FirstPoint:     "first-point",
	LastPoint:      "last-point",
	Select:         "select",
	Clear:          "clear",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction looks up an action by its String form.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// Binding lists the key names that trigger an action.
type Binding struct {
	Action Action
	Keys   []string
}

var bindings = []Binding{
	{Action: NextPoint, Keys: []string{"ArrowRight", "right"}},
	{Action: PreviousPoint, Keys: []string{"ArrowLeft", "left"}},
	{Action: NextSeries, Keys: []string{"ArrowDown", "down"}},
	{Action: PreviousSeries, Keys: []string{"ArrowUp", "up"}},
	{Action: FirstPoint, Keys: []string{"Home"}},
	{Action: LastPoint, Keys: []string{"End"}},
	{Action: Select, Keys: []string{"Enter", " ", "space", "spacebar"}},
	{Action: Clear, Keys: []string{"Escape", "esc"}},
}

// Bindings returns the key bindings in display order.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	for i, b := range bindings {
		out[i] = Binding{Action: b.Action, Keys: append([]string(nil), b.Keys...)}
	}
	return out
}

// ActionForKey maps a key name to its action. Browser key names ("ArrowRight", " ") and
// short aliases ("right", "space", "esc") are accepted, case-insensitively.
func ActionForKey(key string) (Action, bool) {
	if key == " " {
		return Select, true
	}
	key = strings.TrimSpace(key)
	for _, b := range bindings {
		for _, k := range b.Keys {
			if k != " " && strings.EqualFold(k, key) {
				return b.Action, true
			}
		}
	}
	return ActionNone, false
}

// Selection is emitted when the focused point is activated.
type Selection struct {
	Focus schema.FocusState
}

// Navigator moves focus between points. Wrap decides what happens at either end of a
// series; switching series always wraps.
type Navigator struct {
	Wrap schema.WrapPolicy
}

// Apply runs one action against a focus state. lengths holds the point count of each
// series in order. Movement with no focusable points returns *schema.OutOfBoundsFocusError.
// A state that no longer fits lengths is treated as no focus.
func (n Navigator) Apply(state schema.FocusState, action Action, lengths []int) (schema.FocusState, *Selection, error) {
	state = Reconcile(state, lengths)

	switch action {
	case Clear:
		return schema.NoFocus, nil, nil
	case Select:
		if state.IsNone() {
			return state, nil, nil
		}
		return state, &Selection{Focus: state}, nil
	case NextPoint, PreviousPoint, NextSeries, PreviousSeries, FirstPoint, LastPoint:
	default:
		return state, nil, fmt.Errorf("unknown navigation action %v", action)
	}

	first := nextNonEmpty(lengths, -1, 1)
	if first < 0 {
		return schema.NoFocus, nil, &schema.OutOfBoundsFocusError{Action: action.String()}
	}
	if state.IsNone() {
		return schema.FocusState{SeriesIndex: first, PointIndex: 0}, nil, nil
	}

	si, pi := state.SeriesIndex, state.PointIndex
	last := lengths[si] - 1
	switch action {
	case NextPoint:
		pi = n.step(pi+1, last)
	case PreviousPoint:
		pi = n.step(pi-1, last)
	case FirstPoint:
		pi = 0
	case LastPoint:
		pi = last
	case NextSeries:
		si = nextNonEmpty(lengths, si, 1)
		pi = min(pi, lengths[si]-1)
	case PreviousSeries:
		si = nextNonEmpty(lengths, si, -1)
		pi = min(pi, lengths[si]-1)
	}
	return schema.FocusState{SeriesIndex: si, PointIndex: pi}, nil, nil
}

// step resolves an index that may have run off either end of [0, last].
func (n Navigator) step(i, last int) int {
	if n.Wrap == schema.CycleWrap {
		switch {
		case i > last:
			return 0
		case i < 0:
			return last
		}
		return i
	}
	return max(0, min(i, last))
}

// Reset is the focus for a freshly supplied series set. Call it whenever the series
// set is replaced.
func Reset() schema.FocusState {
	return schema.NoFocus
}

// Reconcile guards a focus against the current lengths: it returns state if it still
// addresses a point, otherwise NoFocus.
func Reconcile(state schema.FocusState, lengths []int) schema.FocusState {
	if state.IsNone() || state.SeriesIndex >= len(lengths) || state.PointIndex >= lengths[state.SeriesIndex] {
		return schema.NoFocus
	}
	return state
}

// nextNonEmpty walks from index from in direction dir, wrapping, and returns the first
// series with points. Starting at -1 with dir 1 finds the first non-empty series.
// It returns -1 when every series is empty.
func nextNonEmpty(lengths []int, from, dir int) int {
	n := len(lengths)
	for k := 1; k <= n; k++ {
		i := ((from+dir*k)%n + n) % n
		if lengths[i] > 0 {
			return i
		}
	}
	return -1
}
