package keynav

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func focus(s, p int) schema.FocusState {
	return schema.FocusState{SeriesIndex: s, PointIndex: p}
}

func TestApply(t *testing.T) {
	lengths := []int{3, 0, 5}
	clamp := Navigator{Wrap: schema.ClampWrap}
	cycle := Navigator{Wrap: schema.CycleWrap}

	tests := []struct {
		name   string
		nav    Navigator
		state  schema.FocusState
		action Action
		want   schema.FocusState
	}{
		{"from none", clamp, schema.NoFocus, NextPoint, focus(0, 0)},
		{"from none on series action", clamp, schema.NoFocus, PreviousSeries, focus(0, 0)},
		{"next point", clamp, focus(0, 1), NextPoint, focus(0, 2)},
		{"next point clamps", clamp, focus(0, 2), NextPoint, focus(0, 2)},
		{"next point wraps", cycle, focus(0, 2), NextPoint, focus(0, 0)},
		{"previous point clamps", clamp, focus(2, 0), PreviousPoint, focus(2, 0)},
		{"previous point wraps", cycle, focus(2, 0), PreviousPoint, focus(2, 4)},
		{"next series skips empty", clamp, focus(0, 1), NextSeries, focus(2, 1)},
		{"next series wraps", clamp, focus(2, 4), NextSeries, focus(0, 2)},
		{"previous series wraps", clamp, focus(0, 2), PreviousSeries, focus(2, 2)},
		{"home", clamp, focus(2, 3), FirstPoint, focus(2, 0)},
		{"end", clamp, focus(2, 1), LastPoint, focus(2, 4)},
		{"clear", clamp, focus(2, 1), Clear, schema.NoFocus},
		{"stale state restarts", clamp, focus(2, 9), NextPoint, focus(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, sel, err := tt.nav.Apply(tt.state, tt.action, lengths)
			require.NoError(t, err)
			assert.Nil(t, sel)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect(t *testing.T) {
	nav := Navigator{}
	got, sel, err := nav.Apply(focus(1, 2), Select, []int{1, 4})
	require.NoError(t, err)
	assert.Equal(t, focus(1, 2), got)
	require.NotNil(t, sel)
	assert.Equal(t, focus(1, 2), sel.Focus)

	got, sel, err = nav.Apply(schema.NoFocus, Select, []int{1, 4})
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.True(t, got.IsNone())
}

func TestNoFocusablePoints(t *testing.T) {
	for name, lengths := range map[string][]int{
		"no series": nil,
		"all empty": {0, 0},
		"one empty": {0},
	} {
		t.Run(name, func(t *testing.T) {
			got, _, err := Navigator{}.Apply(schema.NoFocus, NextPoint, lengths)
			var oob *schema.OutOfBoundsFocusError
			require.True(t, errors.As(err, &oob))
			assert.Equal(t, "next-point", oob.Action)
			assert.True(t, got.IsNone())

			got, _, err = Navigator{}.Apply(schema.NoFocus, Clear, lengths)
			require.NoError(t, err)
			assert.True(t, got.IsNone())
		})
	}
}

func TestUnknownAction(t *testing.T) {
	_, _, err := Navigator{}.Apply(schema.NoFocus, Action(99), []int{1})
	assert.ErrorContains(t, err, "action(99)")
}

func TestActionForKey(t *testing.T) {
	tests := map[string]Action{
		"ArrowRight": NextPoint,
		"left":       PreviousPoint,
		"ArrowDown":  NextSeries,
		"UP":         PreviousSeries,
		"Home":       FirstPoint,
		"End":        LastPoint,
		"Enter":      Select,
		" ":          Select,
		"Escape":     Clear,
	}
	for key, want := range tests {
		got, ok := ActionForKey(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	_, ok := ActionForKey("q")
	assert.False(t, ok)
}

func TestBindings(t *testing.T) {
	all := Bindings()
	require.Len(t, all, 8)
	for _, b := range all {
		for _, key := range b.Keys {
			got, ok := ActionForKey(key)
			assert.True(t, ok, key)
			assert.Equal(t, b.Action, got, key)
		}
	}

	// Callers get a copy
	all[0].Keys[0] = "x"
	assert.Equal(t, "ArrowRight", Bindings()[0].Keys[0])
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("next-series")
	assert.True(t, ok)
	assert.Equal(t, NextSeries, a)
	_, ok = ParseAction("none")
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	assert.True(t, Reset().IsNone())

	// A replaced series set starts unfocused, so the first move lands on the first point
	nav := Navigator{Wrap: schema.ClampWrap}
	next, _, err := nav.Apply(Reset(), NextPoint, []int{3, 3})
	require.NoError(t, err)
	assert.Equal(t, focus(0, 0), next)
}

func TestReconcile(t *testing.T) {
	assert.Equal(t, focus(1, 1), Reconcile(focus(1, 1), []int{2, 2}))
	assert.True(t, Reconcile(focus(1, 2), []int{2, 2}).IsNone())
	assert.True(t, Reconcile(focus(3, 0), []int{2, 2}).IsNone())
}

func TestNavigationStaysInRange(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	actions := []Action{NextPoint, PreviousPoint, NextSeries, PreviousSeries, FirstPoint, LastPoint, Select, Clear}

	for _, wrap := range []schema.WrapPolicy{schema.ClampWrap, schema.CycleWrap} {
		nav := Navigator{Wrap: wrap}
		for trial := 0; trial < 50; trial++ {
			lengths := make([]int, 1+r.Intn(5))
			for i := range lengths {
				lengths[i] = r.Intn(4)
			}
			lengths[r.Intn(len(lengths))]++ // at least one focusable point

			state := schema.NoFocus
			for i := 0; i < 200; i++ {
				next, _, err := nav.Apply(state, actions[r.Intn(len(actions))], lengths)
				require.NoError(t, err)
				if !next.IsNone() {
					require.Less(t, next.SeriesIndex, len(lengths))
					require.GreaterOrEqual(t, next.PointIndex, 0)
					require.Less(t, next.PointIndex, lengths[next.SeriesIndex])
				}
				state = next
			}
		}
	}
}
