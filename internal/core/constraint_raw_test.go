package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstraintFromRawVertex(t *testing.T) {
	raw := map[string]any{
		"agent": "a1",
		"time":  float64(3), // as decoded from JSON
		"kind":  "vertex",
		"pos":   []any{float64(2), float64(4)},
	}
	c, ok := ConstraintFromRaw(raw)
	require.True(t, ok)
	require.Equal(t, Constraint{Agent: "a1", Time: 3, Kind: VertexConstraint, Pos: Cell{X: 2, Y: 4}}, c)
}

func TestConstraintFromRawGlobalDefaultKind(t *testing.T) {
	raw := map[string]any{
		"time": 5,
		"pos":  []any{1, 1},
	}
	c, ok := ConstraintFromRaw(raw)
	require.True(t, ok)
	require.True(t, c.IsGlobal())
	require.Equal(t, VertexConstraint, c.Kind)
}

func TestConstraintFromRawEdge(t *testing.T) {
	raw := map[string]any{
		"agent": "a2",
		"time":  2,
		"kind":  "edge",
		"from":  []any{0, 0},
		"to":    []any{1, 0},
	}
	c, ok := ConstraintFromRaw(raw)
	require.True(t, ok)
	require.Equal(t, Cell{X: 0, Y: 0}, c.From)
	require.Equal(t, Cell{X: 1, Y: 0}, c.To)
}

func TestConstraintFromRawMalformed(t *testing.T) {
	cases := []map[string]any{
		{"pos": []any{1, 1}},                     // missing time
		{"time": 1, "kind": "vertex"},             // missing pos
		{"time": 1, "kind": "edge", "from": []any{0, 0}}, // missing to
		{"time": 1, "kind": "bogus", "pos": []any{0, 0}}, // unknown kind
		{"time": 1, "agent": 42, "pos": []any{0, 0}},     // agent not a string
		{"time": 1, "pos": []any{0}},                     // malformed pos
	}
	for _, raw := range cases {
		_, ok := ConstraintFromRaw(raw)
		require.False(t, ok, "%v should be rejected", raw)
	}
}
