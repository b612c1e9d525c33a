package core

// ConstraintFromRaw parses a loosely-typed constraint entry of the shape
// described in the spec's serialization schema:
//
//	{ agent: <string|nil>, time: <int>, kind: "vertex"|"edge",
//	  pos: [x,y]?, from: [x,y]?, to: [x,y]? }
//
// It returns ok=false for any malformed entry (missing time, missing pos
// for a vertex constraint, missing from/to for an edge constraint, or an
// unrecognized kind) rather than an error — per §7, upstream generators may
// be loose, and a malformed entry is simply dropped by the caller.
func ConstraintFromRaw(raw map[string]any) (Constraint, bool) {
	timeVal, ok := raw["time"]
	if !ok {
		return Constraint{}, false
	}
	t, ok := asInt(timeVal)
	if !ok {
		return Constraint{}, false
	}

	agent := GlobalAgent
	if a, ok := raw["agent"]; ok && a != nil {
		s, ok := a.(string)
		if !ok {
			return Constraint{}, false
		}
		agent = AgentID(s)
	}

	kind, _ := raw["kind"].(string)
	switch kind {
	case "", "vertex":
		pos, ok := asCell(raw["pos"])
		if !ok {
			return Constraint{}, false
		}
		return Constraint{Agent: agent, Time: t, Kind: VertexConstraint, Pos: pos}, true
	case "edge":
		from, okFrom := asCell(raw["from"])
		to, okTo := asCell(raw["to"])
		if !okFrom || !okTo {
			return Constraint{}, false
		}
		return Constraint{Agent: agent, Time: t, Kind: EdgeConstraint, From: from, To: to}, true
	default:
		return Constraint{}, false
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asCell(v any) (Cell, bool) {
	pair, ok := v.([]int)
	if ok && len(pair) == 2 {
		return Cell{X: pair[0], Y: pair[1]}, true
	}
	anyPair, ok := v.([]any)
	if !ok || len(anyPair) != 2 {
		return Cell{}, false
	}
	x, okX := asInt(anyPair[0])
	y, okY := asInt(anyPair[1])
	if !okX || !okY {
		return Cell{}, false
	}
	return Cell{X: x, Y: y}, true
}
