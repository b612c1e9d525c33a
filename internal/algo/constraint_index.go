package algo

import "github.com/elektrokombinacija/airspace-planner/internal/core"

// constraintKey is the (agent-or-global, time) bucket key constraints are
// indexed under.
type constraintKey struct {
	agent core.AgentID
	time  int
}

// constraintIndex is the once-per-call bucketing of a constraint set into
// vertex and edge lookups, per §4.1's "constraint indexing" rule. Building
// it is O(len(constraints)); every A* expansion then does O(1) set lookups
// instead of O(len(constraints)) scans.
type constraintIndex struct {
	vertex map[constraintKey]map[core.Cell]struct{}
	edge   map[constraintKey]map[[2]core.Cell]struct{}
}

// buildConstraintIndex buckets constraints scoped to agentID or to
// core.GlobalAgent; constraints scoped to other agents are irrelevant to
// this planning call and are dropped, exactly as a malformed entry would be.
func buildConstraintIndex(agentID core.AgentID, constraints []core.Constraint) *constraintIndex {
	idx := &constraintIndex{
		vertex: make(map[constraintKey]map[core.Cell]struct{}),
		edge:   make(map[constraintKey]map[[2]core.Cell]struct{}),
	}
	for _, c := range constraints {
		if c.Agent != agentID && c.Agent != core.GlobalAgent {
			continue
		}
		key := constraintKey{agent: c.Agent, time: c.Time}
		switch c.Kind {
		case core.VertexConstraint:
			if idx.vertex[key] == nil {
				idx.vertex[key] = make(map[core.Cell]struct{})
			}
			idx.vertex[key][c.Pos] = struct{}{}
		case core.EdgeConstraint:
			if idx.edge[key] == nil {
				idx.edge[key] = make(map[[2]core.Cell]struct{})
			}
			idx.edge[key][[2]core.Cell{c.From, c.To}] = struct{}{}
		default:
			// Unknown kind: silently dropped, per §4.1.
		}
	}
	return idx
}

// vertexForbidden reports whether pos is forbidden for agentID at time t,
// checking both the per-agent and the global (⊥) bucket.
func (idx *constraintIndex) vertexForbidden(agentID core.AgentID, t int, pos core.Cell) bool {
	if set, ok := idx.vertex[constraintKey{agent: agentID, time: t}]; ok {
		if _, found := set[pos]; found {
			return true
		}
	}
	if set, ok := idx.vertex[constraintKey{agent: core.GlobalAgent, time: t}]; ok {
		if _, found := set[pos]; found {
			return true
		}
	}
	return false
}

// edgeForbidden reports whether the transition from->to, arriving at time t,
// is forbidden for agentID.
func (idx *constraintIndex) edgeForbidden(agentID core.AgentID, t int, from, to core.Cell) bool {
	transition := [2]core.Cell{from, to}
	if set, ok := idx.edge[constraintKey{agent: agentID, time: t}]; ok {
		if _, found := set[transition]; found {
			return true
		}
	}
	if set, ok := idx.edge[constraintKey{agent: core.GlobalAgent, time: t}]; ok {
		if _, found := set[transition]; found {
			return true
		}
	}
	return false
}
