package algo

import (
	"container/heap"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

// stState is a (cell, time) search state.
type stState struct {
	cell core.Cell
	t    int
}

// astarNode is a priority-queue entry. Parent chains are reconstructed by
// pointer rather than by an arena+index scheme (the spec's design notes
// name the arena approach as an option; a plain pointer chain is simpler
// here since the search tree is discarded once the path is read off).
type astarNode struct {
	state  stState
	g      int
	h      int
	parent *astarNode
	index  int // heap.Interface bookkeeping
}

func (n *astarNode) f() int { return n.g + n.h }

type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	fi, fj := h[i].f(), h[j].f()
	if fi != fj {
		return fi < fj
	}
	// Tie-break: smaller h (deeper / larger g).
	return h[i].h < h[j].h
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// SpaceTimeAStar finds a shortest path from start to goal for agentID,
// honoring constraints scoped to agentID or to core.GlobalAgent, over grid
// within [0, tMax] timesteps. It returns nil if no such path exists.
func SpaceTimeAStar(
	grid *core.Grid,
	agentID core.AgentID,
	start, goal core.Cell,
	constraints []core.Constraint,
	tMax int,
	opts AStarOptions,
) core.Path {
	if grid == nil || !grid.IsTraversable(start) {
		return nil
	}

	log := opts.logger()
	idx := buildConstraintIndex(agentID, constraints)

	heuristic := func(c core.Cell) int { return c.ManhattanDistance(goal) }

	open := &astarHeap{}
	heap.Init(open)
	heap.Push(open, &astarNode{state: stState{cell: start, t: 0}, g: 0, h: heuristic(start)})

	closed := make(map[stState]int) // best g seen so far

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)

		if best, seen := closed[current.state]; seen && best <= current.g {
			continue
		}
		closed[current.state] = current.g

		if current.state.cell == goal && !goalForbiddenLater(idx, agentID, current.state.t, tMax, goal) {
			log.Debug("astar goal accepted",
				zap.String("agent", string(agentID)), zap.Int("time", current.state.t), zap.Int("g", current.g))
			return reconstructPath(current)
		}

		nextT := current.state.t + 1
		if nextT > tMax {
			continue
		}

		// Wait-in-place.
		tryExpand(open, closed, idx, agentID, current, current.state.cell, nextT, heuristic)

		// Moves to 4-connected neighbors.
		for _, n := range grid.Neighbors4(current.state.cell) {
			if !grid.IsTraversable(n) {
				continue
			}
			tryExpand(open, closed, idx, agentID, current, n, nextT, heuristic)
		}
	}

	log.Debug("astar exhausted open set", zap.String("agent", string(agentID)))
	return nil
}

func tryExpand(
	open *astarHeap,
	closed map[stState]int,
	idx *constraintIndex,
	agentID core.AgentID,
	current *astarNode,
	next core.Cell,
	nextT int,
	heuristic func(core.Cell) int,
) {
	if idx.vertexForbidden(agentID, nextT, next) {
		return
	}
	if idx.edgeForbidden(agentID, nextT, current.state.cell, next) {
		return
	}
	state := stState{cell: next, t: nextT}
	g := current.g + 1
	if best, seen := closed[state]; seen && best <= g {
		return
	}
	heap.Push(open, &astarNode{state: state, g: g, h: heuristic(next), parent: current})
}

// goalForbiddenLater implements the goal-acceptance rule: a node at the
// goal is only accepted if no vertex constraint at any future time, scoped
// to agentID or global, forbids the goal cell.
func goalForbiddenLater(idx *constraintIndex, agentID core.AgentID, fromT, tMax int, goal core.Cell) bool {
	for t := fromT; t <= tMax; t++ {
		if idx.vertexForbidden(agentID, t, goal) {
			return true
		}
	}
	return false
}

func reconstructPath(node *astarNode) core.Path {
	length := node.state.t + 1
	path := make(core.Path, length)
	for n := node; n != nil; n = n.parent {
		path[n.state.t] = n.state.cell
	}
	return path
}
