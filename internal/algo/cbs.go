package algo

import (
	"container/heap"
	"context"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

// CBS implements Conflict-Based Search over grid agents with start/goal
// pairs. It is best-first by sum-of-costs and branches on the
// earliest-time conflict between two agents.
type CBS struct {
	LandingHold int
	Opts        CBSOptions
}

// NewCBS creates a CBS solver with the spec's default landing hold.
func NewCBS(opts CBSOptions) *CBS {
	return &CBS{LandingHold: DefaultLandingHold, Opts: opts}
}

func (c *CBS) astarOpts() AStarOptions {
	return AStarOptions{Logger: c.Opts.Logger}
}

// cbsNode is one node of the constraint tree.
type cbsNode struct {
	constraints []core.Constraint
	paths       map[core.AgentID]core.Path
	cost        int
	index       int
}

type cbsHeap []*cbsNode

func (h cbsHeap) Len() int           { return len(h) }
func (h cbsHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h cbsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *cbsHeap) Push(x any) {
	n := x.(*cbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve runs CBS over inst, seeded with inst.Constraints as the root
// constraint set, and returns a conflict-free *core.Solution, or nil if the
// instance is infeasible.
func (c *CBS) Solve(ctx context.Context, inst *core.Instance) *core.Solution {
	return c.SolveWithConstraints(ctx, inst, inst.Constraints)
}

// SolveWithConstraints runs CBS with an explicit root constraint set,
// ignoring inst.Constraints. The auction controller uses this to layer its
// own global vertex constraints on top of a fresh root.
//
// ctx is checked once per popped node, never inside A*'s inner loop; a
// cancelled or expired ctx makes CBS stop and return nil, the same
// value-typed outcome as a genuinely infeasible instance — there is no
// separate cancellation error, per the planner's concurrency model.
func (c *CBS) SolveWithConstraints(ctx context.Context, inst *core.Instance, rootConstraints []core.Constraint) *core.Solution {
	log := c.Opts.logger()
	tMax := inst.EffectiveTMax()
	agentIDs := inst.SortedAgentIDs()

	root := &cbsNode{constraints: append([]core.Constraint(nil), rootConstraints...)}
	if !c.planAll(inst, agentIDs, tMax, root) {
		log.Debug("cbs root infeasible")
		return nil
	}

	open := &cbsHeap{}
	heap.Init(open)
	heap.Push(open, root)

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			log.Debug("cbs cancelled", zap.Error(err))
			return nil
		}

		node := heap.Pop(open).(*cbsNode)

		conflict := FindFirstConflict(node.paths, c.LandingHold)
		if conflict == nil {
			log.Debug("cbs solution found", zap.Int("cost", node.cost))
			sol := core.NewSolution()
			sol.Paths = node.paths
			sol.Cost = node.cost
			return sol
		}

		log.Debug("cbs branching", zap.Int("time", conflict.Time), zap.Int("kind", int(conflict.Kind)))

		for _, child := range c.branch(inst, tMax, node, *conflict) {
			heap.Push(open, child)
		}
	}

	log.Debug("cbs open set exhausted")
	return nil
}

// branch produces the (up to two) children for a conflict, replanning only
// the constrained agent in each. A child whose replan fails is pruned.
func (c *CBS) branch(inst *core.Instance, tMax int, node *cbsNode, conflict Conflict) []*cbsNode {
	var additions []core.Constraint
	switch conflict.Kind {
	case VertexConflict:
		additions = []core.Constraint{
			{Agent: conflict.Agent1, Time: conflict.Time, Kind: core.VertexConstraint, Pos: conflict.Pos},
			{Agent: conflict.Agent2, Time: conflict.Time, Kind: core.VertexConstraint, Pos: conflict.Pos},
		}
	case EdgeConflict:
		// Agent1 took From->To; Agent2 took To->From (the swap). Each
		// child forbids only the corresponding agent's own transition —
		// intentionally asymmetric, per the spec's open question.
		additions = []core.Constraint{
			{Agent: conflict.Agent1, Time: conflict.Time, Kind: core.EdgeConstraint, From: conflict.From, To: conflict.To},
			{Agent: conflict.Agent2, Time: conflict.Time, Kind: core.EdgeConstraint, From: conflict.To, To: conflict.From},
		}
	}

	children := make([]*cbsNode, 0, len(additions))
	for _, add := range additions {
		child := &cbsNode{
			constraints: append(append([]core.Constraint(nil), node.constraints...), add),
			paths:       copyPaths(node.paths),
		}
		spec := inst.Agents[add.Agent]
		newPath := SpaceTimeAStar(inst.Grid, add.Agent, spec.Start, spec.Goal, child.constraints, tMax, c.astarOpts())
		if newPath == nil {
			continue // pruned
		}
		child.cost = node.cost - node.paths[add.Agent].Len() + newPath.Len()
		child.paths[add.Agent] = newPath
		children = append(children, child)
	}
	return children
}

// planAll computes an initial path for every agent against the node's
// constraint set, populating node.paths and node.cost. Returns false if any
// agent has no path.
func (c *CBS) planAll(inst *core.Instance, agentIDs []core.AgentID, tMax int, node *cbsNode) bool {
	node.paths = make(map[core.AgentID]core.Path, len(agentIDs))
	cost := 0
	for _, id := range agentIDs {
		spec := inst.Agents[id]
		path := SpaceTimeAStar(inst.Grid, id, spec.Start, spec.Goal, node.constraints, tMax, c.astarOpts())
		if path == nil {
			return false
		}
		node.paths[id] = path
		cost += path.Len()
	}
	node.cost = cost
	return true
}

func copyPaths(paths map[core.AgentID]core.Path) map[core.AgentID]core.Path {
	out := make(map[core.AgentID]core.Path, len(paths))
	for k, v := range paths {
		out[k] = v
	}
	return out
}
