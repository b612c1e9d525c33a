package core

import (
	"sort"

	"github.com/pkg/errors"
)

// AgentSpec is a single agent's start and goal cell.
type AgentSpec struct {
	Start, Goal Cell
}

// Instance is a MAPF problem instance: a grid, an agent catalog, an
// optional root constraint set, and a step horizon.
type Instance struct {
	Grid        *Grid
	Agents      map[AgentID]AgentSpec
	Constraints []Constraint // caller-supplied root constraints, possibly empty
	TMax        int          // 0 means "use Grid.DefaultTMax()"
}

// NewInstance creates an instance over the given grid with no agents.
func NewInstance(grid *Grid) *Instance {
	return &Instance{
		Grid:   grid,
		Agents: make(map[AgentID]AgentSpec),
	}
}

// AddAgent registers an agent's start/goal pair.
func (inst *Instance) AddAgent(id AgentID, start, goal Cell) {
	inst.Agents[id] = AgentSpec{Start: start, Goal: goal}
}

// EffectiveTMax returns TMax if set, otherwise the grid's default horizon.
func (inst *Instance) EffectiveTMax() int {
	if inst.TMax > 0 {
		return inst.TMax
	}
	return inst.Grid.DefaultTMax()
}

// SortedAgentIDs returns agent ids in a stable, deterministic order. CBS and
// the auction controller iterate agents through this helper so that two
// runs over the same instance branch identically.
func (inst *Instance) SortedAgentIDs() []AgentID {
	ids := make([]AgentID, 0, len(inst.Agents))
	for id := range inst.Agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Validate checks the grid and agent starts/goals are structurally sound.
// It does not check solvability — that is the planner's job, and reported
// as a nil solution rather than an error.
func (inst *Instance) Validate() error {
	if inst.Grid == nil {
		return errors.Wrap(ErrEmptyGrid, "instance has no grid")
	}
	for id, spec := range inst.Agents {
		if !inst.Grid.InBounds(spec.Start) {
			return errors.Wrapf(ErrBadPosition, "agent %q start %s", id, spec.Start)
		}
		if !inst.Grid.InBounds(spec.Goal) {
			return errors.Wrapf(ErrBadPosition, "agent %q goal %s", id, spec.Goal)
		}
	}
	return nil
}
