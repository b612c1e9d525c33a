package algo

import (
	"sort"

	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

// ConflictKind distinguishes a same-cell collision from a swap.
type ConflictKind int

const (
	// VertexConflict: both agents occupy the same cell at the same time.
	VertexConflict ConflictKind = iota
	// EdgeConflict: the two agents swap cells between t-1 and t.
	EdgeConflict
)

// Conflict is a discovered (not stored) violation between two agents' paths.
type Conflict struct {
	Agent1, Agent2 core.AgentID
	Time           int
	Kind           ConflictKind

	Pos core.Cell // meaningful when Kind == VertexConflict

	// For edge conflicts: the transition each agent takes, arriving at Time.
	// Agent1 goes From->To; Agent2 goes To->From (they swap).
	From, To core.Cell
}

// DefaultLandingHold is the number of extra steps an arrived agent is
// considered to still occupy its goal cell.
const DefaultLandingHold = 2

// positionAt returns the agent's cell at time t given landing hold, and
// whether the agent is present on the grid at all at that time. An agent is
// present for t in [0, len(path)) while moving, and for
// [len(path), len(path)+landingHold) while holding its goal after arrival;
// beyond that it is considered to have left the airspace.
func positionAt(path core.Path, t, landingHold int) (core.Cell, bool) {
	n := path.Len()
	if t < n {
		return path[t], true
	}
	if t < n+landingHold {
		return path[n-1], true
	}
	return core.Cell{}, false
}

// FindAllConflicts enumerates every vertex and edge conflict among paths,
// accounting for landing hold, ordered by time then by agent id.
func FindAllConflicts(paths map[core.AgentID]core.Path, landingHold int) []Conflict {
	if len(paths) == 0 {
		return nil
	}

	agents := sortedAgentIDs(paths)
	horizon := conflictHorizon(paths, landingHold)

	var conflicts []Conflict

	// Vertex scan.
	for t := 0; t < horizon; t++ {
		occupants := make(map[core.Cell][]core.AgentID)
		for _, a := range agents {
			if pos, ok := positionAt(paths[a], t, landingHold); ok {
				occupants[pos] = append(occupants[pos], a)
			}
		}
		// Iterate cells in an order derived from the stable agent order so
		// emission is deterministic without needing Cell to be sortable.
		for _, a := range agents {
			pos, ok := positionAt(paths[a], t, landingHold)
			if !ok {
				continue
			}
			here := occupants[pos]
			if len(here) < 2 || here[0] != a {
				continue // only emit once, keyed on the first occupant in agent order
			}
			for i := 0; i < len(here); i++ {
				for j := i + 1; j < len(here); j++ {
					conflicts = append(conflicts, Conflict{
						Agent1: here[i], Agent2: here[j], Time: t, Kind: VertexConflict, Pos: pos,
					})
				}
			}
		}
	}

	// Edge (swap) scan.
	for t := 1; t < horizon; t++ {
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				a1, a2 := agents[i], agents[j]
				pos1Prev, ok1p := positionAt(paths[a1], t-1, landingHold)
				pos1, ok1 := positionAt(paths[a1], t, landingHold)
				pos2Prev, ok2p := positionAt(paths[a2], t-1, landingHold)
				pos2, ok2 := positionAt(paths[a2], t, landingHold)
				if !ok1p || !ok1 || !ok2p || !ok2 {
					continue
				}
				if pos1Prev == pos2 && pos2Prev == pos1 && pos1Prev != pos1 {
					conflicts = append(conflicts, Conflict{
						Agent1: a1, Agent2: a2, Time: t, Kind: EdgeConflict,
						From: pos1Prev, To: pos1,
					})
				}
			}
		}
	}

	return conflicts
}

// FindFirstConflict returns the earliest-time conflict (as CBS requires),
// or nil if paths are conflict-free.
func FindFirstConflict(paths map[core.AgentID]core.Path, landingHold int) *Conflict {
	all := FindAllConflicts(paths, landingHold)
	if len(all) == 0 {
		return nil
	}
	best := all[0]
	for _, c := range all[1:] {
		if c.Time < best.Time {
			best = c
		}
	}
	return &best
}

func conflictHorizon(paths map[core.AgentID]core.Path, landingHold int) int {
	maxLen := 0
	for _, p := range paths {
		if p.Len() > maxLen {
			maxLen = p.Len()
		}
	}
	return maxLen + landingHold
}

func sortedAgentIDs(paths map[core.AgentID]core.Path) []core.AgentID {
	ids := make([]core.AgentID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
