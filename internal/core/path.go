package core

// AgentID identifies an agent. Its zero value is reserved as GlobalAgent, the
// constraint scope meaning "every agent"; caller-supplied agent ids must be
// non-empty so the two never collide.
type AgentID string

// Path is a finite ordered sequence of cells; Path[t] is the agent's cell at
// time t. Path[0] is always the agent's start.
type Path []Cell

// Len returns the number of timesteps in the path, including t=0.
func (p Path) Len() int { return len(p) }

// At returns the agent's cell at time t, and whether the path covers t at
// all (without landing-hold extension — see the conflict detector for that).
func (p Path) At(t int) (Cell, bool) {
	if t < 0 || t >= len(p) {
		return Cell{}, false
	}
	return p[t], true
}

// ArrivalTime returns the timestep at which the path reaches its final
// cell (its goal), i.e. len(p)-1.
func (p Path) ArrivalTime() int {
	return len(p) - 1
}
