package algo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

func mustOpenGrid(t *testing.T, width, height int) *core.Grid {
	t.Helper()
	grid, err := core.NewOpenGrid(width, height)
	require.NoError(t, err)
	return grid
}

func TestSpaceTimeAStarFindsShortestPath(t *testing.T) {
	grid := mustOpenGrid(t, 5, 5)
	path := SpaceTimeAStar(grid, "a1", core.Cell{X: 0, Y: 0}, core.Cell{X: 4, Y: 4}, nil, grid.DefaultTMax(), DefaultAStarOptions())
	require.NotNil(t, path)
	require.Equal(t, core.Cell{X: 0, Y: 0}, path[0])
	require.Equal(t, core.Cell{X: 4, Y: 4}, path[path.ArrivalTime()])
	require.Equal(t, 8, path.ArrivalTime(), "Manhattan-optimal path on an open grid")
}

func TestSpaceTimeAStarNoPathThroughObstacles(t *testing.T) {
	grid := mustOpenGrid(t, 3, 3)
	// Wall off column x=1 entirely.
	for y := 0; y < 3; y++ {
		require.NoError(t, grid.SetObstacle(core.Cell{X: 1, Y: y}))
	}
	path := SpaceTimeAStar(grid, "a1", core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 0}, nil, grid.DefaultTMax(), DefaultAStarOptions())
	require.Nil(t, path)
}

func TestSpaceTimeAStarRespectsVertexConstraint(t *testing.T) {
	grid := mustOpenGrid(t, 3, 1)
	constraints := []core.Constraint{
		{Agent: "a1", Time: 1, Kind: core.VertexConstraint, Pos: core.Cell{X: 1, Y: 0}},
	}
	path := SpaceTimeAStar(grid, "a1", core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 0}, constraints, grid.DefaultTMax(), DefaultAStarOptions())
	require.NotNil(t, path)
	for t_, c := range path {
		if t_ == 1 {
			require.NotEqual(t, core.Cell{X: 1, Y: 0}, c, "agent must not occupy the forbidden cell at the forbidden time")
		}
	}
}

func TestSpaceTimeAStarRespectsEdgeConstraint(t *testing.T) {
	grid := mustOpenGrid(t, 2, 1)
	constraints := []core.Constraint{
		{Agent: "a1", Time: 1, Kind: core.EdgeConstraint, From: core.Cell{X: 0, Y: 0}, To: core.Cell{X: 1, Y: 0}},
	}
	path := SpaceTimeAStar(grid, "a1", core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 0}, constraints, 10, DefaultAStarOptions())
	require.NotNil(t, path)
	require.NotEqual(t, core.Cell{X: 1, Y: 0}, path[1], "direct transition is forbidden, so arrival must be delayed")
}

func TestSpaceTimeAStarGoalUnreachableUnderGlobalFutureConstraint(t *testing.T) {
	grid := mustOpenGrid(t, 2, 1)
	goal := core.Cell{X: 1, Y: 0}
	tMax := 5
	var constraints []core.Constraint
	for t := 0; t <= tMax; t++ {
		constraints = append(constraints, core.Constraint{Agent: core.GlobalAgent, Time: t, Kind: core.VertexConstraint, Pos: goal})
	}
	path := SpaceTimeAStar(grid, "a1", core.Cell{X: 0, Y: 0}, goal, constraints, tMax, DefaultAStarOptions())
	require.Nil(t, path, "goal forbidden at every time up to tMax must leave no path")
}

func TestSpaceTimeAStarStartNotTraversable(t *testing.T) {
	grid := mustOpenGrid(t, 2, 2)
	require.NoError(t, grid.SetObstacle(core.Cell{X: 0, Y: 0}))
	path := SpaceTimeAStar(grid, "a1", core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 1}, nil, grid.DefaultTMax(), DefaultAStarOptions())
	require.Nil(t, path)
}
