package core

import "github.com/pkg/errors"

// Grid is a static, immutable W×H occupancy view. Only Open cells are
// traversable by the planner; StaticObstacle cells block every timestep.
//
// A Grid is constructed once and never mutated for the duration of a
// planning session (§3 of the spec) — the deep-copy-per-timestep model of
// the source airspace container is deliberately not reproduced here.
type Grid struct {
	width, height int
	cells         [][]CellKind // cells[y][x]
}

// NewGrid builds a Grid from a rectangular row-major slice of cell kinds,
// cells[y][x]. It returns ErrEmptyGrid if there are no rows or no columns,
// and ErrRaggedGrid if rows differ in length.
func NewGrid(cells [][]CellKind) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	height := len(cells)
	width := len(cells[0])
	cp := make([][]CellKind, height)
	for y, row := range cells {
		if len(row) != width {
			return nil, errors.Wrapf(ErrRaggedGrid, "row %d has length %d, want %d", y, len(row), width)
		}
		cp[y] = append([]CellKind(nil), row...)
	}
	return &Grid{width: width, height: height, cells: cp}, nil
}

// NewOpenGrid builds a W×H grid with every cell Open.
func NewOpenGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	cells := make([][]CellKind, height)
	for y := range cells {
		cells[y] = make([]CellKind, width)
	}
	return NewGrid(cells)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether a cell lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Kind returns the cell kind at c, or StaticObstacle if out of bounds.
func (g *Grid) Kind(c Cell) CellKind {
	if !g.InBounds(c) {
		return StaticObstacle
	}
	return g.cells[c.Y][c.X]
}

// IsTraversable reports whether a cell is in-bounds and Open.
func (g *Grid) IsTraversable(c Cell) bool {
	return g.InBounds(c) && g.cells[c.Y][c.X] == Open
}

// SetObstacle marks a cell as a static obstacle. It returns ErrBadPosition
// if the cell is out of bounds. This exists for test and scenario setup;
// it is not invoked during planning.
func (g *Grid) SetObstacle(c Cell) error {
	if !g.InBounds(c) {
		return errors.Wrapf(ErrBadPosition, "cell %s", c)
	}
	g.cells[c.Y][c.X] = StaticObstacle
	return nil
}

// Neighbors4 returns the in-bounds 4-connected neighbors of c (wait is not
// included; callers add the wait-in-place transition themselves).
func (g *Grid) Neighbors4(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range neighborOffsets {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// DefaultTMax returns the spec's default step horizon, rows×cols×2.
func (g *Grid) DefaultTMax() int {
	return g.width * g.height * 2
}
