package core

import "testing"

func TestCellManhattanDistance(t *testing.T) {
	cases := []struct {
		a, b Cell
		want int
	}{
		{Cell{0, 0}, Cell{0, 0}, 0},
		{Cell{0, 0}, Cell{3, 4}, 7},
		{Cell{3, 4}, Cell{0, 0}, 7},
		{Cell{-2, -2}, Cell{2, 2}, 8},
	}
	for _, tc := range cases {
		if got := tc.a.ManhattanDistance(tc.b); got != tc.want {
			t.Errorf("%v.ManhattanDistance(%v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCellString(t *testing.T) {
	if got, want := Cell{X: 2, Y: 5}.String(), "(2, 5)"; got != want {
		t.Errorf("Cell.String() = %q, want %q", got, want)
	}
}

func TestPathArrivalTime(t *testing.T) {
	p := Path{{0, 0}, {1, 0}, {2, 0}}
	if got, want := p.ArrivalTime(), 2; got != want {
		t.Errorf("ArrivalTime() = %d, want %d", got, want)
	}
}

func TestPathAt(t *testing.T) {
	p := Path{{0, 0}, {1, 0}}
	if c, ok := p.At(1); !ok || c != (Cell{1, 0}) {
		t.Errorf("At(1) = %v, %v, want {1 0}, true", c, ok)
	}
	if _, ok := p.At(2); ok {
		t.Errorf("At(2) should be out of range")
	}
	if _, ok := p.At(-1); ok {
		t.Errorf("At(-1) should be out of range")
	}
}
