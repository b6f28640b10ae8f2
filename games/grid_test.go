package games

import "testing"

func TestGridClamp(t *testing.T) {
	g := NewGrid(5, 7, 1, false)
	tests := []struct {
		name string
		in   Coord
		want Coord
	}{
		{"Inside", Coord{Row: 2, Col: 3}, Coord{Row: 2, Col: 3}},
		{"Above top", Coord{Row: -1, Col: 3}, Coord{Row: 0, Col: 3}},
		{"Below bottom", Coord{Row: 5, Col: 3}, Coord{Row: 4, Col: 3}},
		{"Left of edge", Coord{Row: 2, Col: -4}, Coord{Row: 2, Col: 0}},
		{"Right of edge", Coord{Row: 2, Col: 7}, Coord{Row: 2, Col: 6}},
		{"Corner", Coord{Row: -2, Col: 10}, Coord{Row: 0, Col: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(3, 3, 1, false)
	if !g.InBounds(Coord{Row: 0, Col: 0}) {
		t.Error("expected origin in bounds")
	}
	if !g.InBounds(Coord{Row: 2, Col: 2}) {
		t.Error("expected far corner in bounds")
	}
	if g.InBounds(Coord{Row: 3, Col: 0}) {
		t.Error("expected row 3 out of bounds")
	}
	if g.InBounds(Coord{Row: 0, Col: -1}) {
		t.Error("expected col -1 out of bounds")
	}
}

func TestDividerRow(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{rows: 31, want: 16},
		{rows: 30, want: 15},
		{rows: 5, want: 3},
		{rows: 4, want: 2},
	}
	for _, tt := range tests {
		g := NewGrid(tt.rows, 5, 1, true)
		if got := g.DividerRow(); got != tt.want {
			t.Errorf("DividerRow with %d rows = %d, want %d", tt.rows, got, tt.want)
		}
	}
}
