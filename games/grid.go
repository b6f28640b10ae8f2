package games

// Coord is a grid location in grid units, not pixels. Row 0 is the top of
// the grid, col 0 the left edge.
type Coord struct {
	Row int
	Col int
}

// Grid owns the unit dimensions of the arena and the pixel density used to
// rasterize it. It does not hold object state; see Register.
type Grid struct {
	rows    int
	cols    int
	density int
	divided bool
}

func NewGrid(rows, cols, density int, divided bool) *Grid {
	return &Grid{
		rows:    rows,
		cols:    cols,
		density: density,
		divided: divided,
	}
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) Density() int {
	return g.density
}

func (g *Grid) Divided() bool {
	return g.divided
}

// DividerRow is the row the horizontal divider is drawn across when the
// grid is divided. Rounded up after halving, as in the original task.
func (g *Grid) DividerRow() int {
	return (g.rows + 1) / 2
}

func (g *Grid) RowInBounds(row int) bool {
	return row >= 0 && row < g.rows
}

func (g *Grid) ColInBounds(col int) bool {
	return col >= 0 && col < g.cols
}

func (g *Grid) InBounds(c Coord) bool {
	return g.RowInBounds(c.Row) && g.ColInBounds(c.Col)
}

// Clamp snaps a coordinate back inside the arena. Movement that would leave
// the grid resolves to staying at the boundary.
func (g *Grid) Clamp(c Coord) Coord {
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Row >= g.rows {
		c.Row = g.rows - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if c.Col >= g.cols {
		c.Col = g.cols - 1
	}
	return c
}
