package games

// Frame is a rendered grayscale pixel buffer in row-major order.
type Frame struct {
	Pixels []float64
	Rows   int
	Cols   int
}

func (f Frame) At(row, col int) float64 {
	return f.Pixels[row*f.Cols+col]
}

func (f Frame) set(row, col int, color float64) {
	f.Pixels[row*f.Cols+col] = color
}

// RenderFrame rasterizes the register onto a pixel buffer for the given
// step index. Each grid unit becomes a density x density block colored by
// the highest priority visible object on it. With egocentric on, the
// canvas doubles in each axis and the player's cell lands in the center
// so no information is lost at the boundary.
func (g *Grid) RenderFrame(reg *Register, step int, egocentric bool) Frame {
	unitRows, unitCols := g.rows, g.cols
	offRow, offCol := 0, 0
	if egocentric {
		unitRows, unitCols = 2*g.rows, 2*g.cols
		if p := reg.Player(); p != nil {
			offRow = g.rows - p.Coord.Row
			offCol = g.cols - p.Coord.Col
		}
	}
	d := g.density
	frame := Frame{
		Pixels: make([]float64, unitRows*d*unitCols*d),
		Rows:   unitRows * d,
		Cols:   unitCols * d,
	}

	if g.divided {
		row := g.DividerRow()
		for col := 0; col < g.cols; col++ {
			drawUnit(frame, row+offRow, col+offCol, d, DividerColor)
		}
	}

	// One pass per cell: highest render priority among visible occupants.
	top := make(map[Coord]*Object)
	for _, obj := range reg.objects {
		if !obj.VisibleAt(step) {
			continue
		}
		cur, ok := top[obj.Coord]
		if !ok || obj.Type.renderPriority() > cur.Type.renderPriority() {
			top[obj.Coord] = obj
		}
	}
	for c, obj := range top {
		drawUnit(frame, c.Row+offRow, c.Col+offCol, d, obj.Type.Color())
	}
	return frame
}

// drawUnit fills the pixel block of one grid unit. Densities above one
// leave a single blank pixel at the lower and right edges of the block so
// neighboring objects stay visually separate.
func drawUnit(f Frame, unitRow, unitCol, density int, color float64) {
	fill := density
	if density > 1 {
		fill = density - 1
	}
	baseRow := unitRow * density
	baseCol := unitCol * density
	for r := 0; r < fill; r++ {
		for c := 0; c < fill; c++ {
			f.set(baseRow+r, baseCol+c, color)
		}
	}
}
