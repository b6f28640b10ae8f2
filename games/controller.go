package games

import "math/rand"

// Controller is one game strategy: it generates the initial layout,
// schedules any time-indexed visibility, and grades the episode when the
// end button is pressed.
type Controller interface {
	Name() string

	// Init populates the register for a fresh episode of n targets.
	Init(reg *Register, nTargs int, rng *rand.Rand) error

	// Animating reports whether the step index falls inside an intro
	// animation during which grabs are suppressed.
	Animating(step int) bool

	// Success is the harsh terminal predicate.
	Success(reg *Register) bool

	// Reward grades the terminal state. With harsh true the result is
	// +1 or -1 from Success; otherwise a partial score.
	Reward(reg *Register, harsh bool) float64
}

// rowsOf counts items per row.
func rowsOf(objs []*Object) map[int]int {
	out := make(map[int]int)
	for _, o := range objs {
		out[o.Coord.Row]++
	}
	return out
}

// colsOf counts items per column.
func colsOf(objs []*Object) map[int]int {
	out := make(map[int]int)
	for _, o := range objs {
		out[o.Coord.Col]++
	}
	return out
}

// singleRow is true when every object shares one row. An empty set counts
// as aligned.
func singleRow(objs []*Object) bool {
	return len(rowsOf(objs)) <= 1
}

// maxRowCount is the largest number of objects sharing a single row.
func maxRowCount(objs []*Object) int {
	max := 0
	for _, n := range rowsOf(objs) {
		if n > max {
			max = n
		}
	}
	return max
}

// alignedWithTargs counts the items that share a column with some target.
func alignedWithTargs(items, targs []*Object) int {
	targCols := colsOf(targs)
	n := 0
	for _, it := range items {
		if targCols[it.Coord.Col] > 0 {
			n++
		}
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func boolReward(ok bool) float64 {
	if ok {
		return 1
	}
	return -1
}
