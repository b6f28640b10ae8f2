package games

// VisibleAlways marks an object with no expiry on its visibility window.
const VisibleAlways = -1

// Object is a single entity on the grid. Visibility is a step-indexed
// window so that flashing and hidden-then-revealed schedules stay explicit
// rather than living in ad hoc counters.
type Object struct {
	ID    int
	Type  ObjType
	Coord Coord

	// VisibleFrom and VisibleUntil bound the rendering window in step
	// indexes, both inclusive. VisibleUntil == VisibleAlways means the
	// window never closes.
	VisibleFrom  int
	VisibleUntil int
}

// VisibleAt reports whether the object renders on the frame for the given
// step index.
func (o *Object) VisibleAt(step int) bool {
	if step < o.VisibleFrom {
		return false
	}
	return o.VisibleUntil == VisibleAlways || step <= o.VisibleUntil
}
