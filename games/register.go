package games

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var (
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrSecondPlayer = errors.New("a player already exists")
)

// Register creates, tracks and destroys objects and applies the agent's
// actions against them. The coordinate index and the object table are kept
// consistent with every mutation.
type Register struct {
	grid    *Grid
	nextID  int
	objects map[int]*Object
	byCoord map[Coord]map[int]*Object

	player *Object
	pile   *Object
	button *Object

	carried *Object

	// pileGrabs counts every item spawned from the pile. Items later
	// destroyed still count, which is what the counting games grade on.
	pileGrabs int

	// autoPlace makes pile grabs drop the new item into a tidy row beside
	// the pile instead of into the player's hands.
	autoPlace bool

	buttonPressed bool
}

func NewRegister(grid *Grid) *Register {
	return &Register{
		grid:    grid,
		objects: make(map[int]*Object),
		byCoord: make(map[Coord]map[int]*Object),
	}
}

func (r *Register) Grid() *Grid {
	return r.grid
}

// Place creates a new object of the given type at the coordinate and
// registers it. Placing a second player or placing out of bounds is a
// contract violation by the caller.
func (r *Register) Place(typ ObjType, c Coord) (*Object, error) {
	if !r.grid.InBounds(c) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}
	if typ == Player && r.player != nil {
		return nil, ErrSecondPlayer
	}
	obj := &Object{
		ID:           r.nextID,
		Type:         typ,
		Coord:        c,
		VisibleFrom:  0,
		VisibleUntil: VisibleAlways,
	}
	r.nextID++
	r.objects[obj.ID] = obj
	r.index(obj)
	switch typ {
	case Player:
		r.player = obj
	case Pile:
		r.pile = obj
	case Button:
		r.button = obj
	}
	return obj, nil
}

// Destroy removes the object from the registry and the coordinate index.
func (r *Register) Destroy(obj *Object) {
	r.unindex(obj)
	delete(r.objects, obj.ID)
	if r.carried == obj {
		r.carried = nil
	}
}

// MoveTo relocates the object, clamping the destination to the grid.
func (r *Register) MoveTo(obj *Object, c Coord) {
	c = r.grid.Clamp(c)
	r.unindex(obj)
	obj.Coord = c
	r.index(obj)
}

func (r *Register) index(obj *Object) {
	cell, ok := r.byCoord[obj.Coord]
	if !ok {
		cell = make(map[int]*Object)
		r.byCoord[obj.Coord] = cell
	}
	cell[obj.ID] = obj
}

func (r *Register) unindex(obj *Object) {
	cell, ok := r.byCoord[obj.Coord]
	if !ok {
		return
	}
	delete(cell, obj.ID)
	if len(cell) == 0 {
		delete(r.byCoord, obj.Coord)
	}
}

// At returns all objects located at the coordinate, sorted by id so that
// callers see a deterministic order.
func (r *Register) At(c Coord) []*Object {
	cell := r.byCoord[c]
	out := make([]*Object, 0, len(cell))
	for _, o := range cell {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OfType returns all objects with the given type tag, sorted by id.
func (r *Register) OfType(typ ObjType) []*Object {
	out := make([]*Object, 0)
	for _, o := range r.objects {
		if o.Type == typ {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Register) Get(id int) (*Object, bool) {
	o, ok := r.objects[id]
	return o, ok
}

func (r *Register) Items() []*Object {
	return r.OfType(Item)
}

func (r *Register) Targs() []*Object {
	return r.OfType(Targ)
}

func (r *Register) Player() *Object {
	return r.player
}

func (r *Register) Pile() *Object {
	return r.pile
}

func (r *Register) Button() *Object {
	return r.button
}

func (r *Register) Carrying() *Object {
	return r.carried
}

func (r *Register) NumItems() int {
	return len(r.Items())
}

func (r *Register) PileGrabs() int {
	return r.pileGrabs
}

func (r *Register) ButtonPressed() bool {
	return r.buttonPressed
}

// SetAutoPlace toggles the counting-game behavior where pile grabs line
// items up next to the pile instead of carrying them.
func (r *Register) SetAutoPlace(on bool) {
	r.autoPlace = on
}

// ApplyAction mutates the register according to one discrete action.
// Movement is clamped at the arena edges and drags any carried item along.
// Grabs resolve against co-located objects with priority
// button > item > pile; a grab while carrying releases the item instead.
func (r *Register) ApplyAction(a Action, allowGrab bool) Event {
	switch a {
	case Stay:
		return EventStep
	case Up, Right, Down, Left:
		r.movePlayer(a)
		return EventStep
	case Grab:
		if !allowGrab {
			return EventStep
		}
		return r.applyGrab()
	}
	return EventStep
}

func (r *Register) movePlayer(a Action) {
	c := r.player.Coord
	switch a {
	case Up:
		c.Row--
	case Down:
		c.Row++
	case Left:
		c.Col--
	case Right:
		c.Col++
	}
	r.MoveTo(r.player, c)
	if r.carried != nil {
		r.MoveTo(r.carried, r.player.Coord)
	}
}

func (r *Register) applyGrab() Event {
	var item, pile, button *Object
	for _, o := range r.At(r.player.Coord) {
		if o == r.player || o == r.carried {
			continue
		}
		switch o.Type {
		case Button:
			button = o
		case Item:
			if item == nil {
				item = o
			}
		case Pile:
			pile = o
		}
	}

	// Pressing the button always wins so the final step cannot spawn a
	// stray item.
	if button != nil {
		r.buttonPressed = true
		return EventButton
	}
	if r.carried != nil {
		// Releasing over the pile returns the item to the pile.
		if pile != nil {
			r.Destroy(r.carried)
		}
		r.carried = nil
		return EventStep
	}
	if item != nil {
		r.carried = item
		return EventStep
	}
	if pile != nil {
		r.spawnFromPile()
		return EventStep
	}
	return EventStep
}

func (r *Register) spawnFromPile() {
	if r.autoPlace {
		c := r.grid.Clamp(Coord{Row: r.pile.Coord.Row + 1, Col: r.pileGrabs + 1})
		if _, err := r.Place(Item, c); err == nil {
			r.pileGrabs++
		}
		return
	}
	obj, err := r.Place(Item, r.player.Coord)
	if err != nil {
		return
	}
	r.carried = obj
	r.pileGrabs++
}

// Fixture coordinates shared by every game: the pile sits in the top left
// corner, the end button in the top right, and the player starts top middle.
func (r *Register) pileCoord() Coord {
	return Coord{Row: 0, Col: 0}
}

func (r *Register) buttonCoord() Coord {
	return Coord{Row: 0, Col: r.grid.Cols() - 1}
}

func (r *Register) playerCoord() Coord {
	return Coord{Row: 0, Col: r.grid.Cols() / 2}
}

// LayoutFixtures places the player, pile and end button at their fixed
// starting cells.
func (r *Register) LayoutFixtures() error {
	if _, err := r.Place(Player, r.playerCoord()); err != nil {
		return err
	}
	if _, err := r.Place(Pile, r.pileCoord()); err != nil {
		return err
	}
	if _, err := r.Place(Button, r.buttonCoord()); err != nil {
		return err
	}
	return nil
}

// targRow is the row targets occupy in the line matching games.
func (r *Register) targRow() int {
	return r.grid.Rows() / 2
}

// EvenLineMatch lays n targets along a single row at evenly spaced fixed
// columns.
func (r *Register) EvenLineMatch(n int) error {
	row := r.targRow()
	for i := 0; i < n; i++ {
		col := (i + 1) * r.grid.Cols() / (n + 1)
		if _, err := r.Place(Targ, Coord{Row: row, Col: col}); err != nil {
			return err
		}
	}
	return nil
}

// UnevenLineMatch lays n targets along a single row at distinct random
// columns.
func (r *Register) UnevenLineMatch(n int, rng *rand.Rand) error {
	row := r.targRow()
	cols := rng.Perm(r.grid.Cols())[:n]
	sort.Ints(cols)
	for _, col := range cols {
		if _, err := r.Place(Targ, Coord{Row: row, Col: col}); err != nil {
			return err
		}
	}
	return nil
}

// ClusterMatch scatters n targets across distinct random cells, avoiding
// the fixture cells and the player's starting position.
func (r *Register) ClusterMatch(n int, rng *rand.Rand) error {
	used := make(map[Coord]bool)
	for placed := 0; placed < n; {
		c := Coord{
			// Row 0 belongs to the fixtures.
			Row: 1 + rng.Intn(r.grid.Rows()-1),
			Col: rng.Intn(r.grid.Cols()),
		}
		if used[c] {
			continue
		}
		used[c] = true
		if _, err := r.Place(Targ, c); err != nil {
			return err
		}
		placed++
	}
	return nil
}

// OrthogonalLineMatch lays n targets in a vertical line at a random column.
func (r *Register) OrthogonalLineMatch(n int, rng *rand.Rand) error {
	col := rng.Intn(r.grid.Cols())
	row0 := 1
	if r.grid.Rows()-n > 1 {
		row0 = 1 + rng.Intn(r.grid.Rows()-n)
	}
	for i := 0; i < n; i++ {
		if _, err := r.Place(Targ, Coord{Row: row0 + i, Col: col}); err != nil {
			return err
		}
	}
	return nil
}
