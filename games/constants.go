package games

// Action is one discrete control input per step.
type Action int

const (
	Stay Action = iota
	Up
	Right
	Down
	Left
	Grab
)

var actionNames = map[Action]string{
	Stay:  "stay",
	Up:    "up",
	Right: "right",
	Down:  "down",
	Left:  "left",
	Grab:  "grab",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Hash makes Action usable as a core.Action.
func (a Action) Hash() string {
	return a.String()
}

// AllActions returns every valid action in a fixed order.
func AllActions() []Action {
	return []Action{Stay, Up, Right, Down, Left, Grab}
}

// ObjType tags every object on the grid.
type ObjType int

const (
	Player ObjType = iota
	Button
	Item
	Targ
	Pile
)

func (t ObjType) String() string {
	switch t {
	case Player:
		return "player"
	case Button:
		return "button"
	case Item:
		return "item"
	case Targ:
		return "targ"
	case Pile:
		return "pile"
	}
	return "unknown"
}

// Grayscale values drawn to the pixel buffer per object type.
const (
	DefaultColor = float64(0)
	PlayerColor  = float64(1)
	ButtonColor  = float64(0.9)
	ItemColor    = float64(0.7)
	TargColor    = float64(0.5)
	PileColor    = float64(0.3)
	DividerColor = float64(0.15)
)

func (t ObjType) Color() float64 {
	switch t {
	case Player:
		return PlayerColor
	case Button:
		return ButtonColor
	case Item:
		return ItemColor
	case Targ:
		return TargColor
	case Pile:
		return PileColor
	}
	return DefaultColor
}

// renderPriority orders object types when several share a cell. Higher wins.
func (t ObjType) renderPriority() int {
	switch t {
	case Player:
		return 5
	case Button:
		return 4
	case Item:
		return 3
	case Targ:
		return 2
	case Pile:
		return 1
	}
	return 0
}

// DisplayCount is the number of steps targets stay visible in the brief
// presentation game, counted from the reset observation.
const DisplayCount = 5

// Event reports what a grab action resolved to.
type Event int

const (
	EventStep Event = iota
	EventButton
)
