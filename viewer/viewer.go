package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/grantsrb/gordongames/games"
)

// Command is a decoded keyboard input from the play loop.
type Command int

const (
	CommandNone Command = iota
	CommandAction
	CommandReset
	CommandQuit
)

// Viewer draws rendered frames to the terminal and decodes keyboard input
// into game actions. It is the display sink for the pixel buffers the
// environments produce.
type Viewer struct {
	screen tcell.Screen
}

func New() (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()
	return &Viewer{screen: screen}, nil
}

func (v *Viewer) Close() {
	v.screen.Fini()
}

// Draw paints the frame with one terminal cell per pixel, grayscale values
// mapped onto the background color. A status line is drawn below the frame.
func (v *Viewer) Draw(frame games.Frame, status string) {
	v.screen.Clear()
	for row := 0; row < frame.Rows; row++ {
		for col := 0; col < frame.Cols; col++ {
			val := frame.At(row, col)
			intensity := int32(val * 255)
			if intensity < 0 {
				intensity = 0
			}
			if intensity > 255 {
				intensity = 255
			}
			color := tcell.NewRGBColor(intensity, intensity, intensity)
			style := tcell.StyleDefault.Background(color)
			// Two columns per pixel keeps the aspect ratio near square.
			v.screen.SetContent(col*2, row, ' ', nil, style)
			v.screen.SetContent(col*2+1, row, ' ', nil, style)
		}
	}
	v.drawStatus(frame.Rows+1, status)
	v.screen.Show()
}

func (v *Viewer) drawStatus(row int, status string) {
	msg := fmt.Sprintf("%s  [arrows/hjkl move, g grab, s stay, r reset, q quit]", status)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range msg {
		v.screen.SetContent(i, row, r, nil, style)
	}
}

// Poll blocks until the next keyboard input and decodes it. The returned
// action is only meaningful when the command is CommandAction.
func (v *Viewer) Poll() (Command, games.Action) {
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return CommandQuit, games.Stay
			case tcell.KeyUp:
				return CommandAction, games.Up
			case tcell.KeyDown:
				return CommandAction, games.Down
			case tcell.KeyLeft:
				return CommandAction, games.Left
			case tcell.KeyRight:
				return CommandAction, games.Right
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return CommandQuit, games.Stay
				case 'r':
					return CommandReset, games.Stay
				case 'k':
					return CommandAction, games.Up
				case 'j':
					return CommandAction, games.Down
				case 'h':
					return CommandAction, games.Left
				case 'l':
					return CommandAction, games.Right
				case 'g':
					return CommandAction, games.Grab
				case 's', ' ':
					return CommandAction, games.Stay
				}
			}
		}
	}
}
