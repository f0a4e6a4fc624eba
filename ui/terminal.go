package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"snake-engine/game/types"
)

var (
	styleDefault = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleChain   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleTail    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleApple   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// Terminal draws snapshots with tcell. Every room cell takes two columns so
// the map looks square.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
}

// NewTerminal takes over the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen uses an initialised screen, such as a simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	return &Terminal{screen: screen}
}

// Events starts polling input and returns the channel it feeds.
func (t *Terminal) Events() <-chan tcell.Event {
	if t.events == nil {
		t.events = make(chan tcell.Event, 100)
		go func() {
			for {
				ev := t.screen.PollEvent()
				if ev == nil {
					close(t.events)
					return
				}
				t.events <- ev
			}
		}()
	}
	return t.events
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

// Draw renders the header on row 0 and the map below it, top row first.
func (t *Terminal) Draw(snap Snapshot, panel Panel) {
	t.screen.Clear()

	header := fmt.Sprintf("Time %s  Points %d  Level %d", snap.Time, snap.Points, snap.Level)
	t.text(0, 0, header, styleDefault)

	m := snap.Map
	const top = 1
	for row, cells := range m.Rows() {
		for x, cell := range cells {
			r, style := cellRune(cell, snap.Heading)
			second := ' '
			if cell == Wall {
				second = r
			}
			t.screen.SetContent(x*2, top+row, r, nil, style)
			t.screen.SetContent(x*2+1, top+row, second, nil, style)
		}
	}

	if snap.Message != "" {
		msg := " " + snap.Message + " "
		x := max((m.Width()*2-len(msg))/2, 0)
		t.text(x, top+m.Height()/2, msg, styleMessage)
	}

	panelX := m.Width()*2 + 2
	for i, line := range panel.Lines {
		t.text(panelX, top+i, line, styleDefault)
	}

	t.screen.Show()
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func cellRune(c CellType, heading types.Direction) (rune, tcell.Style) {
	switch c {
	case Wall:
		return '█', styleWall
	case SnakeHead:
		switch heading {
		case types.Right:
			return '>', styleHead
		case types.Down:
			return 'v', styleHead
		case types.Left:
			return '<', styleHead
		default:
			return '^', styleHead
		}
	case SnakeChain:
		return 'o', styleChain
	case SnakeTail:
		return '.', styleTail
	case Apple:
		return '@', styleApple
	default:
		return ' ', styleDefault
	}
}

// TerminalCommand translates a tcell event. Resizes and other events map to CmdNone.
func TerminalCommand(ev tcell.Event) Command {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return CmdNone
	}
	return keyCommand(key.Key(), key.Rune())
}

func keyCommand(k tcell.Key, r rune) Command {
	switch k {
	case tcell.KeyUp:
		return CmdUp
	case tcell.KeyDown:
		return CmdDown
	case tcell.KeyLeft:
		return CmdLeft
	case tcell.KeyRight:
		return CmdRight
	case tcell.KeyEnter:
		return CmdRestart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyRune:
		return CommandForRune(r)
	default:
		return CmdNone
	}
}
