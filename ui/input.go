package ui

// Command is a frontend-independent player action.
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdToggle
	CmdRestart
	CmdQuit
)

// Controller is the part of a game that player commands drive.
type Controller interface {
	MoveUp()
	MoveDown()
	MoveLeft()
	MoveRight()
	Play() error
	Pause() error
	Active() bool
	Paused() bool
	Finished() bool
}

// CommandForRune maps letter keys shared by both frontends.
func CommandForRune(r rune) Command {
	switch r {
	case 'w', 'W':
		return CmdUp
	case 's', 'S':
		return CmdDown
	case 'a', 'A':
		return CmdLeft
	case 'd', 'D':
		return CmdRight
	case ' ':
		return CmdToggle
	case 'q', 'Q':
		return CmdQuit
	case 'r', 'R':
		return CmdRestart
	default:
		return CmdNone
	}
}

// Dispatch applies a steering or play/pause command to c. Restart and quit
// belong to the host loop and are ignored here.
func Dispatch(cmd Command, c Controller) error {
	switch cmd {
	case CmdUp:
		c.MoveUp()
	case CmdDown:
		c.MoveDown()
	case CmdLeft:
		c.MoveLeft()
	case CmdRight:
		c.MoveRight()
	case CmdToggle:
		if c.Finished() {
			return nil
		}
		if c.Active() && !c.Paused() {
			return c.Pause()
		}
		return c.Play()
	}
	return nil
}
