package core

import "time"

// PointerPhase is the stage of a single pointer interaction.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// String returns a human-readable name for the phase.
func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "Down"
	case PointerMove:
		return "Move"
	case PointerUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// PointerEvent is one normalized sample of the pointer stream.
// Pos is in screen space (Y grows downward); At is a monotonic timestamp
// measured from an arbitrary origin chosen by the pointer source.
type PointerEvent struct {
	Phase PointerPhase
	Pos   Vec2
	At    time.Duration
}

// Down builds a press event.
func Down(x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Phase: PointerDown, Pos: V(x, y), At: at}
}

// Move builds a drag event.
func Move(x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Phase: PointerMove, Pos: V(x, y), At: at}
}

// Up builds a release event.
func Up(x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Phase: PointerUp, Pos: V(x, y), At: at}
}

// Action represents a keyboard-level command, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P - pause/unpause simulation
	ActionRestart        // R - reload the current map
	ActionHelp           // ? - toggle full help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
