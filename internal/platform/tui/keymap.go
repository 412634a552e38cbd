package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// GameKeyMap holds the bindings used while playing. The mouse drives the
// wizard; the keyboard offers a cursor for terminals without mouse support.
type GameKeyMap struct {
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Tap         key.Binding
	PushUp      key.Binding
	PushDown    key.Binding
	PushLeft    key.Binding
	PushRight   key.Binding
	Hold        key.Binding
	Chop        key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Help        key.Binding
	Back        key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.PushRight, k.Hold, k.Chop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CursorUp, k.CursorDown, k.CursorLeft, k.CursorRight, k.Tap},
		{k.PushUp, k.PushDown, k.PushLeft, k.PushRight},
		{k.Hold, k.Chop, k.Pause, k.Restart},
		{k.Screenshot, k.Back, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		CursorUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		CursorDown:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		CursorLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "cursor left")),
		CursorRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "cursor right")),
		Tap:         key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "walk")),
		PushUp:      key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "push up")),
		PushDown:    key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "push down")),
		PushLeft:    key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "push left")),
		PushRight:   key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("HJKL", "push")),
		Hold:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "hold to fell")),
		Chop:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "chop")),
		Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Screenshot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Action translates a key message to a keyboard-level action.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// Cursor returns the direction a cursor key moves, or DirNone.
func (k GameKeyMap) Cursor(msg tea.KeyMsg) core.Dir {
	switch {
	case key.Matches(msg, k.CursorUp):
		return core.DirUp
	case key.Matches(msg, k.CursorDown):
		return core.DirDown
	case key.Matches(msg, k.CursorLeft):
		return core.DirLeft
	case key.Matches(msg, k.CursorRight):
		return core.DirRight
	}
	return core.DirNone
}

// Push returns the direction of a push key, or DirNone.
func (k GameKeyMap) Push(msg tea.KeyMsg) core.Dir {
	switch {
	case key.Matches(msg, k.PushUp):
		return core.DirUp
	case key.Matches(msg, k.PushDown):
		return core.DirDown
	case key.Matches(msg, k.PushLeft):
		return core.DirLeft
	case key.Matches(msg, k.PushRight):
		return core.DirRight
	}
	return core.DirNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MenuKeyMap holds the map picker bindings.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "records")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MenuAction translates a key to a menu action.
func (k MenuKeyMap) MenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
