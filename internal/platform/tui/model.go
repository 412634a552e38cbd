package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/config"
	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/game"
	"github.com/vovakirdan/little-wizard/internal/storage"
)

// Model is the Bubble Tea model for one play session.
type Model struct {
	game    *game.Game
	screen  *core.Screen
	store   *storage.Store
	cfg     config.WizardConfig
	keys    GameKeyMap
	help    help.Model
	pointer *pointer
	logger  *log.Logger

	session *playSession
	slot    *sessionSlot // set when an SSH connection owns this model

	width      int
	height     int
	embedded   bool // Back returns to a parent model instead of quitting
	quitting   bool
	backToMenu bool
}

// NewModel wraps g in a Bubble Tea model and opens a storage session.
// store may be nil.
func NewModel(g *game.Game, store *storage.Store, cfg config.WizardConfig, width, height int, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		game:    g,
		screen:  core.NewScreen(width, max(1, height-1)),
		store:   store,
		cfg:     cfg,
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		pointer: newPointer(cfg.Gesture, g.Player()),
		logger:  logger,
		width:   width,
		height:  height,
	}
	m.help.Width = width
	g.Resize(width, max(1, height-1))
	m.beginSession()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Display.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.pointer.mouse(msg, m.game.Viewport(), m.game.Now()); ok {
			m.game.HandlePointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.game
	vp := g.Viewport()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.endSession()
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Tap):
		m.feed(m.pointer.tap(vp, g.Now()))
		return m, nil

	case key.Matches(msg, m.keys.Chop):
		m.feed(m.pointer.doubleTap(vp, g.Now()))
		return m, nil

	case key.Matches(msg, m.keys.Hold):
		hold := m.cfg.Gesture.HoldMin + m.cfg.Felling.HoldConfirm + 100*time.Millisecond
		g.HandlePointer(m.pointer.toggleHold(hold, vp, g.Now()))
		return m, nil
	}

	if d := m.keys.Push(msg); d != core.DirNone {
		m.feed(m.pointer.swipe(d, vp, g.Now()))
		return m, nil
	}
	if d := m.keys.Cursor(msg); d != core.DirNone {
		m.pointer.moveCursor(d, g.Grid().W, g.Grid().H)
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.endSession()
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionRestart:
		m.endSession()
		g.HandleAction(a)
		m.pointer.cursor = g.Player()
		m.beginSession()
	case core.ActionPause:
		g.HandleAction(a)
	}
	return m, nil
}

func (m Model) feed(evs []core.PointerEvent) {
	for _, ev := range evs {
		m.game.HandlePointer(ev)
	}
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	h := max(1, msg.Height-1)
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	dt := time.Second / time.Duration(m.cfg.Display.TickRate)
	m.game.Step(dt)
	if ev, ok := m.pointer.due(m.game.Now()); ok {
		m.game.HandlePointer(ev)
	}
	m.session.record(m.game.DrainEvents())
	return m, tickCmd(m.cfg.Display.TickRate)
}

func (m *Model) beginSession() {
	m.session = startPlaySession(m.store, m.game, m.logger)
	if m.slot != nil {
		m.slot.set(m.session)
	}
}

func (m *Model) endSession() {
	if m.session != nil {
		m.session.end()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := config.ExpandHome("~/.wizard/screenshots")
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.MapID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	cx, cy := m.game.Viewport().CellToColumn(m.pointer.cursor)
	return renderScreen(m.screen, cx, cy) + "\n" + m.help.View(m.keys)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays g in the current terminal until the player quits.
func Run(g *game.Game, store *storage.Store, cfg config.WizardConfig, width, height int, logger *log.Logger) error {
	model := NewModel(g, store, cfg, width, height, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.endSession()
	}
	return err
}
