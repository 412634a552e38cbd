package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/game"
	"github.com/vovakirdan/little-wizard/internal/gesture"
)

// pointer turns terminal mouse reports and keyboard gestures into pointer
// events measured in gesture pixels on the session clock.
type pointer struct {
	cfg       gesture.Config
	cursor    core.Cell
	mouseDown bool

	// Keyboard hold in progress.
	holding   bool
	releaseAt time.Duration
	holdPos   core.Vec2
}

func newPointer(cfg gesture.Config, start core.Cell) *pointer {
	return &pointer{cfg: cfg, cursor: start}
}

// mouse converts a mouse report. Only the left button drives gestures.
func (p *pointer) mouse(msg tea.MouseMsg, vp game.Viewport, now time.Duration) (core.PointerEvent, bool) {
	pos := vp.ColumnToPixels(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.PointerEvent{}, false
		}
		p.mouseDown = true
		return core.Down(pos.X, pos.Y, now), true
	case tea.MouseActionMotion:
		if !p.mouseDown {
			return core.PointerEvent{}, false
		}
		return core.Move(pos.X, pos.Y, now), true
	case tea.MouseActionRelease:
		if !p.mouseDown {
			return core.PointerEvent{}, false
		}
		p.mouseDown = false
		return core.Up(pos.X, pos.Y, now), true
	}
	return core.PointerEvent{}, false
}

// moveCursor shifts the keyboard cursor, keeping it inside w x h.
func (p *pointer) moveCursor(d core.Dir, w, h int) {
	next := p.cursor.Step(d, 1)
	if next.X < 0 || next.Y < 0 || next.X >= w || next.Y >= h {
		return
	}
	p.cursor = next
}

// tap is an instant press and release on the cursor.
func (p *pointer) tap(vp game.Viewport, now time.Duration) []core.PointerEvent {
	pos := vp.CellToPixels(p.cursor)
	return []core.PointerEvent{
		core.Down(pos.X, pos.Y, now),
		core.Up(pos.X, pos.Y, now),
	}
}

// doubleTap is two taps well inside the double-tap window.
func (p *pointer) doubleTap(vp game.Viewport, now time.Duration) []core.PointerEvent {
	step := p.cfg.DoubleTapMaxInterval / 4
	pos := vp.CellToPixels(p.cursor)
	return []core.PointerEvent{
		core.Down(pos.X, pos.Y, now),
		core.Up(pos.X, pos.Y, now+step),
		core.Down(pos.X, pos.Y, now+2*step),
		core.Up(pos.X, pos.Y, now+3*step),
	}
}

// swipe is a slow drag from the cursor in direction d, long and far
// enough to land in the guaranteed swipe band.
func (p *pointer) swipe(d core.Dir, vp game.Viewport, now time.Duration) []core.PointerEvent {
	pos := vp.CellToPixels(p.cursor)
	dx, dy := d.Delta()
	reach := p.cfg.SwipeMinDistance + 1
	end := pos.Add(core.V(float64(dx)*reach, float64(dy)*reach))
	return []core.PointerEvent{
		core.Down(pos.X, pos.Y, now),
		core.Up(end.X, end.Y, now+p.cfg.SwipeGuaranteedMin+time.Millisecond),
	}
}

// toggleHold presses on the cursor and keeps the pointer down until hold
// has elapsed, or releases a hold already in progress.
func (p *pointer) toggleHold(hold time.Duration, vp game.Viewport, now time.Duration) core.PointerEvent {
	if p.holding {
		p.holding = false
		return core.Up(p.holdPos.X, p.holdPos.Y, now)
	}
	p.holding = true
	p.holdPos = vp.CellToPixels(p.cursor)
	p.releaseAt = now + hold
	return core.Down(p.holdPos.X, p.holdPos.Y, now)
}

// due returns the release of a finished keyboard hold.
func (p *pointer) due(now time.Duration) (core.PointerEvent, bool) {
	if !p.holding || now < p.releaseAt {
		return core.PointerEvent{}, false
	}
	p.holding = false
	return core.Up(p.holdPos.X, p.holdPos.Y, now), true
}
