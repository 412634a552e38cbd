// Package movement walks an entity along planned paths, one waypoint at a
// time, and handles re-targeting while in motion.
package movement

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/pathfind"
	"github.com/vovakirdan/little-wizard/internal/world"
)

var (
	// ErrTargetBlocked is returned when the requested cell cannot be stood on.
	ErrTargetBlocked = errors.New("movement: target cell is blocked")
	// ErrNoPath is returned when no route to the target exists.
	ErrNoPath = errors.New("movement: no path to target")
)

// Planner produces paths between cells.
type Planner interface {
	FindPath(start, goal core.Cell) pathfind.Path
}

// Config tunes motion.
type Config struct {
	// Speed in cells per second.
	Speed float64 `yaml:"speed"`
	// Epsilon is the snap distance in world units.
	Epsilon float64 `yaml:"epsilon"`
}

// DefaultConfig returns the standard walking speed and snap distance.
func DefaultConfig() Config {
	return Config{Speed: 5, Epsilon: 0.01}
}

// Executor moves one entity through world space.
type Executor struct {
	planner Planner
	grid    world.GridIndex
	layout  world.Layout
	marker  world.MarkerVisual
	cfg     Config
	logger  *log.Logger

	pos       core.Vec2
	waypoints []core.Vec2
	goal      core.Cell
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the executor's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// New creates an executor standing at start (a world position).
func New(planner Planner, grid world.GridIndex, layout world.Layout, marker world.MarkerVisual, start core.Vec2, cfg Config, opts ...Option) *Executor {
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultConfig().Speed
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultConfig().Epsilon
	}
	e := &Executor{
		planner: planner,
		grid:    grid,
		layout:  layout,
		marker:  marker,
		cfg:     cfg,
		pos:     start,
		logger:  log.Default().WithPrefix("movement"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Position returns the current world position.
func (e *Executor) Position() core.Vec2 {
	return e.pos
}

// Cell returns the cell containing the current position.
func (e *Executor) Cell() core.Cell {
	return e.layout.WorldToCell(e.pos)
}

// IsMoving reports whether waypoints remain.
func (e *Executor) IsMoving() bool {
	return len(e.waypoints) > 0
}

// Goal returns the destination of the current walk.
func (e *Executor) Goal() (core.Cell, bool) {
	if !e.IsMoving() {
		return core.Cell{}, false
	}
	return e.goal, true
}

// Remaining returns the cells of the waypoints not yet reached.
func (e *Executor) Remaining() []core.Cell {
	out := make([]core.Cell, len(e.waypoints))
	for i, w := range e.waypoints {
		out[i] = e.layout.WorldToCell(w)
	}
	return out
}

// BeginPath replaces the waypoint queue with the cell centers of path.
// The marker is placed at the path's goal when the path is non-empty.
func (e *Executor) BeginPath(path pathfind.Path) {
	e.clear()
	for _, c := range path {
		e.waypoints = append(e.waypoints, e.layout.CellToWorld(c))
	}
	goal, ok := path.Goal()
	if !ok {
		return
	}
	e.goal = goal
	if e.marker != nil {
		e.marker.Place(e.layout.CellToWorld(goal))
	}
	e.logger.Debug("walk", "from", e.Cell(), "to", goal, "steps", len(path))
}

// MoveTo plans a route to goal and starts walking. While already moving it
// re-targets via InterruptTo. Nothing changes when goal is blocked.
func (e *Executor) MoveTo(goal core.Cell) error {
	if e.IsMoving() {
		return e.InterruptTo(goal)
	}
	if !world.Passable(e.grid, goal) {
		return ErrTargetBlocked
	}
	path := e.planner.FindPath(e.Cell(), goal)
	if path.Empty() {
		return ErrNoPath
	}
	e.BeginPath(path)
	return nil
}

// InterruptTo abandons the current walk and heads for goal instead. When
// the entity is between cells the leading waypoint (its own cell's center)
// is skipped so it does not step backward. A failed re-plan leaves the
// executor idle.
func (e *Executor) InterruptTo(goal core.Cell) error {
	if !world.Passable(e.grid, goal) {
		return ErrTargetBlocked
	}
	e.clear()

	path := e.planner.FindPath(e.Cell(), goal)
	if path.Empty() {
		e.logger.Debug("re-plan failed", "from", e.Cell(), "to", goal)
		return ErrNoPath
	}
	e.BeginPath(path)
	if !e.layout.IsAtCellCenter(e.pos, e.cfg.Epsilon) && len(e.waypoints) > 1 {
		e.waypoints = e.waypoints[1:]
	}
	return nil
}

// Stop halts immediately and removes the marker.
func (e *Executor) Stop() {
	e.clear()
}

// Teleport places the entity at the center of c, cancelling any walk.
func (e *Executor) Teleport(c core.Cell) {
	e.clear()
	e.pos = e.layout.CellToWorld(c)
}

// Tick advances toward the head waypoint. At most one waypoint is
// consumed per tick.
func (e *Executor) Tick(dt time.Duration) {
	if !e.IsMoving() {
		return
	}
	head := e.waypoints[0]
	step := e.cfg.Speed * e.layout.CellSize * dt.Seconds()
	e.pos = e.pos.MoveTowards(head, step)

	if e.pos.Dist(head) >= e.cfg.Epsilon {
		return
	}
	e.pos = head
	e.waypoints = e.waypoints[1:]
	if len(e.waypoints) == 0 {
		e.logger.Debug("arrived", "cell", e.Cell())
		e.clear()
	}
}

func (e *Executor) clear() {
	e.waypoints = e.waypoints[:0]
	if e.marker != nil {
		e.marker.Remove()
	}
}
