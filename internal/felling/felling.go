// Package felling tracks trees marked for felling and runs the chain
// reaction that topples them one after another.
package felling

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/sched"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// ChainState guards against overlapping chains.
type ChainState int

const (
	Idle ChainState = iota
	Running
)

func (s ChainState) String() string {
	if s == Running {
		return "Running"
	}
	return "Idle"
}

// Propagation modes.
const (
	PropagateChain  = "chain"
	PropagateRadius = "radius"
)

// Tree is a marked tree. Height is captured when the mark is made.
type Tree struct {
	Cell   core.Cell
	Dir    core.Dir
	Height int
}

// Forest is the tree layer the system reads and mutates.
type Forest interface {
	world.GridIndex
	HasTree(c core.Cell) bool
	RemoveTree(c core.Cell) bool
}

// Visuals receives presentation callbacks. All methods are optional in
// effect; NopVisuals ignores them.
type Visuals interface {
	ShowMarked(t Tree)
	ClearMarked(c core.Cell)
	ShowFelled(t Tree)
}

// NopVisuals discards every callback.
type NopVisuals struct{}

func (NopVisuals) ShowMarked(Tree)       {}
func (NopVisuals) ClearMarked(core.Cell) {}
func (NopVisuals) ShowFelled(Tree)       {}

// Config tunes chain timing and propagation.
type Config struct {
	ChainStepDelay time.Duration `yaml:"chain_step_delay"`
	HoldConfirm    time.Duration `yaml:"hold_confirm"`
	Propagation    string        `yaml:"propagation"`
	Radius         float64       `yaml:"radius"`
	ChopHealth     int           `yaml:"chop_health"`
}

// DefaultConfig returns the standard felling settings.
func DefaultConfig() Config {
	return Config{
		ChainStepDelay: 100 * time.Millisecond,
		HoldConfirm:    2 * time.Second,
		Propagation:    PropagateChain,
		Radius:         1.0,
		ChopHealth:     3,
	}
}

// System owns the marks, the chain state and the chop counters.
type System struct {
	forest  Forest
	extent  world.VisualExtent
	visuals Visuals
	sched   *sched.Scheduler
	cfg     Config
	prop    Propagator
	logger  *log.Logger

	marks  map[core.Cell]Tree
	health map[core.Cell]int
	state  ChainState
	chains int

	chain    *sched.Handle
	hold     *sched.Handle
	approach *approach

	events []Event
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *System) { s.logger = l }
}

// WithPropagator overrides the propagator chosen from Config.
func WithPropagator(p Propagator) Option {
	return func(s *System) { s.prop = p }
}

// New creates a felling system. When cfg selects radius propagation the
// forest must also implement world.SpatialQuery.
func New(forest Forest, extent world.VisualExtent, visuals Visuals, s *sched.Scheduler, cfg Config, opts ...Option) *System {
	def := DefaultConfig()
	if cfg.ChainStepDelay <= 0 {
		cfg.ChainStepDelay = def.ChainStepDelay
	}
	if cfg.HoldConfirm <= 0 {
		cfg.HoldConfirm = def.HoldConfirm
	}
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.ChopHealth <= 0 {
		cfg.ChopHealth = def.ChopHealth
	}
	if visuals == nil {
		visuals = NopVisuals{}
	}

	sys := &System{
		forest:  forest,
		extent:  extent,
		visuals: visuals,
		sched:   s,
		cfg:     cfg,
		logger:  log.Default().WithPrefix("felling"),
		marks:   make(map[core.Cell]Tree),
		health:  make(map[core.Cell]int),
	}
	for _, opt := range opts {
		opt(sys)
	}
	if sys.prop == nil {
		sys.prop = DirectionChain{}
		if cfg.Propagation == PropagateRadius {
			if q, ok := forest.(world.SpatialQuery); ok {
				sys.prop = RadiusSpread{Query: q, Radius: cfg.Radius}
			} else {
				sys.logger.Warn("forest has no spatial index, using chain propagation")
			}
		}
	}
	return sys
}

// Config returns the active configuration.
func (s *System) Config() Config {
	return s.cfg
}

// State returns the chain state.
func (s *System) State() ChainState {
	return s.state
}

// MarkForFelling records that the tree at c should fall toward dir.
// Marking an already marked cell is a no-op and returns false.
func (s *System) MarkForFelling(c core.Cell, dir core.Dir) bool {
	if _, ok := s.marks[c]; ok {
		return false
	}
	if !s.forest.HasTree(c) || dir == core.DirNone {
		return false
	}
	h := 1
	if s.extent != nil {
		h = max(1, s.extent.HeightOf(c))
	}
	t := Tree{Cell: c, Dir: dir, Height: h}
	s.marks[c] = t
	s.visuals.ShowMarked(t)
	s.emit(Event{Kind: EventMarked, Cell: c, Dir: dir, Height: h})
	s.logger.Info("marked", "cell", c, "dir", dir, "height", h)
	return true
}

// Unmark removes a mark. It reports whether one existed.
func (s *System) Unmark(c core.Cell) bool {
	if _, ok := s.marks[c]; !ok {
		return false
	}
	delete(s.marks, c)
	s.visuals.ClearMarked(c)
	s.emit(Event{Kind: EventUnmarked, Cell: c})
	return true
}

// IsMarked reports whether c is marked.
func (s *System) IsMarked(c core.Cell) bool {
	_, ok := s.marks[c]
	return ok
}

// Tree returns the mark at c.
func (s *System) Tree(c core.Cell) (Tree, bool) {
	t, ok := s.marks[c]
	return t, ok
}

// Marked returns all marks ordered by row then column.
func (s *System) Marked() []Tree {
	out := make([]Tree, 0, len(s.marks))
	for _, t := range s.marks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}

// Reset drops every mark, pending task and counter.
func (s *System) Reset() {
	if s.chain != nil {
		s.chain.Cancel()
		s.chain = nil
	}
	if s.hold != nil {
		s.hold.Cancel()
		s.hold = nil
	}
	if s.approach != nil {
		s.approach.handle.Cancel()
		s.approach = nil
	}
	for c := range s.marks {
		s.visuals.ClearMarked(c)
	}
	s.marks = make(map[core.Cell]Tree)
	s.health = make(map[core.Cell]int)
	s.state = Idle
	s.events = nil
}

// fell removes a marked tree from the forest.
func (s *System) fell(t Tree, chain int) {
	delete(s.marks, t.Cell)
	delete(s.health, t.Cell)
	s.forest.RemoveTree(t.Cell)
	s.visuals.ShowFelled(t)
	s.emit(Event{Kind: EventFelled, Cell: t.Cell, Dir: t.Dir, Height: t.Height, Chain: chain})
	s.logger.Debug("felled", "cell", t.Cell, "dir", t.Dir, "chain", chain)
}
