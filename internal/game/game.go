// Package game composes the map, pathfinder, movement, felling and gesture
// classification into one UI-agnostic session. The platform feeds it
// pointer events and ticks and asks it to render into a core.Screen.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/config"
	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/felling"
	"github.com/vovakirdan/little-wizard/internal/gesture"
	"github.com/vovakirdan/little-wizard/internal/metrics"
	"github.com/vovakirdan/little-wizard/internal/movement"
	"github.com/vovakirdan/little-wizard/internal/pathfind"
	"github.com/vovakirdan/little-wizard/internal/registry"
	"github.com/vovakirdan/little-wizard/internal/sched"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// hudHeight is the number of rows above the map.
const hudHeight = 2

const (
	// messageTTL is how long a status message stays on screen.
	messageTTL = 3 * time.Second
	// messageStep is how often the status message ages.
	messageStep = 100 * time.Millisecond
)

// Stats are the running totals of a session.
type Stats struct {
	Felled       int
	Chains       int
	LongestChain int
	Chopped      int
}

// Game is one play session on one map.
type Game struct {
	def    registry.Map
	cfg    config.WizardConfig
	logger *log.Logger

	seed       int64
	grid       *world.TileMap
	start      core.Cell
	pf         *pathfind.Pathfinder
	exec       *movement.Executor
	sched      *sched.Scheduler
	fell       *felling.System
	classifier *gesture.Classifier
	marker     *marker
	visuals    *treeVisuals

	viewport Viewport
	screenW  int
	screenH  int
	tooSmall bool

	now     time.Duration
	paused  bool
	stats   Stats
	pending []felling.Event

	message     string
	messageTask *sched.Handle
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used by the game and its systems.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New builds a session on def. seed is passed to generated maps.
func New(def registry.Map, cfg config.WizardConfig, seed int64, opts ...Option) (*Game, error) {
	g := &Game{
		def:    def,
		cfg:    cfg,
		logger: log.Default().WithPrefix("game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.load(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// load (re)builds every system from a fresh copy of the map.
func (g *Game) load(seed int64) error {
	grid, start, err := g.def.Build(seed)
	if err != nil {
		return fmt.Errorf("game: building map %s: %w", g.def.ID(), err)
	}
	if !world.Passable(grid, start) {
		return fmt.Errorf("game: map %s: start %s is not walkable", g.def.ID(), start)
	}

	g.seed = seed
	g.grid = grid
	g.start = start
	g.marker = &marker{}
	g.visuals = newTreeVisuals()
	g.sched = sched.New(g.logger.WithPrefix("sched"))

	g.pf = pathfind.New(grid)
	g.pf.OnSearch = metrics.ObservePathSearch

	g.exec = movement.New(g.pf, grid, world.UnitLayout, g.marker,
		world.UnitLayout.CellToWorld(start), g.cfg.Movement,
		movement.WithLogger(g.logger.WithPrefix("movement")))

	g.fell = felling.New(grid, grid, g.visuals, g.sched, g.cfg.Felling,
		felling.WithLogger(g.logger.WithPrefix("felling")))

	g.classifier = gesture.New(g.cfg.Gesture, g.logger.WithPrefix("gesture"))

	g.now = 0
	g.paused = false
	g.stats = Stats{}
	g.pending = nil
	g.message = ""
	g.messageTask = nil
	g.layout()
	return nil
}

// Seed returns the seed the map was built with.
func (g *Game) Seed() int64 {
	return g.seed
}

// MapID returns the ID of the map being played.
func (g *Game) MapID() string {
	return g.def.ID()
}

// Title returns the map title.
func (g *Game) Title() string {
	return g.def.Title()
}

// Resize updates the screen dimensions and recenters the map.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layout()
}

func (g *Game) layout() {
	cw := max(1, g.cfg.Display.CellWidth)
	g.viewport = Viewport{
		CellWidth:       cw,
		PixelsPerColumn: g.cfg.Display.PixelsPerColumn,
		PixelsPerRow:    g.cfg.Display.PixelsPerRow,
		OffsetY:         hudHeight,
	}
	if g.viewport.PixelsPerColumn <= 0 {
		g.viewport.PixelsPerColumn = 1
	}
	if g.viewport.PixelsPerRow <= 0 {
		g.viewport.PixelsPerRow = 1
	}
	mapW := g.grid.W * cw
	g.viewport.OffsetX = max(0, (g.screenW-mapW)/2)
	g.tooSmall = g.screenW > 0 && (g.screenW < mapW || g.screenH < g.grid.H+hudHeight+1)
}

// Viewport returns the current screen mapping.
func (g *Game) Viewport() Viewport {
	return g.viewport
}

// Now returns the session clock.
func (g *Game) Now() time.Duration {
	return g.now
}

// HandlePointer feeds one pointer sample to the gesture classifier and
// acts on the resulting gesture.
func (g *Game) HandlePointer(ev core.PointerEvent) {
	if g.paused {
		return
	}
	g.route(g.classifier.Observe(ev))
}

// HandleAction applies a keyboard-level action.
func (g *Game) HandleAction(a core.Action) {
	switch a {
	case core.ActionPause:
		g.paused = !g.paused
	case core.ActionRestart:
		if err := g.Restart(g.seed); err != nil {
			g.logger.Error("restart failed", "err", err)
		}
	}
}

// Restart reloads the map with the given seed. Pending chains and walks
// are dropped.
func (g *Game) Restart(seed int64) error {
	g.sched.CancelAll()
	w, h := g.screenW, g.screenH
	if err := g.load(seed); err != nil {
		return err
	}
	g.Resize(w, h)
	return nil
}

// Step advances the session by dt.
func (g *Game) Step(dt time.Duration) {
	if g.paused {
		return
	}
	began := time.Now()

	g.now += dt
	g.route(g.classifier.Poll(g.now))
	g.exec.Tick(dt)
	g.sched.Tick(dt)
	g.visuals.advance(dt)
	g.collect()
	metrics.ObserveTick(time.Since(began))
}

// route turns a gesture into an intent.
func (g *Game) route(ev gesture.Event) {
	if ev.Kind == gesture.None {
		return
	}
	metrics.ObserveGesture(ev.Kind)
	cell := g.viewport.ScreenToCell(ev.Pos)
	g.logger.Debug("gesture", "kind", ev.Kind, "cell", cell)

	switch {
	case ev.Kind == gesture.Tap:
		g.moveTo(cell)

	case ev.Kind.IsSwipe():
		if !g.grid.HasTree(cell) || g.fell.IsMarked(cell) {
			return
		}
		g.fell.MarkFromSwipe(cell, ev.Kind.Dir(), g.exec, g.pf)

	case ev.Kind == gesture.Hold:
		if g.fell.IsMarked(cell) && g.fell.BeginHold(cell, g.classifier.Pressed) {
			g.say("Keep holding to start the chain")
		}

	case ev.Kind == gesture.DoubleTap:
		if !g.grid.HasTree(cell) {
			return
		}
		if hp, down := g.fell.Chop(cell); !down && hp > 0 {
			g.say(fmt.Sprintf("Chop! %d left", hp))
		}
	}
}

func (g *Game) moveTo(cell core.Cell) {
	err := g.exec.MoveTo(cell)
	switch {
	case err == nil:
	case errors.Is(err, movement.ErrTargetBlocked):
		g.logger.Debug("tap on blocked cell", "cell", cell)
	case errors.Is(err, movement.ErrNoPath):
		g.say("Can't get there")
	default:
		g.logger.Warn("move failed", "cell", cell, "err", err)
	}
}

// collect drains felling events into the session totals.
func (g *Game) collect() {
	for _, e := range g.fell.DrainEvents() {
		metrics.ObserveFelling(e)
		switch e.Kind {
		case felling.EventFelled:
			g.stats.Felled++
			if e.Chain == 0 {
				g.stats.Chopped++
			}
		case felling.EventChainFinished:
			g.stats.Chains++
			g.stats.LongestChain = max(g.stats.LongestChain, e.Count)
			g.say(fmt.Sprintf("Timber! %d down", e.Count))
		case felling.EventMarkAborted:
			g.say("Push cancelled")
		}
		g.pending = append(g.pending, e)
	}
}

// DrainEvents returns felling events since the last call.
func (g *Game) DrainEvents() []felling.Event {
	out := g.pending
	g.pending = nil
	return out
}

// Stats returns the session totals.
func (g *Game) Stats() Stats {
	return g.stats
}

// State summarizes the session for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Felled:   g.stats.Felled,
		Marked:   len(g.fell.Marked()),
		Chaining: g.fell.State() == felling.Running,
		Moving:   g.exec.IsMoving(),
		Paused:   g.paused,
	}
}

// Player returns the cell the wizard occupies.
func (g *Game) Player() core.Cell {
	return g.exec.Cell()
}

// Grid exposes the live tile map.
func (g *Game) Grid() *world.TileMap {
	return g.grid
}

// Felling exposes the felling system.
func (g *Game) Felling() *felling.System {
	return g.fell
}

// say shows msg on the status line until messageTTL has passed or a newer
// message replaces it.
func (g *Game) say(msg string) {
	if g.messageTask != nil {
		g.messageTask.Cancel()
	}
	g.message = msg
	var age time.Duration
	g.messageTask = g.sched.Spawn("message", sched.Every(messageStep, func() bool {
		age += messageStep
		if age < messageTTL {
			return true
		}
		g.message = ""
		g.messageTask = nil
		return false
	}))
}
