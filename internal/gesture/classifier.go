package gesture

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// Classifier is a state machine over a single pointer. Feed it every
// pointer event with Observe and call Poll once per tick so a stationary
// press can be reported as a hold before release.
type Classifier struct {
	cfg    Config
	logger *log.Logger

	pressed    bool
	startPos   core.Vec2
	startAt    time.Duration
	holdLatch  bool
	lastTapAt  time.Duration
	hasLastTap bool
}

// New creates a classifier with the given thresholds.
func New(cfg Config, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.Default().WithPrefix("gesture")
	}
	return &Classifier{cfg: cfg, logger: logger}
}

// Config returns the thresholds in use.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Pressed reports whether the pointer is currently held down.
func (c *Classifier) Pressed() bool {
	return c.pressed
}

// PressedSince returns the start time of the current press.
func (c *Classifier) PressedSince() (time.Duration, bool) {
	return c.startAt, c.pressed
}

// Observe consumes one pointer event and returns the gesture it completes,
// or an event of kind None.
func (c *Classifier) Observe(ev core.PointerEvent) Event {
	switch ev.Phase {
	case core.PointerDown:
		c.pressed = true
		c.startPos = ev.Pos
		c.startAt = ev.At
		c.holdLatch = false
		return Event{Kind: None, Pos: ev.Pos}

	case core.PointerMove:
		return c.Poll(ev.At)

	case core.PointerUp:
		if !c.pressed {
			return Event{Kind: None, Pos: ev.Pos}
		}
		c.pressed = false
		kind := c.classifyRelease(ev.Pos, ev.At)
		return Event{Kind: kind, Pos: c.startPos}
	}
	return Event{Kind: None, Pos: ev.Pos}
}

// Poll reports Hold exactly once per press, as soon as the press has lasted
// longer than HoldMin.
func (c *Classifier) Poll(now time.Duration) Event {
	if c.pressed && !c.holdLatch && now-c.startAt > c.cfg.HoldMin {
		c.holdLatch = true
		c.logger.Debug("hold latched", "pos", c.startPos, "held", now-c.startAt)
		return Event{Kind: Hold, Pos: c.startPos}
	}
	return Event{Kind: None, Pos: c.startPos}
}

func (c *Classifier) classifyRelease(end core.Vec2, now time.Duration) Kind {
	duration := now - c.startAt
	moved := end.Dist(c.startPos)

	var kind Kind
	var zone string
	switch {
	case c.holdLatch:
		zone = "hold"
		if moved <= c.cfg.HoldMaxDistance {
			kind = Hold
		} else {
			kind = None
		}
	case duration < c.cfg.TapGuaranteedMax:
		zone = "guaranteed tap"
		kind = c.tapOrDoubleTap(now)
	case duration < c.cfg.SwipeGuaranteedMin:
		zone = "gray"
		switch {
		case moved < c.cfg.SwipeMinDistance:
			kind = c.tapOrDoubleTap(now)
		case moved == c.cfg.SwipeMinDistance:
			// Too far for a tap, not far enough for a swipe.
			kind = None
		default:
			kind = swipeDirection(c.startPos, end)
		}
	default:
		zone = "guaranteed swipe"
		if c.cfg.StrictSwipeDistance && moved <= c.cfg.SwipeMinDistance {
			kind = None
		} else {
			kind = swipeDirection(c.startPos, end)
		}
	}

	c.logger.Debug("release classified", "kind", kind, "zone", zone, "duration", duration, "moved", moved)
	return kind
}

// tapOrDoubleTap records the tap before returning; a double-tap consumes
// the pending tap so a third quick tap starts a new pair.
func (c *Classifier) tapOrDoubleTap(now time.Duration) Kind {
	if c.hasLastTap && now-c.lastTapAt < c.cfg.DoubleTapMaxInterval {
		c.hasLastTap = false
		return DoubleTap
	}
	c.lastTapAt = now
	c.hasLastTap = true
	return Tap
}

// swipeDirection picks the dominant axis; ties go to the vertical axis.
// Screen Y grows downward, so a negative dy is an upward swipe.
func swipeDirection(start, end core.Vec2) Kind {
	d := end.Sub(start)
	if math.Abs(d.X) > math.Abs(d.Y) {
		if d.X > 0 {
			return SwipeRight
		}
		return SwipeLeft
	}
	if d.Y < 0 {
		return SwipeUp
	}
	return SwipeDown
}
