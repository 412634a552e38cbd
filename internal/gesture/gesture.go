// Package gesture turns a raw pointer down/move/up stream into discrete
// gestures: tap, double-tap, hold and the four cardinal swipes.
package gesture

import (
	"time"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// Kind identifies a classified gesture.
type Kind int

const (
	None Kind = iota
	Tap
	DoubleTap
	Hold
	SwipeUp
	SwipeDown
	SwipeLeft
	SwipeRight
)

// String returns a human-readable name for the gesture kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Tap:
		return "Tap"
	case DoubleTap:
		return "DoubleTap"
	case Hold:
		return "Hold"
	case SwipeUp:
		return "SwipeUp"
	case SwipeDown:
		return "SwipeDown"
	case SwipeLeft:
		return "SwipeLeft"
	case SwipeRight:
		return "SwipeRight"
	default:
		return "Unknown"
	}
}

// IsSwipe reports whether k is one of the four swipe kinds.
func (k Kind) IsSwipe() bool {
	return k >= SwipeUp && k <= SwipeRight
}

// Dir maps a swipe to its grid direction. Non-swipes map to DirNone.
func (k Kind) Dir() core.Dir {
	switch k {
	case SwipeUp:
		return core.DirUp
	case SwipeDown:
		return core.DirDown
	case SwipeLeft:
		return core.DirLeft
	case SwipeRight:
		return core.DirRight
	default:
		return core.DirNone
	}
}

// Event is a completed gesture. Pos is where the interaction started.
type Event struct {
	Kind Kind
	Pos  core.Vec2
}

// Config holds the time and distance thresholds for classification.
// Distances are in screen units of the pointer source.
type Config struct {
	TapGuaranteedMax     time.Duration `yaml:"tap_guaranteed_max"`
	SwipeGuaranteedMin   time.Duration `yaml:"swipe_guaranteed_min"`
	HoldMin              time.Duration `yaml:"hold_min"`
	DoubleTapMaxInterval time.Duration `yaml:"double_tap_max_interval"`
	SwipeMinDistance     float64       `yaml:"swipe_min_distance"`
	HoldMaxDistance      float64       `yaml:"hold_max_distance"`

	// StrictSwipeDistance rejects releases in the guaranteed-swipe band
	// whose displacement is below SwipeMinDistance. When false, any such
	// release is classified by direction even with no movement at all.
	StrictSwipeDistance bool `yaml:"strict_swipe_distance"`
}

// DefaultConfig returns the thresholds tuned for touch screens.
func DefaultConfig() Config {
	return Config{
		TapGuaranteedMax:     100 * time.Millisecond,
		SwipeGuaranteedMin:   300 * time.Millisecond,
		HoldMin:              500 * time.Millisecond,
		DoubleTapMaxInterval: 100 * time.Millisecond,
		SwipeMinDistance:     150,
		HoldMaxDistance:      30,
		StrictSwipeDistance:  true,
	}
}
