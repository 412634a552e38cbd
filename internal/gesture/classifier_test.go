package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/core"
)

const ms = time.Millisecond

// press runs a full down/up interaction and returns the release gesture.
func press(c *Classifier, from, to core.Vec2, at, held time.Duration) Event {
	c.Observe(core.PointerEvent{Phase: core.PointerDown, Pos: from, At: at})
	return c.Observe(core.PointerEvent{Phase: core.PointerUp, Pos: to, At: at + held})
}

func TestQuickReleaseIsTap(t *testing.T) {
	c := New(DefaultConfig(), nil)

	ev := press(c, core.V(10, 10), core.V(12, 10), 0, 50*ms)
	assert.Equal(t, Tap, ev.Kind)
	assert.Equal(t, core.V(10, 10), ev.Pos, "gesture should carry the press position")
}

func TestTapAtExactGuaranteedMaxIsTap(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, nil)

	// Exactly TapGuaranteedMax falls through to the gray zone, where zero
	// displacement still resolves to a tap.
	ev := press(c, core.V(5, 5), core.V(5, 5), time.Second, cfg.TapGuaranteedMax)
	assert.Equal(t, Tap, ev.Kind)
}

func TestDoubleTap(t *testing.T) {
	c := New(DefaultConfig(), nil)

	first := press(c, core.V(0, 0), core.V(0, 0), 1000*ms, 20*ms)
	second := press(c, core.V(0, 0), core.V(0, 0), 1060*ms, 20*ms)
	third := press(c, core.V(0, 0), core.V(0, 0), 1120*ms, 20*ms)

	assert.Equal(t, Tap, first.Kind)
	assert.Equal(t, DoubleTap, second.Kind)
	assert.Equal(t, Tap, third.Kind, "a double-tap consumes the pending tap")
}

func TestSlowSecondTapIsTap(t *testing.T) {
	c := New(DefaultConfig(), nil)

	press(c, core.V(0, 0), core.V(0, 0), 0, 20*ms)
	ev := press(c, core.V(0, 0), core.V(0, 0), 500*ms, 20*ms)
	assert.Equal(t, Tap, ev.Kind)
}

func TestFirstTapNearTimeZeroIsNotDoubleTap(t *testing.T) {
	c := New(DefaultConfig(), nil)
	ev := press(c, core.V(0, 0), core.V(0, 0), 0, 10*ms)
	assert.Equal(t, Tap, ev.Kind)
}

func TestGrayZone(t *testing.T) {
	tests := []struct {
		name string
		to   core.Vec2
		want Kind
	}{
		{"short drag is a tap", core.V(40, 0), Tap},
		{"long drag right", core.V(200, 10), SwipeRight},
		{"long drag left", core.V(-200, 10), SwipeLeft},
		{"long drag up (screen y shrinks)", core.V(10, -200), SwipeUp},
		{"long drag down", core.V(10, 200), SwipeDown},
		{"exact min distance is neither", core.V(150, 0), None},
		{"just past min distance", core.V(151, 0), SwipeRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(DefaultConfig(), nil)
			ev := press(c, core.V(0, 0), tc.to, 0, 200*ms)
			assert.Equal(t, tc.want, ev.Kind)
		})
	}
}

func TestDiagonalTieGoesVertical(t *testing.T) {
	c := New(DefaultConfig(), nil)
	ev := press(c, core.V(0, 0), core.V(200, 200), 0, 200*ms)
	assert.Equal(t, SwipeDown, ev.Kind)
}

func TestGuaranteedSwipeZone(t *testing.T) {
	t.Run("strict rejects short displacement", func(t *testing.T) {
		c := New(DefaultConfig(), nil)
		ev := press(c, core.V(0, 0), core.V(3, 0), 0, 400*ms)
		assert.Equal(t, None, ev.Kind)
	})

	t.Run("strict needs more than min distance", func(t *testing.T) {
		c := New(DefaultConfig(), nil)
		assert.Equal(t, None, press(c, core.V(0, 0), core.V(150, 0), 0, 400*ms).Kind)
		assert.Equal(t, SwipeRight, press(c, core.V(0, 0), core.V(151, 0), 0, 400*ms).Kind)
	})

	t.Run("lenient classifies any displacement", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StrictSwipeDistance = false
		c := New(cfg, nil)

		ev := press(c, core.V(0, 0), core.V(3, 0), 0, 400*ms)
		assert.Equal(t, SwipeRight, ev.Kind)

		// No movement at all still yields a direction (vertical, positive dy)
		ev = press(c, core.V(0, 0), core.V(0, 0), time.Second, 400*ms)
		assert.Equal(t, SwipeDown, ev.Kind)
	})

	t.Run("long swipe", func(t *testing.T) {
		c := New(DefaultConfig(), nil)
		ev := press(c, core.V(0, 0), core.V(-300, 20), 0, 450*ms)
		assert.Equal(t, SwipeLeft, ev.Kind)
	})
}

func TestHoldIsReportedEagerlyOnce(t *testing.T) {
	c := New(DefaultConfig(), nil)
	c.Observe(core.Down(50, 50, 0))

	assert.Equal(t, None, c.Poll(400*ms).Kind)
	assert.Equal(t, None, c.Poll(500*ms).Kind, "hold needs strictly more than HoldMin")

	ev := c.Poll(501 * ms)
	require.Equal(t, Hold, ev.Kind)
	assert.Equal(t, core.V(50, 50), ev.Pos)

	assert.Equal(t, None, c.Poll(800*ms).Kind, "hold is latched")
	assert.Equal(t, None, c.Observe(core.Move(52, 50, 900*ms)).Kind)

	// Release within HoldMaxDistance confirms the hold
	assert.Equal(t, Hold, c.Observe(core.Up(60, 50, time.Second)).Kind)
}

func TestHoldCancelledByDrift(t *testing.T) {
	c := New(DefaultConfig(), nil)
	c.Observe(core.Down(0, 0, 0))
	require.Equal(t, Hold, c.Observe(core.Move(5, 0, 600*ms)).Kind)

	assert.Equal(t, None, c.Observe(core.Up(100, 0, 900*ms)).Kind)
}

func TestDownResetsHoldLatch(t *testing.T) {
	c := New(DefaultConfig(), nil)
	c.Observe(core.Down(0, 0, 0))
	require.Equal(t, Hold, c.Poll(time.Second).Kind)
	c.Observe(core.Up(0, 0, 1100*ms))

	c.Observe(core.Down(0, 0, 2*time.Second))
	assert.False(t, c.holdLatch)
	assert.Equal(t, Tap, c.Observe(core.Up(0, 0, 2*time.Second+30*ms)).Kind)
}

func TestUpWithoutDown(t *testing.T) {
	c := New(DefaultConfig(), nil)
	assert.Equal(t, None, c.Observe(core.Up(1, 1, time.Second)).Kind)
	assert.Equal(t, None, c.Poll(5*time.Second).Kind)
}

func TestKindDir(t *testing.T) {
	assert.Equal(t, core.DirUp, SwipeUp.Dir())
	assert.Equal(t, core.DirLeft, SwipeLeft.Dir())
	assert.Equal(t, core.DirNone, Tap.Dir())
	assert.True(t, SwipeRight.IsSwipe())
	assert.False(t, Hold.IsSwipe())
}
