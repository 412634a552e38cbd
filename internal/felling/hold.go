package felling

import (
	"time"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/sched"
)

// BeginHold starts a long-press confirmation on a marked tree. pressed is
// polled every tick; releasing before HoldConfirm cancels. When the hold
// completes the chain starts if the tree is still marked and no chain is
// running. It returns false when the hold cannot begin.
func (s *System) BeginHold(c core.Cell, pressed func() bool) bool {
	if s.state != Idle || !s.IsMarked(c) {
		return false
	}
	if s.hold != nil && !s.hold.Done() {
		return false
	}

	elapsed := time.Duration(0)
	s.emit(Event{Kind: EventHoldStarted, Cell: c})
	s.hold = s.sched.Spawn("hold", sched.Func(func(dt time.Duration) bool {
		if !pressed() {
			s.emit(Event{Kind: EventHoldCancelled, Cell: c})
			s.logger.Debug("hold released early", "cell", c, "held", elapsed)
			return true
		}
		elapsed += dt
		if elapsed < s.cfg.HoldConfirm {
			return false
		}
		if s.state == Idle && s.IsMarked(c) {
			s.TriggerChain(c)
		}
		return true
	}))
	return true
}

// HoldPending reports whether a hold confirmation is in progress.
func (s *System) HoldPending() bool {
	return s.hold != nil && !s.hold.Done()
}
