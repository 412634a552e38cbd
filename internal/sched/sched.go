// Package sched runs cooperative, frame-driven tasks. Each task advances a
// little on every Tick and reports when it has finished, so delays and
// waits are expressed without goroutines or locks.
package sched

import (
	"time"

	"github.com/charmbracelet/log"
)

// Task is a resumable unit of work. Step advances it by dt and returns
// true once it has finished.
type Task interface {
	Step(dt time.Duration) bool
}

// Func adapts a plain function to a Task.
type Func func(dt time.Duration) bool

// Step implements Task.
func (f Func) Step(dt time.Duration) bool {
	return f(dt)
}

// Handle tracks a spawned task.
type Handle struct {
	name      string
	task      Task
	finished  bool
	cancelled bool
}

// Name returns the name given at spawn time.
func (h *Handle) Name() string {
	return h.name
}

// Cancel stops the task before its next step. Cancelling a finished task
// has no effect.
func (h *Handle) Cancel() {
	if !h.finished {
		h.cancelled = true
	}
}

// Cancelled reports whether the task was cancelled.
func (h *Handle) Cancelled() bool {
	return h.cancelled
}

// Done reports whether the task finished or was cancelled.
func (h *Handle) Done() bool {
	return h.finished || h.cancelled
}

// Scheduler owns the running tasks.
type Scheduler struct {
	running []*Handle
	pending []*Handle
	ticking bool
	now     time.Duration
	logger  *log.Logger
}

// New creates a scheduler. A nil logger uses the default logger.
func New(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default().WithPrefix("sched")
	}
	return &Scheduler{logger: logger}
}

// Spawn registers a task. It takes its first step on the next Tick.
func (s *Scheduler) Spawn(name string, t Task) *Handle {
	h := &Handle{name: name, task: t}
	s.pending = append(s.pending, h)
	s.logger.Debug("spawn", "task", name, "at", s.now)
	return h
}

// Tick advances every running task by dt. Tasks spawned while ticking wait
// for the following Tick.
func (s *Scheduler) Tick(dt time.Duration) {
	if s.ticking {
		return
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	s.now += dt
	s.running = append(s.running, s.pending...)
	s.pending = nil

	live := s.running[:0]
	for _, h := range s.running {
		if h.cancelled {
			s.logger.Debug("cancelled", "task", h.name, "at", s.now)
			continue
		}
		if h.task.Step(dt) {
			h.finished = true
			s.logger.Debug("finished", "task", h.name, "at", s.now)
			continue
		}
		// The step itself may have cancelled the handle.
		if h.cancelled {
			continue
		}
		live = append(live, h)
	}
	for i := len(live); i < len(s.running); i++ {
		s.running[i] = nil
	}
	s.running = live
}

// Len returns the number of running and pending tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, h := range s.running {
		if !h.Done() {
			n++
		}
	}
	for _, h := range s.pending {
		if !h.Done() {
			n++
		}
	}
	return n
}

// Now returns the total time ticked so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// CancelAll cancels every running and pending task.
func (s *Scheduler) CancelAll() {
	for _, h := range s.running {
		h.Cancel()
	}
	for _, h := range s.pending {
		h.Cancel()
	}
}
