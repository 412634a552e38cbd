package felling

import (
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/sched"
)

// TriggerChain fells the marked tree at start and schedules the trees it
// reaches, one per ChainStepDelay. It does nothing and returns false while
// another chain runs or when start is not marked.
func (s *System) TriggerChain(start core.Cell) bool {
	if s.state != Idle {
		return false
	}
	first, ok := s.marks[start]
	if !ok {
		return false
	}

	s.state = Running
	s.chains++
	task := &chainTask{
		sys:    s,
		id:     s.chains,
		queue:  queue.New[core.Cell](),
		queued: mapset.New[core.Cell](),
	}
	task.queued.Put(start)

	s.emit(Event{Kind: EventChainStarted, Cell: start, Dir: first.Dir, Chain: task.id})
	s.logger.Info("chain started", "chain", task.id, "cell", start, "dir", first.Dir)

	task.topple(first)
	s.chain = s.sched.Spawn(fmt.Sprintf("chain-%d", task.id), task)
	return true
}

// chainTask walks the breadth-first queue of reachable cells.
type chainTask struct {
	sys    *System
	id     int
	queue  *queue.Queue[core.Cell]
	queued mapset.Set[core.Cell]
	delay  sched.Delay
	felled int
}

func (t *chainTask) Step(dt time.Duration) bool {
	if t.delay.Waiting(dt) {
		return false
	}
	for !t.queue.Empty() {
		c := t.queue.Dequeue()
		tree, ok := t.sys.marks[c]
		if !ok {
			continue
		}
		t.topple(tree)
		return false
	}
	t.finish()
	return true
}

// topple fells one tree, enqueues what it reaches and arms the delay.
func (t *chainTask) topple(tree Tree) {
	t.sys.fell(tree, t.id)
	t.felled++

	for _, cand := range t.sys.prop.Spread(tree) {
		if t.queued.Has(cand.Cell) {
			continue
		}
		if cand.Dir != core.DirNone && !t.sys.IsMarked(cand.Cell) {
			if !t.sys.MarkForFelling(cand.Cell, cand.Dir) {
				continue
			}
		}
		t.queued.Put(cand.Cell)
		t.queue.Enqueue(cand.Cell)
	}
	t.delay.Start(t.sys.cfg.ChainStepDelay)
}

func (t *chainTask) finish() {
	t.sys.state = Idle
	t.sys.chain = nil
	t.sys.emit(Event{Kind: EventChainFinished, Chain: t.id, Count: t.felled})
	t.sys.logger.Info("chain finished", "chain", t.id, "felled", t.felled)
}
