package felling

import "github.com/vovakirdan/little-wizard/internal/core"

// EventKind identifies what happened.
type EventKind int

const (
	EventMarked EventKind = iota
	EventUnmarked
	EventFelled
	EventChainStarted
	EventChainFinished
	EventChopped
	EventMarkAborted
	EventHoldStarted
	EventHoldCancelled
)

var eventNames = [...]string{
	EventMarked:        "marked",
	EventUnmarked:      "unmarked",
	EventFelled:        "felled",
	EventChainStarted:  "chain_started",
	EventChainFinished: "chain_finished",
	EventChopped:       "chopped",
	EventMarkAborted:   "mark_aborted",
	EventHoldStarted:   "hold_started",
	EventHoldCancelled: "hold_cancelled",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one outcome produced by the system.
type Event struct {
	Kind   EventKind
	Cell   core.Cell
	Dir    core.Dir
	Height int
	// Chain numbers the chain a Felled/ChainStarted/ChainFinished event
	// belongs to. Zero for trees felled by chopping.
	Chain int
	// Count is the number of trees felled for ChainFinished and the
	// remaining health for Chopped.
	Count int
}

func (s *System) emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns the buffered events and clears the buffer.
func (s *System) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}
