// Package metrics exposes Prometheus instrumentation for the engine and
// a small HTTP router serving it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/little-wizard/internal/felling"
	"github.com/vovakirdan/little-wizard/internal/gesture"
	"github.com/vovakirdan/little-wizard/internal/pathfind"
)

// Labels are bounded: gesture kinds, felling event kinds, found/missing.
var (
	pathSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_path_searches_total",
		Help: "A* searches by outcome",
	}, []string{"result"}) // "found", "unreachable"

	pathExpanded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_path_expanded_nodes",
		Help:    "Nodes expanded per A* search",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	pathDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_path_search_duration_seconds",
		Help:    "Time spent in one A* search",
		Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	gestures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_gestures_total",
		Help: "Classified gestures by kind",
	}, []string{"kind"})

	fellingEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_felling_events_total",
		Help: "Felling system events by kind",
	}, []string{"kind"})

	chainLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_chain_length_trees",
		Help:    "Trees felled per chain reaction",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_tick_duration_seconds",
		Help:    "Time spent in one game step",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wizard_sessions_active",
		Help: "Currently running game sessions",
	})
)

// ObservePathSearch records one pathfinder search. It matches the
// pathfind.Pathfinder OnSearch hook.
func ObservePathSearch(s pathfind.SearchStats) {
	result := "found"
	if !s.Found {
		result = "unreachable"
	}
	pathSearches.WithLabelValues(result).Inc()
	pathExpanded.Observe(float64(s.Expanded))
	pathDuration.Observe(s.Elapsed.Seconds())
}

// ObserveGesture counts a classified gesture. None is ignored.
func ObserveGesture(k gesture.Kind) {
	if k == gesture.None {
		return
	}
	gestures.WithLabelValues(k.String()).Inc()
}

// ObserveFelling counts a felling event and records chain lengths.
func ObserveFelling(e felling.Event) {
	fellingEvents.WithLabelValues(e.Kind.String()).Inc()
	if e.Kind == felling.EventChainFinished {
		chainLength.Observe(float64(e.Count))
	}
}

// ObserveTick records how long a game step took.
func ObserveTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// SessionStarted increments the active session gauge.
func SessionStarted() {
	sessionsActive.Inc()
}

// SessionEnded decrements the active session gauge.
func SessionEnded() {
	sessionsActive.Dec()
}
