package tui

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/felling"
	"github.com/vovakirdan/little-wizard/internal/game"
	"github.com/vovakirdan/little-wizard/internal/metrics"
	"github.com/vovakirdan/little-wizard/internal/storage"
)

// playSession is one recorded run of a map. Model copies share it, so the
// run is closed at most once whichever copy ends it.
type playSession struct {
	store  *storage.Store
	game   *game.Game
	logger *log.Logger
	id     string
	live   bool
}

// startPlaySession opens a session row. store may be nil.
func startPlaySession(store *storage.Store, g *game.Game, logger *log.Logger) *playSession {
	metrics.SessionStarted()
	ps := &playSession{store: store, game: g, logger: logger, live: true}
	if store == nil {
		return ps
	}
	id, err := store.StartSession(g.MapID())
	if err != nil {
		logger.Warn("could not start session", "map", g.MapID(), "err", err)
		return ps
	}
	ps.id = id
	return ps
}

// record persists felled trees.
func (ps *playSession) record(events []felling.Event) {
	if ps.store == nil || ps.id == "" {
		return
	}
	for _, e := range events {
		if e.Kind != felling.EventFelled {
			continue
		}
		if err := ps.store.RecordFelled(ps.id, e.Cell, e.Dir, e.Chain); err != nil {
			ps.logger.Warn("could not record felled tree", "cell", e.Cell, "err", err)
		}
	}
}

// end stores the final stats. Later calls do nothing.
func (ps *playSession) end() {
	if !ps.live {
		return
	}
	ps.live = false
	metrics.SessionEnded()
	if ps.store == nil || ps.id == "" {
		return
	}
	st := ps.game.Stats()
	err := ps.store.EndSession(ps.id, storage.SessionStats{
		Felled:       st.Felled,
		Chains:       st.Chains,
		LongestChain: st.LongestChain,
		Chopped:      st.Chopped,
	})
	if err != nil {
		ps.logger.Warn("could not end session", "id", ps.id, "err", err)
	}
}

// sessionSlot holds the latest play session of one SSH connection so it
// can be closed when the connection goes away without a clean quit.
type sessionSlot struct {
	mu  sync.Mutex
	cur *playSession
}

func (s *sessionSlot) set(ps *playSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = ps
}

func (s *sessionSlot) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil {
		s.cur.end()
		s.cur = nil
	}
}
