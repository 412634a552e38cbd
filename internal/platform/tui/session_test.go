package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/config"
	"github.com/vovakirdan/little-wizard/internal/game"
	"github.com/vovakirdan/little-wizard/internal/storage"
)

func activeSessions(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "wizard_sessions_active" {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("wizard_sessions_active not registered")
	return 0
}

func openSlotModel(t *testing.T) (Model, *sessionSlot, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "wizard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	logger := log.New(io.Discard)
	g, err := game.New(openMap{}, cfg, 1, game.WithLogger(logger))
	require.NoError(t, err)

	slot := &sessionSlot{}
	m := NewModel(g, store, cfg, 40, 12, logger)
	m.slot = slot
	slot.set(m.session)
	return m, slot, store
}

func TestSlotClosesDroppedSession(t *testing.T) {
	before := activeSessions(t)
	m, slot, store := openSlotModel(t)
	id := m.session.id
	require.NotEmpty(t, id)
	assert.Equal(t, before+1, activeSessions(t))

	// The connection drops while the game is still running.
	slot.close()

	s, err := store.Session(id)
	require.NoError(t, err)
	assert.False(t, s.EndedAt.IsZero())
	assert.Equal(t, before, activeSessions(t))

	slot.close()
	assert.Equal(t, before, activeSessions(t))
}

func TestSlotFollowsRestart(t *testing.T) {
	before := activeSessions(t)
	m, slot, store := openSlotModel(t)
	first := m.session.id

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	second := model.(Model).session.id
	require.NotEqual(t, first, second)
	assert.Equal(t, before+1, activeSessions(t))

	slot.close()

	for _, id := range []string{first, second} {
		s, err := store.Session(id)
		require.NoError(t, err)
		assert.False(t, s.EndedAt.IsZero(), "session %s left open", id)
	}
	assert.Equal(t, before, activeSessions(t))
}

func TestSlotAfterCleanQuit(t *testing.T) {
	before := activeSessions(t)
	m, slot, _ := openSlotModel(t)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.True(t, model.(Model).IsQuitting())
	assert.Equal(t, before, activeSessions(t))

	slot.close()
	assert.Equal(t, before, activeSessions(t), "quit already closed the session")
}
