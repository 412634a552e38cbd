package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/felling"
	"github.com/vovakirdan/little-wizard/internal/gesture"
	"github.com/vovakirdan/little-wizard/internal/pathfind"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRouterEndpoints(t *testing.T) {
	ObservePathSearch(pathfind.SearchStats{Expanded: 12, Found: true, Length: 5, Elapsed: time.Millisecond})
	ObservePathSearch(pathfind.SearchStats{Expanded: 40})
	ObserveGesture(gesture.SwipeLeft)
	ObserveGesture(gesture.None)
	ObserveFelling(felling.Event{Kind: felling.EventChainFinished, Count: 4})
	ObserveTick(2 * time.Millisecond)
	SessionStarted()
	defer SessionEnded()

	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	code, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `wizard_path_searches_total{result="found"}`)
	assert.Contains(t, body, `wizard_path_searches_total{result="unreachable"}`)
	assert.Contains(t, body, `wizard_gestures_total{kind="SwipeLeft"}`)
	assert.NotContains(t, body, `wizard_gestures_total{kind="None"}`)
	assert.Contains(t, body, `wizard_felling_events_total{kind="chain_finished"}`)
	assert.Contains(t, body, "wizard_chain_length_trees_count")
	assert.Contains(t, body, "wizard_sessions_active 1")

	code, _ = get(t, srv, "/maps")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, srv, "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}
