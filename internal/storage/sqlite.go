// Package storage provides SQLite-based persistence for play sessions and
// felled trees. Uses the pure-Go modernc.org/sqlite driver through sqlx.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/little-wizard/internal/core"
)

// ErrNoSession is returned when a session ID is unknown.
var ErrNoSession = errors.New("storage: no such session")

// Store manages the SQLite database connection.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Session is one play-through of a map.
type Session struct {
	ID           string
	MapID        string
	StartedAt    time.Time
	EndedAt      time.Time // Zero while the session is open
	Felled       int
	Chains       int
	LongestChain int
	Chopped      int
}

// Duration returns how long the session lasted, or zero while open.
func (s Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// SessionStats are the totals written when a session ends.
type SessionStats struct {
	Felled       int
	Chains       int
	LongestChain int
	Chopped      int
}

// FelledTree records one tree coming down.
type FelledTree struct {
	SessionID string
	Cell      core.Cell
	Dir       core.Dir
	Chain     int // 0 when chopped
	At        time.Time
}

// MapStats aggregates sessions per map.
type MapStats struct {
	MapID      string
	Sessions   int
	Felled     int
	BestChain  int
	LastPlayed time.Time
}

type sessionRow struct {
	ID           string        `db:"id"`
	MapID        string        `db:"map_id"`
	StartedAt    int64         `db:"started_at"`
	EndedAt      sql.NullInt64 `db:"ended_at"`
	Felled       int           `db:"felled"`
	Chains       int           `db:"chains"`
	LongestChain int           `db:"longest_chain"`
	Chopped      int           `db:"chopped"`
}

func (r sessionRow) toSession() Session {
	s := Session{
		ID:           r.ID,
		MapID:        r.MapID,
		StartedAt:    time.Unix(0, r.StartedAt),
		Felled:       r.Felled,
		Chains:       r.Chains,
		LongestChain: r.LongestChain,
		Chopped:      r.Chopped,
	}
	if r.EndedAt.Valid {
		s.EndedAt = time.Unix(0, r.EndedAt.Int64)
	}
	return s
}

type felledRow struct {
	SessionID string `db:"session_id"`
	X         int    `db:"x"`
	Y         int    `db:"y"`
	Dir       string `db:"dir"`
	Chain     int    `db:"chain"`
	At        int64  `db:"felled_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			map_id TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER,
			felled INTEGER NOT NULL DEFAULT 0,
			chains INTEGER NOT NULL DEFAULT 0,
			longest_chain INTEGER NOT NULL DEFAULT 0,
			chopped INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_map_id ON sessions(map_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_felled ON sessions(felled DESC);

		CREATE TABLE IF NOT EXISTS felled_trees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			dir TEXT NOT NULL,
			chain INTEGER NOT NULL DEFAULT 0,
			felled_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_felled_session ON felled_trees(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession opens a new session on mapID and returns its ID.
func (s *Store) StartSession(mapID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, map_id, started_at) VALUES (?, ?, ?)",
		id, mapID, s.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	return id, nil
}

// EndSession closes a session and stores its totals.
func (s *Store) EndSession(id string, stats SessionStats) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET ended_at = ?, felled = ?, chains = ?, longest_chain = ?, chopped = ?
		 WHERE id = ?`,
		s.now().UnixNano(), stats.Felled, stats.Chains, stats.LongestChain, stats.Chopped, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	return nil
}

// Session loads one session.
func (s *Store) Session(id string) (Session, error) {
	var row sessionRow
	err := s.db.Get(&row, "SELECT * FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return row.toSession(), nil
}

// RecordFelled appends a felled tree to a session.
func (s *Store) RecordFelled(sessionID string, cell core.Cell, dir core.Dir, chainID int) error {
	_, err := s.db.NamedExec(
		`INSERT INTO felled_trees (session_id, x, y, dir, chain, felled_at)
		 VALUES (:session_id, :x, :y, :dir, :chain, :felled_at)`,
		felledRow{
			SessionID: sessionID,
			X:         cell.X,
			Y:         cell.Y,
			Dir:       dir.String(),
			Chain:     chainID,
			At:        s.now().UnixNano(),
		},
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record felled tree: %w", err)
	}
	return nil
}

// SessionFelled returns the trees felled in a session, oldest first.
func (s *Store) SessionFelled(sessionID string) ([]FelledTree, error) {
	var rows []felledRow
	err := s.db.Select(&rows,
		`SELECT session_id, x, y, dir, chain, felled_at
		 FROM felled_trees WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query felled trees: %w", err)
	}
	out := make([]FelledTree, len(rows))
	for i, r := range rows {
		dir, _ := core.ParseDir(r.Dir)
		out[i] = FelledTree{
			SessionID: r.SessionID,
			Cell:      core.C(r.X, r.Y),
			Dir:       dir,
			Chain:     r.Chain,
			At:        time.Unix(0, r.At),
		}
	}
	return out, nil
}

// TotalFelled counts every tree ever felled.
func (s *Store) TotalFelled() (int, error) {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM felled_trees"); err != nil {
		return 0, fmt.Errorf("storage: cannot count felled trees: %w", err)
	}
	return n, nil
}

// TopSessions returns finished sessions ordered by trees felled.
func (s *Store) TopSessions(limit int) ([]Session, error) {
	return s.topSessions("", limit)
}

// TopSessionsForMap is TopSessions restricted to one map.
func (s *Store) TopSessionsForMap(mapID string, limit int) ([]Session, error) {
	return s.topSessions(mapID, limit)
}

func (s *Store) topSessions(mapID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []sessionRow
	err := s.db.Select(&rows,
		`SELECT * FROM sessions
		 WHERE ended_at IS NOT NULL AND (? = '' OR map_id = ?)
		 ORDER BY felled DESC, longest_chain DESC, started_at
		 LIMIT ?`,
		mapID, mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}

	out := make([]Session, len(rows))
	for i, r := range rows {
		out[i] = r.toSession()
	}
	return out, nil
}

// AllMapStats aggregates finished sessions per map, sorted by map ID.
func (s *Store) AllMapStats() ([]MapStats, error) {
	var rows []struct {
		MapID      string `db:"map_id"`
		Sessions   int    `db:"sessions"`
		Felled     int    `db:"felled"`
		BestChain  int    `db:"best_chain"`
		LastPlayed int64  `db:"last_played"`
	}
	err := s.db.Select(&rows,
		`SELECT map_id, COUNT(*) AS sessions, COALESCE(SUM(felled), 0) AS felled,
		        COALESCE(MAX(longest_chain), 0) AS best_chain, MAX(started_at) AS last_played
		 FROM sessions
		 WHERE ended_at IS NOT NULL
		 GROUP BY map_id
		 ORDER BY map_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}

	out := make([]MapStats, len(rows))
	for i, r := range rows {
		out[i] = MapStats{
			MapID:      r.MapID,
			Sessions:   r.Sessions,
			Felled:     r.Felled,
			BestChain:  r.BestChain,
			LastPlayed: time.Unix(0, r.LastPlayed),
		}
	}
	return out, nil
}
