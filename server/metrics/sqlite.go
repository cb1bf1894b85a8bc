// Package metrics stores hand telemetry snapshots in SQLite.
package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	_ "modernc.org/sqlite"
)

// SQLiteSink appends one row per display state for every published snapshot.
type SQLiteSink struct {
	mu        sync.Mutex
	db        *sql.DB
	sessionID string
}

// OpenSQLite opens (or creates) the metrics database at path. Use ":memory:"
// for a throwaway store.
func OpenSQLite(path, sessionID string) (*SQLiteSink, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteSink{db: db, sessionID: sessionID}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS hand_states (
			session TEXT NOT NULL,
			tick INTEGER NOT NULL,
			state TEXT NOT NULL,
			hands INTEGER NOT NULL,
			current_count INTEGER NOT NULL,
			window_count INTEGER NOT NULL,
			total_count INTEGER NOT NULL,
			PRIMARY KEY (session, tick, state)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// PublishTelemetry implements systems.TelemetrySink.
func (s *SQLiteSink) PublishTelemetry(snap components.TelemetrySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO hand_states
		(session, tick, state, hands, current_count, window_count, total_count) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for st := cfg.LegacyDisplayState(0); st < cfg.LegacyStateCount; st++ {
		if _, err := stmt.Exec(s.sessionID, int64(snap.Tick), st.String(), snap.Hands,
			snap.Current[st], snap.Window[st], int64(snap.Totals[st])); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", st, err)
		}
	}
	return tx.Commit()
}

// WindowCounts returns the rolling counts stored for a tick, keyed by state
// name.
func (s *SQLiteSink) WindowCounts(tick uint64) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT state, window_count FROM hand_states WHERE session = ? AND tick = ?`,
		s.sessionID, int64(tick))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		out[state] = n
	}
	return out, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
