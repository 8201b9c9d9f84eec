// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/laser-maze/internal/engine"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one persisted run record.
type RunEntry struct {
	ID                  int64
	PlayerName          string
	ElapsedMs           int64
	TriggeredCount      int
	MaxTouches          int
	ReactivateEnabled   bool
	ReactivationSeconds float64
	Outcome             engine.Outcome
	CreatedAt           time.Time
}

// Record converts the entry back to the engine's record type.
func (e RunEntry) Record() engine.RunRecord {
	return engine.RunRecord{
		PlayerName:          e.PlayerName,
		ElapsedMs:           e.ElapsedMs,
		TriggeredCount:      e.TriggeredCount,
		MaxTouches:          e.MaxTouches,
		ReactivateEnabled:   e.ReactivateEnabled,
		ReactivationSeconds: e.ReactivationSeconds,
		Outcome:             e.Outcome,
		RecordedAt:          e.CreatedAt,
	}
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			triggered_count INTEGER NOT NULL,
			max_touches INTEGER NOT NULL,
			reactivate_enabled INTEGER NOT NULL,
			reactivation_seconds REAL NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome, triggered_count, elapsed_ms);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun appends a committed run record. Implements engine.RunSink.
func (s *Store) SaveRun(rec engine.RunRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (player_name, elapsed_ms, triggered_count, max_touches, reactivate_enabled, reactivation_seconds, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.PlayerName,
		rec.ElapsedMs,
		rec.TriggeredCount,
		rec.MaxTouches,
		boolToInt(rec.ReactivateEnabled),
		rec.ReactivationSeconds,
		rec.Outcome.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// Ensure Store implements engine.RunSink
var _ engine.RunSink = (*Store)(nil)

// Runs retrieves the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player_name, elapsed_ms, triggered_count, max_touches,
		        reactivate_enabled, reactivation_seconds, outcome, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		entry, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestRun returns the best recorded run: a success with the fewest touches,
// fastest among those. Returns nil if no successful run exists.
func (s *Store) BestRun() (*RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, player_name, elapsed_ms, triggered_count, max_touches,
		        reactivate_enabled, reactivation_seconds, outcome, created_at
		 FROM runs
		 WHERE outcome = 'success'
		 ORDER BY triggered_count ASC, elapsed_ms ASC
		 LIMIT 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: row iteration error: %w", err)
		}
		return nil, nil
	}
	entry, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteAll wipes every stored run.
func (s *Store) DeleteAll() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	return nil
}

// Count returns the number of stored runs.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

func scanRun(rows *sql.Rows) (RunEntry, error) {
	var e RunEntry
	var reactivate int
	var outcome string
	var createdAt any

	if err := rows.Scan(
		&e.ID,
		&e.PlayerName,
		&e.ElapsedMs,
		&e.TriggeredCount,
		&e.MaxTouches,
		&reactivate,
		&e.ReactivationSeconds,
		&outcome,
		&createdAt,
	); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	e.ReactivateEnabled = reactivate != 0
	e.Outcome = engine.ParseOutcome(outcome)

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}

	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
