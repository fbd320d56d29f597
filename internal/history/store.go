// Package history handles SQLite persistence of validation run summaries.
// The engine itself stays stateless; history is an outer concern and only
// summary numbers are stored, never prompt or output text.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run is one recorded validation run.
type Run struct {
	ID             int64
	CreatedAt      time.Time
	Source         string // validate, check, batch
	Score          int
	Passed         bool
	FailedCount    int
	AssertionCount int
	Threshold      float64
	OutputChars    int
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			score INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			failed_count INTEGER NOT NULL,
			assertion_count INTEGER NOT NULL,
			threshold REAL NOT NULL,
			output_chars INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed validation run summary.
func (s *Store) InsertRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, source, score, passed, failed_count, assertion_count, threshold, output_chars)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Source,
		run.Score,
		boolToInt(run.Passed),
		run.FailedCount,
		run.AssertionCount,
		run.Threshold,
		run.OutputChars,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, score, passed, failed_count, assertion_count, threshold, output_chars
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var passed int
		if err := rows.Scan(&run.ID, &createdAt, &run.Source, &run.Score, &passed,
			&run.FailedCount, &run.AssertionCount, &run.Threshold, &run.OutputChars); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = parsed
		run.Passed = passed != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
