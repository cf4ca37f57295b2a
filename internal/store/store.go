// Package store keeps the run history in SQLite.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Memory opens a private in-memory database.
const Memory = ":memory:"

// timeLayout is fixed width so finished_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one finished run.
type Run struct {
	ID         string
	Gold       int64
	Levels     int
	Duration   time.Duration
	FinishedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, expanding a leading ~, and
// brings the schema up to date.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, eris.Wrap(err, "cannot expand home directory")
		}
		path = filepath.Join(home, path[1:])
	}

	if path != Memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "cannot create directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "cannot open database")
	}
	// One connection keeps an in-memory database alive and serialises writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "cannot connect to database")
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "migration failed")
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			gold INTEGER NOT NULL,
			levels INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			finished_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_gold ON runs(gold DESC);
	`)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun inserts a run. Saving the same id twice fails.
func (s *Store) SaveRun(run Run) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (id, gold, levels, duration_ms, finished_at) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Gold, run.Levels, run.Duration.Milliseconds(), run.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return eris.Wrapf(err, "cannot save run %s", run.ID)
	}
	return nil
}

// LastRun returns the most recently finished run. ok is false when there
// are no runs.
func (s *Store) LastRun() (run Run, ok bool, err error) {
	runs, err := s.query("ORDER BY finished_at DESC LIMIT 1")
	if err != nil || len(runs) == 0 {
		return Run{}, false, err
	}
	return runs[0], true, nil
}

// TopRuns returns up to limit runs with the most gold, newest first on ties.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query("ORDER BY gold DESC, finished_at DESC LIMIT ?", limit)
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query("ORDER BY finished_at DESC LIMIT ?", limit)
}

func (s *Store) query(tail string, args ...any) ([]Run, error) {
	rows, err := s.db.Query("SELECT id, gold, levels, duration_ms, finished_at FROM runs "+tail, args...)
	if err != nil {
		return nil, eris.Wrap(err, "cannot query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			durationMs int64
			finishedAt any
		)
		if err := rows.Scan(&run.ID, &run.Gold, &run.Levels, &durationMs, &finishedAt); err != nil {
			return nil, eris.Wrap(err, "cannot scan run")
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.FinishedAt = parseTime(finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "row iteration error")
	}
	return runs, nil
}

// parseTime accepts what the driver hands back for a DATETIME column.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", time.DateTime} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
