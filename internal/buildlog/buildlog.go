// Package buildlog persists build history so idempotence checks and the
// status output can compare against earlier runs.
package buildlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Mode distinguishes production builds from draft-inclusive ones.
type Mode string

const (
	ModeProduction Mode = "production"
	ModeDraft      Mode = "draft"
)

// Record is one completed (or failed) build.
type Record struct {
	ID        int64
	StartedAt time.Time
	Duration  time.Duration
	Mode      Mode
	Posts     int
	SiteHash  string
	Outcome   string // "success" or "failure"
	Error     string
}

// ErrNoBuilds indicates the log has no matching build yet.
var ErrNoBuilds = errors.New("no builds recorded")

// Store is a SQLite-backed build log. Use ":memory:" for tests.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and initializes) the build log at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open build log: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize build log schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		mode TEXT NOT NULL,
		posts INTEGER NOT NULL,
		site_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_mode ON builds(mode);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a build to the log and returns its id.
func (s *Store) Record(ctx context.Context, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (started_at, duration_ms, mode, posts, site_hash, outcome, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.StartedAt.Unix(), rec.Duration.Milliseconds(), string(rec.Mode), rec.Posts, rec.SiteHash, rec.Outcome, rec.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("insert build record: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest n builds, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, duration_ms, mode, posts, site_hash, outcome, COALESCE(error, '') FROM builds ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// LastSuccessful returns the most recent successful build in the given mode.
func (s *Store) LastSuccessful(ctx context.Context, mode Mode) (*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, duration_ms, mode, posts, site_hash, outcome, COALESCE(error, '') FROM builds WHERE mode = ? AND outcome = 'success' ORDER BY id DESC LIMIT 1",
		string(mode))
	if err != nil {
		return nil, fmt.Errorf("query last successful build: %w", err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoBuilds
	}
	return &recs[0], nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		var startedUnix, durationMS int64
		var mode string
		if err := rows.Scan(&rec.ID, &startedUnix, &durationMS, &mode, &rec.Posts, &rec.SiteHash, &rec.Outcome, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		rec.StartedAt = time.Unix(startedUnix, 0).UTC()
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.Mode = Mode(mode)
		out = append(out, rec)
	}
	return out, rows.Err()
}
