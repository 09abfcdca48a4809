// Package sqlitestore provides a single-file SQLite store for versioned extraction records,
// for CLI and single-host use where running PostgreSQL is not worth it.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-entities/internal/feedback"
)

const busyTimeoutMs = 10_000

const schema = `
CREATE TABLE IF NOT EXISTS extraction_records (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	version     INTEGER NOT NULL CHECK (version > 0),
	data        TEXT NOT NULL,
	analysis    TEXT,
	created_at  TEXT NOT NULL,
	UNIQUE (document_id, version)
)`

// Store is a feedback.Store backed by SQLite.
type Store struct {
	db      *sql.DB
	retries int
}

var _ feedback.Store = (*Store)(nil)

// Open opens or creates the database at path and applies the schema. Parent directories
// are created as needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlitestore: mkdir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: exec schema: %w", err)
	}

	return &Store{db: db, retries: feedback.DefaultVersionRetries}, nil
}

// dsn sets the pragmas on every pooled connection rather than on whichever connection
// happens to run a PRAGMA statement.
func dsn(path string) string {
	pragmas := []string{
		"foreign_keys(1)",
		"journal_mode(WAL)",
		fmt.Sprintf("busy_timeout(%d)", busyTimeoutMs),
		"synchronous(NORMAL)",
	}
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetVersionRetries sets how many times CreateRecord retries a lost version race or a busy
// database.
func (s *Store) SetVersionRetries(n int) {
	if n > 0 {
		s.retries = n
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

// isBusy reports whether err indicates an SQLite BUSY condition.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
