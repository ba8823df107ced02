// Package storage keeps a local append-only journal of every processed
// line: what came in, what the pipeline decided, and whether the ledger
// write succeeded. The journal is an audit trail, not a source of truth;
// the external sheet store remains authoritative.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

// Entry is one journaled line outcome.
type Entry struct {
	ID         int64
	RecordedAt time.Time
	ChatID     string
	Sender     string
	Line       string
	Outcome    string
	Success    bool
}

func Open(dbPath string) (*Journal, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends one outcome row. Rows are never updated or deleted.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	const q = `INSERT INTO entries (recorded_at, chat_id, sender, line, outcome, success)
	           VALUES (?, ?, ?, ?, ?, ?)`
	when := e.RecordedAt
	if when.IsZero() {
		when = time.Now()
	}
	_, err := j.db.ExecContext(ctx, q,
		when.UTC().Format(time.RFC3339), e.ChatID, e.Sender, e.Line, e.Outcome, boolToInt(e.Success))
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	const q = `SELECT id, recorded_at, chat_id, sender, line, outcome, success
	           FROM entries ORDER BY id DESC LIMIT ?`
	rows, err := j.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		var success int
		if err := rows.Scan(&e.ID, &recordedAt, &e.ChatID, &e.Sender, &e.Line, &e.Outcome, &success); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		e.Success = success != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
