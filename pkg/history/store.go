// Package history persists execution results so the console can show what ran
// before. The store is an optional affordance: a nil *Store is a no-op.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cmccomb/pastrami/pkg/session"
)

// Entry is one recorded execution.
type Entry struct {
	RequestID string    `json:"requestId"`
	Mode      string    `json:"mode"`
	Script    string    `json:"script"`
	Outcome   string    `json:"outcome"`
	Output    []string  `json:"output,omitempty"`
	Value     string    `json:"value,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store records executions in a sqlite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	request_id TEXT PRIMARY KEY,
	mode       TEXT NOT NULL,
	script     TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	output     TEXT NOT NULL DEFAULT '',
	value      TEXT NOT NULL DEFAULT '',
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_executions_created_at ON executions(created_at);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores one execution result. Output lines are stored newline-joined;
// scripts that print embedded newlines round-trip as extra lines, which is
// acceptable for a history view.
func (s *Store) Record(script string, result session.ExecutionResult, mode session.Mode) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO executions (request_id, mode, script, outcome, output, value, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RequestID,
		string(mode),
		script,
		string(result.Outcome),
		strings.Join(result.Output, "\n"),
		result.Value,
		result.ErrorMessage,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record execution: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT request_id, mode, script, outcome, output, value, error, created_at
		 FROM executions ORDER BY created_at DESC, request_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var output string
		if err := rows.Scan(&e.RequestID, &e.Mode, &e.Script, &e.Outcome, &output, &e.Value, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if output != "" {
			e.Output = strings.Split(output, "\n")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
