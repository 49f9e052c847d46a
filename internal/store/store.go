// Package store persists the model request log in SQLite. The log is
// diagnostic data: every model call's provider, purpose, latency, and
// token counts, queryable from the CLI.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aturs3001/ai-math-tutor/internal/llm"
)

const schema = `
CREATE TABLE IF NOT EXISTS llm_requests (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	provider      TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	purpose       TEXT    NOT NULL DEFAULT '',
	latency_ms    INTEGER NOT NULL,
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	success       INTEGER NOT NULL,
	error_message TEXT    NOT NULL DEFAULT '',
	at            TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_llm_requests_at ON llm_requests (at);
`

// Store wraps the SQLite database holding the request log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the request-log database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening request log: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing request log schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendRequest records one completed model call. Implements
// llm.RequestLog.
func (s *Store) AppendRequest(ctx context.Context, rec llm.RequestRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, latency_ms, input_tokens, output_tokens, success, error_message, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Provider, rec.Model, rec.Purpose, rec.LatencyMs,
		rec.InputTokens, rec.OutputTokens, rec.Success, rec.ErrorMessage,
		rec.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending request record: %w", err)
	}
	return nil
}

// Recent returns the n most recent request records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]llm.RequestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider, model, purpose, latency_ms, input_tokens, output_tokens, success, error_message, at
		FROM llm_requests
		ORDER BY id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying request log: %w", err)
	}
	defer rows.Close()

	var out []llm.RequestRecord
	for rows.Next() {
		var rec llm.RequestRecord
		var at string
		if err := rows.Scan(
			&rec.Provider, &rec.Model, &rec.Purpose, &rec.LatencyMs,
			&rec.InputTokens, &rec.OutputTokens, &rec.Success, &rec.ErrorMessage, &at,
		); err != nil {
			return nil, fmt.Errorf("scanning request record: %w", err)
		}
		rec.At, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, rec)
	}
	return out, rows.Err()
}
