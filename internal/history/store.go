// Package history keeps a DuckDB-backed log of proxied invocations so
// operators can inspect what the proxy has been asked and how each call
// ended. The log is optional; the proxy runs without it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Invocation is one recorded proxy call. Outcome is "ok" or the failure
// kind; Detail carries the (already truncated) diagnostic text.
type Invocation struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Endpoint   string    `json:"endpoint"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Outcome    string    `json:"outcome"`
	DurationMS int64     `json:"duration_ms"`
	Detail     string    `json:"detail,omitempty"`
}

// Store records and serves invocation rows. database/sql serializes access;
// the store needs no locking of its own.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the DuckDB file at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one invocation row.
func (s *Store) Record(ctx context.Context, inv Invocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (id, created_at, endpoint, provider, model, outcome, duration_ms, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CreatedAt, inv.Endpoint, inv.Provider, inv.Model, inv.Outcome, inv.DurationMS, inv.Detail)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// Recent returns the newest rows, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, endpoint, provider, model, outcome, duration_ms, detail
		 FROM invocations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		if err := rows.Scan(&inv.ID, &inv.CreatedAt, &inv.Endpoint, &inv.Provider, &inv.Model, &inv.Outcome, &inv.DurationMS, &inv.Detail); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
