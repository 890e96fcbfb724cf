// Package usagelog persists one row per endpoint call to an append-only
// Postgres table. Best-effort instrumentation: writes happen off the request
// path and failures are logged, never surfaced.
package usagelog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS usage_log (
    id        BIGSERIAL PRIMARY KEY,
    endpoint  TEXT NOT NULL,
    payload   TEXT,
    ts        TIMESTAMPTZ NOT NULL
)`

const insertSQL = `INSERT INTO usage_log (endpoint, payload, ts) VALUES ($1, $2, $3)`

// Store writes usage rows. A nil pool disables the store entirely.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a usage-log store. Pass a nil pool to create a no-op store.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// Record appends one usage row, fire-and-forget. The table is created lazily
// on write, so a missing schema never breaks a fresh deployment.
func (s *Store) Record(endpoint, payload string) {
	if s == nil || s.pool == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
			s.logger.Warn("usage log table create failed", "error", err)
			return
		}
		if _, err := s.pool.Exec(ctx, insertSQL, endpoint, payload, time.Now().UTC()); err != nil {
			s.logger.Warn("usage log write failed", "endpoint", endpoint, "error", err)
		}
	}()
}
