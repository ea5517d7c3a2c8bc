// Package repo contains all database access logic for the ELD Dashboard API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DayLogRepo defines the key-value persistence operations for day-log
// snapshots. Keys follow domain.LogKey ("driver-logs-<YYYY-MM-DD>"); values
// are the serialized snapshot bytes. The repo stores payloads opaquely —
// parsing and shape validation belong to the domain layer.
type DayLogRepo interface {
	// Load returns the snapshot stored under key.
	// Returns domain.ErrNotFound when no snapshot exists for that key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save upserts the snapshot under key, fully overwriting any prior
	// value for the same key (last write wins).
	Save(ctx context.Context, key string, payload []byte) error
}

// pgDayLogRepo is the Postgres implementation of DayLogRepo.
type pgDayLogRepo struct {
	db db
}

// NewDayLogRepo constructs a DayLogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDayLogRepo(db db) DayLogRepo {
	return &pgDayLogRepo{db: db}
}

func (r *pgDayLogRepo) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT payload FROM driver_logs WHERE key = $1`

	var payload []byte
	if err := r.db.QueryRow(ctx, q, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.DayLogRepo.Load %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.DayLogRepo.Load %q: %w", key, err)
	}
	return payload, nil
}

func (r *pgDayLogRepo) Save(ctx context.Context, key string, payload []byte) error {
	const q = `
		INSERT INTO driver_logs (key, payload)
		VALUES (@key, @payload)
		ON CONFLICT (key) DO UPDATE
		SET payload = excluded.payload, updated_at = now()`

	args := pgx.NamedArgs{
		"key":     key,
		"payload": payload,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.DayLogRepo.Save %q: %w", key, err)
	}
	return nil
}
