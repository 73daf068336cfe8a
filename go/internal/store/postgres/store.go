// Package postgres is the runtime Entity Store backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mcdev12/pitchside/go/internal/sqlutil"
	"github.com/mcdev12/pitchside/go/internal/store"
)

// leagueLockKey is the advisory lock serializing every unit of work.
const leagueLockKey int64 = 0x6c65616775650001

// Store is a store.Store on a *sql.DB opened with the lib/pq driver
type Store struct {
	db *sql.DB
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return New(db), nil
}

// New wraps an existing connection pool
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the pool for migrations and health checks
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	return sqlutil.Run(ctx, s.db, nil, newQueries, func(q *queries) error {
		if _, err := q.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, leagueLockKey); err != nil {
			return fmt.Errorf("acquire league lock: %w", err)
		}
		return fn(ctx, q)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type queries struct {
	tx *sql.Tx
}

func newQueries(tx *sql.Tx) *queries {
	return &queries{tx: tx}
}

var _ store.Tx = (*queries)(nil)

// mapErr translates driver errors into store sentinels
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, store.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%s: %w", what, store.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// requireOne returns ErrNotFound when an UPDATE or DELETE touched no rows
func requireOne(res sql.Result, err error, what string) error {
	if err != nil {
		return mapErr(err, what)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, store.ErrNotFound)
	}
	return nil
}

func (q *queries) Purge(ctx context.Context) error {
	_, err := q.tx.ExecContext(ctx, `
		TRUNCATE fixture_postings, matches, pending_demands, pending_offers, settings,
			referees, assistant_managers, memberships, players, teams`)
	return mapErr(err, "purge")
}
