// Package postgres provides a Postgres-backed water log store with the same
// contract as the SQLite store. It suits a hosted database shared between
// devices.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/sadopc/aquatrack/internal/store"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/aquatrack?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const ddl = `
CREATE TABLE IF NOT EXISTS water_logs (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	amount_ml   INTEGER NOT NULL CHECK (amount_ml > 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_logs_created ON water_logs(created_at);
CREATE TABLE IF NOT EXISTS profiles (
	id             SERIAL PRIMARY KEY,
	daily_goal_ml  INTEGER NOT NULL CHECK (daily_goal_ml > 0)
)`

// Store persists water logs to Postgres.
type Store struct {
	db *sql.DB
}

// New opens a Postgres store using dsn (falls back to defaultDSN), pings it
// and applies the schema.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) InsertLog(ctx context.Context, amountML int) (*store.LogEntry, error) {
	if amountML <= 0 {
		return nil, fmt.Errorf("insert log: amount must be positive, got %d", amountML)
	}
	e := &store.LogEntry{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO water_logs (amount_ml) VALUES ($1) RETURNING id::text, amount_ml, created_at`,
		amountML,
	).Scan(&e.ID, &e.AmountML, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	return e, nil
}

func (s *Store) ListLogs(ctx context.Context, since time.Time) ([]store.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id::text, amount_ml, created_at FROM water_logs
		 WHERE created_at >= $1
		 ORDER BY created_at DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []store.LogEntry
	for rows.Next() {
		var e store.LogEntry
		if err := rows.Scan(&e.ID, &e.AmountML, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteLog removes a single entry. Ids that are not UUIDs cannot name a
// row and return store.ErrNotFound without a round trip.
func (s *Store) DeleteLog(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete log %s: %w", id, store.ErrNotFound)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM water_logs WHERE id = $1::uuid`, id); err != nil {
		return fmt.Errorf("delete log %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteLogsSince(ctx context.Context, since time.Time) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM water_logs WHERE created_at >= $1`, since); err != nil {
		return fmt.Errorf("delete logs: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context) (*store.Profile, error) {
	p := &store.Profile{}
	err := s.db.QueryRowContext(ctx,
		`SELECT daily_goal_ml FROM profiles ORDER BY id LIMIT 1`,
	).Scan(&p.DailyGoalML)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p store.Profile) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET daily_goal_ml = $1 WHERE id = (SELECT MIN(id) FROM profiles)`,
		p.DailyGoalML,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO profiles (daily_goal_ml) VALUES ($1)`, p.DailyGoalML); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
