package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsertLog records amountML and returns the stored row. The store assigns
// the id and timestamp.
func (s *Store) InsertLog(ctx context.Context, amountML int) (*LogEntry, error) {
	if amountML <= 0 {
		return nil, fmt.Errorf("insert log: amount must be positive, got %d", amountML)
	}
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO water_logs (id, amount_ml, created_at) VALUES (?, ?, ?)`,
		id, amountML, formatTime(s.now()),
	)
	if err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	return s.GetLog(ctx, id)
}

func (s *Store) GetLog(ctx context.Context, id string) (*LogEntry, error) {
	e := &LogEntry{}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, amount_ml, created_at FROM water_logs WHERE id = ?`, id,
	).Scan(&e.ID, &e.AmountML, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get log %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get log %s: %w", id, err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// ListLogs returns entries created at or after since, newest first.
func (s *Store) ListLogs(ctx context.Context, since time.Time) ([]LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount_ml, created_at FROM water_logs
		 WHERE created_at >= ?
		 ORDER BY created_at DESC, rowid DESC`,
		formatTime(since),
	)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.AmountML, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteLog removes a single entry. Deleting a missing id is not an error.
func (s *Store) DeleteLog(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM water_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete log %s: %w", id, err)
	}
	return nil
}

// DeleteLogsSince removes every entry created at or after since.
func (s *Store) DeleteLogsSince(ctx context.Context, since time.Time) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM water_logs WHERE created_at >= ?`, formatTime(since))
	if err != nil {
		return fmt.Errorf("delete logs: %w", err)
	}
	return nil
}
