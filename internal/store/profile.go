package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetProfile returns the first profile row, or ErrNoProfile when none exists.
func (s *Store) GetProfile(ctx context.Context) (*Profile, error) {
	p := &Profile{}
	err := s.db.QueryRowContext(ctx,
		`SELECT daily_goal_ml FROM profiles ORDER BY id LIMIT 1`,
	).Scan(&p.DailyGoalML)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// SaveProfile upserts the single profile row.
func (s *Store) SaveProfile(ctx context.Context, p Profile) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET daily_goal_ml = ? WHERE id = (SELECT MIN(id) FROM profiles)`,
		p.DailyGoalML,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO profiles (daily_goal_ml) VALUES (?)`, p.DailyGoalML); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
