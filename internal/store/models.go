package store

import (
	"errors"
	"time"
)

// LogEntry is a single water intake record.
type LogEntry struct {
	ID        string
	CreatedAt time.Time
	AmountML  int
}

// Profile mirrors the user's goal on the store side. It is optional and
// never authoritative over the local goal.
type Profile struct {
	DailyGoalML int
}

var (
	ErrNotFound  = errors.New("not found")
	ErrNoProfile = errors.New("no profile")
)

// timeLayout keeps created_at lexically sortable in UTC.
const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
