package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertLog is a test helper that inserts an entry with an explicit timestamp.
func insertLog(t *testing.T, s *Store, id string, amount int, at time.Time) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO water_logs (id, amount_ml, created_at) VALUES (?, ?, ?)`,
		id, amount, formatTime(at),
	)
	if err != nil {
		t.Fatalf("insert log: %v", err)
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/aquatrack.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertLog(context.Background(), 250); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is not re-run
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	logs, err := s2.ListLogs(context.Background(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log after reopen, got %d", len(logs))
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Logs
// ============================================================

func TestInsertAndGetLog(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	e, err := s.InsertLog(context.Background(), 250)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if e.AmountML != 250 {
		t.Fatalf("expected 250ml, got %d", e.AmountML)
	}
	if !e.CreatedAt.Equal(fixed) {
		t.Fatalf("expected created_at %v, got %v", fixed, e.CreatedAt)
	}

	got, err := s.GetLog(context.Background(), e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != e.ID || got.AmountML != e.AmountML || !got.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("get mismatch: %+v vs %+v", got, e)
	}
}

func TestInsertLogRejectsNonPositive(t *testing.T) {
	s := newTestStore(t)
	for _, amount := range []int{0, -5} {
		if _, err := s.InsertLog(context.Background(), amount); err == nil {
			t.Fatalf("expected error for amount %d", amount)
		}
	}
}

func TestInsertLogUniqueIDs(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.InsertLog(context.Background(), 100)
	b, _ := s.InsertLog(context.Background(), 100)
	if a.ID == b.ID {
		t.Fatal("two inserts share an id")
	}
}

func TestGetLogNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetLog(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListLogsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	insertLog(t, s, "a", 100, base)
	insertLog(t, s, "b", 200, base.Add(2*time.Hour))
	insertLog(t, s, "c", 300, base.Add(time.Hour))

	logs, err := s.ListLogs(context.Background(), base)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	if logs[0].ID != "b" || logs[1].ID != "c" || logs[2].ID != "a" {
		t.Fatalf("wrong order: %s %s %s", logs[0].ID, logs[1].ID, logs[2].ID)
	}
}

func TestListLogsSameSecondKeepsInsertOrder(t *testing.T) {
	s := newTestStore(t)
	at := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	insertLog(t, s, "first", 100, at)
	insertLog(t, s, "second", 200, at)

	logs, _ := s.ListLogs(context.Background(), at)
	if logs[0].ID != "second" {
		t.Fatalf("expected latest insert first, got %s", logs[0].ID)
	}
}

func TestListLogsSinceFilter(t *testing.T) {
	s := newTestStore(t)
	midnight := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	insertLog(t, s, "yesterday", 500, midnight.Add(-time.Minute))
	insertLog(t, s, "at-midnight", 250, midnight)
	insertLog(t, s, "today", 250, midnight.Add(9*time.Hour))

	logs, err := s.ListLogs(context.Background(), midnight)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	for _, l := range logs {
		if l.ID == "yesterday" {
			t.Fatal("entry before since should be excluded")
		}
	}
}

func TestListLogsSinceNonUTC(t *testing.T) {
	s := newTestStore(t)
	zone := time.FixedZone("UTC+2", 2*60*60)
	localMidnight := time.Date(2026, 3, 4, 0, 0, 0, 0, zone) // 22:00 UTC the day before
	insertLog(t, s, "late", 250, time.Date(2026, 3, 3, 23, 0, 0, 0, time.UTC))
	insertLog(t, s, "early", 250, time.Date(2026, 3, 3, 21, 0, 0, 0, time.UTC))

	logs, _ := s.ListLogs(context.Background(), localMidnight)
	if len(logs) != 1 || logs[0].ID != "late" {
		t.Fatalf("expected only 'late', got %+v", logs)
	}
}

func TestListLogsEmpty(t *testing.T) {
	s := newTestStore(t)
	logs, err := s.ListLogs(context.Background(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if logs != nil {
		t.Fatalf("expected nil slice, got %d items", len(logs))
	}
}

func TestDeleteLog(t *testing.T) {
	s := newTestStore(t)
	e, _ := s.InsertLog(context.Background(), 250)

	if err := s.DeleteLog(context.Background(), e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetLog(context.Background(), e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("log should be gone")
	}
	// Deleting again is not an error
	if err := s.DeleteLog(context.Background(), e.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestDeleteLogsSince(t *testing.T) {
	s := newTestStore(t)
	midnight := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	insertLog(t, s, "yesterday", 500, midnight.Add(-time.Hour))
	insertLog(t, s, "today-1", 250, midnight.Add(time.Hour))
	insertLog(t, s, "today-2", 250, midnight.Add(2*time.Hour))

	if err := s.DeleteLogsSince(context.Background(), midnight); err != nil {
		t.Fatal(err)
	}
	logs, _ := s.ListLogs(context.Background(), time.Time{})
	if len(logs) != 1 || logs[0].ID != "yesterday" {
		t.Fatalf("expected only yesterday's log to survive, got %+v", logs)
	}
}

func TestContextCancelled(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.InsertLog(ctx, 250); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

// ============================================================
// Profile
// ============================================================

func TestGetProfileMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetProfile(context.Background())
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.SaveProfile(ctx, Profile{DailyGoalML: 2500}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveProfile(ctx, Profile{DailyGoalML: 3000}); err != nil {
		t.Fatal(err)
	}

	p, err := s.GetProfile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.DailyGoalML != 3000 {
		t.Fatalf("expected 3000, got %d", p.DailyGoalML)
	}

	var rows int
	s.db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&rows)
	if rows != 1 {
		t.Fatalf("expected a single profile row, got %d", rows)
	}
}

func TestSaveProfileRejectsNonPositive(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveProfile(context.Background(), Profile{DailyGoalML: 0}); err == nil {
		t.Fatal("expected check constraint error")
	}
}

// ============================================================
// Close
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ListLogs(context.Background(), time.Time{}); err == nil {
		t.Fatal("expected error after close")
	}
}
