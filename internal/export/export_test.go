package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/store"
)

func sampleSnapshot() hydration.Snapshot {
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	entries := []store.LogEntry{
		{ID: hydration.ProvisionalPrefix + "abc", AmountML: 250, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "6f1c", AmountML: 500, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "9a2e", AmountML: 300, CreatedAt: base},
	}
	return hydration.Snapshot{
		Entries:    entries,
		Total:      1050,
		Goal:       2000,
		Percentage: hydration.Percentage(1050, 2000),
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func readJSON(t *testing.T, path string) jsonExport {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return result
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "today.csv")

	if err := ToCSV(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Time", "Amount (ml)", "Status"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[2]
	if row[0] != "6f1c" {
		t.Fatalf("ID = %q, want 6f1c", row[0])
	}
	if row[2] != "500" {
		t.Fatalf("Amount = %q, want 500", row[2])
	}
	if row[3] != "confirmed" {
		t.Fatalf("Status = %q, want confirmed", row[3])
	}
	if _, err := time.Parse(time.RFC3339, row[1]); err != nil {
		t.Fatalf("Time is not RFC3339: %q", row[1])
	}

	if records[1][3] != "pending" {
		t.Fatalf("provisional entry status = %q, want pending", records[1][3])
	}
}

func TestToCSVKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	got := []string{records[1][2], records[2][2], records[3][2]}
	want := []string{"250", "500", "300"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("amounts = %v, want %v", got, want)
		}
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(hydration.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(hydration.Snapshot{}, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	path := filepath.Join(t.TempDir(), "today.json")
	if err := ToJSON(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	result := readJSON(t, path)
	if result.ExportedAt != "2026-10-18T20:00:00Z" {
		t.Fatalf("exported_at = %q", result.ExportedAt)
	}
	if result.Count != 3 || len(result.Entries) != 3 {
		t.Fatalf("count = %d, entries = %d, want 3", result.Count, len(result.Entries))
	}
	if result.GoalML != 2000 {
		t.Fatalf("goal_ml = %d, want 2000", result.GoalML)
	}
	if result.TotalML != 1050 {
		t.Fatalf("total_ml = %d, want 1050", result.TotalML)
	}
	if result.Percentage != 53 {
		t.Fatalf("percentage = %d, want 53", result.Percentage)
	}

	e := result.Entries[1]
	if e.ID != "6f1c" || e.AmountML != 500 || e.Status != "confirmed" {
		t.Fatalf("entry = %+v", e)
	}
	if result.Entries[0].Status != "pending" {
		t.Fatalf("provisional status = %q", result.Entries[0].Status)
	}
	for _, e := range result.Entries {
		if _, err := time.Parse(time.RFC3339, e.CreatedAt); err != nil {
			t.Fatalf("created_at is not valid RFC3339: %q", e.CreatedAt)
		}
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(hydration.Snapshot{Goal: 2000}, path); err != nil {
		t.Fatal(err)
	}

	result := readJSON(t, path)
	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Entries != nil {
		t.Fatal("entries should be nil/null for empty export")
	}
	if result.GoalML != 2000 {
		t.Fatalf("goal_ml = %d, want 2000", result.GoalML)
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(hydration.Snapshot{}, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestWriteJSONPrettyPrinted(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, hydration.Snapshot{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(out, "  \"goal_ml\"") {
		t.Fatal("JSON should be indented with spaces")
	}
}
