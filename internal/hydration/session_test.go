package hydration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/aquatrack/internal/store"
)

func entry(id string, ml int) store.LogEntry {
	return store.LogEntry{ID: id, AmountML: ml, CreatedAt: time.Unix(0, 0)}
}

func ids(s *Session) []string {
	var out []string
	for _, e := range s.entries {
		out = append(out, e.ID)
	}
	return out
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		total, goal, want int
	}{
		{250, 2000, 13},
		{2050, 2000, 103},
		{1800, 2000, 90},
		{2100, 2000, 105},
		{0, 2000, 0},
		{4000, 2000, 200},
		{1, 3, 33},
		{2, 3, 67},
		{1025, 2000, 51},
		{2030, 2000, 102},
		{-2050, 2000, -103},
		{250, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.total, tt.goal), "%d/%d", tt.total, tt.goal)
	}
}

func TestSessionTotals(t *testing.T) {
	var s Session
	s.set([]store.LogEntry{entry("a", 250), entry("b", 500)})
	assert.Equal(t, 750, s.Total())
	assert.Equal(t, 38, s.Percentage(2000))
	assert.Equal(t, 2, s.Len())
}

func TestSessionPrependAndRemove(t *testing.T) {
	var s Session
	s.prepend(entry("a", 100))
	s.prepend(entry("b", 200))
	s.prepend(entry("c", 300))
	assert.Equal(t, []string{"c", "b", "a"}, ids(&s))

	e, ok := s.remove("b")
	require.True(t, ok)
	assert.Equal(t, 200, e.AmountML)
	assert.Equal(t, []string{"c", "a"}, ids(&s))

	_, ok = s.remove("b")
	assert.False(t, ok)
}

func TestSessionReplaceKeepsPosition(t *testing.T) {
	var s Session
	s.set([]store.LogEntry{entry("x", 1), entry("pending-1", 250), entry("y", 2)})

	require.True(t, s.replace("pending-1", entry("srv-9", 250)))
	assert.Equal(t, []string{"x", "srv-9", "y"}, ids(&s))

	assert.False(t, s.replace("pending-1", entry("srv-10", 250)))
}

func TestSessionReplaceDropsDuplicate(t *testing.T) {
	var s Session
	s.set([]store.LogEntry{entry("pending-1", 250), entry("srv-9", 250)})

	require.True(t, s.replace("pending-1", entry("srv-9", 250)))
	assert.Equal(t, []string{"srv-9"}, ids(&s))
}

func TestSessionEntriesIsCopy(t *testing.T) {
	var s Session
	s.set([]store.LogEntry{entry("a", 100)})
	out := s.Entries()
	out[0].AmountML = 999
	assert.Equal(t, 100, s.Total())
}

func TestSessionClear(t *testing.T) {
	var s Session
	s.set([]store.LogEntry{entry("a", 100), entry("b", 200)})
	old := s.clear()
	assert.Len(t, old, 2)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Total())
}
