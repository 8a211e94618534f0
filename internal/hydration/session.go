package hydration

import "github.com/sadopc/aquatrack/internal/store"

// Session is today's entries, newest first. It does no validation of its
// own; the Controller is its only mutator.
type Session struct {
	entries []store.LogEntry
}

// Entries returns a copy of the current list.
func (s *Session) Entries() []store.LogEntry {
	out := make([]store.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Session) Len() int { return len(s.entries) }

// Total sums AmountML over all entries.
func (s *Session) Total() int {
	total := 0
	for _, e := range s.entries {
		total += e.AmountML
	}
	return total
}

// Percentage is round(total/goal*100). It is not clamped at 100.
func (s *Session) Percentage(goal int) int {
	return Percentage(s.Total(), goal)
}

// Percentage is total/goal*100 rounded half away from zero, or 0 when goal
// is not positive. Integer math keeps exact halves such as 2050/2000 at 103.
func Percentage(total, goal int) int {
	if goal <= 0 {
		return 0
	}
	if total < 0 {
		return -Percentage(-total, goal)
	}
	return (total*200 + goal) / (2 * goal)
}

func (s *Session) index(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) prepend(e store.LogEntry) {
	s.entries = append([]store.LogEntry{e}, s.entries...)
}

// replace swaps the entry with id for e in place. When e.ID is already in
// the list (a reload picked it up first) the placeholder is dropped instead.
func (s *Session) replace(id string, e store.LogEntry) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if s.index(e.ID) >= 0 {
		s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
		return true
	}
	s.entries[i] = e
	return true
}

func (s *Session) remove(id string) (store.LogEntry, bool) {
	i := s.index(id)
	if i < 0 {
		return store.LogEntry{}, false
	}
	e := s.entries[i]
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	return e, true
}

// clear empties the list and returns what it held.
func (s *Session) clear() []store.LogEntry {
	old := s.entries
	s.entries = nil
	return old
}

func (s *Session) set(entries []store.LogEntry) {
	s.entries = entries
}
