// Package goal persists the daily intake target on the local disk,
// independent of the log store.
package goal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const (
	// DefaultML is used when no goal has been stored.
	DefaultML = 2000

	key = "daily_goal_ml"
)

// Store wraps a single persisted integer under a fixed key.
type Store struct {
	d        *diskv.Diskv
	fallback int
}

// Open returns a goal store rooted at dir. fallback replaces DefaultML when
// positive.
func Open(dir string, fallback int) *Store {
	if fallback <= 0 {
		fallback = DefaultML
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024,
		}),
		fallback: fallback,
	}
}

// Get returns the stored goal, or the default when absent or unparseable.
func (s *Store) Get() int {
	if v, ok := s.Lookup(); ok {
		return v
	}
	return s.fallback
}

// Lookup reports the stored goal and whether a valid one exists.
func (s *Store) Lookup() (int, bool) {
	if !s.d.Has(key) {
		return 0, false
	}
	raw, err := s.d.Read(key)
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Set persists v synchronously.
func (s *Store) Set(v int) error {
	if v <= 0 {
		return fmt.Errorf("set goal: must be positive, got %d", v)
	}
	if err := s.d.Write(key, []byte(strconv.Itoa(v))); err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	return nil
}
