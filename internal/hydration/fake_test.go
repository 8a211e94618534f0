package hydration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sadopc/aquatrack/internal/notify"
	"github.com/sadopc/aquatrack/internal/store"
)

var errStore = errors.New("store unavailable")

// fakeStore is an in-process LogStore. Failures are injected per call kind;
// gates block a call until released.
type fakeStore struct {
	mu      sync.Mutex
	logs    []store.LogEntry
	nextID  int
	now     func() time.Time
	profile *store.Profile

	failList, failDelete, failReset, failProfile bool
	failInsert                                   map[int]bool // by amount

	insertGate map[int]chan struct{} // by amount
	listGate   chan struct{}
	deleteGate chan struct{}
	resetGate  chan struct{}

	inserts, deletes, resets int
	deletedIDs               []string
}

func newFakeStore(now func() time.Time) *fakeStore {
	return &fakeStore{
		now:        now,
		failInsert: make(map[int]bool),
		insertGate: make(map[int]chan struct{}),
	}
}

func (f *fakeStore) seed(amount int, at time.Time) store.LogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := store.LogEntry{ID: fmt.Sprintf("srv-%d", f.nextID), AmountML: amount, CreatedAt: at}
	f.logs = append([]store.LogEntry{e}, f.logs...)
	return e
}

func (f *fakeStore) ListLogs(ctx context.Context, since time.Time) ([]store.LogEntry, error) {
	if f.listGate != nil {
		select {
		case <-f.listGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errStore
	}
	var out []store.LogEntry
	for _, e := range f.logs {
		if !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertLog(ctx context.Context, amount int) (*store.LogEntry, error) {
	f.mu.Lock()
	gate := f.insertGate[amount]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.failInsert[amount] {
		return nil, errStore
	}
	f.nextID++
	e := store.LogEntry{ID: fmt.Sprintf("srv-%d", f.nextID), AmountML: amount, CreatedAt: f.now()}
	f.logs = append([]store.LogEntry{e}, f.logs...)
	return &e, nil
}

func (f *fakeStore) DeleteLog(ctx context.Context, id string) error {
	if f.deleteGate != nil {
		select {
		case <-f.deleteGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.failDelete {
		return errStore
	}
	f.deletedIDs = append(f.deletedIDs, id)
	for i, e := range f.logs {
		if e.ID == id {
			f.logs = append(f.logs[:i:i], f.logs[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) DeleteLogsSince(ctx context.Context, since time.Time) error {
	if f.resetGate != nil {
		select {
		case <-f.resetGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	if f.failReset {
		return errStore
	}
	var kept []store.LogEntry
	for _, e := range f.logs {
		if e.CreatedAt.Before(since) {
			kept = append(kept, e)
		}
	}
	f.logs = kept
	return nil
}

func (f *fakeStore) stored() []store.LogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.LogEntry, len(f.logs))
	copy(out, f.logs)
	return out
}

// profileStore adds the optional profile read.
type profileStore struct {
	*fakeStore
}

func (p profileStore) GetProfile(context.Context) (*store.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failProfile {
		return nil, errStore
	}
	if p.profile == nil {
		return nil, store.ErrNoProfile
	}
	cp := *p.profile
	return &cp, nil
}

// memGoals is an in-memory GoalStore.
type memGoals struct {
	mu      sync.Mutex
	value   int
	has     bool
	sets    int
	failSet bool
}

func (g *memGoals) Get() int {
	if v, ok := g.Lookup(); ok {
		return v
	}
	return 2000
}

func (g *memGoals) Lookup() (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value, g.has
}

func (g *memGoals) Set(v int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sets++
	if g.failSet {
		return errStore
	}
	g.value, g.has = v, true
	return nil
}

// recorder captures notices in order.
type recorder struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (r *recorder) Notify(n notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) all() []notify.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

func (r *recorder) count(kind notify.Kind) int {
	n := 0
	for _, x := range r.all() {
		if x.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last() notify.Notice {
	all := r.all()
	if len(all) == 0 {
		return notify.Notice{}
	}
	return all[len(all)-1]
}
