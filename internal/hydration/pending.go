package hydration

import (
	"context"
	"sync"

	"github.com/sadopc/aquatrack/internal/store"
)

// pendingAdd is the future for one in-flight insert, keyed by its
// provisional id. It resolves exactly once.
type pendingAdd struct {
	done     chan struct{}
	once     sync.Once
	resolved bool // guarded by Controller.mu
	entry    store.LogEntry
	err      error
}

func newPendingAdd() *pendingAdd {
	return &pendingAdd{done: make(chan struct{})}
}

// resolve must be called with Controller.mu held.
func (p *pendingAdd) resolve(e store.LogEntry, err error) {
	p.once.Do(func() {
		p.entry = e
		p.err = err
		p.resolved = true
		close(p.done)
	})
}

// wait blocks until the insert settles or ctx ends. ok is false when the
// wait was abandoned.
func (p *pendingAdd) wait(ctx context.Context) (e store.LogEntry, addErr error, ok bool) {
	select {
	case <-p.done:
		return p.entry, p.err, true
	case <-ctx.Done():
		return store.LogEntry{}, nil, false
	}
}
