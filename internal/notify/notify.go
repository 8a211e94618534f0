// Package notify implements a single-slot toast: the latest notice replaces
// whatever is showing and hides itself after a fixed interval.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 2600 * time.Millisecond

// Kind selects how a notice is rendered.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
	KindCelebrate
)

// Notice is a transient message.
type Notice struct {
	Text string
	Kind Kind
}

// Channel holds at most one visible notice. It is safe for concurrent use.
type Channel struct {
	ttl    time.Duration
	onHide func()

	mu      sync.Mutex
	current Notice
	visible bool
	timer   *time.Timer
	seq     uint64
	closed  bool
}

// New returns a channel whose notices expire after ttl. onHide, if non-nil,
// runs on the timer goroutine after a notice expires.
func New(ttl time.Duration, onHide func()) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{ttl: ttl, onHide: onHide}
}

// Notify shows n immediately, cancelling the pending hide of any previous
// notice.
func (c *Channel) Notify(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	c.current = n
	c.visible = true
	c.timer = time.AfterFunc(c.ttl, func() { c.expire(seq) })
}

// expire hides the notice only if it is still the one that scheduled it; a
// timer that already fired when Stop was called must not hide a newer notice.
func (c *Channel) expire(seq uint64) {
	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		return
	}
	c.visible = false
	c.current = Notice{}
	c.timer = nil
	hook := c.onHide
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Current returns the visible notice.
func (c *Channel) Current() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.visible
}

// Close stops the pending timer. Later notices are dropped.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.closed = true
	c.visible = false
}
