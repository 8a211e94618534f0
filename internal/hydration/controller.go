// Package hydration owns today's intake state. The Controller applies every
// user intent optimistically, talks to the log store, and reconciles or
// rolls back once the store answers.
package hydration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sadopc/aquatrack/internal/notify"
	"github.com/sadopc/aquatrack/internal/store"
)

// ProvisionalPrefix marks ids that the store has not confirmed yet.
const ProvisionalPrefix = "pending-"

// DefaultCelebration is how long the goal celebration stays on.
const DefaultCelebration = 4 * time.Second

var (
	ErrInvalidAmount = errors.New("amount must be a positive whole number")
	ErrInvalidGoal   = errors.New("goal must be a positive whole number")
	ErrEntryNotFound = errors.New("entry not found")
)

// LogStore is the remote CRUD contract over the water log collection.
type LogStore interface {
	ListLogs(ctx context.Context, since time.Time) ([]store.LogEntry, error)
	InsertLog(ctx context.Context, amountML int) (*store.LogEntry, error)
	DeleteLog(ctx context.Context, id string) error
	DeleteLogsSince(ctx context.Context, since time.Time) error
}

// ProfileReader is optionally implemented by a LogStore that also holds a
// profile record.
type ProfileReader interface {
	GetProfile(ctx context.Context) (*store.Profile, error)
}

// GoalStore persists the daily goal locally.
type GoalStore interface {
	Get() int
	Lookup() (int, bool)
	Set(v int) error
}

// Notifier receives user-facing notices.
type Notifier interface {
	Notify(n notify.Notice)
}

// Options tunes a Controller. Zero values select defaults.
type Options struct {
	Logger      *log.Logger
	Now         func() time.Time
	Messages    *Messages
	Celebration time.Duration
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	Entries     []store.LogEntry
	Total       int
	Goal        int
	Percentage  int
	Phase       Phase
	Loading     bool
	Celebrating bool
	Pending     int

	// Crossings counts rising edges since New; it grows even while a
	// celebration is already showing.
	Crossings uint64
}

// Controller mediates between user intents and the LogStore.
type Controller struct {
	store    LogStore
	goals    GoalStore
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
	msgs     Messages
	celebFor time.Duration

	mu          sync.Mutex
	session     Session
	goal        int
	loading     bool
	crossing    crossingDetector
	pending     map[string]*pendingAdd
	celebrating bool
	celebTimer  *time.Timer
	celebSeq    uint64

	changes chan struct{}
}

// New returns a Controller seeded with the goal from goals.
func New(ls LogStore, goals GoalStore, n Notifier, opts Options) *Controller {
	c := &Controller{
		store:    ls,
		goals:    goals,
		notifier: n,
		logger:   opts.Logger,
		now:      opts.Now,
		msgs:     englishMessages,
		celebFor: opts.Celebration,
		goal:     goals.Get(),
		pending:  make(map[string]*pendingAdd),
		changes:  make(chan struct{}, 1),
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if opts.Messages != nil {
		c.msgs = *opts.Messages
	}
	if c.celebFor <= 0 {
		c.celebFor = DefaultCelebration
	}
	return c
}

// StartOfDay is local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsProvisional reports whether id belongs to an unconfirmed entry.
func IsProvisional(id string) bool {
	return strings.HasPrefix(id, ProvisionalPrefix)
}

// Changes delivers a signal after every state change. Signals coalesce.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Entries:     c.session.Entries(),
		Total:       c.session.Total(),
		Goal:        c.goal,
		Percentage:  c.session.Percentage(c.goal),
		Phase:       c.crossing.phase,
		Loading:     c.loading,
		Celebrating: c.celebrating,
		Pending:     len(c.pending),
		Crossings:   c.celebSeq,
	}
}

// Load replaces the session with today's entries from the store. Failures
// are logged and leave the session as it was.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.signalLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.signalLocked()
		c.mu.Unlock()
	}()

	c.loadProfileGoal(ctx)

	entries, err := c.store.ListLogs(ctx, StartOfDay(c.now()))
	if err != nil {
		c.logger.Warn("load logs", "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var merged []store.LogEntry
	for _, e := range c.session.entries {
		if _, ok := c.pending[e.ID]; ok {
			merged = append(merged, e)
		}
	}
	merged = append(merged, entries...)
	c.session.set(merged)
	c.crossing.prime(c.session.Percentage(c.goal))
	c.logger.Debug("loaded logs", "count", len(entries), "pending", len(merged)-len(entries))
}

// loadProfileGoal adopts the store's profile goal when nothing is stored
// locally. The local goal always wins.
func (c *Controller) loadProfileGoal(ctx context.Context) {
	if _, ok := c.goals.Lookup(); ok {
		return
	}
	pr, ok := c.store.(ProfileReader)
	if !ok {
		return
	}
	p, err := pr.GetProfile(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoProfile) {
			c.logger.Warn("load profile", "err", err)
		}
		return
	}
	if p.DailyGoalML <= 0 {
		return
	}
	c.mu.Lock()
	c.goal = p.DailyGoalML
	c.crossing.prime(c.session.Percentage(c.goal))
	c.signalLocked()
	c.mu.Unlock()
}

// AddEntryInput parses raw as a whole number of millilitres and adds it.
func (c *Controller) AddEntryInput(ctx context.Context, raw string) (store.LogEntry, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return store.LogEntry{}, ErrInvalidAmount
	}
	return c.AddEntry(ctx, amount)
}

// AddEntry shows a provisional entry at once, inserts it, and swaps in the
// confirmed entry or removes it again if the insert fails.
func (c *Controller) AddEntry(ctx context.Context, amount int) (store.LogEntry, error) {
	if amount <= 0 {
		return store.LogEntry{}, ErrInvalidAmount
	}

	provisional := store.LogEntry{
		ID:        ProvisionalPrefix + uuid.NewString(),
		CreatedAt: c.now(),
		AmountML:  amount,
	}
	p := newPendingAdd()

	c.mu.Lock()
	c.pending[provisional.ID] = p
	c.session.prepend(provisional)
	crossed := c.commitLocked()
	c.mu.Unlock()
	c.celebrate(crossed)

	confirmed, err := c.store.InsertLog(ctx, amount)

	c.mu.Lock()
	delete(c.pending, provisional.ID)
	if err != nil {
		p.resolve(store.LogEntry{}, err)
		if _, ok := c.session.remove(provisional.ID); ok {
			c.commitLocked()
		}
		c.mu.Unlock()

		c.logger.Error("add entry", "amount", amount, "err", err)
		c.notify(c.msgs.AddFailed, notify.KindError)
		return store.LogEntry{}, fmt.Errorf("add entry: %w", err)
	}
	p.resolve(*confirmed, nil)
	if c.session.replace(provisional.ID, *confirmed) {
		c.signalLocked()
	} else {
		c.logger.Debug("confirmed entry no longer listed", "id", confirmed.ID)
	}
	c.mu.Unlock()

	c.notify(c.msgs.Added(amount), notify.KindSuccess)
	return *confirmed, nil
}

// RemoveEntry drops the entry at once and deletes it in the store. On
// failure the entry comes back at the head of the list.
func (c *Controller) RemoveEntry(ctx context.Context, id string) error {
	c.mu.Lock()
	removed, ok := c.session.remove(id)
	if !ok {
		c.mu.Unlock()
		return ErrEntryNotFound
	}
	p := c.pending[id]
	crossed := c.commitLocked()
	c.mu.Unlock()
	c.celebrate(crossed)

	target := id
	if p != nil {
		confirmed, addErr, ok := p.wait(ctx)
		if !ok {
			return c.rollbackRemove(removed, p, ctx.Err())
		}
		if addErr != nil {
			// Never persisted, nothing to delete.
			c.notify(c.msgs.Removed(removed.AmountML), notify.KindSuccess)
			return nil
		}
		target = confirmed.ID
	}

	if err := c.store.DeleteLog(ctx, target); err != nil {
		return c.rollbackRemove(removed, p, err)
	}
	c.notify(c.msgs.Removed(removed.AmountML), notify.KindSuccess)
	return nil
}

func (c *Controller) rollbackRemove(e store.LogEntry, p *pendingAdd, cause error) error {
	c.mu.Lock()
	restore := true
	if p != nil && p.resolved {
		if p.err != nil {
			restore = false
		} else {
			e = p.entry
		}
	}
	if restore && c.session.index(e.ID) < 0 {
		c.session.prepend(e)
	}
	c.restoredLocked()
	c.mu.Unlock()

	c.logger.Error("remove entry", "id", e.ID, "err", cause)
	c.notify(c.msgs.RemoveFailed, notify.KindError)
	return fmt.Errorf("remove entry: %w", cause)
}

// ResetDay clears the session and deletes today's entries in the store. On
// failure the previous list is restored as it was.
func (c *Controller) ResetDay(ctx context.Context) error {
	c.mu.Lock()
	snapshot := c.session.clear()
	inflight := make(map[string]*pendingAdd)
	for _, e := range snapshot {
		if p, ok := c.pending[e.ID]; ok {
			inflight[e.ID] = p
		}
	}
	c.commitLocked()
	c.mu.Unlock()

	err := c.store.DeleteLogsSince(ctx, StartOfDay(c.now()))
	if err == nil {
		c.notify(c.msgs.Reset, notify.KindInfo)
		return nil
	}

	c.mu.Lock()
	restored := make([]store.LogEntry, 0, len(snapshot))
	for _, e := range snapshot {
		if p, ok := inflight[e.ID]; ok && p.resolved {
			if p.err != nil {
				continue
			}
			e = p.entry
		}
		restored = append(restored, e)
	}
	// Entries added while the reset was in flight stay on top.
	c.session.set(append(c.session.Entries(), restored...))
	c.restoredLocked()
	c.mu.Unlock()

	c.logger.Error("reset day", "err", err)
	c.notify(c.msgs.ResetFailed, notify.KindError)
	return fmt.Errorf("reset day: %w", err)
}

// SetGoal parses raw and makes it the daily goal. Invalid input changes
// nothing.
func (c *Controller) SetGoal(raw string) error {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return ErrInvalidGoal
	}
	if err := c.goals.Set(v); err != nil {
		c.logger.Warn("persist goal", "goal", v, "err", err)
	}

	c.mu.Lock()
	c.goal = v
	crossed := c.commitLocked()
	c.mu.Unlock()

	c.notify(c.msgs.GoalSet(v), notify.KindSuccess)
	c.celebrate(crossed)
	return nil
}

// Close releases the celebration timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.celebTimer != nil {
		c.celebTimer.Stop()
		c.celebTimer = nil
	}
	c.celebrating = false
}

// commitLocked signals a change and runs the crossing detector. On a rising
// edge it starts the celebration and reports true so the caller can notify
// after unlocking.
func (c *Controller) commitLocked() bool {
	c.signalLocked()
	if !c.crossing.observe(c.session.Percentage(c.goal)) {
		return false
	}
	if c.celebTimer != nil {
		c.celebTimer.Stop()
	}
	c.celebSeq++
	seq := c.celebSeq
	c.celebrating = true
	c.celebTimer = time.AfterFunc(c.celebFor, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.celebSeq {
			return
		}
		c.celebrating = false
		c.celebTimer = nil
		c.signalLocked()
	})
	c.logger.Info("goal reached", "total", c.session.Total(), "goal", c.goal)
	return true
}

// restoredLocked signals a rollback. A rollback puts back state the user
// already had, so it never counts as a new crossing.
func (c *Controller) restoredLocked() {
	c.signalLocked()
	c.crossing.prime(c.session.Percentage(c.goal))
}

func (c *Controller) celebrate(crossed bool) {
	if crossed {
		c.notify(c.msgs.GoalReached, notify.KindCelebrate)
	}
}

func (c *Controller) signalLocked() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

func (c *Controller) notify(text string, kind notify.Kind) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(notify.Notice{Text: text, Kind: kind})
}
