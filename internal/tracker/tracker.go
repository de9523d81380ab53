// Package tracker owns the in-memory active-session state shared by the
// presentation shells. All state transitions happen under one mutex so
// concurrent callers (web handlers, the TUI loop and the shutdown path)
// can never double-log the same interval.
package tracker

import (
	"sync"
	"time"

	"github.com/sadopc/hozoor/internal/daylog"
)

// Tracker flips between active and inactive on toggle events and writes
// each closed interval to the day log. The session state is transient;
// an open session lost to a crash is an accepted limitation.
type Tracker struct {
	mu     sync.Mutex
	store  *daylog.Store
	now    func() time.Time
	active bool
	start  time.Time
}

func New(store *daylog.Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Toggle atomically flips the active state. Turning on records the
// session start; turning off logs the interval from that start to now,
// exactly once. It returns the new state.
func (t *Tracker) Toggle() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.flip()
	return t.active, err
}

// Set drives the tracker to the desired state, flipping only when it
// differs. The compare and the transition share one critical section,
// so racing requests for the same state cannot reopen or double-log a
// session. It reports whether a transition happened.
func (t *Tracker) Set(active bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active == t.active {
		return false, nil
	}
	return true, t.flip()
}

// flip performs the state transition. Callers hold the mutex.
func (t *Tracker) flip() error {
	if !t.active {
		t.active = true
		t.start = t.now()
		return nil
	}

	start := t.start
	t.active = false
	t.start = time.Time{}
	return t.store.LogSession(start, t.now())
}

// Active reports whether a session is currently open.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// StartedAt returns the start of the open session, if any.
func (t *Tracker) StartedAt() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.start, t.active
}

// Elapsed returns how long the open session has been running, or zero
// when inactive.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return 0
	}
	return t.now().Sub(t.start)
}

// Shutdown closes the tracker for orderly process exit: an open session
// is logged up to now, then today's summary is written. Safe to call
// when no session is open.
func (t *Tracker) Shutdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		start := t.start
		t.active = false
		t.start = time.Time{}
		if err := t.store.LogSession(start, t.now()); err != nil {
			return err
		}
	}
	return t.store.SummarizeDay(t.now())
}

// TodayTotal returns the parsed total of today's log file. "Today" is
// resolved with the tracker's clock so sessions and totals can never
// disagree about which day they belong to.
func (t *Tracker) TodayTotal() (time.Duration, error) {
	return t.store.DayTotal(t.now())
}

// Store exposes the underlying day log for read-only reporting.
func (t *Tracker) Store() *daylog.Store {
	return t.store
}
