// Package progress counts the reviews done today against a daily limit.
package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/at-ishikawa/flashcards/internal/clock"
)

const DefaultDailyLimit = 20

var (
	ErrStorageRead  = errors.New("failed to read the progress store")
	ErrStorageWrite = errors.New("failed to write the progress store")
)

// State is the persisted progress.
type State struct {
	DailyLimit         int       `yaml:"daily_limit"`
	TodayReviewedCount int       `yaml:"today_reviewed_count"`
	LastReviewDate     time.Time `yaml:"last_review_date"`
}

// Store persists the progress state. Load returns nil when nothing was persisted yet.
type Store interface {
	Load() (*State, error)
	Save(state State) error
}

// Tracker owns the daily review counter. The counter is reset lazily, on the first
// read or increment after a local calendar day boundary.
type Tracker struct {
	mu    sync.Mutex
	store Store
	clock clock.Clock
	state State
}

// NewTracker restores the persisted state. When it cannot be read, the tracker starts
// from the defaults and the returned error wraps ErrStorageRead; the tracker is usable either way.
func NewTracker(store Store, c clock.Clock, defaultLimit int) (*Tracker, error) {
	defaultLimit = max(defaultLimit, 1)
	t := &Tracker{
		store: store,
		clock: c,
		state: State{
			DailyLimit:     defaultLimit,
			LastReviewDate: c.Now(),
		},
	}

	state, err := store.Load()
	if err != nil {
		return t, fmt.Errorf("%w: store.Load() > %w", ErrStorageRead, err)
	}
	if state == nil {
		return t, nil
	}
	if state.DailyLimit < 1 {
		state.DailyLimit = defaultLimit
	}
	state.TodayReviewedCount = max(state.TodayReviewedCount, 0)
	t.state = *state
	return t, nil
}

// Increment records one completed review.
func (t *Tracker) Increment() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if !clock.SameDay(now, t.state.LastReviewDate) {
		t.state.TodayReviewedCount = 0
	}
	t.state.TodayReviewedCount++
	t.state.LastReviewDate = now
	return t.persist()
}

func (t *Tracker) TodayReviewedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.todayReviewedCount()
}

func (t *Tracker) DailyLimit() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.DailyLimit
}

// SetDailyLimit stores the limit, raising values below 1 to 1.
func (t *Tracker) SetDailyLimit(limit int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.DailyLimit = max(limit, 1)
	return t.persist()
}

// ResetAllCounts clears today's counter regardless of the date.
func (t *Tracker) ResetAllCounts() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.TodayReviewedCount = 0
	t.state.LastReviewDate = t.clock.Now()
	return t.persist()
}

func (t *Tracker) LimitReached() bool {
	return t.Remaining() == 0
}

func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return max(t.state.DailyLimit-t.todayReviewedCount(), 0)
}

// Snapshot returns the state as observed now.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.state
	state.TodayReviewedCount = t.todayReviewedCount()
	return state
}

func (t *Tracker) todayReviewedCount() int {
	if !clock.SameDay(t.clock.Now(), t.state.LastReviewDate) {
		return 0
	}
	return t.state.TodayReviewedCount
}

func (t *Tracker) persist() error {
	if err := t.store.Save(t.state); err != nil {
		return fmt.Errorf("%w: store.Save() > %w", ErrStorageWrite, err)
	}
	return nil
}
