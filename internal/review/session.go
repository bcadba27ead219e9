// Package review drives a review session: it picks the cards of the day, applies
// the ratings and counts the completed reviews.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/clock"
	"github.com/at-ishikawa/flashcards/internal/lexicon"
	"github.com/at-ishikawa/flashcards/internal/progress"
	"github.com/at-ishikawa/flashcards/internal/srs"
)

// DefaultNewCardLimit is the number of never-reviewed cards introduced per session.
const DefaultNewCardLimit = 10

var ErrDailyLimitReached = errors.New("daily review limit reached")

type Session struct {
	cards     *card.Repository
	scheduler *srs.Scheduler
	tracker   *progress.Tracker
	clock     clock.Clock
}

func NewSession(cards *card.Repository, scheduler *srs.Scheduler, tracker *progress.Tracker, c clock.Clock) *Session {
	return &Session{
		cards:     cards,
		scheduler: scheduler,
		tracker:   tracker,
		clock:     c,
	}
}

// Queue returns the due cards followed by up to newLimit new cards, cut to the
// reviews remaining today. It is empty once the daily limit is reached.
func (s *Session) Queue(newLimit int) []card.Card {
	remaining := s.tracker.Remaining()
	if remaining == 0 {
		return nil
	}
	queue := s.cards.ReviewQueue(s.clock.Now(), newLimit)
	if len(queue) > remaining {
		queue = queue[:remaining]
	}
	return queue
}

// Rate applies the rating to the card, writes it back and counts one completed review.
// When only persisting fails, the updated card is still returned along with an
// error for which IsPersistenceError is true.
func (s *Session) Rate(ctx context.Context, id uuid.UUID, rating srs.Rating) (card.Card, error) {
	if s.tracker.LimitReached() {
		return card.Card{}, ErrDailyLimitReached
	}
	current, ok := s.cards.Get(id)
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", card.ErrCardNotFound, id)
	}
	updated, err := s.scheduler.Schedule(current, rating)
	if err != nil {
		return card.Card{}, fmt.Errorf("scheduler.Schedule() > %w", err)
	}

	var errs []error
	if err := s.cards.Upsert(ctx, updated); err != nil {
		errs = append(errs, fmt.Errorf("cards.Upsert() > %w", err))
	}
	if err := s.tracker.Increment(); err != nil {
		errs = append(errs, fmt.Errorf("tracker.Increment() > %w", err))
	}
	return updated, errors.Join(errs...)
}

// AddFromLexicon creates a card for a lexicon word; it is due right away.
func (s *Session) AddFromLexicon(ctx context.Context, entry lexicon.Entry) (card.Card, error) {
	c, err := s.cards.CreateFromLexicon(ctx, entry, s.scheduler)
	if err != nil {
		return c, fmt.Errorf("cards.CreateFromLexicon() > %w", err)
	}
	return c, nil
}

// Add schedules a card written by the user and stores it.
func (s *Session) Add(ctx context.Context, c card.Card) (card.Card, error) {
	c = s.scheduler.EnsureScheduled(c)
	if err := s.cards.Upsert(ctx, c); err != nil {
		return c, fmt.Errorf("cards.Upsert() > %w", err)
	}
	return c, nil
}

func (s *Session) Remaining() int {
	return s.tracker.Remaining()
}

func (s *Session) DailyLimit() int {
	return s.tracker.DailyLimit()
}

// IsPersistenceError reports whether an error returned by Rate only means that
// the in-memory state could not be written to the stores.
func IsPersistenceError(err error) bool {
	if err == nil {
		return false
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		if !errors.Is(e, card.ErrStorageWrite) && !errors.Is(e, progress.ErrStorageWrite) {
			return false
		}
	}
	return true
}
