// Package srs computes the next scheduling state of a card after a review.
package srs

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/clock"
)

// Rating is the user's answer to a card.
type Rating int

const (
	RatingAgain Rating = iota + 1
	RatingHard
	RatingMedium
	RatingEasy
)

var ErrInvalidRating = errors.New("invalid rating")

var ratingNames = map[Rating]string{
	RatingAgain:  "again",
	RatingHard:   "hard",
	RatingMedium: "medium",
	RatingEasy:   "easy",
}

const (
	againDelay  = 10 * time.Minute
	hardDelay   = 10 * time.Minute
	mediumDelay = 30 * time.Minute

	againEasePenalty = 0.2
	hardEasePenalty  = 0.15
	easyEaseBonus    = 0.1
)

func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

func (r Rating) IsValid() bool {
	_, ok := ratingNames[r]
	return ok
}

// ParseRating accepts a rating name, "good" as an alias of medium, or its number 1-4.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "again", "a", "1":
		return RatingAgain, nil
	case "hard", "h", "2":
		return RatingHard, nil
	case "medium", "good", "m", "g", "3":
		return RatingMedium, nil
	case "easy", "e", "4":
		return RatingEasy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}

// Scheduler applies the scheduling rules with the current time of its clock.
type Scheduler struct {
	clock clock.Clock
}

var _ card.Scheduler = (*Scheduler)(nil)

func NewScheduler(c clock.Clock) *Scheduler {
	return &Scheduler{clock: c}
}

func (s *Scheduler) Schedule(c card.Card, rating Rating) (card.Card, error) {
	return Schedule(c, rating, s.clock.Now())
}

func (s *Scheduler) EnsureScheduled(c card.Card) card.Card {
	return EnsureScheduled(c, s.clock.Now())
}

// Schedule returns the card as it should be after the rating at now.
// The given card is not modified.
func Schedule(c card.Card, rating Rating, now time.Time) (card.Card, error) {
	if !rating.IsValid() {
		return c, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	updated := c.Clone()
	ef := c.EaseFactor
	interval := c.Interval

	var due time.Time
	switch rating {
	case RatingAgain:
		updated.Lapses++
		updated.EaseFactor = clampEase(ef - againEasePenalty)
		if c.Status == card.StatusNew {
			updated.Status = card.StatusLearning
		} else {
			updated.Status = card.StatusRelearning
		}
		updated.Interval = math.Max(0, interval/2)
		due = now.Add(againDelay)
	case RatingHard:
		if c.Status == card.StatusNew {
			updated.Status = card.StatusLearning
		}
		updated.EaseFactor = clampEase(ef - hardEasePenalty)
		due = now.Add(hardDelay)
	case RatingMedium:
		if c.Status == card.StatusNew {
			updated.Status = card.StatusLearning
		}
		if updated.Status == card.StatusReview {
			updated.Interval = interval * updated.EaseFactor
		}
		due = now.Add(mediumDelay)
	case RatingEasy:
		updated.Status = card.StatusReview
		updated.EaseFactor = clampEase(ef + easyEaseBonus)
		if interval < 1 {
			updated.Interval = 1
		} else {
			updated.Interval = interval * updated.EaseFactor
		}
		due = now.AddDate(0, 0, roundDays(updated.Interval))
	}
	updated.Due = &due
	return updated, nil
}

// EnsureScheduled makes a newly created card due immediately.
// Cards that were already scheduled are returned unchanged.
func EnsureScheduled(c card.Card, now time.Time) card.Card {
	updated := c.Clone()
	if updated.Status != card.StatusNew {
		return updated
	}
	updated.Status = card.StatusLearning
	updated.Due = &now
	updated.Interval = 0
	if updated.EaseFactor < card.MinEaseFactor {
		updated.EaseFactor = card.DefaultEaseFactor
	}
	return updated
}

func clampEase(ef float64) float64 {
	return math.Min(card.MaxEaseFactor, math.Max(card.MinEaseFactor, ef))
}

// roundDays rounds half up to a whole number of days.
func roundDays(interval float64) int {
	return int(math.Floor(interval + 0.5))
}
