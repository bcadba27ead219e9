// Package card provides the flashcard model and the repository that owns the card
// collection of one language.
package card

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/flashcards/internal/lexicon"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0
)

// Status is the lifecycle state of a card in the spaced repetition schedule.
type Status string

const (
	StatusNew        Status = "new"
	StatusLearning   Status = "learning"
	StatusReview     Status = "review"
	StatusRelearning Status = "relearning"
)

var Statuses = []Status{StatusNew, StatusLearning, StatusReview, StatusRelearning}

func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// ImageAttachment references an image file stored outside of the card collection.
type ImageAttachment struct {
	ID              uuid.UUID `yaml:"id" json:"id"`
	FileName        string    `yaml:"file_name" json:"fileName"`
	UnsplashID      *string   `yaml:"unsplash_id,omitempty" json:"unsplashId,omitempty"`
	AttributionName *string   `yaml:"attribution_name,omitempty" json:"attributionName,omitempty"`
	AttributionLink *string   `yaml:"attribution_link,omitempty" json:"attributionLink,omitempty"`
}

// Card is a single vocabulary flashcard with its scheduling state.
// The scheduling fields are only changed through the srs package.
type Card struct {
	ID               uuid.UUID         `yaml:"id" json:"id"`
	Front            string            `yaml:"front" json:"front"`
	Back             string            `yaml:"back" json:"back"`
	Definition       string            `yaml:"definition" json:"definition"`
	ExampleSentence  string            `yaml:"example_sentence" json:"exampleSentence"`
	PartOfSpeech     *string           `yaml:"part_of_speech,omitempty" json:"partOfSpeech,omitempty"`
	Gender           *string           `yaml:"gender,omitempty" json:"gender,omitempty"`
	Notes            *string           `yaml:"notes,omitempty" json:"notes,omitempty"`
	ImageAttachments []ImageAttachment `yaml:"image_attachments,omitempty" json:"imageAttachments,omitempty"`
	AudioFileName    *string           `yaml:"audio_file_name,omitempty" json:"audioFileName,omitempty"`

	Status     Status     `yaml:"status" json:"status"`
	EaseFactor float64    `yaml:"ease_factor" json:"easeFactor"`
	Interval   float64    `yaml:"interval" json:"interval"` // days
	Due        *time.Time `yaml:"due,omitempty" json:"due,omitempty"`
	Lapses     int        `yaml:"lapses" json:"lapses"`
}

// Option sets an optional content field on a new card.
type Option func(*Card)

func WithDefinition(definition string) Option {
	return func(c *Card) {
		c.Definition = definition
	}
}

func WithExampleSentence(sentence string) Option {
	return func(c *Card) {
		c.ExampleSentence = sentence
	}
}

func WithPartOfSpeech(pos string) Option {
	return func(c *Card) {
		c.PartOfSpeech = optional(pos)
	}
}

func WithGender(gender string) Option {
	return func(c *Card) {
		c.Gender = optional(gender)
	}
}

func WithNotes(notes string) Option {
	return func(c *Card) {
		c.Notes = optional(notes)
	}
}

func WithAudioFileName(name string) Option {
	return func(c *Card) {
		c.AudioFileName = optional(name)
	}
}

func WithImageAttachments(attachments ...ImageAttachment) Option {
	return func(c *Card) {
		c.ImageAttachments = append(c.ImageAttachments, attachments...)
	}
}

// New creates a card with a fresh identity and the initial scheduling state.
func New(front, back string, opts ...Option) Card {
	c := Card{
		ID:         uuid.New(),
		Front:      front,
		Back:       back,
		Status:     StatusNew,
		EaseFactor: DefaultEaseFactor,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FromLexiconEntry builds a card for a word the user picked explicitly,
// with the definition and the sample sentence pre-filled.
func FromLexiconEntry(entry lexicon.Entry) Card {
	return New(entry.Lemma, entry.Definition,
		WithDefinition(entry.Definition),
		WithExampleSentence(entry.Sample),
		WithPartOfSpeech(entry.PartOfSpeech),
	)
}

// IsDue reports whether the card should be presented at now.
// New cards are never due; they are introduced separately.
func (c Card) IsDue(now time.Time) bool {
	if c.Status == StatusNew || c.Due == nil {
		return false
	}
	return !c.Due.After(now)
}

// Clone returns a deep copy so callers cannot mutate the repository's state.
func (c Card) Clone() Card {
	clone := c
	clone.PartOfSpeech = clonePtr(c.PartOfSpeech)
	clone.Gender = clonePtr(c.Gender)
	clone.Notes = clonePtr(c.Notes)
	clone.AudioFileName = clonePtr(c.AudioFileName)
	clone.Due = clonePtr(c.Due)
	if c.ImageAttachments != nil {
		clone.ImageAttachments = make([]ImageAttachment, len(c.ImageAttachments))
		for i, a := range c.ImageAttachments {
			a.UnsplashID = clonePtr(a.UnsplashID)
			a.AttributionName = clonePtr(a.AttributionName)
			a.AttributionLink = clonePtr(a.AttributionLink)
			clone.ImageAttachments[i] = a
		}
	}
	return clone
}

var (
	errInvalidID       = errors.New("card id is empty")
	errInvalidStatus   = errors.New("invalid card status")
	errEaseOutOfBounds = errors.New("ease factor out of bounds")
	errNegativeField   = errors.New("negative scheduling value")
	errMissingDue      = errors.New("due is required once a card has been scheduled")
)

// Validate checks the scheduling invariants of the card.
func (c Card) Validate() error {
	if c.ID == uuid.Nil {
		return errInvalidID
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: %q", errInvalidStatus, c.Status)
	}
	if c.EaseFactor < MinEaseFactor || c.EaseFactor > MaxEaseFactor {
		return fmt.Errorf("%w: %v", errEaseOutOfBounds, c.EaseFactor)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: interval %v", errNegativeField, c.Interval)
	}
	if c.Lapses < 0 {
		return fmt.Errorf("%w: lapses %d", errNegativeField, c.Lapses)
	}
	if c.Status != StatusNew && c.Due == nil {
		return errMissingDue
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
