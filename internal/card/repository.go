package card

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/flashcards/internal/lexicon"
)

var (
	// ErrStorageRead is reported when persisted cards exist but cannot be read.
	// The repository continues with an empty collection.
	ErrStorageRead = errors.New("failed to read the card store")
	// ErrStorageWrite is reported when the collection cannot be persisted.
	// The in-memory collection stays authoritative.
	ErrStorageWrite = errors.New("failed to write the card store")
	ErrCardNotFound = errors.New("card not found")
	ErrAmbiguousID  = errors.New("card id prefix matches several cards")
)

//go:generate mockgen -source=repository.go -destination=../mocks/card/mock_store.go -package=mock_card

// Store persists a whole card collection.
// Load returns an empty collection and no error when nothing was persisted yet.
type Store interface {
	Load(ctx context.Context) ([]Card, error)
	Save(ctx context.Context, cards []Card) error
}

// Scheduler places a card created by the user into the learning queue.
type Scheduler interface {
	EnsureScheduled(c Card) Card
}

// Repository is the single authority over the cards of one language.
// All operations are serialized and every mutation is written through to the store.
type Repository struct {
	mu    sync.Mutex
	store Store
	cards []Card
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Load replaces the in-memory collection with the persisted one.
// On failure the collection is empty and the returned error wraps ErrStorageRead.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.store.Load(ctx)
	if err != nil {
		r.cards = nil
		return fmt.Errorf("%w: store.Load() > %w", ErrStorageRead, err)
	}
	r.cards = cards
	return nil
}

// SeedIfNeeded creates one blank card per lexicon entry, for the count
// lowest-ranked entries, only when the collection is still empty.
// It returns the number of cards created.
func (r *Repository) SeedIfNeeded(ctx context.Context, count int, entries []lexicon.Entry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.cards) > 0 || count <= 0 {
		return 0, nil
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b lexicon.Entry) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	if len(sorted) > count {
		sorted = sorted[:count]
	}
	if len(sorted) == 0 {
		return 0, nil
	}

	for _, entry := range sorted {
		r.cards = append(r.cards, New(entry.Lemma, ""))
	}
	return len(sorted), r.persist(ctx)
}

// CreateFromLexicon adds a card for a word the user picked explicitly.
// Unlike seeded cards, it is pre-filled from the entry and due right away.
func (r *Repository) CreateFromLexicon(ctx context.Context, entry lexicon.Entry, scheduler Scheduler) (Card, error) {
	c := scheduler.EnsureScheduled(FromLexiconEntry(entry))
	return c, r.Upsert(ctx, c)
}

// Upsert replaces the card with the same ID, or appends it.
func (r *Repository) Upsert(ctx context.Context, c Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c = c.Clone()
	if i := r.indexOf(c.ID); i >= 0 {
		r.cards[i] = c
	} else {
		r.cards = append(r.cards, c)
	}
	return r.persist(ctx)
}

// Delete removes the card with the ID. Deleting an unknown ID is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	r.cards = slices.Delete(r.cards, i, i+1)
	return r.persist(ctx)
}

func (r *Repository) Get(id uuid.UUID) (Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Card{}, false
	}
	return r.cards[i].Clone(), true
}

// Resolve finds a card by its full ID or by a unique prefix of it.
func (r *Repository) Resolve(ref string) (Card, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return Card{}, ErrCardNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	found := -1
	for i, c := range r.cards {
		if !strings.HasPrefix(c.ID.String(), ref) {
			continue
		}
		if found >= 0 {
			return Card{}, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
		}
		found = i
	}
	if found < 0 {
		return Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, ref)
	}
	return r.cards[found].Clone(), nil
}

func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cards)
}

// All returns a snapshot of the collection in insertion order.
func (r *Repository) All() []Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(func(Card) bool { return true })
}

// DueCards returns the scheduled cards due at now, the most overdue first.
func (r *Repository) DueCards(now time.Time) []Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dueCards(now)
}

// NewCards returns up to limit cards that were never reviewed, in insertion order.
// A negative limit returns all of them.
func (r *Repository) NewCards(limit int) []Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newCards(limit)
}

// ReviewQueue returns the due cards followed by up to newLimit new cards.
func (r *Repository) ReviewQueue(now time.Time, newLimit int) []Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(r.dueCards(now), r.newCards(newLimit)...)
}

func (r *Repository) dueCards(now time.Time) []Card {
	due := r.snapshot(func(c Card) bool { return c.IsDue(now) })
	slices.SortStableFunc(due, func(a, b Card) int {
		return a.Due.Compare(*b.Due)
	})
	return due
}

func (r *Repository) newCards(limit int) []Card {
	cards := r.snapshot(func(c Card) bool { return c.Status == StatusNew })
	if limit >= 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	return cards
}

func (r *Repository) snapshot(filter func(Card) bool) []Card {
	result := make([]Card, 0, len(r.cards))
	for _, c := range r.cards {
		if filter(c) {
			result = append(result, c.Clone())
		}
	}
	return result
}

func (r *Repository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.cards, func(c Card) bool {
		return c.ID == id
	})
}

// persist must be called with mu held.
func (r *Repository) persist(ctx context.Context) error {
	if err := r.store.Save(ctx, slices.Clone(r.cards)); err != nil {
		return fmt.Errorf("%w: store.Save() > %w", ErrStorageWrite, err)
	}
	return nil
}
