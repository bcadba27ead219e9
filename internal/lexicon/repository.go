package lexicon

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

var ErrNotLoaded = errors.New("lexicon is not loaded")

// Repository loads the lexicon once, from its cache when possible, and serves
// read-only queries over it.
type Repository struct {
	mu        sync.RWMutex
	csvPath   string
	cachePath string
	fallback  []byte
	entries   []Entry
	ready     bool
}

type Option func(*Repository)

// WithFallbackCSV sets the CSV content imported when no CSV file is configured.
func WithFallbackCSV(data []byte) Option {
	return func(r *Repository) {
		r.fallback = data
	}
}

func NewRepository(csvPath, cachePath string, opts ...Option) *Repository {
	r := &Repository{
		csvPath:   csvPath,
		cachePath: cachePath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureLoaded loads the cached lexicon, or imports the CSV file and caches it.
// Calling it again after a successful load does nothing.
func (r *Repository) EnsureLoaded(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := yamlfile.Read[[]Entry](r.cachePath)
	if err != nil || len(entries) == 0 {
		entries, err = r.importCSV()
		if err != nil {
			r.entries = nil
			return fmt.Errorf("importCSV() > %w", err)
		}
		if err := yamlfile.Write(r.cachePath, entries); err != nil {
			slog.Default().Warn("failed to write the lexicon cache",
				slog.String("cachePath", r.cachePath),
				slog.Any("error", err),
			)
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	r.entries = entries
	r.ready = true
	return nil
}

func (r *Repository) importCSV() ([]Entry, error) {
	if r.csvPath == "" {
		if r.fallback == nil {
			return nil, fmt.Errorf("%w: no cache at %s and no CSV file is configured", ErrNotLoaded, r.cachePath)
		}
		entries, err := ParseCSV(bytes.NewReader(r.fallback))
		if err != nil {
			return nil, fmt.Errorf("ParseCSV(fallback) > %w", err)
		}
		return entries, nil
	}
	file, err := os.Open(r.csvPath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", r.csvPath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	entries, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("ParseCSV(%s) > %w", r.csvPath, err)
	}
	return entries, nil
}

func (r *Repository) IsReady() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// Entries returns all entries in rank order.
func (r *Repository) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

func (r *Repository) TopEntries(count int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if count < 0 {
		count = 0
	}
	return slices.Clone(r.entries[:min(count, len(r.entries))])
}

func (r *Repository) Search(query string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Entry
	for _, entry := range r.entries {
		if entry.Matches(query) {
			result = append(result, entry)
		}
	}
	return result
}

// FindByLemma returns the best ranked entry whose lemma equals the word, ignoring case.
func (r *Repository) FindByLemma(lemma string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if strings.EqualFold(entry.Lemma, lemma) {
			return entry, true
		}
	}
	return Entry{}, false
}

// Reset removes the cache and unloads the lexicon so the next EnsureLoaded imports again.
func (r *Repository) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.ready = false
	if err := os.Remove(r.cachePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove(%s) > %w", r.cachePath, err)
	}
	return nil
}
