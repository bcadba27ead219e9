// Package testutil provides shared test helpers for creating config files and card fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/card"
)

// ConfigOption configures optional fields of the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	seedCount         int
	defaultDailyLimit int
	dictionaryBaseURL string
}

// WithSeedCount sets the number of cards seeded from the lexicon.
func WithSeedCount(count int) ConfigOption {
	return func(cfg *testConfig) {
		cfg.seedCount = count
	}
}

// WithDailyLimit sets the default daily review limit.
func WithDailyLimit(limit int) ConfigOption {
	return func(cfg *testConfig) {
		cfg.defaultDailyLimit = limit
	}
}

// WithDictionaryBaseURL points the dictionary client at a test server.
func WithDictionaryBaseURL(url string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.dictionaryBaseURL = url
	}
}

// SetupTestConfig creates a config file using the file storage under tmpDir/data.
// By default 3 cards are seeded and the daily limit is 10.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		seedCount:         3,
		defaultDailyLimit: 10,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var content strings.Builder
	fmt.Fprintf(&content, `language: es
data_directory: %s
cards:
  seed_count: %d
storage:
  driver: file
progress:
  default_daily_limit: %d
`, DataDirectory(tmpDir), cfg.seedCount, cfg.defaultDailyLimit)
	if cfg.dictionaryBaseURL != "" {
		fmt.Fprintf(&content, "dictionary:\n  base_url: %s\n  retry_attempts: 1\n", cfg.dictionaryBaseURL)
	}

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content.String()), 0644))
	return cfgPath
}

// DataDirectory returns the data directory used by SetupTestConfig.
func DataDirectory(tmpDir string) string {
	return filepath.Join(tmpDir, "data")
}

// CardsFile returns the Spanish card collection file under the data directory.
func CardsFile(tmpDir string) string {
	return filepath.Join(DataDirectory(tmpDir), card.Spanish.StoreFileName())
}

// CreateCardCollection writes the cards as the Spanish card collection.
func CreateCardCollection(t *testing.T, tmpDir string, cards ...card.Card) {
	t.Helper()
	require.NoError(t, card.NewYAMLFileStore(CardsFile(tmpDir)).Save(context.Background(), cards))
}

// ReadCardCollection reads back the Spanish card collection.
func ReadCardCollection(t *testing.T, tmpDir string) []card.Card {
	t.Helper()
	cards, err := card.NewYAMLFileStore(CardsFile(tmpDir)).Load(context.Background())
	require.NoError(t, err)
	return cards
}

// NewReviewCard returns a card that has been reviewed before and is due at due.
func NewReviewCard(front, back string, due time.Time) card.Card {
	c := card.New(front, back)
	c.Status = card.StatusReview
	c.Interval = 3
	c.Due = &due
	return c
}
