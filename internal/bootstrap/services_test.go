package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Language:      "es",
		DataDirectory: t.TempDir(),
		Cards:         config.CardsConfig{SeedCount: 5},
		Storage:       config.StorageConfig{Driver: DriverFile},
		Progress:      config.ProgressConfig{DefaultDailyLimit: 20},
		Dictionary: config.DictionaryConfig{
			BaseURL:        "http://127.0.0.1:0",
			TimeoutSeconds: 1,
			RetryAttempts:  1,
		},
	}
}

func TestOpen_FileDriver(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	services, err := Open(ctx, New(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, services.Cards.Count())
	assert.Equal(t, 20, services.Tracker.DailyLimit())

	created, err := services.SeedIfNeeded(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, created)
	assert.FileExists(t, services.Paths.CardsFile)
	assert.FileExists(t, services.Paths.LexiconCacheFile)

	reopened, err := Open(ctx, New(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, reopened.Cards.Count())

	created, err = reopened.SeedIfNeeded(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestOpen_CorruptCardsFile(t *testing.T) {
	cfg := testConfig(t)
	paths := NewPaths(cfg)
	require.NoError(t, os.WriteFile(paths.CardsFile, []byte("{{ not yaml"), 0o644))

	services, err := Open(context.Background(), New(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, services.Cards.Count())
}

func TestServices_SeedIfNeeded_Disabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cards.SeedCount = 0

	services, err := Open(context.Background(), New(), cfg)
	require.NoError(t, err)

	created, err := services.SeedIfNeeded(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.NoFileExists(t, filepath.Join(cfg.DataDirectory, "lexicon_es_v1.yml"))
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)

	_, err := OpenStores(context.Background(), New(), cfg, NewPaths(cfg), "sqlite")
	assert.ErrorContains(t, err, `unknown storage driver: "sqlite"`)
}
