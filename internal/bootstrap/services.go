package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashcards/internal/assets"
	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/clock"
	"github.com/at-ishikawa/flashcards/internal/config"
	"github.com/at-ishikawa/flashcards/internal/database"
	"github.com/at-ishikawa/flashcards/internal/dictionary"
	"github.com/at-ishikawa/flashcards/internal/lexicon"
	"github.com/at-ishikawa/flashcards/internal/progress"
	"github.com/at-ishikawa/flashcards/internal/srs"
	"github.com/at-ishikawa/flashcards/schemas"
)

const (
	DriverFile  = "file"
	DriverMySQL = "mysql"
)

// Services are the components one command works with.
type Services struct {
	Config     *config.Config
	Paths      Paths
	Language   card.Language
	Clock      clock.Clock
	Cards      *card.Repository
	Scheduler  *srs.Scheduler
	Tracker    *progress.Tracker
	Lexicon    *lexicon.Repository
	Dictionary dictionary.Client
}

// Stores are the persistence backends selected by the storage driver.
type Stores struct {
	Cards    card.Store
	Progress progress.Store
}

// OpenStores returns the stores for driver. For MySQL the connection is opened,
// migrated and closed by a shutdown hook of app.
func OpenStores(ctx context.Context, app *App, cfg *config.Config, paths Paths, driver string) (Stores, error) {
	language := card.Language(cfg.Language)
	switch driver {
	case DriverFile:
		return Stores{
			Cards:    card.NewYAMLFileStore(paths.CardsFile),
			Progress: progress.NewYAMLFileStore(paths.ProgressFile),
		}, nil
	case DriverMySQL:
		db, err := openDatabase(ctx, app, cfg.Database)
		if err != nil {
			return Stores{}, err
		}
		return Stores{
			Cards:    database.NewCardStore(db, language),
			Progress: database.NewProgressStore(db, language),
		}, nil
	}
	return Stores{}, fmt.Errorf("unknown storage driver: %q", driver)
}

func openDatabase(ctx context.Context, app *App, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	applied, err := database.Migrate(ctx, db, schemas.Migrations)
	if err != nil {
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	if len(applied) > 0 {
		slog.Default().Debug("applied migrations", slog.Any("versions", applied))
	}
	return db, nil
}

// Open builds the services and loads the card collection. Storage read failures
// are logged and the services start from an empty state.
func Open(ctx context.Context, app *App, cfg *config.Config) (*Services, error) {
	paths := NewPaths(cfg)
	if err := paths.MkdirAll(); err != nil {
		return nil, fmt.Errorf("paths.MkdirAll() > %w", err)
	}

	stores, err := OpenStores(ctx, app, cfg, paths, cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}

	language := card.Language(cfg.Language)
	systemClock := clock.System{}

	cards := card.NewRepository(stores.Cards)
	if err := cards.Load(ctx); err != nil {
		if !errors.Is(err, card.ErrStorageRead) {
			return nil, fmt.Errorf("cards.Load() > %w", err)
		}
		slog.Default().Warn("starting with an empty card collection", slog.Any("error", err))
	}

	tracker, err := progress.NewTracker(stores.Progress, systemClock, cfg.Progress.DefaultDailyLimit)
	if err != nil {
		slog.Default().Warn("starting with the default progress", slog.Any("error", err))
	}

	var lexiconOpts []lexicon.Option
	if data, ok := assets.LexiconCSV(cfg.Language); ok {
		lexiconOpts = append(lexiconOpts, lexicon.WithFallbackCSV(data))
	}

	return &Services{
		Config:    cfg,
		Paths:     paths,
		Language:  language,
		Clock:     systemClock,
		Cards:     cards,
		Scheduler: srs.NewScheduler(systemClock),
		Tracker:   tracker,
		Lexicon:   lexicon.NewRepository(cfg.Lexicon.CSVFile, paths.LexiconCacheFile, lexiconOpts...),
		Dictionary: dictionary.NewDictionaryAPIClient(dictionary.Config{
			BaseURL:        cfg.Dictionary.BaseURL,
			Language:       cfg.Language,
			CacheDirectory: paths.DictionaryCacheDir,
			Timeout:        time.Duration(cfg.Dictionary.TimeoutSeconds) * time.Second,
			RetryAttempts:  uint(cfg.Dictionary.RetryAttempts),
		}),
	}, nil
}

// SeedIfNeeded fills an empty collection from the lexicon. The lexicon is only
// loaded when the collection is empty.
func (s *Services) SeedIfNeeded(ctx context.Context) (int, error) {
	if s.Cards.Count() > 0 || s.Config.Cards.SeedCount <= 0 {
		return 0, nil
	}
	if err := s.Lexicon.EnsureLoaded(ctx); err != nil {
		return 0, fmt.Errorf("lexicon.EnsureLoaded() > %w", err)
	}
	created, err := s.Cards.SeedIfNeeded(ctx, s.Config.Cards.SeedCount, s.Lexicon.Entries())
	if err != nil {
		return created, fmt.Errorf("cards.SeedIfNeeded() > %w", err)
	}
	if created > 0 {
		slog.Default().Info("seeded the card collection", slog.Int("count", created))
	}
	return created, nil
}
