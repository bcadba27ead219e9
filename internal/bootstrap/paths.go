package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/config"
)

// Paths are the data file locations of one language.
type Paths struct {
	DataDirectory      string
	CardsFile          string
	ProgressFile       string
	LexiconCacheFile   string
	DictionaryCacheDir string
	ExportDirectory    string
}

// NewPaths derives the locations from the configuration. Explicitly configured
// locations win over the ones under the data directory.
func NewPaths(cfg *config.Config) Paths {
	language := card.Language(cfg.Language)
	dataDir := cfg.DataDirectory

	paths := Paths{
		DataDirectory:      dataDir,
		CardsFile:          filepath.Join(dataDir, language.StoreFileName()),
		ProgressFile:       filepath.Join(dataDir, fmt.Sprintf("progress_%s.yml", language)),
		LexiconCacheFile:   filepath.Join(dataDir, fmt.Sprintf("lexicon_%s_v1.yml", language)),
		DictionaryCacheDir: filepath.Join(dataDir, "dictionary", string(language)),
		ExportDirectory:    filepath.Join(dataDir, "exports"),
	}
	if cfg.Lexicon.CacheFile != "" {
		paths.LexiconCacheFile = cfg.Lexicon.CacheFile
	}
	if cfg.Dictionary.CacheDirectory != "" {
		paths.DictionaryCacheDir = cfg.Dictionary.CacheDirectory
	}
	if cfg.Outputs.ExportDirectory != "" {
		paths.ExportDirectory = cfg.Outputs.ExportDirectory
	}
	return paths
}

// MkdirAll creates the directories the data files are written into.
func (p Paths) MkdirAll() error {
	for _, dir := range []string{
		p.DataDirectory,
		filepath.Dir(p.LexiconCacheFile),
		p.DictionaryCacheDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	return nil
}
