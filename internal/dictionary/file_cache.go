package dictionary

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

// FileCache keeps raw dictionary responses on disk, one file per word.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(word string) string {
	return filepath.Join(f.rootDir, url.PathEscape(word)+".json")
}

// cache returns the cached response of the word, or calls fetch and stores its result.
// Errors from fetch are returned unchanged and nothing is stored.
func (f *FileCache) cache(word string, fetch func() ([]byte, error)) ([]byte, error) {
	if f.rootDir == "" {
		return fetch()
	}

	path := f.filePath(word)
	contents, err := os.ReadFile(path)
	if err == nil {
		return contents, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	contents, err = fetch()
	if err != nil {
		return nil, err
	}
	if err := yamlfile.WriteFile(path, contents); err != nil {
		return contents, fmt.Errorf("yamlfile.WriteFile(%s) > %w", path, err)
	}
	return contents, nil
}
