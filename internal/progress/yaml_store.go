package progress

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

// YAMLFileStore keeps the progress state as a small key-value YAML document.
type YAMLFileStore struct {
	path string
}

func NewYAMLFileStore(path string) *YAMLFileStore {
	return &YAMLFileStore{path: path}
}

func (s *YAMLFileStore) Load() (*State, error) {
	state, err := yamlfile.Read[State](s.path)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("yamlfile.Read() > %w", err)
	}
	return &state, nil
}

func (s *YAMLFileStore) Save(state State) error {
	if err := yamlfile.Write(s.path, state); err != nil {
		return fmt.Errorf("yamlfile.Write() > %w", err)
	}
	return nil
}
