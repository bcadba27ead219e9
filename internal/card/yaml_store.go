package card

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

// YAMLFileStore keeps the card collection in a single YAML file.
type YAMLFileStore struct {
	path string
}

func NewYAMLFileStore(path string) *YAMLFileStore {
	return &YAMLFileStore{path: path}
}

func (s *YAMLFileStore) Path() string {
	return s.path
}

func (s *YAMLFileStore) Load(_ context.Context) ([]Card, error) {
	cards, err := yamlfile.Read[[]Card](s.path)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("yamlfile.Read() > %w", err)
	}
	return cards, nil
}

func (s *YAMLFileStore) Save(_ context.Context, cards []Card) error {
	if cards == nil {
		cards = []Card{}
	}
	if err := yamlfile.Write(s.path, cards); err != nil {
		return fmt.Errorf("yamlfile.Write() > %w", err)
	}
	return nil
}
