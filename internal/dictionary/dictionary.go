// Package dictionary looks up words in an online dictionary to pre-fill new cards.
package dictionary

import (
	"context"
	"errors"
)

// ErrLookup is returned when the dictionary is unreachable or answers with an error.
var ErrLookup = errors.New("dictionary lookup failed")

//go:generate mockgen -source=dictionary.go -destination=../mocks/dictionary/mock_client.go -package=mock_dictionary Client

// Client looks up a single word. A word the dictionary does not know is reported
// as a nil entry without an error.
type Client interface {
	Lookup(ctx context.Context, word string) (*Entry, error)
}

type Entry struct {
	Lemma           string
	PartOfSpeech    *string
	Translations    []string
	ShortDefinition *string
}
