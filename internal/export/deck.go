package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/flashcards/internal/assets"
	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

// DeckOptions controls the rendering of a deck sheet.
type DeckOptions struct {
	Language     card.Language
	TemplatePath string
	Now          time.Time
}

func newDeckTemplate(cards []card.Card, opts DeckOptions) assets.DeckTemplate {
	data := assets.DeckTemplate{
		Title:    opts.Language.DisplayName() + " flashcards",
		Language: opts.Language.DisplayName(),
		Date:     opts.Now,
		Cards:    make([]assets.DeckCard, 0, len(cards)),
	}
	for _, c := range cards {
		deckCard := assets.DeckCard{
			Front:           c.Front,
			Back:            c.Back,
			Definition:      c.Definition,
			ExampleSentence: c.ExampleSentence,
			PartOfSpeech:    valueOf(c.PartOfSpeech),
			Gender:          valueOf(c.Gender),
			Notes:           valueOf(c.Notes),
			Status:          string(c.Status),
		}
		if c.Due != nil {
			deckCard.Due = c.Due.In(opts.Now.Location()).Format(time.DateOnly)
		}
		data.Cards = append(data.Cards, deckCard)
	}
	return data
}

// WriteMarkdown renders the deck sheet into directory as deck_<language>_<date>.md
// and returns the path of the file.
func WriteMarkdown(directory string, cards []card.Card, opts DeckOptions) (string, error) {
	contents, err := renderDeck(cards, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(directory, deckFileName(opts)+".md")
	if err := yamlfile.WriteFile(path, contents); err != nil {
		return "", fmt.Errorf("yamlfile.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// WritePDF renders the deck sheet and converts it into directory as deck_<language>_<date>.pdf.
func WritePDF(directory string, cards []card.Card, opts DeckOptions) (string, error) {
	contents, err := renderDeck(cards, opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}
	path := filepath.Join(directory, deckFileName(opts)+".pdf")
	renderer := mdtopdf.NewPdfRenderer("P", "A4", path, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(contents); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}
	return path, nil
}

func renderDeck(cards []card.Card, opts DeckOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := assets.WriteDeck(&buf, opts.TemplatePath, newDeckTemplate(cards, opts)); err != nil {
		return nil, fmt.Errorf("assets.WriteDeck() > %w", err)
	}
	return buf.Bytes(), nil
}

func deckFileName(opts DeckOptions) string {
	return fmt.Sprintf("deck_%s_%s", opts.Language, opts.Now.Format("20060102"))
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
