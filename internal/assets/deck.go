package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"
)

const deckTemplateName = "deck.md.go.tmpl"

//go:embed templates/deck.md.go.tmpl
var fallbackDeckTemplate string

// DeckTemplate is the top-level data structure for deck sheet templates
type DeckTemplate struct {
	Title    string
	Language string
	Date     time.Time
	Cards    []DeckCard
}

// DeckCard is a card prepared for template rendering
type DeckCard struct {
	Front           string
	Back            string
	Definition      string
	ExampleSentence string
	PartOfSpeech    string
	Gender          string
	Notes           string
	Status          string
	Due             string
}

func WriteDeck(output io.Writer, templatePath string, templateData DeckTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, deckTemplateName, fallbackDeckTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
