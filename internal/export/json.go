// Package export writes the card collection to files outside of the card store.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

// Document is the JSON export. It carries card metadata only; image and audio
// files are referenced by name.
type Document struct {
	ExportDate string       `json:"exportDate"`
	AppVersion string       `json:"appVersion,omitempty"`
	Cards      []CardRecord `json:"cards"`
}

type CardRecord struct {
	ID               string            `json:"id"`
	Front            string            `json:"front"`
	Back             string            `json:"back"`
	AudioFileName    *string           `json:"audioFileName,omitempty"`
	ImageAttachments []ImageAttachment `json:"imageAttachments,omitempty"`
	Status           card.Status       `json:"status"`
	EaseFactor       float64           `json:"easeFactor"`
	Interval         float64           `json:"interval"`
	Due              *string           `json:"due,omitempty"`
	Lapses           int               `json:"lapses"`
}

type ImageAttachment struct {
	FileName        string  `json:"fileName"`
	UnsplashID      *string `json:"unsplashId,omitempty"`
	AttributionName *string `json:"attributionName,omitempty"`
	AttributionLink *string `json:"attributionLink,omitempty"`
}

func NewDocument(cards []card.Card, appVersion string, now time.Time) Document {
	doc := Document{
		ExportDate: now.UTC().Format(time.RFC3339),
		AppVersion: appVersion,
		Cards:      make([]CardRecord, 0, len(cards)),
	}
	for _, c := range cards {
		record := CardRecord{
			ID:            c.ID.String(),
			Front:         c.Front,
			Back:          c.Back,
			AudioFileName: c.AudioFileName,
			Status:        c.Status,
			EaseFactor:    c.EaseFactor,
			Interval:      c.Interval,
			Lapses:        c.Lapses,
		}
		for _, a := range c.ImageAttachments {
			record.ImageAttachments = append(record.ImageAttachments, ImageAttachment{
				FileName:        a.FileName,
				UnsplashID:      a.UnsplashID,
				AttributionName: a.AttributionName,
				AttributionLink: a.AttributionLink,
			})
		}
		if c.Due != nil {
			due := c.Due.UTC().Format(time.RFC3339)
			record.Due = &due
		}
		doc.Cards = append(doc.Cards, record)
	}
	return doc
}

// WriteJSON writes the export document into directory as export_<unix time>.json
// and returns the path of the file.
func WriteJSON(directory string, cards []card.Card, appVersion string, now time.Time) (string, error) {
	contents, err := json.MarshalIndent(NewDocument(cards, appVersion, now), "", "  ")
	if err != nil {
		return "", fmt.Errorf("json.MarshalIndent() > %w", err)
	}

	path := filepath.Join(directory, fmt.Sprintf("export_%d.json", now.Unix()))
	if err := yamlfile.WriteFile(path, contents); err != nil {
		return "", fmt.Errorf("yamlfile.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}
