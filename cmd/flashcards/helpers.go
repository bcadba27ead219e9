package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/config"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// runWithServices loads the configuration and the card collection, runs fn and
// closes the stores afterwards.
func runWithServices(cmd *cobra.Command, fn func(ctx context.Context, services *bootstrap.Services) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app := bootstrap.New()
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		services, err := bootstrap.Open(ctx, app, cfg)
		if err != nil {
			return fmt.Errorf("bootstrap.Open() > %w", err)
		}
		return fn(ctx, services)
	})
}

func shortID(c card.Card) string {
	return c.ID.String()[:8]
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeCard(output io.Writer, c card.Card, location *time.Location) {
	due := "-"
	if c.Due != nil {
		due = c.Due.In(location).Format(time.DateTime)
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	for _, row := range [][2]string{
		{"ID", c.ID.String()},
		{"Front", c.Front},
		{"Back", c.Back},
		{"Definition", c.Definition},
		{"Example", c.ExampleSentence},
		{"Part of speech", valueOf(c.PartOfSpeech)},
		{"Gender", valueOf(c.Gender)},
		{"Notes", valueOf(c.Notes)},
		{"Status", string(c.Status)},
		{"Ease factor", strconv.FormatFloat(c.EaseFactor, 'f', 2, 64)},
		{"Interval", strconv.FormatFloat(c.Interval, 'f', 1, 64) + " days"},
		{"Due", due},
		{"Lapses", strconv.Itoa(c.Lapses)},
	} {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}
