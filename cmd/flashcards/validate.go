package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/card"
)

// cardError is a card that breaks the scheduling invariants.
type cardError struct {
	Card card.Card
	Err  error
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and the stored cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			output := cmd.OutOrStdout()
			fmt.Fprintf(output, "Configuration is valid (language: %s, storage: %s)\n",
				card.Language(cfg.Language).DisplayName(), cfg.Storage.Driver)

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				stores, err := bootstrap.OpenStores(ctx, app, cfg, bootstrap.NewPaths(cfg), cfg.Storage.Driver)
				if err != nil {
					return fmt.Errorf("bootstrap.OpenStores() > %w", err)
				}
				cards, err := stores.Cards.Load(ctx)
				if err != nil {
					return fmt.Errorf("cards cannot be read: %w", err)
				}

				errs := validateCards(cards)
				displayValidationResults(output, len(cards), errs)
				if len(errs) > 0 {
					return fmt.Errorf("validation failed with %d error(s)", len(errs))
				}
				return nil
			})
		},
	}
}

func validateCards(cards []card.Card) []cardError {
	var errs []cardError
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			errs = append(errs, cardError{Card: c, Err: err})
		}
	}
	return errs
}

func displayValidationResults(output io.Writer, total int, errs []cardError) {
	if len(errs) == 0 {
		_, _ = color.New(color.FgGreen).Fprintf(output, "All validations passed! (%d cards)\n", total)
		return
	}
	red := color.New(color.FgRed)
	_, _ = red.Fprintf(output, "Card Validation Errors (%d)\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(output, "  %s %q: %v\n", shortID(e.Card), e.Card.Front, e.Err)
	}
}
