package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/cli"
	"github.com/at-ishikawa/flashcards/internal/review"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the first cards from the lexicon when the collection is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				created, err := services.SeedIfNeeded(ctx)
				if err != nil {
					return fmt.Errorf("services.SeedIfNeeded() > %w", err)
				}
				if count := services.Cards.Count(); count > 0 && created == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "The collection already has %d cards, nothing to seed.\n", count)
					return nil
				}
				if created == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Seeding is disabled (cards.seed_count is 0), nothing to seed.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d cards.\n", created)
				return nil
			})
		},
	}
}

func newReviewCommand() *cobra.Command {
	var newLimit int

	command := &cobra.Command{
		Use:   "review",
		Short: "Review the cards due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				if _, err := services.SeedIfNeeded(ctx); err != nil {
					return fmt.Errorf("services.SeedIfNeeded() > %w", err)
				}

				session := review.NewSession(services.Cards, services.Scheduler, services.Tracker, services.Clock)
				reviewCLI := cli.NewReviewCLI(session, newLimit)
				fmt.Fprintf(cmd.OutOrStdout(), "Starting a review of %d cards (%d of %d reviews left today)\n",
					reviewCLI.GetCardCount(), session.Remaining(), session.DailyLimit())

				if err := reviewCLI.Run(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reviewed %d cards.\n", reviewCLI.Reviewed())
				return nil
			})
		},
	}

	command.Flags().IntVar(&newLimit, "new", review.DefaultNewCardLimit, "Maximum number of new cards to introduce")
	return command
}
