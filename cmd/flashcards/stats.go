package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var forecastDays int

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics of the card collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				result := statistics.Calculate(
					services.Cards.All(),
					services.Tracker.Snapshot(),
					services.Clock.Now(),
					forecastDays,
				)
				return result.Write(cmd.OutOrStdout())
			})
		},
	}

	command.Flags().IntVar(&forecastDays, "forecast-days", statistics.DefaultForecastDays, "Number of days in the due forecast")
	return command
}
