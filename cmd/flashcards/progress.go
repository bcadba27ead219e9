package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/progress"
)

func newProgressCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "progress",
		Short: "Show or change today's review progress",
	}
	command.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the reviews done today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
					writeProgress(cmd.OutOrStdout(), services.Tracker)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "limit <n>",
			Short: "Set the daily review limit",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				limit, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid limit %q: %w", args[0], err)
				}
				return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
					if err := services.Tracker.SetDailyLimit(limit); err != nil {
						return fmt.Errorf("tracker.SetDailyLimit() > %w", err)
					}
					writeProgress(cmd.OutOrStdout(), services.Tracker)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset today's review count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
					if err := services.Tracker.ResetAllCounts(); err != nil {
						return fmt.Errorf("tracker.ResetAllCounts() > %w", err)
					}
					writeProgress(cmd.OutOrStdout(), services.Tracker)
					return nil
				})
			},
		},
	)
	return command
}

func writeProgress(output io.Writer, tracker *progress.Tracker) {
	state := tracker.Snapshot()
	fmt.Fprintf(output, "Reviewed today: %d / %d\n", state.TodayReviewedCount, state.DailyLimit)
	if tracker.LimitReached() {
		_, _ = color.New(color.FgYellow).Fprintln(output, "Daily limit reached")
		return
	}
	fmt.Fprintf(output, "Remaining: %d\n", tracker.Remaining())
}
