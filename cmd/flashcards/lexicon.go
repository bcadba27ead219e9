package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/lexicon"
)

func newLexiconCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect the reference word list",
	}

	var limit int
	searchCommand := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the lexicon by lemma, definition or part of speech",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				if err := services.Lexicon.EnsureLoaded(ctx); err != nil {
					return fmt.Errorf("lexicon.EnsureLoaded() > %w", err)
				}
				entries := services.Lexicon.Search(args[0])
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}
				writeLexiconEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
	searchCommand.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show, 0 for all")

	command.AddCommand(
		&cobra.Command{
			Use:   "import",
			Short: "Import the lexicon into the cache",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
					if err := services.Lexicon.Reset(); err != nil {
						return fmt.Errorf("lexicon.Reset() > %w", err)
					}
					if err := services.Lexicon.EnsureLoaded(ctx); err != nil {
						return fmt.Errorf("lexicon.EnsureLoaded() > %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %s\n", len(services.Lexicon.Entries()), services.Paths.LexiconCacheFile)
					return nil
				})
			},
		},
		searchCommand,
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the lexicon cache",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
					if err := services.Lexicon.Reset(); err != nil {
						return fmt.Errorf("lexicon.Reset() > %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Lexicon cache deleted")
					return nil
				})
			},
		},
	)
	return command
}

func writeLexiconEntries(output io.Writer, entries []lexicon.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(output, "No entries found.")
		return
	}
	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tLEMMA\tPOS\tDEFINITION")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Rank, e.Lemma, e.PartOfSpeech, e.Definition)
	}
	_ = w.Flush()
}
