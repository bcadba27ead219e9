package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
)

func newDictionaryCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "dictionary",
		Short: "Look up words in the online dictionary",
	}
	command.AddCommand(&cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				entry, err := services.Dictionary.Lookup(ctx, args[0])
				if err != nil {
					return fmt.Errorf("dictionary.Lookup() > %w", err)
				}
				output := cmd.OutOrStdout()
				if entry == nil {
					fmt.Fprintf(output, "%s was not found\n", args[0])
					return nil
				}
				fmt.Fprintln(output, entry.Lemma)
				if entry.PartOfSpeech != nil {
					fmt.Fprintf(output, "  (%s)\n", *entry.PartOfSpeech)
				}
				if entry.ShortDefinition != nil {
					fmt.Fprintf(output, "  %s\n", *entry.ShortDefinition)
				}
				if len(entry.Translations) > 0 {
					fmt.Fprintf(output, "  %s\n", strings.Join(entry.Translations, ", "))
				}
				return nil
			})
		},
	})
	return command
}
