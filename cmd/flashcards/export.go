package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/export"
)

func newExportCommand() *cobra.Command {
	var outputDirectory string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export the card collection",
	}
	command.PersistentFlags().StringVarP(&outputDirectory, "output", "o", "", "Output directory. Defaults to outputs.export_directory")

	runExport := func(cmd *cobra.Command, write func(directory string, services *bootstrap.Services) (string, error)) error {
		return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
			directory := outputDirectory
			if directory == "" {
				directory = services.Paths.ExportDirectory
			}
			path, err := write(directory, services)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", services.Cards.Count(), path)
			return nil
		})
	}
	deckOptions := func(services *bootstrap.Services) export.DeckOptions {
		return export.DeckOptions{
			Language:     services.Language,
			TemplatePath: services.Config.Templates.DeckTemplate,
			Now:          services.Clock.Now(),
		}
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "json",
			Short: "Export the cards and their scheduling state as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExport(cmd, func(directory string, services *bootstrap.Services) (string, error) {
					path, err := export.WriteJSON(directory, services.Cards.All(), appVersion, services.Clock.Now())
					if err != nil {
						return "", fmt.Errorf("export.WriteJSON() > %w", err)
					}
					return path, nil
				})
			},
		},
		&cobra.Command{
			Use:   "markdown",
			Short: "Export the cards as a markdown deck sheet",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExport(cmd, func(directory string, services *bootstrap.Services) (string, error) {
					path, err := export.WriteMarkdown(directory, services.Cards.All(), deckOptions(services))
					if err != nil {
						return "", fmt.Errorf("export.WriteMarkdown() > %w", err)
					}
					return path, nil
				})
			},
		},
		&cobra.Command{
			Use:   "pdf",
			Short: "Export the cards as a PDF deck sheet",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExport(cmd, func(directory string, services *bootstrap.Services) (string, error) {
					path, err := export.WritePDF(directory, services.Cards.All(), deckOptions(services))
					if err != nil {
						return "", fmt.Errorf("export.WritePDF() > %w", err)
					}
					return path, nil
				})
			},
		},
	)
	return command
}
