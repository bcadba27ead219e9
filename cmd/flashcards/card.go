package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/cli"
	"github.com/at-ishikawa/flashcards/internal/dictionary"
	"github.com/at-ishikawa/flashcards/internal/review"
)

// cardStatus is a pflag.Value restricted to the card statuses.
type cardStatus card.Status

func (s *cardStatus) Set(val string) error {
	if !card.Status(val).IsValid() {
		return fmt.Errorf("invalid status: %s", val)
	}
	*s = cardStatus(val)
	return nil
}

func (s cardStatus) String() string {
	return string(s)
}

func (s *cardStatus) Type() string {
	return "status"
}

var _ pflag.Value = (*cardStatus)(nil)

type cardFields struct {
	definition      string
	exampleSentence string
	partOfSpeech    string
	gender          string
	notes           string
}

func (f *cardFields) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.definition, "definition", "", "Definition of the word")
	flags.StringVar(&f.exampleSentence, "example", "", "Example sentence")
	flags.StringVar(&f.partOfSpeech, "pos", "", "Part of speech")
	flags.StringVar(&f.gender, "gender", "", "Grammatical gender")
	flags.StringVar(&f.notes, "notes", "", "Free notes")
}

func newCardCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "card",
		Short: "Manage the cards of the collection",
	}
	command.AddCommand(
		newCardAddCommand(),
		newCardEditCommand(),
		newCardDeleteCommand(),
		newCardListCommand(),
		newCardShowCommand(),
	)
	return command
}

func newCardAddCommand() *cobra.Command {
	var fields cardFields
	var lookup bool

	command := &cobra.Command{
		Use:   "add <front> [back]",
		Short: "Add a card that is due right away",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			front := args[0]
			var back string
			if len(args) > 1 {
				back = args[1]
			}

			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				session := review.NewSession(services.Cards, services.Scheduler, services.Tracker, services.Clock)

				if back == "" && !lookup && fields == (cardFields{}) {
					if err := services.Lexicon.EnsureLoaded(ctx); err != nil {
						slog.Default().Warn("lexicon is not available", slog.Any("error", err))
					} else if entry, ok := services.Lexicon.FindByLemma(front); ok {
						created, err := session.AddFromLexicon(ctx, entry)
						if err != nil {
							return fmt.Errorf("session.AddFromLexicon() > %w", err)
						}
						fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s from the lexicon\n", shortID(created), created.Front)
						return nil
					}
				}

				if lookup {
					entry, err := services.Dictionary.Lookup(ctx, front)
					if err != nil {
						return fmt.Errorf("dictionary.Lookup() > %w", err)
					}
					if entry == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "%s was not found in the dictionary\n", front)
					}
					back = fields.fillFrom(entry, back)
				}

				created, err := session.Add(ctx, card.New(front, back,
					card.WithDefinition(fields.definition),
					card.WithExampleSentence(fields.exampleSentence),
					card.WithPartOfSpeech(fields.partOfSpeech),
					card.WithGender(fields.gender),
					card.WithNotes(fields.notes),
				))
				if err != nil {
					return fmt.Errorf("session.Add() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(created), created.Front)
				return nil
			})
		},
	}

	fields.register(command.Flags())
	command.Flags().BoolVar(&lookup, "lookup", false, "Fill the missing fields from the dictionary")
	return command
}

// fillFrom fills the fields left empty from a dictionary entry and returns the back.
func (f *cardFields) fillFrom(entry *dictionary.Entry, back string) string {
	if entry == nil {
		return back
	}
	if f.definition == "" {
		f.definition = valueOf(entry.ShortDefinition)
	}
	if f.partOfSpeech == "" {
		f.partOfSpeech = valueOf(entry.PartOfSpeech)
	}
	if back != "" {
		return back
	}
	if len(entry.Translations) > 0 {
		return entry.Translations[0]
	}
	return f.definition
}

func newCardEditCommand() *cobra.Command {
	var fields cardFields
	var front, back string

	command := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the content of a card",
		Long:  "Change the content of a card. Only the given flags are changed, and an empty value clears an optional field.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				c, err := services.Cards.Resolve(args[0])
				if err != nil {
					return err
				}

				changed := 0
				cmd.Flags().Visit(func(flag *pflag.Flag) {
					changed++
					switch flag.Name {
					case "front":
						c.Front = front
					case "back":
						c.Back = back
					case "definition":
						c.Definition = fields.definition
					case "example":
						c.ExampleSentence = fields.exampleSentence
					case "pos":
						c.PartOfSpeech = optional(fields.partOfSpeech)
					case "gender":
						c.Gender = optional(fields.gender)
					case "notes":
						c.Notes = optional(fields.notes)
					default:
						changed--
					}
				})
				if changed == 0 {
					return errors.New("no field to change was given")
				}

				if err := services.Cards.Upsert(ctx, c); err != nil {
					return fmt.Errorf("cards.Upsert() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", shortID(c), c.Front)
				return nil
			})
		},
	}

	command.Flags().StringVar(&front, "front", "", "Front of the card")
	command.Flags().StringVar(&back, "back", "", "Back of the card")
	fields.register(command.Flags())
	return command
}

func newCardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				c, err := services.Cards.Resolve(args[0])
				if err != nil {
					return err
				}
				if err := services.Cards.Delete(ctx, c.ID); err != nil {
					return fmt.Errorf("cards.Delete() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(c), c.Front)
				return nil
			})
		},
	}
}

func newCardListCommand() *cobra.Command {
	var dueOnly bool
	var status cardStatus

	command := &cobra.Command{
		Use:   "list",
		Short: "List the cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				now := services.Clock.Now()
				var cards []card.Card
				if dueOnly {
					cards = services.Cards.DueCards(now)
				} else {
					cards = services.Cards.All()
				}
				if status != "" {
					cards = slices.DeleteFunc(cards, func(c card.Card) bool {
						return c.Status != card.Status(status)
					})
				}
				writeCardTable(cmd.OutOrStdout(), cards, services)
				return nil
			})
		},
	}

	command.Flags().BoolVar(&dueOnly, "due", false, "Only list the cards due now")
	command.Flags().Var(&status, "status", fmt.Sprintf("Only list the cards with the status. Possible values are %v", card.Statuses))
	return command
}

func writeCardTable(output io.Writer, cards []card.Card, services *bootstrap.Services) {
	if len(cards) == 0 {
		fmt.Fprintln(output, "No cards found.")
		return
	}
	now := services.Clock.Now()
	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRONT\tBACK\tSTATUS\tDUE")
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(c), c.Front, c.Back, c.Status, cli.FormatDue(c, now))
	}
	_ = w.Flush()
}

func newCardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				c, err := services.Cards.Resolve(args[0])
				if err != nil {
					return err
				}
				writeCard(cmd.OutOrStdout(), c, services.Clock.Now().Location())
				return nil
			})
		},
	}
}
