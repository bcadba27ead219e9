package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/review"
	"github.com/at-ishikawa/flashcards/internal/srs"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=review_cli.go -destination=../mocks/cli/mock_reviewer.go -package=mock_cli

// Reviewer is the part of review.Session the terminal loop drives.
type Reviewer interface {
	Queue(newLimit int) []card.Card
	Rate(ctx context.Context, id uuid.UUID, rating srs.Rating) (card.Card, error)
	Remaining() int
}

// ReviewCLI shows the cards of the day one by one and reads the ratings from the terminal.
type ReviewCLI struct {
	reviewer     Reviewer
	cards        []card.Card
	reviewed     int
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	warning      *color.Color
}

func NewReviewCLI(reviewer Reviewer, newLimit int) *ReviewCLI {
	return &ReviewCLI{
		reviewer:     reviewer,
		cards:        reviewer.Queue(newLimit),
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		warning:      color.New(color.FgYellow),
	}
}

// GetCardCount returns the number of remaining cards
func (r *ReviewCLI) GetCardCount() int {
	return len(r.cards)
}

// Reviewed returns the number of cards rated in this session.
func (r *ReviewCLI) Reviewed() int {
	return r.reviewed
}

// Run repeats review steps until the queue is empty, the user quits or an interrupt arrives.
func (r *ReviewCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := r.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(r.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session reviews the next card. It returns errEnd when the session is over.
func (r *ReviewCLI) Session(ctx context.Context) error {
	if r.reviewer.Remaining() == 0 {
		_, _ = fmt.Fprintln(r.stdoutWriter, "Daily review limit reached. Come back tomorrow!")
		return errEnd
	}
	if len(r.cards) == 0 {
		_, _ = fmt.Fprintln(r.stdoutWriter, "No more cards to review!")
		return errEnd
	}
	current := r.cards[0]

	_, _ = r.bold.Fprintf(r.stdoutWriter, "\n%s\n", current.Front)
	_, _ = fmt.Fprint(r.stdoutWriter, "Press Enter to show the answer (q to quit): ")
	input, err := r.readLine()
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}

	r.showAnswer(current)

	var rating srs.Rating
	for {
		_, _ = fmt.Fprint(r.stdoutWriter, "Rate [1] again [2] hard [3] medium [4] easy (q to quit): ")
		input, err := r.readLine()
		if err != nil {
			return err
		}
		if isQuit(input) {
			return errEnd
		}
		rating, err = srs.ParseRating(input)
		if err == nil {
			break
		}
		_, _ = r.warning.Fprintf(r.stdoutWriter, "%v\n", err)
	}

	updated, err := r.reviewer.Rate(ctx, current.ID, rating)
	switch {
	case errors.Is(err, review.ErrDailyLimitReached):
		_, _ = fmt.Fprintln(r.stdoutWriter, "Daily review limit reached. Come back tomorrow!")
		return errEnd
	case review.IsPersistenceError(err):
		_, _ = r.warning.Fprintf(r.stdoutWriter, "The review was recorded but could not be saved: %v\n", err)
	case err != nil:
		return fmt.Errorf("reviewer.Rate() > %w", err)
	}

	r.cards = r.cards[1:]
	r.reviewed++
	if updated.Due != nil {
		_, _ = fmt.Fprintf(r.stdoutWriter, "Next review: %s (%s)\n", updated.Due.Format("2006-01-02 15:04"), rating)
	}
	return nil
}

func (r *ReviewCLI) showAnswer(c card.Card) {
	if c.Back != "" {
		_, _ = r.bold.Fprintf(r.stdoutWriter, "  %s\n", c.Back)
	}
	if c.PartOfSpeech != nil {
		details := *c.PartOfSpeech
		if c.Gender != nil {
			details += ", " + *c.Gender
		}
		_, _ = fmt.Fprintf(r.stdoutWriter, "  (%s)\n", details)
	}
	if c.Definition != "" && c.Definition != c.Back {
		_, _ = fmt.Fprintf(r.stdoutWriter, "  %s\n", c.Definition)
	}
	if c.ExampleSentence != "" {
		_, _ = r.italic.Fprintf(r.stdoutWriter, "  %s\n", c.ExampleSentence)
	}
	if c.Notes != nil {
		_, _ = fmt.Fprintf(r.stdoutWriter, "  Notes: %s\n", *c.Notes)
	}
}

// readLine returns errEnd once the input is closed.
func (r *ReviewCLI) readLine() (string, error) {
	line, err := r.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errEnd
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isQuit(input string) bool {
	input = strings.ToLower(input)
	return input == "q" || input == "quit"
}

// FormatDue describes when a card is due relative to now.
func FormatDue(c card.Card, now time.Time) string {
	if c.Due == nil {
		return "new"
	}
	if !c.Due.After(now) {
		return "due now"
	}
	return c.Due.In(now.Location()).Format("2006-01-02 15:04")
}
