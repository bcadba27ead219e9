package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/flashcards/internal/card"
	mock_cli "github.com/at-ishikawa/flashcards/internal/mocks/cli"
	"github.com/at-ishikawa/flashcards/internal/review"
	"github.com/at-ishikawa/flashcards/internal/srs"
)

func newTestReviewCLI(reviewer Reviewer, input string, cards ...card.Card) (*ReviewCLI, *bytes.Buffer) {
	var buf bytes.Buffer
	return &ReviewCLI{
		reviewer:     reviewer,
		cards:        cards,
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: &buf,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		warning:      color.New(color.FgYellow),
	}, &buf
}

func rated(c card.Card, due time.Time) card.Card {
	c.Status = card.StatusReview
	c.Due = &due
	return c
}

func TestReviewCLI_Session(t *testing.T) {
	casa := card.New("casa", "house",
		card.WithDefinition("a building for living in"),
		card.WithExampleSentence("Mi casa es tu casa."),
		card.WithPartOfSpeech("noun"),
		card.WithGender("feminine"),
	)
	due := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		input         string
		cards         []card.Card
		remaining     int
		setup         func(m *mock_cli.MockReviewer)
		wantErr       error
		wantReviewed  int
		wantRemaining int
		wantOutput    []string
	}{
		{
			name:      "rates a card by number",
			input:     "\n4\n",
			cards:     []card.Card{casa},
			remaining: 10,
			setup: func(m *mock_cli.MockReviewer) {
				m.EXPECT().Rate(gomock.Any(), casa.ID, srs.RatingEasy).Return(rated(casa, due), nil)
			},
			wantReviewed: 1,
			wantOutput: []string{
				"casa",
				"house",
				"(noun, feminine)",
				"a building for living in",
				"Mi casa es tu casa.",
				"Next review: 2025-06-02 09:00 (easy)",
			},
		},
		{
			name:      "asks again after an invalid rating",
			input:     "\nmaybe\ngood\n",
			cards:     []card.Card{casa},
			remaining: 10,
			setup: func(m *mock_cli.MockReviewer) {
				m.EXPECT().Rate(gomock.Any(), casa.ID, srs.RatingMedium).Return(rated(casa, due), nil)
			},
			wantReviewed: 1,
			wantOutput:   []string{`invalid rating: "maybe"`},
		},
		{
			name:          "quit before the answer",
			input:         "q\n",
			cards:         []card.Card{casa},
			remaining:     10,
			wantErr:       errEnd,
			wantRemaining: 1,
		},
		{
			name:          "quit at the rating prompt",
			input:         "\nquit\n",
			cards:         []card.Card{casa},
			remaining:     10,
			wantErr:       errEnd,
			wantRemaining: 1,
		},
		{
			name:          "closed input ends the session",
			input:         "",
			cards:         []card.Card{casa},
			remaining:     10,
			wantErr:       errEnd,
			wantRemaining: 1,
		},
		{
			name:       "no more cards",
			remaining:  10,
			wantErr:    errEnd,
			wantOutput: []string{"No more cards to review!"},
		},
		{
			name:          "daily limit reached",
			cards:         []card.Card{casa},
			remaining:     0,
			wantErr:       errEnd,
			wantRemaining: 1,
			wantOutput:    []string{"Daily review limit reached"},
		},
		{
			name:      "storage failure is only a warning",
			input:     "\n1\n",
			cards:     []card.Card{casa},
			remaining: 10,
			setup: func(m *mock_cli.MockReviewer) {
				err := errors.Join(fmt.Errorf("cards.Upsert() > %w", card.ErrStorageWrite))
				m.EXPECT().Rate(gomock.Any(), casa.ID, srs.RatingAgain).Return(rated(casa, due), err)
			},
			wantReviewed: 1,
			wantOutput:   []string{"could not be saved"},
		},
		{
			name:      "limit reached while rating",
			input:     "\n3\n",
			cards:     []card.Card{casa},
			remaining: 1,
			setup: func(m *mock_cli.MockReviewer) {
				m.EXPECT().Rate(gomock.Any(), casa.ID, srs.RatingMedium).Return(card.Card{}, review.ErrDailyLimitReached)
			},
			wantErr:       errEnd,
			wantRemaining: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color.NoColor = true
			defer func() { color.NoColor = false }()

			ctrl := gomock.NewController(t)
			reviewer := mock_cli.NewMockReviewer(ctrl)
			reviewer.EXPECT().Remaining().Return(tt.remaining).AnyTimes()
			if tt.setup != nil {
				tt.setup(reviewer)
			}

			cli, out := newTestReviewCLI(reviewer, tt.input, tt.cards...)
			err := cli.Session(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantReviewed, cli.Reviewed())
			assert.Equal(t, tt.wantRemaining, cli.GetCardCount())
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestReviewCLI_Session_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mock_cli.NewMockReviewer(ctrl)
	reviewer.EXPECT().Remaining().Return(10)
	c := card.New("casa", "house")
	want := errors.New("boom")
	reviewer.EXPECT().Rate(gomock.Any(), c.ID, srs.RatingHard).Return(card.Card{}, want)

	cli, _ := newTestReviewCLI(reviewer, "\n2\n", c)
	err := cli.Session(context.Background())
	assert.ErrorIs(t, err, want)
	assert.NotErrorIs(t, err, errEnd)
}

func TestReviewCLI_Run(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctrl := gomock.NewController(t)
	reviewer := mock_cli.NewMockReviewer(ctrl)
	first := card.New("uno", "one")
	second := card.New("dos", "two")
	due := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	reviewer.EXPECT().Queue(5).Return([]card.Card{first, second})
	reviewer.EXPECT().Remaining().Return(10).AnyTimes()
	reviewer.EXPECT().Rate(gomock.Any(), first.ID, srs.RatingEasy).Return(rated(first, due), nil)
	reviewer.EXPECT().Rate(gomock.Any(), second.ID, srs.RatingHard).Return(rated(second, due), nil)

	cli := NewReviewCLI(reviewer, 5)
	var out bytes.Buffer
	cli.stdinReader = bufio.NewReader(strings.NewReader("\neasy\n\nhard\n"))
	cli.stdoutWriter = &out

	require.NoError(t, cli.Run(context.Background()))
	assert.Equal(t, 2, cli.Reviewed())
	assert.Contains(t, out.String(), "No more cards to review!")
}

func TestFormatDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(36 * time.Hour)

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{name: "never scheduled", due: nil, want: "new"},
		{name: "overdue", due: &past, want: "due now"},
		{name: "exactly now", due: &now, want: "due now"},
		{name: "later", due: &future, want: "2025-06-03 00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := card.New("casa", "house")
			c.Due = tt.due
			assert.Equal(t, tt.want, FormatDue(c, now))
		})
	}
}
