package statistics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/progress"
)

func scheduled(status card.Status, ease float64, lapses int, due time.Time) card.Card {
	c := card.New("palabra", "word")
	c.Status = status
	c.EaseFactor = ease
	c.Lapses = lapses
	c.Due = &due
	return c
}

func TestCalculate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		cards        []card.Card
		state        progress.State
		forecastDays int
		want         Result
	}{
		{
			name:         "empty collection",
			state:        progress.State{DailyLimit: 20},
			forecastDays: 0,
			want: Result{
				ByStatus: []StatusCount{
					{Status: card.StatusNew}, {Status: card.StatusLearning},
					{Status: card.StatusReview}, {Status: card.StatusRelearning},
				},
				DailyLimit: 20,
				Remaining:  20,
			},
		},
		{
			name: "mixed collection",
			cards: []card.Card{
				card.New("uno", ""),
				card.New("dos", ""),
				scheduled(card.StatusLearning, 2.5, 0, now.Add(-time.Minute)),
				scheduled(card.StatusReview, 2.6, 1, now.AddDate(0, 0, -3)),
				scheduled(card.StatusReview, 2.2, 0, now.AddDate(0, 0, 2)),
				scheduled(card.StatusRelearning, 1.5, 3, now.Add(10*time.Hour)),
				scheduled(card.StatusReview, 3.0, 0, now.AddDate(0, 0, 30)),
			},
			state:        progress.State{DailyLimit: 10, TodayReviewedCount: 12},
			forecastDays: 3,
			want: Result{
				Total: 7,
				ByStatus: []StatusCount{
					{Status: card.StatusNew, Count: 2},
					{Status: card.StatusLearning, Count: 1},
					{Status: card.StatusReview, Count: 3},
					{Status: card.StatusRelearning, Count: 1},
				},
				DueNow:        2,
				TotalLapses:   4,
				AverageEase:   (2.5 + 2.6 + 2.2 + 1.5 + 3.0) / 5,
				DailyLimit:    10,
				ReviewedToday: 12,
				Remaining:     0,
				Forecast: []DueForecast{
					{Date: "2025-06-01", Count: 3},
					{Date: "2025-06-02", Count: 0},
					{Date: "2025-06-03", Count: 1},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.cards, tt.state, now, tt.forecastDays)
			assert.Equal(t, tt.want.Total, got.Total)
			assert.Equal(t, tt.want.ByStatus, got.ByStatus)
			assert.Equal(t, tt.want.DueNow, got.DueNow)
			assert.Equal(t, tt.want.TotalLapses, got.TotalLapses)
			assert.InDelta(t, tt.want.AverageEase, got.AverageEase, 1e-9)
			assert.Equal(t, tt.want.DailyLimit, got.DailyLimit)
			assert.Equal(t, tt.want.ReviewedToday, got.ReviewedToday)
			assert.Equal(t, tt.want.Remaining, got.Remaining)
			assert.Equal(t, tt.want.Forecast, got.Forecast)
		})
	}
}

func TestResult_Write(t *testing.T) {
	result := Result{
		Total: 3,
		ByStatus: []StatusCount{
			{Status: card.StatusNew, Count: 2},
			{Status: card.StatusReview, Count: 1},
		},
		DueNow:        1,
		AverageEase:   2.5,
		DailyLimit:    20,
		ReviewedToday: 4,
		Remaining:     16,
		Forecast:      []DueForecast{{Date: "2025-06-01", Count: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, result.Write(&buf))
	got := buf.String()

	assert.Contains(t, got, "Daily review limit    20\n")
	assert.Contains(t, got, "Reviewed today        4\n")
	assert.Contains(t, got, "Total cards           3\n")
	assert.Contains(t, got, "  new                 2\n")
	assert.Contains(t, got, "Average ease          2.50\n")
	assert.Contains(t, got, "2025-06-01            1\n")
}
