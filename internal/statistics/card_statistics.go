// Package statistics summarizes the card collection and the review progress.
package statistics

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/progress"
)

const DefaultForecastDays = 7

// StatusCount is the number of cards in one status
type StatusCount struct {
	Status card.Status
	Count  int
}

// DueForecast is the number of scheduled cards falling due on one day
type DueForecast struct {
	Date  string // "2025-06-01"
	Count int
}

// Result holds the collection totals and today's progress
type Result struct {
	Total         int
	ByStatus      []StatusCount
	DueNow        int
	TotalLapses   int
	AverageEase   float64 // over cards that left the new status
	DailyLimit    int
	ReviewedToday int
	Remaining     int
	Forecast      []DueForecast
}

// Calculate summarizes the cards at now. Cards due before today are counted in today's forecast.
func Calculate(cards []card.Card, state progress.State, now time.Time, forecastDays int) Result {
	result := Result{
		Total:         len(cards),
		DailyLimit:    state.DailyLimit,
		ReviewedToday: state.TodayReviewedCount,
		Remaining:     max(state.DailyLimit-state.TodayReviewedCount, 0),
	}

	counts := make(map[card.Status]int, len(card.Statuses))
	forecast := make([]int, max(forecastDays, 0))
	today := startOfDay(now)
	var easeSum float64
	var scheduled int
	for _, c := range cards {
		counts[c.Status]++
		result.TotalLapses += c.Lapses
		if c.IsDue(now) {
			result.DueNow++
		}
		if c.Status == card.StatusNew || c.Due == nil {
			continue
		}
		easeSum += c.EaseFactor
		scheduled++

		day := max(int(math.Round(startOfDay(c.Due.In(now.Location())).Sub(today).Hours()/24)), 0)
		if day < len(forecast) {
			forecast[day]++
		}
	}

	for _, status := range card.Statuses {
		result.ByStatus = append(result.ByStatus, StatusCount{Status: status, Count: counts[status]})
	}
	if scheduled > 0 {
		result.AverageEase = easeSum / float64(scheduled)
	}
	for i, count := range forecast {
		result.Forecast = append(result.Forecast, DueForecast{
			Date:  today.AddDate(0, 0, i).Format(time.DateOnly),
			Count: count,
		})
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Write prints the result as a plain text report
func (r Result) Write(w io.Writer) error {
	lines := []string{
		"Review Progress",
		"===============",
		fmt.Sprintf("%-20s  %d", "Daily review limit", r.DailyLimit),
		fmt.Sprintf("%-20s  %d", "Reviewed today", r.ReviewedToday),
		fmt.Sprintf("%-20s  %d", "Remaining today", r.Remaining),
		"",
		"Flashcards",
		"==========",
		fmt.Sprintf("%-20s  %d", "Total cards", r.Total),
	}
	for _, s := range r.ByStatus {
		lines = append(lines, fmt.Sprintf("  %-18s  %d", s.Status, s.Count))
	}
	lines = append(lines,
		fmt.Sprintf("%-20s  %d", "Due now", r.DueNow),
		fmt.Sprintf("%-20s  %d", "Total lapses", r.TotalLapses),
		fmt.Sprintf("%-20s  %.2f", "Average ease", r.AverageEase),
	)
	if len(r.Forecast) > 0 {
		lines = append(lines, "", "Due Forecast", "============")
		for _, f := range r.Forecast {
			lines = append(lines, fmt.Sprintf("%-20s  %d", f.Date, f.Count))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("fmt.Fprintln() > %w", err)
		}
	}
	return nil
}
