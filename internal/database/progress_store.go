package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/progress"
)

const progressQueryTimeout = 5 * time.Second

type progressRow struct {
	Language           string    `db:"language"`
	DailyLimit         int       `db:"daily_limit"`
	TodayReviewedCount int       `db:"today_reviewed_count"`
	LastReviewDate     time.Time `db:"last_review_date"`
}

// ProgressStore keeps the review progress of one language in MySQL.
type ProgressStore struct {
	db       *sqlx.DB
	language card.Language
}

func NewProgressStore(db *sqlx.DB, language card.Language) *ProgressStore {
	return &ProgressStore{db: db, language: language}
}

func (s *ProgressStore) Load() (*progress.State, error) {
	ctx, cancel := context.WithTimeout(context.Background(), progressQueryTimeout)
	defer cancel()

	var row progressRow
	err := s.db.GetContext(ctx, &row,
		"SELECT language, daily_limit, today_reviewed_count, last_review_date FROM review_progress WHERE language = ?",
		string(s.language))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review_progress) > %w", err)
	}
	return &progress.State{
		DailyLimit:         row.DailyLimit,
		TodayReviewedCount: row.TodayReviewedCount,
		LastReviewDate:     row.LastReviewDate,
	}, nil
}

func (s *ProgressStore) Save(state progress.State) error {
	ctx, cancel := context.WithTimeout(context.Background(), progressQueryTimeout)
	defer cancel()

	row := progressRow{
		Language:           string(s.language),
		DailyLimit:         state.DailyLimit,
		TodayReviewedCount: state.TodayReviewedCount,
		LastReviewDate:     state.LastReviewDate,
	}
	if _, err := s.db.NamedExecContext(ctx,
		`INSERT INTO review_progress (language, daily_limit, today_reviewed_count, last_review_date)
		VALUES (:language, :daily_limit, :today_reviewed_count, :last_review_date)
		ON DUPLICATE KEY UPDATE
			daily_limit = VALUES(daily_limit),
			today_reviewed_count = VALUES(today_reviewed_count),
			last_review_date = VALUES(last_review_date)`,
		row); err != nil {
		return fmt.Errorf("db.NamedExecContext(review_progress) > %w", err)
	}
	return nil
}
