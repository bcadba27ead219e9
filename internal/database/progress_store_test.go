package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/card"
	"github.com/at-ishikawa/flashcards/internal/progress"
)

const selectProgressQuery = `SELECT language, daily_limit, today_reviewed_count, last_review_date FROM review_progress WHERE language = \?`

func TestProgressStore_Load(t *testing.T) {
	lastReview := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *progress.State
		wantErr   bool
	}{
		{
			name: "stored progress",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProgressQuery).WithArgs("es").
					WillReturnRows(sqlmock.NewRows([]string{"language", "daily_limit", "today_reviewed_count", "last_review_date"}).
						AddRow("es", 30, 4, lastReview))
			},
			want: &progress.State{DailyLimit: 30, TodayReviewedCount: 4, LastReviewDate: lastReview},
		},
		{
			name: "nothing stored",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProgressQuery).WithArgs("es").WillReturnError(sql.ErrNoRows)
			},
			want: nil,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProgressQuery).WithArgs("es").WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			got, err := NewProgressStore(sqlx.NewDb(db, "mysql"), card.Spanish).Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressStore_Save(t *testing.T) {
	lastReview := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO review_progress").
		WithArgs("es", 25, 3, lastReview).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewProgressStore(sqlx.NewDb(db, "mysql"), card.Spanish)
	require.NoError(t, store.Save(progress.State{DailyLimit: 25, TodayReviewedCount: 3, LastReviewDate: lastReview}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
