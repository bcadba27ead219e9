package database

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/schemas"
)

func TestMigrate(t *testing.T) {
	migrations := fstest.MapFS{
		"migrations/002_create_progress.sql": {Data: []byte("CREATE TABLE review_progress (language VARCHAR(8))")},
		"migrations/001_create_cards.sql":    {Data: []byte("CREATE TABLE cards (id CHAR(36))")},
		"migrations/README.md":               {Data: []byte("ignored")},
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []string
		wantErr   bool
	}{
		{
			name: "applies every migration in order",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT version FROM schema_migrations").
					WillReturnRows(sqlmock.NewRows([]string{"version"}))
				for _, version := range []string{"001_create_cards", "002_create_progress"} {
					mock.ExpectBegin()
					mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
					mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(version).
						WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectCommit()
				}
			},
			want: []string{"001_create_cards", "002_create_progress"},
		},
		{
			name: "skips applied migrations",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT version FROM schema_migrations").
					WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("001_create_cards"))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE review_progress").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002_create_progress").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			want: []string{"002_create_progress"},
		},
		{
			name: "failed migration is rolled back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT version FROM schema_migrations").
					WillReturnRows(sqlmock.NewRows([]string{"version"}))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE cards").WillReturnError(fmt.Errorf("syntax error"))
				mock.ExpectRollback()
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

			got, err := Migrate(context.Background(), sqlx.NewDb(db, "mysql"), migrations)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(schemas.Migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/001_create_cards.sql",
		"migrations/002_create_progress.sql",
	}, files)
}
