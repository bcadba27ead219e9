package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) NOT NULL PRIMARY KEY,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrate applies the *.sql files of migrations that were not applied yet, in file name order.
// It returns the versions applied by this call.
func Migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) ([]string, error) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	slices.Sort(files)

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(create schema_migrations) > %w", err)
	}
	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}

	var versions []string
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")
		if slices.Contains(applied, version) {
			continue
		}

		statement, err := fs.ReadFile(migrations, file)
		if err != nil {
			return versions, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(statement)); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("tx.ExecContext(insert %s) > %w", version, err)
			}
			return nil
		}); err != nil {
			return versions, err
		}
		slog.Info("applied migration", slog.String("version", version))
		versions = append(versions, version)
	}
	return versions, nil
}
