package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// Run applies all pending migrations from dir against db.
func Run(ctx context.Context, db *sql.DB, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// MigrateToVersion migrates up or down to an exact version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, version int64) error {
	if dir == "" {
		dir = DefaultDir
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("reading migration version: %w", err)
	}
	if version == current {
		return nil
	}
	if version > current {
		if err := goose.UpToContext(ctx, db, dir, version); err != nil {
			return fmt.Errorf("migrating up to %d: %w", version, err)
		}
		return nil
	}
	if err := goose.DownToContext(ctx, db, dir, version); err != nil {
		return fmt.Errorf("migrating down to %d: %w", version, err)
	}
	return nil
}
