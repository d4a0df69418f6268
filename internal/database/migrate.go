package database

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// configure points goose at the embedded migration files. Goose keeps its
// own version table (goose_db_version) so repeated runs are harmless.
func configure() error {
	goose.SetBaseFS(migrations)
	return goose.SetDialect("mysql")
}

// MigrateUp applies all pending migrations.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, "migrations")
}

// MigrateStatus prints the applied/pending state of every migration.
func MigrateStatus(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, "migrations")
}
