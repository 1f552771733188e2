package accounts

import (
	"context"
	"embed"
	"io/fs"

	"github.com/goliatone/go-errors"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the migration files for this package.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// RunMigrations applies the embedded migrations through goose. Goose tracks
// the applied versions in its own table, so repeated runs only apply what is
// pending.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	sub, err := fs.Sub(migrationsFS, "data/sql/migrations")
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to open embedded migrations")
	}

	goose.SetBaseFS(sub)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to set migration dialect")
	}

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to run migrations")
	}

	return nil
}
