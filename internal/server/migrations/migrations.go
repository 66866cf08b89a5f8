// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Migrations holds postgres/*.sql and sqlite/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// newProvider is a seam for tests.
var newProvider = func(dialect goose.Dialect, db *sql.DB, fsys fs.FS) (upper, error) {
	return goose.NewProvider(dialect, db, fsys)
}

type upper interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
}

// Up applies all pending migrations for the given database/sql driver name.
// It uses a goose Provider rather than goose's package-level state so it is
// safe to call concurrently on different databases.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case dbx.DriverPostgres:
		dialect, dir = goose.DialectPostgres, "postgres"
	case dbx.DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "sqlite"
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(Migrations, dir)
	if err != nil {
		return fmt.Errorf("migrations dir %s: %w", dir, err)
	}

	p, err := newProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
