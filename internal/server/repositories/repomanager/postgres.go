// Package repomanager vends dialect-specific repositories bound to a DBTX
// and applies the embedded schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/saves"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

// Saves returns a saves.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Saves(db dbx.DBTX) saves.Repository {
	return saves.NewPostgresRepository(db)
}

// Presence returns a presence.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Presence(db dbx.DBTX) presence.Repository {
	return presence.NewPostgresRepository(db)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the PostgreSQL migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.DriverPostgres)
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
