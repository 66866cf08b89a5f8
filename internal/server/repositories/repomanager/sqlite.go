package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/saves"
)

type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Saves(db dbx.DBTX) saves.Repository {
	return saves.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Presence(db dbx.DBTX) presence.Repository {
	return presence.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.DriverSQLite)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
