package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/saves"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Saves(db dbx.DBTX) saves.Repository
	Presence(db dbx.DBTX) presence.Repository
}

// New returns the RepositoryManager for the given database/sql driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	case dbx.DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
