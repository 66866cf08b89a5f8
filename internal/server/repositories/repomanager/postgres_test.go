package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/saves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew(t *testing.T) {
	m, err := New(dbx.DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	m, err = New(dbx.DriverSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	_, err = New("mysql")
	require.Error(t, err)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	pg := NewPostgresRepositoryManager()
	assert.IsType(t, &accounts.PostgresRepository{}, pg.Accounts(db))
	assert.IsType(t, &saves.PostgresRepository{}, pg.Saves(db))
	assert.IsType(t, &presence.PostgresRepository{}, pg.Presence(db))

	lite := NewSQLiteRepositoryManager()
	assert.IsType(t, &accounts.SQLiteRepository{}, lite.Accounts(db))
	assert.IsType(t, &saves.SQLiteRepository{}, lite.Saves(db))
	assert.IsType(t, &presence.SQLiteRepository{}, lite.Presence(db))
}

func TestRunMigrations_PassesDialect(t *testing.T) {
	db := newDB(t)

	var got []string
	orig := migrateUp
	migrateUp = func(ctx context.Context, db *sql.DB, driver string) error {
		got = append(got, driver)
		return nil
	}
	defer func() { migrateUp = orig }()

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	require.NoError(t, NewSQLiteRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, []string{dbx.DriverPostgres, dbx.DriverSQLite}, got)
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)

	orig := migrateUp
	migrateUp = func(ctx context.Context, db *sql.DB, driver string) error {
		return errors.New("boom")
	}
	defer func() { migrateUp = orig }()

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestSQLiteManager_MigratesRealDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	m := NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(ctx, db))

	_, err = m.Saves(db).List(ctx)
	require.NoError(t, err)
}
