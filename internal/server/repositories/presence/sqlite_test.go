package presence

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "presence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db, dbx.DriverSQLite))
	return db
}

func addAccount(t *testing.T, db *sql.DB, id, username string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO accounts (id, username, password_hash, created_at) VALUES (?, ?, 'h', 0)`, id, username)
	require.NoError(t, err)
}

func TestSQLite_UpsertKeepsSingleEntry(t *testing.T) {
	db := setupSQLite(t)
	addAccount(t, db, "acc-1", "alice")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, "acc-1", first))
	require.NoError(t, r.Upsert(ctx, "acc-1", first.Add(time.Minute)))

	list, err := r.ListSince(ctx, first.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, first.Add(time.Minute).Equal(list[0].LastSeen))
	assert.Equal(t, "alice", list[0].UserName)
	assert.Nil(t, list[0].CharacterName)
}

func TestSQLite_ListSinceJoinsCharacter(t *testing.T) {
	db := setupSQLite(t)
	addAccount(t, db, "acc-1", "alice")
	_, err := db.Exec(`INSERT INTO save_records (account_id, character_name, character_class, level, updated_at) VALUES ('acc-1', 'Vex', 'courier', 5, 0)`)
	require.NoError(t, err)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, "acc-1", now))

	list, err := r.ListSince(ctx, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].CharacterName)
	assert.Equal(t, "Vex", *list[0].CharacterName)
	require.NotNil(t, list[0].Level)
	assert.Equal(t, int64(5), *list[0].Level)
}

func TestSQLite_StaleExcludedAndSwept(t *testing.T) {
	db := setupSQLite(t)
	addAccount(t, db, "old", "old")
	addAccount(t, db, "new", "new")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cutoff := now.Add(-5 * time.Minute)
	require.NoError(t, r.Upsert(ctx, "old", now.Add(-6*time.Minute)))
	require.NoError(t, r.Upsert(ctx, "new", now))

	list, err := r.ListSince(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].AccountID)

	n, err := r.DeleteBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var remaining int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM presence`).Scan(&remaining))
	assert.Equal(t, 1, remaining)
}

func TestSQLite_Delete(t *testing.T) {
	db := setupSQLite(t)
	addAccount(t, db, "acc-1", "alice")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Delete(ctx, "acc-1"))
	require.NoError(t, r.Upsert(ctx, "acc-1", time.Now()))
	require.NoError(t, r.Delete(ctx, "acc-1"))

	list, err := r.ListSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLite_ConcurrentUpserts(t *testing.T) {
	db := setupSQLite(t)
	const accounts = 5
	for i := 0; i < accounts; i++ {
		addAccount(t, db, fmt.Sprintf("acc-%d", i), fmt.Sprintf("user%d", i))
	}
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < accounts; i++ {
		for j := 0; j < 10; j++ {
			wg.Add(1)
			go func(id string, at time.Time) {
				defer wg.Done()
				assert.NoError(t, r.Upsert(ctx, id, at))
			}(fmt.Sprintf("acc-%d", i), now.Add(time.Duration(j)*time.Millisecond))
		}
	}
	wg.Wait()

	list, err := r.ListSince(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, list, accounts)
}
