package saves

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db, dbx.DriverSQLite))
	return db
}

func TestSQLite_GetMissing(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))

	_, err := r.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLite_CreateGetReplace(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	rec := models.NewSaveRecord("acc-1", "Vex", "courier")
	rec.UpdatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, rec))

	got, err := r.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(models.DefaultGold), got.Gold)
	assert.Equal(t, "[]", string(got.Inventory))
	assert.Equal(t, "null", string(got.Armor))
	assert.True(t, rec.UpdatedAt.Equal(got.UpdatedAt))

	got.Level = 7
	got.Inventory = json.RawMessage(`[ {"id":"lamp", "qty": 2} ]`)
	got.UpdatedAt = rec.UpdatedAt.Add(time.Minute)
	require.NoError(t, r.Replace(ctx, got))

	again, err := r.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), again.Level)
	assert.Equal(t, `[ {"id":"lamp", "qty": 2} ]`, string(again.Inventory))
	assert.True(t, got.UpdatedAt.Equal(again.UpdatedAt))
}

func TestSQLite_CreateTwiceConflicts(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, models.NewSaveRecord("acc-1", "Vex", "courier")))
	err := r.Create(ctx, models.NewSaveRecord("acc-1", "Other", "mystic"))
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestSQLite_ReplaceMissing(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))

	err := r.Replace(context.Background(), models.NewSaveRecord("acc-1", "Vex", "courier"))
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLite_List(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, r.Create(ctx, models.NewSaveRecord("b", "B", "courier")))
	require.NoError(t, r.Create(ctx, models.NewSaveRecord("a", "A", "courier")))

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].AccountID)
	assert.Equal(t, "b", list[1].AccountID)
}
