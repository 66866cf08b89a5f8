package presence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

const (
	upsertQ = `(?s)^INSERT\s+INTO\s+presence\s*\(account_id,\s*last_seen\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(account_id\)\s*DO\s+UPDATE\s+SET\s+last_seen\s*=\s*EXCLUDED\.last_seen\s*$`
	deleteQ = `(?s)^DELETE\s+FROM\s+presence\s+WHERE\s+account_id\s*=\s*\$1\s*$`
	listQ   = `(?s)^SELECT\s+p\.account_id,\s*a\.username,\s*p\.last_seen,\s*s\.character_name,\s*s\.level\s+FROM\s+presence\s+p\s+JOIN\s+accounts\s+a.*LEFT\s+JOIN\s+save_records\s+s.*WHERE\s+p\.last_seen\s*>=\s*\$1\s+ORDER\s+BY\s+p\.last_seen\s+DESC\s*$`
	sweepQ  = `(?s)^DELETE\s+FROM\s+presence\s+WHERE\s+last_seen\s*<\s*\$1\s*$`
)

func TestUpsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(upsertQ).WithArgs("acc-1", at).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), "acc-1", at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQ).WillReturnError(errors.New("boom"))

	err := repo.Upsert(context.Background(), "acc-1", time.Now())
	require.Error(t, err)
	assert.Regexp(t, `^db error: boom$`, err.Error())
}

func TestDelete_MissingIsNotError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).WithArgs("acc-1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "acc-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSince(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cutoff := time.Date(2026, 3, 1, 9, 55, 0, 0, time.UTC)
	seen := cutoff.Add(4 * time.Minute)
	rows := sqlmock.NewRows([]string{"account_id", "username", "last_seen", "character_name", "level"}).
		AddRow("acc-1", "alice", seen, "Vex", int64(4)).
		AddRow("acc-2", "bob", seen, nil, nil)
	mock.ExpectQuery(listQ).WithArgs(cutoff).WillReturnRows(rows)

	got, err := repo.ListSince(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "alice", got[0].UserName)
	require.NotNil(t, got[0].CharacterName)
	assert.Equal(t, "Vex", *got[0].CharacterName)
	require.NotNil(t, got[0].Level)
	assert.Equal(t, int64(4), *got[0].Level)

	assert.Equal(t, "bob", got[1].UserName)
	assert.Nil(t, got[1].CharacterName)
	assert.Nil(t, got[1].Level)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSince_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "last_seen", "character_name", "level"}))

	got, err := repo.ListSince(context.Background(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDeleteBefore(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cutoff := time.Date(2026, 3, 1, 9, 55, 0, 0, time.UTC)
	mock.ExpectExec(sweepQ).WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDeleteBefore_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(sweepQ).WillReturnError(errors.New("locked"))

	_, err := repo.DeleteBefore(context.Background(), time.Now())
	require.Error(t, err)
	assert.Regexp(t, `^db error: locked$`, err.Error())
}
