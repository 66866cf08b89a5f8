package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/saves"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	db       *sql.DB
	clock    *fakeClock
	issuer   *auth.Issuer
	presence *PresenceService
	accounts *AccountService
	saves    *SaveService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	clock := newFakeClock()
	issuer := auth.NewIssuer([]byte("test-secret"), 0, auth.WithClock(clock.Now))

	ps := NewPresenceService(db, rm, 0, nopLogger{})
	ps.now = clock.Now

	as := NewAccountService(db, rm, issuer, cryptox.NewHasher(bcrypt.MinCost), ps, nopLogger{})
	as.now = clock.Now

	ss := NewSaveService(db, rm, nopLogger{})
	ss.now = clock.Now

	return &testEnv{db: db, clock: clock, issuer: issuer, presence: ps, accounts: as, saves: ss}
}

func (e *testEnv) presenceRows(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM presence`).Scan(&n))
	return n
}

// fakeRepoManager hands out fixed fakes regardless of the DBTX.
type fakeRepoManager struct {
	accounts accounts.Repository
	saves    saves.Repository
	presence presence.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accounts.Repository      { return m.accounts }
func (m *fakeRepoManager) Saves(dbx.DBTX) saves.Repository            { return m.saves }
func (m *fakeRepoManager) Presence(dbx.DBTX) presence.Repository      { return m.presence }
