package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/gamekeeper/internal/server/config"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.DatabaseDSN = filepath.Join(t.TempDir(), "app.db")
	c.BcryptCost = 4
	c.LogLevel = "error"
	return c
}

func TestNewApp_WiresServices(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	assert.NotNil(t, app.accounts)
	assert.NotNil(t, app.saves)
	assert.NotNil(t, app.presence)

	var n int
	require.NoError(t, app.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	assert.Zero(t, n)
}

func TestNewApp_UnsupportedDriver(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDriver = "oracle"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestApp_RunStopsWhenListenerFails(t *testing.T) {
	c := testConfig(t)
	c.HTTPAddr = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app kept running after the HTTP listener failed")
	}
}

func TestNewApp_RedisPresence(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := testConfig(t)
	c.RedisAddr = mr.Addr()

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = app.redis.Close()
		_ = app.db.Close()
	})

	ctx := context.Background()
	_, _, err = app.accounts.Register(ctx, "alice", "", "secret1")
	require.NoError(t, err)

	assert.True(t, mr.Exists(presence.DefaultRedisKey))
	online, err := app.presence.ListOnline(ctx)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "alice", online[0].UserName)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	c := testConfig(t)
	c.RedisAddr = addr

	_, err = NewApp(context.Background(), c)
	require.Error(t, err)
}
