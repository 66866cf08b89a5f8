package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.ServerURL)
	assert.Equal(t, time.Minute, c.HeartbeatInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Empty(t, c.Token)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url":         "http://json:3000",
		"heartbeat_interval": "30s",
	})

	env := map[string]string{
		"GAMEKEEPER_SERVER_URL": "http://env:3000",
		"GAMEKEEPER_TOKEN":      "env-token",
	}

	c, err := Load([]string{"-config", path, "-timeout", "3s", "-x"}, env)
	require.NoError(t, err)

	want := &Config{
		ServerURL:         "http://env:3000",
		Token:             "env-token",
		HeartbeatInterval: 30 * time.Second,
		RequestTimeout:    3 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_TokenFlagWins(t *testing.T) {
	c, err := Load([]string{"-token", "flag-token"}, map[string]string{"GAMEKEEPER_TOKEN": "env-token"})
	require.NoError(t, err)
	assert.Equal(t, "flag-token", c.Token)
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))

	_, err := Load([]string{"-c", bad}, map[string]string{})
	require.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "absent.json")}, map[string]string{})
	require.Error(t, err)

	_, err = Load([]string{"-i", "often"}, map[string]string{})
	require.Error(t, err)

	_, err = Load(nil, map[string]string{"GAMEKEEPER_REQUEST_TIMEOUT": "slow"})
	require.Error(t, err)
}
