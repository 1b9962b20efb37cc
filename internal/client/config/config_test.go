package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 24*time.Hour, c.SyncInterval)
	assert.Equal(t, "housekeeper.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_EnvThenFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("HOUSEKEEPER_SERVER_ADDR", "env:1")
	t.Setenv("HOUSEKEEPER_SYNC_INTERVAL", "1h")
	t.Setenv("HOUSEKEEPER_DB_PATH", "/tmp/env.db")

	os.Args = []string{"testbin", "-a", "flag:2"}
	cfg := LoadConfig()

	assert.Equal(t, "flag:2", cfg.ServerEndpointAddr)
	assert.Equal(t, time.Hour, cfg.SyncInterval)
	assert.Equal(t, "/tmp/env.db", cfg.DatabasePath)
}

func TestParseEnv_InvalidDurationPanics(t *testing.T) {
	t.Setenv("HOUSEKEEPER_SYNC_INTERVAL", "soon")
	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
