package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "vioflow.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.False(t, cfg.Auth.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VIOFLOW_SERVER_HOST", "127.0.0.1")
	t.Setenv("VIOFLOW_SERVER_PORT", "9090")
	t.Setenv("VIOFLOW_DB_PATH", "/tmp/test.db")
	t.Setenv("VIOFLOW_LOG_LEVEL", "debug")
	t.Setenv("VIOFLOW_AUTH_TOKEN", "secret")
	t.Setenv("VIOFLOW_TRANSPORT_MODE", "stdio")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/test.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "secret", cfg.Auth.Token)
	require.Equal(t, "stdio", cfg.Transport.Mode)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("VIOFLOW_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTransportMode(t *testing.T) {
	t.Setenv("VIOFLOW_TRANSPORT_MODE", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  host: 10.0.0.1\n  port: 7070\ndb:\n  path: file.db\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("VIOFLOW_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1", cfg.Server.Host)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "file.db", cfg.DB.Path)

	// Env overrides the file
	t.Setenv("VIOFLOW_SERVER_PORT", "7071")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, 7071, cfg.Server.Port)
}

func TestAddr(t *testing.T) {
	cfg := Config{Server: ServerConfig{Host: "localhost", Port: 8080}}
	require.Equal(t, "localhost:8080", cfg.Addr())
}
