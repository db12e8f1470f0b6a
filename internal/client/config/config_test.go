package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args []string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"dms"}, args...)
}

func TestDefaults(t *testing.T) {
	withArgs(t, nil)
	cfg := LoadConfig()
	require.Equal(t, "http://localhost:8080/api", cfg.ServerBaseURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, "dms.db", cfg.SessionDBPath)
}

func TestEnvOverridesDefaults(t *testing.T) {
	withArgs(t, nil)
	t.Setenv("DMS_SERVER_URL", "http://env:9090/api")
	t.Setenv("DMS_REQUEST_TIMEOUT", "3s")
	t.Setenv("DMS_SESSION_DB", "/tmp/env.db")

	cfg := LoadConfig()
	require.Equal(t, "http://env:9090/api", cfg.ServerBaseURL)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/env.db", cfg.SessionDBPath)
}

func TestInvalidEnvTimeoutIgnored(t *testing.T) {
	withArgs(t, nil)
	t.Setenv("DMS_REQUEST_TIMEOUT", "soon")
	cfg := LoadConfig()
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestJsonFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://json:7070/api",
		"request_timeout": "7s"
	}`), 0o600))

	withArgs(t, []string{"-c", path})
	t.Setenv("DMS_SERVER_URL", "http://env:9090/api")

	cfg := LoadConfig()
	require.Equal(t, "http://json:7070/api", cfg.ServerBaseURL)
	require.Equal(t, 7*time.Second, cfg.RequestTimeout)
	require.Equal(t, "dms.db", cfg.SessionDBPath)
}

func TestFlagsWinOverEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_base_url": "http://json:7070/api"}`), 0o600))

	withArgs(t, []string{"-c", path, "-a", "http://flag:6060/api", "-t", "30", "-s", "/tmp/flag.db"})
	cfg := LoadConfig()
	require.Equal(t, "http://flag:6060/api", cfg.ServerBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/flag.db", cfg.SessionDBPath)
}

func TestBrokenJsonPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	withArgs(t, []string{"-c", path})
	require.Panics(t, func() { LoadConfig() })
}
