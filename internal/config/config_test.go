package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return "-env=" + filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "/upload", cfg.UploadPath)
	assert.Equal(t, "/ask", cfg.AskPath)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, uint(1), cfg.Retry.Attempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.Delay)
	assert.False(t, cfg.Dev)
	assert.Empty(t, cfg.LogPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DOCASK_SERVER_URL", "https://docs.example.com")
	t.Setenv("DOCASK_REQUEST_TIMEOUT", "45s")
	t.Setenv("DOCASK_RETRY_ATTEMPTS", "3")
	t.Setenv("DOCASK_TOKEN", "secret")

	cfg, err := Load([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com", cfg.ServerURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint(3), cfg.Retry.Attempts)
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DOCASK_SERVER_URL", "https://docs.example.com")
	logDir := t.TempDir()

	cfg, err := Load([]string{noEnvFile(t), "-dev", "-logPath", logDir, "-server", "http://127.0.0.1:9000"})
	require.NoError(t, err)

	assert.True(t, cfg.Dev)
	assert.Equal(t, logDir, cfg.LogPath)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.ServerURL)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DOCASK_ASK_PATH=/v2/ask\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DOCASK_ASK_PATH") })

	cfg, err := Load([]string{"-env=" + envFile})
	require.NoError(t, err)
	assert.Equal(t, "/v2/ask", cfg.AskPath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad scheme", args: []string{"-server", "ftp://host"}},
		{name: "missing host", args: []string{"-server", "http://"}},
		{name: "zero attempts", env: map[string]string{"DOCASK_RETRY_ATTEMPTS": "0"}},
		{name: "negative timeout", env: map[string]string{"DOCASK_REQUEST_TIMEOUT": "-1s"}},
		{name: "missing log dir", args: []string{"-logPath", "/definitely/not/here"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(append([]string{noEnvFile(t)}, tt.args...))
			assert.Error(t, err)
		})
	}
}
