package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MYBLOG_API_BASE_URL", "MYBLOG_TIMEOUT", "MYBLOG_LOCALE", "MYBLOG_ROUTES", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "en", cfg.Locale)
	assert.Empty(t, cfg.RoutesFile)
}

func TestLoad_FromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	clearEnv(t)
	os.Unsetenv("MYBLOG_API_BASE_URL")
	os.Unsetenv("MYBLOG_TIMEOUT")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"MYBLOG_API_BASE_URL=https://blog.example.com\nMYBLOG_TIMEOUT=3s\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	t.Setenv("MYBLOG_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MYBLOG_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("MYBLOG_TIMEOUT", "")
	t.Setenv("MYBLOG_API_BASE_URL", "blog.example.com")
	_, err = Load()
	assert.Error(t, err)
}
