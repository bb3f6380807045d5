package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mosaicerrors "github.com/alexisbeaulieu97/mosaic/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAccessKey, "")
	t.Setenv(EnvLogLevel, "")
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "absent.yaml"), dir, false)
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, 30, cfg.API.PerPage)
	assert.Equal(t, time.Second, cfg.Search.Debounce)
	assert.Equal(t, []int{250, 300, 350, 400}, cfg.Grid.Heights)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, "preferences.json"), cfg.Store.Path)
}

func TestLoadMissingFileRequired(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "absent.yaml"), dir, true)
	var parseErr *mosaicerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadOverlaysFileValues(t *testing.T) {
	t.Setenv(EnvAccessKey, "")
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `
api:
  access_key: from-file
  per_page: 12
search:
  debounce: 750ms
  default_query: mountains
grid:
  heights: [100, 200]
store:
  driver: sqlite
  path: /tmp/mosaic.db
`)

	cfg, err := Load(path, t.TempDir(), true)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.API.AccessKey)
	assert.Equal(t, 12, cfg.API.PerPage)
	assert.Equal(t, 750*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "mountains", cfg.Search.DefaultQuery)
	assert.Equal(t, []int{100, 200}, cfg.Grid.Heights)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, DefaultEndpoint, cfg.API.Endpoint, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvAccessKey, "from-env")
	t.Setenv(EnvLogLevel, "DEBUG")
	path := writeConfig(t, "api:\n  access_key: from-file\n")

	cfg, err := Load(path, t.TempDir(), true)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.API.AccessKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadReportsYAMLLine(t *testing.T) {
	path := writeConfig(t, "api:\n  per_page: 30\n  timeout: [oops\n")

	_, err := Load(path, t.TempDir(), true)

	var parseErr *mosaicerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
	assert.Greater(t, parseErr.Line, 0)
}

func TestLoadExpandsHome(t *testing.T) {
	t.Setenv(EnvAccessKey, "")
	t.Setenv(EnvLogLevel, "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path := writeConfig(t, "downloads:\n  dir: ~/Pictures\n")

	cfg, err := Load(path, t.TempDir(), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Pictures"), cfg.Downloads.Dir)
}
