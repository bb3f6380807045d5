package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/mosaic/internal/config"
	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
	"github.com/alexisbeaulieu97/mosaic/internal/preferences"
)

// setupHome points HOME at a temp dir so ~/.mosaic resolves inside it.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvAccessKey, "")
	t.Setenv(config.EnvLogLevel, "")
	return home
}

func preferencesPath(home string) string {
	return filepath.Join(home, ".mosaic", "preferences.json")
}

func seedFavorites(t *testing.T, home string, records ...gallery.ImageRecord) {
	t.Helper()
	store, err := preferences.NewFileStore(preferencesPath(home), logger.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	favorites, err := gallery.LoadFavorites(store, logger.Nop())
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, favorites.Add(r))
	}
}

func storedFavorites(t *testing.T, home string) []gallery.ImageRecord {
	t.Helper()
	store, err := preferences.NewFileStore(preferencesPath(home), logger.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	favorites, err := gallery.LoadFavorites(store, logger.Nop())
	require.NoError(t, err)
	return favorites.List()
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

var (
	lake = gallery.ImageRecord{
		ID:          "lake",
		URL:         "https://images.example/lake.jpg",
		Author:      "Vivian Maier",
		Description: "frozen lake",
		Tags:        []string{"winter"},
	}
	pines = gallery.ImageRecord{
		ID:          "pines",
		URL:         "https://images.example/pines.jpg",
		Author:      "Ansel Adams",
		Description: "snow covered pine trees",
	}
)

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
