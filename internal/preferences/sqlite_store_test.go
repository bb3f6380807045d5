package preferences

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)

	_, ok, err := store.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("darkModePreference", "true"))
	require.NoError(t, store.Set("darkModePreference", "false"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("darkModePreference")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", value)
}
