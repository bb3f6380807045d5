package preferences

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/mosaic/internal/config"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

func TestOpenSelectsDriver(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := Open(config.StoreConfig{Driver: config.DriverFile, Path: filepath.Join(dir, "p.json")}, logger.Nop())
	require.NoError(t, err)
	defer fileStore.Close()
	assert.IsType(t, &FileStore{}, fileStore)
	_, watches := fileStore.(Watcher)
	assert.True(t, watches)

	sqlStore, err := Open(config.StoreConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "p.db")}, logger.Nop())
	require.NoError(t, err)
	defer sqlStore.Close()
	assert.IsType(t, &SQLiteStore{}, sqlStore)

	_, err = Open(config.StoreConfig{Driver: "redis", Path: "x"}, logger.Nop())
	assert.Error(t, err)
}
