// Package preferences provides the persistent key/value backends used for
// favorites and the theme flag.
package preferences

import (
	"fmt"

	"github.com/alexisbeaulieu97/mosaic/internal/config"
	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

// Store is a preference backend that must be closed after use.
type Store interface {
	gallery.PreferenceStore
	Close() error
}

// Watcher is implemented by stores that can report external changes.
type Watcher interface {
	Watch() (<-chan struct{}, error)
}

// Open returns the backend selected by cfg.
func Open(cfg config.StoreConfig, log *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		store, err := NewFileStore(cfg.Path, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		store, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
