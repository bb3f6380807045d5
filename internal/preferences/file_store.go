package preferences

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/mosaic/internal/logger"
	mosaicerrors "github.com/alexisbeaulieu97/mosaic/pkg/errors"
)

const fileStoreVersion = "1.0"

// fileStoreDocument is the JSON file format of a FileStore.
type fileStoreDocument struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore keeps preferences in a single JSON document written atomically.
type FileStore struct {
	path string
	log  *logger.Logger

	mu       sync.RWMutex
	values   map[string]string
	lastSave []byte

	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// NewFileStore loads the store at path, creating its directory. A corrupt
// document is logged and replaced by an empty one on the next write.
func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		log:    log.WithFields(map[string]any{"component": "file_store", "path": path}),
		values: make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, mosaicerrors.NewStoreError("", "open", fmt.Errorf("create store directory: %w", err))
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load re-reads the document from disk.
func (s *FileStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return mosaicerrors.NewStoreError("", "load", err)
	}

	values := make(map[string]string)
	var doc fileStoreDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Error(err, "preference file is malformed, using defaults")
	} else if doc.Values != nil {
		values = doc.Values
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key and writes the document.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	data, err := json.MarshalIndent(fileStoreDocument{Version: fileStoreVersion, Values: next}, "", "  ")
	if err != nil {
		return mosaicerrors.NewStoreError(key, "set", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return mosaicerrors.NewStoreError(key, "set", fmt.Errorf("write temporary file: %w", err))
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return mosaicerrors.NewStoreError(key, "set", fmt.Errorf("rename temporary file: %w", err))
	}

	s.values = next
	s.lastSave = data
	return nil
}

// Watch starts watching the document for changes made by other processes.
// The returned channel receives a signal after each reload; it is closed by
// Close. Calling Watch again returns the same channel.
func (s *FileStore) Watch() (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return s.changes, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mosaicerrors.NewStoreError("", "watch", err)
	}
	// Writes land via rename, so watch the directory rather than the file.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, mosaicerrors.NewStoreError("", "watch", err)
	}

	s.watcher = watcher
	s.changes = make(chan struct{}, 1)
	s.done = make(chan struct{})
	go s.run(watcher, s.changes, s.done)

	return s.changes, nil
}

func (s *FileStore) run(watcher *fsnotify.Watcher, changes chan<- struct{}, done chan<- struct{}) {
	defer close(done)
	defer close(changes)

	target := filepath.Clean(s.path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if s.ownWrite() {
				continue
			}
			if err := s.Load(); err != nil {
				s.log.Error(err, "reload after change failed")
				continue
			}
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Error(err, "watch error")
		}
	}
}

// ownWrite reports whether the file still holds what this store last wrote.
func (s *FileStore) ownWrite() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSave != nil && bytes.Equal(data, s.lastSave)
}

// Close stops the watcher, if any.
func (s *FileStore) Close() error {
	s.mu.Lock()
	watcher, done := s.watcher, s.done
	s.watcher = nil
	s.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}
