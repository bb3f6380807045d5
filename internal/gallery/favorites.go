package gallery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

// FavoritesKey is the preference key holding the favorite set.
const FavoritesKey = "favorites"

const favoritesVersion = 1

type favoritesEnvelope struct {
	Version int           `json:"version"`
	Images  []ImageRecord `json:"images"`
}

// Favorites is the persisted, insertion-ordered set of favorited images.
type Favorites struct {
	store PreferenceStore
	log   *logger.Logger

	order []ImageRecord
	ids   map[string]struct{}
}

// LoadFavorites reads the favorite set from store. Malformed stored data
// yields an empty set; only store failures are returned.
func LoadFavorites(store PreferenceStore, log *logger.Logger) (*Favorites, error) {
	f := &Favorites{store: store, log: log, ids: make(map[string]struct{})}
	if err := f.Reload(); err != nil {
		return f, err
	}
	return f, nil
}

// Reload re-reads the set, e.g. after another process changed it.
func (f *Favorites) Reload() error {
	raw, ok, err := f.store.Get(FavoritesKey)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	records := []ImageRecord(nil)
	if ok {
		records = f.decode(raw)
	}
	f.replace(records)
	return nil
}

func (f *Favorites) decode(raw string) []ImageRecord {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	var records []ImageRecord
	if strings.HasPrefix(raw, "[") {
		// unversioned bare array
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			f.log.Error(err, "stored favorites are malformed, starting empty")
			return nil
		}
		return sanitize(records)
	}

	var env favoritesEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		f.log.Error(err, "stored favorites are malformed, starting empty")
		return nil
	}
	if env.Version != favoritesVersion {
		f.log.WithFields(map[string]any{"version": env.Version}).Warn("unsupported favorites version, starting empty")
		return nil
	}
	return sanitize(env.Images)
}

// sanitize drops records without id or url and duplicate ids.
func sanitize(records []ImageRecord) []ImageRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]ImageRecord, 0, len(records))
	for _, r := range records {
		if !r.valid() {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (f *Favorites) replace(records []ImageRecord) {
	f.order = records
	f.ids = make(map[string]struct{}, len(records))
	for _, r := range records {
		f.ids[r.ID] = struct{}{}
	}
}

// persist writes next and swaps it in only once the write succeeded.
func (f *Favorites) persist(next []ImageRecord) error {
	data, err := json.Marshal(favoritesEnvelope{Version: favoritesVersion, Images: next})
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := f.store.Set(FavoritesKey, string(data)); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	f.replace(next)
	return nil
}

// Contains reports whether id is favorited.
func (f *Favorites) Contains(id string) bool {
	_, ok := f.ids[id]
	return ok
}

// Len returns the number of favorites.
func (f *Favorites) Len() int { return len(f.order) }

// List returns the favorites in insertion order.
func (f *Favorites) List() []ImageRecord {
	return append([]ImageRecord(nil), f.order...)
}

// Toggle adds record when absent and removes it otherwise. It returns the
// new favorite state.
func (f *Favorites) Toggle(record ImageRecord) (bool, error) {
	if f.Contains(record.ID) {
		if _, err := f.Remove(record.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := f.Add(record); err != nil {
		return false, err
	}
	return true, nil
}

// Add favorites record. Adding a present id is a no-op.
func (f *Favorites) Add(record ImageRecord) error {
	if !record.valid() {
		return fmt.Errorf("favorite %q: missing id or url", record.ID)
	}
	if f.Contains(record.ID) {
		return nil
	}
	next := make([]ImageRecord, 0, len(f.order)+1)
	next = append(next, f.order...)
	next = append(next, record)
	return f.persist(next)
}

// Remove unfavorites id, reporting whether it was present.
func (f *Favorites) Remove(id string) (bool, error) {
	if !f.Contains(id) {
		return false, nil
	}
	next := make([]ImageRecord, 0, len(f.order))
	for _, r := range f.order {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if err := f.persist(next); err != nil {
		return true, err
	}
	return true, nil
}

// Clear removes every favorite.
func (f *Favorites) Clear() error {
	return f.persist([]ImageRecord{})
}
