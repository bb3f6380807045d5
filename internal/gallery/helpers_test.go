package gallery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

var errStoreDown = errors.New("store unavailable")

type memStore struct {
	values  map[string]string
	writes  int
	failSet bool
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	if m.failGet {
		return "", false, errStoreDown
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	if m.failSet {
		return errStoreDown
	}
	m.writes++
	m.values[key] = value
	return nil
}

type fakeSource struct {
	pages map[string][][]ImageRecord
	calls []FetchRequest
	err   error
}

func (f *fakeSource) Search(_ context.Context, query string, page, perPage int) ([]ImageRecord, error) {
	f.calls = append(f.calls, FetchRequest{Query: query, Page: page, PerPage: perPage})
	if f.err != nil {
		return nil, f.err
	}
	pages := f.pages[query]
	if page-1 >= len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

func records(prefix string, n int) []ImageRecord {
	out := make([]ImageRecord, n)
	for i := range out {
		out[i] = ImageRecord{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			URL:         fmt.Sprintf("https://images.example/%s/%d.jpg", prefix, i),
			Author:      "Ansel",
			Description: fmt.Sprintf("%s photo %d", prefix, i),
			Tags:        []string{prefix},
		}
	}
	return out
}

func winterDay() time.Time {
	return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
}

func newTestSession(t *testing.T, store PreferenceStore) *Session {
	t.Helper()
	log := logger.Nop()
	favorites, err := LoadFavorites(store, log)
	require.NoError(t, err)
	theme, err := LoadTheme(store, log)
	require.NoError(t, err)
	return NewSession(SessionOptions{
		PerPage: DefaultPerPage,
		Seed:    7,
		Now:     winterDay,
		Logger:  log,
	}, favorites, theme)
}

// serve answers req from source the way the UI's fetch command does.
func serve(t *testing.T, s *Session, source *fakeSource, req FetchRequest, ok bool) Outcome {
	t.Helper()
	require.True(t, ok, "expected a fetch request")
	recs, err := source.Search(context.Background(), req.Query, req.Page, req.PerPage)
	return s.Complete(PageResult{Request: req, Records: recs, Err: err})
}
