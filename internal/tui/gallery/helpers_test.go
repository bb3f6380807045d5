package gallery

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

type memStore struct {
	values map[string]string
}

func (m *memStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

type nopSource struct{}

func (nopSource) Search(context.Context, string, int, int) ([]core.ImageRecord, error) {
	return nil, nil
}

type fakeDownloader struct {
	saved []string
}

func (d *fakeDownloader) Download(_ context.Context, record core.ImageRecord, dir string) (string, error) {
	path := dir + "/" + record.ID + ".jpg"
	d.saved = append(d.saved, path)
	return path, nil
}

func sampleRecords(prefix string, n int) []core.ImageRecord {
	out := make([]core.ImageRecord, n)
	for i := range out {
		out[i] = core.ImageRecord{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			URL:         fmt.Sprintf("https://images.example/%s/%d.jpg", prefix, i),
			Author:      "Ansel",
			Description: fmt.Sprintf("%s photo %d", prefix, i),
			Tags:        []string{"Snow", "Forest"},
		}
	}
	return out
}

type harness struct {
	store  *memStore
	opened []string
	dl     *fakeDownloader
}

func newTestModel(t *testing.T) (Model, *harness) {
	t.Helper()
	h := &harness{store: &memStore{values: map[string]string{}}, dl: &fakeDownloader{}}
	favorites, err := core.LoadFavorites(h.store, logger.Nop())
	require.NoError(t, err)
	theme, err := core.LoadTheme(h.store, logger.Nop())
	require.NoError(t, err)

	session := core.NewSession(core.SessionOptions{
		Seed:   3,
		Now:    func() time.Time { return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC) },
		Logger: logger.Nop(),
	}, favorites, theme)

	m := NewModel(Options{
		Session:     session,
		Source:      nopSource{},
		Downloader:  h.dl,
		DownloadDir: "/downloads",
		OpenURL: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
		Logger: logger.Nop(),
	})
	m.Init()
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// deliver completes the in-flight page fetch with records.
func deliver(t *testing.T, m Model, records []core.ImageRecord) (Model, tea.Cmd) {
	t.Helper()
	req, ok := m.session.Browse().Pending()
	require.True(t, ok, "expected a fetch in flight")
	return update(t, m, pageLoadedMsg{Result: core.PageResult{Request: req, Records: records}})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, k)
	}
	return m
}
