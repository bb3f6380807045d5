package gallery

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

func TestInitFetchesSeasonalQuery(t *testing.T) {
	m, _ := newTestModel(t)

	req, ok := m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, "summer", req.Query)
	assert.Equal(t, 1, req.Page)
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
}

func TestUpdate_PageLoadedFillsGrid(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := deliver(t, m, sampleRecords("s", 30))
	assert.Equal(t, 30, m.session.Grid().Len())
	assert.Nil(t, cmd, "the last item is off screen")
	assert.False(t, m.session.Browse().InFlight())
}

func TestUpdate_AutoLoadWhenLastItemVisible(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 400})

	m, cmd := deliver(t, m, sampleRecords("s", 6))
	assert.NotNil(t, cmd)
	req, ok := m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)

	m, cmd = deliver(t, m, nil)
	assert.Nil(t, cmd)
	assert.True(t, m.session.Browse().Cursor().Exhausted)
	assert.Equal(t, "No new items", m.status)
}

func TestUpdate_ScrollingDownTriggersNextPage(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 30))

	for i := 0; i < 40 && !m.session.Browse().InFlight(); i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.True(t, m.session.Browse().InFlight())
	assert.Greater(t, m.scroll, 0)
}

func TestUpdate_FetchErrorKeepsGrid(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 30))

	req, ok := m.session.LoadMore()
	require.True(t, ok)
	m, _ = update(t, m, pageLoadedMsg{Result: core.PageResult{Request: req, Err: errors.New("offline")}})

	banner, isErr := m.Banner()
	assert.True(t, isErr)
	assert.Contains(t, banner, "offline")
	assert.Equal(t, 30, m.session.Grid().Len())

	m, cmd := update(t, m, runes("r"))
	assert.NotNil(t, cmd, "r retries the failed page")
	banner, _ = m.Banner()
	assert.Empty(t, banner)
}

func TestUpdate_DebouncedSearch(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))

	m = press(t, m, runes("/"))
	assert.Equal(t, focusSearch, m.focus)

	base := m.session.TypeQuery("")
	var cmd tea.Cmd
	for _, r := range "cat" {
		m, cmd = update(t, m, runes(string(r)))
		assert.NotNil(t, cmd)
	}
	assert.Equal(t, "cat", m.searchInput.Value())
	assert.True(t, m.session.Debouncer().Pending())

	latest := base + 3
	m, cmd = update(t, m, searchDebounceMsg{Token: latest - 1})
	assert.Nil(t, cmd, "superseded keystrokes do not search")

	m, cmd = update(t, m, searchDebounceMsg{Token: latest})
	assert.NotNil(t, cmd)
	req, ok := m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, "cat", req.Query)
	assert.Equal(t, core.ViewState{Mode: core.ModeBrowsing, Query: "cat", Filtering: true}, m.session.State())
}

func TestUpdate_EnterSearchesImmediately(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))

	m = press(t, m, runes("/"), runes("d"), runes("o"), runes("g"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusGrid, m.focus)
	assert.False(t, m.session.Debouncer().Pending())
	req, ok := m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, "dog", req.Query)

	m, _ = deliver(t, m, nil)
	assert.True(t, m.session.NoContent())
	assert.Contains(t, m.View(), `No content found for "dog"`)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	req, ok = m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, "summer", req.Query)
}

func TestUpdate_FavoritesFlow(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 4))

	m = press(t, m, runes("F"))
	assert.Equal(t, core.ModeBrowsing, m.session.Mode())
	banner, _ := m.Banner()
	assert.Equal(t, "No favorites yet", banner)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.session.Favorites().Contains("s-0"))
	assert.Contains(t, h.store.values[core.FavoritesKey], `"s-0"`)

	m = press(t, m, runes("F"))
	assert.Equal(t, core.ModeFavorites, m.session.Mode())
	assert.Equal(t, 1, m.session.Grid().Len())
	assert.Contains(t, m.View(), "home")

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.session.FavoritesEmpty())
	assert.Contains(t, m.View(), "No favorites yet")

	m = press(t, m, runes("H"))
	assert.Equal(t, core.ModeBrowsing, m.session.Mode())
	assert.True(t, m.session.Browse().InFlight())
}

func TestUpdate_DetailNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 30))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, core.ViewState{Mode: core.ModeDetail, Query: "summer", Index: 0, Return: core.ModeBrowsing}, m.session.State())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.session.State().Index)
	assert.Equal(t, 2, m.Cursor())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.session.State().Index)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, core.ModeBrowsing, m.session.Mode())
	assert.Equal(t, 1, m.Cursor())
}

func TestUpdate_DetailNextFromLastLoadsPage(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 30))

	m.cursor = 29
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.NotNil(t, cmd)
	req, ok := m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd, "a second press does not issue another load")

	m, _ = deliver(t, m, sampleRecords("t", 30))
	assert.Equal(t, 30, m.session.State().Index)
	assert.Equal(t, 30, m.Cursor())
}

func TestUpdate_DetailNextPastRepeatedPage(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))

	m.cursor = 2
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m, cmd := deliver(t, m, sampleRecords("s", 3))
	assert.NotNil(t, cmd, "the page after the repeats is fetched")
	req, ok := m.session.Browse().Pending()
	require.True(t, ok)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 2, m.session.State().Index)

	m, _ = deliver(t, m, sampleRecords("t", 3))
	assert.Equal(t, 3, m.session.State().Index)
	assert.Equal(t, 3, m.Cursor())
}

func TestUpdate_Comments(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, runes("c"))
	assert.Equal(t, focusComment, m.focus)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	content, err := m.session.Detail()
	require.NoError(t, err)
	assert.False(t, content.HasComments, "blank comments are not sent")

	m = press(t, m, runes("n"), runes("i"), runes("c"), runes("e"), tea.KeyMsg{Type: tea.KeyEnter})
	content, err = m.session.Detail()
	require.NoError(t, err)
	assert.Equal(t, []string{"nice"}, content.Comments)
	assert.Empty(t, m.noteInput.Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("x"))
	content, err = m.session.Detail()
	require.NoError(t, err)
	assert.Equal(t, []string{core.NoCommentsMessage}, content.Comments)
}

func TestUpdate_TagChipSearch(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, core.ViewState{Mode: core.ModeBrowsing, Query: "forest", Filtering: true}, m.session.State())
	assert.Equal(t, "forest", m.searchInput.Value())
}

func TestUpdate_ShareDownloadAndOpen(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	for _, k := range []string{"f", "t", "p", "o"} {
		var cmd tea.Cmd
		m, cmd = update(t, m, runes(k))
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())
	}
	require.Len(t, h.opened, 4)
	assert.True(t, strings.HasPrefix(h.opened[0], "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2F"))
	assert.True(t, strings.HasPrefix(h.opened[1], "https://twitter.com/intent/tweet?url="))
	assert.True(t, strings.HasPrefix(h.opened[2], "https://pinterest.com/pin/create/button/?url="))
	assert.Equal(t, "https://images.example/s/0.jpg", h.opened[3])

	m, cmd := update(t, m, runes("s"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, []string{"/downloads/s-0.jpg"}, h.dl.saved)
	banner, isErr := m.Banner()
	assert.False(t, isErr)
	assert.Equal(t, "Saved to /downloads/s-0.jpg", banner)
}

func TestUpdate_ThemeToggle(t *testing.T) {
	m, h := newTestModel(t)
	assert.Contains(t, m.View(), "Switch to Dark Mode")

	m = press(t, m, runes("D"))
	assert.True(t, m.session.Theme().Dark())
	assert.Equal(t, "true", h.store.values[core.DarkModeKey])
	assert.Contains(t, m.View(), "Switch to Light Mode")
}

func TestUpdate_PreferencesChanged(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = deliver(t, m, sampleRecords("s", 3))

	h.store.values[core.FavoritesKey] = `{"version":1,"images":[{"id":"s-2","url":"https://images.example/s/2.jpg"}]}`
	h.store.values[core.DarkModeKey] = "true"
	m, cmd := update(t, m, preferencesChangedMsg{})
	assert.Nil(t, cmd, "no watcher is configured")

	item, ok := m.session.Grid().Item(2)
	require.True(t, ok)
	assert.True(t, item.Favorited)
	assert.True(t, m.session.Theme().Dark())
}

func TestUpdate_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("?"))
	assert.True(t, m.showHelp)
	m = press(t, m, runes("?"))
	assert.False(t, m.showHelp)
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
