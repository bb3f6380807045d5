package gallery

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.searchInput.Width = msg.Width / 3
		m.noteInput.Width = msg.Width / 2
		m.ensureVisible()
		return m, m.autoLoad()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePage(msg)

	case searchDebounceMsg:
		req, ok := m.session.FireSearch(msg.Token)
		if !ok {
			return m, nil
		}
		return m.afterSearch(req, ok)

	case downloadDoneMsg:
		if msg.Err != nil {
			m.log.Error(msg.Err, "download failed")
			m.setBanner(fmt.Sprintf("Download failed: %v", msg.Err), true)
			return m, nil
		}
		m.setBanner(fmt.Sprintf("Saved to %s", msg.Path), false)
		return m, nil

	case urlOpenedMsg:
		if msg.Err != nil {
			m.log.Error(msg.Err, "open url failed")
			m.setBanner(fmt.Sprintf("Could not open browser: %v", msg.Err), true)
		}
		return m, nil

	case preferencesChangedMsg:
		if err := m.session.ReloadFavorites(); err != nil {
			m.setBanner(fmt.Sprintf("Could not reload favorites: %v", err), true)
		}
		if err := m.session.Theme().Reload(); err != nil {
			m.setBanner(fmt.Sprintf("Could not reload theme: %v", err), true)
		}
		m.restyle()
		m.clampCursor()
		return m, watchPreferencesCmd(m.changes)
	}

	return m, nil
}

// handlePage applies a fetched page.
func (m Model) handlePage(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	out := m.session.Complete(msg.Result)
	switch {
	case out.Stale:
		return m, nil
	case out.Err != nil:
		m.setBanner(fmt.Sprintf("Could not load images: %v", out.Err), true)
		return m, nil
	case out.Exhausted:
		if msg.Result.Request.Page > 1 {
			m.status = "No new items"
		}
		return m, nil
	}

	if out.Advanced {
		m.resetDetail()
		m.cursor = m.session.State().Index
	}
	if out.HasNext {
		return m, m.fetch(out.Next, true)
	}
	return m, m.autoLoad()
}

// fetch turns a fetch request into a command.
func (m Model) fetch(req core.FetchRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return fetchPageCmd(m.ctx, m.source, req)
}

// autoLoad requests the next page when the last loaded item is on screen.
func (m Model) autoLoad() tea.Cmd {
	if m.session.Mode() != core.ModeBrowsing {
		return nil
	}
	last := m.currentLayout().lastVisible(m.scroll, m.viewportRows())
	if last < 0 {
		return nil
	}
	return m.fetch(m.session.AutoLoad(last))
}

// afterSearch resets the view for a new query and fetches its first page.
func (m Model) afterSearch(req core.FetchRequest, ok bool) (tea.Model, tea.Cmd) {
	m.resetGrid()
	m.resetDetail()
	m.clearBanner()
	return m, m.fetch(req, ok)
}

// handleKeyPress routes keys to the focused widget or current mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusComment:
		return m.handleCommentKeys(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Dismiss, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.session.Mode() == core.ModeDetail {
		return m.handleDetailKeys(msg)
	}
	return m.handleGridKeys(msg)
}

// handleSearchKeys handles keys while the search input is focused
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.focus = focusGrid
		return m, nil

	case tea.KeyEnter:
		m.searchInput.Blur()
		m.focus = focusGrid
		return m.afterSearch(m.session.Search(m.searchInput.Value()))

	case tea.KeyCtrlU:
		m.searchInput.SetValue("")
		return m.afterSearch(m.session.ClearSearch())
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	token := m.session.TypeQuery(m.searchInput.Value())
	return m, tea.Batch(cmd, debounceCmd(token, m.session.Debouncer().Delay()))
}

// handleCommentKeys handles keys while the comment input is focused
func (m Model) handleCommentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.noteInput.Blur()
		m.focus = focusGrid
		return m, nil

	case tea.KeyEnter:
		if !m.session.SubmitComment() {
			return m, nil
		}
		m.noteInput.SetValue("")
		if content, err := m.session.Detail(); err == nil {
			m.comment = len(content.Comments) - 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	m.session.SetCommentInput(m.noteInput.Value())
	return m, cmd
}

// handleGridKeys handles keys in the browsing and favorites grids
func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, k.Dismiss):
		m.clearBanner()
		m.status = ""
		return m, nil

	case key.Matches(msg, k.Search):
		m.focus = focusSearch
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, k.ClearSearch):
		m.searchInput.SetValue("")
		return m.afterSearch(m.session.ClearSearch())

	case key.Matches(msg, k.Favorites):
		if m.session.Mode() == core.ModeFavorites {
			return m, nil
		}
		if err := m.session.EnterFavorites(); err != nil {
			if errors.Is(err, core.ErrNoFavorites) {
				m.setBanner("No favorites yet", false)
				return m, nil
			}
			m.setBanner(err.Error(), true)
			return m, nil
		}
		m.resetGrid()
		m.clearBanner()
		return m, nil

	case key.Matches(msg, k.Home):
		m.searchInput.SetValue("")
		return m.afterSearch(m.session.LeaveFavorites())

	case key.Matches(msg, k.Theme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, k.Retry):
		m.clearBanner()
		return m, m.fetch(m.session.LoadMore())

	case key.Matches(msg, k.Top):
		m.cursor = 0
		m.scroll = 0
		return m, m.autoLoad()

	case key.Matches(msg, k.Open):
		item, ok := m.session.Grid().Item(m.cursor)
		if !ok {
			return m, nil
		}
		if err := item.Open(); err != nil {
			m.setBanner(err.Error(), true)
			return m, nil
		}
		m.resetDetail()
		return m, nil

	case key.Matches(msg, k.Favorite):
		if _, err := m.session.ToggleFavorite(m.cursor); err != nil {
			m.setBanner(fmt.Sprintf("Could not save favorite: %v", err), true)
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, k.Up):
		return m.moveTo(m.currentLayout().vertical(m.cursor, -1))

	case key.Matches(msg, k.Down):
		return m.moveTo(m.currentLayout().vertical(m.cursor, 1))

	case key.Matches(msg, k.Left):
		return m.moveTo(m.currentLayout().neighbour(m.cursor, -1))

	case key.Matches(msg, k.Right):
		return m.moveTo(m.currentLayout().neighbour(m.cursor, 1))
	}

	return m, nil
}

// handleDetailKeys handles keys in the detail view
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, k.Close):
		m.session.CloseDetail()
		m.resetDetail()
		m.clampCursor()
		m.ensureVisible()
		return m, m.autoLoad()

	case key.Matches(msg, k.Prev):
		return m.navigate(core.Prev)

	case key.Matches(msg, k.Next):
		return m.navigate(core.Next)

	case key.Matches(msg, k.Favorite):
		if _, err := m.session.ToggleDetailFavorite(); err != nil {
			m.setBanner(fmt.Sprintf("Could not save favorite: %v", err), true)
		}
		return m, nil

	case key.Matches(msg, k.Theme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, k.NextChip):
		content, err := m.session.Detail()
		if err != nil || len(content.Chips) == 0 {
			return m, nil
		}
		m.chip = (m.chip + 1) % len(content.Chips)
		return m, nil

	case key.Matches(msg, k.RunChip):
		if m.chip < 0 {
			return m, nil
		}
		content, err := m.session.Detail()
		if err != nil || m.chip >= len(content.Chips) {
			return m, nil
		}
		tag := content.Chips[m.chip][1:]
		req, ok, err := m.session.SearchTag(m.chip)
		if err != nil {
			m.setBanner(err.Error(), true)
			return m, nil
		}
		m.searchInput.SetValue(tag)
		return m.afterSearch(req, ok)

	case key.Matches(msg, k.Comment):
		m.focus = focusComment
		cmd := m.noteInput.Focus()
		return m, cmd

	case key.Matches(msg, k.SelectUp):
		if m.comment > 0 {
			m.comment--
		}
		return m, nil

	case key.Matches(msg, k.SelectDown):
		if content, err := m.session.Detail(); err == nil && content.HasComments && m.comment < len(content.Comments)-1 {
			m.comment++
		}
		return m, nil

	case key.Matches(msg, k.DeleteComment):
		if m.session.RemoveComment(m.comment) && m.comment > 0 {
			if content, err := m.session.Detail(); err == nil && m.comment >= len(content.Comments) {
				m.comment = len(content.Comments) - 1
			}
		}
		return m, nil

	case key.Matches(msg, k.ShareFacebook):
		return m.share(core.Facebook)

	case key.Matches(msg, k.ShareTwitter):
		return m.share(core.Twitter)

	case key.Matches(msg, k.SharePin):
		return m.share(core.Pinterest)

	case key.Matches(msg, k.Download):
		item, ok := m.session.DetailItem()
		if !ok {
			return m, nil
		}
		if m.downloader == nil {
			m.setBanner("Downloads are not available", true)
			return m, nil
		}
		m.setBanner(fmt.Sprintf("Downloading %s…", item.Record.ID), false)
		return m, downloadCmd(m.ctx, m.downloader, item.Record, m.downloadDir)

	case key.Matches(msg, k.Browser):
		item, ok := m.session.DetailItem()
		if !ok {
			return m, nil
		}
		return m, openURLCmd(m.openURL, item.Record.URL)
	}

	return m, nil
}

func (m Model) navigate(dir core.Direction) (tea.Model, tea.Cmd) {
	res, req, ok := m.session.Navigate(dir)
	if res.Moved {
		m.resetDetail()
		m.cursor = res.Index
	}
	return m, m.fetch(req, ok)
}

func (m Model) share(p core.Platform) (tea.Model, tea.Cmd) {
	item, ok := m.session.DetailItem()
	if !ok {
		return m, nil
	}
	link, err := core.ShareURL(p, item.Record.URL)
	if err != nil {
		m.setBanner(err.Error(), true)
		return m, nil
	}
	return m, openURLCmd(m.openURL, link)
}

func (m Model) moveTo(index int) (tea.Model, tea.Cmd) {
	m.cursor = index
	m.ensureVisible()
	return m, m.autoLoad()
}

func (m *Model) toggleTheme() {
	if err := m.session.Theme().Toggle(); err != nil {
		m.setBanner(fmt.Sprintf("Could not save theme: %v", err), true)
		return
	}
	m.restyle()
}

// clampCursor keeps the cursor inside the current grid.
func (m *Model) clampCursor() {
	n := m.session.Grid().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ensureVisible scrolls so the selected item is on screen.
func (m *Model) ensureVisible() {
	layout := m.currentLayout()
	if m.cursor < 0 || m.cursor >= len(layout.placements) {
		return
	}
	p := layout.placements[m.cursor]
	viewport := m.viewportRows()
	if p.top < m.scroll {
		m.scroll = p.top
	}
	if p.top+p.rows > m.scroll+viewport {
		m.scroll = p.top + p.rows - viewport
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
