package gallery

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

// View renders the current model state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{m.renderHeader()}
	if m.banner != "" {
		sections = append(sections, m.renderBanner())
	}

	switch {
	case m.showHelp:
		sections = append(sections, m.help.FullHelpView(m.helpKeys().FullHelp()))
	case m.session.Mode() == core.ModeDetail:
		sections = append(sections, m.renderDetail())
	default:
		sections = append(sections, m.renderGrid())
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpKeys() help.KeyMap {
	if m.session.Mode() == core.ModeDetail {
		return detailHelp{keys: m.keys}
	}
	return gridHelp{keys: m.keys}
}

// renderHeader renders the title, active query and mode entries
func (m Model) renderHeader() string {
	st := m.styles
	state := m.session.State()

	var context string
	switch {
	case state.Mode == core.ModeFavorites || state.Return == core.ModeFavorites && state.Mode == core.ModeDetail:
		context = fmt.Sprintf("Favorites (%d)", m.session.Favorites().Len())
	case state.Filtering:
		context = fmt.Sprintf("Results for %q", state.Query)
	default:
		context = fmt.Sprintf("Showing %q", state.Query)
	}

	parts := []string{st.Title.Render("mosaic"), st.Value.Render(context)}
	if req, ok := m.session.Browse().Pending(); ok {
		parts = append(parts, m.spinner.View()+fmt.Sprintf(" Loading page %d", req.Page))
	}

	line := strings.Join(parts, "  ")

	var entries []string
	if m.focus == focusSearch || m.searchInput.Value() != "" {
		entries = append(entries, m.searchInput.View())
	}
	if m.session.FavoritesEntryVisible() {
		entries = append(entries, st.Hint.Render("F")+" favorites")
	}
	if m.session.HomeEntryVisible() {
		entries = append(entries, st.Hint.Render("H")+" home")
	}
	entries = append(entries, st.Hint.Render("D")+" "+m.session.Theme().ToggleTitle())

	return st.Header.Render(lipgloss.JoinVertical(lipgloss.Left, line, strings.Join(entries, "   ")))
}

func (m Model) renderBanner() string {
	if m.bannerErr {
		return m.styles.ErrorBanner.Render(m.banner)
	}
	return m.styles.InfoBanner.Render(m.banner)
}

// renderGrid renders the visible window of the masonry grid
func (m Model) renderGrid() string {
	st := m.styles
	grid := m.session.Grid()

	if m.session.FavoritesEmpty() {
		return st.Empty.Width(m.width).Render("No favorites yet")
	}
	if m.session.NoContent() {
		return st.Empty.Width(m.width).Render(fmt.Sprintf("No content found for %q", m.session.State().Query))
	}

	items := grid.Items()
	if len(items) == 0 {
		if grid.InFlight() {
			return st.Empty.Width(m.width).Render(m.spinner.View() + " Loading images...")
		}
		return st.Empty.Width(m.width).Render("No images")
	}

	layout := computeLayout(m.layout, items, columnsFor(m.width))
	colWidth := m.width / len(layout.columns)
	if colWidth < 12 {
		colWidth = 12
	}
	viewport := m.viewportRows()

	columns := make([]string, 0, len(layout.columns))
	for _, indices := range layout.columns {
		boxes := make([]string, 0, len(indices))
		for _, idx := range indices {
			boxes = append(boxes, m.renderItem(items[idx], layout.placements[idx].rows, colWidth))
		}
		lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, boxes...), "\n")
		start := m.scroll
		if start > len(lines) {
			start = len(lines)
		}
		end := start + viewport
		if end > len(lines) {
			end = len(lines)
		}
		column := lipgloss.NewStyle().Width(colWidth).Render(strings.Join(lines[start:end], "\n"))
		columns = append(columns, column)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderItem renders one grid box exactly rows lines tall
func (m Model) renderItem(item core.GridItem, rows, width int) string {
	st := m.styles
	inner := width - 4
	if inner < 4 {
		inner = 4
	}

	caption := item.Record.Caption(item.Index)
	if item.Favorited {
		caption = st.Heart.Render("♥") + " " + caption
	}
	author := ""
	if item.Record.Author != "" {
		author = st.Author.Render("by " + item.Record.Author)
	}

	body := lipgloss.NewStyle().
		Width(inner).
		Height(rows - 2).
		MaxHeight(rows - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, st.Caption.Render(caption), author))

	box := st.Item
	if item.Index == m.cursor {
		box = st.ItemSelected
	}
	return box.Width(width - 2).Render(body)
}

// renderDetail renders the open item
func (m Model) renderDetail() string {
	st := m.styles
	content, err := m.session.Detail()
	if err != nil {
		return st.Empty.Width(m.width).Render(err.Error())
	}

	title := st.Title.Render(content.Title)
	if content.Favorited {
		title += st.Heart.Render("♥")
	}

	rows := []string{
		title,
		st.Caption.Render(content.Caption),
		st.Value.Render(content.Commentary),
		"",
		st.Label.Render("Author") + st.Value.Render(content.Author),
		st.Label.Render("URL") + st.Value.Render(content.URL),
	}

	if len(content.Chips) > 0 {
		chips := make([]string, len(content.Chips))
		for i, chip := range content.Chips {
			if i == m.chip {
				chips[i] = st.ChipSelected.Render(chip)
				continue
			}
			chips[i] = st.Chip.Render(chip)
		}
		rows = append(rows, st.Label.Render("Tags")+lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}

	rows = append(rows, "", st.Label.Render("Comments"))
	if !content.HasComments {
		rows = append(rows, st.Placeholder.Render(core.NoCommentsMessage))
	} else {
		for i, c := range content.Comments {
			if i == m.comment {
				rows = append(rows, st.CommentSel.Render("› "+c))
				continue
			}
			rows = append(rows, st.Comment.Render("  "+c))
		}
	}

	send := st.HintDisabled.Render("enter send")
	if m.session.CanSendComment() {
		send = st.Hint.Render("enter send")
	}
	if m.focus == focusComment {
		rows = append(rows, m.noteInput.View()+"  "+send)
	} else {
		rows = append(rows, st.HintDisabled.Render("c add comment"))
	}

	prev := st.HintDisabled.Render("← prev")
	if content.PrevEnabled {
		prev = st.Hint.Render("← prev")
	}
	next := st.HintDisabled.Render("next →")
	if content.NextEnabled {
		next = st.Hint.Render("next →")
	}
	nav := prev + "   " + next
	if content.Loading {
		nav += "   " + m.spinner.View() + " loading more"
	}
	rows = append(rows, "", nav)

	share := []string{
		st.Hint.Render("f") + " facebook",
		st.Hint.Render("t") + " twitter",
		st.Hint.Render("p") + " pinterest",
		st.Hint.Render("s") + " download",
		st.Hint.Render("o") + " open",
	}
	rows = append(rows, strings.Join(share, "  "))

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return st.DetailBox.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderFooter renders key hints and status
func (m Model) renderFooter() string {
	parts := []string{m.help.View(m.helpKeys())}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.retryable() {
		parts = append(parts, m.styles.Hint.Render("r")+" to retry")
	}
	if m.session.Mode() != core.ModeDetail && m.scroll > m.viewportRows()/2 {
		parts = append(parts, m.styles.Hint.Render("g")+" back to top")
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(parts, "  •  "))
}

// retryable reports whether a failed fetch left more pages unrequested.
func (m Model) retryable() bool {
	grid := m.session.Browse()
	return m.session.Mode() == core.ModeBrowsing &&
		grid.Len() > 0 &&
		grid.Paginated() &&
		!grid.InFlight() &&
		!grid.Armed()
}
