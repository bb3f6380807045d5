// Package gallery is the Bubble Tea front end of the image gallery.
package gallery

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

// Downloader saves an image to a directory.
type Downloader interface {
	Download(ctx context.Context, record core.ImageRecord, dir string) (string, error)
}

// Options wires the model to its collaborators.
type Options struct {
	Context     context.Context
	Session     *core.Session
	Source      core.ImageSource
	Downloader  Downloader
	Layout      core.LayoutEngine
	Changes     <-chan struct{}
	OpenURL     func(string) error
	DownloadDir string
	// InitialQuery is searched on start; empty means the default query.
	InitialQuery string
	Logger       *logger.Logger
}

// focus is the widget receiving key input.
type focus int

const (
	focusGrid focus = iota
	focusSearch
	focusComment
)

// Model is the gallery TUI model.
type Model struct {
	ctx         context.Context
	session     *core.Session
	source      core.ImageSource
	downloader  Downloader
	layout      core.LayoutEngine
	changes     <-chan struct{}
	openURL     func(string) error
	downloadDir string
	initial     string
	log         *logger.Logger

	// UI state
	focus     focus
	cursor    int
	scroll    int
	chip      int
	comment   int
	showHelp  bool
	banner    string
	bannerErr bool
	status    string

	// Components
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	searchInput textinput.Model
	noteInput   textinput.Model
	styles      Styles

	// Dimensions
	width  int
	height int
}

// NewModel creates the gallery model.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	layout := opts.Layout
	if layout == nil {
		layout = Masonry{}
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}

	styles := NewStyles(opts.Session.Theme().Dark())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	search := textinput.New()
	search.Placeholder = "Search images"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.SetValue(opts.InitialQuery)

	note := textinput.New()
	note.Placeholder = "Write a comment"
	note.Prompt = "> "
	note.CharLimit = 280

	return Model{
		ctx:         ctx,
		session:     opts.Session,
		source:      opts.Source,
		downloader:  opts.Downloader,
		layout:      layout,
		changes:     opts.Changes,
		openURL:     openURL,
		downloadDir: opts.DownloadDir,
		initial:     opts.InitialQuery,
		log:         opts.Logger,
		chip:        -1,
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     s,
		searchInput: search,
		noteInput:   note,
		styles:      styles,
		width:       80,
		height:      24,
	}
}

// Init starts the initial query, the spinner and the preference watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if req, ok := m.session.Search(m.initial); ok {
		cmds = append(cmds, fetchPageCmd(m.ctx, m.source, req))
	}
	if cmd := watchPreferencesCmd(m.changes); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Session exposes the underlying session.
func (m Model) Session() *core.Session { return m.session }

// Cursor returns the selected grid index.
func (m Model) Cursor() int { return m.cursor }

// Banner returns the current banner text and whether it is an error.
func (m Model) Banner() (string, bool) { return m.banner, m.bannerErr }

// viewportRows is the number of terminal rows available to the grid.
func (m Model) viewportRows() int {
	rows := m.height - 6
	if rows < minItemRows {
		rows = minItemRows
	}
	return rows
}

func (m Model) currentLayout() gridLayout {
	return computeLayout(m.layout, m.session.Grid().Items(), columnsFor(m.width))
}

func (m *Model) setBanner(text string, isErr bool) {
	m.banner = text
	m.bannerErr = isErr
}

func (m *Model) clearBanner() {
	m.banner = ""
	m.bannerErr = false
}

func (m *Model) restyle() {
	m.styles = NewStyles(m.session.Theme().Dark())
	m.spinner.Style = m.styles.Spinner
}

// resetGrid moves the cursor and scroll back to the top of a new sequence.
func (m *Model) resetGrid() {
	m.cursor = 0
	m.scroll = 0
	m.status = ""
}

// resetDetail clears detail selection state.
func (m *Model) resetDetail() {
	m.chip = -1
	m.comment = 0
	m.noteInput.SetValue("")
	m.noteInput.Blur()
	m.session.SetCommentInput("")
	if m.focus == focusComment {
		m.focus = focusGrid
	}
}
