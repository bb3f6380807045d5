package gallery

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Top         key.Binding
	Open        key.Binding
	Favorite    key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	Favorites   key.Binding
	Home        key.Binding
	Theme       key.Binding
	Retry       key.Binding
	Dismiss     key.Binding
	Help        key.Binding
	Quit        key.Binding

	Prev          key.Binding
	Next          key.Binding
	NextChip      key.Binding
	RunChip       key.Binding
	Comment       key.Binding
	SelectUp      key.Binding
	SelectDown    key.Binding
	DeleteComment key.Binding
	ShareFacebook key.Binding
	ShareTwitter  key.Binding
	SharePin      key.Binding
	Download      key.Binding
	Browser       key.Binding
	Close         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Top:         key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "back to top")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Favorite:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "favorite")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear search")),
		Favorites:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites")),
		Home:        key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Theme:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "theme")),
		Retry:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "load more")),
		Dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Prev:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		Next:          key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		NextChip:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select tag")),
		RunChip:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search tag")),
		Comment:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		SelectUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "previous comment")),
		SelectDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next comment")),
		DeleteComment: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete comment")),
		ShareFacebook: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "facebook")),
		ShareTwitter:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "twitter")),
		SharePin:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pinterest")),
		Download:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "download")),
		Browser:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Close:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// gridHelp exposes the grid bindings to the help view.
type gridHelp struct{ keys keyMap }

func (h gridHelp) ShortHelp() []key.Binding {
	k := h.keys
	return []key.Binding{k.Open, k.Favorite, k.Search, k.Favorites, k.Theme, k.Help, k.Quit}
}

func (h gridHelp) FullHelp() [][]key.Binding {
	k := h.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top},
		{k.Open, k.Favorite, k.Retry},
		{k.Search, k.ClearSearch, k.Favorites, k.Home},
		{k.Theme, k.Dismiss, k.Help, k.Quit},
	}
}

// detailHelp exposes the detail bindings to the help view.
type detailHelp struct{ keys keyMap }

func (h detailHelp) ShortHelp() []key.Binding {
	k := h.keys
	return []key.Binding{k.Prev, k.Next, k.Favorite, k.Comment, k.Download, k.Close, k.Help}
}

func (h detailHelp) FullHelp() [][]key.Binding {
	k := h.keys
	return [][]key.Binding{
		{k.Prev, k.Next, k.Favorite, k.Close},
		{k.NextChip, k.RunChip},
		{k.Comment, k.SelectUp, k.SelectDown, k.DeleteComment},
		{k.ShareFacebook, k.ShareTwitter, k.SharePin, k.Download, k.Browser},
	}
}
