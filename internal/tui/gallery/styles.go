package gallery

import (
	"github.com/charmbracelet/lipgloss"
)

// palette is one colour scheme.
type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	success lipgloss.Color
	danger  lipgloss.Color
	surface lipgloss.Color
	banner  lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("25"),  // Blue
		accent:  lipgloss.Color("162"), // Magenta
		text:    lipgloss.Color("235"),
		muted:   lipgloss.Color("242"),
		success: lipgloss.Color("28"),
		danger:  lipgloss.Color("160"),
		surface: lipgloss.Color("255"),
		banner:  lipgloss.Color("224"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("99"),  // Purple
		accent:  lipgloss.Color("212"), // Pink
		text:    lipgloss.Color("252"),
		muted:   lipgloss.Color("245"),
		success: lipgloss.Color("42"),
		danger:  lipgloss.Color("196"),
		surface: lipgloss.Color("235"),
		banner:  lipgloss.Color("52"),
	}
)

// Styles holds every style the gallery renders with.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Footer       lipgloss.Style
	Hint         lipgloss.Style
	HintDisabled lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Caption      lipgloss.Style
	Author       lipgloss.Style
	Heart        lipgloss.Style
	Empty        lipgloss.Style
	ErrorBanner  lipgloss.Style
	InfoBanner   lipgloss.Style
	DetailBox    lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Chip         lipgloss.Style
	ChipSelected lipgloss.Style
	Comment      lipgloss.Style
	CommentSel   lipgloss.Style
	Placeholder  lipgloss.Style
	Spinner      lipgloss.Style
}

// NewStyles builds the light or dark style set.
func NewStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	item := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.muted).
		Foreground(p.text).
		Padding(0, 1)

	chip := lipgloss.NewStyle().
		Foreground(p.primary).
		Padding(0, 1).
		MarginRight(1)

	comment := lipgloss.NewStyle().
		Foreground(p.text).
		PaddingLeft(2)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			PaddingRight(2),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.muted),
		Footer: lipgloss.NewStyle().
			Foreground(p.muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.muted),
		Hint:         lipgloss.NewStyle().Foreground(p.accent),
		HintDisabled: lipgloss.NewStyle().Foreground(p.muted).Faint(true),
		Item:         item,
		ItemSelected: item.BorderForeground(p.accent).Bold(true),
		Caption:      lipgloss.NewStyle().Foreground(p.text),
		Author:       lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Heart:        lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true).
			Align(lipgloss.Center).
			PaddingTop(2),
		ErrorBanner: lipgloss.NewStyle().
			Foreground(p.danger).
			Background(p.banner).
			Bold(true).
			Padding(0, 2),
		InfoBanner: lipgloss.NewStyle().
			Foreground(p.primary).
			Padding(0, 2),
		DetailBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),
		Label: lipgloss.NewStyle().
			Foreground(p.muted).
			Bold(true).
			Width(12),
		Value:        lipgloss.NewStyle().Foreground(p.text),
		Chip:         chip,
		ChipSelected: chip.Foreground(p.surface).Background(p.accent).Bold(true),
		Comment:      comment,
		CommentSel:   comment.Foreground(p.accent).Bold(true),
		Placeholder:  lipgloss.NewStyle().Foreground(p.muted).Italic(true).PaddingLeft(2),
		Spinner:      lipgloss.NewStyle().Foreground(p.primary),
	}
}
