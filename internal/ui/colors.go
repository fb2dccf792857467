package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#041E42", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	favorite lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).Background(lipgloss.Color("#BF0D3E")).Padding(0, 1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		favorite: NewBold(w),
	}
}

// WithFavorite replaces the favorite color. An empty color keeps the current one.
func (p *Palette) WithFavorite(color string) *Palette {
	if color == "" {
		return p
	}
	c := *p
	c.favorite = NewBold(color)
	return &c
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
