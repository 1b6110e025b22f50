package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/parley-irc/parley/internal/theme"
)

// Header is the top bar showing the application name and the active buffer.
type Header struct {
	width int
	title string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTitle sets the active buffer title shown on the right.
func (h *Header) SetTitle(title string) {
	h.title = title
}

// View renders the header
func (h *Header) View(th theme.Theme) string {
	left := " parley"
	right := ""
	if h.title != "" {
		right = h.title + " "
	}

	padding := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if padding < 0 {
		padding = 0
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(th.TextInverse)).
		Background(lipgloss.Color(th.Primary)).
		Width(h.width)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
