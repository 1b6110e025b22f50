package buffer

import (
	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

// emptyView renders the placeholder shown when no buffer is open. With no
// servers configured it points at adding one instead of an empty sidebar.
func emptyView(width, height int, clients *irc.Map, th theme.Theme) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.TextMuted)).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)
	if clients == nil || clients.Len() == 0 {
		return style.Render("Welcome to Parley\n\nPress ctrl+k to add a server")
	}
	return style.Render("No buffer selected\n\nPick a channel or server from the sidebar")
}
