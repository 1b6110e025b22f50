package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer is the bottom bar with context-dependent keybindings.
type Footer struct {
	width          int
	sidebarFocused bool
	kind           string // active buffer kind, for conditional bindings
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates what the footer knows about the current focus.
func (f *Footer) SetContext(sidebarFocused bool, bufferKind string) {
	f.sidebarFocused = sidebarFocused
	f.kind = bufferKind
}

// bindings returns the shortcuts that apply right now.
func (f *Footer) bindings() []KeyBinding {
	if f.sidebarFocused {
		return []KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "enter", Desc: "open"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	common := []KeyBinding{
		{Key: "tab", Desc: "switch pane"},
		{Key: "pgup/dn", Desc: "scroll"},
	}
	switch f.kind {
	case "channel":
		common = append(common,
			KeyBinding{Key: "ctrl+y", Desc: "nicklist"},
			KeyBinding{Key: "enter", Desc: "send"},
		)
	case "server", "query":
		common = append(common, KeyBinding{Key: "enter", Desc: "send"})
	case "file-transfers":
		common = append(common,
			KeyBinding{Key: "enter", Desc: "approve"},
			KeyBinding{Key: "x", Desc: "cancel"},
			KeyBinding{Key: "c", Desc: "clear"},
		)
	}
	return append(common,
		KeyBinding{Key: "ctrl+t", Desc: "transfers"},
		KeyBinding{Key: "ctrl+l", Desc: "logs"},
		KeyBinding{Key: "ctrl+c", Desc: "quit"},
	)
}

// View renders the footer
func (f *Footer) View(th theme.Theme) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Secondary))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))

	parts := make([]string, 0, 8)
	for _, b := range f.bindings() {
		parts = append(parts, keyStyle.Render(b.Key)+" "+descStyle.Render(b.Desc))
	}
	line := strings.Join(parts, descStyle.Render(" · "))
	return lipgloss.NewStyle().Width(f.width).MaxHeight(1).Render(" " + line)
}
