package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

// EntryKind distinguishes the row types in the buffer list.
type EntryKind int

const (
	EntryServer EntryKind = iota
	EntryChannel
	EntryQuery
	EntryTransfers
	EntryLogs
)

// Entry is one selectable row in the sidebar.
type Entry struct {
	Kind   EntryKind
	Target irc.Buffer // set for server, channel, and query rows
	Unread int
}

// label returns the row text without the indent or markers.
func (e Entry) label() string {
	switch e.Kind {
	case EntryServer:
		return string(e.Target.Server)
	case EntryChannel:
		return e.Target.Channel
	case EntryQuery:
		return string(e.Target.Target)
	case EntryTransfers:
		return "File Transfers"
	case EntryLogs:
		return "Logs"
	}
	return ""
}

// Sidebar is the left panel listing servers and their open buffers.
type Sidebar struct {
	entries      []Entry
	selectedIdx  int
	scrollOffset int
	width        int
	height       int
	focused      bool
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetEntries replaces the row list, keeping the selection on the same
// target when it still exists.
func (s *Sidebar) SetEntries(entries []Entry) {
	var prev *Entry
	if s.selectedIdx < len(s.entries) {
		e := s.entries[s.selectedIdx]
		prev = &e
	}
	s.entries = entries
	if prev != nil {
		for i, e := range entries {
			if e.Kind == prev.Kind && e.Target.Equal(prev.Target) {
				s.selectedIdx = i
				return
			}
		}
	}
	if s.selectedIdx >= len(entries) {
		s.selectedIdx = 0
	}
}

// MoveSelection moves the cursor by delta, clamped to the list.
func (s *Sidebar) MoveSelection(delta int) {
	if len(s.entries) == 0 {
		return
	}
	s.selectedIdx += delta
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
	if s.selectedIdx >= len(s.entries) {
		s.selectedIdx = len(s.entries) - 1
	}
}

// Selected returns the entry under the cursor.
func (s *Sidebar) Selected() (Entry, bool) {
	if s.selectedIdx >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[s.selectedIdx], true
}

// Select moves the cursor to the row for a target, if present.
func (s *Sidebar) Select(target irc.Buffer) {
	for i, e := range s.entries {
		if e.Target.Equal(target) {
			s.selectedIdx = i
			return
		}
	}
}

// View renders the buffer list.
func (s *Sidebar) View(th theme.Theme) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Primary))
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.TextInverse)).
		Background(lipgloss.Color(th.GetBgSelected()))
	unreadStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Unread))

	visible := s.height
	if visible < 1 {
		visible = 1
	}
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+visible {
		s.scrollOffset = s.selectedIdx - visible + 1
	}

	innerWidth := s.width - 2
	if innerWidth < 4 {
		innerWidth = 4
	}

	var sb strings.Builder
	for i := s.scrollOffset; i < len(s.entries) && i-s.scrollOffset < visible; i++ {
		if i > s.scrollOffset {
			sb.WriteString("\n")
		}
		e := s.entries[i]

		indent := ""
		if e.Kind == EntryChannel || e.Kind == EntryQuery {
			indent = "  "
		}
		label := runewidth.Truncate(indent+e.label(), innerWidth, "…")

		switch {
		case s.focused && i == s.selectedIdx:
			sb.WriteString(selectedStyle.Width(innerWidth).Render(label))
		case e.Unread > 0:
			marker := unreadStyle.Render(fmt.Sprintf(" %d", e.Unread))
			sb.WriteString(itemStyle.Render(label) + marker)
		case e.Kind == EntryServer:
			sb.WriteString(headerStyle.Render(label))
		default:
			sb.WriteString(itemStyle.Render(label))
		}
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.Border)).
		Width(innerWidth).
		Height(s.height)
	if s.focused {
		border = border.BorderForeground(lipgloss.Color(th.GetBorderFocus()))
	}
	return border.Render(sb.String())
}
