package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	m.header.SetTitle(m.bufferTitle())
	m.footer.SetContext(m.focus == FocusSidebar, m.buf.Kind().String())

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(m.theme),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.sidebar.View(m.theme),
			m.buf.View(m.clients, m.hist, m.transfers, m.config, m.theme),
		),
		m.footer.View(m.theme),
	)

	if m.modal.IsVisible() {
		v.SetContent(m.modal.View(m.width, m.height, m.theme))
		return v
	}

	v.SetContent(content)
	return v
}

func (m *Model) bufferTitle() string {
	if data := m.buf.Data(); data != nil {
		return data.Title()
	}
	switch m.buf.Kind().String() {
	case "file-transfers":
		return "File Transfers"
	case "logs":
		return "Logs"
	}
	return ""
}

func (m *Model) bufferWidth() int {
	w := m.width - ui.SidebarWidth
	if w < 1 {
		if m.width > 0 {
			return m.width
		}
		return ui.DefaultWrapWidth
	}
	return w
}

func (m *Model) bufferHeight() int {
	h := m.height - ui.HeaderHeight - ui.FooterHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.sidebar.SetSize(ui.SidebarWidth, m.bufferHeight()-ui.BorderSize)
	m.buf.SetSize(m.bufferWidth(), m.bufferHeight(), m.config.GetBuffer())
}
