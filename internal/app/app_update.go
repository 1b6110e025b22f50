package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/buffer"
	"github.com/parley-irc/parley/internal/clipboard"
	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/demo"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/keys"
	"github.com/parley-irc/parley/internal/logger"
	"github.com/parley-irc/parley/internal/theme"
	"github.com/parley-irc/parley/internal/transfer"
	"github.com/parley-irc/parley/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to the sidebar, the modal, or the active buffer.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.MouseWheelMsg:
		if bm, ok := m.buf.MouseMessage(msg); ok {
			return m.applyBufferMessage(bm)
		}
		return m, nil

	case buffer.Message:
		return m.applyBufferMessage(msg)

	case history.Message:
		m.hist.Update(msg)
		return m, nil

	case MessageReceived:
		return m, m.handleMessageReceived(msg)

	case demo.Event:
		cmd := m.handleMessageReceived(MessageReceived{Target: msg.Target, Record: msg.Record})
		return m, tea.Batch(cmd, m.demo.Next())
	}

	// Component-internal messages (cursor blinks and the like) go to the
	// open modal first, then the focused composer.
	if m.modal.IsVisible() {
		return m, m.modal.Update(msg)
	}
	if m.focus == FocusBuffer {
		if bm, ok := m.buf.Forward(msg); ok {
			return m.applyBufferMessage(bm)
		}
	}
	return m, nil
}

// applyBufferMessage dispatches into the buffer pane and acts on the event
// it reports.
func (m *Model) applyBufferMessage(msg buffer.Message) (tea.Model, tea.Cmd) {
	cmd, ev := m.buf.Update(msg, m.clients, m.hist, m.transfers, m.config)
	if ev == nil {
		return m, cmd
	}
	evCmd := m.handleBufferEvent(ev)
	return m, tea.Batch(cmd, evCmd)
}

// handleBufferEvent reacts to an occurrence the buffer reported upward.
func (m *Model) handleBufferEvent(ev buffer.Event) tea.Cmd {
	switch ev := ev.(type) {
	case buffer.OpenChannelEvent:
		m.clients.Client(ev.Server).Channel(ev.Channel)
		return m.openTarget(irc.ChannelBuffer(ev.Server, ev.Channel))

	case buffer.UserContextEvent:
		return m.handleUserContext(ev)

	case buffer.HistoryEvent:
		return ev.Task
	}
	return nil
}

func (m *Model) handleUserContext(ev buffer.UserContextEvent) tea.Cmd {
	switch ev.Kind {
	case buffer.UserContextQuery:
		return m.openTarget(irc.QueryBuffer(ev.Server, ev.Nick))

	case buffer.UserContextWhois:
		// No network layer here; surface the request in the server buffer.
		target := irc.ServerBuffer(ev.Server)
		m.hist.Record(target, history.Record{
			Text: "WHOIS " + string(ev.Nick),
			Kind: history.KindNotice,
		})
		logger.Debug("whois requested for %s", ev.Nick)
		return nil

	case buffer.UserContextSendFile:
		m.transfers.Add(transfer.Transfer{
			Server:    ev.Server,
			Peer:      ev.Nick,
			Direction: transfer.Send,
		})
		return m.openTransfers()
	}
	return nil
}

// handleMessageReceived records an incoming line and updates unread and
// notification state.
func (m *Model) handleMessageReceived(msg MessageReceived) tea.Cmd {
	m.hist.Record(msg.Target, msg.Record)

	active := m.buf.Data()
	isActive := active != nil && active.Equal(msg.Target)
	if !isActive && msg.Target.Kind() == irc.BufferChannel {
		m.clients.Client(msg.Target.Server).Channel(msg.Target.Channel).Unread++
	}
	if msg.Target.Kind() == irc.BufferQuery {
		m.trackQuery(msg.Target)
	}
	m.rebuildSidebar()

	if msg.Record.Highlight {
		return m.notifyHighlight(msg.Target, msg.Record)
	}
	return nil
}

// handleKeyPress routes keys by focus: modal, global shortcuts, sidebar,
// then the active buffer.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case keys.CtrlC:
		return m, tea.Sequence(m.hist.FlushAll(m.flushTargets()), tea.Quit)
	case keys.CtrlT:
		return m, m.openTransfers()
	case keys.CtrlL:
		return m, m.openLogs()
	case keys.CtrlK:
		m.modal.Show(ui.NewConnectState(m.theme))
		return m, nil
	case keys.CtrlU:
		m.modal.Show(ui.NewSettingsState(m.theme, m.config.GetTheme(), m.config.GetNotificationsEnabled()))
		return m, nil
	case keys.CtrlD:
		return m, m.copyLastMessage()
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}

	if bm, ok := m.buf.KeyMessage(msg); ok {
		return m.applyBufferMessage(bm)
	}
	// Escape hands focus back to the sidebar.
	if msg.String() == keys.Escape {
		m.setFocus(FocusSidebar)
	}
	return m, nil
}

func (m *Model) handleSidebarKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Tab:
		if m.buf.Kind() != buffer.KindEmpty {
			m.setFocus(FocusBuffer)
			return m, m.buf.Focus()
		}
	case keys.Up:
		m.sidebar.MoveSelection(-1)
	case keys.Down:
		m.sidebar.MoveSelection(1)
	case keys.Enter:
		entry, ok := m.sidebar.Selected()
		if !ok {
			return m, nil
		}
		switch entry.Kind {
		case ui.EntryTransfers:
			return m, m.openTransfers()
		case ui.EntryLogs:
			return m, m.openLogs()
		default:
			return m, m.openTarget(entry.Target)
		}
	}
	return m, nil
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		return m.confirmModal()
	}
	return m, m.modal.Update(msg)
}

// confirmModal applies the open dialog's result.
func (m *Model) confirmModal() (tea.Model, tea.Cmd) {
	switch state := m.modal.State().(type) {
	case *ui.ConnectState:
		srv, err := state.ServerConfig()
		if err != nil {
			logger.Warn("connect form rejected: %v", err)
			return m, nil
		}
		m.config.AddServer(srv)
		client := m.clients.Client(irc.Server(srv.Name))
		client.Nick = irc.Nick(srv.Nick)
		for _, ch := range srv.Channels {
			client.Channel(ch)
		}
		m.modal.Hide()
		m.rebuildSidebar()
		return m, saveConfig(m.config)

	case *ui.SettingsState:
		m.config.SetTheme(state.SelectedTheme)
		m.config.SetNotificationsEnabled(state.NotificationsEnabled)
		m.theme = theme.GetByName(state.SelectedTheme)
		m.modal.Hide()
		return m, saveConfig(m.config)
	}
	m.modal.Hide()
	return m, nil
}

// saveConfig persists configuration off the update path.
func saveConfig(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			logger.Error("saving config: %v", err)
		}
		return nil
	}
}

// copyLastMessage puts the newest record of the active buffer on the
// system clipboard.
func (m *Model) copyLastMessage() tea.Cmd {
	data := m.buf.Data()
	if data == nil {
		return nil
	}
	records := m.hist.Records(*data)
	if len(records) == 0 {
		return nil
	}
	text := records[len(records)-1].Text
	return func() tea.Msg {
		if err := clipboard.WriteText(text); err != nil {
			logger.Warn("clipboard write failed: %v", err)
		}
		return nil
	}
}
