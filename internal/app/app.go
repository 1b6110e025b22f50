// Package app wires the buffer pane, sidebar, and chrome into the root
// Bubble Tea model.
package app

import (
	"sort"

	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/buffer"
	"github.com/parley-irc/parley/internal/clipboard"
	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/demo"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/logger"
	"github.com/parley-irc/parley/internal/theme"
	"github.com/parley-irc/parley/internal/transfer"
	"github.com/parley-irc/parley/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusBuffer
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	modal   *ui.Modal

	buf       buffer.Buffer
	clients   *irc.Map
	hist      *history.Manager
	transfers *transfer.Manager
	theme     theme.Theme
	demo      *demo.Runner // non-nil when replaying scripted traffic

	// queries tracks open direct-message buffers; channels come from the
	// connection map, queries only exist here.
	queries []irc.Buffer

	width  int
	height int
	focus  Focus
}

// MessageReceived is fed in by the network layer when a line arrives for
// some buffer.
type MessageReceived struct {
	Target irc.Buffer
	Record history.Record
}

// New creates the root model from loaded configuration.
func New(cfg *config.Config, version string) *Model {
	ft := cfg.GetFileTransfer()
	m := &Model{
		config:    cfg,
		version:   version,
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		sidebar:   ui.NewSidebar(),
		modal:     ui.NewModal(),
		buf:       buffer.Empty(),
		clients:   irc.NewMap(),
		hist:      newHistoryManager(),
		transfers: transfer.NewManager(ft.DownloadDir, ft.AutoAccept),
		theme:     theme.GetByName(cfg.GetTheme()),
		focus:     FocusSidebar,
	}
	m.sidebar.SetFocused(true)

	// Seed the connection map from configured servers so their buffers are
	// reachable before any network activity.
	for _, srv := range cfg.GetServers() {
		client := m.clients.Client(irc.Server(srv.Name))
		client.Nick = irc.Nick(srv.Nick)
		for _, ch := range srv.Channels {
			client.Channel(ch)
		}
	}
	m.rebuildSidebar()
	return m
}

func newHistoryManager() *history.Manager {
	dir, err := config.HistoryDir()
	if err != nil {
		logger.Warn("history persistence disabled: %v", err)
		dir = ""
	}
	return history.NewManager(dir)
}

// SetDemo attaches a scripted traffic runner. Demo conversations are not
// persisted, so history writing is disabled for the session.
func (m *Model) SetDemo(r *demo.Runner) {
	m.demo = r
	m.hist = history.NewManager("")
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	}
	logger.Info("app started, version %s", m.version)
	if m.demo != nil {
		return m.demo.Next()
	}
	return nil
}

// rebuildSidebar recomputes the buffer list from connection state and open
// queries.
func (m *Model) rebuildSidebar() {
	var entries []ui.Entry
	for _, server := range m.clients.Servers() {
		client := m.clients.Client(server)
		entries = append(entries, ui.Entry{Kind: ui.EntryServer, Target: irc.ServerBuffer(server)})
		for _, name := range client.ChannelNames() {
			entries = append(entries, ui.Entry{
				Kind:   ui.EntryChannel,
				Target: irc.ChannelBuffer(server, name),
				Unread: client.Channel(name).Unread,
			})
		}
		for _, q := range m.queriesFor(server) {
			entries = append(entries, ui.Entry{Kind: ui.EntryQuery, Target: q})
		}
	}
	entries = append(entries,
		ui.Entry{Kind: ui.EntryTransfers},
		ui.Entry{Kind: ui.EntryLogs},
	)
	m.sidebar.SetEntries(entries)
}

func (m *Model) queriesFor(server irc.Server) []irc.Buffer {
	var out []irc.Buffer
	for _, q := range m.queries {
		if q.Server == server {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target.Lower() < out[j].Target.Lower() })
	return out
}

// trackQuery remembers an open direct-message buffer.
func (m *Model) trackQuery(target irc.Buffer) {
	for _, q := range m.queries {
		if q.Equal(target) {
			return
		}
	}
	m.queries = append(m.queries, target)
}

// openTarget replaces the buffer pane with the buffer for a chat target.
func (m *Model) openTarget(target irc.Buffer) tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.flushCurrent(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if target.Kind() == irc.BufferQuery {
		m.trackQuery(target)
	}
	if target.Kind() == irc.BufferChannel {
		m.clients.Client(target.Server).Channel(target.Channel).Unread = 0
	}

	m.buf = buffer.FromDescriptor(target)
	m.buf.SetSize(m.bufferWidth(), m.bufferHeight(), m.config.GetBuffer())
	m.setFocus(FocusBuffer)
	m.sidebar.Select(target)
	m.rebuildSidebar()

	if cmd := m.buf.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.buf.ScrollToEnd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	logger.Debug("opened buffer %s", target.Key())
	return tea.Batch(cmds...)
}

// openTransfers and openLogs switch to the two special buffers.
func (m *Model) openTransfers() tea.Cmd {
	cmds := []tea.Cmd{m.flushCurrent()}
	m.buf = buffer.NewFileTransfersBuffer()
	m.buf.SetSize(m.bufferWidth(), m.bufferHeight(), m.config.GetBuffer())
	m.setFocus(FocusBuffer)
	cmds = append(cmds, m.buf.Focus())
	return tea.Batch(cmds...)
}

func (m *Model) openLogs() tea.Cmd {
	cmds := []tea.Cmd{m.flushCurrent()}
	m.buf = buffer.NewLogsBuffer()
	m.buf.SetSize(m.bufferWidth(), m.bufferHeight(), m.config.GetBuffer())
	m.setFocus(FocusBuffer)
	cmds = append(cmds, m.hist.LoadLogs(logger.Path()), m.buf.ScrollToEnd())
	return tea.Batch(cmds...)
}

// flushCurrent persists the departing buffer's history.
func (m *Model) flushCurrent() tea.Cmd {
	if data := m.buf.Data(); data != nil {
		return m.hist.Flush(*data)
	}
	return nil
}

func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	if focus == FocusSidebar {
		m.buf.Blur()
	}
}

// flushTargets lists every buffer with history worth persisting, for the
// shutdown flush.
func (m *Model) flushTargets() []irc.Buffer {
	var targets []irc.Buffer
	for _, server := range m.clients.Servers() {
		targets = append(targets, irc.ServerBuffer(server))
		for _, name := range m.clients.Client(server).ChannelNames() {
			targets = append(targets, irc.ChannelBuffer(server, name))
		}
	}
	return append(targets, m.queries...)
}

// notifyHighlight fires a desktop notification for a mention, when enabled.
func (m *Model) notifyHighlight(target irc.Buffer, r history.Record) tea.Cmd {
	if !m.config.GetNotificationsEnabled() {
		return nil
	}
	return func() tea.Msg {
		notifyMention(string(r.Nick), target.Title(), r.Text)
		return nil
	}
}
