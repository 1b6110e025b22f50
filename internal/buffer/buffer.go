// Package buffer implements the contents of the main pane: one of a set of
// closed buffer variants (channel, server, query, file transfers, logs, or
// nothing), each owning its transient view state while chat history and
// connection state live with the caller and are lent in per call.
package buffer

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
	"github.com/parley-irc/parley/internal/transfer"
)

// Kind identifies which variant a Buffer holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindChannel
	KindServer
	KindQuery
	KindFileTransfers
	KindLogs
)

func (k Kind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindServer:
		return "server"
	case KindQuery:
		return "query"
	case KindFileTransfers:
		return "file-transfers"
	case KindLogs:
		return "logs"
	}
	return "empty"
}

// Buffer is the main-pane content. Exactly one variant is materialized,
// matching kind; the zero value is the empty buffer.
type Buffer struct {
	kind Kind

	channel       *Channel
	server        *Server
	query         *Query
	fileTransfers *FileTransfers
	logs          *Logs

	width  int
	height int
}

// Message is addressed to a specific buffer variant. A message whose
// variant no longer matches the current buffer is dropped without effect:
// in-flight work from a replaced buffer must not disturb its successor.
type Message interface{ message() }

type (
	channelMsg       struct{ msg channelMessage }
	serverMsg        struct{ msg serverMessage }
	queryMsg         struct{ msg queryMessage }
	fileTransfersMsg struct{ msg fileTransfersMessage }
	logsMsg          struct{ msg logsMessage }
)

func (channelMsg) message()       {}
func (serverMsg) message()        {}
func (queryMsg) message()         {}
func (fileTransfersMsg) message() {}
func (logsMsg) message()          {}

// Event is a buffer occurrence the caller must act on; updates report at
// most one.
type Event interface{ event() }

// UserContextEvent asks the caller to perform an action on another user.
type UserContextEvent struct {
	Server irc.Server
	Nick   irc.Nick
	Kind   UserContextKind
}

// OpenChannelEvent asks the caller to open (and focus) a channel buffer.
type OpenChannelEvent struct {
	Server  irc.Server
	Channel string
}

// HistoryEvent hands the caller a history task to schedule.
type HistoryEvent struct {
	Task tea.Cmd
}

func (UserContextEvent) event() {}
func (OpenChannelEvent) event() {}
func (HistoryEvent) event()     {}

// Empty returns the buffer shown before anything is selected.
func Empty() Buffer {
	return Buffer{kind: KindEmpty}
}

// FromDescriptor materializes the variant matching a chat target.
func FromDescriptor(target irc.Buffer) Buffer {
	switch target.Kind() {
	case irc.BufferChannel:
		return Buffer{kind: KindChannel, channel: NewChannel(target)}
	case irc.BufferQuery:
		return Buffer{kind: KindQuery, query: NewQuery(target)}
	default:
		return Buffer{kind: KindServer, server: NewServer(target)}
	}
}

// NewFileTransfersBuffer returns the transfer list view. The transfer
// manager itself is lent in on Update and View.
func NewFileTransfersBuffer() Buffer {
	return Buffer{kind: KindFileTransfers, fileTransfers: NewFileTransfers()}
}

// NewLogsBuffer returns the application log viewer.
func NewLogsBuffer() Buffer {
	return Buffer{kind: KindLogs, logs: NewLogs()}
}

// Kind reports which variant the buffer holds.
func (b *Buffer) Kind() Kind {
	return b.kind
}

// Data returns the chat target behind the buffer, or nil for variants that
// are not tied to one.
func (b *Buffer) Data() *irc.Buffer {
	switch b.kind {
	case KindChannel:
		t := b.channel.target
		return &t
	case KindServer:
		t := b.server.target
		return &t
	case KindQuery:
		t := b.query.target
		return &t
	}
	return nil
}

// GetServer returns the server behind the buffer, if any.
func (b *Buffer) GetServer() (irc.Server, bool) {
	if data := b.Data(); data != nil {
		return data.Server, true
	}
	return "", false
}

// GetChannel returns the channel name behind the buffer, if any.
func (b *Buffer) GetChannel() (string, bool) {
	if b.kind == KindChannel {
		return b.channel.target.Channel, true
	}
	return "", false
}

// SetSize propagates new dimensions to the active variant.
func (b *Buffer) SetSize(width, height int, settings config.BufferSettings) {
	b.width = width
	b.height = height
	switch b.kind {
	case KindChannel:
		b.channel.setSize(width, height, settings)
	case KindServer:
		b.server.setSize(width, height)
	case KindQuery:
		b.query.setSize(width, height)
	case KindFileTransfers:
		b.fileTransfers.setSize(width, height)
	case KindLogs:
		b.logs.setSize(width, height)
	}
}

// Focus gives the buffer input focus. The transfer panel records the flag
// for its selection highlight; other composer-less variants take it silently.
func (b *Buffer) Focus() tea.Cmd {
	switch b.kind {
	case KindChannel:
		return tagChannelInput(b.channel.setFocused(true))
	case KindServer:
		return tagServerInput(b.server.setFocused(true))
	case KindQuery:
		return tagQueryInput(b.query.setFocused(true))
	case KindFileTransfers:
		b.fileTransfers.setFocused(true)
	}
	return nil
}

// Blur removes input focus.
func (b *Buffer) Blur() {
	switch b.kind {
	case KindChannel:
		b.channel.setFocused(false)
	case KindServer:
		b.server.setFocused(false)
	case KindQuery:
		b.query.setFocused(false)
	case KindFileTransfers:
		b.fileTransfers.setFocused(false)
	}
}

// Reset clears transient view state: composer text, selections, popups.
func (b *Buffer) Reset() {
	switch b.kind {
	case KindChannel:
		b.channel.reset()
	case KindServer:
		b.server.reset()
	case KindQuery:
		b.query.reset()
	case KindFileTransfers:
		b.fileTransfers.reset()
	}
}

// ScrollToStart returns a task that scrolls to the oldest content. Variants
// without scrollback return nil.
func (b *Buffer) ScrollToStart() tea.Cmd {
	switch b.kind {
	case KindChannel:
		return tagChannelScroll(b.channel.scroll.scrollToStart())
	case KindServer:
		return tagServerScroll(b.server.scroll.scrollToStart())
	case KindQuery:
		return tagQueryScroll(b.query.scroll.scrollToStart())
	case KindLogs:
		return tagLogsScroll(b.logs.scroll.scrollToStart())
	}
	return nil
}

// ScrollToEnd returns a task that scrolls to the newest content. Variants
// without scrollback return nil.
func (b *Buffer) ScrollToEnd() tea.Cmd {
	switch b.kind {
	case KindChannel:
		return tagChannelScroll(b.channel.scroll.scrollToEnd())
	case KindServer:
		return tagServerScroll(b.server.scroll.scrollToEnd())
	case KindQuery:
		return tagQueryScroll(b.query.scroll.scrollToEnd())
	case KindLogs:
		return tagLogsScroll(b.logs.scroll.scrollToEnd())
	}
	return nil
}

// InsertUserToInput appends a nick to the composer for variants that have
// one tied to a conversation, returning any task the composer needs run.
// Variants without a composer return nil.
func (b *Buffer) InsertUserToInput(nick irc.Nick, settings config.BufferSettings) tea.Cmd {
	switch b.kind {
	case KindChannel:
		return tagChannelInput(b.channel.insertUser(nick, settings))
	case KindQuery:
		return tagQueryInput(b.query.insertUser(nick, settings))
	}
	return nil
}

// Update dispatches a message to the matching variant. A mismatched pair is
// a stale message from a buffer that has since been replaced; it is dropped.
func (b *Buffer) Update(msg Message, clients *irc.Map, hist *history.Manager, transfers *transfer.Manager, cfg *config.Config) (tea.Cmd, Event) {
	switch m := msg.(type) {
	case channelMsg:
		if b.kind != KindChannel {
			return nil, nil
		}
		cmd, ev := b.channel.update(m.msg, clients, hist, cfg)
		return tagChannel(m.msg, cmd), b.translateChannel(ev)

	case serverMsg:
		if b.kind != KindServer {
			return nil, nil
		}
		cmd, ev := b.server.update(m.msg, clients, hist, cfg)
		return tagServer(m.msg, cmd), b.translateServer(ev)

	case queryMsg:
		if b.kind != KindQuery {
			return nil, nil
		}
		cmd, ev := b.query.update(m.msg, clients, hist, cfg)
		return tagQuery(m.msg, cmd), b.translateQuery(ev)

	case fileTransfersMsg:
		if b.kind != KindFileTransfers {
			return nil, nil
		}
		return b.fileTransfers.update(m.msg, transfers), nil

	case logsMsg:
		if b.kind != KindLogs {
			return nil, nil
		}
		return tagLogsScroll(b.logs.update(m.msg)), nil
	}
	return nil, nil
}

// translateChannel lifts a channel-local event into the buffer event union.
func (b *Buffer) translateChannel(ev channelEvent) Event {
	switch ev := ev.(type) {
	case channelUserContextEvent:
		return UserContextEvent{Server: b.channel.target.Server, Nick: ev.nick, Kind: ev.kind}
	case channelOpenChannelEvent:
		return OpenChannelEvent{Server: b.channel.target.Server, Channel: ev.channel}
	case channelHistoryEvent:
		return HistoryEvent{Task: ev.task}
	}
	return nil
}

// translateServer lifts a server-local event into the buffer event union.
func (b *Buffer) translateServer(ev serverEvent) Event {
	switch ev := ev.(type) {
	case serverOpenChannelEvent:
		return OpenChannelEvent{Server: b.server.target.Server, Channel: ev.channel}
	case serverHistoryEvent:
		return HistoryEvent{Task: ev.task}
	}
	return nil
}

// translateQuery lifts a query-local event into the buffer event union.
func (b *Buffer) translateQuery(ev queryEvent) Event {
	switch ev := ev.(type) {
	case queryUserContextEvent:
		return UserContextEvent{Server: b.query.target.Server, Nick: ev.nick, Kind: ev.kind}
	case queryHistoryEvent:
		return HistoryEvent{Task: ev.task}
	}
	return nil
}

// View renders the active variant. State needed for rendering is lent in;
// nothing stored in the buffer is mutated.
func (b *Buffer) View(clients *irc.Map, hist *history.Manager, transfers *transfer.Manager, cfg *config.Config, th theme.Theme) string {
	switch b.kind {
	case KindChannel:
		return b.channel.view(clients, hist, cfg, th)
	case KindServer:
		return b.server.view(clients, hist, cfg, th)
	case KindQuery:
		return b.query.view(hist, cfg, th)
	case KindFileTransfers:
		return b.fileTransfers.view(transfers, th)
	case KindLogs:
		return b.logs.view(hist, cfg, th)
	}
	return emptyView(b.width, b.height, clients, th)
}

// wrapCmd re-tags a task's result so it finds its way back to the component
// that produced it.
func wrapCmd(cmd tea.Cmd, wrap func(tea.Msg) tea.Msg) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return wrap(cmd())
	}
}
