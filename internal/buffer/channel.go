package buffer

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

// nicklistWidth is the fixed width of the member pane.
const nicklistWidth = 16

// Channel is a joined-channel buffer: message pane, composer, and a
// nicklist with a per-user action menu.
type Channel struct {
	target irc.Buffer

	scroll scrollView
	input  inputView
	menu   userContextMenu

	nicklistIndex   int
	nicklistFocused bool

	width   int
	height  int
	focused bool
}

// channelMessage is the channel buffer's local message union.
type channelMessage interface{ channelMessage() }

type (
	channelInput       struct{ msg inputMsg }
	channelScroll      struct{ msg scrollMsg }
	channelUserContext struct{ msg userContextMsg }
	// channelNicklistMove moves the member-pane selection.
	channelNicklistMove struct{ delta int }
	// channelNicklistPick opens the action menu on the selected member.
	channelNicklistPick struct{}
	// channelNicklistToggle moves focus between composer and nicklist.
	channelNicklistToggle struct{}
)

func (channelInput) channelMessage()          {}
func (channelScroll) channelMessage()         {}
func (channelUserContext) channelMessage()    {}
func (channelNicklistMove) channelMessage()   {}
func (channelNicklistPick) channelMessage()   {}
func (channelNicklistToggle) channelMessage() {}

// channelEvent is what a channel update reports upward before translation
// into the buffer-level event union.
type channelEvent interface{ channelEvent() }

type (
	channelUserContextEvent struct {
		nick irc.Nick
		kind UserContextKind
	}
	channelOpenChannelEvent struct{ channel string }
	channelHistoryEvent     struct{ task tea.Cmd }
)

func (channelUserContextEvent) channelEvent() {}
func (channelOpenChannelEvent) channelEvent() {}
func (channelHistoryEvent) channelEvent()     {}

// NewChannel creates a buffer for a channel descriptor.
func NewChannel(target irc.Buffer) *Channel {
	return &Channel{
		target: target,
		scroll: newScrollView(),
		input:  newInputView("Message " + target.Channel),
	}
}

func (c *Channel) setSize(width, height int, settings config.BufferSettings) {
	c.width = width
	c.height = height
	paneWidth := width
	if settings.Nicklist {
		paneWidth -= nicklistWidth + 1
	}
	if paneWidth < 1 {
		paneWidth = 1
	}
	// One line each for the topic and the composer.
	paneHeight := height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}
	c.scroll.setSize(paneWidth, paneHeight)
	c.input.setWidth(width)
}

func (c *Channel) setFocused(focused bool) tea.Cmd {
	c.focused = focused
	if !focused {
		c.nicklistFocused = false
		c.menu.update(userContextClose{})
	}
	return c.input.setFocused(focused && !c.nicklistFocused)
}

func (c *Channel) reset() {
	c.input.reset()
	c.nicklistFocused = false
	c.nicklistIndex = 0
	c.menu.update(userContextClose{})
}

// update applies a channel message, mutating client and history state as a
// side effect, and reports at most one event.
func (c *Channel) update(msg channelMessage, clients *irc.Map, hist *history.Manager, cfg *config.Config) (tea.Cmd, channelEvent) {
	switch msg := msg.(type) {
	case channelInput:
		client := clients.Client(c.target.Server)
		users := client.Channel(c.target.Channel).Users()
		text, cmd := c.input.update(msg.msg, c.target, hist, users, cfg.GetBuffer())
		if text == "" {
			return cmd, nil
		}
		return cmd, c.send(string(text), client, hist)

	case channelScroll:
		cmd, reachedTop := c.scroll.update(msg.msg)
		if reachedTop {
			if task := hist.LoadOlder(c.target); task != nil {
				return cmd, channelHistoryEvent{task: task}
			}
		}
		return cmd, nil

	case channelUserContext:
		if kind, ok := c.menu.update(msg.msg); ok {
			return nil, channelUserContextEvent{nick: c.menu.nick, kind: kind}
		}
		return nil, nil

	case channelNicklistMove:
		users := clients.Client(c.target.Server).Channel(c.target.Channel).Users()
		if len(users) == 0 {
			return nil, nil
		}
		c.nicklistIndex += msg.delta
		if c.nicklistIndex < 0 {
			c.nicklistIndex = 0
		}
		if c.nicklistIndex >= len(users) {
			c.nicklistIndex = len(users) - 1
		}
		return nil, nil

	case channelNicklistPick:
		users := clients.Client(c.target.Server).Channel(c.target.Channel).Users()
		if c.nicklistIndex >= len(users) {
			return nil, nil
		}
		c.menu.update(userContextOpen{nick: users[c.nicklistIndex].Nick})
		return nil, nil

	case channelNicklistToggle:
		if !cfg.GetBuffer().Nicklist {
			return nil, nil
		}
		c.nicklistFocused = !c.nicklistFocused
		return c.input.setFocused(c.focused && !c.nicklistFocused), nil
	}
	return nil, nil
}

// send records an outgoing line, interpreting the few slash commands the
// composer understands.
func (c *Channel) send(text string, client *irc.Client, hist *history.Manager) channelEvent {
	switch {
	case strings.HasPrefix(text, "/join "):
		channel := strings.TrimSpace(strings.TrimPrefix(text, "/join "))
		if channel != "" {
			return channelOpenChannelEvent{channel: channel}
		}
		return nil
	case strings.HasPrefix(text, "/me "):
		hist.Record(c.target, history.Record{
			Nick: client.Nick,
			Text: strings.TrimPrefix(text, "/me "),
			Kind: history.KindAction,
			At:   time.Now(),
		})
		return nil
	default:
		hist.Record(c.target, history.Record{
			Nick: client.Nick,
			Text: text,
			Kind: history.KindMessage,
			At:   time.Now(),
		})
		return nil
	}
}

// view renders topic, messages, composer, and optionally the nicklist.
func (c *Channel) view(clients *irc.Map, hist *history.Manager, cfg *config.Config, th theme.Theme) string {
	settings := cfg.GetBuffer()
	client := clients.Client(c.target.Server)
	state := client.Channel(c.target.Channel)

	paneWidth := c.width
	if settings.Nicklist {
		paneWidth -= nicklistWidth + 1
	}
	if paneWidth < 1 {
		paneWidth = 1
	}

	topicStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.Topic)).
		Width(paneWidth).
		MaxHeight(1)
	topic := state.Topic
	if topic == "" {
		topic = c.target.Channel
	}

	content := renderRecords(hist.Records(c.target), paneWidth, settings, th)
	messages := c.scroll.view(content)

	pane := topicStyle.Render(topic) + "\n" + messages
	if settings.Nicklist {
		pane = lipgloss.JoinHorizontal(lipgloss.Top, pane, " ", c.nicklist(state, th))
	}

	if menu := c.menu.view(th); menu != "" {
		pane = lipgloss.JoinHorizontal(lipgloss.Top, pane, menu)
	}

	return pane + "\n" + c.input.view()
}

// nicklist renders the member pane with the selection cursor.
func (c *Channel) nicklist(state *irc.ChannelState, th theme.Theme) string {
	users := state.Users()
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.TextInverse)).
		Background(lipgloss.Color(th.GetBgSelected()))

	height := c.height - 2
	if height < 1 {
		height = 1
	}

	// Keep the selection visible when the member list outgrows the pane.
	start := 0
	if c.nicklistIndex >= height {
		start = c.nicklistIndex - height + 1
	}

	var sb strings.Builder
	for i := start; i < len(users) && i-start < height; i++ {
		if i > start {
			sb.WriteString("\n")
		}
		label := runewidth.Truncate(users[i].String(), nicklistWidth, "…")
		if c.nicklistFocused && i == c.nicklistIndex {
			sb.WriteString(selectedStyle.Render(label))
		} else {
			sb.WriteString(itemStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(nicklistWidth).Render(sb.String())
}

// insertUser appends a nick to the composer.
func (c *Channel) insertUser(nick irc.Nick, settings config.BufferSettings) tea.Cmd {
	return c.input.insertUser(nick, settings)
}
