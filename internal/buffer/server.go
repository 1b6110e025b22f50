package buffer

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

// Server is a server status buffer: connection notices plus a composer for
// commands that are not tied to any channel.
type Server struct {
	target irc.Buffer

	scroll scrollView
	input  inputView

	width   int
	height  int
	focused bool
}

// serverMessage is the server buffer's local message union.
type serverMessage interface{ serverMessage() }

type (
	serverInput  struct{ msg inputMsg }
	serverScroll struct{ msg scrollMsg }
)

func (serverInput) serverMessage()  {}
func (serverScroll) serverMessage() {}

// serverEvent is what a server update reports upward.
type serverEvent interface{ serverEvent() }

type (
	serverOpenChannelEvent struct{ channel string }
	serverHistoryEvent     struct{ task tea.Cmd }
)

func (serverOpenChannelEvent) serverEvent() {}
func (serverHistoryEvent) serverEvent()     {}

// NewServer creates a buffer for a server descriptor.
func NewServer(target irc.Buffer) *Server {
	return &Server{
		target: target,
		scroll: newScrollView(),
		input:  newInputView("Command for " + string(target.Server)),
	}
}

func (s *Server) setSize(width, height int) {
	s.width = width
	s.height = height
	paneHeight := height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}
	s.scroll.setSize(width, paneHeight)
	s.input.setWidth(width)
}

func (s *Server) setFocused(focused bool) tea.Cmd {
	s.focused = focused
	return s.input.setFocused(focused)
}

func (s *Server) reset() {
	s.input.reset()
}

func (s *Server) update(msg serverMessage, clients *irc.Map, hist *history.Manager, cfg *config.Config) (tea.Cmd, serverEvent) {
	switch msg := msg.(type) {
	case serverInput:
		text, cmd := s.input.update(msg.msg, s.target, hist, nil, cfg.GetBuffer())
		if text == "" {
			return cmd, nil
		}
		if channel, ok := strings.CutPrefix(string(text), "/join "); ok {
			if channel = strings.TrimSpace(channel); channel != "" {
				return cmd, serverOpenChannelEvent{channel: channel}
			}
			return cmd, nil
		}
		hist.Record(s.target, history.Record{
			Nick: clients.Client(s.target.Server).Nick,
			Text: string(text),
			Kind: history.KindNotice,
			At:   time.Now(),
		})
		return cmd, nil

	case serverScroll:
		cmd, reachedTop := s.scroll.update(msg.msg)
		if reachedTop {
			if task := hist.LoadOlder(s.target); task != nil {
				return cmd, serverHistoryEvent{task: task}
			}
		}
		return cmd, nil
	}
	return nil, nil
}

// view renders the connection status line, notices, and composer.
func (s *Server) view(clients *irc.Map, hist *history.Manager, cfg *config.Config, th theme.Theme) string {
	client := clients.Client(s.target.Server)

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Info)).Width(s.width).MaxHeight(1)
	status := fmt.Sprintf("%s — %s", s.target.Server, client.State)
	if client.State == irc.Connected && client.Nick != "" {
		status += fmt.Sprintf(" as %s", client.Nick)
	}

	content := renderRecords(hist.Records(s.target), s.width, cfg.GetBuffer(), th)
	return statusStyle.Render(status) + "\n" + s.scroll.view(content) + "\n" + s.input.view()
}
