package buffer

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

// Query is a direct-message buffer with a single user.
type Query struct {
	target irc.Buffer

	scroll scrollView
	input  inputView

	width   int
	height  int
	focused bool
}

// queryMessage is the query buffer's local message union.
type queryMessage interface{ queryMessage() }

type (
	queryInput  struct{ msg inputMsg }
	queryScroll struct{ msg scrollMsg }
)

func (queryInput) queryMessage()  {}
func (queryScroll) queryMessage() {}

// queryEvent is what a query update reports upward.
type queryEvent interface{ queryEvent() }

type (
	queryUserContextEvent struct {
		nick irc.Nick
		kind UserContextKind
	}
	queryHistoryEvent struct{ task tea.Cmd }
)

func (queryUserContextEvent) queryEvent() {}
func (queryHistoryEvent) queryEvent()     {}

// NewQuery creates a buffer for a query descriptor.
func NewQuery(target irc.Buffer) *Query {
	return &Query{
		target: target,
		scroll: newScrollView(),
		input:  newInputView("Message " + string(target.Target)),
	}
}

func (q *Query) setSize(width, height int) {
	q.width = width
	q.height = height
	paneHeight := height - 1
	if paneHeight < 1 {
		paneHeight = 1
	}
	q.scroll.setSize(width, paneHeight)
	q.input.setWidth(width)
}

func (q *Query) setFocused(focused bool) tea.Cmd {
	q.focused = focused
	return q.input.setFocused(focused)
}

func (q *Query) reset() {
	q.input.reset()
}

func (q *Query) update(msg queryMessage, clients *irc.Map, hist *history.Manager, cfg *config.Config) (tea.Cmd, queryEvent) {
	switch msg := msg.(type) {
	case queryInput:
		// The only completion candidate in a query is the peer.
		users := []irc.User{{Nick: q.target.Target}}
		text, cmd := q.input.update(msg.msg, q.target, hist, users, cfg.GetBuffer())
		if text == "" {
			return cmd, nil
		}
		if strings.HasPrefix(string(text), "/whois") {
			return cmd, queryUserContextEvent{nick: q.target.Target, kind: UserContextWhois}
		}
		client := clients.Client(q.target.Server)
		kind := history.KindMessage
		body := string(text)
		if action, ok := strings.CutPrefix(body, "/me "); ok {
			kind = history.KindAction
			body = action
		}
		hist.Record(q.target, history.Record{
			Nick: client.Nick,
			Text: body,
			Kind: kind,
			At:   time.Now(),
		})
		return cmd, nil

	case queryScroll:
		cmd, reachedTop := q.scroll.update(msg.msg)
		if reachedTop {
			if task := hist.LoadOlder(q.target); task != nil {
				return cmd, queryHistoryEvent{task: task}
			}
		}
		return cmd, nil
	}
	return nil, nil
}

// view renders the conversation and composer.
func (q *Query) view(hist *history.Manager, cfg *config.Config, th theme.Theme) string {
	content := renderRecords(hist.Records(q.target), q.width, cfg.GetBuffer(), th)
	return q.scroll.view(content) + "\n" + q.input.view()
}

// insertUser appends a nick to the composer.
func (q *Query) insertUser(nick irc.Nick, settings config.BufferSettings) tea.Cmd {
	return q.input.insertUser(nick, settings)
}
