package buffer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

// UserContextKind identifies an action requested on another user.
type UserContextKind int

const (
	// UserContextQuery opens a direct-message buffer with the user.
	UserContextQuery UserContextKind = iota
	// UserContextWhois requests whois information for the user.
	UserContextWhois
	// UserContextSendFile starts a file transfer to the user.
	UserContextSendFile
)

func (k UserContextKind) String() string {
	switch k {
	case UserContextQuery:
		return "Message"
	case UserContextWhois:
		return "Whois"
	case UserContextSendFile:
		return "Send file"
	}
	return "unknown"
}

var userContextActions = []UserContextKind{UserContextQuery, UserContextWhois, UserContextSendFile}

// userContextMenu is the popup action list shown for a nicklist selection.
type userContextMenu struct {
	nick     irc.Nick
	selected int
	open     bool
}

// user context messages.
type (
	userContextOpen  struct{ nick irc.Nick }
	userContextMove  struct{ delta int }
	userContextPick  struct{}
	userContextClose struct{}
)

type userContextMsg interface{ userContextMsg() }

func (userContextOpen) userContextMsg()  {}
func (userContextMove) userContextMsg()  {}
func (userContextPick) userContextMsg()  {}
func (userContextClose) userContextMsg() {}

// update applies a menu message and reports a chosen action, if any.
func (m *userContextMenu) update(msg userContextMsg) (UserContextKind, bool) {
	switch msg := msg.(type) {
	case userContextOpen:
		m.nick = msg.nick
		m.selected = 0
		m.open = true
	case userContextMove:
		if !m.open {
			break
		}
		m.selected += msg.delta
		if m.selected < 0 {
			m.selected = 0
		}
		if m.selected >= len(userContextActions) {
			m.selected = len(userContextActions) - 1
		}
	case userContextPick:
		if m.open {
			m.open = false
			return userContextActions[m.selected], true
		}
	case userContextClose:
		m.open = false
	}
	return 0, false
}

// view renders the action list for the current nick.
func (m *userContextMenu) view(th theme.Theme) string {
	if !m.open {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.TextInverse)).
		Background(lipgloss.Color(th.GetBgSelected()))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(string(m.nick)))
	for i, action := range userContextActions {
		sb.WriteString("\n")
		if i == m.selected {
			sb.WriteString(selectedStyle.Render("> " + action.String()))
		} else {
			sb.WriteString(itemStyle.Render("  " + action.String()))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.GetBorderFocus())).
		Padding(0, 1).
		Render(sb.String())
}
