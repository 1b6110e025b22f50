package buffer

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/theme"
)

// Logs is the read-only buffer showing the application's own log records.
type Logs struct {
	scroll scrollView

	width  int
	height int
}

// logsMessage is the log buffer's local message union.
type logsMessage interface{ logsMessage() }

type logsScroll struct{ msg scrollMsg }

func (logsScroll) logsMessage() {}

// NewLogs creates the log viewer buffer. Records are loaded into the history
// manager's log store when the buffer is opened; this variant only reads.
func NewLogs() *Logs {
	return &Logs{scroll: newScrollView()}
}

func (l *Logs) setSize(width, height int) {
	l.width = width
	l.height = height
	l.scroll.setSize(width, height)
}

func (l *Logs) update(msg logsMessage) tea.Cmd {
	switch msg := msg.(type) {
	case logsScroll:
		cmd, _ := l.scroll.update(msg.msg)
		return cmd
	}
	return nil
}

// view renders log records, colored by level.
func (l *Logs) view(hist *history.Manager, cfg *config.Config, th theme.Theme) string {
	settings := cfg.GetBuffer()
	timestampStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Timestamp))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Warning))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))

	var sb strings.Builder
	for i, r := range hist.LogRecords() {
		if i > 0 {
			sb.WriteString("\n")
		}
		if settings.Timestamps {
			sb.WriteString(timestampStyle.Render(r.At.Format(settings.TimestampFormat)) + " ")
		}
		line := r.Level + " " + r.Text
		switch strings.ToUpper(r.Level) {
		case "WARN":
			sb.WriteString(warnStyle.Render(line))
		case "ERROR":
			sb.WriteString(errorStyle.Render(line))
		default:
			sb.WriteString(textStyle.Render(line))
		}
	}
	return l.scroll.view(sb.String())
}
