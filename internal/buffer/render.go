package buffer

import (
	"bytes"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/theme"
)

// highlightCode applies syntax highlighting to a fenced code block using
// chroma, falling back to the raw code when tokenizing fails.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// truncateNick shortens a nick to max display cells, grapheme-aware so
// multi-byte nicks never get cut mid-cluster.
func truncateNick(nick string, max int) string {
	if uniseg.StringWidth(nick) <= max {
		return nick
	}
	var sb strings.Builder
	width := 0
	state := -1
	remaining := nick
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		w := uniseg.StringWidth(cluster)
		if width+w > max-1 {
			break
		}
		sb.WriteString(cluster)
		width += w
	}
	sb.WriteString("…")
	return sb.String()
}

// nickColumnWidth is the fixed gutter for sender nicks in message renders.
const nickColumnWidth = 12

// renderRecords renders buffer history records into viewport content.
// Output is width-bounded; each record may span multiple wrapped lines.
func renderRecords(records []history.Record, width int, settings config.BufferSettings, th theme.Theme) string {
	if width < 10 {
		width = 10
	}

	timestampStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Timestamp))
	actionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Action)).Italic(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))
	highlightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Highlight)).Bold(true)

	if len(records) > settings.MaxRenderedLines && settings.MaxRenderedLines > 0 {
		records = records[len(records)-settings.MaxRenderedLines:]
	}

	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n")
		}

		prefix := ""
		if settings.Timestamps {
			prefix = timestampStyle.Render(r.At.Format(settings.TimestampFormat)) + " "
		}

		switch r.Kind {
		case history.KindAction:
			sb.WriteString(prefix + actionStyle.Render(fmt.Sprintf("* %s %s", r.Nick, r.Text)))
		case history.KindJoin:
			sb.WriteString(prefix + mutedStyle.Render(fmt.Sprintf("→ %s joined", r.Nick)))
		case history.KindPart:
			sb.WriteString(prefix + mutedStyle.Render(fmt.Sprintf("← %s left", r.Nick)))
		case history.KindQuit:
			sb.WriteString(prefix + mutedStyle.Render(fmt.Sprintf("← %s quit", r.Nick)))
		case history.KindTopic:
			sb.WriteString(prefix + mutedStyle.Render(fmt.Sprintf("topic: %s", r.Text)))
		case history.KindError:
			sb.WriteString(prefix + errorStyle.Render(r.Text))
		case history.KindNotice:
			sb.WriteString(prefix + mutedStyle.Render(fmt.Sprintf("-%s- %s", r.Nick, r.Text)))
		default:
			nickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.NickColor(string(r.Nick))))
			nick := truncateNick(string(r.Nick), nickColumnWidth)
			pad := strings.Repeat(" ", nickColumnWidth-runewidth.StringWidth(nick))
			body := renderBody(r.Text, width-nickColumnWidth-2, th)
			if r.Highlight {
				body = highlightStyle.Render(body)
			}
			// Continuation lines align under the message body.
			indent := "\n" + strings.Repeat(" ", nickColumnWidth+1)
			body = strings.ReplaceAll(body, "\n", indent)
			sb.WriteString(prefix + pad + nickStyle.Render(nick) + " " + body)
		}
	}
	return sb.String()
}

// renderBody word-wraps a message body and syntax-highlights fenced code
// blocks pasted inline.
func renderBody(text string, width int, th theme.Theme) string {
	if width < 10 {
		width = 10
	}

	if !strings.Contains(text, "```") {
		return wordwrap.String(text, width)
	}

	codeBgStyle := lipgloss.NewStyle().Background(lipgloss.Color(th.CodeBg))
	var sb strings.Builder
	parts := strings.Split(text, "```")
	for i, part := range parts {
		if i%2 == 0 {
			sb.WriteString(wordwrap.String(part, width))
			continue
		}
		// Odd segments are code; first word may name the language.
		language := ""
		code := part
		if nl := strings.IndexByte(part, '\n'); nl >= 0 {
			language = strings.TrimSpace(part[:nl])
			code = part[nl+1:]
		}
		sb.WriteString("\n" + codeBgStyle.Render(highlightCode(code, language)) + "\n")
	}
	return sb.String()
}
