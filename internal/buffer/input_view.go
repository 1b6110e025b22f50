package buffer

import (
	"sort"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/keys"
)

// inputView wraps the message composer for buffers that accept input.
// Send-history recall and nick completion live here so every composing
// buffer behaves the same way.
type inputView struct {
	input   textarea.Model
	focused bool

	// completion cycling state, reset on any edit
	completing        bool
	completionBase    string
	completionMatches []string
	completionIndex   int
}

// input view messages.
type (
	// inputKey is a key press routed to the composer.
	inputKey struct{ key tea.KeyPressMsg }
	// inputSubmit asks the composer to emit its current content.
	inputSubmit struct{}
	// inputRaw carries component-internal messages such as cursor blinks.
	inputRaw struct{ msg tea.Msg }
)

type inputMsg interface{ inputMsg() }

func (inputKey) inputMsg()    {}
func (inputSubmit) inputMsg() {}
func (inputRaw) inputMsg()    {}

func newInputView(placeholder string) inputView {
	ti := textarea.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.SetHeight(1)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	return inputView{input: ti}
}

func (iv *inputView) setWidth(width int) {
	iv.input.SetWidth(width)
}

func (iv *inputView) setFocused(focused bool) tea.Cmd {
	iv.focused = focused
	if focused {
		return iv.input.Focus()
	}
	iv.input.Blur()
	return nil
}

func (iv *inputView) value() string {
	return iv.input.Value()
}

func (iv *inputView) reset() {
	iv.input.Reset()
	iv.completing = false
}

// insertUser appends a nick to the composer. At the start of a line the
// nick gets the completion suffix, mid-sentence a plain space. The returned
// task refocuses the composer so typing continues where the nick landed.
func (iv *inputView) insertUser(nick irc.Nick, settings config.BufferSettings) tea.Cmd {
	current := iv.input.Value()
	if current == "" {
		iv.input.SetValue(string(nick) + settings.CompletionSuffix)
	} else {
		if !strings.HasSuffix(current, " ") {
			current += " "
		}
		iv.input.SetValue(current + string(nick) + " ")
	}
	iv.input.CursorEnd()
	if iv.focused {
		return iv.input.Focus()
	}
	return nil
}

// submitted is the text emitted on send, empty when there is nothing to send.
type submitted string

// update handles a composer message. hist provides send-history recall and
// users the completion candidates; either may be nil.
func (iv *inputView) update(msg inputMsg, target irc.Buffer, hist *history.Manager, users []irc.User, settings config.BufferSettings) (submitted, tea.Cmd) {
	switch m := msg.(type) {
	case inputSubmit:
		text := strings.TrimSpace(iv.input.Value())
		if text == "" {
			return "", nil
		}
		if hist != nil {
			hist.RecordInput(target, text)
		}
		iv.reset()
		return submitted(text), nil

	case inputKey:
		switch m.key.String() {
		case keys.Up:
			if hist != nil {
				if prev, ok := hist.InputBefore(target); ok {
					iv.input.SetValue(prev)
					iv.input.CursorEnd()
				}
			}
			return "", nil
		case keys.Down:
			if hist != nil {
				if next, ok := hist.InputAfter(target); ok {
					iv.input.SetValue(next)
					iv.input.CursorEnd()
				}
			}
			return "", nil
		case keys.Tab:
			iv.completeNick(users, settings)
			return "", nil
		}
		iv.completing = false
		var cmd tea.Cmd
		iv.input, cmd = iv.input.Update(m.key)
		return "", cmd

	case inputRaw:
		var cmd tea.Cmd
		iv.input, cmd = iv.input.Update(m.msg)
		return "", cmd
	}
	return "", nil
}

// completeNick cycles through nicks matching the word under the cursor.
func (iv *inputView) completeNick(users []irc.User, settings config.BufferSettings) {
	if len(users) == 0 {
		return
	}

	if !iv.completing {
		current := iv.input.Value()
		base := current
		if idx := strings.LastIndexByte(current, ' '); idx >= 0 {
			base = current[idx+1:]
		}
		if base == "" {
			return
		}
		var matches []string
		lowered := irc.Nick(base).Lower()
		for _, u := range users {
			if strings.HasPrefix(u.Nick.Lower(), lowered) {
				matches = append(matches, string(u.Nick))
			}
		}
		if len(matches) == 0 {
			return
		}
		sort.Strings(matches)
		iv.completing = true
		iv.completionBase = current[:len(current)-len(base)]
		iv.completionMatches = matches
		iv.completionIndex = 0
	} else {
		iv.completionIndex = (iv.completionIndex + 1) % len(iv.completionMatches)
	}

	match := iv.completionMatches[iv.completionIndex]
	suffix := " "
	if iv.completionBase == "" {
		suffix = settings.CompletionSuffix
	}
	iv.input.SetValue(iv.completionBase + match + suffix)
	iv.input.CursorEnd()
}

// view renders the composer.
func (iv *inputView) view() string {
	return iv.input.View()
}
