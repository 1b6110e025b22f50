package buffer

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
)

var testSettings = config.BufferSettings{CompletionSuffix: ": "}

func TestInputSubmitTrims(t *testing.T) {
	iv := newInputView("")
	hist := history.NewManager("")
	target := irc.ChannelBuffer("libera", "#go")

	iv.input.SetValue("  hello  ")
	text, _ := iv.update(inputSubmit{}, target, hist, nil, testSettings)
	if text != "hello" {
		t.Errorf("submitted = %q, want %q", text, "hello")
	}
	if iv.value() != "" {
		t.Errorf("composer = %q after submit, want empty", iv.value())
	}
}

func TestInputSubmitEmptyIsNoOp(t *testing.T) {
	iv := newInputView("")
	hist := history.NewManager("")
	target := irc.ChannelBuffer("libera", "#go")

	iv.input.SetValue("   ")
	text, _ := iv.update(inputSubmit{}, target, hist, nil, testSettings)
	if text != "" {
		t.Errorf("submitted = %q, want empty", text)
	}
	if _, ok := hist.InputBefore(target); ok {
		t.Error("blank line entered send history")
	}
}

func TestInputHistoryRecall(t *testing.T) {
	iv := newInputView("")
	hist := history.NewManager("")
	target := irc.ChannelBuffer("libera", "#go")

	iv.input.SetValue("first")
	iv.update(inputSubmit{}, target, hist, nil, testSettings)
	iv.input.SetValue("second")
	iv.update(inputSubmit{}, target, hist, nil, testSettings)

	up := inputKey{key: tea.KeyPressMsg{Code: tea.KeyUp}}
	iv.update(up, target, hist, nil, testSettings)
	if iv.value() != "second" {
		t.Errorf("after up: %q, want %q", iv.value(), "second")
	}
	iv.update(up, target, hist, nil, testSettings)
	if iv.value() != "first" {
		t.Errorf("after up up: %q, want %q", iv.value(), "first")
	}

	down := inputKey{key: tea.KeyPressMsg{Code: tea.KeyDown}}
	iv.update(down, target, hist, nil, testSettings)
	if iv.value() != "second" {
		t.Errorf("after down: %q, want %q", iv.value(), "second")
	}
}

func TestNickCompletion(t *testing.T) {
	iv := newInputView("")
	users := []irc.User{{Nick: "alice"}, {Nick: "Alfred"}, {Nick: "bob"}}
	target := irc.ChannelBuffer("libera", "#go")

	tab := inputKey{key: tea.KeyPressMsg{Code: tea.KeyTab}}

	iv.input.SetValue("al")
	iv.update(tab, target, nil, users, testSettings)
	if iv.value() != "Alfred: " && iv.value() != "alice: " {
		t.Fatalf("after tab: %q", iv.value())
	}
	first := iv.value()

	// A second tab cycles to the other match.
	iv.update(tab, target, nil, users, testSettings)
	if iv.value() == first {
		t.Errorf("tab did not cycle: %q", iv.value())
	}

	// Cycling wraps around.
	iv.update(tab, target, nil, users, testSettings)
	if iv.value() != first {
		t.Errorf("tab did not wrap: %q, want %q", iv.value(), first)
	}
}

func TestNickCompletionMidSentence(t *testing.T) {
	iv := newInputView("")
	users := []irc.User{{Nick: "alice"}}
	target := irc.ChannelBuffer("libera", "#go")

	iv.input.SetValue("thanks al")
	iv.update(inputKey{key: tea.KeyPressMsg{Code: tea.KeyTab}}, target, nil, users, testSettings)
	if iv.value() != "thanks alice " {
		t.Errorf("after tab: %q, want %q", iv.value(), "thanks alice ")
	}
}

func TestNickCompletionNoMatch(t *testing.T) {
	iv := newInputView("")
	users := []irc.User{{Nick: "alice"}}
	target := irc.ChannelBuffer("libera", "#go")

	iv.input.SetValue("zzz")
	iv.update(inputKey{key: tea.KeyPressMsg{Code: tea.KeyTab}}, target, nil, users, testSettings)
	if iv.value() != "zzz" {
		t.Errorf("after tab: %q, want input untouched", iv.value())
	}
}

func TestInsertUserPlacement(t *testing.T) {
	iv := newInputView("")

	iv.insertUser("alice", testSettings)
	if iv.value() != "alice: " {
		t.Errorf("at line start: %q, want %q", iv.value(), "alice: ")
	}

	iv.reset()
	iv.input.SetValue("ping")
	iv.insertUser("bob", testSettings)
	if iv.value() != "ping bob " {
		t.Errorf("mid-sentence: %q, want %q", iv.value(), "ping bob ")
	}
}
