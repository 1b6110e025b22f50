package buffer

import (
	"strings"
	"testing"

	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
)

func TestEmptyViewGuidesByContext(t *testing.T) {
	th := theme.Get(theme.Default)

	got := emptyView(80, 24, irc.NewMap(), th)
	if !strings.Contains(got, "ctrl+k") {
		t.Errorf("empty view without servers = %q, want add-server hint", got)
	}

	clients := irc.NewMap()
	clients.Client("libera")
	got = emptyView(80, 24, clients, th)
	if !strings.Contains(got, "sidebar") {
		t.Errorf("empty view with servers = %q, want sidebar hint", got)
	}
}
