package buffer

import (
	"path/filepath"
	"testing"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/theme"
	"github.com/parley-irc/parley/internal/transfer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

func testDeps(t *testing.T) (*irc.Map, *history.Manager, *transfer.Manager, *config.Config) {
	t.Helper()
	return irc.NewMap(), history.NewManager(""), transfer.NewManager("", false), testConfig(t)
}

func channelBuffer() (Buffer, irc.Buffer) {
	target := irc.ChannelBuffer("libera", "#go")
	return FromDescriptor(target), target
}

func TestFromDescriptorKinds(t *testing.T) {
	tests := []struct {
		name   string
		target irc.Buffer
		want   Kind
	}{
		{"channel", irc.ChannelBuffer("libera", "#go"), KindChannel},
		{"server", irc.ServerBuffer("libera"), KindServer},
		{"query", irc.QueryBuffer("libera", "alice"), KindQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromDescriptor(tt.target)
			if b.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", b.Kind(), tt.want)
			}
			data := b.Data()
			if data == nil {
				t.Fatal("Data() = nil, want descriptor")
			}
			if !data.Equal(tt.target) {
				t.Errorf("Data() = %+v, want %+v", *data, tt.target)
			}
		})
	}
}

func TestDataAbsentForUnattachedVariants(t *testing.T) {
	tests := []struct {
		name string
		b    Buffer
	}{
		{"empty", Empty()},
		{"file-transfers", NewFileTransfersBuffer()},
		{"logs", NewLogsBuffer()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if data := tt.b.Data(); data != nil {
				t.Errorf("Data() = %+v, want nil", *data)
			}
			if _, ok := tt.b.GetServer(); ok {
				t.Error("GetServer() ok, want absent")
			}
			if _, ok := tt.b.GetChannel(); ok {
				t.Error("GetChannel() ok, want absent")
			}
		})
	}
}

func TestGetServerAndChannel(t *testing.T) {
	b, _ := channelBuffer()
	if server, ok := b.GetServer(); !ok || server != "libera" {
		t.Errorf("GetServer() = %q, %v", server, ok)
	}
	if channel, ok := b.GetChannel(); !ok || channel != "#go" {
		t.Errorf("GetChannel() = %q, %v", channel, ok)
	}

	q := FromDescriptor(irc.QueryBuffer("libera", "alice"))
	if _, ok := q.GetChannel(); ok {
		t.Error("query GetChannel() ok, want absent")
	}
	if server, ok := q.GetServer(); !ok || server != "libera" {
		t.Errorf("query GetServer() = %q, %v", server, ok)
	}
}

func TestStaleMessageDropped(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)

	// A message addressed to a channel arrives after the buffer was
	// replaced by a server buffer. It must be silently dropped.
	b := FromDescriptor(irc.ServerBuffer("libera"))
	stale := channelMsg{msg: channelInput{msg: inputSubmit{}}}
	cmd, ev := b.Update(stale, clients, hist, transfers, cfg)
	if cmd != nil || ev != nil {
		t.Errorf("stale update = (%v, %v), want (nil, nil)", cmd, ev)
	}

	// Same the other way around.
	b2, _ := channelBuffer()
	cmd, ev = b2.Update(serverMsg{msg: serverInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)
	if cmd != nil || ev != nil {
		t.Errorf("stale update = (%v, %v), want (nil, nil)", cmd, ev)
	}
}

func TestStaleMessageLeavesStateUntouched(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b, _ := channelBuffer()
	b.channel.input.input.SetValue("draft text")

	b.Update(queryMsg{msg: queryInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)

	if got := b.channel.input.value(); got != "draft text" {
		t.Errorf("composer = %q after stale message, want draft preserved", got)
	}
}

func TestEmptyLifecycleNoOps(t *testing.T) {
	b := Empty()
	if cmd := b.ScrollToEnd(); cmd != nil {
		t.Error("Empty ScrollToEnd returned a task")
	}
	if cmd := b.ScrollToStart(); cmd != nil {
		t.Error("Empty ScrollToStart returned a task")
	}
	if cmd := b.Focus(); cmd != nil {
		t.Error("Empty Focus returned a task")
	}
	b.Blur()
	b.Reset()
	b.InsertUserToInput("alice", config.BufferSettings{})
	b.SetSize(80, 24, config.BufferSettings{})
}

func TestScrollTasksPerVariant(t *testing.T) {
	tests := []struct {
		name string
		b    Buffer
		want bool
	}{
		{"channel", FromDescriptor(irc.ChannelBuffer("libera", "#go")), true},
		{"server", FromDescriptor(irc.ServerBuffer("libera")), true},
		{"query", FromDescriptor(irc.QueryBuffer("libera", "alice")), true},
		{"logs", NewLogsBuffer(), true},
		{"file-transfers", NewFileTransfersBuffer(), false},
		{"empty", Empty(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.ScrollToEnd() != nil; got != tt.want {
				t.Errorf("ScrollToEnd task = %v, want %v", got, tt.want)
			}
			if got := tt.b.ScrollToStart() != nil; got != tt.want {
				t.Errorf("ScrollToStart task = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScrollTaskRoundTrip(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b, _ := channelBuffer()

	cmd := b.ScrollToEnd()
	if cmd == nil {
		t.Fatal("ScrollToEnd returned no task")
	}
	msg, ok := cmd().(Message)
	if !ok {
		t.Fatalf("task result %T is not a buffer message", cmd())
	}
	// Applying the produced message must land in the channel's scroll slot.
	if cmd, ev := b.Update(msg, clients, hist, transfers, cfg); cmd != nil || ev != nil {
		t.Errorf("scroll apply = (%v, %v), want (nil, nil)", cmd, ev)
	}
}

func TestInsertUserToInput(t *testing.T) {
	settings := config.BufferSettings{CompletionSuffix: ": "}

	b, _ := channelBuffer()
	b.InsertUserToInput("alice", settings)
	if got := b.channel.input.value(); got != "alice: " {
		t.Errorf("composer = %q, want %q", got, "alice: ")
	}

	// Mid-sentence insertion gets a plain space.
	b.channel.input.input.SetValue("thanks")
	b.InsertUserToInput("bob", settings)
	if got := b.channel.input.value(); got != "thanks bob " {
		t.Errorf("composer = %q, want %q", got, "thanks bob ")
	}

	q := FromDescriptor(irc.QueryBuffer("libera", "alice"))
	q.InsertUserToInput("alice", settings)
	if got := q.query.input.value(); got != "alice: " {
		t.Errorf("query composer = %q, want %q", got, "alice: ")
	}

	// Variants without a conversation composer ignore the call.
	s := FromDescriptor(irc.ServerBuffer("libera"))
	s.InsertUserToInput("alice", settings)
	if got := s.server.input.value(); got != "" {
		t.Errorf("server composer = %q, want empty", got)
	}
	e := Empty()
	e.InsertUserToInput("alice", settings)
}

func TestInsertUserReturnsFocusTask(t *testing.T) {
	settings := config.BufferSettings{CompletionSuffix: ": "}

	b, _ := channelBuffer()
	b.Focus()
	if cmd := b.InsertUserToInput("alice", settings); cmd == nil {
		t.Error("focused channel insert returned no task")
	}

	q := FromDescriptor(irc.QueryBuffer("libera", "alice"))
	q.Focus()
	if cmd := q.InsertUserToInput("alice", settings); cmd == nil {
		t.Error("focused query insert returned no task")
	}

	// Variants without a conversation composer have nothing to run.
	s := FromDescriptor(irc.ServerBuffer("libera"))
	if cmd := s.InsertUserToInput("alice", settings); cmd != nil {
		t.Error("server insert returned a task")
	}
	e := Empty()
	if cmd := e.InsertUserToInput("alice", settings); cmd != nil {
		t.Error("empty insert returned a task")
	}
}

func TestLogsScrollReportsNoEvent(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b := NewLogsBuffer()
	b.SetSize(80, 24, cfg.GetBuffer())

	cmd := b.ScrollToStart()
	if cmd == nil {
		t.Fatal("ScrollToStart returned no task")
	}
	msg, ok := cmd().(Message)
	if !ok {
		t.Fatalf("task result %T is not a buffer message", cmd())
	}
	// Reaching the top of the log viewer is plain scrolling; only the
	// application decides when log records get loaded.
	if _, ev := b.Update(msg, clients, hist, transfers, cfg); ev != nil {
		t.Errorf("logs scroll reported event %T, want none", ev)
	}
}

func TestChannelSubmitRecordsHistory(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b, target := channelBuffer()
	clients.Client("libera").Nick = "me"

	b.channel.input.input.SetValue("hello world")
	cmd, ev := b.Update(channelMsg{msg: channelInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)
	if cmd != nil || ev != nil {
		t.Errorf("submit = (%v, %v), want (nil, nil)", cmd, ev)
	}

	records := hist.Records(target)
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
	if records[0].Text != "hello world" || records[0].Nick != "me" {
		t.Errorf("record = %+v", records[0])
	}
	if got := b.channel.input.value(); got != "" {
		t.Errorf("composer = %q after submit, want empty", got)
	}
}

func TestChannelActionCommand(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b, target := channelBuffer()
	clients.Client("libera").Nick = "me"

	b.channel.input.input.SetValue("/me waves")
	b.Update(channelMsg{msg: channelInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)

	records := hist.Records(target)
	if len(records) != 1 || records[0].Kind != history.KindAction || records[0].Text != "waves" {
		t.Errorf("records = %+v, want one action %q", records, "waves")
	}
}

func TestChannelJoinCommandEmitsOpenChannel(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b, target := channelBuffer()

	b.channel.input.input.SetValue("/join #rust")
	_, ev := b.Update(channelMsg{msg: channelInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)

	open, ok := ev.(OpenChannelEvent)
	if !ok {
		t.Fatalf("event = %T, want OpenChannelEvent", ev)
	}
	if open.Server != "libera" || open.Channel != "#rust" {
		t.Errorf("event = %+v", open)
	}
	if hist.Len(target) != 0 {
		t.Error("join command was recorded as a message")
	}
}

func TestServerJoinCommandEmitsOpenChannel(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b := FromDescriptor(irc.ServerBuffer("libera"))

	b.server.input.input.SetValue("/join #go")
	_, ev := b.Update(serverMsg{msg: serverInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)

	open, ok := ev.(OpenChannelEvent)
	if !ok {
		t.Fatalf("event = %T, want OpenChannelEvent", ev)
	}
	if open.Server != "libera" || open.Channel != "#go" {
		t.Errorf("event = %+v", open)
	}
}

func TestQueryWhoisEmitsUserContext(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b := FromDescriptor(irc.QueryBuffer("libera", "alice"))

	b.query.input.input.SetValue("/whois")
	_, ev := b.Update(queryMsg{msg: queryInput{msg: inputSubmit{}}}, clients, hist, transfers, cfg)

	uc, ok := ev.(UserContextEvent)
	if !ok {
		t.Fatalf("event = %T, want UserContextEvent", ev)
	}
	if uc.Nick != "alice" || uc.Kind != UserContextWhois || uc.Server != "libera" {
		t.Errorf("event = %+v", uc)
	}
}

func TestNicklistPickOpensMenuAndEmitsAction(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	b, _ := channelBuffer()
	client := clients.Client("libera")
	client.AddUser("#go", irc.User{Nick: "alice"})
	client.AddUser("#go", irc.User{Nick: "bob", AccessLevel: "@"})

	// Ops sort first, so index 0 is bob.
	b.Update(channelMsg{msg: channelNicklistPick{}}, clients, hist, transfers, cfg)
	if !b.channel.menu.open {
		t.Fatal("menu not open after pick")
	}
	if b.channel.menu.nick != "bob" {
		t.Errorf("menu nick = %q, want bob", b.channel.menu.nick)
	}

	// First action in the menu opens a query.
	_, ev := b.Update(channelMsg{msg: channelUserContext{msg: userContextPick{}}}, clients, hist, transfers, cfg)
	uc, ok := ev.(UserContextEvent)
	if !ok {
		t.Fatalf("event = %T, want UserContextEvent", ev)
	}
	if uc.Nick != "bob" || uc.Kind != UserContextQuery {
		t.Errorf("event = %+v", uc)
	}
	if b.channel.menu.open {
		t.Error("menu still open after pick")
	}
}

func TestReset(t *testing.T) {
	b, _ := channelBuffer()
	b.channel.input.input.SetValue("draft")
	b.channel.nicklistFocused = true
	b.channel.menu.update(userContextOpen{nick: "alice"})

	b.Reset()

	if b.channel.input.value() != "" {
		t.Error("composer not cleared")
	}
	if b.channel.nicklistFocused {
		t.Error("nicklist still focused")
	}
	if b.channel.menu.open {
		t.Error("menu still open")
	}
}

func TestViewRendersWithoutState(t *testing.T) {
	clients, hist, transfers, cfg := testDeps(t)
	th := theme.Get(theme.Default)

	variants := []struct {
		name string
		b    Buffer
	}{
		{"empty", Empty()},
		{"channel", FromDescriptor(irc.ChannelBuffer("libera", "#go"))},
		{"server", FromDescriptor(irc.ServerBuffer("libera"))},
		{"query", FromDescriptor(irc.QueryBuffer("libera", "alice"))},
		{"file-transfers", NewFileTransfersBuffer()},
		{"logs", NewLogsBuffer()},
	}
	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			tt.b.SetSize(80, 24, cfg.GetBuffer())
			// Must not panic even with no history or connection state.
			_ = tt.b.View(clients, hist, transfers, cfg, th)
		})
	}
}

func TestFileTransferKeys(t *testing.T) {
	clients, hist, _, cfg := testDeps(t)
	mgr := transfer.NewManager(t.TempDir(), false)
	id := mgr.Add(transfer.Transfer{
		Server:    "libera",
		Peer:      "alice",
		Filename:  "paper.pdf",
		Direction: transfer.Receive,
		Size:      1024,
	})
	b := NewFileTransfersBuffer()

	b.Update(fileTransfersMsg{msg: fileTransfersApprove{}}, clients, hist, mgr, cfg)
	tr, ok := mgr.Get(id)
	if !ok || tr.Status != transfer.Queued {
		t.Errorf("after approve: %+v", tr)
	}

	b.Update(fileTransfersMsg{msg: fileTransfersCancel{}}, clients, hist, mgr, cfg)
	tr, _ = mgr.Get(id)
	if tr.Status != transfer.Cancelled {
		t.Errorf("after cancel: %+v", tr)
	}

	b.Update(fileTransfersMsg{msg: fileTransfersClear{}}, clients, hist, mgr, cfg)
	if mgr.Len() != 0 {
		t.Errorf("transfers remaining after clear: %d", mgr.Len())
	}
}
