package irc

import "testing"

func TestNickEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Nick
		want bool
	}{
		{"identical", "alice", "alice", true},
		{"ascii case", "Alice", "aLICE", true},
		{"rfc1459 brackets", "nick[away]", "nick{away}", true},
		{"rfc1459 backslash", "a\\b", "a|b", true},
		{"rfc1459 tilde", "n~", "n^", true},
		{"different", "alice", "bob", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Nick(%q).Equal(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBufferKind(t *testing.T) {
	tests := []struct {
		name   string
		buffer Buffer
		want   BufferKind
	}{
		{"server", ServerBuffer("libera"), BufferServer},
		{"channel", ChannelBuffer("libera", "#go"), BufferChannel},
		{"query", QueryBuffer("libera", "alice"), BufferQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.buffer.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBufferKey(t *testing.T) {
	a := ChannelBuffer("libera", "#Go")
	b := ChannelBuffer("libera", "#go")
	if a.Key() != b.Key() {
		t.Errorf("channel keys should be case-insensitive: %q vs %q", a.Key(), b.Key())
	}

	q := QueryBuffer("libera", "Alice")
	q2 := QueryBuffer("libera", "alice")
	if q.Key() != q2.Key() {
		t.Errorf("query keys should be casemapped: %q vs %q", q.Key(), q2.Key())
	}

	if ServerBuffer("libera").Key() == ServerBuffer("oftc").Key() {
		t.Error("server keys should differ per server")
	}
}

func TestBufferTitle(t *testing.T) {
	if got := ChannelBuffer("libera", "#go").Title(); got != "#go" {
		t.Errorf("channel title = %q, want %q", got, "#go")
	}
	if got := QueryBuffer("libera", "alice").Title(); got != "alice" {
		t.Errorf("query title = %q, want %q", got, "alice")
	}
	if got := ServerBuffer("libera").Title(); got != "libera" {
		t.Errorf("server title = %q, want %q", got, "libera")
	}
}

func TestChannelUsersSorted(t *testing.T) {
	client := &Client{Server: "libera"}
	client.AddUser("#go", User{Nick: "zoe"})
	client.AddUser("#go", User{Nick: "Alice"})
	client.AddUser("#go", User{Nick: "op", AccessLevel: "@"})
	client.AddUser("#go", User{Nick: "voiced", AccessLevel: "+"})

	users := client.Channel("#go").Users()
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}
	// Ops sort before voiced, voiced before regular; regulars alphabetical.
	if users[0].Nick != "op" {
		t.Errorf("first user = %q, want op", users[0].Nick)
	}
	if users[1].Nick != "voiced" {
		t.Errorf("second user = %q, want voiced", users[1].Nick)
	}
	if users[2].Nick != "Alice" || users[3].Nick != "zoe" {
		t.Errorf("regular users out of order: %q, %q", users[2].Nick, users[3].Nick)
	}
}

func TestMapClientCreatesOnFirstUse(t *testing.T) {
	m := NewMap()
	if m.Len() != 0 {
		t.Fatalf("new map should be empty, got %d", m.Len())
	}

	c := m.Client("libera")
	if c.State != Disconnected {
		t.Errorf("fresh client state = %v, want Disconnected", c.State)
	}
	if m.Len() != 1 {
		t.Errorf("map should have 1 client, got %d", m.Len())
	}

	if _, ok := m.Get("oftc"); ok {
		t.Error("Get should not create entries")
	}
	if m.Len() != 1 {
		t.Errorf("Get created an entry: len = %d", m.Len())
	}
}

func TestRemoveUser(t *testing.T) {
	client := &Client{Server: "libera"}
	client.AddUser("#go", User{Nick: "Alice"})
	client.RemoveUser("#go", "alice")
	if _, ok := client.Channel("#go").User("Alice"); ok {
		t.Error("user should be removed under casemapped nick")
	}
}
