package irc

import "sort"

// ConnectionState tracks where a client is in its connection lifecycle.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
)

// String returns a human-readable name for the state.
func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "Disconnected"
	}
}

// ChannelState is the client's view of one joined channel.
type ChannelState struct {
	Topic  string
	users  map[string]User // keyed by casemapped nick
	Unread int
}

// Users returns the channel members sorted by nick, ops first.
func (c *ChannelState) Users() []User {
	users := make([]User, 0, len(c.users))
	for _, u := range c.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].AccessLevel != users[j].AccessLevel {
			return users[i].AccessLevel > users[j].AccessLevel
		}
		return users[i].Nick.Lower() < users[j].Nick.Lower()
	})
	return users
}

// User looks up a member by nick.
func (c *ChannelState) User(nick Nick) (User, bool) {
	u, ok := c.users[nick.Lower()]
	return u, ok
}

// Client is the per-server connection state consulted by buffer views and
// mutated by buffer updates. It carries no sockets; the network layer feeds
// it from outside the UI loop.
type Client struct {
	Server   Server
	Nick     Nick
	State    ConnectionState
	channels map[string]*ChannelState
}

// Channel returns the state for a joined channel, creating it on first use.
func (c *Client) Channel(name string) *ChannelState {
	if c.channels == nil {
		c.channels = make(map[string]*ChannelState)
	}
	ch, ok := c.channels[name]
	if !ok {
		ch = &ChannelState{users: make(map[string]User)}
		c.channels[name] = ch
	}
	return ch
}

// Joined reports whether the client is in the named channel.
func (c *Client) Joined(name string) bool {
	_, ok := c.channels[name]
	return ok
}

// ChannelNames returns the joined channels in sorted order.
func (c *Client) ChannelNames() []string {
	names := make([]string, 0, len(c.channels))
	for name := range c.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddUser inserts or replaces a channel member.
func (c *Client) AddUser(channel string, user User) {
	c.Channel(channel).users[user.Nick.Lower()] = user
}

// RemoveUser removes a member from a channel.
func (c *Client) RemoveUser(channel string, nick Nick) {
	if ch, ok := c.channels[channel]; ok {
		delete(ch.users, nick.Lower())
	}
}

// Map is the set of all server connections, keyed by server identity.
// It is owned by the root model and borrowed mutably for the duration of a
// single buffer update.
type Map struct {
	clients map[Server]*Client
}

// NewMap returns an empty connection map.
func NewMap() *Map {
	return &Map{clients: make(map[Server]*Client)}
}

// Client returns the connection state for a server, creating a disconnected
// entry on first use so lookups from freshly-restored buffers never fail.
func (m *Map) Client(server Server) *Client {
	c, ok := m.clients[server]
	if !ok {
		c = &Client{Server: server, State: Disconnected}
		m.clients[server] = c
	}
	return c
}

// Get returns the connection state for a server without creating it.
func (m *Map) Get(server Server) (*Client, bool) {
	c, ok := m.clients[server]
	return c, ok
}

// Servers returns all known servers in sorted order.
func (m *Map) Servers() []Server {
	servers := make([]Server, 0, len(m.clients))
	for s := range m.clients {
		servers = append(servers, s)
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i] < servers[j] })
	return servers
}

// Len returns the number of known servers.
func (m *Map) Len() int {
	return len(m.clients)
}
