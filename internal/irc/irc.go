// Package irc holds the connection-facing data model shared across the UI:
// server identities, nicks, users, and the buffer descriptor that names a
// conversational target. Wire protocol handling lives outside this package.
package irc

import (
	"fmt"
	"strings"
)

// Server identifies a configured server connection by name (e.g. "libera").
type Server string

// String returns the server name.
func (s Server) String() string {
	return string(s)
}

// Nick is an IRC nickname. Comparisons are casemapped per RFC 1459's
// lowercasing rules, which treat []\~ as the uppercase forms of {}|^.
type Nick string

// String returns the nickname as typed.
func (n Nick) String() string {
	return string(n)
}

// Lower returns the RFC 1459 casemapped form used for comparisons.
func (n Nick) Lower() string {
	var sb strings.Builder
	sb.Grow(len(n))
	for _, r := range string(n) {
		switch r {
		case '[':
			r = '{'
		case ']':
			r = '}'
		case '\\':
			r = '|'
		case '~':
			r = '^'
		default:
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Equal reports whether two nicks refer to the same user under casemapping.
func (n Nick) Equal(other Nick) bool {
	return n.Lower() == other.Lower()
}

// User is a member of a channel as seen by the client.
type User struct {
	Nick     Nick
	Username string
	Hostname string
	// AccessLevel is the highest channel mode prefix ("@", "+", "") the
	// user holds in the channel this User was read from.
	AccessLevel string
	Away        bool
}

// String renders the user with its access prefix, as shown in nick lists.
func (u User) String() string {
	return u.AccessLevel + string(u.Nick)
}

// BufferKind distinguishes the three conversational descriptor shapes.
type BufferKind int

const (
	// BufferServer names the server console of a connection.
	BufferServer BufferKind = iota
	// BufferChannel names a joined channel on a connection.
	BufferChannel
	// BufferQuery names a direct conversation with another user.
	BufferQuery
)

// Buffer is the persistence-level descriptor of a conversational buffer:
// a server, a server+channel, or a server+query target. It is a pure value;
// the UI-side state that renders it lives in the buffer package.
type Buffer struct {
	Server  Server
	Channel string // set only for BufferChannel
	Target  Nick   // set only for BufferQuery
}

// ServerBuffer returns the descriptor for a server console.
func ServerBuffer(server Server) Buffer {
	return Buffer{Server: server}
}

// ChannelBuffer returns the descriptor for a channel on a server.
func ChannelBuffer(server Server, channel string) Buffer {
	return Buffer{Server: server, Channel: channel}
}

// QueryBuffer returns the descriptor for a direct conversation.
func QueryBuffer(server Server, target Nick) Buffer {
	return Buffer{Server: server, Target: target}
}

// Kind reports which descriptor shape this is.
func (b Buffer) Kind() BufferKind {
	switch {
	case b.Channel != "":
		return BufferChannel
	case b.Target != "":
		return BufferQuery
	default:
		return BufferServer
	}
}

// Equal reports descriptor equality, casemapping the query target.
func (b Buffer) Equal(other Buffer) bool {
	return b.Server == other.Server &&
		b.Channel == other.Channel &&
		b.Target.Equal(other.Target)
}

// Key returns a stable string key for use in history and unread maps.
func (b Buffer) Key() string {
	switch b.Kind() {
	case BufferChannel:
		return fmt.Sprintf("%s:channel:%s", b.Server, strings.ToLower(b.Channel))
	case BufferQuery:
		return fmt.Sprintf("%s:query:%s", b.Server, b.Target.Lower())
	default:
		return fmt.Sprintf("%s:server", b.Server)
	}
}

// Title returns the short display name used in the sidebar and header.
func (b Buffer) Title() string {
	switch b.Kind() {
	case BufferChannel:
		return b.Channel
	case BufferQuery:
		return string(b.Target)
	default:
		return string(b.Server)
	}
}
