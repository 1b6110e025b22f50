// Package scenarios contains built-in demo scenarios for Parley.
package scenarios

import (
	"time"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/demo"
	"github.com/parley-irc/parley/internal/irc"
)

var (
	libera  = irc.Server("libera")
	goChan  = irc.ChannelBuffer(libera, "#go")
	devChan = irc.ChannelBuffer(libera, "#parley-dev")
	mira    = irc.QueryBuffer(libera, "mira")
)

// Basic is a slow conversation in a single channel: a join, some chatter,
// a topic change, and one mention of our nick to show highlight styling.
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Slow conversation in one channel",
	Servers: []config.ServerConfig{
		{Name: "libera", Host: "irc.libera.chat", Nick: "alex", Channels: []string{"#go"}},
	},
	Steps: []demo.Step{
		demo.Notice(irc.ServerBuffer(libera), "NickServ", "You are now identified for alex").After(500 * time.Millisecond),
		demo.Join(goChan, "mira"),
		demo.Message(goChan, "mira", "morning all"),
		demo.Message(goChan, "rob", "morning"),
		demo.Message(goChan, "mira", "anyone looked at the new iterator proposal?").After(2 * time.Second),
		demo.Message(goChan, "rob", "skimmed it, the pull model looks reasonable"),
		demo.Action(goChan, "mira", "goes to read the full thread"),
		demo.Topic(goChan, "op", "Go discussion | release freeze next week").After(3 * time.Second),
		demo.Message(goChan, "rob", "alex: you had a repro for that scheduler hiccup, right?").After(2 * time.Second),
		demo.Message(goChan, "mira", "that one was fun to bisect"),
		demo.Part(goChan, "rob").After(4 * time.Second),
	},
}

// Busy spreads traffic across two channels and a direct message, so unread
// counters, query tracking, and highlight notifications all fire.
var Busy = &demo.Scenario{
	Name:        "busy",
	Description: "Two channels plus a direct message",
	Servers: []config.ServerConfig{
		{Name: "libera", Host: "irc.libera.chat", Nick: "alex", Channels: []string{"#go", "#parley-dev"}},
	},
	Steps: []demo.Step{
		demo.Join(goChan, "mira").After(500 * time.Millisecond),
		demo.Message(goChan, "mira", "ci is green again"),
		demo.Message(devChan, "dana", "pushed the sidebar fix"),
		demo.Message(devChan, "dana", "review when you get a chance"),
		demo.Message(goChan, "rob", "nice, what was it?"),
		demo.Message(mira, "mira", "got a sec? it's about the release notes").After(2 * time.Second),
		demo.Message(goChan, "mira", "stale cache key in the build step"),
		demo.Message(devChan, "dana", "alex: the fix also covers the resize flicker").After(2 * time.Second),
		demo.Action(devChan, "dana", "closes the issue"),
		demo.Message(mira, "mira", "never mind, found it in the draft"),
	},
}

// All returns every built-in scenario.
func All() []*demo.Scenario {
	return []*demo.Scenario{Basic, Busy}
}

// Get returns a scenario by name, or nil if there is none.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
