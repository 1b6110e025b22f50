// Package demo feeds scripted chat traffic into the UI so the client can be
// exercised and recorded without a network connection. A scenario is a list
// of timed steps; the runner replays them as incoming messages.
package demo

import (
	"fmt"
	"time"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/errors"
	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
)

// Step is one incoming line of scripted traffic.
type Step struct {
	Delay  time.Duration // pause before delivery; zero means the runner default
	Target irc.Buffer
	Nick   irc.Nick
	Text   string
	Kind   history.Kind
}

// After returns a copy of the step with an explicit delivery delay.
func (s Step) After(d time.Duration) Step {
	s.Delay = d
	return s
}

// Scenario defines a complete scripted session.
type Scenario struct {
	Name        string
	Description string

	// Servers are seeded into the configuration before the UI starts, so
	// every target referenced by the steps has a buffer to land in.
	Servers []config.ServerConfig

	Steps []Step
}

// Validate checks that the scenario is internally consistent.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.E(errors.Op("demo.Validate"), errors.KindInvalid, "scenario name is required")
	}
	if len(s.Servers) == 0 {
		return errors.E(errors.Op("demo.Validate"), errors.KindInvalid, "scenario has no servers")
	}
	known := make(map[irc.Server]bool)
	for _, srv := range s.Servers {
		known[irc.Server(srv.Name)] = true
	}
	for i, step := range s.Steps {
		if !known[step.Target.Server] {
			return errors.E(errors.Op("demo.Validate"), errors.KindInvalid,
				fmt.Sprintf("step %d targets unknown server %s", i, step.Target.Server))
		}
	}
	return nil
}

// Step builder functions for fluent scenario construction

// Message creates a regular channel or query message step.
func Message(target irc.Buffer, nick irc.Nick, text string) Step {
	return Step{Target: target, Nick: nick, Text: text, Kind: history.KindMessage}
}

// Action creates a "/me" action step.
func Action(target irc.Buffer, nick irc.Nick, text string) Step {
	return Step{Target: target, Nick: nick, Text: text, Kind: history.KindAction}
}

// Notice creates a notice step, usually targeted at a server buffer.
func Notice(target irc.Buffer, nick irc.Nick, text string) Step {
	return Step{Target: target, Nick: nick, Text: text, Kind: history.KindNotice}
}

// Join creates a join announcement step.
func Join(target irc.Buffer, nick irc.Nick) Step {
	return Step{Target: target, Nick: nick, Kind: history.KindJoin}
}

// Part creates a part announcement step.
func Part(target irc.Buffer, nick irc.Nick) Step {
	return Step{Target: target, Nick: nick, Kind: history.KindPart}
}

// Topic creates a topic change step.
func Topic(target irc.Buffer, nick irc.Nick, topic string) Step {
	return Step{Target: target, Nick: nick, Text: topic, Kind: history.KindTopic}
}
