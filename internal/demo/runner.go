package demo

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/history"
	"github.com/parley-irc/parley/internal/irc"
)

// defaultDelay paces steps that don't carry an explicit delay.
const defaultDelay = 1200 * time.Millisecond

// Event is one delivered line of scripted traffic. The root model treats it
// exactly like a line arriving from the network.
type Event struct {
	Target irc.Buffer
	Record history.Record
}

// Runner replays a scenario's steps as timed events. It is driven by the
// Bubble Tea loop: each delivered Event prompts the root model to schedule
// Next again, so the pacing survives suspends and redraws.
type Runner struct {
	ourNick irc.Nick
	steps   []Step
	idx     int
}

// NewRunner validates the scenario and prepares it for replay. The first
// configured server's nick is used for highlight detection.
func NewRunner(s *Scenario) (*Runner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		ourNick: irc.Nick(s.Servers[0].Nick),
		steps:   s.Steps,
	}, nil
}

// Next returns a command delivering the next step after its delay, or nil
// once the scenario is exhausted.
func (r *Runner) Next() tea.Cmd {
	if r.idx >= len(r.steps) {
		return nil
	}
	step := r.steps[r.idx]
	r.idx++

	delay := step.Delay
	if delay <= 0 {
		delay = defaultDelay
	}

	record := history.Record{
		Nick:      step.Nick,
		Text:      step.Text,
		Kind:      step.Kind,
		Highlight: r.highlights(step),
	}
	target := step.Target
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return Event{Target: target, Record: record}
	})
}

// Remaining reports how many steps have not been delivered yet.
func (r *Runner) Remaining() int {
	return len(r.steps) - r.idx
}

// highlights reports whether a step mentions our nick. Only conversational
// kinds count; joins and topics never highlight.
func (r *Runner) highlights(step Step) bool {
	if step.Kind != history.KindMessage && step.Kind != history.KindAction {
		return false
	}
	if step.Target.Kind() == irc.BufferQuery {
		return true
	}
	return strings.Contains(strings.ToLower(step.Text), r.ourNick.Lower())
}
