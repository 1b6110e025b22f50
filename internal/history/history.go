// Package history stores per-buffer message records and per-buffer send
// history, with JSON persistence under the config directory. Disk operations
// are returned as tea.Cmd values so the UI loop never blocks; their results
// re-enter the program as history.Message values.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/parley-irc/parley/internal/errors"
	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/logger"
)

// Kind classifies a record for rendering.
type Kind int

const (
	KindMessage Kind = iota // regular PRIVMSG
	KindAction              // /me action
	KindNotice
	KindJoin
	KindPart
	KindQuit
	KindTopic
	KindError
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindNotice:
		return "notice"
	case KindJoin:
		return "join"
	case KindPart:
		return "part"
	case KindQuit:
		return "quit"
	case KindTopic:
		return "topic"
	case KindError:
		return "error"
	default:
		return "message"
	}
}

// Record is one stored message in a buffer's history.
type Record struct {
	ID        uuid.UUID `json:"id"`
	At        time.Time `json:"at"`
	Nick      irc.Nick  `json:"nick,omitempty"`
	Text      string    `json:"text"`
	Kind      Kind      `json:"kind"`
	Highlight bool      `json:"highlight,omitempty"` // mentions our nick
}

// Message is the union of results produced by deferred history operations.
// The Buffer core surfaces the producing tasks through its History event; the
// root model schedules them and routes the results back via Manager.Update.
type Message interface {
	historyMessage()
}

// OlderLoaded carries records read from disk for one buffer.
type OlderLoaded struct {
	Target  irc.Buffer
	Records []Record
	Err     error
}

func (OlderLoaded) historyMessage() {}

// Flushed reports the result of writing one buffer's records to disk.
type Flushed struct {
	Target irc.Buffer
	Err    error
}

func (Flushed) historyMessage() {}

// loadLimit bounds how many persisted records are pulled in per load.
const loadLimit = 500

// Manager owns all buffer histories for the lifetime of the UI session.
// It is borrowed mutably for the duration of a single update call and is
// never accessed concurrently; the deferred commands it returns only touch
// the filesystem, not the Manager itself.
type Manager struct {
	dir         string
	records     map[string][]Record
	inputs      map[string]*sendHistory
	loadedOlder map[string]bool
	logs        []LogRecord
}

// NewManager creates a manager persisting under dir. An empty dir disables
// persistence (used by tests and by LoadOlder on broken home dirs).
func NewManager(dir string) *Manager {
	return &Manager{
		dir:         dir,
		records:     make(map[string][]Record),
		inputs:      make(map[string]*sendHistory),
		loadedOlder: make(map[string]bool),
	}
}

// Record appends a record to a buffer's history, filling ID and timestamp if
// the caller left them zero.
func (m *Manager) Record(target irc.Buffer, r Record) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.At.IsZero() {
		r.At = time.Now()
	}
	key := target.Key()
	m.records[key] = append(m.records[key], r)
}

// Records returns the in-memory history for a buffer, oldest first.
func (m *Manager) Records(target irc.Buffer) []Record {
	return m.records[target.Key()]
}

// Len returns the number of in-memory records for a buffer.
func (m *Manager) Len(target irc.Buffer) int {
	return len(m.records[target.Key()])
}

// RecordInput appends sent text to the buffer's send history and resets the
// recall cursor.
func (m *Manager) RecordInput(target irc.Buffer, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	key := target.Key()
	h, ok := m.inputs[key]
	if !ok {
		h = &sendHistory{}
		m.inputs[key] = h
	}
	h.record(text)
}

// InputBefore recalls the previous sent line for up-arrow navigation.
func (m *Manager) InputBefore(target irc.Buffer) (string, bool) {
	if h, ok := m.inputs[target.Key()]; ok {
		return h.before()
	}
	return "", false
}

// InputAfter recalls the next sent line for down-arrow navigation. Returns
// ok=false with an empty string when navigation passes the newest entry.
func (m *Manager) InputAfter(target irc.Buffer) (string, bool) {
	if h, ok := m.inputs[target.Key()]; ok {
		return h.after()
	}
	return "", false
}

// LoadOlder returns a command that reads the persisted history for a buffer.
// It returns nil once the persisted records were already pulled in, so
// repeated scroll-to-top gestures don't re-read the file.
func (m *Manager) LoadOlder(target irc.Buffer) tea.Cmd {
	if m.dir == "" || m.loadedOlder[target.Key()] {
		return nil
	}
	m.loadedOlder[target.Key()] = true

	path := m.path(target)
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return OlderLoaded{Target: target}
		}
		if err != nil {
			return OlderLoaded{Target: target, Err: errors.HistoryLoadFailed(path, err)}
		}

		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return OlderLoaded{Target: target, Err: errors.HistoryLoadFailed(path, err)}
		}
		if len(records) > loadLimit {
			records = records[len(records)-loadLimit:]
		}
		return OlderLoaded{Target: target, Records: records}
	}
}

// Flush returns a command that writes a buffer's in-memory records to disk.
// The records slice is snapshotted before the command runs.
func (m *Manager) Flush(target irc.Buffer) tea.Cmd {
	if m.dir == "" {
		return nil
	}

	records := m.records[target.Key()]
	snapshot := make([]Record, len(records))
	copy(snapshot, records)

	dir := m.dir
	path := m.path(target)
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Flushed{Target: target, Err: errors.HistoryFlushFailed(path, err)}
		}
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return Flushed{Target: target, Err: errors.HistoryFlushFailed(path, err)}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return Flushed{Target: target, Err: errors.HistoryFlushFailed(path, err)}
		}
		return Flushed{Target: target}
	}
}

// FlushAll returns one command per buffer with in-memory records, for
// shutdown.
func (m *Manager) FlushAll(targets []irc.Buffer) tea.Cmd {
	var cmds []tea.Cmd
	for _, target := range targets {
		if cmd := m.Flush(target); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update applies the result of a completed history operation.
func (m *Manager) Update(msg Message) {
	switch msg := msg.(type) {
	case OlderLoaded:
		if msg.Err != nil {
			logger.Warn("History: load failed for %s: %v", msg.Target.Key(), msg.Err)
			m.RecordLog(LogRecord{Level: "WARN", Text: fmt.Sprintf("history load failed for %s: %v", msg.Target.Key(), msg.Err)})
			return
		}
		if len(msg.Records) == 0 {
			return
		}
		key := msg.Target.Key()
		m.records[key] = append(msg.Records, m.records[key]...)
		logger.Debug("History: loaded %d older records for %s", len(msg.Records), key)
	case Flushed:
		if msg.Err != nil {
			logger.Warn("History: flush failed for %s: %v", msg.Target.Key(), msg.Err)
			m.RecordLog(LogRecord{Level: "WARN", Text: fmt.Sprintf("history flush failed for %s: %v", msg.Target.Key(), msg.Err)})
		}
	case LogsLoaded:
		if msg.Err != nil {
			logger.Warn("History: log load failed: %v", msg.Err)
		}
		if len(msg.Records) > 0 {
			// A load carries the whole file, so it replaces the store;
			// records added with RecordLog since then are in the file too.
			m.logs = msg.Records
		}
	}
}

// path returns the persistence file for a buffer. Keys contain characters
// that are unsafe in filenames (#, /), so they are replaced.
func (m *Manager) path(target irc.Buffer) string {
	name := strings.NewReplacer("/", "_", "#", "h.", ":", ".").Replace(target.Key())
	return filepath.Join(m.dir, name+".json")
}

// sendHistory is the per-buffer ring of sent lines with a recall cursor.
// pos == len(items) means "not navigating" (the blank line after the newest).
type sendHistory struct {
	items []string
	pos   int
}

const maxSendHistory = 100

func (h *sendHistory) record(text string) {
	h.items = append(h.items, text)
	if len(h.items) > maxSendHistory {
		h.items = h.items[len(h.items)-maxSendHistory:]
	}
	h.pos = len(h.items)
}

func (h *sendHistory) before() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.items[h.pos], true
}

func (h *sendHistory) after() (string, bool) {
	if h.pos >= len(h.items) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.items) {
		return "", false
	}
	return h.items[h.pos], true
}
