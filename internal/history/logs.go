package history

import (
	"bufio"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// LogRecord is one application log line, rendered by the Logs buffer.
type LogRecord struct {
	At    time.Time
	Level string
	Text  string
}

// LogsLoaded carries log records parsed from the log file on disk.
type LogsLoaded struct {
	Records []LogRecord
	Err     error
}

func (LogsLoaded) historyMessage() {}

// maxLogRecords bounds the in-memory log store.
const maxLogRecords = 2000

// RecordLog appends a record to the in-memory store so it shows up without
// reopening the viewer. The next file load replaces the store.
func (m *Manager) RecordLog(r LogRecord) {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	m.logs = append(m.logs, r)
	if len(m.logs) > maxLogRecords {
		m.logs = m.logs[len(m.logs)-maxLogRecords:]
	}
}

// LogRecords returns the in-memory application log, oldest first.
func (m *Manager) LogRecords() []LogRecord {
	return m.logs
}

// LoadLogs returns a command that reads and parses the slog text file at
// path, replacing the in-memory log store when it completes. Each call
// re-reads the file so the viewer shows lines written since the last open.
func (m *Manager) LoadLogs(path string) tea.Cmd {
	if path == "" {
		return nil
	}

	return func() tea.Msg {
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return LogsLoaded{}
		}
		if err != nil {
			return LogsLoaded{Err: err}
		}
		defer f.Close()

		var records []LogRecord
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			records = append(records, parseLogLine(scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			return LogsLoaded{Records: records, Err: err}
		}
		if len(records) > maxLogRecords {
			records = records[len(records)-maxLogRecords:]
		}
		return LogsLoaded{Records: records}
	}
}

// parseLogLine pulls the time, level, and msg attributes out of one slog
// text-handler line. Lines that don't parse are kept verbatim so nothing is
// hidden from the log view.
func parseLogLine(line string) LogRecord {
	r := LogRecord{Text: line}
	for _, field := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(field, "time="):
			if at, err := time.Parse(time.RFC3339, strings.TrimPrefix(field, "time=")); err == nil {
				r.At = at
			}
		case strings.HasPrefix(field, "level="):
			r.Level = strings.TrimPrefix(field, "level=")
		}
	}
	// msg values may contain spaces; take everything after "msg=".
	if i := strings.Index(line, "msg="); i >= 0 {
		msg := line[i+len("msg="):]
		if strings.HasPrefix(msg, `"`) {
			if end := strings.LastIndex(msg[1:], `"`); end >= 0 {
				msg = msg[1 : end+1]
			}
		} else if sp := strings.IndexByte(msg, ' '); sp >= 0 {
			msg = msg[:sp]
		}
		r.Text = msg
	}
	return r
}
