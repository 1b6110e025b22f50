package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parley-irc/parley/internal/irc"
)

func TestParseLogLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantLevel string
		wantText  string
	}{
		{
			name:      "slog text line",
			line:      `time=2026-08-29T10:00:00Z level=INFO msg="Logger initialized" path=/tmp/x.log`,
			wantLevel: "INFO",
			wantText:  "Logger initialized",
		},
		{
			name:      "unquoted msg",
			line:      `time=2026-08-29T10:00:00Z level=DEBUG msg=ping extra=1`,
			wantLevel: "DEBUG",
			wantText:  "ping",
		},
		{
			name:     "unparseable line kept verbatim",
			line:     "panic: something broke",
			wantText: "panic: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseLogLine(tt.line)
			if r.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", r.Level, tt.wantLevel)
			}
			if r.Text != tt.wantText {
				t.Errorf("text = %q, want %q", r.Text, tt.wantText)
			}
		})
	}
}

func TestRecordLogBounded(t *testing.T) {
	m := NewManager("")
	for i := 0; i < maxLogRecords+10; i++ {
		m.RecordLog(LogRecord{Text: "line"})
	}
	if len(m.LogRecords()) != maxLogRecords {
		t.Errorf("log store = %d records, want %d", len(m.LogRecords()), maxLogRecords)
	}
}

func TestLoadLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	content := `time=2026-08-29T10:00:00Z level=INFO msg="first"` + "\n" +
		`time=2026-08-29T10:00:01Z level=WARN msg="second"` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager("")
	cmd := m.LoadLogs(path)
	if cmd == nil {
		t.Fatal("LoadLogs should return a command")
	}

	msg, ok := cmd().(LogsLoaded)
	if !ok {
		t.Fatalf("expected LogsLoaded, got %T", cmd())
	}
	if msg.Err != nil {
		t.Fatalf("load error: %v", msg.Err)
	}
	if len(msg.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(msg.Records))
	}

	m.Update(msg)
	if len(m.LogRecords()) != 2 {
		t.Errorf("manager should hold loaded records, got %d", len(m.LogRecords()))
	}
}

func TestLoadLogsPicksUpNewLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte(`time=2026-08-29T10:00:00Z level=INFO msg="first"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager("")
	m.Update(m.LoadLogs(path)().(LogsLoaded))
	if len(m.LogRecords()) != 1 {
		t.Fatalf("first load = %d records, want 1", len(m.LogRecords()))
	}

	// Lines written after the first load show up on the next one, without
	// duplicating what was already there.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(`time=2026-08-29T10:00:01Z level=WARN msg="second"` + "\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m.Update(m.LoadLogs(path)().(LogsLoaded))
	records := m.LogRecords()
	if len(records) != 2 {
		t.Fatalf("second load = %d records, want 2", len(records))
	}
	if records[1].Text != "second" {
		t.Errorf("latest record = %q, want %q", records[1].Text, "second")
	}
}

func TestHistoryFailuresSurfaceInLog(t *testing.T) {
	m := NewManager("")
	m.Update(Flushed{Target: irc.ChannelBuffer("libera", "#go"), Err: os.ErrPermission})

	records := m.LogRecords()
	if len(records) != 1 {
		t.Fatalf("log store = %d records, want 1", len(records))
	}
	if records[0].Level != "WARN" {
		t.Errorf("level = %q, want WARN", records[0].Level)
	}
}

func TestLoadLogsMissingFile(t *testing.T) {
	m := NewManager("")
	msg, ok := m.LoadLogs(filepath.Join(t.TempDir(), "missing.log"))().(LogsLoaded)
	if !ok {
		t.Fatal("expected LogsLoaded")
	}
	if msg.Err != nil || len(msg.Records) != 0 {
		t.Errorf("missing file should yield empty result, got %+v", msg)
	}
}
