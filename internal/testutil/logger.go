package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogger captures structured logs for assertion in tests.
type TestLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
	Logger  *slog.Logger
}

// LogEntry is one captured log record with its attributes flattened,
// including those attached through Logger.With.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// NewTestLogger creates a logger that captures every entry at debug and above.
func NewTestLogger(t *testing.T) *TestLogger {
	t.Helper()
	tl := &TestLogger{}
	tl.Logger = slog.New(&captureHandler{sink: tl})
	return tl
}

// captureHandler records entries into its sink.
type captureHandler struct {
	sink  *TestLogger
	attrs []slog.Attr
	group string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any, len(h.attrs)+r.NumAttrs()),
	}
	for _, a := range h.attrs {
		entry.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.Attrs[h.key(a.Key)] = a.Value.Any()
		return true
	})

	h.sink.mu.Lock()
	h.sink.entries = append(h.sink.entries, entry)
	h.sink.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		merged = append(merged, slog.Attr{Key: h.key(a.Key), Value: a.Value})
	}
	return &captureHandler{sink: h.sink, attrs: merged, group: h.group}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{sink: h.sink, attrs: h.attrs, group: h.key(name)}
}

func (h *captureHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

// snapshot returns a copy of all captured log entries.
func (l *TestLogger) snapshot() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesOfLevel returns entries at a specific level.
func (l *TestLogger) EntriesOfLevel(level slog.Level) []LogEntry {
	var out []LogEntry
	for _, e := range l.snapshot() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// containing returns entries whose message contains substring.
func (l *TestLogger) containing(substring string) []LogEntry {
	var out []LogEntry
	for _, e := range l.snapshot() {
		if strings.Contains(e.Message, substring) {
			out = append(out, e)
		}
	}
	return out
}

// AssertContains asserts that at least one entry's message contains msg.
func (l *TestLogger) AssertContains(t *testing.T, msg string) {
	t.Helper()
	if len(l.containing(msg)) == 0 {
		t.Errorf("Expected log to contain message %q, got %v", msg, l.messages())
	}
}

// AssertNotContains asserts that no entry's message contains msg.
func (l *TestLogger) AssertNotContains(t *testing.T, msg string) {
	t.Helper()
	if n := len(l.containing(msg)); n > 0 {
		t.Errorf("Expected log to not contain message %q, but found %d entries", msg, n)
	}
}

// AssertNoErrors asserts that there are no ERROR level entries.
func (l *TestLogger) AssertNoErrors(t *testing.T) {
	t.Helper()
	if errs := l.EntriesOfLevel(slog.LevelError); len(errs) > 0 {
		t.Errorf("Expected no errors, got %d: %+v", len(errs), errs)
	}
}

// AssertHasError asserts that there is at least one ERROR level entry.
func (l *TestLogger) AssertHasError(t *testing.T) {
	t.Helper()
	if len(l.EntriesOfLevel(slog.LevelError)) == 0 {
		t.Errorf("Expected at least one error log entry, got %v", l.messages())
	}
}

// AssertAttrValue asserts that some entry carries key=value.
func (l *TestLogger) AssertAttrValue(t *testing.T, key string, value any) {
	t.Helper()
	for _, e := range l.snapshot() {
		if v, ok := e.Attrs[key]; ok && v == value {
			return
		}
	}
	t.Errorf("Expected at least one log entry with %s=%v", key, value)
}

func (l *TestLogger) messages() []string {
	entries := l.snapshot()
	msgs := make([]string, len(entries))
	for i, e := range entries {
		msgs[i] = e.Level.String() + " " + e.Message
	}
	return msgs
}
