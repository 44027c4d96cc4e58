package models

import (
	"strings"
	"time"
)

// TimestampLayout is the persisted ISO-8601 form: millisecond precision,
// always UTC with a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// LogEntry is one debrief: what happened, what was learned, what comes next.
// Entries are immutable once stored.
type LogEntry struct {
	Event     string `json:"event" yaml:"event"`
	Win       string `json:"win" yaml:"win"`
	Next      string `json:"next" yaml:"next"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// NewLogEntry builds an entry stamped with the given creation time.
// Field values are stored exactly as passed; trimming is the caller's job.
func NewLogEntry(event, win, next string, createdAt time.Time) LogEntry {
	return LogEntry{
		Event:     event,
		Win:       win,
		Next:      next,
		Timestamp: FormatTimestamp(createdAt),
	}
}

// FormatTimestamp renders t in the persisted timestamp format. Sub-millisecond
// remainders round up so the stored time never precedes t.
func FormatTimestamp(t time.Time) string {
	if ms := t.Truncate(time.Millisecond); ms.Before(t) {
		t = ms.Add(time.Millisecond)
	}
	return t.UTC().Format(TimestampLayout)
}

// CreatedAt parses the entry timestamp. The second return value is false when
// the persisted value is not a valid ISO-8601 time.
func (e LogEntry) CreatedAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Title satisfies the list.Item interface
func (e LogEntry) Title() string {
	return cleanString(e.Event)
}

// Description satisfies the list.Item interface
func (e LogEntry) Description() string {
	if t, ok := e.CreatedAt(); ok {
		return t.Local().Format("2006-01-02 15:04")
	}
	return e.Timestamp
}

// FilterValue returns the value used for filtering in lists
func (e LogEntry) FilterValue() string {
	return cleanString(strings.Join([]string{e.Event, e.Win, e.Next}, " "))
}

// cleanString flattens s onto a single line so it can't break list rendering
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(' ')
		case r >= 32 && r != 127:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
