// Package view turns store contents into plain view descriptions that the
// TUI paints. Nothing here touches storage or the terminal.
package view

import (
	"strings"
	"time"

	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/mattn/go-runewidth"
)

// Placeholder and notice texts
const (
	EmptyLogsMessage      = "No entries yet."
	EmptyTemplatesMessage = "No saved templates."
	NoTemplatesNotice     = "No templates available."
	EmptyFieldsMessage    = "Please fill in all fields."
)

// Section labels of an expanded entry
const (
	LabelEvent = "Event"
	LabelWin   = "Win"
	LabelNext  = "Next"
)

const ellipsis = "…"

// Options controls how entries are laid out
type Options struct {
	// TitleWidth is the number of display cells available to a title; zero
	// disables truncation.
	TitleWidth int
	DateLayout string
	Location   *time.Location
}

// LogListView describes the rendered log list
type LogListView struct {
	Placeholder  string
	ShowClearAll bool
	Entries      []LogEntryView
}

// IsEmpty reports whether the placeholder is shown instead of entries
func (v LogListView) IsEmpty() bool {
	return len(v.Entries) == 0
}

// LogEntryView is one collapsible entry
type LogEntryView struct {
	Index     int
	Title     string
	Date      string
	Timestamp string
	Expanded  bool
	Sections  []Section
}

// Section is a labelled block of the entry body, one element per line
type Section struct {
	Label string
	Lines []string
}

// RenderLogs describes entries in store order. expanded is keyed by list
// position and may be nil.
func RenderLogs(entries []models.LogEntry, expanded map[int]bool, opts Options) LogListView {
	if len(entries) == 0 {
		return LogListView{Placeholder: EmptyLogsMessage}
	}

	v := LogListView{
		ShowClearAll: true,
		Entries:      make([]LogEntryView, 0, len(entries)),
	}
	for i, entry := range entries {
		v.Entries = append(v.Entries, LogEntryView{
			Index:     i,
			Title:     Truncate(entry.Title(), opts.TitleWidth),
			Date:      FormatDate(entry, opts),
			Timestamp: entry.Timestamp,
			Expanded:  expanded[i],
			Sections: []Section{
				{Label: LabelEvent, Lines: splitLines(entry.Event)},
				{Label: LabelWin, Lines: splitLines(entry.Win)},
				{Label: LabelNext, Lines: splitLines(entry.Next)},
			},
		})
	}
	return v
}

// FormatDate renders the entry's creation date in the configured layout,
// falling back to the stored timestamp when it cannot be parsed.
func FormatDate(entry models.LogEntry, opts Options) string {
	t, ok := entry.CreatedAt()
	if !ok {
		return entry.Timestamp
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	layout := opts.DateLayout
	if layout == "" {
		layout = "Jan 2, 2006"
	}
	return t.In(loc).Format(layout)
}

// Truncate shortens s to width display cells
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
