package view

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/mattn/go-runewidth"
)

func sampleEntry() models.LogEntry {
	return models.LogEntry{
		Event:     "Shipped the release candidate",
		Win:       "Checklist caught a bad migration\nRollback plan worked",
		Next:      "Write the retro",
		Timestamp: "2024-05-01T09:30:00.000Z",
	}
}

func TestRenderLogsEmpty(t *testing.T) {
	for _, entries := range [][]models.LogEntry{nil, {}} {
		v := RenderLogs(entries, nil, Options{})
		if v.Placeholder != EmptyLogsMessage {
			t.Errorf("Expected placeholder %q, got %q", EmptyLogsMessage, v.Placeholder)
		}
		if v.ShowClearAll {
			t.Error("Expected clear-all to be hidden")
		}
		if !v.IsEmpty() {
			t.Errorf("Expected no entries, got %d", len(v.Entries))
		}
	}
}

func TestRenderLogsSingleEntry(t *testing.T) {
	v := RenderLogs([]models.LogEntry{sampleEntry()}, nil, Options{Location: time.UTC})

	if v.Placeholder != "" {
		t.Errorf("Expected no placeholder, got %q", v.Placeholder)
	}
	if !v.ShowClearAll {
		t.Error("Expected clear-all to be visible")
	}
	if len(v.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(v.Entries))
	}

	e := v.Entries[0]
	if e.Expanded {
		t.Error("Expected entry to start collapsed")
	}
	if e.Title != "Shipped the release candidate" {
		t.Errorf("Unexpected title %q", e.Title)
	}
	if e.Date != "May 1, 2024" {
		t.Errorf("Unexpected date %q", e.Date)
	}
	if e.Timestamp != "2024-05-01T09:30:00.000Z" {
		t.Errorf("Unexpected timestamp %q", e.Timestamp)
	}

	wantSections := []Section{
		{Label: LabelEvent, Lines: []string{"Shipped the release candidate"}},
		{Label: LabelWin, Lines: []string{"Checklist caught a bad migration", "Rollback plan worked"}},
		{Label: LabelNext, Lines: []string{"Write the retro"}},
	}
	if !reflect.DeepEqual(e.Sections, wantSections) {
		t.Errorf("Section mismatch:\nwant %#v\ngot  %#v", wantSections, e.Sections)
	}
}

func TestRenderLogsExpandedByPosition(t *testing.T) {
	entries := []models.LogEntry{sampleEntry(), sampleEntry(), sampleEntry()}
	v := RenderLogs(entries, map[int]bool{1: true}, Options{})

	for i, e := range v.Entries {
		if e.Index != i {
			t.Errorf("Expected index %d, got %d", i, e.Index)
		}
		if e.Expanded != (i == 1) {
			t.Errorf("Entry %d: unexpected expanded state %v", i, e.Expanded)
		}
	}
}

func TestRenderLogsTitle(t *testing.T) {
	entry := sampleEntry()
	entry.Event = "Shipped the\nrelease candidate"

	v := RenderLogs([]models.LogEntry{entry}, nil, Options{})
	if got := v.Entries[0].Title; got != "Shipped the release candidate" {
		t.Errorf("Expected single-line title, got %q", got)
	}

	v = RenderLogs([]models.LogEntry{entry}, nil, Options{TitleWidth: 10})
	got := v.Entries[0].Title
	if runewidth.StringWidth(got) > 10 {
		t.Errorf("Title %q is wider than 10 cells", got)
	}
	if !strings.HasPrefix(got, "Shipped") || !strings.HasSuffix(got, ellipsis) {
		t.Errorf("Unexpected truncated title %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name      string
		timestamp string
		opts      Options
		want      string
	}{
		{"english", "2024-05-01T09:30:00.000Z", Options{DateLayout: "Jan 2, 2006", Location: time.UTC}, "May 1, 2024"},
		{"japanese", "2024-05-01T09:30:00.000Z", Options{DateLayout: "2006年1月2日", Location: time.UTC}, "2024年5月1日"},
		{"local day boundary", "2024-05-01T20:00:00.000Z", Options{DateLayout: "Jan 2, 2006", Location: jst}, "May 2, 2024"},
		{"unparseable", "yesterday-ish", Options{Location: time.UTC}, "yesterday-ish"},
		{"empty", "", Options{Location: time.UTC}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDate(models.LogEntry{Timestamp: tt.timestamp}, tt.opts)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderTemplates(t *testing.T) {
	v := RenderTemplates(nil, 0)
	if v.Placeholder != EmptyTemplatesMessage || len(v.Items) != 0 {
		t.Errorf("Expected placeholder only, got %#v", v)
	}

	templates := []models.Template{
		{Name: "Daily Standup", Content: "What did I do today?"},
		{Name: "Retro", Content: "What went well?"},
	}
	v = RenderTemplates(templates, 0)
	if v.Placeholder != "" {
		t.Errorf("Expected no placeholder, got %q", v.Placeholder)
	}
	if len(v.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(v.Items))
	}
	if v.Items[1].Index != 1 || v.Items[1].Name != "Retro" || v.Items[1].Preview != "What went well?" {
		t.Errorf("Unexpected item %#v", v.Items[1])
	}
}
