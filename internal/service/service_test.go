package service

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dpshade/pocket-debrief/internal/config"
	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/kv"
	"github.com/dpshade/pocket-debrief/internal/models"
	"gopkg.in/yaml.v3"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewServiceWithNamespace(kv.NewMemoryNamespace(), config.Default(""))

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	return svc
}

func TestNewServiceUsesDataDir(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(config.Default(dir))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	if _, err := svc.SubmitLog("Launch", "On time", "Retro"); err != nil {
		t.Fatalf("SubmitLog failed: %v", err)
	}

	reopened, err := NewService(config.Default(dir))
	if err != nil {
		t.Fatalf("Failed to reopen service: %v", err)
	}
	if got := reopened.ListLogs(); len(got) != 1 || got[0].Event != "Launch" {
		t.Errorf("Expected the entry to survive a restart, got %#v", got)
	}
}

func TestNewServiceRequiresDataDir(t *testing.T) {
	if _, err := NewService(config.Default("")); err == nil {
		t.Error("Expected an error without a data directory")
	}
}

func TestSubmitLogPrependsTrimmedEntry(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.SubmitLog("Kickoff", "Scope agreed", "Draft plan")
	if err != nil {
		t.Fatalf("SubmitLog failed: %v", err)
	}
	second, err := svc.SubmitLog("  Demo  ", "\tPositive feedback\n", " Fix bugs ")
	if err != nil {
		t.Fatalf("SubmitLog failed: %v", err)
	}

	if second.Event != "Demo" || second.Win != "Positive feedback" || second.Next != "Fix bugs" {
		t.Errorf("Expected trimmed fields, got %#v", second)
	}
	if second.Timestamp != "2024-05-01T09:02:00.000Z" {
		t.Errorf("Unexpected timestamp %q", second.Timestamp)
	}

	logs := svc.ListLogs()
	want := []models.LogEntry{second, first}
	if !reflect.DeepEqual(logs, want) {
		t.Errorf("Expected newest first:\nwant %#v\ngot  %#v", want, logs)
	}
}

func TestSubmitLogTimestampNotBeforeSubmission(t *testing.T) {
	svc := NewServiceWithNamespace(kv.NewMemoryNamespace(), config.Default(""))

	for i := 0; i < 200; i++ {
		submitted := time.Now()
		entry, err := svc.SubmitLog("Standup", "Unblocked", "Ship")
		if err != nil {
			t.Fatalf("SubmitLog failed: %v", err)
		}
		created, ok := entry.CreatedAt()
		if !ok {
			t.Fatalf("Unparseable timestamp %q", entry.Timestamp)
		}
		if created.Before(submitted) {
			t.Fatalf("Entry stamped %v before submission at %v", created, submitted)
		}
	}
}

func TestSubmitLogRejectsBlankFields(t *testing.T) {
	tests := []struct {
		name             string
		event, win, next string
	}{
		{"missing event", "", "win", "next"},
		{"missing win", "event", "", "next"},
		{"whitespace next", "event", "win", "   "},
		{"all empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.SubmitLog(tt.event, tt.win, tt.next)
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !errors.IsValidation(err) {
				t.Errorf("Expected validation category, got %v", err)
			}
			if !strings.Contains(err.Error(), "Please fill in all fields.") {
				t.Errorf("Unexpected message %q", err.Error())
			}
			if got := svc.ListLogs(); len(got) != 0 {
				t.Errorf("Expected nothing stored, got %#v", got)
			}
		})
	}
}

func TestClearLogs(t *testing.T) {
	svc := newTestService(t)
	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitLog("event", "win", "next"); err != nil {
			t.Fatalf("SubmitLog failed: %v", err)
		}
	}

	if err := svc.ClearLogs(); err != nil {
		t.Fatalf("ClearLogs failed: %v", err)
	}
	if got := svc.ListLogs(); len(got) != 0 {
		t.Errorf("Expected empty log, got %d entries", len(got))
	}

	// clearing twice is harmless
	if err := svc.ClearLogs(); err != nil {
		t.Errorf("Second ClearLogs failed: %v", err)
	}
}

func TestSearchLogsKeepsLogOrder(t *testing.T) {
	svc := newTestService(t)
	a, _ := svc.SubmitLog("Deploy api", "zero downtime", "monitor")
	_, _ = svc.SubmitLog("Retro", "team morale", "plan")
	c, _ := svc.SubmitLog("Deploy web", "fast", "cache")

	got := svc.SearchLogs("eploy")
	want := []models.LogEntry{c, a}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search mismatch:\nwant %#v\ngot  %#v", want, got)
	}

	if got := svc.SearchLogs("qqqq"); len(got) != 0 {
		t.Errorf("Expected no matches, got %#v", got)
	}
	if got := svc.SearchLogs("  "); len(got) != 3 {
		t.Errorf("Expected blank query to return everything, got %d", len(got))
	}
}

func TestTemplateLifecycle(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.AddTemplate("Daily Standup", "What did I do today?"); err != nil {
		t.Fatalf("AddTemplate failed: %v", err)
	}
	if _, err := svc.AddTemplate(" Retro ", " What went well? "); err != nil {
		t.Fatalf("AddTemplate failed: %v", err)
	}
	if _, err := svc.AddTemplate("Daily Standup", "duplicate names are fine"); err != nil {
		t.Fatalf("AddTemplate failed: %v", err)
	}

	templates := svc.ListTemplates()
	if len(templates) != 3 {
		t.Fatalf("Expected 3 templates, got %d", len(templates))
	}
	if templates[1].Name != "Retro" || templates[1].Content != "What went well?" {
		t.Errorf("Expected trimmed template, got %#v", templates[1])
	}

	tmpl, ok := svc.GetTemplate(0)
	if !ok || tmpl.Content != "What did I do today?" {
		t.Errorf("Unexpected template at 0: %#v (%v)", tmpl, ok)
	}
	if _, ok := svc.GetTemplate(3); ok {
		t.Error("Expected out-of-range lookup to fail")
	}

	if err := svc.DeleteTemplate(1); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	templates = svc.ListTemplates()
	if len(templates) != 2 || templates[0].Name != "Daily Standup" || templates[1].Content != "duplicate names are fine" {
		t.Errorf("Unexpected templates after delete: %#v", templates)
	}

	if err := svc.DeleteTemplate(7); err != nil {
		t.Errorf("Expected out-of-range delete to be ignored, got %v", err)
	}
	if got := svc.ListTemplates(); len(got) != 2 {
		t.Errorf("Expected 2 templates, got %d", len(got))
	}
}

func TestAddTemplateRejectsBlankFields(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddTemplate("Name", "  "); !errors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if _, err := svc.AddTemplate("", "content"); !errors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if got := svc.ListTemplates(); len(got) != 0 {
		t.Errorf("Expected no templates, got %#v", got)
	}
}

func TestExport(t *testing.T) {
	svc := newTestService(t)
	entry, _ := svc.SubmitLog("Ship", "Done", "Rest")
	tmpl, _ := svc.AddTemplate("Daily Standup", "What did I do today?")

	want := ExportDocument{
		Logs:      []models.LogEntry{entry},
		Templates: []models.Template{tmpl},
	}

	data, err := svc.Export(FormatJSON)
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	var fromJSON ExportDocument
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("Invalid JSON export: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, want) {
		t.Errorf("JSON export mismatch:\nwant %#v\ngot  %#v", want, fromJSON)
	}

	data, err = svc.Export("YAML")
	if err != nil {
		t.Fatalf("YAML export failed: %v", err)
	}
	var fromYAML ExportDocument
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("Invalid YAML export: %v", err)
	}
	if !reflect.DeepEqual(fromYAML, want) {
		t.Errorf("YAML export mismatch:\nwant %#v\ngot  %#v", want, fromYAML)
	}

	if _, err := svc.Export("toml"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestExportEmptyStores(t *testing.T) {
	svc := newTestService(t)
	data, err := svc.Export(FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), `"logs": []`) || !strings.Contains(string(data), `"templates": []`) {
		t.Errorf("Expected empty arrays, got %s", data)
	}
}
