package view

import (
	"testing"

	"github.com/dpshade/pocket-debrief/internal/models"
)

func TestQuickSelectNoTemplates(t *testing.T) {
	q := NewQuickSelect()

	notice := q.Activate(nil)
	if notice != NoTemplatesNotice {
		t.Errorf("Expected notice %q, got %q", NoTemplatesNotice, notice)
	}
	if q.IsOpen() {
		t.Error("Expected dropdown to stay closed")
	}
	if len(q.Items()) != 0 {
		t.Errorf("Expected no list, got %#v", q.Items())
	}
}

func TestQuickSelectDailyStandup(t *testing.T) {
	templates := []models.Template{
		{Name: "Retro", Content: "What went well?"},
		{Name: "Daily Standup", Content: "What did I do today?"},
	}
	q := NewQuickSelect()

	if notice := q.Activate(templates); notice != "" {
		t.Fatalf("Unexpected notice %q", notice)
	}
	if !q.IsOpen() || len(q.Items()) != 2 {
		t.Fatalf("Expected open list of 2, got open=%v items=%d", q.IsOpen(), len(q.Items()))
	}

	q.MoveDown()
	content, ok := q.SelectCurrent()
	if !ok || content != "What did I do today?" {
		t.Errorf("Expected Daily Standup content, got %q (%v)", content, ok)
	}
	if q.IsOpen() {
		t.Error("Expected selection to close the list")
	}
}

func TestQuickSelectToggleAndDismiss(t *testing.T) {
	templates := []models.Template{{Name: "Retro", Content: "What went well?"}}
	q := NewQuickSelect()

	q.Activate(templates)
	if notice := q.Activate(templates); notice != "" || q.IsOpen() {
		t.Errorf("Expected re-activation to close silently, got open=%v notice=%q", q.IsOpen(), notice)
	}

	q.Activate(templates)
	q.Close()
	if q.IsOpen() || len(q.Items()) != 0 {
		t.Error("Expected outside interaction to close the list")
	}

	if _, ok := q.Select(0); ok {
		t.Error("Expected selection on a closed list to fail")
	}
}

func TestQuickSelectCursorBounds(t *testing.T) {
	templates := []models.Template{
		{Name: "A", Content: "a"},
		{Name: "B", Content: "b"},
	}
	q := NewQuickSelect()
	q.Activate(templates)

	q.MoveUp()
	if q.Cursor() != 0 {
		t.Errorf("Expected cursor 0, got %d", q.Cursor())
	}
	q.MoveDown()
	q.MoveDown()
	if q.Cursor() != 1 {
		t.Errorf("Expected cursor 1, got %d", q.Cursor())
	}
	if _, ok := q.Select(5); ok {
		t.Error("Expected out-of-range selection to fail")
	}
	if !q.IsOpen() {
		t.Error("Expected failed selection to leave the list open")
	}

	templates[0].Content = "changed"
	if content, _ := q.Select(0); content != "a" {
		t.Errorf("Expected snapshot content %q, got %q", "a", content)
	}
}
