package view

import "github.com/dpshade/pocket-debrief/internal/models"

// QuickSelect is the "use template" dropdown. It is either closed or open
// over a snapshot of the templates taken when it opened.
type QuickSelect struct {
	open   bool
	items  []models.Template
	cursor int
}

// NewQuickSelect creates a closed dropdown
func NewQuickSelect() *QuickSelect {
	return &QuickSelect{}
}

// Activate toggles the dropdown. Opening with no templates leaves it closed
// and returns the notice to show instead.
func (q *QuickSelect) Activate(templates []models.Template) string {
	if q.open {
		q.Close()
		return ""
	}
	if len(templates) == 0 {
		return NoTemplatesNotice
	}

	q.items = make([]models.Template, len(templates))
	copy(q.items, templates)
	q.cursor = 0
	q.open = true
	return ""
}

// IsOpen reports whether the list is showing
func (q *QuickSelect) IsOpen() bool {
	return q.open
}

// Items returns the listed templates; empty while closed
func (q *QuickSelect) Items() []models.Template {
	return q.items
}

// Cursor returns the highlighted position
func (q *QuickSelect) Cursor() int {
	return q.cursor
}

// MoveUp highlights the previous item
func (q *QuickSelect) MoveUp() {
	if q.open && q.cursor > 0 {
		q.cursor--
	}
}

// MoveDown highlights the next item
func (q *QuickSelect) MoveDown() {
	if q.open && q.cursor < len(q.items)-1 {
		q.cursor++
	}
}

// Select closes the list and returns the content of the template at index
func (q *QuickSelect) Select(index int) (string, bool) {
	if !q.open || index < 0 || index >= len(q.items) {
		return "", false
	}
	content := q.items[index].Content
	q.Close()
	return content, true
}

// SelectCurrent selects the highlighted item
func (q *QuickSelect) SelectCurrent() (string, bool) {
	return q.Select(q.cursor)
}

// Close hides the list; used for any interaction outside it
func (q *QuickSelect) Close() {
	q.open = false
	q.items = nil
	q.cursor = 0
}
