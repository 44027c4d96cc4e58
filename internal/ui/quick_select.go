package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/pocket-debrief/internal/view"
)

const (
	saveButtonLabel        = "Ctrl+s Save"
	useTemplateButtonLabel = "Ctrl+t Use template ▾"
	templatesButtonLabel   = "Ctrl+o Templates"
)

// renderButtons draws the action row under the form
func (m Model) renderButtons() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		CreateButton(saveButtonLabel, true),
		CreateButton(useTemplateButtonLabel, m.quickSelect.IsOpen()),
		CreateButton(templatesButtonLabel, false),
	)
}

// renderQuickSelect draws the open dropdown aligned under its button
func (m Model) renderQuickSelect() string {
	items := m.quickSelect.Items()
	width := max(20, lipgloss.Width(CreateButton(useTemplateButtonLabel, true))-4)

	lines := make([]string, 0, len(items))
	for i, t := range items {
		name := view.Truncate(t.Title(), width)
		if i == m.quickSelect.Cursor() {
			lines = append(lines, StyleSelected.Render(name))
		} else {
			lines = append(lines, StyleUnselected.Render(name))
		}
	}

	offset := lipgloss.Width(CreateButton(saveButtonLabel, true))
	return lipgloss.NewStyle().
		MarginLeft(offset).
		Render(StyleDropdown.Render(strings.Join(lines, "\n")))
}
