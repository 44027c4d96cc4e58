package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form field indices
const (
	eventField = iota
	winField
	nextField
	fieldCount
)

var fieldLabels = [fieldCount]string{
	eventField: "What happened? (Event)",
	winField:   "What did you learn? (Win)",
	nextField:  "What will you do next? (Next)",
}

var fieldPlaceholders = [fieldCount]string{
	eventField: "Describe the event...",
	winField:   "The lesson or positive takeaway...",
	nextField:  "Your next action...",
}

// LogForm holds the three debrief inputs. Tab cycles between them.
type LogForm struct {
	inputs  [fieldCount]textarea.Model
	focused int
	blurred bool
}

// NewLogForm creates an empty form with the event field focused
func NewLogForm() *LogForm {
	f := &LogForm{}
	for i := range f.inputs {
		ta := textarea.New()
		ta.Placeholder = fieldPlaceholders[i]
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.ShowLineNumbers = false
		ta.SetWidth(60)
		ta.SetHeight(3)
		f.inputs[i] = ta
	}
	f.inputs[eventField].Focus()
	return f
}

// Update forwards input to the focused field
func (f *LogForm) Update(msg tea.Msg) tea.Cmd {
	if f.blurred {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			f.nextField()
			return nil
		case "shift+tab":
			f.prevField()
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// Values returns the raw event, win and next text
func (f *LogForm) Values() (event, win, next string) {
	return f.inputs[eventField].Value(), f.inputs[winField].Value(), f.inputs[nextField].Value()
}

// SetValues replaces all three inputs
func (f *LogForm) SetValues(event, win, next string) {
	f.inputs[eventField].SetValue(event)
	f.inputs[winField].SetValue(win)
	f.inputs[nextField].SetValue(next)
}

// SetEvent replaces the event input, as done when a template is chosen
func (f *LogForm) SetEvent(content string) {
	f.inputs[eventField].SetValue(content)
	f.focusField(eventField)
}

// Reset clears every input and returns focus to the event field
func (f *LogForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.focusField(eventField)
}

// Focused returns the index of the focused field
func (f *LogForm) Focused() int {
	return f.focused
}

// Blur releases keyboard focus so other panes can take input
func (f *LogForm) Blur() {
	f.blurred = true
	f.inputs[f.focused].Blur()
}

// Focus gives keyboard focus back to the last focused field
func (f *LogForm) Focus() {
	f.blurred = false
	f.inputs[f.focused].Focus()
}

// IsFocused reports whether the form takes keyboard input
func (f *LogForm) IsFocused() bool {
	return !f.blurred
}

// Resize updates input widths for the window
func (f *LogForm) Resize(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	for i := range f.inputs {
		f.inputs[i].SetWidth(w)
	}
}

// View renders the labelled inputs
func (f *LogForm) View() string {
	parts := make([]string, 0, fieldCount*2)
	for i := range f.inputs {
		label := StyleFormLabel
		if !f.blurred && i == f.focused {
			label = StyleFormLabelFocused
		}
		parts = append(parts, label.Render(fieldLabels[i]), f.inputs[i].View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (f *LogForm) nextField() {
	f.focusField((f.focused + 1) % fieldCount)
}

func (f *LogForm) prevField() {
	f.focusField((f.focused + fieldCount - 1) % fieldCount)
}

func (f *LogForm) focusField(i int) {
	f.inputs[f.focused].Blur()
	f.focused = i
	f.blurred = false
	f.inputs[f.focused].Focus()
}
