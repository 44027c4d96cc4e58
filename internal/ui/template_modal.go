package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/dpshade/pocket-debrief/internal/view"
)

// Focus areas of the template modal
const (
	focusTemplateList = iota
	focusTemplateName
	focusTemplateContent
)

// TemplateModal lists saved templates with a delete action and an add form
type TemplateModal struct {
	nameInput    textinput.Model
	contentInput textarea.Model
	confirm      *ConfirmModal

	templates     []models.Template
	cursor        int
	focus         int
	pendingDelete int
	isActive      bool
	width         int
	height        int

	statusMsg  string
	statusType string

	listFunc   func() []models.Template
	addFunc    func(name, content string) (models.Template, error)
	deleteFunc func(index int) error
	copyFunc   func(text string) error
}

// NewTemplateModal creates an inactive modal backed by the given operations
func NewTemplateModal(
	listFunc func() []models.Template,
	addFunc func(name, content string) (models.Template, error),
	deleteFunc func(index int) error,
	copyFunc func(text string) error,
) *TemplateModal {
	ni := textinput.New()
	ni.Placeholder = "Template name"
	ni.CharLimit = 100
	ni.Width = 50

	ci := textarea.New()
	ci.Placeholder = "Text inserted into the event field..."
	ci.CharLimit = 0
	ci.ShowLineNumbers = false
	ci.SetWidth(50)
	ci.SetHeight(4)

	return &TemplateModal{
		nameInput:    ni,
		contentInput: ci,
		confirm:      NewConfirmModal(),
		listFunc:     listFunc,
		addFunc:      addFunc,
		deleteFunc:   deleteFunc,
		copyFunc:     copyFunc,
	}
}

// Open shows the modal with a fresh template list
func (m *TemplateModal) Open() {
	m.isActive = true
	m.statusMsg = ""
	m.refresh()
	m.setFocus(focusTemplateList)
	if len(m.templates) == 0 {
		m.setFocus(focusTemplateName)
	}
}

// Close hides the modal; unsaved form input is kept
func (m *TemplateModal) Close() {
	m.isActive = false
	m.nameInput.Blur()
	m.contentInput.Blur()
}

// IsActive reports whether the modal is showing
func (m *TemplateModal) IsActive() bool {
	return m.isActive
}

// Templates returns the list as last loaded
func (m *TemplateModal) Templates() []models.Template {
	return m.templates
}

// Resize adapts the modal to the window
func (m *TemplateModal) Resize(width, height int) {
	m.width = width
	m.height = height

	w := min(70, width-12)
	if w < 20 {
		w = 20
	}
	m.nameInput.Width = w
	m.contentInput.SetWidth(w)
}

// Update handles input for the modal
func (m *TemplateModal) Update(msg tea.Msg) tea.Cmd {
	if !m.isActive {
		return nil
	}

	if m.confirm.IsActive() {
		m.confirm.Update(msg)
		if confirmed, answered := m.confirm.Answer(); answered && confirmed {
			m.deleteTemplate(m.pendingDelete)
		}
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
		m.Close()
		return nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab"))):
		m.setFocus((m.focus + 1) % 3)
		return nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab"))):
		m.setFocus((m.focus + 2) % 3)
		return nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+s"))):
		if m.focus != focusTemplateList {
			m.submit()
		}
		return nil
	}

	if m.focus == focusTemplateList {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursor < len(m.templates)-1 {
				m.cursor++
			}
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("d", "delete", "x"))):
			if m.cursor < len(m.templates) {
				m.pendingDelete = m.cursor
				m.confirm.Ask(fmt.Sprintf("Delete template '%s'?", m.templates[m.cursor].Title()))
			}
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("c"))):
			m.copyTemplate()
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a", "n"))):
			m.setFocus(focusTemplateName)
		}
		return nil
	}

	return m.updateFocusedInput(msg)
}

func (m *TemplateModal) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTemplateName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusTemplateContent:
		m.contentInput, cmd = m.contentInput.Update(msg)
	}
	return cmd
}

// submit saves the add form. A blank name or content is ignored silently.
func (m *TemplateModal) submit() {
	t, err := m.addFunc(m.nameInput.Value(), m.contentInput.Value())
	if err != nil {
		if !errors.IsValidation(err) {
			m.setStatus(err)
		}
		return
	}

	m.nameInput.Reset()
	m.contentInput.Reset()
	m.refresh()
	m.cursor = len(m.templates) - 1
	m.statusMsg = fmt.Sprintf("Saved template '%s'", t.Title())
	m.statusType = "success"
	m.setFocus(focusTemplateName)
}

func (m *TemplateModal) deleteTemplate(index int) {
	if err := m.deleteFunc(index); err != nil {
		m.setStatus(err)
		return
	}
	m.refresh()
	m.statusMsg = "Template deleted"
	m.statusType = "success"
}

func (m *TemplateModal) copyTemplate() {
	if m.cursor >= len(m.templates) {
		return
	}
	if err := m.copyFunc(m.templates[m.cursor].Content); err != nil {
		m.setStatus(err)
		return
	}
	m.statusMsg = "Copied to clipboard!"
	m.statusType = "success"
}

func (m *TemplateModal) setStatus(err error) {
	handler := errors.NewTUIErrorHandler(false)
	handler.HandleError(err)
	m.statusMsg = handler.FormatError(err)
	m.statusType = handler.StatusType(err)
}

func (m *TemplateModal) refresh() {
	m.templates = m.listFunc()
	if m.cursor >= len(m.templates) {
		m.cursor = max(0, len(m.templates)-1)
	}
}

func (m *TemplateModal) setFocus(focus int) {
	m.focus = focus
	m.nameInput.Blur()
	m.contentInput.Blur()
	switch focus {
	case focusTemplateName:
		m.nameInput.Focus()
	case focusTemplateContent:
		m.contentInput.Focus()
	}
}

// View renders the modal
func (m *TemplateModal) View() string {
	if m.confirm.IsActive() {
		return m.confirm.View()
	}

	var b strings.Builder
	b.WriteString(CreateMainHeader("Manage Templates"))
	b.WriteString("\n\n")

	listView := view.RenderTemplates(m.templates, min(50, max(10, m.width-20)))
	if listView.Placeholder != "" {
		b.WriteString(StylePlaceholder.Render(listView.Placeholder))
		b.WriteString("\n")
	}
	for _, item := range listView.Items {
		style := StyleUnselected
		prefix := "  "
		if item.Index == m.cursor {
			prefix = "▶ "
			if m.focus == focusTemplateList {
				style = StyleFocused
			}
		}
		b.WriteString(style.Render(prefix + item.Name))
		b.WriteString("\n")
		if item.Preview != "" {
			b.WriteString(StyleFormHelp.Render("    " + item.Preview))
			b.WriteString("\n")
		}
	}

	nameLabel, contentLabel := StyleFormLabel, StyleFormLabel
	switch m.focus {
	case focusTemplateName:
		nameLabel = StyleFormLabelFocused
	case focusTemplateContent:
		contentLabel = StyleFormLabelFocused
	}

	b.WriteString("\n")
	b.WriteString(StyleSubtitle.Render("Add template"))
	b.WriteString("\n")
	b.WriteString(nameLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	b.WriteString(contentLabel.Render("Content"))
	b.WriteString("\n")
	b.WriteString(m.contentInput.View())
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString(CreateStatus(m.statusMsg, m.statusType))
		b.WriteString("\n")
	}

	var help string
	if m.focus == focusTemplateList {
		help = "↑/↓ move • d delete • c copy • a add • Tab form • Esc close"
	} else {
		help = "Ctrl+s save • Tab next field • Esc close"
	}
	b.WriteString(StyleTextDim.Render(help))

	return StyleModal.Render(b.String())
}
