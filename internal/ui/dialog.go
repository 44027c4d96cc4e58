package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModal asks a yes/no question. While active it takes every key.
type ConfirmModal struct {
	question  string
	isActive  bool
	confirmed bool
	answered  bool
}

// NewConfirmModal creates an inactive confirmation dialog
func NewConfirmModal() *ConfirmModal {
	return &ConfirmModal{}
}

// Ask activates the dialog with a new question
func (c *ConfirmModal) Ask(question string) {
	c.question = question
	c.isActive = true
	c.confirmed = false
	c.answered = false
}

// Update handles y/n input
func (c *ConfirmModal) Update(msg tea.Msg) tea.Cmd {
	if !c.isActive {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("y", "Y"))):
			c.answer(true)
		case key.Matches(msg, key.NewBinding(key.WithKeys("n", "N", "esc", "q"))):
			c.answer(false)
		}
	}
	return nil
}

// Answer returns the user's choice once, after the dialog has closed
func (c *ConfirmModal) Answer() (confirmed bool, answered bool) {
	if !c.answered {
		return false, false
	}
	c.answered = false
	return c.confirmed, true
}

// IsActive reports whether the dialog is showing
func (c *ConfirmModal) IsActive() bool {
	return c.isActive
}

// View renders the dialog box
func (c *ConfirmModal) View() string {
	return StyleModal.BorderForeground(ColorWarning).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		StyleText.Bold(true).Render(c.question),
		"",
		StyleTextDim.Render("y confirm • n cancel"),
	))
}

func (c *ConfirmModal) answer(confirmed bool) {
	c.isActive = false
	c.confirmed = confirmed
	c.answered = true
}

// NoticeModal shows a blocking message until it is dismissed
type NoticeModal struct {
	message    string
	statusType string
	isActive   bool
}

// NewNoticeModal creates an inactive notice
func NewNoticeModal() *NoticeModal {
	return &NoticeModal{}
}

// Show activates the notice
func (n *NoticeModal) Show(message, statusType string) {
	n.message = message
	n.statusType = statusType
	n.isActive = true
}

// Update dismisses the notice on enter or esc
func (n *NoticeModal) Update(msg tea.Msg) tea.Cmd {
	if !n.isActive {
		return nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, key.NewBinding(key.WithKeys("enter", "esc", " "))) {
			n.isActive = false
		}
	}
	return nil
}

// IsActive reports whether the notice is showing
func (n *NoticeModal) IsActive() bool {
	return n.isActive
}

// Message returns the text being shown
func (n *NoticeModal) Message() string {
	return n.message
}

// View renders the notice box
func (n *NoticeModal) View() string {
	return StyleModal.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		CreateStatus(n.message, n.statusType),
		"",
		StyleTextDim.Render("Enter OK"),
	))
}
