package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/pocket-debrief/internal/clipboard"
	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/dpshade/pocket-debrief/internal/renderer"
	"github.com/dpshade/pocket-debrief/internal/service"
	"github.com/dpshade/pocket-debrief/internal/view"
)

// KeyMap defines all key bindings
type KeyMap struct {
	Submit      key.Binding
	UseTemplate key.Binding
	Templates   key.Binding
	ClearAll    key.Binding
	NextPane    key.Binding
	PrevPane    key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Copy        key.Binding
	Filter      key.Binding
	Back        key.Binding
	ExpandHelp  key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.UseTemplate, k.Templates, k.NextPane, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.UseTemplate, k.Templates, k.ClearAll},
		{k.NextPane, k.PrevPane, k.Up, k.Down},
		{k.Toggle, k.Copy, k.Filter, k.Back},
		{k.ExpandHelp, k.Quit},
	}
}

var keys = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "save entry"),
	),
	UseTemplate: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("Ctrl+t", "use template"),
	),
	Templates: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("Ctrl+o", "manage templates"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("Ctrl+k", "clear all"),
	),
	NextPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	PrevPane: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("Shift+Tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("Enter", "expand/collapse"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back to form"),
	),
	ExpandHelp: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("Ctrl+g", "expand help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	),
}

// tickMsg is sent to count down the status message
type tickMsg time.Time

// clearStatusCmd returns a command that ticks the status timeout
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model represents the TUI application state
type Model struct {
	service *service.Service

	// UI components
	form          *LogForm
	quickSelect   *view.QuickSelect
	templateModal *TemplateModal
	confirm       *ConfirmModal
	notice        *NoticeModal
	filterInput   textinput.Model
	viewport      viewport.Model
	help          help.Model
	keys          KeyMap

	// Data for the current render cycle
	logs     []models.LogEntry
	total    int
	expanded map[int]bool
	cursor   int

	listFocused bool
	filtering   bool

	// Rendering
	renderer        *renderer.Renderer
	glamourRenderer *glamour.TermRenderer
	glamourStyle    string
	dateOpts        view.Options

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg        string
	statusType       string
	statusTimeout    int
	showExpandedHelp bool

	copyFunc func(string) error
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	cfg := svc.Config()
	initializeColors(cfg.Theme)

	glamourStyle := cfg.GlamourStyle()
	gr, err := renderer.NewMarkdownRenderer(glamourStyle, 60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	fi := textinput.New()
	fi.Placeholder = "Search entries"
	fi.Prompt = "/ "
	fi.CharLimit = 100

	vp := viewport.New(80, 10)
	vp.Style = lipgloss.NewStyle()

	dateOpts := view.Options{DateLayout: cfg.DateLayout()}

	m := &Model{
		service:         svc,
		form:            NewLogForm(),
		quickSelect:     view.NewQuickSelect(),
		confirm:         NewConfirmModal(),
		notice:          NewNoticeModal(),
		filterInput:     fi,
		viewport:        vp,
		help:            help.New(),
		keys:            keys,
		expanded:        make(map[int]bool),
		renderer:        renderer.NewRenderer(dateOpts),
		glamourRenderer: gr,
		glamourStyle:    glamourStyle,
		dateOpts:        dateOpts,
		copyFunc:        clipboard.Copy,
	}
	m.templateModal = NewTemplateModal(
		svc.ListTemplates,
		svc.AddTemplate,
		svc.DeleteTemplate,
		func(text string) error { return m.copyFunc(text) },
	)

	m.reload()
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward cursor blinks and the like to whichever input has focus
	var cmd tea.Cmd
	switch {
	case m.templateModal.IsActive():
		cmd = m.templateModal.Update(msg)
	case m.filtering:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case !m.listFocused:
		cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal dialogs take every key while showing
	if m.notice.IsActive() {
		return m, m.notice.Update(msg)
	}

	if m.confirm.IsActive() {
		m.confirm.Update(msg)
		if confirmed, answered := m.confirm.Answer(); answered && confirmed {
			return m, m.clearAll()
		}
		return m, nil
	}

	if m.templateModal.IsActive() {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, m.templateModal.Update(msg)
	}

	if m.quickSelect.IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Up), msg.String() == "shift+tab":
			m.quickSelect.MoveUp()
			return m, nil
		case key.Matches(msg, m.keys.Down), msg.String() == "tab":
			m.quickSelect.MoveDown()
			return m, nil
		case msg.String() == "enter":
			if content, ok := m.quickSelect.SelectCurrent(); ok {
				m.form.SetEvent(content)
				m.listFocused = false
			}
			return m, nil
		case key.Matches(msg, m.keys.UseTemplate), key.Matches(msg, m.keys.Back):
			m.quickSelect.Close()
			return m, nil
		default:
			// Any other interaction dismisses the list and proceeds
			m.quickSelect.Close()
		}
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.UseTemplate):
		if notice := m.quickSelect.Activate(m.service.ListTemplates()); notice != "" {
			m.notice.Show(notice, "info")
		}
		return m, nil

	case key.Matches(msg, m.keys.Templates):
		m.templateModal.Resize(m.width, m.height)
		m.templateModal.Open()
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		if m.total > 0 {
			m.confirm.Ask("Delete all entries? This cannot be undone.")
		}
		return m, nil

	case key.Matches(msg, m.keys.ExpandHelp):
		m.showExpandedHelp = !m.showExpandedHelp
		return m, nil
	}

	if m.listFocused {
		return m.handleListKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextPane) && m.form.Focused() == nextField:
		m.focusList()
		return m, nil
	case key.Matches(msg, m.keys.PrevPane) && m.form.Focused() == eventField:
		m.focusList()
		return m, nil
	}

	return m, m.form.Update(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.logs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.logs) {
			m.expanded[m.cursor] = !m.expanded[m.cursor]
		}
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyEntry()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.NextPane):
		m.focusForm()
	case key.Matches(msg, m.keys.PrevPane), key.Matches(msg, m.keys.Back):
		m.focusForm()
	case msg.String() == "q":
		return m, tea.Quit
	case msg.String() == "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case msg.String() == "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	m.refreshViewport()
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.reload()
		return m, nil
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.reload()
	return m, cmd
}

// submit validates the form and records a new entry
func (m *Model) submit() tea.Cmd {
	event, win, next := m.form.Values()
	if _, err := m.service.SubmitLog(event, win, next); err != nil {
		if errors.IsValidation(err) {
			m.notice.Show(errors.GetAppError(err).Message, "warning")
			return nil
		}
		return m.setError(err)
	}

	m.form.Reset()
	m.listFocused = false
	m.reload()
	return m.setStatus("Entry saved", "success")
}

func (m *Model) clearAll() tea.Cmd {
	if err := m.service.ClearLogs(); err != nil {
		return m.setError(err)
	}
	m.reload()
	m.focusForm()
	return m.setStatus("All entries deleted", "success")
}

func (m *Model) copyEntry() tea.Cmd {
	if m.cursor >= len(m.logs) {
		return nil
	}
	if err := m.copyFunc(m.renderer.EntryText(m.logs[m.cursor])); err != nil {
		return m.setError(err)
	}
	return m.setStatus("Copied to clipboard!", "success")
}

// reload reads the store afresh. Expanded state is positional and does not
// survive a reload.
func (m *Model) reload() {
	m.logs = m.service.SearchLogs(m.filterInput.Value())
	if m.filterInput.Value() == "" {
		m.total = len(m.logs)
	} else {
		m.total = len(m.service.ListLogs())
	}
	m.expanded = make(map[int]bool)
	if m.cursor >= len(m.logs) {
		m.cursor = max(0, len(m.logs)-1)
	}
	m.refreshViewport()
}

func (m *Model) focusList() {
	m.form.Blur()
	m.listFocused = true
	m.refreshViewport()
}

func (m *Model) focusForm() {
	m.listFocused = false
	m.form.Focus()
	m.refreshViewport()
}

func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = 3
	return clearStatusCmd()
}

func (m *Model) setError(err error) tea.Cmd {
	handler := errors.NewTUIErrorHandler(false)
	handler.HandleError(err)
	return m.setStatus(handler.FormatError(err), handler.StatusType(err))
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.form.Resize(width)
	m.templateModal.Resize(width, height)
	m.help.Width = width

	// Reserve space for the title, the form (three labelled inputs), the
	// button row, the log header and the help line
	const reservedHeight = 20
	listHeight := height - reservedHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.viewport.Width = max(20, width-8)
	m.viewport.Height = listHeight
	m.filterInput.Width = max(10, width-12)

	if r, err := renderer.NewMarkdownRenderer(m.glamourStyle, max(20, m.viewport.Width-4)); err == nil {
		m.glamourRenderer = r
	}
	m.refreshViewport()
}

// refreshViewport repaints the log list and keeps the cursor in view
func (m *Model) refreshViewport() {
	opts := m.dateOpts
	opts.TitleWidth = max(10, m.viewport.Width-24)
	listView := view.RenderLogs(m.logs, m.expanded, opts)

	if listView.IsEmpty() {
		placeholder := listView.Placeholder
		if m.filterInput.Value() != "" {
			placeholder = "No matching entries."
		}
		m.viewport.SetContent(StylePlaceholder.Render(placeholder))
		m.viewport.GotoTop()
		return
	}

	var lines []string
	cursorStart, cursorEnd := 0, 0
	for _, entry := range listView.Entries {
		if entry.Index == m.cursor {
			cursorStart = len(lines)
		}
		lines = append(lines, m.renderEntryHeader(entry))
		if entry.Expanded {
			lines = append(lines, m.renderEntryBody(m.logs[entry.Index], entry)...)
		}
		if entry.Index == m.cursor {
			cursorEnd = len(lines) - 1
		}
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if cursorStart < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorStart)
	} else if cursorEnd >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(max(cursorStart, cursorEnd-m.viewport.Height+1))
	}
}

func (m *Model) renderEntryHeader(entry view.LogEntryView) string {
	marker := "▸"
	if entry.Expanded {
		marker = "▾"
	}
	title := marker + " " + entry.Title

	style := StyleText
	if m.listFocused && entry.Index == m.cursor {
		style = StyleFocused
	}
	return style.Render(title) + "  " + StyleEntryDate.Render(entry.Date)
}

func (m *Model) renderEntryBody(entry models.LogEntry, v view.LogEntryView) []string {
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(renderer.BodyMarkdown(entry)); err == nil {
			return strings.Split(strings.TrimRight(out, "\n"), "\n")
		}
	}

	var lines []string
	for _, section := range v.Sections {
		lines = append(lines, "    "+StyleSectionLabel.Render(section.Label))
		for _, line := range section.Lines {
			lines = append(lines, "    "+StyleTextMuted.Render(line))
		}
	}
	return lines
}

// View renders the current state
func (m Model) View() string {
	switch {
	case m.notice.IsActive():
		return CenterModal(m.notice.View(), m.width, m.height)
	case m.confirm.IsActive():
		return CenterModal(m.confirm.View(), m.width, m.height)
	case m.templateModal.IsActive():
		return CenterModal(m.templateModal.View(), m.width, m.height)
	}

	elements := []string{
		CreateMainHeader("Pocket Debrief"),
		m.form.View(),
		m.renderButtons(),
	}
	if m.quickSelect.IsOpen() {
		elements = append(elements, m.renderQuickSelect())
	}
	elements = append(elements, "", m.renderLogSection(), m.renderHelp())

	if m.statusMsg != "" {
		elements = append(elements, CreateStatus(m.statusMsg, m.statusType))
	}

	return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, elements...))
}

func (m Model) renderLogSection() string {
	header := StyleSubtitle.Render(fmt.Sprintf("Debrief Log (%d)", m.total))
	if m.total > 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "  ", CreateButton("Ctrl+k Clear all", false))
	}

	elements := []string{header}
	if m.filtering {
		elements = append(elements, m.filterInput.View())
	} else if q := m.filterInput.Value(); q != "" {
		elements = append(elements, StyleSearchIndicator.Render(fmt.Sprintf("Search: %s (%d results)", q, len(m.logs))))
	}

	top, bottom := CreateScrollIndicators(!m.viewport.AtTop(), !m.viewport.AtBottom())
	body := lipgloss.JoinVertical(lipgloss.Left, top, m.viewport.View(), bottom)
	container := StyleContentContainer
	if m.listFocused {
		container = container.BorderForeground(ColorSecondary)
	}
	elements = append(elements, container.Render(body))

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

func (m Model) renderHelp() string {
	var essential []string
	switch {
	case m.quickSelect.IsOpen():
		essential = []string{"↑/↓ choose • Enter use • Esc close"}
	case m.filtering:
		essential = []string{"type to search • Enter apply • Esc clear"}
	case m.listFocused:
		essential = []string{"Enter expand • c copy • / search • Esc form"}
	default:
		essential = []string{"Ctrl+s save • Ctrl+t use template • Tab next"}
	}

	if m.quickSelect.IsOpen() || m.filtering {
		return CreateContextualHelp(essential, false, m.width)
	}
	if !m.showExpandedHelp {
		return CreateContextualHelp(essential, true, m.width)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		CreateContextualHelp(essential, false, m.width),
		m.help.FullHelpView(m.keys.FullHelp()),
	)
}
