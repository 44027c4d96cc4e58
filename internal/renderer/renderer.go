// Package renderer turns entries and templates into text for the clipboard,
// the CLI and the glamour-rendered detail pane.
package renderer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/dpshade/pocket-debrief/internal/view"
	"github.com/muesli/termenv"
)

// Renderer renders log entries in the configured date layout
type Renderer struct {
	opts view.Options
}

// NewRenderer creates a renderer using the given display options
func NewRenderer(opts view.Options) *Renderer {
	return &Renderer{opts: opts}
}

// EntryText renders an entry as plain text, one labelled section per field
func (r *Renderer) EntryText(entry models.LogEntry) string {
	var b strings.Builder
	b.WriteString(entry.Title())
	b.WriteString("\n")
	b.WriteString(view.FormatDate(entry, r.opts))
	b.WriteString("\n")

	for _, section := range sections(entry) {
		b.WriteString("\n")
		b.WriteString(section.Label)
		b.WriteString(":\n")
		b.WriteString(strings.Join(section.Lines, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// EntryMarkdown renders a whole entry as markdown: title, date and body
func (r *Renderer) EntryMarkdown(entry models.LogEntry) string {
	return fmt.Sprintf("## %s\n\n*%s*\n\n%s", entry.Title(), view.FormatDate(entry, r.opts), BodyMarkdown(entry))
}

// BodyMarkdown renders the three fields as labelled paragraphs. Every newline
// in a field becomes a hard line break.
func BodyMarkdown(entry models.LogEntry) string {
	parts := make([]string, 0, 3)
	for _, section := range sections(entry) {
		parts = append(parts, fmt.Sprintf("**%s**  \n%s\n", section.Label, strings.Join(section.Lines, "  \n")))
	}
	return strings.Join(parts, "\n")
}

// EntryLine renders an entry as a single summary line
func (r *Renderer) EntryLine(entry models.LogEntry) string {
	return fmt.Sprintf("%s  %s", view.FormatDate(entry, r.opts), entry.Title())
}

// TemplateText renders a template as its name followed by its content
func TemplateText(t models.Template) string {
	return fmt.Sprintf("%s\n%s\n", t.Title(), t.Content)
}

// JSON renders v as indented JSON
func JSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(data), nil
}

func sections(entry models.LogEntry) []view.Section {
	v := view.RenderLogs([]models.LogEntry{entry}, nil, view.Options{})
	return v.Entries[0].Sections
}

// NewMarkdownRenderer creates a glamour renderer. A non-empty style (for
// example from GLAMOUR_STYLE or the configured theme) is used as-is;
// otherwise the style follows the terminal background and color profile.
func NewMarkdownRenderer(style string, wordWrap int) (*glamour.TermRenderer, error) {
	if style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	styleOption := glamour.WithAutoStyle()
	if profile == termenv.TrueColor || profile == termenv.ANSI256 {
		if lipgloss.HasDarkBackground() {
			styleOption = glamour.WithStandardStyle("dark")
		} else {
			styleOption = glamour.WithStandardStyle("light")
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}
