package models

// Template is a named, reusable block of text that can be dropped into the
// event field of a new debrief
type Template struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	return cleanString(t.Name)
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	summary := cleanString(t.Content)
	// Keep previews to a single short line
	const maxSummaryLength = 60
	if runes := []rune(summary); len(runes) > maxSummaryLength {
		summary = string(runes[:maxSummaryLength-3]) + "..."
	}
	return summary
}

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Name)
}
