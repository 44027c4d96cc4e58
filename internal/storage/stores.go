package storage

import (
	"github.com/dpshade/pocket-debrief/internal/kv"
	"github.com/dpshade/pocket-debrief/internal/models"
)

// Persisted keys. These match the localStorage keys used by the browser
// version so exported data stays interchangeable.
const (
	LogsKey      = "debriefLogs"
	TemplatesKey = "debriefTemplates"
)

// LogStore holds debrief entries, newest first
type LogStore struct {
	*ListStore[models.LogEntry]
}

// NewLogStore creates the log store on ns
func NewLogStore(ns kv.Namespace) *LogStore {
	return &LogStore{ListStore: NewListStore[models.LogEntry](ns, LogsKey)}
}

// Add records a new entry at the front of the log
func (s *LogStore) Add(entry models.LogEntry) error {
	return s.AppendFront(entry)
}

// TemplateStore holds templates in creation order
type TemplateStore struct {
	*ListStore[models.Template]
}

// NewTemplateStore creates the template store on ns
func NewTemplateStore(ns kv.Namespace) *TemplateStore {
	return &TemplateStore{ListStore: NewListStore[models.Template](ns, TemplatesKey)}
}

// Add appends a template after the existing ones
func (s *TemplateStore) Add(template models.Template) error {
	return s.AppendBack(template)
}
