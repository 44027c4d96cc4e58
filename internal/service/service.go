package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dpshade/pocket-debrief/internal/config"
	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/kv"
	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/dpshade/pocket-debrief/internal/storage"
	"github.com/dpshade/pocket-debrief/internal/validation"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Service provides the journal operations shared by the TUI and the CLI.
// It holds no entries itself; every call reads the stores afresh.
type Service struct {
	config    *config.Config
	logs      *storage.LogStore
	templates *storage.TemplateStore
	validator *validation.Validator
	now       func() time.Time
}

// NewService creates a service persisting into the configured data directory
func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil || cfg.DataDir() == "" {
		return nil, errors.InternalError("no data directory configured")
	}
	return NewServiceWithNamespace(kv.NewFileNamespace(cfg.DataDir()), cfg), nil
}

// NewServiceWithNamespace creates a service on an arbitrary namespace
func NewServiceWithNamespace(ns kv.Namespace, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default("")
	}
	return &Service{
		config:    cfg,
		logs:      storage.NewLogStore(ns),
		templates: storage.NewTemplateStore(ns),
		validator: validation.NewValidator(),
		now:       time.Now,
	}
}

// SetClock replaces the time source used to stamp new entries
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Config returns the active settings
func (s *Service) Config() *config.Config {
	return s.config
}

// ListLogs returns every entry, newest first
func (s *Service) ListLogs() []models.LogEntry {
	return s.logs.Load()
}

// SubmitLog validates the three debrief fields and records a new entry at the
// front of the log. Nothing is stored when any field is blank.
func (s *Service) SubmitLog(event, win, next string) (models.LogEntry, error) {
	result := s.validator.Validate(validation.SchemaCreateLog, map[string]string{
		validation.FieldEvent: event,
		validation.FieldWin:   win,
		validation.FieldNext:  next,
	})
	if err := result.ToAppError(); err != nil {
		return models.LogEntry{}, err
	}

	entry := models.NewLogEntry(
		result.Data[validation.FieldEvent],
		result.Data[validation.FieldWin],
		result.Data[validation.FieldNext],
		s.now(),
	)
	if err := s.logs.Add(entry); err != nil {
		return models.LogEntry{}, err
	}

	return entry, nil
}

// ClearLogs erases the whole log
func (s *Service) ClearLogs() error {
	return s.logs.Clear()
}

// SearchLogs fuzzy-matches query against each entry's text and returns the
// matches in log order. An empty query returns every entry.
func (s *Service) SearchLogs(query string) []models.LogEntry {
	logs := s.logs.Load()

	query = strings.TrimSpace(query)
	if query == "" {
		return logs
	}

	searchStrings := make([]string, len(logs))
	for i, entry := range logs {
		searchStrings[i] = strings.Join([]string{entry.Event, entry.Win, entry.Next}, " ")
	}

	matches := fuzzy.Find(query, searchStrings)
	indexes := make([]int, 0, len(matches))
	for _, match := range matches {
		indexes = append(indexes, match.Index)
	}
	sort.Ints(indexes)

	results := make([]models.LogEntry, 0, len(indexes))
	for _, i := range indexes {
		results = append(results, logs[i])
	}
	return results
}

// ListTemplates returns every template in creation order
func (s *Service) ListTemplates() []models.Template {
	return s.templates.Load()
}

// GetTemplate returns the template at index
func (s *Service) GetTemplate(index int) (models.Template, bool) {
	templates := s.templates.Load()
	if index < 0 || index >= len(templates) {
		return models.Template{}, false
	}
	return templates[index], true
}

// AddTemplate validates and appends a new template. Duplicate names are
// allowed.
func (s *Service) AddTemplate(name, content string) (models.Template, error) {
	result := s.validator.Validate(validation.SchemaCreateTemplate, map[string]string{
		validation.FieldName:    name,
		validation.FieldContent: content,
	})
	if err := result.ToAppError(); err != nil {
		return models.Template{}, err
	}

	template := models.Template{
		Name:    result.Data[validation.FieldName],
		Content: result.Data[validation.FieldContent],
	}
	if err := s.templates.Add(template); err != nil {
		return models.Template{}, err
	}

	return template, nil
}

// DeleteTemplate removes the template at index. Out-of-range indexes are
// ignored; callers confirm with the user before deleting.
func (s *Service) DeleteTemplate(index int) error {
	return s.templates.RemoveAt(index)
}

// ExportDocument is the shape written by Export
type ExportDocument struct {
	Logs      []models.LogEntry `json:"logs" yaml:"logs"`
	Templates []models.Template `json:"templates" yaml:"templates"`
}

// Export renders both stores as a single JSON or YAML document
func (s *Service) Export(format string) ([]byte, error) {
	doc := ExportDocument{
		Logs:      s.logs.Load(),
		Templates: s.templates.Load(),
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return data, nil
	default:
		return nil, errors.InvalidInputError(fmt.Sprintf("unsupported export format: %s", format))
	}
}
