// Package validation checks form input before it reaches the stores.
//
// The only rule the journal enforces is that required text fields are not
// blank once surrounding whitespace is removed. Each form is described by a
// Schema; Validate trims every field, reports the blank ones and hands back
// the trimmed values so callers store exactly what was checked.
package validation

import (
	"fmt"
	"strings"

	"github.com/dpshade/pocket-debrief/internal/errors"
)

// Schema names
const (
	SchemaCreateLog      = "create_log"
	SchemaCreateTemplate = "create_template"
)

// Field names shared by the schemas and their callers
const (
	FieldEvent   = "event"
	FieldWin     = "win"
	FieldNext    = "next"
	FieldName    = "name"
	FieldContent = "content"
)

// FieldValidator provides validation rules for individual fields
type FieldValidator struct {
	Name     string
	Label    string
	Required bool
}

// Schema represents a validation schema. Fields are checked in order.
type Schema struct {
	Name    string
	Message string // shown when any required field is blank
	Fields  []FieldValidator
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
	message string
}

// ToAppError converts a failed result into a validation AppError; a valid
// result converts to nil
func (r *ValidationResult) ToAppError() error {
	if r.Valid {
		return nil
	}

	appErr := errors.ValidationError(r.message)
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		fields = append(fields, e.Field)
	}
	return appErr.WithContext("fields", fields)
}

// Validator provides centralized validation functionality
type Validator struct {
	schemas map[string]*Schema
}

// NewValidator creates a validator with the journal's built-in schemas
func NewValidator() *Validator {
	v := &Validator{
		schemas: make(map[string]*Schema),
	}
	v.registerBuiltinSchemas()
	return v
}

// RegisterSchema registers a validation schema
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// Validate validates data against a schema
func (v *Validator) Validate(schemaName string, data map[string]string) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
			}},
			message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
		}
	}

	result := &ValidationResult{
		Valid:   true,
		Data:    make(map[string]string, len(schema.Fields)),
		message: schema.Message,
	}

	for _, field := range schema.Fields {
		value := strings.TrimSpace(data[field.Name])
		result.Data[field.Name] = value

		if field.Required && value == "" {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field.Name,
				Code:    "REQUIRED_FIELD_MISSING",
				Message: fmt.Sprintf("%s is required", field.Label),
			})
		}
	}

	return result
}

func (v *Validator) registerBuiltinSchemas() {
	v.RegisterSchema(&Schema{
		Name:    SchemaCreateLog,
		Message: "Please fill in all fields.",
		Fields: []FieldValidator{
			{Name: FieldEvent, Label: "Event", Required: true},
			{Name: FieldWin, Label: "Win", Required: true},
			{Name: FieldNext, Label: "Next", Required: true},
		},
	})

	v.RegisterSchema(&Schema{
		Name:    SchemaCreateTemplate,
		Message: "Template name and content are required.",
		Fields: []FieldValidator{
			{Name: FieldName, Label: "Name", Required: true},
			{Name: FieldContent, Label: "Content", Required: true},
		},
	})
}
