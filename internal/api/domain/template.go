package domain

import (
	"fmt"
	"time"
)

// FieldType enumerates the value types a template field can declare.
const (
	FieldTypeText    = "text"
	FieldTypeNumber  = "number"
	FieldTypeDate    = "date"
	FieldTypeSelect  = "select"
	FieldTypeBoolean = "boolean"
)

// FieldCategory splits template fields into the two capture points of a
// job's lifecycle: creation-time and action-time.
const (
	FieldCategoryCreation = "creation"
	FieldCategoryAction   = "action"
)

// TemplateField is a single user-defined field on a job template.
type TemplateField struct {
	FieldKey      string         `json:"field_key"`
	FieldLabel    string         `json:"field_label"`
	FieldType     string         `json:"field_type"`
	FieldCategory string         `json:"field_category"`
	IsRequired    bool           `json:"is_required"`
	DisplayOrder  int            `json:"display_order"`
	Config        map[string]any `json:"config,omitempty"`
}

// SelectOptions returns the allowed values for a select field, read from the
// field config. Empty for non-select fields or when no options are declared.
func (f TemplateField) SelectOptions() []string {
	raw, ok := f.Config["options"]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	options := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			options = append(options, s)
		}
	}
	return options
}

// JobTemplate is a reusable definition of a job's fields.
type JobTemplate struct {
	ID          string
	OrgID       string
	Name        string
	Category    string
	Description string
	Fields      []TemplateField
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FieldsByCategory returns the template fields of one category, preserving
// display order.
func (t *JobTemplate) FieldsByCategory(category string) []TemplateField {
	var fields []TemplateField
	for _, f := range t.Fields {
		if f.FieldCategory == category {
			fields = append(fields, f)
		}
	}
	return fields
}

// FindField looks a field up by key.
func (t *JobTemplate) FindField(fieldKey string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.FieldKey == fieldKey {
			return f, true
		}
	}
	return TemplateField{}, false
}

// ValidateDefinition checks the structural invariants of a template before it
// is persisted: at least one field, unique field keys, known types and
// categories.
func (t *JobTemplate) ValidateDefinition() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("template must declare at least one field")
	}

	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if f.FieldKey == "" {
			return fmt.Errorf("field key is required")
		}
		if _, dup := seen[f.FieldKey]; dup {
			return fmt.Errorf("duplicate field key: %s", f.FieldKey)
		}
		seen[f.FieldKey] = struct{}{}

		switch f.FieldType {
		case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeSelect, FieldTypeBoolean:
		default:
			return fmt.Errorf("unknown field type %q for field %s", f.FieldType, f.FieldKey)
		}

		switch f.FieldCategory {
		case FieldCategoryCreation, FieldCategoryAction:
		default:
			return fmt.Errorf("unknown field category %q for field %s", f.FieldCategory, f.FieldKey)
		}
	}

	return nil
}
