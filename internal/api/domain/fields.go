package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date field values.
const DateLayout = "2006-01-02"

// IsEmptyValue reports whether a field value counts as missing. Nil and
// blank strings are both treated as absent.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ParseFieldValue coerces a raw value into the declared field type and
// returns the normalized value. Raw values may come from JSON request bodies
// (string/float64/bool) or from extracted spreadsheet cells (always strings),
// so string renditions are accepted for every type.
func ParseFieldValue(f TemplateField, raw any) (any, error) {
	switch f.FieldType {
	case FieldTypeText:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be text", f.FieldLabel)
		}
		return s, nil

	case FieldTypeNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number", f.FieldLabel)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("%s must be a number", f.FieldLabel)
		}

	case FieldTypeDate:
		switch v := raw.(type) {
		case time.Time:
			return v.Format(DateLayout), nil
		case string:
			if _, err := time.Parse(DateLayout, strings.TrimSpace(v)); err != nil {
				return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", f.FieldLabel)
			}
			return strings.TrimSpace(v), nil
		default:
			return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", f.FieldLabel)
		}

	case FieldTypeSelect:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be one of the configured options", f.FieldLabel)
		}
		options := f.SelectOptions()
		if len(options) == 0 {
			return s, nil
		}
		for _, opt := range options {
			if opt == s {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%s must be one of: %s", f.FieldLabel, strings.Join(options, ", "))

	case FieldTypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%s must be true or false", f.FieldLabel)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("%s must be true or false", f.FieldLabel)
		}

	default:
		return nil, fmt.Errorf("unknown field type %q", f.FieldType)
	}
}

// ValidateFieldValues checks a value map against the template fields of one
// category. Required fields must carry a non-empty value; present values must
// parse per their declared type; keys that match no field in the category are
// rejected. Returns the normalized values alongside any field errors; the
// input map is never mutated.
func ValidateFieldValues(fields []TemplateField, category string, values map[string]any) (map[string]any, []FieldError) {
	var fieldErrs []FieldError
	normalized := make(map[string]any, len(values))

	known := make(map[string]TemplateField, len(fields))
	for _, f := range fields {
		if f.FieldCategory != category {
			continue
		}
		known[f.FieldKey] = f

		raw, present := values[f.FieldKey]
		if !present || IsEmptyValue(raw) {
			if f.IsRequired {
				fieldErrs = append(fieldErrs, FieldError{
					FieldKey: f.FieldKey,
					Label:    f.FieldLabel,
					Message:  fmt.Sprintf("%s is required", f.FieldLabel),
				})
			}
			continue
		}

		parsed, err := ParseFieldValue(f, raw)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{
				FieldKey: f.FieldKey,
				Label:    f.FieldLabel,
				Message:  err.Error(),
			})
			continue
		}
		normalized[f.FieldKey] = parsed
	}

	for key := range values {
		if _, ok := known[key]; !ok {
			fieldErrs = append(fieldErrs, FieldError{
				FieldKey: key,
				Message:  fmt.Sprintf("unknown %s field: %s", category, key),
			})
		}
	}

	return normalized, fieldErrs
}
