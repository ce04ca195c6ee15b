package mapping

import (
	"fmt"

	"github.com/tuanphm/compliance-be/internal/api/domain"
)

// Issue describes one finding of a mapping validation.
type Issue struct {
	Column   string `json:"column,omitempty"`
	FieldKey string `json:"field_key,omitempty"`
	Label    string `json:"label,omitempty"`
	Message  string `json:"message"`
}

// ValidationReport summarizes whether a mapping can feed job creation.
// Blocking errors stop the pipeline; warnings are informational.
type ValidationReport struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Validate checks a mapping against a template: every required creation
// field must be covered by a column, unmapped optional fields are reported as
// warnings, and mapping targets must exist on the template. Inputs are never
// mutated.
func Validate(template *domain.JobTemplate, columns []string, fm FieldMapping) ValidationReport {
	var report ValidationReport

	mappedFields := make(map[string]string, len(fm))
	for _, column := range columns {
		fieldKey := fm[column]
		if fieldKey == "" {
			continue
		}
		if _, ok := template.FindField(fieldKey); !ok {
			report.Errors = append(report.Errors, Issue{
				Column:   column,
				FieldKey: fieldKey,
				Message:  fmt.Sprintf("column %q is mapped to unknown field %q", column, fieldKey),
			})
			continue
		}
		if prev, dup := mappedFields[fieldKey]; dup {
			report.Errors = append(report.Errors, Issue{
				Column:   column,
				FieldKey: fieldKey,
				Message:  fmt.Sprintf("columns %q and %q are both mapped to field %q", prev, column, fieldKey),
			})
			continue
		}
		mappedFields[fieldKey] = column
	}

	for _, f := range template.FieldsByCategory(domain.FieldCategoryCreation) {
		if _, covered := mappedFields[f.FieldKey]; covered {
			continue
		}
		issue := Issue{
			FieldKey: f.FieldKey,
			Label:    f.FieldLabel,
		}
		if f.IsRequired {
			issue.Message = fmt.Sprintf("required field %q has no mapped column", f.FieldLabel)
			report.Errors = append(report.Errors, issue)
		} else {
			issue.Message = fmt.Sprintf("optional field %q has no mapped column", f.FieldLabel)
			report.Warnings = append(report.Warnings, issue)
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
