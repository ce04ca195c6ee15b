package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanphm/compliance-be/internal/api/domain"
)

func inspectionTemplate() *domain.JobTemplate {
	return &domain.JobTemplate{
		ID:   "tpl-1",
		Name: "Fire Safety Inspection",
		Fields: []domain.TemplateField{
			{FieldKey: "site_name", FieldLabel: "Site Name", FieldType: domain.FieldTypeText, FieldCategory: domain.FieldCategoryCreation, IsRequired: true, DisplayOrder: 1},
			{FieldKey: "inspector", FieldLabel: "Inspector", FieldType: domain.FieldTypeText, FieldCategory: domain.FieldCategoryCreation, DisplayOrder: 2},
			{FieldKey: "capacity", FieldLabel: "Capacity", FieldType: domain.FieldTypeNumber, FieldCategory: domain.FieldCategoryCreation, DisplayOrder: 3},
			{FieldKey: "outcome", FieldLabel: "Outcome", FieldType: domain.FieldTypeText, FieldCategory: domain.FieldCategoryAction, IsRequired: true, DisplayOrder: 4},
		},
	}
}

func TestSuggest(t *testing.T) {
	template := inspectionTemplate()

	t.Run("matches by label ignoring case and punctuation", func(t *testing.T) {
		got := Suggest(template.Fields, []string{"Site Name:", "INSPECTOR"})

		assert.Equal(t, FieldMapping{
			"Site Name:": "site_name",
			"INSPECTOR":  "inspector",
		}, got)
	})

	t.Run("matches by field key", func(t *testing.T) {
		got := Suggest(template.Fields, []string{"site_name"})

		assert.Equal(t, "site_name", got["site_name"])
	})

	t.Run("unrelated column stays unmapped", func(t *testing.T) {
		got := Suggest(template.Fields, []string{"Weather Conditions"})

		_, mapped := got["Weather Conditions"]
		assert.False(t, mapped)
	})

	t.Run("action fields are never suggested", func(t *testing.T) {
		got := Suggest(template.Fields, []string{"Outcome"})

		_, mapped := got["Outcome"]
		assert.False(t, mapped)
	})

	t.Run("first column in input order claims the field", func(t *testing.T) {
		got := Suggest(template.Fields, []string{"Site Name", "Name of Site"})

		assert.Equal(t, "site_name", got["Site Name"])
		_, mapped := got["Name of Site"]
		assert.False(t, mapped)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		columns := []string{"Site Name", "Inspector", "Capacity", "Notes"}

		first := Suggest(template.Fields, columns)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Suggest(template.Fields, columns))
		}
	})
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical after normalization", a: "Site-Name", b: "site name", want: 1},
		{name: "substring containment", a: "Inspection Site Name", b: "Site Name", want: 0.8},
		{name: "partial word overlap", a: "site id", b: "site name", want: 1.0 / 3.0},
		{name: "no overlap", a: "weather", b: "capacity", want: 0},
		{name: "empty input", a: "", b: "site", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestValidate(t *testing.T) {
	template := inspectionTemplate()
	columns := []string{"Site", "Who", "Cap"}

	t.Run("complete mapping is valid with optional warnings", func(t *testing.T) {
		report := Validate(template, columns, FieldMapping{
			"Site": "site_name",
			"Who":  "inspector",
		})

		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "capacity", report.Warnings[0].FieldKey)
		assert.Contains(t, report.Warnings[0].Message, `optional field "Capacity"`)
	})

	t.Run("unmapped required field is a blocking error", func(t *testing.T) {
		report := Validate(template, columns, FieldMapping{
			"Who": "inspector",
		})

		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Errors)
		assert.Contains(t, report.Errors[0].Message, `required field "Site Name"`)
	})

	t.Run("unknown target field is a blocking error", func(t *testing.T) {
		report := Validate(template, columns, FieldMapping{
			"Site": "site_name",
			"Who":  "supervisor",
		})

		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Errors)
		assert.Contains(t, report.Errors[0].Message, `unknown field "supervisor"`)
	})

	t.Run("two columns on one field is a blocking error", func(t *testing.T) {
		report := Validate(template, columns, FieldMapping{
			"Site": "site_name",
			"Who":  "site_name",
		})

		assert.False(t, report.Valid)
		found := false
		for _, issue := range report.Errors {
			if issue.FieldKey == "site_name" && issue.Column != "" {
				found = true
				assert.Contains(t, issue.Message, "both mapped")
			}
		}
		assert.True(t, found)
	})
}

func TestApply(t *testing.T) {
	rows := []map[string]string{
		{"Site": "Plant A", "Who": "Kim", "Notes": "windy"},
		{"Site": "Plant B"},
	}
	fm := FieldMapping{
		"Site": "site_name",
		"Who":  "inspector",
	}

	t.Run("copies mapped cells and drops the rest", func(t *testing.T) {
		got := Apply(rows, fm)

		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].RowIndex)
		assert.Equal(t, map[string]any{"site_name": "Plant A", "inspector": "Kim"}, got[0].CreationFieldValues)

		// Missing cells stay absent so required-field validation can flag them.
		assert.Equal(t, 1, got[1].RowIndex)
		assert.Equal(t, map[string]any{"site_name": "Plant B"}, got[1].CreationFieldValues)
	})

	t.Run("is idempotent", func(t *testing.T) {
		first := Apply(rows, fm)
		second := Apply(rows, fm)

		assert.Equal(t, first, second)
	})

	t.Run("empty mapping yields empty values", func(t *testing.T) {
		got := Apply(rows, FieldMapping{})

		require.Len(t, got, 2)
		assert.Empty(t, got[0].CreationFieldValues)
	})
}
