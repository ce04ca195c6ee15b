package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/extraction"
	"github.com/tuanphm/compliance-be/internal/mapping"
)

type stubExtractor struct {
	result extraction.Result
	err    error
}

func (s *stubExtractor) Extract(_ context.Context, _ extraction.Upload) (extraction.Result, error) {
	return s.result, s.err
}

func TestExtractionService_Preview(t *testing.T) {
	templates := newFakeTemplateStore(inspectionTemplateRow(testTenant.OrgID))
	upload := extraction.Upload{Filename: "report.xlsx"}

	t.Run("suggests a mapping and validates it", func(t *testing.T) {
		extractor := &stubExtractor{result: extraction.Result{
			Description: "Sheet 1",
			Columns:     []string{"Site Name", "Capacity", "Notes"},
			Rows: []map[string]string{
				{"Site Name": "Plant A", "Capacity": "250", "Notes": "windy"},
			},
		}}
		svc := NewExtractionService(templates, extractor, nil)

		preview, err := svc.Preview(context.Background(), testTenant, "tpl-1", upload)

		require.NoError(t, err)
		assert.Equal(t, "Sheet 1", preview.Description)
		assert.Equal(t, "site", preview.SuggestedMapping["Site Name"])
		assert.Equal(t, "capacity", preview.SuggestedMapping["Capacity"])
		_, mapped := preview.SuggestedMapping["Notes"]
		assert.False(t, mapped)
		assert.True(t, preview.Report.Valid)
		assert.Len(t, preview.Rows, 1)
	})

	t.Run("report flags uncovered required fields", func(t *testing.T) {
		extractor := &stubExtractor{result: extraction.Result{
			Columns: []string{"Notes"},
			Rows:    []map[string]string{{"Notes": "windy"}},
		}}
		svc := NewExtractionService(templates, extractor, nil)

		preview, err := svc.Preview(context.Background(), testTenant, "tpl-1", upload)

		require.NoError(t, err)
		assert.False(t, preview.Report.Valid)
		require.NotEmpty(t, preview.Report.Errors)
		assert.Contains(t, preview.Report.Errors[0].Message, `required field "Site Name"`)
	})

	t.Run("extraction failure propagates", func(t *testing.T) {
		extractor := &stubExtractor{err: extraction.ErrNoTabularData}
		svc := NewExtractionService(templates, extractor, nil)

		_, err := svc.Preview(context.Background(), testTenant, "tpl-1", upload)

		assert.ErrorIs(t, err, extraction.ErrNoTabularData)
	})

	t.Run("unknown template", func(t *testing.T) {
		svc := NewExtractionService(templates, &stubExtractor{}, nil)

		_, err := svc.Preview(context.Background(), testTenant, "tpl-missing", upload)

		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})
}

func TestExtractionService_ApplyMapping(t *testing.T) {
	templates := newFakeTemplateStore(inspectionTemplateRow(testTenant.OrgID))
	svc := NewExtractionService(templates, &stubExtractor{}, nil)

	columns := []string{"Site Name", "Capacity"}
	rows := []map[string]string{
		{"Site Name": "Plant A", "Capacity": "250"},
		{"Site Name": "Plant B", "Capacity": "120"},
	}

	t.Run("valid mapping rewrites rows into drafts", func(t *testing.T) {
		drafts, err := svc.ApplyMapping(context.Background(), testTenant, "tpl-1", columns, rows, mapping.FieldMapping{
			"Site Name": "site",
			"Capacity":  "capacity",
		})

		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Equal(t, map[string]any{"site": "Plant A", "capacity": "250"}, drafts[0].CreationFieldValues)
		assert.Equal(t, 1, drafts[1].RowIndex)
	})

	t.Run("invalid mapping becomes a validation error", func(t *testing.T) {
		_, err := svc.ApplyMapping(context.Background(), testTenant, "tpl-1", columns, rows, mapping.FieldMapping{
			"Capacity": "capacity",
		})

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.NotEmpty(t, verr.Errors)
		assert.Contains(t, verr.Errors[0].Message, `required field "Site Name"`)
	})
}
