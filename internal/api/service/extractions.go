package service

import (
	"context"
	"log/slog"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/extraction"
	"github.com/tuanphm/compliance-be/internal/mapping"
)

// ExtractionPreview is everything the client needs for the review step:
// the extracted table, a suggested column-to-field mapping, and a report on
// whether that mapping could feed job creation as-is.
type ExtractionPreview struct {
	Description      string                   `json:"description,omitempty"`
	Columns          []string                 `json:"columns"`
	Rows             []map[string]string      `json:"rows"`
	SuggestedMapping mapping.FieldMapping     `json:"suggested_mapping"`
	Report           mapping.ValidationReport `json:"report"`
}

// ExtractionService runs the bulk extraction pipeline: document in, rows
// plus suggested mapping out. Nothing here is persisted; the preview lives
// in the client until the user confirms bulk creation.
type ExtractionService struct {
	templates TemplateStore
	extractor extraction.Extractor
	logger    *slog.Logger
}

// NewExtractionService wires an ExtractionService.
func NewExtractionService(templates TemplateStore, extractor extraction.Extractor, logger *slog.Logger) *ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionService{templates: templates, extractor: extractor, logger: logger}
}

// Preview extracts the upload and suggests a mapping against the target
// template's creation fields.
func (s *ExtractionService) Preview(ctx context.Context, tenant domain.Tenant, templateID string, upload extraction.Upload) (*ExtractionPreview, error) {
	tmpl, err := s.templates.GetTemplateByID(ctx, tenant.OrgID, templateID)
	if err != nil {
		return nil, err
	}
	template := tmpl.ToDomain()

	result, err := s.extractor.Extract(ctx, upload)
	if err != nil {
		return nil, err
	}

	suggested := mapping.Suggest(template.Fields, result.Columns)
	report := mapping.Validate(template, result.Columns, suggested)

	s.logger.Info("Extraction preview ready",
		slog.String("org_id", tenant.OrgID),
		slog.String("template_id", templateID),
		slog.String("filename", upload.Filename),
		slog.Int("columns", len(result.Columns)),
		slog.Int("rows", len(result.Rows)),
		slog.Int("mapped_columns", len(suggested)),
		slog.Bool("mapping_valid", report.Valid),
	)

	return &ExtractionPreview{
		Description:      result.Description,
		Columns:          result.Columns,
		Rows:             result.Rows,
		SuggestedMapping: suggested,
		Report:           report,
	}, nil
}

// ApplyMapping validates a (possibly user-edited) mapping against the
// template and rewrites the extracted rows into creation-ready drafts.
func (s *ExtractionService) ApplyMapping(ctx context.Context, tenant domain.Tenant, templateID string, columns []string, rows []map[string]string, fm mapping.FieldMapping) ([]mapping.MappedJob, error) {
	tmpl, err := s.templates.GetTemplateByID(ctx, tenant.OrgID, templateID)
	if err != nil {
		return nil, err
	}
	template := tmpl.ToDomain()

	report := mapping.Validate(template, columns, fm)
	if !report.Valid {
		fieldErrs := make([]domain.FieldError, len(report.Errors))
		for i, issue := range report.Errors {
			fieldErrs[i] = domain.FieldError{
				FieldKey: issue.FieldKey,
				Label:    issue.Label,
				Message:  issue.Message,
			}
		}
		return nil, domain.NewValidationError(fieldErrs)
	}

	return mapping.Apply(rows, fm), nil
}
