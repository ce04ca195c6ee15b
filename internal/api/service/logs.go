package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// LogInput is one daily log entry being recorded.
type LogInput struct {
	TemplateID  string
	LogDate     time.Time
	FieldValues map[string]any
}

// LogService records daily log entries against templates, one entry per
// template and day.
type LogService struct {
	templates TemplateStore
	store     LogStore
	logger    *slog.Logger
	nowFn     func() time.Time
}

// NewLogService wires a LogService.
func NewLogService(templates TemplateStore, store LogStore, logger *slog.Logger) *LogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogService{templates: templates, store: store, logger: logger, nowFn: time.Now}
}

// Create validates the entry against the template's required creation
// fields and persists it. A second entry for the same template and date is
// rejected with domain.ErrDuplicateLog.
func (s *LogService) Create(ctx context.Context, tenant domain.Tenant, input LogInput) (*model.DailyLog, error) {
	tmpl, err := s.templates.GetTemplateByID(ctx, tenant.OrgID, input.TemplateID)
	if err != nil {
		return nil, err
	}
	template := tmpl.ToDomain()

	if input.LogDate.IsZero() {
		return nil, domain.NewValidationError([]domain.FieldError{{
			FieldKey: "log_date",
			Message:  "log date is required",
		}})
	}

	values, fieldErrs := domain.ValidateFieldValues(template.Fields, domain.FieldCategoryCreation, input.FieldValues)
	if len(fieldErrs) > 0 {
		return nil, domain.NewValidationError(fieldErrs)
	}

	// Normalize to a date, dropping the time component.
	day := time.Date(input.LogDate.Year(), input.LogDate.Month(), input.LogDate.Day(), 0, 0, 0, 0, time.UTC)

	row := &model.DailyLog{
		LogID:       uuid.New().String(),
		OrgID:       tenant.OrgID,
		TemplateID:  input.TemplateID,
		LogDate:     day,
		FieldValues: values,
		RecordedBy:  tenant.UserID,
		CreatedAt:   s.nowFn(),
	}
	if err := s.store.CreateDailyLog(ctx, row); err != nil {
		return nil, err
	}

	s.logger.Info("Daily log recorded",
		slog.String("org_id", tenant.OrgID),
		slog.String("template_id", input.TemplateID),
		slog.String("log_date", day.Format(domain.DateLayout)),
	)

	return row, nil
}

// List returns log entries in a date range, newest first.
func (s *LogService) List(ctx context.Context, tenant domain.Tenant, templateID string, from, to time.Time) ([]model.DailyLog, error) {
	return s.store.ListDailyLogs(ctx, tenant.OrgID, templateID, from, to)
}
