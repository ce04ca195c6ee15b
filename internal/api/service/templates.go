package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// TemplateService manages job templates.
type TemplateService struct {
	store  TemplateStore
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewTemplateService wires a TemplateService.
func NewTemplateService(store TemplateStore, logger *slog.Logger) *TemplateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateService{store: store, logger: logger, nowFn: time.Now}
}

// Create validates a template definition and persists it. Fields are stored
// sorted by display order so readers see them in presentation order.
func (s *TemplateService) Create(ctx context.Context, tenant domain.Tenant, template *domain.JobTemplate) (*domain.JobTemplate, error) {
	template.OrgID = tenant.OrgID
	if err := template.ValidateDefinition(); err != nil {
		return nil, domain.NewValidationError([]domain.FieldError{{Message: err.Error()}})
	}

	fields := make([]domain.TemplateField, len(template.Fields))
	copy(fields, template.Fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].DisplayOrder < fields[j].DisplayOrder
	})

	now := s.nowFn()
	row := &model.JobTemplate{
		TemplateID:  uuid.New().String(),
		OrgID:       tenant.OrgID,
		Name:        template.Name,
		Category:    template.Category,
		Description: template.Description,
		Fields:      fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTemplate(ctx, row); err != nil {
		return nil, err
	}

	s.logger.Info("Template created",
		slog.String("org_id", tenant.OrgID),
		slog.String("template_id", row.TemplateID),
		slog.String("name", row.Name),
		slog.Int("fields", len(row.Fields)),
	)

	return row.ToDomain(), nil
}

// Get fetches one template in the tenant's org.
func (s *TemplateService) Get(ctx context.Context, tenant domain.Tenant, templateID string) (*domain.JobTemplate, error) {
	row, err := s.store.GetTemplateByID(ctx, tenant.OrgID, templateID)
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

// List returns the tenant's templates, optionally filtered by category.
func (s *TemplateService) List(ctx context.Context, tenant domain.Tenant, category string) ([]*domain.JobTemplate, error) {
	rows, err := s.store.ListTemplates(ctx, tenant.OrgID, category)
	if err != nil {
		return nil, err
	}
	templates := make([]*domain.JobTemplate, len(rows))
	for i := range rows {
		templates[i] = rows[i].ToDomain()
	}
	return templates, nil
}
