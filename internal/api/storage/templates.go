package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// CreateTemplate inserts a template row.
func (s *Storage) CreateTemplate(ctx context.Context, t *model.JobTemplate) error {
	query := `
		INSERT INTO job_templates (
			template_id, org_id, name, category,
			description, fields, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		t.TemplateID,
		t.OrgID,
		t.Name,
		t.Category,
		t.Description,
		t.Fields,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetTemplateByID fetches one template within the org scope.
func (s *Storage) GetTemplateByID(ctx context.Context, orgID, templateID string) (*model.JobTemplate, error) {
	var t model.JobTemplate
	query := `
		SELECT
			template_id, org_id, name, category,
			description, fields, created_at, updated_at
		FROM job_templates
		WHERE org_id = $1 AND template_id = $2
	`

	err := s.db.GetContext(ctx, &t, query, orgID, templateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &t, nil
}

// ListTemplates returns the org's templates, optionally filtered by
// category, newest first.
func (s *Storage) ListTemplates(ctx context.Context, orgID, category string) ([]model.JobTemplate, error) {
	query := `
		SELECT
			template_id, org_id, name, category,
			description, fields, created_at, updated_at
		FROM job_templates
		WHERE org_id = $1
	`
	args := []interface{}{orgID}

	if category != "" {
		query += " AND category = $2"
		args = append(args, category)
	}

	query += " ORDER BY created_at DESC, template_id DESC"

	var templates []model.JobTemplate
	if err := s.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}
