package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// CreateJob inserts one job row. Each insert is its own atomic statement,
// matching the per-row failure policy of bulk creation.
func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			job_id, org_id, template_id, name,
			creation_field_values, assigned_to,
			interval_value, interval_unit, anchor_date,
			created_by, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6,
			$7, $8, $9,
			$10, $11
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.OrgID,
		job.TemplateID,
		job.Name,
		job.CreationFieldValues,
		job.AssignedTo,
		job.IntervalValue,
		job.IntervalUnit,
		job.AnchorDate,
		job.CreatedBy,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJobByID fetches one job within the org scope.
func (s *Storage) GetJobByID(ctx context.Context, orgID, jobID string) (*model.Job, error) {
	var job model.Job
	query := `
		SELECT
			job_id, org_id, template_id, name,
			creation_field_values, assigned_to,
			interval_value, interval_unit, anchor_date,
			created_by, created_at
		FROM jobs
		WHERE org_id = $1 AND job_id = $2
	`

	err := s.db.GetContext(ctx, &job, query, orgID, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// JobFilter narrows a job listing.
type JobFilter struct {
	TemplateID string
	AssignedTo string
	PageSize   int
	Cursor     *JobCursor
}

// JobCursor is the keyset position for job pagination.
type JobCursor struct {
	CreatedAt time.Time
	JobID     string
}

// ListJobs returns up to PageSize+1 jobs for the org, newest first; the
// extra row tells the caller whether more results exist.
func (s *Storage) ListJobs(ctx context.Context, orgID string, filter JobFilter) ([]model.Job, error) {
	query := `
		SELECT
			job_id, org_id, template_id, name,
			creation_field_values, assigned_to,
			interval_value, interval_unit, anchor_date,
			created_by, created_at
		FROM jobs
		WHERE org_id = $1
	`
	args := []interface{}{orgID}
	argIdx := 2

	if filter.TemplateID != "" {
		query += fmt.Sprintf(" AND template_id = $%d", argIdx)
		args = append(args, filter.TemplateID)
		argIdx++
	}

	if filter.AssignedTo != "" {
		query += fmt.Sprintf(" AND assigned_to = $%d", argIdx)
		args = append(args, filter.AssignedTo)
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, job_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.JobID)
		argIdx += 2
	}

	// Keyset order must match the cursor for stable pagination.
	query += " ORDER BY created_at DESC, job_id DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}
