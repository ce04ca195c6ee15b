package storage

import (
	"context"
	"fmt"

	"github.com/tuanphm/compliance-be/internal/api/model"
)

// CreateExecution appends one execution row. Executions are never updated or
// deleted.
func (s *Storage) CreateExecution(ctx context.Context, e *model.JobExecution) error {
	query := `
		INSERT INTO job_executions (
			execution_id, org_id, job_id, executed_by,
			executed_at, action_field_values, notes
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		e.ExecutionID,
		e.OrgID,
		e.JobID,
		e.ExecutedBy,
		e.ExecutedAt,
		e.ActionFieldValues,
		e.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create execution: %w", err)
	}

	return nil
}

// ListExecutionsByJob returns a job's executions, oldest first, within the
// org scope.
func (s *Storage) ListExecutionsByJob(ctx context.Context, orgID, jobID string) ([]model.JobExecution, error) {
	query := `
		SELECT
			execution_id, org_id, job_id, executed_by,
			executed_at, action_field_values, notes
		FROM job_executions
		WHERE org_id = $1 AND job_id = $2
		ORDER BY executed_at ASC, execution_id ASC
	`

	var executions []model.JobExecution
	if err := s.db.SelectContext(ctx, &executions, query, orgID, jobID); err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}

	return executions, nil
}
