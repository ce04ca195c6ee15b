package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// ExecuteInput carries the action-time data for one execution.
type ExecuteInput struct {
	ActionFieldValues map[string]any
	Notes             string
}

// ExecutionService records completion events against jobs. The job row is
// never touched; a job reads as COMPLETED purely through status derivation
// once an execution lands in the current window.
type ExecutionService struct {
	templates  TemplateStore
	jobs       JobStore
	executions ExecutionStore
	events     Events
	logger     *slog.Logger

	// allowRework permits a second execution inside an already-completed
	// window, preserving an audit trail of redone work. When false such
	// executions are rejected.
	allowRework bool
	nowFn       func() time.Time
}

// NewExecutionService wires an ExecutionService.
func NewExecutionService(templates TemplateStore, jobs JobStore, executions ExecutionStore, events Events, allowRework bool, logger *slog.Logger) *ExecutionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecutionService{
		templates:   templates,
		jobs:        jobs,
		executions:  executions,
		events:      events,
		logger:      logger,
		allowRework: allowRework,
		nowFn:       time.Now,
	}
}

// Execute validates the required action fields and appends one execution.
// Validation failures are returned as a *domain.ValidationError with no
// partial write.
func (s *ExecutionService) Execute(ctx context.Context, tenant domain.Tenant, jobID string, input ExecuteInput) (domain.JobExecution, error) {
	jobRow, err := s.jobs.GetJobByID(ctx, tenant.OrgID, jobID)
	if err != nil {
		return domain.JobExecution{}, err
	}
	job := jobRow.ToDomain()

	tmpl, err := s.templates.GetTemplateByID(ctx, tenant.OrgID, job.TemplateID)
	if err != nil {
		return domain.JobExecution{}, err
	}
	template := tmpl.ToDomain()

	values, fieldErrs := domain.ValidateFieldValues(template.Fields, domain.FieldCategoryAction, input.ActionFieldValues)
	if len(fieldErrs) > 0 {
		return domain.JobExecution{}, domain.NewValidationError(fieldErrs)
	}

	now := s.nowFn()
	if !s.allowRework {
		execRows, err := s.executions.ListExecutionsByJob(ctx, tenant.OrgID, jobID)
		if err != nil {
			return domain.JobExecution{}, err
		}
		if domain.DeriveStatus(job, model.ExecutionsToDomain(execRows), now) == domain.StatusCompleted {
			return domain.JobExecution{}, domain.ErrAlreadyExecuted
		}
	}

	row := &model.JobExecution{
		ExecutionID:       uuid.New().String(),
		OrgID:             tenant.OrgID,
		JobID:             jobID,
		ExecutedBy:        tenant.UserID,
		ExecutedAt:        now,
		ActionFieldValues: values,
		Notes:             input.Notes,
	}
	if err := s.executions.CreateExecution(ctx, row); err != nil {
		return domain.JobExecution{}, err
	}

	s.logger.Info("Job execution recorded",
		slog.String("org_id", tenant.OrgID),
		slog.String("job_id", jobID),
		slog.String("execution_id", row.ExecutionID),
		slog.String("executed_by", tenant.UserID),
	)

	if s.events != nil {
		s.events.Emit(ctx, EventExecutionRecord, map[string]any{
			"org_id":       tenant.OrgID,
			"job_id":       jobID,
			"execution_id": row.ExecutionID,
			"executed_by":  tenant.UserID,
		})
	}

	return row.ToDomain(), nil
}

// History returns a job's executions, oldest first.
func (s *ExecutionService) History(ctx context.Context, tenant domain.Tenant, jobID string) ([]domain.JobExecution, error) {
	if _, err := s.jobs.GetJobByID(ctx, tenant.OrgID, jobID); err != nil {
		return nil, err
	}
	rows, err := s.executions.ListExecutionsByJob(ctx, tenant.OrgID, jobID)
	if err != nil {
		return nil, err
	}
	return model.ExecutionsToDomain(rows), nil
}
