package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
	"github.com/tuanphm/compliance-be/internal/api/storage"
)

// JobDraft is one job awaiting creation, either typed in directly or
// produced by the bulk extraction pipeline.
type JobDraft struct {
	Name                string
	AssignedTo          string
	Cadence             domain.Cadence
	CreationFieldValues map[string]any
}

// RowFailure attributes a persistence failure to its batch index.
type RowFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BulkResult reports the outcome of a bulk creation. Counts and per-index
// reasons are always populated; rows are never silently dropped.
type BulkResult struct {
	TotalAttempted int
	TotalCreated   int
	Created        []*domain.Job
	Failed         []RowFailure
}

// JobDetail is a job with its derived status and execution history.
type JobDetail struct {
	Job        *domain.Job
	Status     string
	Executions []domain.JobExecution
}

// JobService creates and reads jobs. Job rows are immutable after creation;
// lifecycle status is derived on every read.
type JobService struct {
	templates  TemplateStore
	jobs       JobStore
	executions ExecutionStore
	events     Events
	logger     *slog.Logger
	nowFn      func() time.Time
}

// NewJobService wires a JobService.
func NewJobService(templates TemplateStore, jobs JobStore, executions ExecutionStore, events Events, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		templates:  templates,
		jobs:       jobs,
		executions: executions,
		events:     events,
		logger:     logger,
		nowFn:      time.Now,
	}
}

// Create validates and persists a single job. A validation failure is
// returned as a *domain.ValidationError; a persistence failure is fatal for
// the operation.
func (s *JobService) Create(ctx context.Context, tenant domain.Tenant, templateID string, draft JobDraft) (*domain.Job, error) {
	tmpl, err := s.templates.GetTemplateByID(ctx, tenant.OrgID, templateID)
	if err != nil {
		return nil, err
	}
	template := tmpl.ToDomain()

	normalized, fieldErrs := validateDraft(template, draft, 0)
	if len(fieldErrs) > 0 {
		return nil, domain.NewValidationError(fieldErrs)
	}

	row := s.newJobRow(tenant, template, draft, normalized)
	if err := s.jobs.CreateJob(ctx, row); err != nil {
		return nil, err
	}

	job := row.ToDomain()
	if s.events != nil {
		s.events.Emit(ctx, EventJobCreated, map[string]any{
			"job_id":      job.ID,
			"org_id":      job.OrgID,
			"template_id": job.TemplateID,
			"created_by":  tenant.UserID,
		})
	}

	return job, nil
}

// CreateBulk creates a batch of jobs in two stages.
//
// Stage one is all-or-nothing: every draft's required creation fields must
// carry a non-empty, type-valid value and its cadence must be well formed.
// Any miss rejects the whole batch with a per-index error list and nothing
// is persisted.
//
// Stage two attempts each row independently, one insert per row. A row
// failing on a constraint does not abort the batch; it is reported in
// Failed with its index while the other rows proceed.
func (s *JobService) CreateBulk(ctx context.Context, tenant domain.Tenant, templateID string, drafts []JobDraft) (BulkResult, error) {
	result := BulkResult{TotalAttempted: len(drafts)}

	tmpl, err := s.templates.GetTemplateByID(ctx, tenant.OrgID, templateID)
	if err != nil {
		return result, err
	}
	template := tmpl.ToDomain()

	normalized := make([]map[string]any, len(drafts))
	var allErrs []domain.FieldError
	for i, draft := range drafts {
		values, fieldErrs := validateDraft(template, draft, i)
		if len(fieldErrs) > 0 {
			allErrs = append(allErrs, fieldErrs...)
			continue
		}
		normalized[i] = values
	}
	if len(allErrs) > 0 {
		return result, domain.NewValidationError(allErrs)
	}

	for i, draft := range drafts {
		row := s.newJobRow(tenant, template, draft, normalized[i])
		if err := s.jobs.CreateJob(ctx, row); err != nil {
			reason := storage.ConstraintMessage(err)
			if reason == "" {
				reason = "failed to save job"
			}
			s.logger.Error("Bulk job insert failed",
				slog.Int("index", i),
				slog.String("org_id", tenant.OrgID),
				slog.String("template_id", templateID),
				slog.Any("error", err),
			)
			result.Failed = append(result.Failed, RowFailure{Index: i, Reason: reason})
			continue
		}
		result.Created = append(result.Created, row.ToDomain())
	}
	result.TotalCreated = len(result.Created)

	s.logger.Info("Bulk job creation finished",
		slog.String("org_id", tenant.OrgID),
		slog.String("template_id", templateID),
		slog.Int("attempted", result.TotalAttempted),
		slog.Int("created", result.TotalCreated),
		slog.Int("failed", len(result.Failed)),
	)

	if s.events != nil {
		s.events.Emit(ctx, EventJobsBulkCreated, map[string]any{
			"org_id":      tenant.OrgID,
			"template_id": templateID,
			"attempted":   result.TotalAttempted,
			"created":     result.TotalCreated,
		})
	}

	return result, nil
}

// Get returns a job with its execution history and derived status.
func (s *JobService) Get(ctx context.Context, tenant domain.Tenant, jobID string) (*JobDetail, error) {
	row, err := s.jobs.GetJobByID(ctx, tenant.OrgID, jobID)
	if err != nil {
		return nil, err
	}

	execRows, err := s.executions.ListExecutionsByJob(ctx, tenant.OrgID, jobID)
	if err != nil {
		return nil, err
	}

	job := row.ToDomain()
	executions := model.ExecutionsToDomain(execRows)
	return &JobDetail{
		Job:        job,
		Status:     domain.DeriveStatus(job, executions, s.nowFn()),
		Executions: executions,
	}, nil
}

// List returns a page of jobs with derived statuses. When statusFilter is
// set, only jobs currently in that state are returned; filtering happens
// after derivation since status is never stored. The returned cursor is
// non-nil when more pages exist and points past the last scanned row, so
// pagination stays stable even when a status filter thins the page.
func (s *JobService) List(ctx context.Context, tenant domain.Tenant, filter storage.JobFilter, statusFilter string) ([]JobDetail, *storage.JobCursor, error) {
	rows, err := s.jobs.ListJobs(ctx, tenant.OrgID, filter)
	if err != nil {
		return nil, nil, err
	}

	var next *storage.JobCursor
	if len(rows) > filter.PageSize {
		rows = rows[:filter.PageSize]
		last := rows[len(rows)-1]
		next = &storage.JobCursor{CreatedAt: last.CreatedAt, JobID: last.JobID}
	}

	now := s.nowFn()
	details := make([]JobDetail, 0, len(rows))
	for i := range rows {
		job := rows[i].ToDomain()
		execRows, err := s.executions.ListExecutionsByJob(ctx, tenant.OrgID, job.ID)
		if err != nil {
			return nil, nil, err
		}
		executions := model.ExecutionsToDomain(execRows)
		status := domain.DeriveStatus(job, executions, now)
		if statusFilter != "" && status != statusFilter {
			continue
		}
		details = append(details, JobDetail{Job: job, Status: status, Executions: executions})
	}

	return details, next, nil
}

// newJobRow builds the row for one validated draft.
func (s *JobService) newJobRow(tenant domain.Tenant, template *domain.JobTemplate, draft JobDraft, values map[string]any) *model.Job {
	name := draft.Name
	if name == "" {
		name = template.Name
	}
	return &model.Job{
		JobID:               uuid.New().String(),
		OrgID:               tenant.OrgID,
		TemplateID:          template.ID,
		Name:                name,
		CreationFieldValues: values,
		AssignedTo:          draft.AssignedTo,
		IntervalValue:       draft.Cadence.IntervalValue,
		IntervalUnit:        draft.Cadence.IntervalUnit,
		AnchorDate:          draft.Cadence.AnchorDate,
		CreatedBy:           tenant.UserID,
		CreatedAt:           s.nowFn(),
	}
}

// validateDraft checks one draft against the template's creation fields and
// its cadence, tagging every error with the draft's batch index.
func validateDraft(template *domain.JobTemplate, draft JobDraft, index int) (map[string]any, []domain.FieldError) {
	values, fieldErrs := domain.ValidateFieldValues(template.Fields, domain.FieldCategoryCreation, draft.CreationFieldValues)

	if err := draft.Cadence.Validate(); err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{
			FieldKey: "cadence",
			Message:  fmt.Sprintf("invalid cadence: %v", err),
		})
	}

	for i := range fieldErrs {
		fieldErrs[i].Index = index
	}
	return values, fieldErrs
}
