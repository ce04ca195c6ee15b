package model

import (
	"github.com/tuanphm/compliance-be/internal/api/domain"
)

// ToDomain converts a template row into the domain type.
func (t *JobTemplate) ToDomain() *domain.JobTemplate {
	return &domain.JobTemplate{
		ID:          t.TemplateID,
		OrgID:       t.OrgID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Fields:      t.Fields,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDomain converts a job row into the domain type.
func (j *Job) ToDomain() *domain.Job {
	return &domain.Job{
		ID:                  j.JobID,
		OrgID:               j.OrgID,
		TemplateID:          j.TemplateID,
		Name:                j.Name,
		CreationFieldValues: j.CreationFieldValues,
		AssignedTo:          j.AssignedTo,
		Cadence: domain.Cadence{
			IntervalValue: j.IntervalValue,
			IntervalUnit:  j.IntervalUnit,
			AnchorDate:    j.AnchorDate,
		},
		CreatedBy: j.CreatedBy,
		CreatedAt: j.CreatedAt,
	}
}

// ToDomain converts an execution row into the domain type.
func (e *JobExecution) ToDomain() domain.JobExecution {
	return domain.JobExecution{
		ID:                e.ExecutionID,
		OrgID:             e.OrgID,
		JobID:             e.JobID,
		ExecutedBy:        e.ExecutedBy,
		ExecutedAt:        e.ExecutedAt,
		ActionFieldValues: e.ActionFieldValues,
		Notes:             e.Notes,
	}
}

// ExecutionsToDomain converts a slice of execution rows.
func ExecutionsToDomain(rows []JobExecution) []domain.JobExecution {
	out := make([]domain.JobExecution, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
