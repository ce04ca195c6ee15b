package dto

import (
	"github.com/tuanphm/compliance-be/internal/api/domain"
)

// CadenceDTO is the recurrence cadence on the wire. AnchorDate uses the
// YYYY-MM-DD layout.
type CadenceDTO struct {
	IntervalValue int    `json:"interval_value"`
	IntervalUnit  string `json:"interval_unit"`
	AnchorDate    string `json:"anchor_date"`
}

// JobDraftDTO is one job to create, alone or inside a bulk batch.
type JobDraftDTO struct {
	Name                string         `json:"name"`
	AssignedTo          string         `json:"assigned_to"`
	Cadence             CadenceDTO     `json:"cadence"`
	CreationFieldValues map[string]any `json:"creation_field_values"`
}

type CreateJobRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	JobDraftDTO
}

type BulkCreateJobsRequest struct {
	TemplateID string        `json:"template_id" binding:"required"`
	Jobs       []JobDraftDTO `json:"jobs" binding:"required"`
}

type BulkCreateJobsResponse struct {
	TotalAttempted   int                 `json:"total_attempted"`
	TotalCreated     int                 `json:"total_created"`
	Created          []JobDTO            `json:"created"`
	Failed           []RowFailureDTO     `json:"failed"`
	ValidationErrors []domain.FieldError `json:"validation_errors,omitempty"`
}

type RowFailureDTO struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ListJobsRequest struct {
	TemplateID string `form:"template_id"`
	AssignedTo string `form:"assigned_to"`
	Status     string `form:"status"`
	PageSize   int    `form:"page_size"`
	Cursor     string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type JobDTO struct {
	JobID               string         `json:"job_id"`
	TemplateID          string         `json:"template_id"`
	Name                string         `json:"name"`
	CreationFieldValues map[string]any `json:"creation_field_values"`
	AssignedTo          string         `json:"assigned_to,omitempty"`
	Cadence             CadenceDTO     `json:"cadence"`
	Status              string         `json:"status,omitempty"`
	CreatedBy           string         `json:"created_by"`
	CreatedAt           string         `json:"created_at"`
}
