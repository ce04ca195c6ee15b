package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/dto"
	"github.com/tuanphm/compliance-be/internal/api/service"
	"github.com/tuanphm/compliance-be/internal/api/storage"
)

// CreateJob handles POST /api/v1/jobs
func (h *Handlers) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	draft, err := draftFromDTO(req.JobDraftDTO)
	if err != nil {
		h.respondError(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), tenantFrom(c), req.TemplateID, draft)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, jobToDTO(job, ""))
}

// BulkCreateJobs handles POST /api/v1/jobs/bulk
func (h *Handlers) BulkCreateJobs(c *gin.Context) {
	var req dto.BulkCreateJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Jobs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobs must not be empty"})
		return
	}

	drafts := make([]service.JobDraft, len(req.Jobs))
	for i, d := range req.Jobs {
		draft, err := draftFromDTO(d)
		if err != nil {
			h.respondError(c, err)
			return
		}
		drafts[i] = draft
	}

	result, err := h.jobs.CreateBulk(c.Request.Context(), tenantFrom(c), req.TemplateID, drafts)
	if err != nil {
		// A pre-validation failure still reports the attempted count; the
		// batch is rejected as a whole and nothing was persisted.
		if ve, ok := domain.AsValidationError(err); ok {
			c.JSON(http.StatusUnprocessableEntity, dto.BulkCreateJobsResponse{
				TotalAttempted:   result.TotalAttempted,
				TotalCreated:     0,
				Created:          []dto.JobDTO{},
				Failed:           []dto.RowFailureDTO{},
				ValidationErrors: ve.Errors,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	resp := dto.BulkCreateJobsResponse{
		TotalAttempted: result.TotalAttempted,
		TotalCreated:   result.TotalCreated,
		Created:        make([]dto.JobDTO, len(result.Created)),
		Failed:         make([]dto.RowFailureDTO, len(result.Failed)),
	}
	for i, job := range result.Created {
		resp.Created[i] = jobToDTO(job, "")
	}
	for i, failure := range result.Failed {
		resp.Failed[i] = dto.RowFailureDTO(failure)
	}

	c.JSON(http.StatusOK, resp)
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *Handlers) GetJob(c *gin.Context) {
	detail, err := h.jobs.Get(c.Request.Context(), tenantFrom(c), c.Param("job_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	executions := make([]dto.ExecutionDTO, len(detail.Executions))
	for i, e := range detail.Executions {
		executions[i] = executionToDTO(e)
	}

	c.JSON(http.StatusOK, gin.H{
		"job":        jobToDTO(detail.Job, detail.Status),
		"executions": executions,
	})
}

// ListJobs handles GET /api/v1/jobs
func (h *Handlers) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
		return
	}

	filter := storage.JobFilter{
		TemplateID: req.TemplateID,
		AssignedTo: req.AssignedTo,
		PageSize:   req.PageSize,
		Cursor:     cursor,
	}

	details, next, err := h.jobs.List(c.Request.Context(), tenantFrom(c), filter, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := dto.ListJobsResponse{Jobs: make([]dto.JobDTO, len(details))}
	for i, detail := range details {
		resp.Jobs[i] = jobToDTO(detail.Job, detail.Status)
	}
	if next != nil {
		resp.NextCursor = EncodeJobCursor(next)
	}

	c.JSON(http.StatusOK, resp)
}

// draftFromDTO parses the wire draft, turning a malformed anchor date into a
// field-level validation error.
func draftFromDTO(d dto.JobDraftDTO) (service.JobDraft, error) {
	var anchor time.Time
	if d.Cadence.AnchorDate != "" {
		parsed, err := time.Parse(domain.DateLayout, d.Cadence.AnchorDate)
		if err != nil {
			return service.JobDraft{}, domain.NewValidationError([]domain.FieldError{{
				FieldKey: "cadence",
				Message:  fmt.Sprintf("anchor date must use the %s format", domain.DateLayout),
			}})
		}
		anchor = parsed
	}

	return service.JobDraft{
		Name:       d.Name,
		AssignedTo: d.AssignedTo,
		Cadence: domain.Cadence{
			IntervalValue: d.Cadence.IntervalValue,
			IntervalUnit:  d.Cadence.IntervalUnit,
			AnchorDate:    anchor,
		},
		CreationFieldValues: d.CreationFieldValues,
	}, nil
}

func jobToDTO(job *domain.Job, status string) dto.JobDTO {
	return dto.JobDTO{
		JobID:               job.ID,
		TemplateID:          job.TemplateID,
		Name:                job.Name,
		CreationFieldValues: job.CreationFieldValues,
		AssignedTo:          job.AssignedTo,
		Cadence: dto.CadenceDTO{
			IntervalValue: job.Cadence.IntervalValue,
			IntervalUnit:  job.Cadence.IntervalUnit,
			AnchorDate:    job.Cadence.AnchorDate.Format(domain.DateLayout),
		},
		Status:    status,
		CreatedBy: job.CreatedBy,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
	}
}
