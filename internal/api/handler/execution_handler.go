package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/dto"
	"github.com/tuanphm/compliance-be/internal/api/service"
)

// ExecuteJob handles POST /api/v1/jobs/:job_id/executions
func (h *Handlers) ExecuteJob(c *gin.Context) {
	var req dto.ExecuteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	execution, err := h.executions.Execute(c.Request.Context(), tenantFrom(c), c.Param("job_id"), service.ExecuteInput{
		ActionFieldValues: req.ActionFieldValues,
		Notes:             req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, executionToDTO(execution))
}

// ListExecutions handles GET /api/v1/jobs/:job_id/executions
func (h *Handlers) ListExecutions(c *gin.Context) {
	executions, err := h.executions.History(c.Request.Context(), tenantFrom(c), c.Param("job_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := dto.ListExecutionsResponse{Executions: make([]dto.ExecutionDTO, len(executions))}
	for i, e := range executions {
		resp.Executions[i] = executionToDTO(e)
	}

	c.JSON(http.StatusOK, resp)
}

func executionToDTO(e domain.JobExecution) dto.ExecutionDTO {
	return dto.ExecutionDTO{
		ExecutionID:       e.ID,
		JobID:             e.JobID,
		ExecutedBy:        e.ExecutedBy,
		ExecutedAt:        e.ExecutedAt.Format(time.RFC3339),
		ActionFieldValues: e.ActionFieldValues,
		Notes:             e.Notes,
	}
}
