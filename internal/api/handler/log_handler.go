package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/dto"
	"github.com/tuanphm/compliance-be/internal/api/model"
	"github.com/tuanphm/compliance-be/internal/api/service"
)

// CreateLog handles POST /api/v1/logs
func (h *Handlers) CreateLog(c *gin.Context) {
	var req dto.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	logDate, err := time.Parse(domain.DateLayout, req.LogDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("log_date must use the %s format", domain.DateLayout)})
		return
	}

	entry, err := h.logs.Create(c.Request.Context(), tenantFrom(c), service.LogInput{
		TemplateID:  req.TemplateID,
		LogDate:     logDate,
		FieldValues: req.FieldValues,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, logToDTO(entry))
}

// ListLogs handles GET /api/v1/logs
func (h *Handlers) ListLogs(c *gin.Context) {
	var req dto.ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	var from, to time.Time
	var err error
	if req.From != "" {
		if from, err = time.Parse(domain.DateLayout, req.From); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("from must use the %s format", domain.DateLayout)})
			return
		}
	}
	if req.To != "" {
		if to, err = time.Parse(domain.DateLayout, req.To); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("to must use the %s format", domain.DateLayout)})
			return
		}
	}

	logs, err := h.logs.List(c.Request.Context(), tenantFrom(c), req.TemplateID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := dto.ListLogsResponse{Logs: make([]dto.DailyLogDTO, len(logs))}
	for i := range logs {
		resp.Logs[i] = logToDTO(&logs[i])
	}

	c.JSON(http.StatusOK, resp)
}

func logToDTO(l *model.DailyLog) dto.DailyLogDTO {
	return dto.DailyLogDTO{
		LogID:       l.LogID,
		TemplateID:  l.TemplateID,
		LogDate:     l.LogDate.Format(domain.DateLayout),
		FieldValues: l.FieldValues,
		RecordedBy:  l.RecordedBy,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}
