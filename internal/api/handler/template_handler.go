package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/dto"
)

// CreateTemplate handles POST /api/v1/templates
func (h *Handlers) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	template, err := h.templates.Create(c.Request.Context(), tenantFrom(c), &domain.JobTemplate{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Fields:      req.Fields,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, templateToDTO(template))
}

// GetTemplate handles GET /api/v1/templates/:template_id
func (h *Handlers) GetTemplate(c *gin.Context) {
	template, err := h.templates.Get(c.Request.Context(), tenantFrom(c), c.Param("template_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, templateToDTO(template))
}

// ListTemplates handles GET /api/v1/templates
func (h *Handlers) ListTemplates(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context(), tenantFrom(c), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := dto.ListTemplatesResponse{Templates: make([]dto.TemplateDTO, len(templates))}
	for i, t := range templates {
		resp.Templates[i] = templateToDTO(t)
	}

	c.JSON(http.StatusOK, resp)
}

func templateToDTO(t *domain.JobTemplate) dto.TemplateDTO {
	return dto.TemplateDTO{
		TemplateID:  t.ID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Fields:      t.Fields,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}
