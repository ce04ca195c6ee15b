package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/dto"
)

// ImproveText handles POST /api/v1/ai/improve-text
func (h *Handlers) ImproveText(c *gin.Context) {
	var req dto.ImproveTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	improved, err := h.improver.ImproveText(c.Request.Context(), req.Text, req.Instruction)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImproveTextResponse{ImprovedText: improved})
}
