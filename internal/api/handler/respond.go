package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/blob"
	"github.com/tuanphm/compliance-be/internal/extraction"
)

// TenantKey is the gin context key under which the middleware stores the
// resolved tenant.
const TenantKey = "tenant"

// tenantFrom returns the tenant resolved by the middleware. Routes behind
// the tenant middleware always have one.
func tenantFrom(c *gin.Context) domain.Tenant {
	v, _ := c.Get(TenantKey)
	tenant, _ := v.(domain.Tenant)
	return tenant
}

// respondError maps domain errors onto HTTP responses. Expected failures
// keep their structure; unexpected ones are logged with their cause and
// surfaced as a generic message.
func (h *Handlers) respondError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Validation failed",
			"validation_errors": ve.Errors,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})

	case errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, blob.ErrBlobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrDuplicateLog),
		errors.Is(err, domain.ErrAlreadyExecuted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, extraction.ErrNoTabularData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrExternalService):
		// The original cause is logged, never exposed.
		h.logger.Error("External service call failed", slog.Any("error", err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "External service is unavailable, please try again later"})

	default:
		h.logger.Error("Unexpected error", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
