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

// UploadDocument handles POST /api/v1/documents. Multipart form: "file"
// plus "name", optional "category" and "expires_at" (YYYY-MM-DD).
func (h *Handlers) UploadDocument(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = upload.Filename
	}

	var expiresAt *time.Time
	if raw := c.PostForm("expires_at"); raw != "" {
		parsed, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("expires_at must use the %s format", domain.DateLayout)})
			return
		}
		expiresAt = &parsed
	}

	doc, err := h.documents.Upload(c.Request.Context(), tenantFrom(c), service.DocumentUpload{
		Name:        name,
		Category:    c.PostForm("category"),
		ContentType: upload.ContentType,
		ExpiresAt:   expiresAt,
		Data:        upload.Data,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, documentToDTO(doc))
}

// GetDocument handles GET /api/v1/documents/:document_id
func (h *Handlers) GetDocument(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), tenantFrom(c), c.Param("document_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, documentToDTO(doc))
}

// ListDocuments handles GET /api/v1/documents
func (h *Handlers) ListDocuments(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context(), tenantFrom(c), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := dto.ListDocumentsResponse{Documents: make([]dto.DocumentDTO, len(docs))}
	for i := range docs {
		resp.Documents[i] = documentToDTO(&docs[i])
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadDocument handles GET /api/v1/documents/:document_id/download
func (h *Handlers) DownloadDocument(c *gin.Context) {
	doc, data, err := h.documents.Download(c.Request.Context(), tenantFrom(c), c.Param("document_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, contentType, data)
}

// DeleteDocument handles DELETE /api/v1/documents/:document_id
func (h *Handlers) DeleteDocument(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), tenantFrom(c), c.Param("document_id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func documentToDTO(d *model.Document) dto.DocumentDTO {
	out := dto.DocumentDTO{
		DocumentID:  d.DocumentID,
		Name:        d.Name,
		Category:    d.Category,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedBy:  d.UploadedBy,
		UploadedAt:  d.UploadedAt.Format(time.RFC3339),
	}
	if d.ExpiresAt != nil {
		out.ExpiresAt = d.ExpiresAt.Format(domain.DateLayout)
	}
	return out
}
