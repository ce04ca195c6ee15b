package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/dto"
	"github.com/tuanphm/compliance-be/internal/extraction"
)

// maxUploadBytes caps uploaded document size (20 MiB).
const maxUploadBytes = 20 << 20

// ExtractDocument handles POST /api/v1/extractions. Multipart form: "file"
// plus a "template_id" field naming the target template. Returns the
// extracted rows, suggested mapping, and validation report; nothing is
// persisted.
func (h *Handlers) ExtractDocument(c *gin.Context) {
	templateID := c.PostForm("template_id")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template_id is required"})
		return
	}

	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	preview, err := h.extractions.Preview(c.Request.Context(), tenantFrom(c), templateID, upload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ApplyMapping handles POST /api/v1/extractions/apply. The client sends the
// reviewed mapping back together with the extracted columns and rows and
// receives creation-ready job drafts.
func (h *Handlers) ApplyMapping(c *gin.Context) {
	var req dto.ApplyMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	jobs, err := h.extractions.ApplyMapping(c.Request.Context(), tenantFrom(c), req.TemplateID, req.Columns, req.Rows, req.Mapping)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplyMappingResponse{Jobs: jobs})
}

// ExtractStoredDocument handles POST /api/v1/documents/:document_id/extract
// with a template_id query parameter, running the pipeline against an
// already-registered document.
func (h *Handlers) ExtractStoredDocument(c *gin.Context) {
	templateID := c.Query("template_id")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template_id is required"})
		return
	}

	tenant := tenantFrom(c)
	upload, err := h.documents.AsUpload(c.Request.Context(), tenant, c.Param("document_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	preview, err := h.extractions.Preview(c.Request.Context(), tenant, templateID, upload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// readUpload pulls the "file" part out of a multipart request.
func (h *Handlers) readUpload(c *gin.Context) (extraction.Upload, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return extraction.Upload{}, false
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
		return extraction.Upload{}, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return extraction.Upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return extraction.Upload{}, false
	}

	return extraction.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
