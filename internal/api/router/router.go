package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanphm/compliance-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "compliance-api-service",
		})
	})

	h := handler.New(deps)

	// All API routes require a resolved tenant.
	v1 := r.Group("/api/v1")
	v1.Use(TenantMiddleware(deps.Logger))
	{
		templates := v1.Group("/templates")
		{
			templates.POST("", h.CreateTemplate)
			templates.GET("", h.ListTemplates)
			templates.GET("/:template_id", h.GetTemplate)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", h.CreateJob)
			jobs.GET("", h.ListJobs)
			jobs.POST("/bulk", h.BulkCreateJobs)
			jobs.GET("/:job_id", h.GetJob)
			jobs.POST("/:job_id/executions", h.ExecuteJob)
			jobs.GET("/:job_id/executions", h.ListExecutions)
		}

		extractions := v1.Group("/extractions")
		{
			extractions.POST("", h.ExtractDocument)
			extractions.POST("/apply", h.ApplyMapping)
		}

		documents := v1.Group("/documents")
		{
			documents.POST("", h.UploadDocument)
			documents.GET("", h.ListDocuments)
			documents.GET("/:document_id", h.GetDocument)
			documents.GET("/:document_id/download", h.DownloadDocument)
			documents.DELETE("/:document_id", h.DeleteDocument)
			documents.POST("/:document_id/extract", h.ExtractStoredDocument)
		}

		logs := v1.Group("/logs")
		{
			logs.POST("", h.CreateLog)
			logs.GET("", h.ListLogs)
		}

		ai := v1.Group("/ai")
		{
			ai.POST("/improve-text", h.ImproveText)
		}
	}

	return r
}
