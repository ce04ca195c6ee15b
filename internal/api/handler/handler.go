package handler

import (
	"log/slog"

	"github.com/tuanphm/compliance-be/internal/api/service"
	"github.com/tuanphm/compliance-be/internal/extraction"
)

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Logger      *slog.Logger
	Templates   *service.TemplateService
	Jobs        *service.JobService
	Executions  *service.ExecutionService
	Extractions *service.ExtractionService
	Documents   *service.DocumentService
	Logs        *service.LogService
	Improver    extraction.TextImprover
}

// Handlers groups all HTTP handlers of the API service.
type Handlers struct {
	logger      *slog.Logger
	templates   *service.TemplateService
	jobs        *service.JobService
	executions  *service.ExecutionService
	extractions *service.ExtractionService
	documents   *service.DocumentService
	logs        *service.LogService
	improver    extraction.TextImprover
}

// New creates the handler set.
func New(deps *Dependencies) *Handlers {
	return &Handlers{
		logger:      deps.Logger,
		templates:   deps.Templates,
		jobs:        deps.Jobs,
		executions:  deps.Executions,
		extractions: deps.Extractions,
		documents:   deps.Documents,
		logs:        deps.Logs,
		improver:    deps.Improver,
	}
}
