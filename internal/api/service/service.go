// Package service implements the domain operations behind the HTTP surface:
// template management, single and bulk job creation, action execution, daily
// logs, and document handling. Services accept narrow store interfaces so
// persistence can be faked in tests.
package service

import (
	"context"
	"time"

	"github.com/tuanphm/compliance-be/internal/api/model"
	"github.com/tuanphm/compliance-be/internal/api/storage"
)

// TemplateStore is the persistence surface for job templates.
type TemplateStore interface {
	CreateTemplate(ctx context.Context, t *model.JobTemplate) error
	GetTemplateByID(ctx context.Context, orgID, templateID string) (*model.JobTemplate, error)
	ListTemplates(ctx context.Context, orgID, category string) ([]model.JobTemplate, error)
}

// JobStore is the persistence surface for jobs.
type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, orgID, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, orgID string, filter storage.JobFilter) ([]model.Job, error)
}

// ExecutionStore is the persistence surface for job executions.
type ExecutionStore interface {
	CreateExecution(ctx context.Context, e *model.JobExecution) error
	ListExecutionsByJob(ctx context.Context, orgID, jobID string) ([]model.JobExecution, error)
}

// DocumentStore is the persistence surface for document metadata.
type DocumentStore interface {
	CreateDocument(ctx context.Context, d *model.Document) error
	GetDocumentByID(ctx context.Context, orgID, documentID string) (*model.Document, error)
	ListDocuments(ctx context.Context, orgID, category string) ([]model.Document, error)
	DeleteDocument(ctx context.Context, orgID, documentID string) error
}

// LogStore is the persistence surface for daily logs.
type LogStore interface {
	CreateDailyLog(ctx context.Context, l *model.DailyLog) error
	ListDailyLogs(ctx context.Context, orgID, templateID string, from, to time.Time) ([]model.DailyLog, error)
}

// Events publishes domain events at write boundaries. Publishing is
// fire-and-forget; failures are logged by the implementation, never
// propagated into the request.
type Events interface {
	Emit(ctx context.Context, event string, payload map[string]any)
}

// Domain event names.
const (
	EventJobCreated       = "job.created"
	EventJobsBulkCreated  = "job.bulk_created"
	EventExecutionRecord  = "job.execution_recorded"
	EventDocumentUploaded = "document.uploaded"
)
