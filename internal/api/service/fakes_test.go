package service

import (
	"context"
	"time"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
	"github.com/tuanphm/compliance-be/internal/api/storage"
)

// In-memory store fakes shared by the service tests.

type fakeTemplateStore struct {
	templates map[string]*model.JobTemplate
}

func newFakeTemplateStore(templates ...*model.JobTemplate) *fakeTemplateStore {
	f := &fakeTemplateStore{templates: make(map[string]*model.JobTemplate)}
	for _, t := range templates {
		f.templates[t.TemplateID] = t
	}
	return f
}

func (f *fakeTemplateStore) CreateTemplate(_ context.Context, t *model.JobTemplate) error {
	f.templates[t.TemplateID] = t
	return nil
}

func (f *fakeTemplateStore) GetTemplateByID(_ context.Context, orgID, templateID string) (*model.JobTemplate, error) {
	t, ok := f.templates[templateID]
	if !ok || t.OrgID != orgID {
		return nil, domain.ErrTemplateNotFound
	}
	return t, nil
}

func (f *fakeTemplateStore) ListTemplates(_ context.Context, orgID, category string) ([]model.JobTemplate, error) {
	var out []model.JobTemplate
	for _, t := range f.templates {
		if t.OrgID != orgID {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

type fakeJobStore struct {
	jobs    map[string]*model.Job
	created []*model.Job
	listRes []model.Job

	// failOn injects an error for the nth CreateJob call, zero-based.
	failOn map[int]error
	calls  int
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*model.Job)}
}

func (f *fakeJobStore) CreateJob(_ context.Context, job *model.Job) error {
	idx := f.calls
	f.calls++
	if err := f.failOn[idx]; err != nil {
		return err
	}
	f.jobs[job.JobID] = job
	f.created = append(f.created, job)
	return nil
}

func (f *fakeJobStore) GetJobByID(_ context.Context, orgID, jobID string) (*model.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok || job.OrgID != orgID {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeJobStore) ListJobs(_ context.Context, _ string, _ storage.JobFilter) ([]model.Job, error) {
	return f.listRes, nil
}

type fakeExecutionStore struct {
	byJob map[string][]model.JobExecution
}

func newFakeExecutionStore() *fakeExecutionStore {
	return &fakeExecutionStore{byJob: make(map[string][]model.JobExecution)}
}

func (f *fakeExecutionStore) CreateExecution(_ context.Context, e *model.JobExecution) error {
	f.byJob[e.JobID] = append(f.byJob[e.JobID], *e)
	return nil
}

func (f *fakeExecutionStore) ListExecutionsByJob(_ context.Context, _ string, jobID string) ([]model.JobExecution, error) {
	return f.byJob[jobID], nil
}

type fakeLogStore struct {
	logs []*model.DailyLog

	// byDay enforces the one-entry-per-template-per-day constraint the
	// real table carries.
	byDay map[string]bool
}

func newFakeLogStore() *fakeLogStore {
	return &fakeLogStore{byDay: make(map[string]bool)}
}

func (f *fakeLogStore) CreateDailyLog(_ context.Context, l *model.DailyLog) error {
	key := l.OrgID + "|" + l.TemplateID + "|" + l.LogDate.Format("2006-01-02")
	if f.byDay[key] {
		return domain.ErrDuplicateLog
	}
	f.byDay[key] = true
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeLogStore) ListDailyLogs(_ context.Context, orgID, templateID string, from, to time.Time) ([]model.DailyLog, error) {
	var out []model.DailyLog
	for _, l := range f.logs {
		if l.OrgID != orgID || l.TemplateID != templateID {
			continue
		}
		if l.LogDate.Before(from) || l.LogDate.After(to) {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

type emittedEvent struct {
	name    string
	payload map[string]any
}

type fakeEvents struct {
	emitted []emittedEvent
}

func (f *fakeEvents) Emit(_ context.Context, event string, payload map[string]any) {
	f.emitted = append(f.emitted, emittedEvent{name: event, payload: payload})
}

func (f *fakeEvents) names() []string {
	out := make([]string, len(f.emitted))
	for i, e := range f.emitted {
		out[i] = e.name
	}
	return out
}

// inspectionTemplateRow is the template fixture used across the service
// tests: two creation fields (one required) and one required action field.
func inspectionTemplateRow(orgID string) *model.JobTemplate {
	return &model.JobTemplate{
		TemplateID: "tpl-1",
		OrgID:      orgID,
		Name:       "Fire Safety Inspection",
		Category:   "safety",
		Fields: model.TemplateFields{
			{FieldKey: "site", FieldLabel: "Site Name", FieldType: domain.FieldTypeText, FieldCategory: domain.FieldCategoryCreation, IsRequired: true, DisplayOrder: 1},
			{FieldKey: "capacity", FieldLabel: "Capacity", FieldType: domain.FieldTypeNumber, FieldCategory: domain.FieldCategoryCreation, DisplayOrder: 2},
			{FieldKey: "outcome", FieldLabel: "Outcome", FieldType: domain.FieldTypeText, FieldCategory: domain.FieldCategoryAction, IsRequired: true, DisplayOrder: 3},
		},
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func weeklyCadence(anchor time.Time) domain.Cadence {
	return domain.Cadence{
		IntervalValue: 1,
		IntervalUnit:  domain.IntervalUnitWeek,
		AnchorDate:    anchor,
	}
}
