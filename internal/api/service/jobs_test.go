package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
	"github.com/tuanphm/compliance-be/internal/api/storage"
)

var testTenant = domain.Tenant{OrgID: "org-1", UserID: "user-1"}

func newJobServiceForTest(t *testing.T) (*JobService, *fakeJobStore, *fakeExecutionStore, *fakeEvents) {
	t.Helper()
	templates := newFakeTemplateStore(inspectionTemplateRow(testTenant.OrgID))
	jobs := newFakeJobStore()
	executions := newFakeExecutionStore()
	events := &fakeEvents{}
	svc := NewJobService(templates, jobs, executions, events, nil)
	return svc, jobs, executions, events
}

func validDraft(anchor time.Time) JobDraft {
	return JobDraft{
		AssignedTo: "user-2",
		Cadence:    weeklyCadence(anchor),
		CreationFieldValues: map[string]any{
			"site":     "Plant A",
			"capacity": "250",
		},
	}
}

func TestJobService_Create(t *testing.T) {
	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run("valid draft is persisted with normalized values", func(t *testing.T) {
		svc, jobs, _, events := newJobServiceForTest(t)

		job, err := svc.Create(context.Background(), testTenant, "tpl-1", validDraft(anchor))

		require.NoError(t, err)
		require.Len(t, jobs.created, 1)
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, testTenant.OrgID, job.OrgID)
		assert.Equal(t, "tpl-1", job.TemplateID)
		// Name defaults to the template name when the draft leaves it blank.
		assert.Equal(t, "Fire Safety Inspection", job.Name)
		assert.Equal(t, float64(250), job.CreationFieldValues["capacity"])
		assert.Equal(t, testTenant.UserID, job.CreatedBy)
		assert.Equal(t, []string{EventJobCreated}, events.names())
	})

	t.Run("explicit name is kept", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest(t)
		draft := validDraft(anchor)
		draft.Name = "Q1 audit"

		job, err := svc.Create(context.Background(), testTenant, "tpl-1", draft)

		require.NoError(t, err)
		assert.Equal(t, "Q1 audit", job.Name)
	})

	t.Run("missing required field rejects without persisting", func(t *testing.T) {
		svc, jobs, _, events := newJobServiceForTest(t)
		draft := validDraft(anchor)
		delete(draft.CreationFieldValues, "site")

		_, err := svc.Create(context.Background(), testTenant, "tpl-1", draft)

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, "Site Name is required", verr.Errors[0].Message)
		assert.Empty(t, jobs.created)
		assert.Empty(t, events.emitted)
	})

	t.Run("invalid cadence rejects", func(t *testing.T) {
		svc, jobs, _, _ := newJobServiceForTest(t)
		draft := validDraft(anchor)
		draft.Cadence.IntervalValue = 0

		_, err := svc.Create(context.Background(), testTenant, "tpl-1", draft)

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "cadence", verr.Errors[0].FieldKey)
		assert.Empty(t, jobs.created)
	})

	t.Run("unknown template", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest(t)

		_, err := svc.Create(context.Background(), testTenant, "tpl-missing", validDraft(anchor))

		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})

	t.Run("template from another org is not visible", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest(t)
		other := domain.Tenant{OrgID: "org-2", UserID: "user-9"}

		_, err := svc.Create(context.Background(), other, "tpl-1", validDraft(anchor))

		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})
}

func TestJobService_CreateBulk(t *testing.T) {
	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	drafts := func(n int) []JobDraft {
		out := make([]JobDraft, n)
		for i := range out {
			out[i] = validDraft(anchor)
			out[i].CreationFieldValues = map[string]any{
				"site":     "Plant A",
				"capacity": "250",
			}
		}
		return out
	}

	t.Run("all valid rows are created", func(t *testing.T) {
		svc, jobs, _, events := newJobServiceForTest(t)

		result, err := svc.CreateBulk(context.Background(), testTenant, "tpl-1", drafts(3))

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalAttempted)
		assert.Equal(t, 3, result.TotalCreated)
		assert.Empty(t, result.Failed)
		assert.Len(t, jobs.created, 3)
		assert.Equal(t, []string{EventJobsBulkCreated}, events.names())
	})

	t.Run("one invalid row rejects the whole batch", func(t *testing.T) {
		svc, jobs, _, events := newJobServiceForTest(t)
		batch := drafts(5)
		delete(batch[2].CreationFieldValues, "site")

		result, err := svc.CreateBulk(context.Background(), testTenant, "tpl-1", batch)

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, 2, verr.Errors[0].Index)
		assert.Equal(t, "Site Name is required", verr.Errors[0].Message)

		// Nothing persisted, nothing published.
		assert.Equal(t, 5, result.TotalAttempted)
		assert.Equal(t, 0, result.TotalCreated)
		assert.Empty(t, jobs.created)
		assert.Empty(t, events.emitted)
	})

	t.Run("errors accumulate across invalid rows", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest(t)
		batch := drafts(4)
		delete(batch[0].CreationFieldValues, "site")
		batch[3].CreationFieldValues["capacity"] = "lots"

		_, err := svc.CreateBulk(context.Background(), testTenant, "tpl-1", batch)

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.Len(t, verr.Errors, 2)
		assert.Equal(t, 0, verr.Errors[0].Index)
		assert.Equal(t, 3, verr.Errors[1].Index)
	})

	t.Run("constraint failure on one row does not abort the batch", func(t *testing.T) {
		svc, jobs, _, _ := newJobServiceForTest(t)
		jobs.failOn = map[int]error{3: &pq.Error{Code: "23505"}}

		result, err := svc.CreateBulk(context.Background(), testTenant, "tpl-1", drafts(5))

		require.NoError(t, err)
		assert.Equal(t, 5, result.TotalAttempted)
		assert.Equal(t, 4, result.TotalCreated)
		assert.Len(t, jobs.created, 4)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, 3, result.Failed[0].Index)
		assert.Equal(t, "a record with the same unique value already exists", result.Failed[0].Reason)
	})

	t.Run("unrecognized insert failure gets a generic reason", func(t *testing.T) {
		svc, jobs, _, _ := newJobServiceForTest(t)
		jobs.failOn = map[int]error{1: errors.New("connection reset")}

		result, err := svc.CreateBulk(context.Background(), testTenant, "tpl-1", drafts(2))

		require.NoError(t, err)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, 1, result.Failed[0].Index)
		assert.Equal(t, "failed to save job", result.Failed[0].Reason)
	})

	t.Run("empty batch", func(t *testing.T) {
		svc, jobs, _, _ := newJobServiceForTest(t)

		result, err := svc.CreateBulk(context.Background(), testTenant, "tpl-1", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalAttempted)
		assert.Equal(t, 0, result.TotalCreated)
		assert.Empty(t, jobs.created)
	})
}

func TestJobService_Get(t *testing.T) {
	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	svc, _, executions, _ := newJobServiceForTest(t)
	svc.nowFn = func() time.Time { return anchor.AddDate(0, 0, 3) }

	created, err := svc.Create(context.Background(), testTenant, "tpl-1", validDraft(anchor))
	require.NoError(t, err)

	t.Run("open job without executions", func(t *testing.T) {
		detail, err := svc.Get(context.Background(), testTenant, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, detail.Job.ID)
		assert.Equal(t, domain.StatusOpen, detail.Status)
		assert.Empty(t, detail.Executions)
	})

	t.Run("execution in the current window completes it", func(t *testing.T) {
		executions.byJob[created.ID] = []model.JobExecution{{
			ExecutionID: "exec-1",
			OrgID:       testTenant.OrgID,
			JobID:       created.ID,
			ExecutedAt:  anchor.AddDate(0, 0, 1),
		}}

		detail, err := svc.Get(context.Background(), testTenant, created.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, detail.Status)
		assert.Len(t, detail.Executions, 1)
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := svc.Get(context.Background(), testTenant, "job-missing")

		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("job from another org is not visible", func(t *testing.T) {
		other := domain.Tenant{OrgID: "org-2", UserID: "user-9"}

		_, err := svc.Get(context.Background(), other, created.ID)

		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}

func TestJobService_List(t *testing.T) {
	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	now := anchor.AddDate(0, 0, 3)

	rowAt := func(id string, createdAt time.Time) model.Job {
		return model.Job{
			JobID:         id,
			OrgID:         testTenant.OrgID,
			TemplateID:    "tpl-1",
			Name:          "Fire Safety Inspection",
			IntervalValue: 1,
			IntervalUnit:  domain.IntervalUnitWeek,
			AnchorDate:    anchor,
			CreatedAt:     createdAt,
		}
	}

	t.Run("page with more rows yields a cursor", func(t *testing.T) {
		svc, jobs, _, _ := newJobServiceForTest(t)
		svc.nowFn = func() time.Time { return now }
		jobs.listRes = []model.Job{
			rowAt("job-3", now.Add(-time.Hour)),
			rowAt("job-2", now.Add(-2*time.Hour)),
			rowAt("job-1", now.Add(-3*time.Hour)),
		}

		details, cursor, err := svc.List(context.Background(), testTenant, storage.JobFilter{PageSize: 2}, "")

		require.NoError(t, err)
		assert.Len(t, details, 2)
		require.NotNil(t, cursor)
		assert.Equal(t, "job-2", cursor.JobID)
	})

	t.Run("final page has no cursor", func(t *testing.T) {
		svc, jobs, _, _ := newJobServiceForTest(t)
		svc.nowFn = func() time.Time { return now }
		jobs.listRes = []model.Job{rowAt("job-1", now.Add(-time.Hour))}

		details, cursor, err := svc.List(context.Background(), testTenant, storage.JobFilter{PageSize: 2}, "")

		require.NoError(t, err)
		assert.Len(t, details, 1)
		assert.Nil(t, cursor)
	})

	t.Run("status filter thins the page but keeps the cursor", func(t *testing.T) {
		svc, jobs, executions, _ := newJobServiceForTest(t)
		svc.nowFn = func() time.Time { return now }
		jobs.listRes = []model.Job{
			rowAt("job-3", now.Add(-time.Hour)),
			rowAt("job-2", now.Add(-2*time.Hour)),
			rowAt("job-1", now.Add(-3*time.Hour)),
		}
		executions.byJob["job-2"] = []model.JobExecution{{
			ExecutionID: "exec-1",
			JobID:       "job-2",
			ExecutedAt:  anchor.AddDate(0, 0, 1),
		}}

		details, cursor, err := svc.List(context.Background(), testTenant, storage.JobFilter{PageSize: 2}, domain.StatusCompleted)

		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "job-2", details[0].Job.ID)
		// The cursor still points past the last scanned row.
		require.NotNil(t, cursor)
		assert.Equal(t, "job-2", cursor.JobID)
	})
}
