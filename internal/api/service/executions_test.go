package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

func newExecutionServiceForTest(t *testing.T, allowRework bool) (*ExecutionService, *fakeJobStore, *fakeExecutionStore, *fakeEvents) {
	t.Helper()
	templates := newFakeTemplateStore(inspectionTemplateRow(testTenant.OrgID))
	jobs := newFakeJobStore()
	executions := newFakeExecutionStore()
	events := &fakeEvents{}
	svc := NewExecutionService(templates, jobs, executions, events, allowRework, nil)
	return svc, jobs, executions, events
}

func seedJob(jobs *fakeJobStore, anchor time.Time) *model.Job {
	row := &model.Job{
		JobID:         "job-1",
		OrgID:         testTenant.OrgID,
		TemplateID:    "tpl-1",
		Name:          "Fire Safety Inspection",
		IntervalValue: 1,
		IntervalUnit:  domain.IntervalUnitWeek,
		AnchorDate:    anchor,
		CreatedAt:     anchor,
	}
	jobs.jobs[row.JobID] = row
	return row
}

func TestExecutionService_Execute(t *testing.T) {
	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	now := anchor.AddDate(0, 0, 3)

	input := func() ExecuteInput {
		return ExecuteInput{
			ActionFieldValues: map[string]any{"outcome": "passed"},
			Notes:             "all clear",
		}
	}

	t.Run("valid input appends an execution", func(t *testing.T) {
		svc, jobs, executions, events := newExecutionServiceForTest(t, true)
		svc.nowFn = func() time.Time { return now }
		seedJob(jobs, anchor)

		exec, err := svc.Execute(context.Background(), testTenant, "job-1", input())

		require.NoError(t, err)
		assert.NotEmpty(t, exec.ID)
		assert.Equal(t, "job-1", exec.JobID)
		assert.Equal(t, testTenant.UserID, exec.ExecutedBy)
		assert.Equal(t, now, exec.ExecutedAt)
		assert.Equal(t, "passed", exec.ActionFieldValues["outcome"])
		assert.Equal(t, "all clear", exec.Notes)
		assert.Len(t, executions.byJob["job-1"], 1)
		assert.Equal(t, []string{EventExecutionRecord}, events.names())
	})

	t.Run("missing required action field writes nothing", func(t *testing.T) {
		svc, jobs, executions, events := newExecutionServiceForTest(t, true)
		svc.nowFn = func() time.Time { return now }
		seedJob(jobs, anchor)

		_, err := svc.Execute(context.Background(), testTenant, "job-1", ExecuteInput{})

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, "Outcome is required", verr.Errors[0].Message)
		assert.Empty(t, executions.byJob["job-1"])
		assert.Empty(t, events.emitted)
	})

	t.Run("creation field key is unknown at action time", func(t *testing.T) {
		svc, jobs, _, _ := newExecutionServiceForTest(t, true)
		svc.nowFn = func() time.Time { return now }
		seedJob(jobs, anchor)

		_, err := svc.Execute(context.Background(), testTenant, "job-1", ExecuteInput{
			ActionFieldValues: map[string]any{"outcome": "passed", "site": "Plant A"},
		})

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.Len(t, verr.Errors, 1)
		assert.Contains(t, verr.Errors[0].Message, "unknown action field: site")
	})

	t.Run("rework allowed records a second execution in the window", func(t *testing.T) {
		svc, jobs, executions, _ := newExecutionServiceForTest(t, true)
		svc.nowFn = func() time.Time { return now }
		seedJob(jobs, anchor)

		_, err := svc.Execute(context.Background(), testTenant, "job-1", input())
		require.NoError(t, err)
		_, err = svc.Execute(context.Background(), testTenant, "job-1", input())
		require.NoError(t, err)

		assert.Len(t, executions.byJob["job-1"], 2)
	})

	t.Run("rework disabled rejects a completed window", func(t *testing.T) {
		svc, jobs, executions, _ := newExecutionServiceForTest(t, false)
		svc.nowFn = func() time.Time { return now }
		seedJob(jobs, anchor)

		_, err := svc.Execute(context.Background(), testTenant, "job-1", input())
		require.NoError(t, err)
		_, err = svc.Execute(context.Background(), testTenant, "job-1", input())

		assert.ErrorIs(t, err, domain.ErrAlreadyExecuted)
		assert.Len(t, executions.byJob["job-1"], 1)
	})

	t.Run("rework disabled still allows the next window", func(t *testing.T) {
		svc, jobs, executions, _ := newExecutionServiceForTest(t, false)
		seedJob(jobs, anchor)

		svc.nowFn = func() time.Time { return now }
		_, err := svc.Execute(context.Background(), testTenant, "job-1", input())
		require.NoError(t, err)

		// One interval later the job is OPEN again.
		svc.nowFn = func() time.Time { return now.AddDate(0, 0, 7) }
		_, err = svc.Execute(context.Background(), testTenant, "job-1", input())
		require.NoError(t, err)

		assert.Len(t, executions.byJob["job-1"], 2)
	})

	t.Run("unknown job", func(t *testing.T) {
		svc, _, _, _ := newExecutionServiceForTest(t, true)

		_, err := svc.Execute(context.Background(), testTenant, "job-missing", input())

		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("job from another org is not visible", func(t *testing.T) {
		svc, jobs, _, _ := newExecutionServiceForTest(t, true)
		seedJob(jobs, anchor)
		other := domain.Tenant{OrgID: "org-2", UserID: "user-9"}

		_, err := svc.Execute(context.Background(), other, "job-1", input())

		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}

func TestExecutionService_History(t *testing.T) {
	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run("returns recorded executions", func(t *testing.T) {
		svc, jobs, executions, _ := newExecutionServiceForTest(t, true)
		seedJob(jobs, anchor)
		executions.byJob["job-1"] = []model.JobExecution{
			{ExecutionID: "exec-1", JobID: "job-1", ExecutedAt: anchor},
			{ExecutionID: "exec-2", JobID: "job-1", ExecutedAt: anchor.AddDate(0, 0, 7)},
		}

		history, err := svc.History(context.Background(), testTenant, "job-1")

		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "exec-1", history[0].ID)
		assert.Equal(t, "exec-2", history[1].ID)
	})

	t.Run("unknown job", func(t *testing.T) {
		svc, _, _, _ := newExecutionServiceForTest(t, true)

		_, err := svc.History(context.Background(), testTenant, "job-missing")

		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}
