package domain

import (
	"fmt"
	"time"
)

// Recurrence interval units supported by the cadence model.
const (
	IntervalUnitDay   = "day"
	IntervalUnitWeek  = "week"
	IntervalUnitMonth = "month"
)

// Cadence defines when a recurring job falls due. Due windows tile forward
// from the anchor date, each one interval long.
type Cadence struct {
	IntervalValue int       `json:"interval_value"`
	IntervalUnit  string    `json:"interval_unit"`
	AnchorDate    time.Time `json:"anchor_date"`
}

// Validate checks the cadence is usable for window derivation.
func (c Cadence) Validate() error {
	if c.IntervalValue <= 0 {
		return fmt.Errorf("cadence interval value must be positive, got %d", c.IntervalValue)
	}
	switch c.IntervalUnit {
	case IntervalUnitDay, IntervalUnitWeek, IntervalUnitMonth:
	default:
		return fmt.Errorf("unknown cadence interval unit %q", c.IntervalUnit)
	}
	if c.AnchorDate.IsZero() {
		return fmt.Errorf("cadence anchor date is required")
	}
	return nil
}

// next returns the start of the window following the one that starts at t.
// Month intervals step by calendar month, so window lengths vary.
func (c Cadence) next(t time.Time) time.Time {
	switch c.IntervalUnit {
	case IntervalUnitWeek:
		return t.AddDate(0, 0, 7*c.IntervalValue)
	case IntervalUnitMonth:
		return t.AddDate(0, c.IntervalValue, 0)
	default:
		return t.AddDate(0, 0, c.IntervalValue)
	}
}

// Job is a recurring compliance task created from a template. The template
// linkage and creation field values are immutable after creation; lifecycle
// state is derived on read, never stored.
type Job struct {
	ID                  string
	OrgID               string
	TemplateID          string
	Name                string
	CreationFieldValues map[string]any
	AssignedTo          string
	Cadence             Cadence
	CreatedBy           string
	CreatedAt           time.Time
}

// JobExecution records one completion event against a job. Rows are
// append-only; a job accumulates executions over its recurring lifetime.
type JobExecution struct {
	ID                string
	OrgID             string
	JobID             string
	ExecutedBy        string
	ExecutedAt        time.Time
	ActionFieldValues map[string]any
	Notes             string
}
