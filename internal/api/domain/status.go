package domain

import "time"

// Derived lifecycle states. Status is computed on read from the cadence and
// execution history; nothing is persisted.
const (
	StatusUpcoming  = "UPCOMING"
	StatusOpen      = "OPEN"
	StatusOverdue   = "OVERDUE"
	StatusCompleted = "COMPLETED"
)

// DeriveStatus classifies a job at instant now.
//
// Due windows tile forward from the cadence anchor, each one interval long.
// Windows are inclusive of their start and exclusive of their end: an instant
// exactly at a window boundary belongs to the window that starts there.
//
// Each window is judged only against executions whose executed_at falls
// inside it; an execution in a later window never closes an earlier one. The
// earliest window left without an execution decides the outcome:
//
//   - now before the anchor               -> UPCOMING
//   - a fully elapsed window has no
//     execution inside it                 -> OVERDUE
//   - the window containing now has an
//     execution inside it                 -> COMPLETED
//   - otherwise                           -> OPEN
func DeriveStatus(job *Job, executions []JobExecution, now time.Time) string {
	cadence := job.Cadence

	if now.Before(cadence.AnchorDate) {
		return StatusUpcoming
	}

	start := cadence.AnchorDate
	for {
		end := cadence.next(start)
		if now.Before(end) {
			if hasExecutionIn(executions, start, end) {
				return StatusCompleted
			}
			return StatusOpen
		}
		if !hasExecutionIn(executions, start, end) {
			return StatusOverdue
		}
		start = end
	}
}

// hasExecutionIn reports whether any execution falls in [start, end).
func hasExecutionIn(executions []JobExecution, start, end time.Time) bool {
	for _, e := range executions {
		if !e.ExecutedAt.Before(start) && e.ExecutedAt.Before(end) {
			return true
		}
	}
	return false
}
