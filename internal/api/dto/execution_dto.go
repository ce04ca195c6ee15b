package dto

type ExecuteJobRequest struct {
	ActionFieldValues map[string]any `json:"action_field_values"`
	Notes             string         `json:"notes"`
}

type ExecutionDTO struct {
	ExecutionID       string         `json:"execution_id"`
	JobID             string         `json:"job_id"`
	ExecutedBy        string         `json:"executed_by"`
	ExecutedAt        string         `json:"executed_at"`
	ActionFieldValues map[string]any `json:"action_field_values"`
	Notes             string         `json:"notes,omitempty"`
}

type ListExecutionsResponse struct {
	Executions []ExecutionDTO `json:"executions"`
}
