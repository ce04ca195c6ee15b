package dto

type CreateLogRequest struct {
	TemplateID  string         `json:"template_id" binding:"required"`
	LogDate     string         `json:"log_date" binding:"required"`
	FieldValues map[string]any `json:"field_values"`
}

type ListLogsRequest struct {
	TemplateID string `form:"template_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type DailyLogDTO struct {
	LogID       string         `json:"log_id"`
	TemplateID  string         `json:"template_id"`
	LogDate     string         `json:"log_date"`
	FieldValues map[string]any `json:"field_values"`
	RecordedBy  string         `json:"recorded_by"`
	CreatedAt   string         `json:"created_at"`
}

type ListLogsResponse struct {
	Logs []DailyLogDTO `json:"logs"`
}
