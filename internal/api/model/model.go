package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tuanphm/compliance-be/internal/api/domain"
)

// FieldValues is an open field_key -> value map stored as JSONB. Template
// fields are user-defined, so values are schema-free at the row level and
// typed at the boundary instead.
type FieldValues map[string]any

// Value implements driver.Valuer.
func (fv FieldValues) Value() (driver.Value, error) {
	if fv == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(fv)
}

// Scan implements sql.Scanner.
func (fv *FieldValues) Scan(src any) error {
	if src == nil {
		*fv = FieldValues{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into FieldValues", src)
	}
	return json.Unmarshal(b, fv)
}

// TemplateFields is the ordered field list of a template, stored as JSONB on
// the template row.
type TemplateFields []domain.TemplateField

// Value implements driver.Valuer.
func (tf TemplateFields) Value() (driver.Value, error) {
	if tf == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(tf)
}

// Scan implements sql.Scanner.
func (tf *TemplateFields) Scan(src any) error {
	if src == nil {
		*tf = TemplateFields{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into TemplateFields", src)
	}
	return json.Unmarshal(b, tf)
}

// JobTemplate is the job_templates row.
type JobTemplate struct {
	TemplateID  string         `db:"template_id"`
	OrgID       string         `db:"org_id"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	Description string         `db:"description"`
	Fields      TemplateFields `db:"fields"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Job is the jobs row.
type Job struct {
	JobID               string      `db:"job_id"`
	OrgID               string      `db:"org_id"`
	TemplateID          string      `db:"template_id"`
	Name                string      `db:"name"`
	CreationFieldValues FieldValues `db:"creation_field_values"`
	AssignedTo          string      `db:"assigned_to"`
	IntervalValue       int         `db:"interval_value"`
	IntervalUnit        string      `db:"interval_unit"`
	AnchorDate          time.Time   `db:"anchor_date"`
	CreatedBy           string      `db:"created_by"`
	CreatedAt           time.Time   `db:"created_at"`
}

// JobExecution is the job_executions row. Append-only.
type JobExecution struct {
	ExecutionID       string      `db:"execution_id"`
	OrgID             string      `db:"org_id"`
	JobID             string      `db:"job_id"`
	ExecutedBy        string      `db:"executed_by"`
	ExecutedAt        time.Time   `db:"executed_at"`
	ActionFieldValues FieldValues `db:"action_field_values"`
	Notes             string      `db:"notes"`
}

// Document is the documents row; blob bytes live in the blob store under
// file_key.
type Document struct {
	DocumentID  string     `db:"document_id"`
	OrgID       string     `db:"org_id"`
	Name        string     `db:"name"`
	Category    string     `db:"category"`
	FileKey     string     `db:"file_key"`
	ContentType string     `db:"content_type"`
	SizeBytes   int64      `db:"size_bytes"`
	ExpiresAt   *time.Time `db:"expires_at"`
	UploadedBy  string     `db:"uploaded_by"`
	UploadedAt  time.Time  `db:"uploaded_at"`
}

// DailyLog is the daily_logs row, unique per (org, template, log_date).
type DailyLog struct {
	LogID       string      `db:"log_id"`
	OrgID       string      `db:"org_id"`
	TemplateID  string      `db:"template_id"`
	LogDate     time.Time   `db:"log_date"`
	FieldValues FieldValues `db:"field_values"`
	RecordedBy  string      `db:"recorded_by"`
	CreatedAt   time.Time   `db:"created_at"`
}
