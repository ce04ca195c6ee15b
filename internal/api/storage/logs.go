package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// CreateDailyLog inserts a daily log row. The unique index on
// (org_id, template_id, log_date) rejects a second entry for the same day.
func (s *Storage) CreateDailyLog(ctx context.Context, l *model.DailyLog) error {
	query := `
		INSERT INTO daily_logs (
			log_id, org_id, template_id, log_date,
			field_values, recorded_by, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		l.LogID,
		l.OrgID,
		l.TemplateID,
		l.LogDate,
		l.FieldValues,
		l.RecordedBy,
		l.CreatedAt,
	)
	if IsUniqueViolation(err) {
		return domain.ErrDuplicateLog
	}
	if err != nil {
		return fmt.Errorf("failed to create daily log: %w", err)
	}

	return nil
}

// ListDailyLogs returns the org's log entries in a date range, newest first.
// Either bound may be zero.
func (s *Storage) ListDailyLogs(ctx context.Context, orgID, templateID string, from, to time.Time) ([]model.DailyLog, error) {
	query := `
		SELECT
			log_id, org_id, template_id, log_date,
			field_values, recorded_by, created_at
		FROM daily_logs
		WHERE org_id = $1
	`
	args := []interface{}{orgID}
	argIdx := 2

	if templateID != "" {
		query += fmt.Sprintf(" AND template_id = $%d", argIdx)
		args = append(args, templateID)
		argIdx++
	}

	if !from.IsZero() {
		query += fmt.Sprintf(" AND log_date >= $%d", argIdx)
		args = append(args, from)
		argIdx++
	}

	if !to.IsZero() {
		query += fmt.Sprintf(" AND log_date <= $%d", argIdx)
		args = append(args, to)
		argIdx++
	}

	query += " ORDER BY log_date DESC, log_id DESC"

	var logs []model.DailyLog
	if err := s.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}

	return logs, nil
}
