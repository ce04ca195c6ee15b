package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
)

// CreateDocument inserts a document metadata row.
func (s *Storage) CreateDocument(ctx context.Context, d *model.Document) error {
	query := `
		INSERT INTO documents (
			document_id, org_id, name, category,
			file_key, content_type, size_bytes, expires_at,
			uploaded_by, uploaded_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		d.DocumentID,
		d.OrgID,
		d.Name,
		d.Category,
		d.FileKey,
		d.ContentType,
		d.SizeBytes,
		d.ExpiresAt,
		d.UploadedBy,
		d.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// GetDocumentByID fetches one document within the org scope.
func (s *Storage) GetDocumentByID(ctx context.Context, orgID, documentID string) (*model.Document, error) {
	var d model.Document
	query := `
		SELECT
			document_id, org_id, name, category,
			file_key, content_type, size_bytes, expires_at,
			uploaded_by, uploaded_at
		FROM documents
		WHERE org_id = $1 AND document_id = $2
	`

	err := s.db.GetContext(ctx, &d, query, orgID, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &d, nil
}

// ListDocuments returns the org's documents, newest first, optionally
// filtered by category.
func (s *Storage) ListDocuments(ctx context.Context, orgID, category string) ([]model.Document, error) {
	query := `
		SELECT
			document_id, org_id, name, category,
			file_key, content_type, size_bytes, expires_at,
			uploaded_by, uploaded_at
		FROM documents
		WHERE org_id = $1
	`
	args := []interface{}{orgID}

	if category != "" {
		query += " AND category = $2"
		args = append(args, category)
	}

	query += " ORDER BY uploaded_at DESC, document_id DESC"

	var documents []model.Document
	if err := s.db.SelectContext(ctx, &documents, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return documents, nil
}

// DeleteDocument removes a document row within the org scope.
func (s *Storage) DeleteDocument(ctx context.Context, orgID, documentID string) error {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM documents WHERE org_id = $1 AND document_id = $2`,
		orgID,
		documentID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrDocumentNotFound
	}

	return nil
}
