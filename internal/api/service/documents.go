package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/model"
	"github.com/tuanphm/compliance-be/internal/blob"
	"github.com/tuanphm/compliance-be/internal/extraction"
)

// DocumentUpload is the metadata and content of a document being registered.
type DocumentUpload struct {
	Name        string
	Category    string
	ContentType string
	ExpiresAt   *time.Time
	Data        []byte
}

// DocumentService keeps the regulatory document registry: metadata rows in
// the database, blob bytes in the blob store.
type DocumentService struct {
	store  DocumentStore
	blobs  blob.Store
	events Events
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewDocumentService wires a DocumentService.
func NewDocumentService(store DocumentStore, blobs blob.Store, events Events, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{store: store, blobs: blobs, events: events, logger: logger, nowFn: time.Now}
}

// Upload stores the blob then the metadata row. If the row insert fails the
// blob is removed again so no orphan bytes accumulate.
func (s *DocumentService) Upload(ctx context.Context, tenant domain.Tenant, upload DocumentUpload) (*model.Document, error) {
	if upload.Name == "" {
		return nil, domain.NewValidationError([]domain.FieldError{{
			FieldKey: "name",
			Message:  "document name is required",
		}})
	}
	if len(upload.Data) == 0 {
		return nil, domain.NewValidationError([]domain.FieldError{{
			FieldKey: "file",
			Message:  "document file is required",
		}})
	}

	documentID := uuid.New().String()
	fileKey := fmt.Sprintf("%s/%s/%s", tenant.OrgID, documentID, upload.Name)

	if err := s.blobs.Put(ctx, fileKey, upload.Data); err != nil {
		return nil, err
	}

	row := &model.Document{
		DocumentID:  documentID,
		OrgID:       tenant.OrgID,
		Name:        upload.Name,
		Category:    upload.Category,
		FileKey:     fileKey,
		ContentType: upload.ContentType,
		SizeBytes:   int64(len(upload.Data)),
		ExpiresAt:   upload.ExpiresAt,
		UploadedBy:  tenant.UserID,
		UploadedAt:  s.nowFn(),
	}
	if err := s.store.CreateDocument(ctx, row); err != nil {
		if cerr := s.blobs.Delete(ctx, fileKey); cerr != nil {
			s.logger.Warn("Failed to clean up blob after insert failure",
				slog.String("file_key", fileKey),
				slog.Any("error", cerr),
			)
		}
		return nil, err
	}

	s.logger.Info("Document uploaded",
		slog.String("org_id", tenant.OrgID),
		slog.String("document_id", documentID),
		slog.String("name", upload.Name),
		slog.Int64("size_bytes", row.SizeBytes),
	)

	if s.events != nil {
		s.events.Emit(ctx, EventDocumentUploaded, map[string]any{
			"org_id":      tenant.OrgID,
			"document_id": documentID,
			"uploaded_by": tenant.UserID,
		})
	}

	return row, nil
}

// Get fetches document metadata in the tenant's org.
func (s *DocumentService) Get(ctx context.Context, tenant domain.Tenant, documentID string) (*model.Document, error) {
	return s.store.GetDocumentByID(ctx, tenant.OrgID, documentID)
}

// List returns the tenant's documents, optionally filtered by category.
func (s *DocumentService) List(ctx context.Context, tenant domain.Tenant, category string) ([]model.Document, error) {
	return s.store.ListDocuments(ctx, tenant.OrgID, category)
}

// Download returns a document's metadata and blob bytes.
func (s *DocumentService) Download(ctx context.Context, tenant domain.Tenant, documentID string) (*model.Document, []byte, error) {
	row, err := s.store.GetDocumentByID(ctx, tenant.OrgID, documentID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Get(ctx, row.FileKey)
	if err != nil {
		return nil, nil, err
	}
	return row, data, nil
}

// Delete removes the metadata row and then the blob. A dangling blob after
// a failed blob delete is tolerated and logged.
func (s *DocumentService) Delete(ctx context.Context, tenant domain.Tenant, documentID string) error {
	row, err := s.store.GetDocumentByID(ctx, tenant.OrgID, documentID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDocument(ctx, tenant.OrgID, documentID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, row.FileKey); err != nil {
		s.logger.Warn("Failed to delete document blob",
			slog.String("file_key", row.FileKey),
			slog.Any("error", err),
		)
	}
	return nil
}

// AsUpload turns a stored document into an extraction upload.
func (s *DocumentService) AsUpload(ctx context.Context, tenant domain.Tenant, documentID string) (extraction.Upload, error) {
	row, data, err := s.Download(ctx, tenant, documentID)
	if err != nil {
		return extraction.Upload{}, err
	}
	return extraction.Upload{
		Filename:    row.Name,
		ContentType: row.ContentType,
		Data:        data,
	}, nil
}
