package extraction

import (
	"context"
	"log/slog"
)

// Service dispatches uploads to the right extractor: tabular formats are
// parsed natively, everything else goes through the hosted model.
type Service struct {
	sheets *SpreadsheetExtractor
	model  Extractor
	logger *slog.Logger
}

// NewService builds the composite extractor.
func NewService(sheets *SpreadsheetExtractor, model Extractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sheets: sheets, model: model, logger: logger}
}

// Extract routes the upload by filename extension.
func (s *Service) Extract(ctx context.Context, upload Upload) (Result, error) {
	if hasExtension(upload.Filename, ".xlsx", ".xlsm", ".csv") {
		return s.sheets.Extract(ctx, upload)
	}

	s.logger.Info("Routing document to model extraction",
		slog.String("filename", upload.Filename),
		slog.String("content_type", upload.ContentType),
		slog.Int("size_bytes", len(upload.Data)),
	)
	return s.model.Extract(ctx, upload)
}
