// Package extraction turns uploaded documents into tabular structure for the
// bulk creation pipeline. Concrete providers sit behind small capability
// interfaces so the hosted model can be swapped without touching domain
// logic.
package extraction

import (
	"context"
	"errors"
)

// ErrNoTabularData is returned when a document yields no usable
// column/row structure.
var ErrNoTabularData = errors.New("no usable tabular structure found in document")

// Upload is the raw document handed to an extractor.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Result is the transient outcome of an extraction. It is returned to the
// client for review and never persisted.
type Result struct {
	Description string              `json:"description,omitempty"`
	Columns     []string            `json:"columns"`
	Rows        []map[string]string `json:"rows"`
}

// Extractor is the document-to-table capability.
type Extractor interface {
	Extract(ctx context.Context, upload Upload) (Result, error)
}

// TextImprover rewrites user-authored text (notes, descriptions) into a
// cleaner form.
type TextImprover interface {
	ImproveText(ctx context.Context, text, instruction string) (string, error)
}
