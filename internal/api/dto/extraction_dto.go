package dto

import (
	"github.com/tuanphm/compliance-be/internal/mapping"
)

// ApplyMappingRequest carries the reviewed extraction state back from the
// client: the columns and rows it received plus the (possibly edited)
// mapping to apply.
type ApplyMappingRequest struct {
	TemplateID string               `json:"template_id" binding:"required"`
	Columns    []string             `json:"columns" binding:"required"`
	Rows       []map[string]string  `json:"rows" binding:"required"`
	Mapping    mapping.FieldMapping `json:"mapping" binding:"required"`
}

type ApplyMappingResponse struct {
	Jobs []mapping.MappedJob `json:"jobs"`
}

type ImproveTextRequest struct {
	Text        string `json:"text" binding:"required"`
	Instruction string `json:"instruction"`
}

type ImproveTextResponse struct {
	ImprovedText string `json:"improved_text"`
}
