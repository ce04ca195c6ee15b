package dto

import (
	"github.com/tuanphm/compliance-be/internal/api/domain"
)

type CreateTemplateRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Fields      []domain.TemplateField `json:"fields" binding:"required"`
}

type TemplateDTO struct {
	TemplateID  string                 `json:"template_id"`
	Name        string                 `json:"name"`
	Category    string                 `json:"category,omitempty"`
	Description string                 `json:"description,omitempty"`
	Fields      []domain.TemplateField `json:"fields"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

type ListTemplatesResponse struct {
	Templates []TemplateDTO `json:"templates"`
}
