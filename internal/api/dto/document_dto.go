package dto

type DocumentDTO struct {
	DocumentID  string `json:"document_id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	UploadedBy  string `json:"uploaded_by"`
	UploadedAt  string `json:"uploaded_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentDTO `json:"documents"`
}
