package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTemplateNotFound = errors.New("template not found")
	ErrJobNotFound      = errors.New("job not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrDuplicateLog     = errors.New("a log already exists for this template and date")
	ErrAlreadyExecuted  = errors.New("job already executed in the current window")
	ErrExternalService  = errors.New("external service failure")
)

// FieldError pins a validation failure to a single field, and in batch
// contexts to the row it occurred on. Messages are written against the
// field's label so they can be shown to users as-is.
type FieldError struct {
	Index    int    `json:"index"`
	FieldKey string `json:"field_key,omitempty"`
	Label    string `json:"label,omitempty"`
	Message  string `json:"message"`
}

// ValidationError aggregates field errors for one request. It is an expected
// outcome, returned to the caller for correction rather than treated as
// fatal.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// NewValidationError wraps field errors into a ValidationError.
func NewValidationError(fieldErrs []FieldError) *ValidationError {
	return &ValidationError{Errors: fieldErrs}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
