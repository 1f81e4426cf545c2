package domain

import "time"

// Stable error codes surfaced in error records.
const (
	CodeRequestFailed    = "API_REQUEST_FAILED"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "RESOURCE_NOT_FOUND"
)

// ErrorRecord captures a single failure in a structured, immutable form.
type ErrorRecord struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Operation string         `json:"operation"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewErrorRecord builds an error record stamped with the current time.
func NewErrorRecord(code, message, operation string, details map[string]any) *ErrorRecord {
	return &ErrorRecord{
		Code:      code,
		Message:   message,
		Operation: operation,
		Details:   details,
		CreatedAt: time.Now(),
	}
}
