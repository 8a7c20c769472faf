package services

import (
	"errors"
	"fmt"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Editing session errors
	ErrSessionNotFound = errors.New("editing session not found")
	ErrSessionClosed   = errors.New("editing session already closed")

	// Upload errors
	ErrUploadNotWired = errors.New("field is not wired for upload in this question type")
	ErrUploadRejected = errors.New("upload rejected")

	// Export errors
	ErrExportEmpty         = errors.New("nothing to export")
	ErrExportInvalidFormat = errors.New("unsupported export format")
)

// BusinessRuleError carries the rule that refused an operation, for surfaces
// that want to explain the refusal (e.g. the pair minimum).
type BusinessRuleError struct {
	Rule    string
	Message string
	Context map[string]interface{}
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s: %s", e.Rule, e.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrSessionNotFound)
}
