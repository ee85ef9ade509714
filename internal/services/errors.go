package services

import (
	"errors"

	apperrors "github.com/Rtx09x/Meow-Mocks/internal/errors"
	"github.com/Rtx09x/Meow-Mocks/internal/exam"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Session specific errors
	ErrSessionNotFound  = errors.New("exam session not found")
	ErrSessionSubmitted = errors.New("exam session already submitted")

	// Result specific errors
	ErrResultNotFound          = errors.New("exam result not found")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrResultNotFound)
}

// IsValidation checks if error represents a rejected input
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnsupportedExportFormat) ||
		errors.Is(err, exam.ErrInvalidIndex) ||
		errors.Is(err, exam.ErrUnknownOption) ||
		errors.Is(err, exam.ErrUnknownSubject) ||
		errors.Is(err, exam.ErrQuestionTypeMismatch) ||
		errors.Is(err, exam.ErrInvalidSelection) ||
		errors.Is(err, exam.ErrInvalidDuration) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents an action on a finished session
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSessionSubmitted) ||
		errors.Is(err, exam.ErrAlreadySubmitted) ||
		errors.Is(err, exam.ErrSessionClosed)
}

// IsLoadError checks if a test definition could not be loaded
func IsLoadError(err error) bool {
	return apperrors.IsLoadError(err)
}
