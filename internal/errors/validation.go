package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return nil
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: RuleMessage(fe.Tag(), fe.Param()),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

// RuleMessage returns the user-facing message for a validation rule.
func RuleMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "required_without":
		return fmt.Sprintf("is required when %s is missing", param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)

	// Custom validators
	case "question_type":
		return "must be a valid question type (single_choice_general, single_choice_subject, multiple_choice_subject)"
	case "exam_action":
		return "must be a valid action (select, toggle, clear, mark_review, save_next, navigate, switch_subject)"
	case "export_format":
		return "must be json or xlsx"

	// Business rule validators
	case "unique_global_id":
		return "must be unique within the test"
	case "unique_option_key":
		return "must not repeat an option key"
	case "answer_in_options":
		return "must reference existing option keys"
	case "single_answer":
		return "must contain exactly one key for single-choice questions"
	case "test_duration":
		return "must be between 0 and 1440 minutes"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", rule)
	}
}
