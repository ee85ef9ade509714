package validator

import (
	"github.com/Rtx09x/Meow-Mocks/internal/errors"
)

// Use shared validation errors from errors package
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	return errors.ToValidationErrors(err)
}

func ruleError(field, rule string, value interface{}) ValidationError {
	return *errors.NewValidationErrorWithRule(field, errors.RuleMessage(rule, ""), rule, value)
}
