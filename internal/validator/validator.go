package validator

import (
	"reflect"
	"strings"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(NewQuestionValidator()),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateBusiness validates business rules only
func (v *Validator) ValidateBusiness(s interface{}) ValidationErrors {
	return v.businessValidator.Validate(s)
}

// Validate performs complete validation (struct + business rules)
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if converted := ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}

	if errs := v.ValidateBusiness(s); len(errs) > 0 {
		return errs
	}

	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("exam_action", validateExamAction)
	validate.RegisterValidation("export_format", validateExportFormat)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}

func validateExamAction(fl validator.FieldLevel) bool {
	return models.ExamAction(fl.Field().String()).IsValid()
}

func validateExportFormat(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ExportFormat(value).IsValid()
}
