package validator

import (
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
)

// BusinessValidator checks rules that span fields or records.
type BusinessValidator struct {
	questions *QuestionValidator
}

func NewBusinessValidator(questions *QuestionValidator) *BusinessValidator {
	return &BusinessValidator{questions: questions}
}

// Validate dispatches on the value's type; types without business rules pass.
func (v *BusinessValidator) Validate(s interface{}) ValidationErrors {
	switch value := s.(type) {
	case *models.TestDefinition:
		return v.ValidateTestDefinition(value)
	case models.TestDefinition:
		return v.ValidateTestDefinition(&value)
	default:
		return nil
	}
}

// ValidateTestDefinition requires unique question ids and consistent answer keys.
func (v *BusinessValidator) ValidateTestDefinition(test *models.TestDefinition) ValidationErrors {
	var errs ValidationErrors

	if test.Duration < 0 {
		errs = append(errs, ruleError("duration", "test_duration", test.Duration))
	}

	ids := make(map[string]int, len(test.Questions))
	for i := range test.Questions {
		q := &test.Questions[i]
		id := q.GlobalID.String()
		if first, ok := ids[id]; ok {
			errs = append(errs, ruleError(fmt.Sprintf("questions[%d].globalId", i), "unique_global_id",
				fmt.Sprintf("%s (also questions[%d])", id, first)))
		} else {
			ids[id] = i
		}
		errs = append(errs, v.questions.ValidateQuestion(i, q)...)
	}

	return errs
}
