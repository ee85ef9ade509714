package validator

import (
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion checks the option keys and answer key of the question at index.
func (v *QuestionValidator) ValidateQuestion(index int, q *models.Question) ValidationErrors {
	var errs ValidationErrors
	field := func(name string) string {
		return fmt.Sprintf("questions[%d].%s", index, name)
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, ok := seen[opt.Key]; ok {
			errs = append(errs, ruleError(field("options"), "unique_option_key", opt.Key))
		}
		seen[opt.Key] = struct{}{}
	}

	for _, key := range q.CorrectAnswer {
		if _, ok := seen[key]; !ok {
			errs = append(errs, ruleError(field("correctAnswer"), "answer_in_options", key))
			break
		}
	}

	if !q.Type.IsMultiple() && len(q.CorrectAnswer) != 1 {
		errs = append(errs, ruleError(field("correctAnswer"), "single_answer", []string(q.CorrectAnswer)))
	}

	return errs
}
