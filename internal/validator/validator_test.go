package validator

import (
	"testing"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTest() *models.TestDefinition {
	return &models.TestDefinition{
		TestTitle: "Mock",
		Duration:  90,
		Questions: []models.Question{
			{GlobalID: "1", Type: models.SingleChoiceSubject, Text: "q1",
				Options: models.Options{{Key: "A"}, {Key: "B"}}, CorrectAnswer: models.AnswerKey{"A"}},
			{GlobalID: "2", Type: models.MultipleChoiceSubject, Text: "q2",
				Options: models.Options{{Key: "A"}, {Key: "B"}, {Key: "C"}}, CorrectAnswer: models.AnswerKey{"A", "C"}},
		},
	}
}

func rules(errs ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field + ":" + e.Rule
	}
	return out
}

func TestValidate_ValidTest(t *testing.T) {
	assert.NoError(t, New().Validate(validTest()))
}

func TestValidate_StructTags(t *testing.T) {
	test := validTest()
	test.TestTitle = ""
	test.Questions[0].Type = "essay"

	err := New().Validate(test)
	require.Error(t, err)

	errs, ok := err.(ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)
	assert.Contains(t, rules(errs), "testTitle:required")
	assert.Contains(t, rules(errs), "question_type:question_type")
}

func TestValidate_NoQuestions(t *testing.T) {
	test := validTest()
	test.Questions = nil

	err := New().Validate(test)
	require.Error(t, err)
	assert.Contains(t, rules(err.(ValidationErrors)), "questions:required")
}

func TestValidate_BusinessRules(t *testing.T) {
	test := validTest()
	test.Questions[1].GlobalID = "1"
	test.Questions[0].CorrectAnswer = models.AnswerKey{"A", "B"}
	test.Questions[1].Options = append(test.Questions[1].Options, models.Option{Key: "A"})
	test.Questions[1].CorrectAnswer = models.AnswerKey{"A", "Z"}

	err := New().Validate(test)
	require.Error(t, err)

	got := rules(err.(ValidationErrors))
	assert.ElementsMatch(t, []string{
		"questions[0].correctAnswer:single_answer",
		"questions[1].globalId:unique_global_id",
		"questions[1].options:unique_option_key",
		"questions[1].correctAnswer:answer_in_options",
	}, got)
}

func TestValidateBusiness_IgnoresOtherTypes(t *testing.T) {
	assert.Empty(t, New().ValidateBusiness(struct{ Name string }{"x"}))
}

func TestCustomTags(t *testing.T) {
	type request struct {
		Action models.ExamAction `json:"action" validate:"required,exam_action"`
		Format string            `json:"format" validate:"export_format"`
	}

	v := New()
	assert.NoError(t, v.ValidateStruct(request{Action: models.ActionSaveNext}))
	assert.NoError(t, v.ValidateStruct(request{Action: models.ActionSelect, Format: "xlsx"}))

	err := v.ValidateStruct(request{Action: "jump", Format: "csv"})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"action:exam_action", "format:export_format"}, rules(ToValidationErrors(err)))
}
