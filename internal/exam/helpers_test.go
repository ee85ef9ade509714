package exam

import (
	"github.com/Rtx09x/Meow-Mocks/internal/models"
)

// mockTest has two Physics questions, one Chemistry question and one Maths question.
func mockTest() *models.TestDefinition {
	test := &models.TestDefinition{
		TestTitle:       "Mock Test 1",
		Duration:        10,
		ImagePathPrefix: "/assets/",
		Questions: []models.Question{
			{GlobalID: "1", DisplayID: "1", Subject: "Physics", Type: models.SingleChoiceSubject,
				Text:    `<img src="{IMAGE_PATH_PREFIX}p1.png">`,
				Options: models.Options{{Key: "A", Text: "1"}, {Key: "B", Text: "2"}, {Key: "C", Text: "3"}}, CorrectAnswer: models.AnswerKey{"B"}},
			{GlobalID: "2", DisplayID: "2", Subject: "Physics", Type: models.MultipleChoiceSubject,
				Options: models.Options{{Key: "A"}, {Key: "B"}, {Key: "C"}, {Key: "D"}}, CorrectAnswer: models.AnswerKey{"A", "C"}},
			{GlobalID: "3", DisplayID: "1", Subject: "Chemistry", Type: models.SingleChoiceSubject,
				Options: models.Options{{Key: "A"}, {Key: "B"}}, CorrectAnswer: models.AnswerKey{"A"}},
			{GlobalID: "4", DisplayID: "1", Subject: "Maths", Type: models.MultipleChoiceSubject,
				Options: models.Options{{Key: "A"}, {Key: "B"}}, CorrectAnswer: models.AnswerKey{"B"}},
		},
	}
	test.Normalize(180)
	return test
}

func startedNavigator() (*Navigator, *AnswerStore, *QuestionTimer) {
	test := mockTest()
	store := NewAnswerStore(test.Questions)
	timer := NewQuestionTimer()
	nav := NewNavigator(test, store, timer)
	if err := nav.Start(); err != nil {
		panic(err)
	}
	return nav, store, timer
}

func status(store *AnswerStore, index int) models.AnswerStatus {
	state, err := store.Get(index)
	if err != nil {
		panic(err)
	}
	return state.Status
}
