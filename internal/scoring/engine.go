// Package scoring grades a finished session. It has no side effects other
// than recording each answer's correctness.
package scoring

import (
	"github.com/Rtx09x/Meow-Mocks/internal/models"
)

// Grade is the outcome for a single question.
type Grade struct {
	Attempted   bool
	Correct     bool
	Correctness models.Correctness
	Score       float64
	Marking     models.MarkingScheme
}

// GradeQuestion grades one answer against its question.
func GradeQuestion(q *models.Question, a *models.AnswerState) Grade {
	g := Grade{
		Marking:     q.Marking(),
		Correctness: models.CorrectnessNotAttempted,
	}

	if !a.HasSelection() {
		return g
	}

	g.Attempted = true
	if q.Type.IsMultiple() {
		g.Correct = sameKeySet(a.Selected, q.CorrectAnswer)
	} else {
		g.Correct = len(a.Selected) == 1 && len(q.CorrectAnswer) == 1 && a.Selected[0] == q.CorrectAnswer[0]
	}

	if g.Correct {
		g.Correctness = models.CorrectnessCorrect
		g.Score = g.Marking.Correct
	} else {
		g.Correctness = models.CorrectnessIncorrect
		g.Score = g.Marking.Incorrect
	}
	return g
}

// sameKeySet reports whether both lists hold exactly the same keys.
func sameKeySet(selected []string, correct []string) bool {
	want := make(map[string]struct{}, len(correct))
	for _, k := range correct {
		want[k] = struct{}{}
	}
	got := make(map[string]struct{}, len(selected))
	for _, k := range selected {
		if _, ok := want[k]; !ok {
			return false
		}
		got[k] = struct{}{}
	}
	return len(got) == len(want)
}

// Complete reports whether answers line up one-to-one, in order, with the test's questions.
func Complete(test *models.TestDefinition, answers []models.AnswerState) bool {
	if test == nil || len(test.Questions) == 0 || len(answers) != len(test.Questions) {
		return false
	}
	for i := range test.Questions {
		if answers[i].QuestionID != test.Questions[i].GlobalID.String() {
			return false
		}
	}
	return true
}

// Score grades every question and aggregates totals per subject. Correctness
// is written back into answers. Incomplete input yields a zeroed result and
// leaves answers untouched.
func Score(test *models.TestDefinition, answers []models.AnswerState) *models.ResultSet {
	result := models.NewEmptyResultSet()
	if !Complete(test, answers) {
		return result
	}

	result.TotalQuestions = len(test.Questions)
	for i := range test.Questions {
		q := &test.Questions[i]
		a := &answers[i]
		subject := q.SubjectOrDefault()
		bucket := result.Subject(subject)

		g := GradeQuestion(q, a)

		bucket.Total++
		result.MaxScore += g.Marking.Correct
		bucket.MaxScore += g.Marking.Correct

		if g.Attempted {
			result.Attempted++
			bucket.Attempted++
			if g.Correct {
				result.Correct++
				bucket.Correct++
			} else {
				result.Incorrect++
				bucket.Incorrect++
			}
			result.Score += g.Score
			bucket.Score += g.Score
		}

		a.Correctness = g.Correctness

		result.QuestionDetails = append(result.QuestionDetails, models.QuestionDetail{
			QuestionID:     q.GlobalID.String(),
			QuestionNumber: q.Label(i),
			Subject:        subject,
			QuestionType:   q.Type,
			Attempted:      g.Attempted,
			Correct:        g.Correct,
			Correctness:    g.Correctness,
			UserAnswer:     append([]string{}, a.Selected...),
			CorrectAnswer:  append([]string{}, q.CorrectAnswer...),
			Score:          g.Score,
			MaxScore:       g.Marking.Correct,
			TimeSpent:      a.TimeSpentSeconds,
			VisitCount:     a.VisitCount,
		})
	}

	return result
}
