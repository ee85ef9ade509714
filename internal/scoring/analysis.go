package scoring

import (
	"github.com/Rtx09x/Meow-Mocks/internal/models"
)

// Analyze breaks down time spent by subject and by correctness.
// testSeconds is the elapsed session time.
func Analyze(test *models.TestDefinition, answers []models.AnswerState, testSeconds int) *models.TimingAnalysis {
	analysis := &models.TimingAnalysis{
		TestTimeSeconds: testSeconds,
		Subjects:        make(map[string]*models.SubjectTiming),
		SubjectOrder:    make([]string, 0),
	}

	for i := range answers {
		a := &answers[i]
		subject := a.Subject
		if test != nil && i < len(test.Questions) {
			subject = test.Questions[i].SubjectOrDefault()
		}
		if subject == "" {
			subject = models.DefaultSubject
		}

		timing, ok := analysis.Subjects[subject]
		if !ok {
			timing = &models.SubjectTiming{}
			analysis.Subjects[subject] = timing
			analysis.SubjectOrder = append(analysis.SubjectOrder, subject)
		}

		seconds := a.TimeSpentSeconds
		analysis.TotalQuestionSeconds += seconds
		timing.Add(seconds)

		switch a.Correctness {
		case models.CorrectnessCorrect:
			timing.CorrectSeconds += seconds
			analysis.Correctness.Correct.Add(seconds)
		case models.CorrectnessIncorrect:
			timing.IncorrectSeconds += seconds
			analysis.Correctness.Incorrect.Add(seconds)
		default:
			timing.NotAttemptedSeconds += seconds
			analysis.Correctness.NotAttempted.Add(seconds)
		}
	}

	for _, timing := range analysis.Subjects {
		timing.Finalize()
	}
	analysis.Correctness.Correct.Finalize()
	analysis.Correctness.Incorrect.Finalize()
	analysis.Correctness.NotAttempted.Finalize()

	overall := models.TimingBucket{Count: len(answers), TotalSeconds: analysis.TotalQuestionSeconds}
	overall.Finalize()
	analysis.AverageSecondsPerQuestion = overall.AverageSeconds

	return analysis
}
