package models

type AnswerStatus string

const (
	StatusNotVisited      AnswerStatus = "not-visited"
	StatusNotAnswered     AnswerStatus = "not-answered"
	StatusAnswered        AnswerStatus = "answered"
	StatusMarkedForReview AnswerStatus = "marked-review"
)

type Correctness string

const (
	CorrectnessUnset        Correctness = ""
	CorrectnessCorrect      Correctness = "correct"
	CorrectnessIncorrect    Correctness = "incorrect"
	CorrectnessNotAttempted Correctness = "not-attempted"
)

// AnswerState tracks one question for the lifetime of a session.
// Selected holds at most one key for single-choice questions.
type AnswerState struct {
	QuestionID       string       `json:"question_id"`
	Subject          string       `json:"subject"`
	QuestionType     QuestionType `json:"question_type"`
	Selected         []string     `json:"selected"`
	Status           AnswerStatus `json:"status"`
	TimeSpentSeconds int          `json:"time_spent"`
	VisitCount       int          `json:"visit_count"`
	Correctness      Correctness  `json:"correctness,omitempty"`
}

// NewAnswerState builds the initial state for a question.
func NewAnswerState(q *Question) AnswerState {
	return AnswerState{
		QuestionID:   q.GlobalID.String(),
		Subject:      q.SubjectOrDefault(),
		QuestionType: q.Type,
		Selected:     []string{},
		Status:       StatusNotVisited,
	}
}

func (a *AnswerState) HasSelection() bool {
	return len(a.Selected) > 0
}

func (a *AnswerState) IsSelected(key string) bool {
	for _, k := range a.Selected {
		if k == key {
			return true
		}
	}
	return false
}

// SubmissionSummary counts answers by status, as shown before a candidate confirms submission.
type SubmissionSummary struct {
	Total           int `json:"total"`
	Answered        int `json:"answered"`
	NotAnswered     int `json:"not_answered"`
	MarkedForReview int `json:"marked_for_review"`
	NotVisited      int `json:"not_visited"`
}

func Summarize(answers []AnswerState) SubmissionSummary {
	summary := SubmissionSummary{Total: len(answers)}
	for i := range answers {
		switch answers[i].Status {
		case StatusAnswered:
			summary.Answered++
		case StatusMarkedForReview:
			summary.MarkedForReview++
		case StatusNotVisited:
			summary.NotVisited++
			summary.NotAnswered++
		default:
			summary.NotAnswered++
		}
	}
	return summary
}
