package models

import (
	"fmt"

	apperrors "github.com/Rtx09x/Meow-Mocks/internal/errors"
)

// SubjectResult has the same shape as the ResultSet totals, restricted to one subject.
type SubjectResult struct {
	Total     int     `json:"total"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
}

// QuestionDetail is the grading outcome of one question.
type QuestionDetail struct {
	QuestionID     string       `json:"question_id"`
	QuestionNumber string       `json:"question_number"`
	Subject        string       `json:"subject"`
	QuestionType   QuestionType `json:"question_type"`
	Attempted      bool         `json:"attempted"`
	Correct        bool         `json:"correct"`
	Correctness    Correctness  `json:"correctness"`
	UserAnswer     []string     `json:"user_answer"`
	CorrectAnswer  []string     `json:"correct_answer"`
	Score          float64      `json:"score"`
	MaxScore       float64      `json:"max_score"`
	TimeSpent      int          `json:"time_spent"`
	VisitCount     int          `json:"visit_count"`
	Notes          string       `json:"notes,omitempty"`
}

// ResultSet is produced once per submission. Only notes may change afterwards.
type ResultSet struct {
	TotalQuestions  int                       `json:"total_questions"`
	Attempted       int                       `json:"attempted"`
	Correct         int                       `json:"correct"`
	Incorrect       int                       `json:"incorrect"`
	Score           float64                   `json:"score"`
	MaxScore        float64                   `json:"max_score"`
	Subjects        map[string]*SubjectResult `json:"subjects"`
	SubjectOrder    []string                  `json:"subject_order"`
	QuestionDetails []QuestionDetail          `json:"question_details"`
}

// NewEmptyResultSet returns a zeroed result with non-nil collections.
func NewEmptyResultSet() *ResultSet {
	return &ResultSet{
		Subjects:        make(map[string]*SubjectResult),
		SubjectOrder:    make([]string, 0),
		QuestionDetails: make([]QuestionDetail, 0),
	}
}

// Subject returns the bucket for name, creating it on first use.
func (r *ResultSet) Subject(name string) *SubjectResult {
	if bucket, ok := r.Subjects[name]; ok {
		return bucket
	}
	bucket := &SubjectResult{}
	r.Subjects[name] = bucket
	r.SubjectOrder = append(r.SubjectOrder, name)
	return bucket
}

// AttachNote stores a free-text review note against the question at index.
func (r *ResultSet) AttachNote(index int, note string) error {
	if index < 0 || index >= len(r.QuestionDetails) {
		return fmt.Errorf("%w: question %d of %d", apperrors.ErrInvalidIndex, index, len(r.QuestionDetails))
	}
	r.QuestionDetails[index].Notes = note
	return nil
}

// Percentage is the score relative to the maximum, or 0 when nothing can be scored.
func (r *ResultSet) Percentage() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return r.Score / r.MaxScore * 100
}
