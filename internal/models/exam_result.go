package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ExamResult is the persisted form of a Submission. Payload carries the full
// submission; the remaining columns exist for listing and filtering.
type ExamResult struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	SessionID        string         `json:"session_id" gorm:"not null;size:36;uniqueIndex"`
	TestTitle        string         `json:"test_title" gorm:"not null;size:200;index"`
	CandidateName    string         `json:"candidate_name" gorm:"size:100"`
	RollNumber       string         `json:"roll_number" gorm:"size:50;index"`
	TotalQuestions   int            `json:"total_questions"`
	Attempted        int            `json:"attempted"`
	Correct          int            `json:"correct"`
	Incorrect        int            `json:"incorrect"`
	Score            float64        `json:"score"`
	MaxScore         float64        `json:"max_score"`
	TimeSpentSeconds int            `json:"time_spent"`
	AutoSubmitted    bool           `json:"auto_submitted" gorm:"default:false"`
	Payload          datatypes.JSON `json:"-" gorm:"type:jsonb"` // Submission
	SubmittedAt      time.Time      `json:"submitted_at" gorm:"index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

func NewExamResult(sub *Submission) (*ExamResult, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	result := sub.Result
	if result == nil {
		result = NewEmptyResultSet()
	}

	title := ""
	if sub.Test != nil {
		title = sub.Test.TestTitle
	}

	return &ExamResult{
		SessionID:        sub.SessionID,
		TestTitle:        title,
		CandidateName:    sub.Candidate.Name,
		RollNumber:       sub.Candidate.RollNumber,
		TotalQuestions:   result.TotalQuestions,
		Attempted:        result.Attempted,
		Correct:          result.Correct,
		Incorrect:        result.Incorrect,
		Score:            result.Score,
		MaxScore:         result.MaxScore,
		TimeSpentSeconds: sub.TimeSpentSeconds,
		AutoSubmitted:    sub.AutoSubmitted,
		Payload:          datatypes.JSON(payload),
		SubmittedAt:      sub.SubmittedAt,
	}, nil
}

// Submission decodes the stored payload.
func (r *ExamResult) Submission() (*Submission, error) {
	var sub Submission
	if err := json.Unmarshal(r.Payload, &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission payload: %w", err)
	}
	return &sub, nil
}

// SetSubmission replaces the payload, keeping the summary columns in sync.
func (r *ExamResult) SetSubmission(sub *Submission) error {
	updated, err := NewExamResult(sub)
	if err != nil {
		return err
	}
	updated.ID = r.ID
	updated.CreatedAt = r.CreatedAt
	*r = *updated
	return nil
}
