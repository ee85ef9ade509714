package models

import "time"

// Submission is the frozen outcome of a session, handed to persistence and review.
type Submission struct {
	SessionID        string          `json:"session_id"`
	Test             *TestDefinition `json:"test"`
	Candidate        CandidateData   `json:"candidate"`
	Result           *ResultSet      `json:"result"`
	Answers          []AnswerState   `json:"answers"`
	TimeSpentSeconds int             `json:"time_spent"`
	AutoSubmitted    bool            `json:"auto_submitted"`
	StartedAt        time.Time       `json:"started_at"`
	SubmittedAt      time.Time       `json:"submitted_at"`
}
