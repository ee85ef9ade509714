package models

import "time"

type SessionState string

const (
	SessionActive    SessionState = "active"
	SessionSubmitted SessionState = "submitted"
)

// SessionSnapshot is an opaque, self-contained copy of a session. It is enough
// to rebuild the review screens without the live session.
type SessionSnapshot struct {
	SessionID        string          `json:"session_id"`
	State            SessionState    `json:"state"`
	Test             *TestDefinition `json:"test"`
	Candidate        CandidateData   `json:"candidate"`
	Answers          []AnswerState   `json:"answers"`
	CurrentIndex     int             `json:"current_index"`
	CurrentSubject   string          `json:"current_subject"`
	RemainingSeconds int             `json:"remaining_seconds"`
	ElapsedSeconds   int             `json:"elapsed_seconds"`
	StartedAt        time.Time       `json:"started_at"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	AutoSubmitted    bool            `json:"auto_submitted"`
	Result           *ResultSet      `json:"result,omitempty"`
}

// PaletteEntry is one cell of the question palette.
type PaletteEntry struct {
	Index   int          `json:"index"`
	Label   string       `json:"label"`
	Subject string       `json:"subject"`
	Status  AnswerStatus `json:"status"`
	Current bool         `json:"current"`
}

// SessionView is what a client needs to draw the exam screen.
type SessionView struct {
	SessionID           string            `json:"session_id"`
	State               SessionState      `json:"state"`
	TestTitle           string            `json:"test_title"`
	Candidate           CandidateData     `json:"candidate"`
	Subjects            []string          `json:"subjects"`
	CurrentSubject      string            `json:"current_subject"`
	CurrentIndex        int               `json:"current_index"`
	Question            Question          `json:"question"`
	Answer              AnswerState       `json:"answer"`
	QuestionTimeSeconds int               `json:"question_time_seconds"`
	RemainingSeconds    int               `json:"remaining_seconds"`
	RemainingFormatted  string            `json:"remaining_formatted"`
	TimeWarning         bool              `json:"time_warning"`
	Palette             []PaletteEntry    `json:"palette"`
	Summary             SubmissionSummary `json:"summary"`
}
