package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "meow-mocks"
	eventVersion = "1.0"
)

// EventType represents the lifecycle events of an exam session
type EventType string

const (
	EventSessionStarted EventType = "exam.session_started"
	EventTimeWarning    EventType = "exam.time_warning"
	EventSubmitted      EventType = "exam.submitted"
)

// ExamEvent is the envelope for every published exam event
type ExamEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	SessionID string                 `json:"session_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SessionStartedEvent struct {
	TestID          string    `json:"test_id"`
	TestTitle       string    `json:"test_title"`
	CandidateName   string    `json:"candidate_name"`
	RollNumber      string    `json:"roll_number"`
	TotalQuestions  int       `json:"total_questions"`
	DurationMinutes int       `json:"duration_minutes"`
	StartedAt       time.Time `json:"started_at"`
}

type TimeWarningEvent struct {
	TestTitle        string    `json:"test_title"`
	RollNumber       string    `json:"roll_number"`
	RemainingSeconds int       `json:"remaining_seconds"`
	WarningTime      time.Time `json:"warning_time"`
}

type SubmittedEvent struct {
	TestTitle        string    `json:"test_title"`
	CandidateName    string    `json:"candidate_name"`
	RollNumber       string    `json:"roll_number"`
	Score            float64   `json:"score"`
	MaxScore         float64   `json:"max_score"`
	Attempted        int       `json:"attempted"`
	Correct          int       `json:"correct"`
	Incorrect        int       `json:"incorrect"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	AutoSubmitted    bool      `json:"auto_submitted"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

func newExamEvent(eventType EventType, sessionID string, data interface{}) *ExamEvent {
	return &ExamEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		SessionID: sessionID,
		Data:      data,
	}
}

func NewSessionStartedEvent(sessionID string, data SessionStartedEvent) *ExamEvent {
	return newExamEvent(EventSessionStarted, sessionID, data)
}

func NewTimeWarningEvent(sessionID string, data TimeWarningEvent) *ExamEvent {
	return newExamEvent(EventTimeWarning, sessionID, data)
}

func NewSubmittedEvent(sessionID string, data SubmittedEvent) *ExamEvent {
	return newExamEvent(EventSubmitted, sessionID, data)
}

func GenerateEventID() string {
	return uuid.NewString()
}
