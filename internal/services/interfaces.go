package services

import (
	"context"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
)

// ===== SERVICE INTERFACES =====

// SessionService runs live exam sessions
type SessionService interface {
	Start(ctx context.Context, req *StartSessionRequest) (*models.SessionView, error)
	Get(ctx context.Context, sessionID string) (*models.SessionView, error)
	PerformAction(ctx context.Context, sessionID string, req *ActionRequest) (*models.SessionView, error)
	Summary(ctx context.Context, sessionID string) (*models.SubmissionSummary, error)
	Submit(ctx context.Context, sessionID string) (*models.Submission, error)
	ListTests(ctx context.Context) ([]models.TestSummary, error)
	ActiveSessions() int
	Shutdown()
}

// ResultService serves submitted results and their review data
type ResultService interface {
	Get(ctx context.Context, sessionID string) (*models.Submission, error)
	AddNote(ctx context.Context, sessionID string, index int, note string) (*models.QuestionDetail, error)
	Analysis(ctx context.Context, sessionID string) (*models.TimingAnalysis, error)
	Export(ctx context.Context, sessionID string, format models.ExportFormat) (*ExportFile, error)
	List(ctx context.Context, filters repositories.ResultFilters) (*ResultListResponse, error)
	Delete(ctx context.Context, sessionID string) error
}

// ExportService renders submissions as downloadable documents
type ExportService interface {
	Build(sub *models.Submission) *models.ResultExport
	JSON(sub *models.Submission) (*ExportFile, error)
	XLSX(sub *models.Submission) (*ExportFile, error)
}

// TestLoader resolves test definitions
type TestLoader interface {
	Load(ctx context.Context, source string) (*models.TestDefinition, error)
	Prepare(test *models.TestDefinition) error
	List(ctx context.Context) ([]models.TestSummary, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type StartSessionRequest struct {
	// TestSource is a test id, a path inside the tests directory or an http(s) URL.
	TestSource string                 `json:"test_source" validate:"required_without=Test,max=2048"`
	Test       *models.TestDefinition `json:"test,omitempty" validate:"-"`
	Candidate  models.CandidateData   `json:"candidate"`
}

type ActionRequest struct {
	Action  models.ExamAction `json:"action" validate:"required,exam_action"`
	Key     string            `json:"key,omitempty"`
	Checked *bool             `json:"checked,omitempty"`
	Index   *int              `json:"index,omitempty"`
	Subject string            `json:"subject,omitempty"`
}

type NoteRequest struct {
	Note string `json:"note" validate:"max=5000"`
}

type ExportFile struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

type ResultListItem struct {
	SessionID      string  `json:"session_id"`
	TestTitle      string  `json:"test_title"`
	CandidateName  string  `json:"candidate_name"`
	RollNumber     string  `json:"roll_number"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
	Percentage     float64 `json:"percentage"`
	Attempted      int     `json:"attempted"`
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
	TotalQuestions int     `json:"total_questions"`
	TimeSpent      string  `json:"time_spent"`
	AutoSubmitted  bool    `json:"auto_submitted"`
	SubmittedAt    string  `json:"submitted_at"`
}

type ResultListResponse struct {
	Results []ResultListItem `json:"results"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
