package handlers

import (
	"context"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"github.com/Rtx09x/Meow-Mocks/internal/services"
	"github.com/stretchr/testify/mock"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Start(ctx context.Context, req *services.StartSessionRequest) (*models.SessionView, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.SessionView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionService) Get(ctx context.Context, sessionID string) (*models.SessionView, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.SessionView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionService) PerformAction(ctx context.Context, sessionID string, req *services.ActionRequest) (*models.SessionView, error) {
	args := m.Called(ctx, sessionID, req)
	if v := args.Get(0); v != nil {
		return v.(*models.SessionView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionService) Summary(ctx context.Context, sessionID string) (*models.SubmissionSummary, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.SubmissionSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionService) Submit(ctx context.Context, sessionID string) (*models.Submission, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.Submission), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionService) ListTests(ctx context.Context) ([]models.TestSummary, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.TestSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionService) ActiveSessions() int {
	return m.Called().Int(0)
}

func (m *mockSessionService) Shutdown() {
	m.Called()
}

type mockResultService struct {
	mock.Mock
}

func (m *mockResultService) Get(ctx context.Context, sessionID string) (*models.Submission, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.Submission), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResultService) AddNote(ctx context.Context, sessionID string, index int, note string) (*models.QuestionDetail, error) {
	args := m.Called(ctx, sessionID, index, note)
	if v := args.Get(0); v != nil {
		return v.(*models.QuestionDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResultService) Analysis(ctx context.Context, sessionID string) (*models.TimingAnalysis, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.TimingAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResultService) Export(ctx context.Context, sessionID string, format models.ExportFormat) (*services.ExportFile, error) {
	args := m.Called(ctx, sessionID, format)
	if v := args.Get(0); v != nil {
		return v.(*services.ExportFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResultService) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockResultService) List(ctx context.Context, filters repositories.ResultFilters) (*services.ResultListResponse, error) {
	args := m.Called(ctx, filters)
	if v := args.Get(0); v != nil {
		return v.(*services.ResultListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}
