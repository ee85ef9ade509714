package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rtx09x/Meow-Mocks/internal/cache"
	"github.com/Rtx09x/Meow-Mocks/internal/exam"
	"github.com/Rtx09x/Meow-Mocks/internal/loader"
	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"github.com/Rtx09x/Meow-Mocks/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

type mockResultRepository struct {
	mock.Mock
}

func (m *mockResultRepository) Create(ctx context.Context, result *models.ExamResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.ExamResult, error) {
	args := m.Called(ctx, sessionID)
	if r := args.Get(0); r != nil {
		return r.(*models.ExamResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResultRepository) Update(ctx context.Context, result *models.ExamResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultRepository) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockResultRepository) List(ctx context.Context, filters repositories.ResultFilters) ([]*models.ExamResult, int64, error) {
	args := m.Called(ctx, filters)
	var rows []*models.ExamResult
	if r := args.Get(0); r != nil {
		rows = r.([]*models.ExamResult)
	}
	return rows, args.Get(1).(int64), args.Error(2)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}

var _ cache.CacheService = (*mockCache)(nil)

// ===== FIXTURES =====

const fixtureDefinition = `{
  "testTitle": "Mock Test",
  "duration": 1,
  "questions": [
    {"globalId": "p1", "id": "1", "subject": "Physics", "question_type": "single_choice_subject",
     "text": "<p>What is <b>2+2</b>?</p>", "options": {"A": "4", "B": "5"}, "correctAnswer": "A"},
    {"globalId": "p2", "id": "2", "subject": "Physics", "question_type": "multiple_choice_subject",
     "text": "Pick primes", "options": {"A": "2", "B": "3", "C": "4"}, "correctAnswer": ["A", "B"]},
    {"globalId": "c1", "id": "1", "subject": "Chemistry", "question_type": "single_choice_subject",
     "text": "Noble gas?", "options": {"A": "N", "B": "O", "C": "Ne"}, "correctAnswer": "C"}
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureLoader(t *testing.T) *loader.Loader {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mock.json"), []byte(fixtureDefinition), 0o644))
	return loader.New(loader.Config{TestsDir: dir}, validator.New(), discardLogger())
}

func fixtureTest(t *testing.T) *models.TestDefinition {
	t.Helper()
	test, err := fixtureLoader(t).Load(context.Background(), "mock")
	require.NoError(t, err)
	return test
}

func candidate() models.CandidateData {
	return models.CandidateData{Name: "Asha Rao", RollNumber: "R-101"}
}

// submittedFixture answers q1 wrong, q2 right and leaves q3 unanswered.
func submittedFixture(t *testing.T) *models.Submission {
	t.Helper()
	s, err := exam.NewSession(fixtureTest(t), exam.Options{
		ID:        "fixture-session",
		Candidate: candidate(),
		Clock:     exam.NewFakeClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	tick := func(n int) {
		for i := 0; i < n; i++ {
			s.Tick()
		}
	}

	tick(5)
	require.NoError(t, s.SelectOption("B"))
	require.NoError(t, s.SaveAndNext())
	tick(7)
	require.NoError(t, s.ToggleOption("A", true))
	require.NoError(t, s.ToggleOption("B", true))
	require.NoError(t, s.SaveAndNext())
	tick(2)

	sub, err := s.Submit()
	require.NoError(t, err)
	return sub
}
