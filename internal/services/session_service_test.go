package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rtx09x/Meow-Mocks/internal/cache"
	"github.com/Rtx09x/Meow-Mocks/internal/events"
	"github.com/Rtx09x/Meow-Mocks/internal/exam"
	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"github.com/Rtx09x/Meow-Mocks/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc       SessionService
	repo      *mockResultRepository
	cache     *mockCache
	publisher *events.MockEventPublisher
	clock     *exam.FakeClock
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		repo:      new(mockResultRepository),
		cache:     new(mockCache),
		publisher: events.NewMockEventPublisher(discardLogger()),
		clock:     exam.NewFakeClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	f.svc = NewSessionService(fixtureLoader(t), f.repo, f.cache, f.publisher, validator.New(), discardLogger(),
		SessionServiceConfig{WarningSeconds: 30, SnapshotTTL: time.Hour, Clock: f.clock})
	t.Cleanup(f.svc.Shutdown)
	return f
}

func (f *sessionFixture) start(t *testing.T) *models.SessionView {
	t.Helper()
	view, err := f.svc.Start(context.Background(), &StartSessionRequest{TestSource: "mock", Candidate: candidate()})
	require.NoError(t, err)
	return view
}

func (f *sessionFixture) act(t *testing.T, id string, req ActionRequest) *models.SessionView {
	t.Helper()
	view, err := f.svc.PerformAction(context.Background(), id, &req)
	require.NoError(t, err)
	return view
}

func intPtr(i int) *int { return &i }

func TestSessionService_Start(t *testing.T) {
	f := newSessionFixture(t)

	view := f.start(t)

	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, models.SessionActive, view.State)
	assert.Equal(t, "Mock Test", view.TestTitle)
	assert.Equal(t, 0, view.CurrentIndex)
	assert.Equal(t, "Physics", view.CurrentSubject)
	assert.Equal(t, []string{"Physics", "Chemistry"}, view.Subjects)
	assert.Equal(t, models.StatusNotAnswered, view.Answer.Status)
	assert.Equal(t, 60, view.RemainingSeconds)
	assert.Equal(t, "00:01:00", view.RemainingFormatted)
	assert.Equal(t, 1, f.svc.ActiveSessions())

	started := f.publisher.EventsOfType(events.EventSessionStarted)
	require.Len(t, started, 1)
	assert.Equal(t, view.SessionID, started[0].SessionID)

	f.cache.AssertCalled(t, "Set", mock.Anything, cache.SessionKey(view.SessionID), mock.Anything, time.Hour)
}

func TestSessionService_StartInlineTest(t *testing.T) {
	f := newSessionFixture(t)

	test := fixtureTest(t)
	test.Duration = 0
	view, err := f.svc.Start(context.Background(), &StartSessionRequest{Test: test, Candidate: candidate()})
	require.NoError(t, err)
	assert.Equal(t, 180*60, view.RemainingSeconds)
}

func TestSessionService_StartErrors(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, &StartSessionRequest{TestSource: "mock"})
	assert.True(t, IsValidation(err), "missing candidate: %v", err)

	_, err = f.svc.Start(ctx, &StartSessionRequest{Candidate: candidate()})
	assert.True(t, IsValidation(err), "missing source: %v", err)

	_, err = f.svc.Start(ctx, &StartSessionRequest{TestSource: "nope", Candidate: candidate()})
	assert.True(t, IsLoadError(err), "unknown test: %v", err)

	_, err = f.svc.Start(ctx, &StartSessionRequest{Test: &models.TestDefinition{TestTitle: "Empty"}, Candidate: candidate()})
	assert.True(t, IsLoadError(err), "inline test without questions: %v", err)

	_, err = f.svc.Start(ctx, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	assert.Equal(t, 0, f.svc.ActiveSessions())
}

func TestSessionService_ActionsAndSubmit(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	var persisted *models.ExamResult
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.ExamResult")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*models.ExamResult) }).
		Return(nil).Once()

	id := f.start(t).SessionID

	view := f.act(t, id, ActionRequest{Action: models.ActionSelect, Key: "B"})
	assert.Equal(t, models.StatusAnswered, view.Answer.Status)
	assert.Equal(t, []string{"B"}, view.Answer.Selected)

	view = f.act(t, id, ActionRequest{Action: models.ActionSaveNext})
	assert.Equal(t, 1, view.CurrentIndex)

	view = f.act(t, id, ActionRequest{Action: models.ActionToggle, Key: "A"})
	assert.Equal(t, []string{"A"}, view.Answer.Selected)
	view = f.act(t, id, ActionRequest{Action: models.ActionToggle, Key: "B"})
	assert.ElementsMatch(t, []string{"A", "B"}, view.Answer.Selected)
	view = f.act(t, id, ActionRequest{Action: models.ActionToggle, Key: "B"})
	assert.Equal(t, []string{"A"}, view.Answer.Selected)
	checked := true
	view = f.act(t, id, ActionRequest{Action: models.ActionToggle, Key: "B", Checked: &checked})
	assert.ElementsMatch(t, []string{"A", "B"}, view.Answer.Selected)

	view = f.act(t, id, ActionRequest{Action: models.ActionSwitchSubject, Subject: "Chemistry"})
	assert.Equal(t, 2, view.CurrentIndex)
	view = f.act(t, id, ActionRequest{Action: models.ActionMarkReview})
	assert.Equal(t, 0, view.CurrentIndex)
	assert.Equal(t, models.StatusMarkedForReview, view.Palette[2].Status)

	view = f.act(t, id, ActionRequest{Action: models.ActionNavigate, Index: intPtr(2)})
	assert.Equal(t, 2, view.CurrentIndex)
	view = f.act(t, id, ActionRequest{Action: models.ActionClear})
	assert.Equal(t, models.StatusNotAnswered, view.Answer.Status)

	summary, err := f.svc.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSummary{Total: 3, Answered: 2, NotAnswered: 1}, *summary)

	sub, err := f.svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.False(t, sub.AutoSubmitted)
	assert.Equal(t, 3.0, sub.Result.Score)
	assert.Equal(t, 10.0, sub.Result.MaxScore)
	assert.Equal(t, 2, sub.Result.Attempted)

	f.repo.AssertExpectations(t)
	require.NotNil(t, persisted)
	assert.Equal(t, id, persisted.SessionID)
	assert.Equal(t, 3.0, persisted.Score)
	assert.Equal(t, 0, f.svc.ActiveSessions())
	assert.Len(t, f.publisher.EventsOfType(events.EventSubmitted), 1)
	f.cache.AssertCalled(t, "Set", mock.Anything, cache.ResultKey(id), mock.Anything, time.Hour)

	f.repo.On("GetBySessionID", mock.Anything, id).Return(persisted, nil)

	_, err = f.svc.Submit(ctx, id)
	assert.ErrorIs(t, err, ErrSessionSubmitted)
	assert.True(t, IsConflict(err))

	_, err = f.svc.PerformAction(ctx, id, &ActionRequest{Action: models.ActionSaveNext})
	assert.True(t, IsConflict(err))
}

func TestSessionService_ActionErrors(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.repo.On("GetBySessionID", mock.Anything, "missing").Return(nil, repositories.ErrNotFound)

	id := f.start(t).SessionID

	tests := []struct {
		name  string
		req   ActionRequest
		check func(error) bool
	}{
		{"unknown action", ActionRequest{Action: "jump"}, IsValidation},
		{"select without key", ActionRequest{Action: models.ActionSelect}, IsValidation},
		{"navigate without index", ActionRequest{Action: models.ActionNavigate}, IsValidation},
		{"switch without subject", ActionRequest{Action: models.ActionSwitchSubject}, IsValidation},
		{"index out of range", ActionRequest{Action: models.ActionNavigate, Index: intPtr(3)}, IsValidation},
		{"unknown option", ActionRequest{Action: models.ActionSelect, Key: "Z"}, IsValidation},
		{"unknown subject", ActionRequest{Action: models.ActionSwitchSubject, Subject: "Biology"}, IsValidation},
		{"toggle on single choice", ActionRequest{Action: models.ActionToggle, Key: "A"}, IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.PerformAction(ctx, id, &req)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error class: %v", err)
		})
	}

	view, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, view.CurrentIndex)
	assert.Empty(t, view.Answer.Selected)

	_, err = f.svc.PerformAction(ctx, "missing", &ActionRequest{Action: models.ActionSaveNext})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestSessionService_AutoSubmitOnExpiry(t *testing.T) {
	f := newSessionFixture(t)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.ExamResult")).Return(nil).Once()

	id := f.start(t).SessionID
	f.act(t, id, ActionRequest{Action: models.ActionSelect, Key: "A"})

	require.Eventually(t, func() bool { return f.clock.Tickers() == 1 }, time.Second, 5*time.Millisecond)

	f.clock.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return len(f.publisher.EventsOfType(events.EventTimeWarning)) == 1
	}, time.Second, 5*time.Millisecond)

	f.clock.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return len(f.publisher.EventsOfType(events.EventSubmitted)) == 1
	}, time.Second, 5*time.Millisecond)

	submitted := f.publisher.EventsOfType(events.EventSubmitted)[0]
	data, ok := submitted.Data.(events.SubmittedEvent)
	require.True(t, ok)
	assert.True(t, data.AutoSubmitted)
	assert.Equal(t, 3.0, data.Score)
	assert.Equal(t, 60, data.TimeSpentSeconds)

	assert.Eventually(t, func() bool { return f.svc.ActiveSessions() == 0 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return f.clock.Tickers() == 0 }, time.Second, 5*time.Millisecond)
	f.repo.AssertExpectations(t)
}

func TestSessionService_ListTests(t *testing.T) {
	f := newSessionFixture(t)

	tests, err := f.svc.ListTests(context.Background())
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, "mock", tests[0].ID)
	assert.Equal(t, 3, tests[0].TotalQuestions)
}
