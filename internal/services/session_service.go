package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Rtx09x/Meow-Mocks/internal/cache"
	apperrors "github.com/Rtx09x/Meow-Mocks/internal/errors"
	"github.com/Rtx09x/Meow-Mocks/internal/events"
	"github.com/Rtx09x/Meow-Mocks/internal/exam"
	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/Rtx09x/Meow-Mocks/internal/validator"
)

const listenerTimeout = 10 * time.Second

type SessionServiceConfig struct {
	WarningSeconds int
	SnapshotTTL    time.Duration
	// Clock drives every session; nil means wall-clock time.
	Clock exam.Clock
}

type sessionService struct {
	mu       sync.RWMutex
	sessions map[string]*exam.Session

	loader    TestLoader
	repo      repositories.ResultRepository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
	config    SessionServiceConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionService creates the session registry. cacheService may be nil.
func NewSessionService(loader TestLoader, repo repositories.ResultRepository, cacheService cache.CacheService,
	publisher events.EventPublisher, v *validator.Validator, logger *slog.Logger, config SessionServiceConfig) SessionService {
	if config.Clock == nil {
		config.Clock = exam.RealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &sessionService{
		sessions:  make(map[string]*exam.Session),
		loader:    loader,
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: v,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "meow-mocks", Component: "session"}),
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ===== SESSION LIFECYCLE =====

func (s *sessionService) Start(ctx context.Context, req *StartSessionRequest) (view *models.SessionView, err error) {
	op := s.opLogger.WithOperation(ctx, "start_session", "")
	defer func() { op.LogResult(err) }()

	if req == nil {
		return nil, ErrBadRequest
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	test, err := s.resolveTest(ctx, req)
	if err != nil {
		return nil, err
	}

	session, err := exam.NewSession(test, exam.Options{
		Candidate:      req.Candidate,
		Clock:          s.config.Clock,
		WarningSeconds: s.config.WarningSeconds,
		Logger:         s.logger,
		Listeners:      []exam.Listener{s.onChange},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	op.sessionID = session.ID()

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(session)

	s.cacheSnapshot(ctx, session.Snapshot())
	s.publish(ctx, events.NewSessionStartedEvent(session.ID(), events.SessionStartedEvent{
		TestID:          test.ID,
		TestTitle:       test.TestTitle,
		CandidateName:   req.Candidate.Name,
		RollNumber:      req.Candidate.RollNumber,
		TotalQuestions:  len(test.Questions),
		DurationMinutes: test.Duration,
		StartedAt:       session.Snapshot().StartedAt,
	}))

	return s.view(session), nil
}

func (s *sessionService) resolveTest(ctx context.Context, req *StartSessionRequest) (*models.TestDefinition, error) {
	if req.Test == nil {
		return s.loader.Load(ctx, req.TestSource)
	}
	test := *req.Test
	if err := s.loader.Prepare(&test); err != nil {
		return nil, apperrors.NewLoadError("inline", err)
	}
	return &test, nil
}

func (s *sessionService) run(session *exam.Session) {
	defer s.wg.Done()
	if err := session.Run(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Session tick loop stopped", "session_id", session.ID(), "error", err)
	}
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.SessionView, error) {
	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *sessionService) Summary(ctx context.Context, sessionID string) (*models.SubmissionSummary, error) {
	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := session.Summary()
	return &summary, nil
}

func (s *sessionService) Submit(ctx context.Context, sessionID string) (sub *models.Submission, err error) {
	op := s.opLogger.WithOperation(ctx, "submit_session", sessionID)
	defer func() { op.LogResult(err) }()

	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Submit()
}

// ===== ACTIONS =====

func (s *sessionService) PerformAction(ctx context.Context, sessionID string, req *ActionRequest) (view *models.SessionView, err error) {
	op := s.opLogger.WithOperation(ctx, "perform_action", sessionID)
	defer func() { op.LogResult(err) }()

	if req == nil {
		return nil, ErrBadRequest
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err = validateActionArgs(req); err != nil {
		return nil, err
	}

	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case models.ActionSelect:
		err = session.SelectOption(req.Key)
	case models.ActionToggle:
		if req.Checked == nil {
			err = session.FlipOption(req.Key)
		} else {
			err = session.ToggleOption(req.Key, *req.Checked)
		}
	case models.ActionClear:
		err = session.ClearResponse()
	case models.ActionMarkReview:
		err = session.MarkForReview()
	case models.ActionSaveNext:
		err = session.SaveAndNext()
	case models.ActionNavigate:
		err = session.GoTo(*req.Index)
	case models.ActionSwitchSubject:
		err = session.SwitchSubject(req.Subject)
	}
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func validateActionArgs(req *ActionRequest) error {
	var errs ValidationErrors
	switch req.Action {
	case models.ActionSelect, models.ActionToggle:
		if req.Key == "" {
			errs = append(errs, *NewValidationError("key", "is required for "+string(req.Action), nil))
		}
	case models.ActionNavigate:
		if req.Index == nil {
			errs = append(errs, *NewValidationError("index", "is required for navigate", nil))
		}
	case models.ActionSwitchSubject:
		if req.Subject == "" {
			errs = append(errs, *NewValidationError("subject", "is required for switch_subject", nil))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ===== QUERIES =====

func (s *sessionService) ListTests(ctx context.Context) ([]models.TestSummary, error) {
	tests, err := s.loader.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return tests, nil
}

func (s *sessionService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown stops every tick loop. Unsubmitted sessions keep their cached snapshot.
func (s *sessionService) Shutdown() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("Session service stopped", "active_sessions", s.ActiveSessions())
}

// lookup returns a live session. Sessions leave the registry once submitted.
func (s *sessionService) lookup(ctx context.Context, sessionID string) (*exam.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return session, nil
	}

	if _, err := s.repo.GetBySessionID(ctx, sessionID); err == nil {
		return nil, ErrSessionSubmitted
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check session %s: %w", sessionID, err)
	}
	return nil, ErrSessionNotFound
}

func (s *sessionService) view(session *exam.Session) *models.SessionView {
	view := session.View()
	view.RemainingFormatted = utils.FormatDuration(view.RemainingSeconds)
	return view
}

// ===== CHANGE LISTENER =====

func (s *sessionService) onChange(change exam.Change) {
	ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
	defer cancel()

	switch change.Kind {
	case exam.ChangeSubmitted:
		s.handleSubmitted(ctx, change.Submission)
		s.cacheSnapshot(ctx, change.Snapshot)
	case exam.ChangeTimeWarning:
		s.cacheSnapshot(ctx, change.Snapshot)
		snap := change.Snapshot
		s.publish(ctx, events.NewTimeWarningEvent(change.SessionID, events.TimeWarningEvent{
			TestTitle:        snap.Test.TestTitle,
			RollNumber:       snap.Candidate.RollNumber,
			RemainingSeconds: snap.RemainingSeconds,
			WarningTime:      time.Now(),
		}))
	default:
		s.cacheSnapshot(ctx, change.Snapshot)
	}
}

// handleSubmitted persists a submission, manual or automatic, and retires the session.
func (s *sessionService) handleSubmitted(ctx context.Context, sub *models.Submission) {
	if sub == nil {
		return
	}
	logger := s.logger.With("session_id", sub.SessionID)

	row, err := models.NewExamResult(sub)
	if err != nil {
		logger.Error("Failed to build exam result", "error", err)
	} else if err := s.repo.Create(ctx, row); err != nil {
		logger.Error("Failed to persist exam result", "error", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ResultKey(sub.SessionID), sub, s.config.SnapshotTTL); err != nil {
			logger.Warn("Failed to cache exam result", "error", err)
		}
	}

	result := sub.Result
	if result == nil {
		result = models.NewEmptyResultSet()
	}
	s.publish(ctx, events.NewSubmittedEvent(sub.SessionID, events.SubmittedEvent{
		TestTitle:        sub.Test.TestTitle,
		CandidateName:    sub.Candidate.Name,
		RollNumber:       sub.Candidate.RollNumber,
		Score:            result.Score,
		MaxScore:         result.MaxScore,
		Attempted:        result.Attempted,
		Correct:          result.Correct,
		Incorrect:        result.Incorrect,
		TimeSpentSeconds: sub.TimeSpentSeconds,
		AutoSubmitted:    sub.AutoSubmitted,
		SubmittedAt:      sub.SubmittedAt,
	}))

	s.mu.Lock()
	delete(s.sessions, sub.SessionID)
	s.mu.Unlock()
}

func (s *sessionService) cacheSnapshot(ctx context.Context, snapshot *models.SessionSnapshot) {
	if s.cache == nil || snapshot == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.SessionKey(snapshot.SessionID), snapshot, s.config.SnapshotTTL); err != nil {
		s.logger.Warn("Failed to cache session snapshot", "session_id", snapshot.SessionID, "error", err)
	}
}

func (s *sessionService) publish(ctx context.Context, event *events.ExamEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExamEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish exam event", "event_type", event.Type, "session_id", event.SessionID, "error", err)
	}
}
