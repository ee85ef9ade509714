package exam

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/Rtx09x/Meow-Mocks/internal/scoring"
	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeNavigated   ChangeKind = "navigated"
	ChangeUpdated     ChangeKind = "updated"
	ChangeTimeWarning ChangeKind = "time_warning"
	ChangeSubmitted   ChangeKind = "submitted"
)

// Change is delivered to listeners after every state transition.
// Seq increases by one per change of a session. Submission is set only for
// ChangeSubmitted.
type Change struct {
	Kind       ChangeKind
	SessionID  string
	Seq        uint64
	Snapshot   *models.SessionSnapshot
	Submission *models.Submission
}

// Listener observes session changes. Listeners run after the session lock is
// released and see changes in Seq order. At most one listener call per session
// is in flight; a change raised during that call is delivered by the goroutine
// already delivering, so the call that raised it may return first.
type Listener func(Change)

type Options struct {
	ID             string
	Candidate      models.CandidateData
	Clock          Clock
	WarningSeconds int
	Logger         *slog.Logger
	Listeners      []Listener
}

// Session is one candidate's attempt at a test. Every tick and every action
// runs as a single step under the session lock. Submission happens once;
// afterwards ticks are ignored and actions fail with ErrSessionClosed.
type Session struct {
	mu sync.Mutex

	id        string
	test      *models.TestDefinition
	candidate models.CandidateData
	clock     Clock
	logger    *slog.Logger
	listeners []Listener

	store         *AnswerStore
	nav           *Navigator
	questionTimer *QuestionTimer
	countdown     *SessionTimer
	startedAt     time.Time
	submission    *models.Submission
	submittedAt   *time.Time
	done          chan struct{}

	seq        uint64
	pending    []Change
	delivering bool
}

// NewSession starts a session on a fully loaded test. The first question is
// current on return.
func NewSession(test *models.TestDefinition, opts Options) (*Session, error) {
	if test == nil || len(test.Questions) == 0 {
		return nil, ErrMissingTest
	}
	if test.DurationSeconds() <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, test.Duration)
	}

	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store := NewAnswerStore(test.Questions)
	questionTimer := NewQuestionTimer()
	nav := NewNavigator(test, store, questionTimer)
	if err := nav.Start(); err != nil {
		return nil, err
	}

	s := &Session{
		id:            opts.ID,
		test:          test,
		candidate:     opts.Candidate,
		clock:         opts.Clock,
		logger:        opts.Logger.With("session_id", opts.ID),
		listeners:     append([]Listener(nil), opts.Listeners...),
		store:         store,
		nav:           nav,
		questionTimer: questionTimer,
		countdown:     NewSessionTimer(test.DurationSeconds(), opts.WarningSeconds),
		startedAt:     opts.Clock.Now(),
		done:          make(chan struct{}),
	}

	s.logger.Info("Exam session started",
		"test_title", test.TestTitle,
		"questions", len(test.Questions),
		"duration_seconds", test.DurationSeconds())

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Test() *models.TestDefinition {
	return s.test
}

func (s *Session) Candidate() models.CandidateData {
	return s.candidate
}

// Done is closed once the session has been submitted.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Subscribe adds a listener for subsequent changes.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Run drives the session from the clock, one tick per second, until the
// session is submitted or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.C():
			s.Tick()
		}
	}
}

// Tick advances both timers by one second. The tick that exhausts the
// countdown submits the session.
func (s *Session) Tick() {
	s.mu.Lock()
	if s.submission != nil {
		s.mu.Unlock()
		return
	}

	res := s.countdown.Tick()
	s.questionTimer.Tick()

	if res.Warning {
		s.logger.Warn("Exam time running out", "remaining_seconds", s.countdown.Remaining())
		s.enqueueLocked(Change{Kind: ChangeTimeWarning, SessionID: s.id, Snapshot: s.snapshotLocked()})
	}
	if res.Expired {
		s.logger.Info("Exam time expired, submitting automatically")
		s.enqueueLocked(s.submitLocked(true))
	}
	s.unlockAndDeliver()
}

// Submit submits the session manually. If the session was already submitted,
// by the candidate or by the countdown, it returns ErrAlreadySubmitted and
// leaves the existing submission in place.
func (s *Session) Submit() (*models.Submission, error) {
	s.mu.Lock()
	if s.submission != nil {
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}

	change := s.submitLocked(false)
	s.enqueueLocked(change)
	s.unlockAndDeliver()
	return change.Submission, nil
}

func (s *Session) submitLocked(auto bool) Change {
	now := s.clock.Now()
	s.submittedAt = &now

	if err := s.nav.Flush(); err != nil {
		s.logger.Error("Failed to flush question time", "error", err)
	}
	s.questionTimer.Stop()
	s.countdown.Stop()
	close(s.done)

	answers, err := s.store.Snapshot()
	if err != nil {
		s.logger.Error("Failed to snapshot answers for scoring", "error", err)
		answers = nil
	}

	result := scoring.Score(s.test, answers)
	for i := range answers {
		s.store.answers[i].Correctness = answers[i].Correctness
	}

	s.submission = &models.Submission{
		SessionID:        s.id,
		Test:             s.test,
		Candidate:        s.candidate,
		Result:           result,
		Answers:          answers,
		TimeSpentSeconds: s.countdown.Elapsed(),
		AutoSubmitted:    auto,
		StartedAt:        s.startedAt,
		SubmittedAt:      now,
	}

	s.logger.Info("Exam session submitted",
		"auto_submitted", auto,
		"score", result.Score,
		"max_score", result.MaxScore,
		"time_spent", s.countdown.Elapsed())

	return Change{
		Kind:       ChangeSubmitted,
		SessionID:  s.id,
		Snapshot:   s.snapshotLocked(),
		Submission: s.submission,
	}
}

// Submission returns the submission, or nil while the session is active.
func (s *Session) Submission() *models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submission
}

func (s *Session) apply(kind ChangeKind, action string, fn func() error) error {
	s.mu.Lock()
	if s.submission != nil {
		s.mu.Unlock()
		return ErrSessionClosed
	}

	if err := fn(); err != nil {
		s.mu.Unlock()
		s.logger.Debug("Rejected exam action", "action", action, "error", err)
		return err
	}

	s.enqueueLocked(Change{Kind: kind, SessionID: s.id, Snapshot: s.snapshotLocked()})
	s.unlockAndDeliver()
	return nil
}

func (s *Session) SelectOption(key string) error {
	return s.apply(ChangeUpdated, "select", func() error { return s.nav.SelectOption(key) })
}

func (s *Session) ToggleOption(key string, checked bool) error {
	return s.apply(ChangeUpdated, "toggle", func() error { return s.nav.ToggleOption(key, checked) })
}

// FlipOption checks an unchecked option of a multi-choice question, or unchecks a checked one.
func (s *Session) FlipOption(key string) error {
	return s.apply(ChangeUpdated, "toggle", func() error { return s.nav.FlipOption(key) })
}

func (s *Session) ClearResponse() error {
	return s.apply(ChangeUpdated, "clear", s.nav.ClearResponse)
}

func (s *Session) MarkForReview() error {
	return s.apply(ChangeNavigated, "mark_review", s.nav.MarkForReview)
}

func (s *Session) SaveAndNext() error {
	return s.apply(ChangeNavigated, "save_next", s.nav.SaveAndNext)
}

func (s *Session) GoTo(index int) error {
	return s.apply(ChangeNavigated, "navigate", func() error { return s.nav.GoTo(index) })
}

func (s *Session) SwitchSubject(subject string) error {
	return s.apply(ChangeNavigated, "switch_subject", func() error { return s.nav.SwitchSubject(subject) })
}

// Snapshot returns a self-contained copy of the session. Time not yet flushed
// is included in the current question's total.
func (s *Session) Snapshot() *models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) answersLocked() []models.AnswerState {
	answers, err := s.store.Snapshot()
	if err != nil {
		s.logger.Error("Failed to snapshot answers", "error", err)
		return nil
	}
	if s.submission == nil && len(answers) > 0 {
		answers[s.nav.Current()].TimeSpentSeconds += s.questionTimer.Pending()
	}
	return answers
}

func (s *Session) snapshotLocked() *models.SessionSnapshot {
	state := models.SessionActive
	var result *models.ResultSet
	if s.submission != nil {
		state = models.SessionSubmitted
		result = s.submission.Result
	}

	var submittedAt *time.Time
	if s.submittedAt != nil {
		t := *s.submittedAt
		submittedAt = &t
	}

	return &models.SessionSnapshot{
		SessionID:        s.id,
		State:            state,
		Test:             s.test,
		Candidate:        s.candidate,
		Answers:          s.answersLocked(),
		CurrentIndex:     s.nav.Current(),
		CurrentSubject:   s.nav.CurrentSubject(),
		RemainingSeconds: s.countdown.Remaining(),
		ElapsedSeconds:   s.countdown.Elapsed(),
		StartedAt:        s.startedAt,
		SubmittedAt:      submittedAt,
		AutoSubmitted:    s.submission != nil && s.submission.AutoSubmitted,
		Result:           result,
	}
}

// View renders the current exam screen.
func (s *Session) View() *models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.nav.Current()
	answers := s.answersLocked()
	state := models.SessionActive
	if s.submission != nil {
		state = models.SessionSubmitted
	}

	view := &models.SessionView{
		SessionID:        s.id,
		State:            state,
		TestTitle:        s.test.TestTitle,
		Candidate:        s.candidate,
		Subjects:         s.test.DerivedSubjects(),
		CurrentSubject:   s.nav.CurrentSubject(),
		CurrentIndex:     current,
		Question:         s.nav.CurrentQuestion().Render(s.test.ImagePathPrefix),
		RemainingSeconds: s.countdown.Remaining(),
		TimeWarning:      s.countdown.Warned(),
		Palette:          s.nav.Palette(),
		Summary:          models.Summarize(answers),
	}
	if current < len(answers) {
		view.Answer = answers[current]
		view.QuestionTimeSeconds = answers[current].TimeSpentSeconds
	}
	return view
}

// Summary counts answers by status for the submit confirmation.
func (s *Session) Summary() models.SubmissionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Summarize(s.store.answers)
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown.Remaining()
}

func (s *Session) enqueueLocked(change Change) {
	s.seq++
	change.Seq = s.seq
	s.pending = append(s.pending, change)
}

// unlockAndDeliver releases the lock and, unless another goroutine is already
// delivering, hands queued changes to listeners until the queue is empty.
func (s *Session) unlockAndDeliver() {
	if s.delivering || len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for {
		batch := s.pending
		s.pending = nil
		listeners := s.listeners
		s.mu.Unlock()

		for _, change := range batch {
			for _, l := range listeners {
				l(change)
			}
		}

		s.mu.Lock()
		if len(s.pending) == 0 {
			s.delivering = false
			s.mu.Unlock()
			return
		}
	}
}
