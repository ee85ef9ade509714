package exam

import (
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
)

// Navigator applies candidate actions to the answer store and tracks the
// current question and subject. It is not safe for concurrent use.
type Navigator struct {
	test    *models.TestDefinition
	store   *AnswerStore
	timer   *QuestionTimer
	current int
	subject string
	started bool
}

func NewNavigator(test *models.TestDefinition, store *AnswerStore, timer *QuestionTimer) *Navigator {
	return &Navigator{
		test:  test,
		store: store,
		timer: timer,
	}
}

// Start makes the first question current.
func (n *Navigator) Start() error {
	if n.store.Len() == 0 {
		return ErrMissingTest
	}
	n.started = true
	n.subject = n.test.Questions[0].SubjectOrDefault()
	return n.visit(0)
}

func (n *Navigator) Current() int {
	return n.current
}

func (n *Navigator) CurrentSubject() string {
	return n.subject
}

func (n *Navigator) CurrentQuestion() *models.Question {
	return &n.test.Questions[n.current]
}

// visit flushes time for the outgoing question and makes index current.
func (n *Navigator) visit(index int) error {
	if err := n.store.check(index); err != nil {
		return err
	}
	if err := n.Flush(); err != nil {
		return err
	}

	n.current = index
	n.subject = n.test.Questions[index].SubjectOrDefault()

	if n.store.answers[index].Status == models.StatusNotVisited {
		n.store.answers[index].Status = models.StatusNotAnswered
	}
	return n.store.RecordVisit(index)
}

// Flush moves pending question time into the current question.
func (n *Navigator) Flush() error {
	if !n.started {
		return nil
	}
	return n.store.AccumulateTime(n.current, n.timer.Flush())
}

// GoTo jumps to a question from the palette. Out-of-range indexes leave state unchanged.
func (n *Navigator) GoTo(index int) error {
	if !n.started {
		return ErrNotStarted
	}
	return n.visit(index)
}

// SwitchSubject jumps to the first question of subject. Switching to the
// current subject does nothing.
func (n *Navigator) SwitchSubject(subject string) error {
	if !n.started {
		return ErrNotStarted
	}
	if subject == n.subject {
		return nil
	}
	index := n.test.FirstIndexOfSubject(subject)
	if index < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
	return n.visit(index)
}

// Next advances, wrapping to the first question after the last.
func (n *Navigator) Next() error {
	if !n.started {
		return ErrNotStarted
	}
	next := n.current + 1
	if next >= n.store.Len() {
		next = 0
	}
	return n.visit(next)
}

func (n *Navigator) currentAnswer() *models.AnswerState {
	return &n.store.answers[n.current]
}

func (n *Navigator) checkOption(key string) error {
	if !n.CurrentQuestion().Options.Has(key) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	return nil
}

// SelectOption answers a single-choice question. A review mark survives the selection.
func (n *Navigator) SelectOption(key string) error {
	if !n.started {
		return ErrNotStarted
	}
	q := n.CurrentQuestion()
	if q.Type.IsMultiple() {
		return ErrQuestionTypeMismatch
	}
	if err := n.checkOption(key); err != nil {
		return err
	}

	if err := n.store.SetSelection(n.current, []string{key}); err != nil {
		return err
	}
	if n.currentAnswer().Status != models.StatusMarkedForReview {
		return n.store.SetStatus(n.current, models.StatusAnswered)
	}
	return nil
}

// ToggleOption checks or unchecks one option of a multi-choice question.
// Emptying the selection resets the status to NotAnswered, dropping a review mark.
func (n *Navigator) ToggleOption(key string, checked bool) error {
	if !n.started {
		return ErrNotStarted
	}
	q := n.CurrentQuestion()
	if !q.Type.IsMultiple() {
		return ErrQuestionTypeMismatch
	}
	if err := n.checkOption(key); err != nil {
		return err
	}

	answer := n.currentAnswer()
	selection := make([]string, 0, len(answer.Selected)+1)
	for _, k := range answer.Selected {
		if k != key {
			selection = append(selection, k)
		}
	}
	if checked {
		selection = append(selection, key)
	}
	if err := n.store.SetSelection(n.current, selection); err != nil {
		return err
	}

	switch {
	case len(selection) == 0:
		return n.store.SetStatus(n.current, models.StatusNotAnswered)
	case answer.Status == models.StatusMarkedForReview:
		return nil
	default:
		return n.store.SetStatus(n.current, models.StatusAnswered)
	}
}

// FlipOption toggles key against the current selection.
func (n *Navigator) FlipOption(key string) error {
	if !n.started {
		return ErrNotStarted
	}
	return n.ToggleOption(key, !n.currentAnswer().IsSelected(key))
}

func (n *Navigator) ClearResponse() error {
	if !n.started {
		return ErrNotStarted
	}
	return n.store.ClearSelection(n.current)
}

// MarkForReview flags the current question and moves on.
func (n *Navigator) MarkForReview() error {
	if !n.started {
		return ErrNotStarted
	}
	if err := n.store.SetStatus(n.current, models.StatusMarkedForReview); err != nil {
		return err
	}
	return n.Next()
}

// SaveAndNext confirms an answer, unless the question is marked for review, and moves on.
func (n *Navigator) SaveAndNext() error {
	if !n.started {
		return ErrNotStarted
	}
	answer := n.currentAnswer()
	if answer.HasSelection() && answer.Status != models.StatusMarkedForReview {
		if err := n.store.SetStatus(n.current, models.StatusAnswered); err != nil {
			return err
		}
	}
	return n.Next()
}

// Palette lists the status of every question.
func (n *Navigator) Palette() []models.PaletteEntry {
	entries := make([]models.PaletteEntry, n.store.Len())
	for i := range n.store.answers {
		q := &n.test.Questions[i]
		entries[i] = models.PaletteEntry{
			Index:   i,
			Label:   q.Label(i),
			Subject: q.SubjectOrDefault(),
			Status:  n.store.answers[i].Status,
			Current: n.started && i == n.current,
		}
	}
	return entries
}
