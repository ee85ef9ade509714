package exam

import (
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/jinzhu/copier"
)

// AnswerStore holds one AnswerState per question, in test order.
// It is not safe for concurrent use; Session serializes access.
type AnswerStore struct {
	answers []models.AnswerState
}

func NewAnswerStore(questions []models.Question) *AnswerStore {
	answers := make([]models.AnswerState, len(questions))
	for i := range questions {
		answers[i] = models.NewAnswerState(&questions[i])
	}
	return &AnswerStore{answers: answers}
}

func (s *AnswerStore) Len() int {
	return len(s.answers)
}

func (s *AnswerStore) check(index int) error {
	if index < 0 || index >= len(s.answers) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidIndex, index, len(s.answers))
	}
	return nil
}

// Get returns a copy of the state at index.
func (s *AnswerStore) Get(index int) (models.AnswerState, error) {
	if err := s.check(index); err != nil {
		return models.AnswerState{}, err
	}
	state := s.answers[index]
	state.Selected = append([]string{}, state.Selected...)
	return state, nil
}

func (s *AnswerStore) SetSelection(index int, selection []string) error {
	if err := s.check(index); err != nil {
		return err
	}
	if !s.answers[index].QuestionType.IsMultiple() && len(selection) > 1 {
		return ErrInvalidSelection
	}
	s.answers[index].Selected = append([]string{}, selection...)
	return nil
}

func (s *AnswerStore) SetStatus(index int, status models.AnswerStatus) error {
	if err := s.check(index); err != nil {
		return err
	}
	switch status {
	case models.StatusNotVisited, models.StatusNotAnswered, models.StatusAnswered, models.StatusMarkedForReview:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	s.answers[index].Status = status
	return nil
}

// RecordVisit counts one more visit to the question.
func (s *AnswerStore) RecordVisit(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.answers[index].VisitCount++
	return nil
}

func (s *AnswerStore) AccumulateTime(index, seconds int) error {
	if err := s.check(index); err != nil {
		return err
	}
	if seconds < 0 {
		return ErrNegativeTime
	}
	s.answers[index].TimeSpentSeconds += seconds
	return nil
}

// ClearSelection empties the selection and always resets the status to NotAnswered,
// dropping any review mark.
func (s *AnswerStore) ClearSelection(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.answers[index].Selected = []string{}
	s.answers[index].Status = models.StatusNotAnswered
	return nil
}

// TotalTime sums time spent across all questions.
func (s *AnswerStore) TotalTime() int {
	total := 0
	for i := range s.answers {
		total += s.answers[i].TimeSpentSeconds
	}
	return total
}

// Snapshot returns a deep copy of every answer state.
func (s *AnswerStore) Snapshot() ([]models.AnswerState, error) {
	out := make([]models.AnswerState, 0, len(s.answers))
	if err := copier.CopyWithOption(&out, &s.answers, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy answer states: %w", err)
	}
	for i := range out {
		if out[i].Selected == nil {
			out[i].Selected = []string{}
		}
	}
	return out, nil
}
