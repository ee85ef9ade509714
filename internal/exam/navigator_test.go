package exam

import (
	"testing"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_StartVisitsFirstQuestion(t *testing.T) {
	nav, store, _ := startedNavigator()

	assert.Equal(t, 0, nav.Current())
	assert.Equal(t, "Physics", nav.CurrentSubject())
	assert.Equal(t, models.StatusNotAnswered, status(store, 0))
	for i := 1; i < store.Len(); i++ {
		assert.Equal(t, models.StatusNotVisited, status(store, i))
	}

	state, _ := store.Get(0)
	assert.Equal(t, 1, state.VisitCount)
}

func TestNavigator_NotStarted(t *testing.T) {
	test := mockTest()
	nav := NewNavigator(test, NewAnswerStore(test.Questions), NewQuestionTimer())

	assert.ErrorIs(t, nav.GoTo(1), ErrNotStarted)
	assert.ErrorIs(t, nav.SelectOption("A"), ErrNotStarted)
	assert.ErrorIs(t, nav.SaveAndNext(), ErrNotStarted)

	empty := &models.TestDefinition{}
	assert.ErrorIs(t, NewNavigator(empty, NewAnswerStore(nil), NewQuestionTimer()).Start(), ErrMissingTest)
}

func TestNavigator_SingleChoiceKeepsReviewMark(t *testing.T) {
	nav, store, _ := startedNavigator()

	require.NoError(t, nav.SelectOption("A"))
	assert.Equal(t, models.StatusAnswered, status(store, 0))

	require.NoError(t, store.SetStatus(0, models.StatusMarkedForReview))
	require.NoError(t, nav.SelectOption("C"))

	state, _ := store.Get(0)
	assert.Equal(t, models.StatusMarkedForReview, state.Status)
	assert.Equal(t, []string{"C"}, state.Selected)
}

func TestNavigator_MultiChoiceEmptyingDropsReviewMark(t *testing.T) {
	nav, store, _ := startedNavigator()
	require.NoError(t, nav.GoTo(1))

	require.NoError(t, nav.ToggleOption("A", true))
	require.NoError(t, nav.ToggleOption("C", true))
	require.NoError(t, nav.ToggleOption("C", true))
	state, _ := store.Get(1)
	assert.Equal(t, []string{"A", "C"}, state.Selected, "re-checking does not duplicate")
	assert.Equal(t, models.StatusAnswered, state.Status)

	require.NoError(t, store.SetStatus(1, models.StatusMarkedForReview))
	require.NoError(t, nav.ToggleOption("A", false))
	assert.Equal(t, models.StatusMarkedForReview, status(store, 1), "non-empty selection keeps the mark")

	require.NoError(t, nav.ToggleOption("C", false))
	state, _ = store.Get(1)
	assert.Empty(t, state.Selected)
	assert.Equal(t, models.StatusNotAnswered, state.Status)
}

func TestNavigator_FlipOption(t *testing.T) {
	nav, store, _ := startedNavigator()
	require.NoError(t, nav.GoTo(1))

	require.NoError(t, nav.FlipOption("B"))
	assert.Equal(t, models.StatusAnswered, status(store, 1))

	require.NoError(t, nav.FlipOption("B"))
	state, _ := store.Get(1)
	assert.Empty(t, state.Selected)
	assert.Equal(t, models.StatusNotAnswered, state.Status)

	assert.ErrorIs(t, nav.FlipOption("Z"), ErrUnknownOption)
}

func TestNavigator_TypeMismatchAndUnknownOption(t *testing.T) {
	nav, store, _ := startedNavigator()

	assert.ErrorIs(t, nav.ToggleOption("A", true), ErrQuestionTypeMismatch)
	assert.ErrorIs(t, nav.SelectOption("Z"), ErrUnknownOption)

	require.NoError(t, nav.GoTo(1))
	assert.ErrorIs(t, nav.SelectOption("A"), ErrQuestionTypeMismatch)
	assert.ErrorIs(t, nav.ToggleOption("Z", true), ErrUnknownOption)

	state, _ := store.Get(1)
	assert.Empty(t, state.Selected)
	assert.Equal(t, models.StatusNotAnswered, state.Status)
}

func TestNavigator_ClearResponse(t *testing.T) {
	nav, store, _ := startedNavigator()
	require.NoError(t, nav.SelectOption("B"))
	require.NoError(t, store.SetStatus(0, models.StatusMarkedForReview))

	require.NoError(t, nav.ClearResponse())

	state, _ := store.Get(0)
	assert.Empty(t, state.Selected)
	assert.Equal(t, models.StatusNotAnswered, state.Status)
}

func TestNavigator_MarkForReviewAdvances(t *testing.T) {
	nav, store, _ := startedNavigator()

	require.NoError(t, nav.MarkForReview())

	assert.Equal(t, models.StatusMarkedForReview, status(store, 0))
	assert.Equal(t, 1, nav.Current())
	assert.Equal(t, models.StatusNotAnswered, status(store, 1))
}

func TestNavigator_SaveAndNext(t *testing.T) {
	nav, store, _ := startedNavigator()

	// nothing selected: status untouched
	require.NoError(t, nav.SaveAndNext())
	assert.Equal(t, models.StatusNotAnswered, status(store, 0))
	assert.Equal(t, 1, nav.Current())

	// marked for review with a selection stays marked
	require.NoError(t, nav.ToggleOption("A", true))
	require.NoError(t, store.SetStatus(1, models.StatusMarkedForReview))
	require.NoError(t, nav.SaveAndNext())
	assert.Equal(t, models.StatusMarkedForReview, status(store, 1))

	// answer present is confirmed
	require.NoError(t, store.SetSelection(2, []string{"A"}))
	require.NoError(t, nav.SaveAndNext())
	assert.Equal(t, models.StatusAnswered, status(store, 2))
	assert.Equal(t, 3, nav.Current())

	// wraps after the last question
	require.NoError(t, nav.SaveAndNext())
	assert.Equal(t, 0, nav.Current())
	assert.Equal(t, "Physics", nav.CurrentSubject())
}

func TestNavigator_GoToAndSubjects(t *testing.T) {
	nav, store, _ := startedNavigator()

	require.NoError(t, nav.GoTo(3))
	assert.Equal(t, "Maths", nav.CurrentSubject())

	require.NoError(t, nav.SwitchSubject("Chemistry"))
	assert.Equal(t, 2, nav.Current())

	require.NoError(t, nav.SwitchSubject("Chemistry"))
	state, _ := store.Get(2)
	assert.Equal(t, 1, state.VisitCount, "switching to the current subject does nothing")

	assert.ErrorIs(t, nav.SwitchSubject("Biology"), ErrUnknownSubject)
	assert.Equal(t, 2, nav.Current())

	require.NoError(t, nav.GoTo(2))
	state, _ = store.Get(2)
	assert.Equal(t, 2, state.VisitCount, "palette jump to the same question counts a visit")
}

func TestNavigator_InvalidIndexLeavesStateUnchanged(t *testing.T) {
	nav, store, timer := startedNavigator()
	timer.Tick()
	timer.Tick()

	assert.ErrorIs(t, nav.GoTo(-1), ErrInvalidIndex)
	assert.ErrorIs(t, nav.GoTo(4), ErrInvalidIndex)

	assert.Equal(t, 0, nav.Current())
	assert.Equal(t, 2, timer.Pending(), "pending time is not flushed by a rejected jump")
	state, _ := store.Get(0)
	assert.Equal(t, 1, state.VisitCount)
	assert.Zero(t, state.TimeSpentSeconds)
}

func TestNavigator_TimeIsFlushedOnLeave(t *testing.T) {
	nav, store, timer := startedNavigator()

	for i := 0; i < 5; i++ {
		timer.Tick()
	}
	require.NoError(t, nav.GoTo(2))
	timer.Tick()
	require.NoError(t, nav.GoTo(0))
	timer.Tick()
	timer.Tick()
	require.NoError(t, nav.Flush())

	q0, _ := store.Get(0)
	q2, _ := store.Get(2)
	assert.Equal(t, 7, q0.TimeSpentSeconds)
	assert.Equal(t, 1, q2.TimeSpentSeconds)
	assert.Equal(t, 8, store.TotalTime())
	assert.Zero(t, timer.Pending())
}

func TestNavigator_Palette(t *testing.T) {
	nav, _, _ := startedNavigator()
	require.NoError(t, nav.SelectOption("A"))
	require.NoError(t, nav.MarkForReview())

	palette := nav.Palette()

	require.Len(t, palette, 4)
	assert.Equal(t, models.PaletteEntry{Index: 0, Label: "1", Subject: "Physics", Status: models.StatusMarkedForReview}, palette[0])
	assert.Equal(t, models.StatusNotAnswered, palette[1].Status)
	assert.True(t, palette[1].Current)
	assert.Equal(t, models.StatusNotVisited, palette[2].Status)
}
