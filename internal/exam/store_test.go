package exam

import (
	"testing"

	"github.com/Rtx09x/Meow-Mocks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerStore_InitialState(t *testing.T) {
	test := mockTest()
	store := NewAnswerStore(test.Questions)

	require.Equal(t, 4, store.Len())
	for i := 0; i < store.Len(); i++ {
		state, err := store.Get(i)
		require.NoError(t, err)
		assert.Equal(t, models.StatusNotVisited, state.Status)
		assert.Empty(t, state.Selected)
		assert.Zero(t, state.TimeSpentSeconds)
		assert.Zero(t, state.VisitCount)
		assert.Equal(t, models.CorrectnessUnset, state.Correctness)
		assert.Equal(t, test.Questions[i].GlobalID.String(), state.QuestionID)
	}
}

func TestAnswerStore_BoundsChecked(t *testing.T) {
	store := NewAnswerStore(mockTest().Questions)

	for _, index := range []int{-1, 4, 100} {
		_, err := store.Get(index)
		assert.ErrorIs(t, err, ErrInvalidIndex)
		assert.ErrorIs(t, store.SetSelection(index, []string{"A"}), ErrInvalidIndex)
		assert.ErrorIs(t, store.SetStatus(index, models.StatusAnswered), ErrInvalidIndex)
		assert.ErrorIs(t, store.RecordVisit(index), ErrInvalidIndex)
		assert.ErrorIs(t, store.AccumulateTime(index, 1), ErrInvalidIndex)
		assert.ErrorIs(t, store.ClearSelection(index), ErrInvalidIndex)
	}
}

func TestAnswerStore_Mutations(t *testing.T) {
	store := NewAnswerStore(mockTest().Questions)

	require.NoError(t, store.SetSelection(1, []string{"A", "C"}))
	require.NoError(t, store.SetStatus(1, models.StatusMarkedForReview))
	require.NoError(t, store.RecordVisit(1))
	require.NoError(t, store.RecordVisit(1))
	require.NoError(t, store.AccumulateTime(1, 7))
	require.NoError(t, store.AccumulateTime(1, 0))

	state, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, state.Selected)
	assert.Equal(t, models.StatusMarkedForReview, state.Status)
	assert.Equal(t, 2, state.VisitCount)
	assert.Equal(t, 7, state.TimeSpentSeconds)
	assert.Equal(t, 7, store.TotalTime())

	state.Selected[0] = "Z"
	again, _ := store.Get(1)
	assert.Equal(t, "A", again.Selected[0], "Get returns a copy")
}

func TestAnswerStore_RejectsBadInput(t *testing.T) {
	store := NewAnswerStore(mockTest().Questions)

	assert.ErrorIs(t, store.AccumulateTime(0, -1), ErrNegativeTime)
	assert.ErrorIs(t, store.SetSelection(0, []string{"A", "B"}), ErrInvalidSelection)
	assert.ErrorIs(t, store.SetStatus(0, "skipped"), ErrInvalidStatus)

	state, _ := store.Get(0)
	assert.Zero(t, state.TimeSpentSeconds)
	assert.Empty(t, state.Selected)
	assert.Equal(t, models.StatusNotVisited, state.Status)
}

func TestAnswerStore_ClearSelectionDropsReviewMark(t *testing.T) {
	store := NewAnswerStore(mockTest().Questions)
	require.NoError(t, store.SetSelection(0, []string{"B"}))
	require.NoError(t, store.SetStatus(0, models.StatusMarkedForReview))

	require.NoError(t, store.ClearSelection(0))

	state, _ := store.Get(0)
	assert.Empty(t, state.Selected)
	assert.Equal(t, models.StatusNotAnswered, state.Status)
}

func TestAnswerStore_SnapshotIsDeepCopy(t *testing.T) {
	store := NewAnswerStore(mockTest().Questions)
	require.NoError(t, store.SetSelection(1, []string{"A"}))

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	require.Len(t, snapshot, 4)
	assert.Equal(t, []string{"A"}, snapshot[1].Selected)
	assert.NotNil(t, snapshot[0].Selected)

	snapshot[1].Selected[0] = "D"
	snapshot[1].Correctness = models.CorrectnessCorrect

	state, _ := store.Get(1)
	assert.Equal(t, []string{"A"}, state.Selected)
	assert.Equal(t, models.CorrectnessUnset, state.Correctness)
}
