package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuestionTimer(t *testing.T) {
	timer := NewQuestionTimer()
	timer.Tick()
	timer.Tick()
	assert.Equal(t, 2, timer.Pending())

	assert.Equal(t, 2, timer.Flush())
	assert.Zero(t, timer.Pending())

	timer.Tick()
	timer.Stop()
	timer.Tick()
	assert.Equal(t, 1, timer.Flush())
}

func TestSessionTimer_CountdownAndWarning(t *testing.T) {
	timer := NewSessionTimer(5, 2)

	assert.Equal(t, TickResult{}, timer.Tick()) // 4
	assert.Equal(t, TickResult{}, timer.Tick()) // 3
	assert.Equal(t, TickResult{Warning: true}, timer.Tick())
	assert.True(t, timer.Warned())
	assert.Equal(t, TickResult{}, timer.Tick()) // 1
	assert.Equal(t, TickResult{Expired: true}, timer.Tick())

	assert.Equal(t, TickResult{}, timer.Tick(), "expiry is reported once")
	assert.Zero(t, timer.Remaining())
	assert.Equal(t, 5, timer.Elapsed())
}

func TestSessionTimer_StopFreezes(t *testing.T) {
	timer := NewSessionTimer(60, 0)
	timer.Tick()
	timer.Stop()
	timer.Tick()

	assert.True(t, timer.Stopped())
	assert.Equal(t, 59, timer.Remaining())
	assert.Equal(t, 1, timer.Elapsed())
	assert.False(t, timer.Warned(), "zero threshold disables the warning")
}

func TestSessionTimer_ShortTestWarnsImmediately(t *testing.T) {
	timer := NewSessionTimer(60, 300)
	assert.Equal(t, TickResult{Warning: true}, timer.Tick())
	assert.Equal(t, TickResult{}, timer.Tick())
}

func TestFakeClock_Ticker(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	ticker := clock.NewTicker(time.Second)

	clock.Advance(3 * time.Second)
	assert.Equal(t, start.Add(3*time.Second), clock.Now())
	assert.Len(t, ticker.C(), 3)

	ticker.Stop()
	clock.Advance(time.Second)
	assert.Len(t, ticker.C(), 3)
}
