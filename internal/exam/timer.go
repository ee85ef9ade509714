package exam

// QuestionTimer counts whole seconds spent on the current question.
// Pending seconds are moved into the answer store by Flush.
type QuestionTimer struct {
	pending int
	stopped bool
}

func NewQuestionTimer() *QuestionTimer {
	return &QuestionTimer{}
}

func (t *QuestionTimer) Tick() {
	if t.stopped {
		return
	}
	t.pending++
}

// Pending returns seconds not yet flushed.
func (t *QuestionTimer) Pending() int {
	return t.pending
}

// Flush returns the pending seconds and resets the timer for the next question.
func (t *QuestionTimer) Flush() int {
	seconds := t.pending
	t.pending = 0
	return seconds
}

func (t *QuestionTimer) Stop() {
	t.stopped = true
}

// SessionTimer counts down from the test duration.
type SessionTimer struct {
	total     int
	remaining int
	warnAt    int
	warned    bool
	stopped   bool
}

// TickResult reports what a session tick crossed.
type TickResult struct {
	Expired bool
	Warning bool
}

func NewSessionTimer(totalSeconds, warnAt int) *SessionTimer {
	return &SessionTimer{
		total:     totalSeconds,
		remaining: totalSeconds,
		warnAt:    warnAt,
	}
}

// Tick consumes one second. Expired is reported once, on the tick that reaches zero.
func (t *SessionTimer) Tick() TickResult {
	if t.stopped || t.remaining <= 0 {
		return TickResult{}
	}

	t.remaining--

	var res TickResult
	if !t.warned && t.warnAt > 0 && t.remaining <= t.warnAt {
		t.warned = true
		res.Warning = true
	}
	if t.remaining == 0 {
		res.Expired = true
	}
	return res
}

func (t *SessionTimer) Remaining() int {
	return t.remaining
}

func (t *SessionTimer) Elapsed() int {
	return t.total - t.remaining
}

// Warned reports whether the countdown has entered the warning window.
func (t *SessionTimer) Warned() bool {
	return t.warned
}

func (t *SessionTimer) Stop() {
	t.stopped = true
}

func (t *SessionTimer) Stopped() bool {
	return t.stopped
}
