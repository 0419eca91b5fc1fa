package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studydesk/internal/platform/errors"
)

const (
	DefaultDuration = 25 * time.Minute
	// FocusScore is what every completed focus block is recorded with.
	FocusScore = 85
)

type State string

const (
	StateIdle        State = "idle"
	StateConfiguring State = "configuring"
	StateRunning     State = "running"
	StateCompleted   State = "completed"
)

// Timer is the countdown state machine. It holds no goroutines; callers
// drive it with Tick and must carry the generation they were scheduled under.
type Timer struct {
	state      State
	subject    string
	duration   int
	remaining  int
	generation uint64
}

// NewTimer builds an idle timer. Durations are truncated to whole seconds.
func NewTimer(duration time.Duration) Timer {
	secs := int(duration / time.Second)
	if secs <= 0 {
		secs = int(DefaultDuration / time.Second)
	}
	return Timer{state: StateIdle, duration: secs, remaining: secs}
}

func (t Timer) State() State { return t.state }
func (t Timer) Subject() string { return t.subject }
func (t Timer) Remaining() int { return t.remaining }
func (t Timer) DurationSecs() int { return t.duration }
func (t Timer) Generation() uint64 { return t.generation }
func (t Timer) DurationMinutes() int { return t.duration / 60 }

func (t *Timer) Configure(subject string) error {
	subject = strings.TrimSpace(subject)
	switch t.state {
	case StateRunning:
		return apperrors.ErrAlreadyRunning
	case StateCompleted:
		return fmt.Errorf("%w: timer is completing", apperrors.ErrInvalidState)
	}
	if subject == "" {
		return fmt.Errorf("%w: subject is required", apperrors.ErrInvalidInput)
	}
	t.state = StateConfiguring
	t.subject = subject
	return nil
}

// Reset abandons configuration and returns to Idle.
func (t *Timer) Reset() error {
	switch t.state {
	case StateRunning, StateCompleted:
		return apperrors.ErrAlreadyRunning
	}
	t.state = StateIdle
	t.subject = ""
	t.remaining = t.duration
	return nil
}

// Start begins a countdown. An empty subject falls back to the configured
// one.
func (t *Timer) Start(subject string) error {
	if t.state == StateRunning || t.state == StateCompleted {
		return apperrors.ErrAlreadyRunning
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = t.subject
	}
	if subject == "" {
		return fmt.Errorf("%w: subject is required", apperrors.ErrInvalidInput)
	}
	t.subject = subject
	t.state = StateRunning
	t.remaining = t.duration
	t.generation++
	return nil
}

func (t *Timer) Stop() error {
	if t.state != StateRunning {
		return apperrors.ErrNotRunning
	}
	t.state = StateIdle
	t.remaining = t.duration
	t.generation++
	return nil
}

// Tick advances one second. It reports live=false when the tick belongs to an
// older generation or the timer is not running, and completed=true on the
// tick that reaches zero.
func (t *Timer) Tick(generation uint64) (live, completed bool) {
	if generation != t.generation || t.state != StateRunning {
		return false, false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.state = StateCompleted
		return true, true
	}
	return true, false
}

// Finish leaves Completed for Idle with a full countdown.
func (t *Timer) Finish() {
	if t.state != StateCompleted {
		return
	}
	t.state = StateIdle
	t.remaining = t.duration
}

// Session is the record a completed countdown produces.
func (t Timer) Session(date string) Session {
	return Session{
		Subject:     t.subject,
		DurationMin: t.DurationMinutes(),
		Date:        date,
		FocusScore:  FocusScore,
	}
}

type Session struct {
	ID          string
	Subject     string
	DurationMin int
	Date        string
	FocusScore  int
}

// Completion is the outcome of one finished countdown.
// Err is set when the session could not be recorded; RefreshErr when it was
// recorded but the cache reload afterwards failed.
type Completion struct {
	Session    Session
	Err        error
	RefreshErr error
	FinishedAt time.Time
}
