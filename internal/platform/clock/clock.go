package clock

import "time"

// DateLayout is the calendar-day format the remote service stores dates in.
const DateLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today formats the clock's current calendar day.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// Scheduler runs fn once after d. The returned cancel func reports whether
// the call was stopped before it fired.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
