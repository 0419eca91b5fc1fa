package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"studydesk/internal/modules/focus/domain"
	focusout "studydesk/internal/modules/focus/port/out"
	"studydesk/internal/platform/clock"
	"studydesk/internal/platform/logger"
)

const tickInterval = time.Second

// Status is a point-in-time view of the timer.
type Status struct {
	State          domain.State
	Subject        string
	Remaining      int
	DurationSecs   int
	LastCompletion *domain.Completion
}

// TimerService drives a single domain.Timer from a scheduler. Every state
// change, user initiated or tick driven, happens under mu.
type TimerService struct {
	clock     clock.Clock
	scheduler clock.Scheduler
	recorder  focusout.SessionRecorder
	refresher focusout.CatalogRefresher
	log       *logger.Logger

	mu         sync.Mutex
	timer      domain.Timer
	cancelTick func() bool
	last       *domain.Completion
	onComplete []func(domain.Completion)
}

func NewTimerService(
	clock clock.Clock,
	scheduler clock.Scheduler,
	duration time.Duration,
	recorder focusout.SessionRecorder,
	refresher focusout.CatalogRefresher,
	log *logger.Logger,
) *TimerService {
	return &TimerService{
		clock:     clock,
		scheduler: scheduler,
		recorder:  recorder,
		refresher: refresher,
		log:       logger.OrNop(log).With("module", "focus"),
		timer:     domain.NewTimer(duration),
	}
}

// OnComplete registers fn to run after every finished countdown.
func (s *TimerService) OnComplete(fn func(domain.Completion)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = append(s.onComplete, fn)
}

func (s *TimerService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *TimerService) statusLocked() Status {
	st := Status{
		State:        s.timer.State(),
		Subject:      s.timer.Subject(),
		Remaining:    s.timer.Remaining(),
		DurationSecs: s.timer.DurationSecs(),
	}
	if s.last != nil {
		c := *s.last
		st.LastCompletion = &c
	}
	return st
}

func (s *TimerService) Configure(subject string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timer.Configure(subject); err != nil {
		return s.statusLocked(), err
	}
	return s.statusLocked(), nil
}

func (s *TimerService) Reset() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timer.Reset(); err != nil {
		return s.statusLocked(), err
	}
	return s.statusLocked(), nil
}

func (s *TimerService) Start(subject string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timer.Start(subject); err != nil {
		return s.statusLocked(), err
	}
	s.log.Info("focus started", "subject", s.timer.Subject(), "seconds", s.timer.Remaining())
	s.scheduleLocked()
	return s.statusLocked(), nil
}

// Stop abandons the countdown. Nothing is recorded.
func (s *TimerService) Stop() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timer.Stop(); err != nil {
		return s.statusLocked(), err
	}
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	s.log.Info("focus stopped")
	return s.statusLocked(), nil
}

func (s *TimerService) scheduleLocked() {
	gen := s.timer.Generation()
	s.cancelTick = s.scheduler.AfterFunc(tickInterval, func() { s.tick(gen) })
}

func (s *TimerService) tick(gen uint64) {
	s.mu.Lock()
	live, completed := s.timer.Tick(gen)
	if !live {
		s.mu.Unlock()
		return
	}
	if !completed {
		s.scheduleLocked()
		s.mu.Unlock()
		return
	}
	s.cancelTick = nil
	session := s.timer.Session(clock.Today(s.clock))
	s.mu.Unlock()

	s.complete(session)
}

// complete runs outside the lock: the timer sits in Completed while the
// session is written, which keeps Start and Configure out.
func (s *TimerService) complete(session domain.Session) {
	ctx := context.Background()
	recorded, err := s.recorder.Record(ctx, session)
	if err != nil {
		s.log.Warn("recording focus session failed", "subject", session.Subject, "error", err)
		err = fmt.Errorf("record session: %w", err)
		recorded = session
	}

	s.mu.Lock()
	s.timer.Finish()
	c := domain.Completion{Session: recorded, Err: err, FinishedAt: s.clock.Now()}
	s.last = &c
	observers := slices.Clone(s.onComplete)
	s.mu.Unlock()

	if err == nil {
		s.log.Info("focus session recorded", "subject", recorded.Subject, "minutes", recorded.DurationMin)
		if s.refresher != nil {
			if rerr := s.refresher.Refresh(ctx); rerr != nil {
				s.log.Warn("refresh after focus session failed", "error", rerr)
				c.RefreshErr = rerr
				s.mu.Lock()
				s.last = &c
				s.mu.Unlock()
			}
		}
	}
	for _, fn := range observers {
		fn(c)
	}
}
