package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"studydesk/internal/modules/review/domain"
	reviewout "studydesk/internal/modules/review/port/out"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/platform/logger"
)

// run is one walk plus the writes it dispatched.
type run struct {
	walk    *domain.Walk
	writes  errgroup.Group
	done    chan struct{}
	summary domain.Summary
}

type ReviewService struct {
	source    reviewout.FlashcardSource
	grader    reviewout.Grader
	refresher reviewout.CatalogRefresher
	log       *logger.Logger

	mu  sync.Mutex
	cur *run
}

func NewReviewService(source reviewout.FlashcardSource, grader reviewout.Grader, refresher reviewout.CatalogRefresher, log *logger.Logger) *ReviewService {
	return &ReviewService{
		source:    source,
		grader:    grader,
		refresher: refresher,
		log:       logger.OrNop(log).With("module", "review"),
	}
}

// Start snapshots the cards for scope and begins a new walk.
func (s *ReviewService) Start(ctx context.Context, scope string) (domain.View, error) {
	s.mu.Lock()
	if s.cur != nil && !s.cur.walk.Done() {
		s.mu.Unlock()
		return domain.View{}, apperrors.ErrAlreadyRunning
	}
	s.mu.Unlock()

	cards, err := s.source.Flashcards(ctx, scope)
	if err != nil {
		return domain.View{}, fmt.Errorf("load flashcards: %w", err)
	}
	walk, err := domain.NewWalk(cards)
	if err != nil {
		return domain.View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil && !s.cur.walk.Done() {
		return domain.View{}, apperrors.ErrAlreadyRunning
	}
	s.cur = &run{walk: walk, done: make(chan struct{})}
	s.log.Info("review started", "scope", scope, "cards", len(cards))
	return walk.View(), nil
}

func (s *ReviewService) Reveal() (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.walk.Done() {
		return domain.View{}, apperrors.ErrNotRunning
	}
	if err := s.cur.walk.Reveal(); err != nil {
		return s.cur.walk.View(), err
	}
	return s.cur.walk.View(), nil
}

// Grade records the answer and advances without waiting for the write.
func (s *ReviewService) Grade(correct bool) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.walk.Done() {
		return domain.View{}, apperrors.ErrNotRunning
	}
	r := s.cur
	card, last, err := r.walk.Grade(correct)
	if err != nil {
		return r.walk.View(), err
	}
	r.writes.Go(func() error {
		if err := s.grader.Grade(context.Background(), card.ID, correct); err != nil {
			s.log.Warn("grade write failed", "card", card.ID, "error", err)
			return fmt.Errorf("grade %s: %w", card.ID, err)
		}
		return nil
	})
	if last {
		s.finishLocked(r)
	}
	return r.walk.View(), nil
}

// Quit ends the active walk early; grades already given are still written.
func (s *ReviewService) Quit() (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.walk.Done() {
		return domain.View{}, apperrors.ErrNotRunning
	}
	s.cur.walk.End()
	s.finishLocked(s.cur)
	return s.cur.walk.View(), nil
}

func (s *ReviewService) finishLocked(r *run) {
	view := r.walk.View()
	r.summary = domain.Summary{Total: view.Total, Correct: view.Correct, Wrong: view.Wrong}
	go func() {
		defer close(r.done)
		r.summary.WriteErr = r.writes.Wait()
		if s.refresher != nil {
			if err := s.refresher.Refresh(context.Background()); err != nil {
				s.log.Warn("refresh after review failed", "error", err)
				r.summary.RefreshErr = err
			}
		}
		s.log.Info("review finished", "correct", r.summary.Correct, "wrong", r.summary.Wrong)
	}()
}

func (s *ReviewService) Current() (domain.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return domain.View{}, false
	}
	return s.cur.walk.View(), !s.cur.walk.Done()
}

// Wait blocks until the most recent walk has finished and its writes and
// refresh have settled.
func (s *ReviewService) Wait(ctx context.Context) (domain.Summary, error) {
	s.mu.Lock()
	r := s.cur
	s.mu.Unlock()
	if r == nil {
		return domain.Summary{}, apperrors.ErrNotRunning
	}
	select {
	case <-r.done:
		return r.summary, nil
	case <-ctx.Done():
		return domain.Summary{}, ctx.Err()
	}
}
