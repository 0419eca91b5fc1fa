package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studydesk/internal/modules/review/domain"
	"studydesk/internal/modules/review/service"
	"studydesk/internal/modules/review/usecase"
	reviewin "studydesk/internal/modules/review/port/in"
	apperrors "studydesk/internal/platform/errors"
)

type fakeSource struct {
	cards  []domain.Card
	scopes []string
}

func (f *fakeSource) Flashcards(_ context.Context, scope string) ([]domain.Card, error) {
	f.scopes = append(f.scopes, scope)
	return f.cards, nil
}

type grade struct {
	id      string
	correct bool
}

type fakeGrader struct {
	mu     sync.Mutex
	grades []grade
	hold   chan struct{}
	err    error
}

func (f *fakeGrader) Grade(_ context.Context, id string, correct bool) error {
	if f.hold != nil {
		<-f.hold
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grades = append(f.grades, grade{id: id, correct: correct})
	return f.err
}

type fakeRefresher struct {
	mu      sync.Mutex
	calls   int
	grader  *fakeGrader
	settled int
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.grader.mu.Lock()
	f.settled = len(f.grader.grades)
	f.grader.mu.Unlock()
	return nil
}

func newReview(cards []domain.Card, grader *fakeGrader) (reviewin.Usecase, *fakeRefresher) {
	refresher := &fakeRefresher{grader: grader}
	svc := service.NewReviewService(&fakeSource{cards: cards}, grader, refresher, nil)
	return usecase.NewInteractor(svc), refresher
}

func waitSummary(t *testing.T, uc reviewin.Usecase) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := uc.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestReviewTwoCardsThenRefresh(t *testing.T) {
	t.Parallel()
	grader := &fakeGrader{}
	uc, refresher := newReview([]domain.Card{{ID: "A", Question: "qa", Answer: "aa"}, {ID: "B", Question: "qb", Answer: "ab"}}, grader)

	view, err := uc.Start(context.Background(), "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Index != 0 || view.Total != 2 || view.Answer != "" {
		t.Fatalf("unexpected first view: %+v", view)
	}
	if _, err := uc.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if view, err = uc.Grade(true); err != nil {
		t.Fatalf("grade: %v", err)
	}
	if view.Index != 1 || view.Phase != string(domain.PhaseHidden) {
		t.Fatalf("expected second card hidden, got %+v", view)
	}
	if _, err := uc.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if view, err = uc.Grade(false); err != nil {
		t.Fatalf("grade: %v", err)
	}
	if view.Phase != string(domain.PhaseDone) {
		t.Fatalf("expected walk to end, got %+v", view)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	summary, err := uc.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if summary.Correct != 1 || summary.Wrong != 1 || summary.WriteError != "" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if refresher.calls != 1 || refresher.settled != 2 {
		t.Fatalf("expected one refresh after both writes, got calls=%d settled=%d", refresher.calls, refresher.settled)
	}
	graded := map[string]bool{}
	for _, g := range grader.grades {
		graded[g.id] = g.correct
	}
	if len(graded) != 2 || !graded["A"] || graded["B"] {
		t.Fatalf("unexpected grades %+v", grader.grades)
	}
}

func TestGradeDoesNotWaitForWrite(t *testing.T) {
	t.Parallel()
	grader := &fakeGrader{hold: make(chan struct{})}
	uc, refresher := newReview([]domain.Card{{ID: "A"}, {ID: "B"}}, grader)

	_, _ = uc.Start(context.Background(), "all")
	_, _ = uc.Reveal()
	view, err := uc.Grade(true)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if view.Index != 1 {
		t.Fatalf("walk should advance while the write is pending")
	}
	_, _ = uc.Reveal()
	_, _ = uc.Grade(true)
	close(grader.hold)
	waitSummary(t, uc)
	if refresher.calls != 1 {
		t.Fatalf("expected refresh, got %d", refresher.calls)
	}
}

func TestReviewMisuse(t *testing.T) {
	t.Parallel()
	uc, _ := newReview([]domain.Card{{ID: "A"}}, &fakeGrader{})
	if _, err := uc.Reveal(); !errors.Is(err, apperrors.ErrNotRunning) {
		t.Fatalf("expected not running, got %v", err)
	}
	if _, err := uc.Start(context.Background(), "all"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Grade(true); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if _, err := uc.Start(context.Background(), "all"); !errors.Is(err, apperrors.ErrAlreadyRunning) {
		t.Fatalf("expected already running, got %v", err)
	}
	if _, err := uc.Quit(); err != nil {
		t.Fatalf("quit: %v", err)
	}
	waitSummary(t, uc)
	if _, err := uc.Start(context.Background(), "all"); err != nil {
		t.Fatalf("restart after quit: %v", err)
	}
}

func TestEmptyCollectionIsRejected(t *testing.T) {
	t.Parallel()
	uc, _ := newReview(nil, &fakeGrader{})
	if _, err := uc.Start(context.Background(), "due"); !errors.Is(err, apperrors.ErrEmptyCollection) {
		t.Fatalf("expected empty collection, got %v", err)
	}
}

func TestWriteFailureSurfacesInSummary(t *testing.T) {
	t.Parallel()
	uc, _ := newReview([]domain.Card{{ID: "A"}}, &fakeGrader{err: errors.New("offline")})
	_, _ = uc.Start(context.Background(), "all")
	_, _ = uc.Reveal()
	_, _ = uc.Grade(false)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	summary, err := uc.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if summary.WriteError == "" {
		t.Fatalf("expected write error in summary")
	}
}
