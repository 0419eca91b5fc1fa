package domain

import (
	"errors"
	"testing"

	apperrors "studydesk/internal/platform/errors"
)

func TestWalkVisitsCardsInOrderOnce(t *testing.T) {
	t.Parallel()
	w, err := NewWalk([]Card{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if err != nil {
		t.Fatalf("new walk: %v", err)
	}
	var seen []string
	for i := 0; i < 3; i++ {
		if got := w.View().Index; got != i {
			t.Fatalf("expected index %d, got %d", i, got)
		}
		if err := w.Reveal(); err != nil {
			t.Fatalf("reveal: %v", err)
		}
		card, last, err := w.Grade(i%2 == 0)
		if err != nil {
			t.Fatalf("grade: %v", err)
		}
		seen = append(seen, card.ID)
		if last != (i == 2) {
			t.Fatalf("last flag wrong at %d", i)
		}
	}
	if !w.Done() || seen[0] != "a" || seen[1] != "b" || seen[2] != "c" {
		t.Fatalf("unexpected walk result done=%v seen=%v", w.Done(), seen)
	}
	v := w.View()
	if v.Correct != 2 || v.Wrong != 1 {
		t.Fatalf("unexpected tallies %+v", v)
	}
}

func TestGradeBeforeRevealIsInvalid(t *testing.T) {
	t.Parallel()
	w, _ := NewWalk([]Card{{ID: "a", Question: "Q", Answer: "A"}})
	if _, _, err := w.Grade(true); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if w.View().Answer != "" {
		t.Fatalf("answer must stay hidden")
	}
	_ = w.Reveal()
	if err := w.Reveal(); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("double reveal should fail, got %v", err)
	}
	if w.View().Answer != "A" {
		t.Fatalf("answer should be visible after reveal")
	}
}

func TestEmptySnapshotIsRejected(t *testing.T) {
	t.Parallel()
	if _, err := NewWalk(nil); !errors.Is(err, apperrors.ErrEmptyCollection) {
		t.Fatalf("expected empty collection, got %v", err)
	}
}
