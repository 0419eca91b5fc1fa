package domain

import (
	"fmt"

	apperrors "studydesk/internal/platform/errors"
)

type Phase string

const (
	PhaseHidden   Phase = "hidden"
	PhaseRevealed Phase = "revealed"
	PhaseDone     Phase = "done"
)

type Card struct {
	ID       string
	Question string
	Answer   string
}

// Walk steps once through a fixed card snapshot in order. Missed cards are
// not requeued.
type Walk struct {
	cards   []Card
	index   int
	phase   Phase
	correct int
	wrong   int
}

func NewWalk(cards []Card) (*Walk, error) {
	if len(cards) == 0 {
		return nil, apperrors.ErrEmptyCollection
	}
	return &Walk{cards: append([]Card(nil), cards...), phase: PhaseHidden}, nil
}

func (w *Walk) Reveal() error {
	if w.phase != PhaseHidden {
		return fmt.Errorf("%w: cannot reveal while %s", apperrors.ErrInvalidState, w.phase)
	}
	w.phase = PhaseRevealed
	return nil
}

// Grade scores the revealed card and moves to the next one. It returns the
// graded card and whether that was the last.
func (w *Walk) Grade(correct bool) (Card, bool, error) {
	if w.phase != PhaseRevealed {
		return Card{}, false, fmt.Errorf("%w: reveal the answer before grading", apperrors.ErrInvalidState)
	}
	card := w.cards[w.index]
	if correct {
		w.correct++
	} else {
		w.wrong++
	}
	w.index++
	if w.index == len(w.cards) {
		w.phase = PhaseDone
		return card, true, nil
	}
	w.phase = PhaseHidden
	return card, false, nil
}

// End stops the walk early. Ungraded cards are left alone.
func (w *Walk) End() {
	w.phase = PhaseDone
}

func (w *Walk) Done() bool { return w.phase == PhaseDone }

// View is what a reviewer may see right now. Answer stays empty until the
// card is revealed.
type View struct {
	Index    int
	Total    int
	Phase    Phase
	CardID   string
	Question string
	Answer   string
	Correct  int
	Wrong    int
}

func (w *Walk) View() View {
	v := View{Index: w.index, Total: len(w.cards), Phase: w.phase, Correct: w.correct, Wrong: w.wrong}
	if w.phase == PhaseDone {
		return v
	}
	card := w.cards[w.index]
	v.CardID = card.ID
	v.Question = card.Question
	if w.phase == PhaseRevealed {
		v.Answer = card.Answer
	}
	return v
}

// Summary is the outcome of a finished walk once its writes have settled.
type Summary struct {
	Total      int
	Correct    int
	Wrong      int
	WriteErr   error
	RefreshErr error
}
