package in

import (
	"context"

	"studydesk/internal/modules/review/dto"
	reviewin "studydesk/internal/modules/review/port/in"
)

type CLIHandler struct {
	usecase reviewin.Usecase
}

func NewCLIHandler(usecase reviewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Prompter asks the reviewer about one card. ShowQuestion returns false to
// quit; Judge returns whether the answer was known.
type Prompter interface {
	ShowQuestion(card dto.CardView) (bool, error)
	Judge(card dto.CardView) (bool, error)
}

// Run walks every card through p and returns the settled summary.
func (h CLIHandler) Run(ctx context.Context, scope string, p Prompter) (dto.SummaryOutput, error) {
	card, err := h.usecase.Start(ctx, scope)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	for card.Phase != "done" {
		more, err := p.ShowQuestion(card)
		if err != nil || !more {
			_, _ = h.usecase.Quit()
			if err != nil {
				return dto.SummaryOutput{}, err
			}
			break
		}
		if card, err = h.usecase.Reveal(); err != nil {
			return dto.SummaryOutput{}, err
		}
		correct, err := p.Judge(card)
		if err != nil {
			_, _ = h.usecase.Quit()
			return dto.SummaryOutput{}, err
		}
		if card, err = h.usecase.Grade(correct); err != nil {
			return dto.SummaryOutput{}, err
		}
	}
	return h.usecase.Wait(ctx)
}
