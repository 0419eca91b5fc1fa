package in

import (
	"context"

	"studydesk/internal/modules/review/dto"
)

type Usecase interface {
	Start(ctx context.Context, scope string) (dto.CardView, error)
	Reveal() (dto.CardView, error)
	Grade(correct bool) (dto.CardView, error)
	Quit() (dto.CardView, error)
	Current() (dto.CardView, bool)
	Wait(ctx context.Context) (dto.SummaryOutput, error)
}
