package usecase

import (
	"context"

	"studydesk/internal/modules/review/domain"
	"studydesk/internal/modules/review/dto"
	reviewin "studydesk/internal/modules/review/port/in"
	"studydesk/internal/modules/review/service"
)

type Interactor struct {
	svc *service.ReviewService
}

func NewInteractor(svc *service.ReviewService) reviewin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, scope string) (dto.CardView, error) {
	if scope == "" {
		scope = "all"
	}
	v, err := i.svc.Start(ctx, scope)
	return toCardView(v), err
}

func (i *Interactor) Reveal() (dto.CardView, error) {
	v, err := i.svc.Reveal()
	return toCardView(v), err
}

func (i *Interactor) Grade(correct bool) (dto.CardView, error) {
	v, err := i.svc.Grade(correct)
	return toCardView(v), err
}

func (i *Interactor) Quit() (dto.CardView, error) {
	v, err := i.svc.Quit()
	return toCardView(v), err
}

func (i *Interactor) Current() (dto.CardView, bool) {
	v, active := i.svc.Current()
	return toCardView(v), active
}

func (i *Interactor) Wait(ctx context.Context) (dto.SummaryOutput, error) {
	s, err := i.svc.Wait(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	out := dto.SummaryOutput{Total: s.Total, Correct: s.Correct, Wrong: s.Wrong}
	if s.WriteErr != nil {
		out.WriteError = s.WriteErr.Error()
	}
	if s.RefreshErr != nil {
		out.RefreshError = s.RefreshErr.Error()
	}
	return out, nil
}

func toCardView(v domain.View) dto.CardView {
	return dto.CardView{
		Index:    v.Index,
		Total:    v.Total,
		Phase:    string(v.Phase),
		CardID:   v.CardID,
		Question: v.Question,
		Answer:   v.Answer,
		Correct:  v.Correct,
		Wrong:    v.Wrong,
	}
}
