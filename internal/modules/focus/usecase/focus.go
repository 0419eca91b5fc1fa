package usecase

import (
	"studydesk/internal/modules/focus/domain"
	"studydesk/internal/modules/focus/dto"
	focusin "studydesk/internal/modules/focus/port/in"
	"studydesk/internal/modules/focus/service"
)

const completionBuffer = 8

type Interactor struct {
	svc         *service.TimerService
	completions chan dto.CompletionOutput
}

func NewInteractor(svc *service.TimerService) focusin.Usecase {
	i := &Interactor{svc: svc, completions: make(chan dto.CompletionOutput, completionBuffer)}
	svc.OnComplete(i.publish)
	return i
}

func (i *Interactor) publish(c domain.Completion) {
	select {
	case i.completions <- toCompletionOutput(c):
	default:
	}
}

func (i *Interactor) Completions() <-chan dto.CompletionOutput {
	return i.completions
}

func (i *Interactor) Configure(subject string) (dto.StatusOutput, error) {
	st, err := i.svc.Configure(subject)
	return toStatusOutput(st), err
}

func (i *Interactor) Reset() (dto.StatusOutput, error) {
	st, err := i.svc.Reset()
	return toStatusOutput(st), err
}

func (i *Interactor) Start(subject string) (dto.StatusOutput, error) {
	st, err := i.svc.Start(subject)
	return toStatusOutput(st), err
}

func (i *Interactor) Stop() (dto.StatusOutput, error) {
	st, err := i.svc.Stop()
	return toStatusOutput(st), err
}

func (i *Interactor) Status() dto.StatusOutput {
	return toStatusOutput(i.svc.Status())
}

func toStatusOutput(st service.Status) dto.StatusOutput {
	out := dto.StatusOutput{
		State:        string(st.State),
		Subject:      st.Subject,
		Remaining:    st.Remaining,
		DurationSecs: st.DurationSecs,
	}
	if st.LastCompletion != nil {
		c := toCompletionOutput(*st.LastCompletion)
		out.LastCompletion = &c
	}
	return out
}

func toCompletionOutput(c domain.Completion) dto.CompletionOutput {
	out := dto.CompletionOutput{
		Session: dto.SessionOutput{
			ID:          c.Session.ID,
			Subject:     c.Session.Subject,
			DurationMin: c.Session.DurationMin,
			Date:        c.Session.Date,
			FocusScore:  c.Session.FocusScore,
		},
		FinishedAt: c.FinishedAt,
	}
	if c.Err != nil {
		out.Error = c.Err.Error()
	}
	if c.RefreshErr != nil {
		out.RefreshError = c.RefreshErr.Error()
	}
	return out
}
