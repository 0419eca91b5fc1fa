package in

import (
	"context"
	"errors"
	"time"

	"studydesk/internal/modules/focus/dto"
	focusin "studydesk/internal/modules/focus/port/in"
	apperrors "studydesk/internal/platform/errors"
)

// completionGrace bounds how long Run waits for a countdown that finished
// just as ctx was cancelled to report its recorded session.
const completionGrace = 30 * time.Second

type CLIHandler struct {
	usecase focusin.Usecase
	grace   time.Duration
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase, grace: completionGrace}
}

// Run starts a countdown and blocks until it completes or ctx is done, in
// which case the countdown is stopped. progress is called about once per
// interval with the current status.
func (h CLIHandler) Run(ctx context.Context, subject string, interval time.Duration, progress func(dto.StatusOutput)) (dto.CompletionOutput, error) {
	st, err := h.usecase.Start(subject)
	if err != nil {
		return dto.CompletionOutput{}, err
	}
	if progress != nil {
		progress(st)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case c := <-h.usecase.Completions():
			return c, nil
		case <-ticker.C:
			if progress != nil {
				progress(h.usecase.Status())
			}
		case <-ctx.Done():
			if _, err := h.usecase.Stop(); errors.Is(err, apperrors.ErrNotRunning) {
				return h.awaitCompletion(ctx.Err())
			}
			return dto.CompletionOutput{}, ctx.Err()
		}
	}
}

// awaitCompletion collects the completion of a countdown that was no longer
// running when Run tried to stop it.
func (h CLIHandler) awaitCompletion(cause error) (dto.CompletionOutput, error) {
	timer := time.NewTimer(h.grace)
	defer timer.Stop()
	select {
	case c := <-h.usecase.Completions():
		return c, nil
	case <-timer.C:
		return dto.CompletionOutput{}, cause
	}
}

func (h CLIHandler) Status() dto.StatusOutput {
	return h.usecase.Status()
}
