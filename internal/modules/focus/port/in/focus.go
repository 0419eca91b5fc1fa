package in

import "studydesk/internal/modules/focus/dto"

type Usecase interface {
	Configure(subject string) (dto.StatusOutput, error)
	Reset() (dto.StatusOutput, error)
	Start(subject string) (dto.StatusOutput, error)
	Stop() (dto.StatusOutput, error)
	Status() dto.StatusOutput
	// Completions delivers one value per finished countdown. Values are
	// dropped if the reader falls behind.
	Completions() <-chan dto.CompletionOutput
}
