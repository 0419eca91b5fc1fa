package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studydesk/internal/platform/errors"
)

// Question is a saved multiple-choice quiz question. CorrectAnswer indexes
// Options.
type Question struct {
	ID            string
	Topic         string
	Text          string
	Options       []string
	CorrectAnswer int
	Difficulty    string
	CreatedAt     time.Time
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Topic) == "" {
		return fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question is required", apperrors.ErrInvalidInput)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: at least two options are required", apperrors.ErrInvalidInput)
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("%w: option %d is empty", apperrors.ErrInvalidInput, i+1)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct answer %d is out of range", apperrors.ErrInvalidInput, q.CorrectAnswer)
	}
	return nil
}
