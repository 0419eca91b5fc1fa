package domain

import (
	"fmt"

	apperrors "studydesk/internal/platform/errors"
)

type ExportFormat string

const (
	ExportPDF      ExportFormat = "pdf"
	ExportMarkdown ExportFormat = "md"
)

func (f ExportFormat) Validate() error {
	switch f {
	case ExportPDF, ExportMarkdown:
		return nil
	default:
		return fmt.Errorf("%w: unsupported export format %q", apperrors.ErrInvalidInput, string(f))
	}
}

type ExportResult struct {
	NoteID string
	Format ExportFormat
	Path   string
	Bytes  int
	Pages  int
}

// FlashcardScope selects which flashcards a review walks over.
type FlashcardScope string

const (
	ScopeAll FlashcardScope = "all"
	ScopeDue FlashcardScope = "due"
)

func (s FlashcardScope) Validate() error {
	switch s {
	case ScopeAll, ScopeDue:
		return nil
	default:
		return fmt.Errorf("%w: unknown flashcard scope %q", apperrors.ErrInvalidInput, string(s))
	}
}
