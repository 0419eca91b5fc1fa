package domain

import (
	"fmt"
	"strings"
	"time"

	"studydesk/internal/platform/clock"
	apperrors "studydesk/internal/platform/errors"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

type Note struct {
	ID        string
	Title     string
	Content   string
	Subject   string
	AISummary string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Flashcard struct {
	ID         string
	NoteID     string
	Question   string
	Answer     string
	Difficulty int
	NextReview time.Time
	CreatedAt  time.Time
}

type Task struct {
	ID          string
	Title       string
	Description string
	Date        string
	DurationMin int
	Completed   bool
	CreatedAt   time.Time
}

type StudySession struct {
	ID          string
	Subject     string
	DurationMin int
	Date        string
	FocusScore  int
	CreatedAt   time.Time
}

type Progress struct {
	XP              int
	StreakDays      int
	TotalStudyHours float64
	TotalNotes      int
	TotalFlashcards int
	TotalQuizzes    int
	Badges          []string
	LastStudyDate   string
}

// HasBadge treats Badges as a set.
func (p Progress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

type NoteDraft struct {
	Title   string
	Content string
	Subject string
}

func (d NoteDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("%w: content is required", apperrors.ErrInvalidInput)
	}
	return nil
}

type TaskDraft struct {
	Title       string
	Description string
	Date        string
	DurationMin int
}

func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Date) == "" {
		return fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	if _, err := time.Parse(clock.DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", apperrors.ErrInvalidInput, d.Date)
	}
	if d.DurationMin <= 0 {
		return fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

// FlashcardDraft is a question/answer pair produced by generation and not yet
// stored remotely.
type FlashcardDraft struct {
	NoteID   string
	Question string
	Answer   string
}

func (d FlashcardDraft) Validate() error {
	if strings.TrimSpace(d.NoteID) == "" {
		return fmt.Errorf("%w: note id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Question) == "" || strings.TrimSpace(d.Answer) == "" {
		return fmt.Errorf("%w: question and answer are required", apperrors.ErrInvalidInput)
	}
	return nil
}

func RequireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id is required", apperrors.ErrInvalidInput, kind)
	}
	return nil
}
