package out

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studydesk/internal/modules/catalog/domain"
)

// wireTime accepts the timestamp shapes the backend emits: RFC 3339 with or
// without a zone, and null.
type wireTime struct{ time.Time }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognised format", s)
}

type noteWire struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Subject   string   `json:"subject"`
	AISummary *string  `json:"ai_summary"`
	CreatedAt wireTime `json:"created_at"`
	UpdatedAt wireTime `json:"updated_at"`
}

func (w noteWire) toDomain() domain.Note {
	n := domain.Note{ID: w.ID, Title: w.Title, Content: w.Content, Subject: w.Subject, CreatedAt: w.CreatedAt.Time, UpdatedAt: w.UpdatedAt.Time}
	if w.AISummary != nil {
		n.AISummary = *w.AISummary
	}
	return n
}

type flashcardWire struct {
	ID         string   `json:"id,omitempty"`
	NoteID     string   `json:"note_id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Difficulty int      `json:"difficulty,omitempty"`
	NextReview wireTime `json:"next_review"`
	CreatedAt  wireTime `json:"created_at"`
}

func (w flashcardWire) toDomain() domain.Flashcard {
	return domain.Flashcard{
		ID:         w.ID,
		NoteID:     w.NoteID,
		Question:   w.Question,
		Answer:     w.Answer,
		Difficulty: w.Difficulty,
		NextReview: w.NextReview.Time,
		CreatedAt:  w.CreatedAt.Time,
	}
}

type taskWire struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Duration    int      `json:"duration"`
	Completed   bool     `json:"completed"`
	CreatedAt   wireTime `json:"created_at"`
}

func (w taskWire) toDomain() domain.Task {
	return domain.Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Date:        w.Date,
		DurationMin: w.Duration,
		Completed:   w.Completed,
		CreatedAt:   w.CreatedAt.Time,
	}
}

type sessionWire struct {
	ID         string   `json:"id"`
	Subject    string   `json:"subject"`
	Duration   int      `json:"duration"`
	Date       string   `json:"date"`
	FocusScore int      `json:"focus_score"`
	CreatedAt  wireTime `json:"created_at"`
}

func (w sessionWire) toDomain() domain.StudySession {
	return domain.StudySession{
		ID:          w.ID,
		Subject:     w.Subject,
		DurationMin: w.Duration,
		Date:        w.Date,
		FocusScore:  w.FocusScore,
		CreatedAt:   w.CreatedAt.Time,
	}
}

type progressWire struct {
	TotalStudyHours float64  `json:"total_study_hours"`
	TotalNotes      int      `json:"total_notes"`
	TotalFlashcards int      `json:"total_flashcards"`
	TotalQuizzes    int      `json:"total_quizzes"`
	StreakDays      int      `json:"streak_days"`
	XP              int      `json:"xp"`
	Badges          []string `json:"badges"`
	LastStudyDate   *string  `json:"last_study_date"`
}

func (w progressWire) toDomain() domain.Progress {
	p := domain.Progress{
		XP:              w.XP,
		StreakDays:      w.StreakDays,
		TotalStudyHours: w.TotalStudyHours,
		TotalNotes:      w.TotalNotes,
		TotalFlashcards: w.TotalFlashcards,
		TotalQuizzes:    w.TotalQuizzes,
		Badges:          append([]string(nil), w.Badges...),
	}
	if w.LastStudyDate != nil {
		p.LastStudyDate = *w.LastStudyDate
	}
	return p
}

type draftWire struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// parseDrafts decodes the "flashcards" field of a generate reply. The
// generator sometimes hands back the array as a string, optionally wrapped
// in a ```json fence.
func parseDrafts(raw json.RawMessage, noteID string) ([]domain.FlashcardDraft, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.FlashcardDraft{}, nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("decode flashcards text: %w", err)
		}
		raw = []byte(stripFence(text))
	}
	var wire []draftWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}
	out := make([]domain.FlashcardDraft, 0, len(wire))
	for _, w := range wire {
		if strings.TrimSpace(w.Question) == "" {
			continue
		}
		out = append(out, domain.FlashcardDraft{NoteID: noteID, Question: w.Question, Answer: w.Answer})
	}
	return out, nil
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
