package dto

import "time"

type NoteOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Subject   string    `json:"subject,omitempty"`
	AISummary string    `json:"ai_summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FlashcardOutput struct {
	ID         string    `json:"id"`
	NoteID     string    `json:"note_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Difficulty int       `json:"difficulty"`
	NextReview time.Time `json:"next_review"`
}

type FlashcardDraftOutput struct {
	NoteID   string `json:"note_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type TaskOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	DurationMin int    `json:"duration"`
	Completed   bool   `json:"completed"`
}

type SessionOutput struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	DurationMin int    `json:"duration"`
	Date        string `json:"date"`
	FocusScore  int    `json:"focus_score"`
}

type ProgressOutput struct {
	XP              int      `json:"xp"`
	StreakDays      int      `json:"streak_days"`
	TotalStudyHours float64  `json:"total_study_hours"`
	TotalNotes      int      `json:"total_notes"`
	TotalFlashcards int      `json:"total_flashcards"`
	TotalQuizzes    int      `json:"total_quizzes"`
	Badges          []string `json:"badges"`
	LastStudyDate   string   `json:"last_study_date,omitempty"`
}

type SnapshotOutput struct {
	Notes          []NoteOutput      `json:"notes"`
	Flashcards     []FlashcardOutput `json:"flashcards"`
	PendingTasks   []TaskOutput      `json:"pending_tasks"`
	CompletedTasks []TaskOutput      `json:"completed_tasks"`
	Sessions       []SessionOutput   `json:"sessions"`
	Progress       ProgressOutput    `json:"progress"`
	Generation     uint64            `json:"generation"`
	RefreshedAt    time.Time         `json:"refreshed_at"`
}

type CreateNoteInput struct {
	Title   string
	Content string
	Subject string
}

type CreateTaskInput struct {
	Title       string
	Description string
	Date        string
	DurationMin int
}

type GenerateFlashcardsInput struct {
	NoteID string
	Count  int
	Save   bool
}

type AddFlashcardInput struct {
	NoteID   string
	Question string
	Answer   string
}

type ReviewFlashcardInput struct {
	ID      string
	Correct bool
}

type ReviewFlashcardOutput struct {
	ID         string    `json:"id"`
	NextReview time.Time `json:"next_review"`
}

type ExportNoteInput struct {
	ID     string
	Format string
	Open   bool
}

type ExportNoteOutput struct {
	NoteID string `json:"note_id"`
	Format string `json:"format"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
	Pages  int    `json:"pages,omitempty"`
}
