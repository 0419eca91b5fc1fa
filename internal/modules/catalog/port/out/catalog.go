package out

import (
	"context"
	"time"

	"studydesk/internal/modules/catalog/domain"
)

type RemoteReader interface {
	ListNotes(ctx context.Context) ([]domain.Note, error)
	ListFlashcards(ctx context.Context) ([]domain.Flashcard, error)
	ListDueFlashcards(ctx context.Context) ([]domain.Flashcard, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListSessions(ctx context.Context) ([]domain.StudySession, error)
	GetProgress(ctx context.Context) (domain.Progress, error)
}

type RemoteWriter interface {
	CreateNote(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
	SummarizeNote(ctx context.Context, id string) (string, error)
	ExportNote(ctx context.Context, id string) ([]byte, string, error)
	GenerateFlashcards(ctx context.Context, noteID string, count int) ([]domain.FlashcardDraft, error)
	CreateFlashcard(ctx context.Context, draft domain.FlashcardDraft) (domain.Flashcard, error)
	ReviewFlashcard(ctx context.Context, id string, correct bool) (time.Time, error)
	CreateTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error)
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// DocumentInspector checks an exported document before it is written out.
type DocumentInspector interface {
	PageCount(data []byte) (int, error)
}

type ExportSink interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
