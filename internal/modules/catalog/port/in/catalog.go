package in

import (
	"context"

	"studydesk/internal/modules/catalog/dto"
)

type Usecase interface {
	Refresh(ctx context.Context) (dto.SnapshotOutput, error)
	Snapshot(ctx context.Context) dto.SnapshotOutput
	Flashcards(ctx context.Context, scope string) ([]dto.FlashcardOutput, error)
	CreateNote(ctx context.Context, input dto.CreateNoteInput) (dto.NoteOutput, error)
	DeleteNote(ctx context.Context, id string) error
	SummarizeNote(ctx context.Context, id string) (string, error)
	ExportNote(ctx context.Context, input dto.ExportNoteInput) (dto.ExportNoteOutput, error)
	GenerateFlashcards(ctx context.Context, input dto.GenerateFlashcardsInput) ([]dto.FlashcardDraftOutput, error)
	AddFlashcard(ctx context.Context, input dto.AddFlashcardInput) (dto.FlashcardOutput, error)
	ReviewFlashcard(ctx context.Context, input dto.ReviewFlashcardInput) (dto.ReviewFlashcardOutput, error)
	CreateTask(ctx context.Context, input dto.CreateTaskInput) (dto.TaskOutput, error)
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
	Busy() bool
}
