package in

import (
	"context"

	"studydesk/internal/modules/catalog/dto"
	catalogin "studydesk/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Refresh(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) ListNotes(ctx context.Context) ([]dto.NoteOutput, error) {
	snap, err := h.usecase.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Notes, nil
}

func (h CLIHandler) CreateNote(ctx context.Context, title, content, subject string) (dto.NoteOutput, error) {
	return h.usecase.CreateNote(ctx, dto.CreateNoteInput{Title: title, Content: content, Subject: subject})
}

func (h CLIHandler) DeleteNote(ctx context.Context, id string) error {
	return h.usecase.DeleteNote(ctx, id)
}

func (h CLIHandler) SummarizeNote(ctx context.Context, id string) (string, error) {
	return h.usecase.SummarizeNote(ctx, id)
}

func (h CLIHandler) ExportNote(ctx context.Context, id, format string, open bool) (dto.ExportNoteOutput, error) {
	return h.usecase.ExportNote(ctx, dto.ExportNoteInput{ID: id, Format: format, Open: open})
}

func (h CLIHandler) ListFlashcards(ctx context.Context, scope string) ([]dto.FlashcardOutput, error) {
	return h.usecase.Flashcards(ctx, scope)
}

func (h CLIHandler) GenerateFlashcards(ctx context.Context, noteID string, count int, save bool) ([]dto.FlashcardDraftOutput, error) {
	return h.usecase.GenerateFlashcards(ctx, dto.GenerateFlashcardsInput{NoteID: noteID, Count: count, Save: save})
}

func (h CLIHandler) AddFlashcard(ctx context.Context, noteID, question, answer string) (dto.FlashcardOutput, error) {
	return h.usecase.AddFlashcard(ctx, dto.AddFlashcardInput{NoteID: noteID, Question: question, Answer: answer})
}

func (h CLIHandler) ListTasks(ctx context.Context) (pending, completed []dto.TaskOutput, err error) {
	snap, err := h.usecase.Refresh(ctx)
	if err != nil {
		return nil, nil, err
	}
	return snap.PendingTasks, snap.CompletedTasks, nil
}

func (h CLIHandler) CreateTask(ctx context.Context, title, description, date string, durationMin int) (dto.TaskOutput, error) {
	return h.usecase.CreateTask(ctx, dto.CreateTaskInput{Title: title, Description: description, Date: date, DurationMin: durationMin})
}

func (h CLIHandler) CompleteTask(ctx context.Context, id string) error {
	if _, err := h.usecase.Refresh(ctx); err != nil {
		return err
	}
	return h.usecase.CompleteTask(ctx, id)
}

func (h CLIHandler) DeleteTask(ctx context.Context, id string) error {
	return h.usecase.DeleteTask(ctx, id)
}

func (h CLIHandler) ListSessions(ctx context.Context) ([]dto.SessionOutput, error) {
	snap, err := h.usecase.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Sessions, nil
}

func (h CLIHandler) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	snap, err := h.usecase.Refresh(ctx)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return snap.Progress, nil
}
