package usecase

import (
	"context"

	"studydesk/internal/modules/catalog/domain"
	"studydesk/internal/modules/catalog/dto"
	catalogin "studydesk/internal/modules/catalog/port/in"
	"studydesk/internal/modules/catalog/service"
)

type Interactor struct {
	svc    *service.CatalogService
	export *service.ExportService
}

func NewInteractor(svc *service.CatalogService, export *service.ExportService) catalogin.Usecase {
	return &Interactor{svc: svc, export: export}
}

func (i *Interactor) Refresh(ctx context.Context) (dto.SnapshotOutput, error) {
	snap, err := i.svc.RefreshAll(ctx)
	return toSnapshotOutput(snap), err
}

func (i *Interactor) Snapshot(context.Context) dto.SnapshotOutput {
	return toSnapshotOutput(i.svc.Snapshot())
}

func (i *Interactor) Flashcards(ctx context.Context, scope string) ([]dto.FlashcardOutput, error) {
	if scope == "" {
		scope = string(domain.ScopeAll)
	}
	cards, err := i.svc.Flashcards(ctx, domain.FlashcardScope(scope))
	if err != nil {
		return nil, err
	}
	return toFlashcardOutputs(cards), nil
}

func (i *Interactor) CreateNote(ctx context.Context, input dto.CreateNoteInput) (dto.NoteOutput, error) {
	note, err := i.svc.CreateNote(ctx, domain.NoteDraft{Title: input.Title, Content: input.Content, Subject: input.Subject})
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toNoteOutput(note), nil
}

func (i *Interactor) DeleteNote(ctx context.Context, id string) error {
	return i.svc.DeleteNote(ctx, id)
}

func (i *Interactor) SummarizeNote(ctx context.Context, id string) (string, error) {
	return i.svc.SummarizeNote(ctx, id)
}

func (i *Interactor) ExportNote(ctx context.Context, input dto.ExportNoteInput) (dto.ExportNoteOutput, error) {
	format := input.Format
	if format == "" {
		format = string(domain.ExportPDF)
	}
	res, err := i.export.ExportNote(ctx, input.ID, domain.ExportFormat(format), input.Open)
	if err != nil {
		return dto.ExportNoteOutput{}, err
	}
	return dto.ExportNoteOutput{NoteID: res.NoteID, Format: string(res.Format), Path: res.Path, Bytes: res.Bytes, Pages: res.Pages}, nil
}

func (i *Interactor) GenerateFlashcards(ctx context.Context, input dto.GenerateFlashcardsInput) ([]dto.FlashcardDraftOutput, error) {
	drafts, err := i.svc.GenerateFlashcards(ctx, input.NoteID, input.Count)
	if err != nil {
		return nil, err
	}
	if input.Save && len(drafts) > 0 {
		if _, err := i.svc.SaveFlashcards(ctx, drafts); err != nil {
			return nil, err
		}
	}
	out := make([]dto.FlashcardDraftOutput, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, dto.FlashcardDraftOutput{NoteID: d.NoteID, Question: d.Question, Answer: d.Answer})
	}
	return out, nil
}

func (i *Interactor) AddFlashcard(ctx context.Context, input dto.AddFlashcardInput) (dto.FlashcardOutput, error) {
	card, err := i.svc.AddFlashcard(ctx, domain.FlashcardDraft{NoteID: input.NoteID, Question: input.Question, Answer: input.Answer})
	if err != nil {
		return dto.FlashcardOutput{}, err
	}
	return toFlashcardOutput(card), nil
}

func (i *Interactor) ReviewFlashcard(ctx context.Context, input dto.ReviewFlashcardInput) (dto.ReviewFlashcardOutput, error) {
	next, err := i.svc.ReviewFlashcard(ctx, input.ID, input.Correct)
	if err != nil {
		return dto.ReviewFlashcardOutput{}, err
	}
	return dto.ReviewFlashcardOutput{ID: input.ID, NextReview: next}, nil
}

func (i *Interactor) CreateTask(ctx context.Context, input dto.CreateTaskInput) (dto.TaskOutput, error) {
	task, err := i.svc.CreateTask(ctx, domain.TaskDraft{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		DurationMin: input.DurationMin,
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTaskOutput(task), nil
}

func (i *Interactor) CompleteTask(ctx context.Context, id string) error {
	return i.svc.CompleteTask(ctx, id)
}

func (i *Interactor) DeleteTask(ctx context.Context, id string) error {
	return i.svc.DeleteTask(ctx, id)
}

func (i *Interactor) Busy() bool {
	return i.svc.Busy()
}

func toSnapshotOutput(snap domain.Snapshot) dto.SnapshotOutput {
	pending, completed := domain.PartitionTasks(snap.Tasks)
	out := dto.SnapshotOutput{
		Notes:          make([]dto.NoteOutput, 0, len(snap.Notes)),
		Flashcards:     toFlashcardOutputs(snap.Flashcards),
		PendingTasks:   make([]dto.TaskOutput, 0, len(pending)),
		CompletedTasks: make([]dto.TaskOutput, 0, len(completed)),
		Sessions:       make([]dto.SessionOutput, 0, len(snap.Sessions)),
		Progress: dto.ProgressOutput{
			XP:              snap.Progress.XP,
			StreakDays:      snap.Progress.StreakDays,
			TotalStudyHours: snap.Progress.TotalStudyHours,
			TotalNotes:      snap.Progress.TotalNotes,
			TotalFlashcards: snap.Progress.TotalFlashcards,
			TotalQuizzes:    snap.Progress.TotalQuizzes,
			Badges:          snap.Progress.Badges,
			LastStudyDate:   snap.Progress.LastStudyDate,
		},
		Generation:  snap.Generation,
		RefreshedAt: snap.RefreshedAt,
	}
	for _, n := range snap.Notes {
		out.Notes = append(out.Notes, toNoteOutput(n))
	}
	for _, t := range pending {
		out.PendingTasks = append(out.PendingTasks, toTaskOutput(t))
	}
	for _, t := range completed {
		out.CompletedTasks = append(out.CompletedTasks, toTaskOutput(t))
	}
	for _, s := range snap.Sessions {
		out.Sessions = append(out.Sessions, dto.SessionOutput{
			ID:          s.ID,
			Subject:     s.Subject,
			DurationMin: s.DurationMin,
			Date:        s.Date,
			FocusScore:  s.FocusScore,
		})
	}
	return out
}

func toNoteOutput(n domain.Note) dto.NoteOutput {
	return dto.NoteOutput{ID: n.ID, Title: n.Title, Content: n.Content, Subject: n.Subject, AISummary: n.AISummary, CreatedAt: n.CreatedAt}
}

func toTaskOutput(t domain.Task) dto.TaskOutput {
	return dto.TaskOutput{ID: t.ID, Title: t.Title, Description: t.Description, Date: t.Date, DurationMin: t.DurationMin, Completed: t.Completed}
}

func toFlashcardOutput(c domain.Flashcard) dto.FlashcardOutput {
	return dto.FlashcardOutput{ID: c.ID, NoteID: c.NoteID, Question: c.Question, Answer: c.Answer, Difficulty: c.Difficulty, NextReview: c.NextReview}
}

func toFlashcardOutputs(cards []domain.Flashcard) []dto.FlashcardOutput {
	out := make([]dto.FlashcardOutput, 0, len(cards))
	for _, c := range cards {
		out = append(out, toFlashcardOutput(c))
	}
	return out
}
