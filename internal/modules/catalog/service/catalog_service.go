package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"studydesk/internal/modules/catalog/domain"
	catalogout "studydesk/internal/modules/catalog/port/out"
	"studydesk/internal/platform/clock"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/platform/logger"
)

// CatalogService owns the entity cache. Every mutation writes through to the
// remote service and then reloads all five collections; nothing is applied
// optimistically.
type CatalogService struct {
	clock  clock.Clock
	reader catalogout.RemoteReader
	writer catalogout.RemoteWriter
	log    *logger.Logger

	mu        sync.RWMutex
	snapshot  domain.Snapshot
	committed uint64

	issued atomic.Uint64
	busy   atomic.Bool
}

func NewCatalogService(clock clock.Clock, reader catalogout.RemoteReader, writer catalogout.RemoteWriter, log *logger.Logger) *CatalogService {
	return &CatalogService{
		clock:  clock,
		reader: reader,
		writer: writer,
		log:    logger.OrNop(log).With("module", "catalog"),
	}
}

func (s *CatalogService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// RefreshAll fetches the five collections concurrently and swaps them in as
// one unit. If any fetch fails the previous snapshot stays in place and the
// first failure is returned as a *domain.RefreshError. A refresh that
// finishes after a newer one has already been committed is dropped.
func (s *CatalogService) RefreshAll(ctx context.Context) (domain.Snapshot, error) {
	seq := s.issued.Add(1)

	var next domain.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		notes, err := s.reader.ListNotes(gctx)
		next.Notes = notes
		return wrapRefresh(domain.CollectionNotes, err)
	})
	g.Go(func() error {
		cards, err := s.reader.ListFlashcards(gctx)
		next.Flashcards = cards
		return wrapRefresh(domain.CollectionFlashcards, err)
	})
	g.Go(func() error {
		tasks, err := s.reader.ListTasks(gctx)
		next.Tasks = tasks
		return wrapRefresh(domain.CollectionTasks, err)
	})
	g.Go(func() error {
		sessions, err := s.reader.ListSessions(gctx)
		next.Sessions = sessions
		return wrapRefresh(domain.CollectionSessions, err)
	})
	g.Go(func() error {
		progress, err := s.reader.GetProgress(gctx)
		next.Progress = progress
		return wrapRefresh(domain.CollectionProgress, err)
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("refresh failed, keeping previous snapshot", "error", err)
		return s.Snapshot(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.committed {
		s.log.Debug("stale refresh dropped", "seq", seq, "committed", s.committed)
		return s.snapshot.Clone(), nil
	}
	next.Generation = s.snapshot.Generation + 1
	next.RefreshedAt = s.clock.Now()
	s.snapshot = next
	s.committed = seq
	s.log.Debug("snapshot refreshed", "generation", next.Generation,
		"notes", len(next.Notes), "flashcards", len(next.Flashcards), "tasks", len(next.Tasks))
	return next.Clone(), nil
}

func wrapRefresh(collection domain.Collection, err error) error {
	if err == nil {
		return nil
	}
	return &domain.RefreshError{Collection: collection, Err: err}
}

// Flashcards returns the card set a review should walk over.
func (s *CatalogService) Flashcards(ctx context.Context, scope domain.FlashcardScope) ([]domain.Flashcard, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if scope == domain.ScopeDue {
		return s.reader.ListDueFlashcards(ctx)
	}
	snap := s.Snapshot()
	if snap.Generation == 0 {
		var err error
		if snap, err = s.RefreshAll(ctx); err != nil {
			return nil, err
		}
	}
	return snap.Flashcards, nil
}

func (s *CatalogService) CreateNote(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if err := draft.Validate(); err != nil {
		return domain.Note{}, err
	}
	var created domain.Note
	err := s.mutate(ctx, "create note", true, func(ctx context.Context) error {
		var err error
		created, err = s.writer.CreateNote(ctx, draft)
		return err
	})
	return created, err
}

func (s *CatalogService) DeleteNote(ctx context.Context, id string) error {
	if err := domain.RequireID("note", id); err != nil {
		return err
	}
	return s.mutate(ctx, "delete note", false, func(ctx context.Context) error {
		return s.writer.DeleteNote(ctx, id)
	})
}

func (s *CatalogService) SummarizeNote(ctx context.Context, id string) (string, error) {
	if err := domain.RequireID("note", id); err != nil {
		return "", err
	}
	var summary string
	err := s.mutate(ctx, "summarize note", true, func(ctx context.Context) error {
		var err error
		summary, err = s.writer.SummarizeNote(ctx, id)
		return err
	})
	return summary, err
}

func (s *CatalogService) GenerateFlashcards(ctx context.Context, noteID string, count int) ([]domain.FlashcardDraft, error) {
	if err := domain.RequireID("note", noteID); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", apperrors.ErrInvalidInput)
	}
	var drafts []domain.FlashcardDraft
	err := s.mutate(ctx, "generate flashcards", true, func(ctx context.Context) error {
		var err error
		drafts, err = s.writer.GenerateFlashcards(ctx, noteID, count)
		return err
	})
	for i := range drafts {
		if drafts[i].NoteID == "" {
			drafts[i].NoteID = noteID
		}
	}
	return drafts, err
}

func (s *CatalogService) AddFlashcard(ctx context.Context, draft domain.FlashcardDraft) (domain.Flashcard, error) {
	if err := draft.Validate(); err != nil {
		return domain.Flashcard{}, err
	}
	var created domain.Flashcard
	err := s.mutate(ctx, "add flashcard", false, func(ctx context.Context) error {
		var err error
		created, err = s.writer.CreateFlashcard(ctx, draft)
		return err
	})
	return created, err
}

// SaveFlashcards stores generated drafts in order and refreshes once at the
// end. Drafts written before a failure stay written.
func (s *CatalogService) SaveFlashcards(ctx context.Context, drafts []domain.FlashcardDraft) ([]domain.Flashcard, error) {
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	saved := make([]domain.Flashcard, 0, len(drafts))
	err := s.mutate(ctx, "save flashcards", false, func(ctx context.Context) error {
		for _, d := range drafts {
			card, err := s.writer.CreateFlashcard(ctx, d)
			if err != nil {
				return err
			}
			saved = append(saved, card)
		}
		return nil
	})
	return saved, err
}

func (s *CatalogService) ReviewFlashcard(ctx context.Context, id string, correct bool) (time.Time, error) {
	if err := domain.RequireID("flashcard", id); err != nil {
		return time.Time{}, err
	}
	var next time.Time
	err := s.mutate(ctx, "review flashcard", false, func(ctx context.Context) error {
		var err error
		next, err = s.writer.ReviewFlashcard(ctx, id, correct)
		return err
	})
	return next, err
}

func (s *CatalogService) CreateTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return domain.Task{}, err
	}
	var created domain.Task
	err := s.mutate(ctx, "create task", true, func(ctx context.Context) error {
		var err error
		created, err = s.writer.CreateTask(ctx, draft)
		return err
	})
	return created, err
}

// CompleteTask is a no-op for a task the cache already shows as completed:
// completion never goes back to false.
func (s *CatalogService) CompleteTask(ctx context.Context, id string) error {
	if err := domain.RequireID("task", id); err != nil {
		return err
	}
	for _, t := range s.Snapshot().Tasks {
		if t.ID == id && t.Completed {
			return nil
		}
	}
	return s.mutate(ctx, "complete task", false, func(ctx context.Context) error {
		return s.writer.CompleteTask(ctx, id)
	})
}

func (s *CatalogService) DeleteTask(ctx context.Context, id string) error {
	if err := domain.RequireID("task", id); err != nil {
		return err
	}
	return s.mutate(ctx, "delete task", false, func(ctx context.Context) error {
		return s.writer.DeleteTask(ctx, id)
	})
}

// mutate runs one remote write and refreshes on success. Guarded writes share
// the busy flag, so a second create/generate is rejected while one is in
// flight; unguarded writes may race freely.
func (s *CatalogService) mutate(ctx context.Context, op string, guarded bool, write func(context.Context) error) error {
	if guarded {
		if !s.busy.CompareAndSwap(false, true) {
			return fmt.Errorf("%s: %w", op, apperrors.ErrBusy)
		}
		defer s.busy.Store(false)
	}
	if err := write(ctx); err != nil {
		s.log.Warn("write failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.RefreshAll(ctx); err != nil {
		return fmt.Errorf("%s succeeded but %w", op, err)
	}
	s.log.Info("write applied", "op", op)
	return nil
}

// Busy reports whether a guarded create/generate action is in flight.
func (s *CatalogService) Busy() bool {
	return s.busy.Load()
}
