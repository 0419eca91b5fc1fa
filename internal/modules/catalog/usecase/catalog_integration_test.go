package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	catalogout "studydesk/internal/modules/catalog/adapter/out"
	"studydesk/internal/modules/catalog/dto"
	"studydesk/internal/modules/catalog/service"
	"studydesk/internal/modules/catalog/usecase"
	catalogin "studydesk/internal/modules/catalog/port/in"
	"studydesk/internal/platform/clock"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/platform/remote"
)

func newInteractor(t *testing.T, calls *atomic.Int32, handler http.HandlerFunc) catalogin.Usecase {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	client, err := remote.New(remote.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store := catalogout.NewHTTPStore(client)
	svc := service.NewCatalogService(clock.SystemClock{}, store, store, nil)
	export := service.NewExportService(svc, store, catalogout.NewPDFInspector(), catalogout.NewDirExportSink(t.TempDir()), nil, nil)
	return usecase.NewInteractor(svc, export)
}

func backend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/notes":
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"id":"n1","title":"Cells","content":"c","subject":"bio"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"id":"n1","title":"Cells","content":"c","subject":"bio"}]`)
	case "/api/tasks":
		_, _ = io.WriteString(w, `[{"id":"t1","title":"Read","date":"2026-03-01","duration":30,"completed":false},
			{"id":"t2","title":"Quiz","date":"2026-03-01","duration":10,"completed":true}]`)
	case "/api/flashcards", "/api/sessions":
		_, _ = io.WriteString(w, `[]`)
	case "/api/progress":
		_, _ = io.WriteString(w, `{"xp":120,"streak_days":3,"badges":["first_note"]}`)
	default:
		http.NotFound(w, r)
	}
}

func TestCreateNoteWithEmptyTitleMakesNoRequests(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	uc := newInteractor(t, &calls, backend)

	_, err := uc.CreateNote(context.Background(), dto.CreateNoteInput{Title: "", Content: "body"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected zero requests, got %d", calls.Load())
	}
	if uc.Snapshot(context.Background()).Generation != 0 {
		t.Fatalf("cache must stay untouched")
	}
}

func TestCreateTaskWithEmptyTitleMakesNoRequests(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	uc := newInteractor(t, &calls, backend)

	_, err := uc.CreateTask(context.Background(), dto.CreateTaskInput{Title: "  ", DurationMin: 30})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected zero requests, got %d", calls.Load())
	}
	if uc.Snapshot(context.Background()).Generation != 0 {
		t.Fatalf("cache must stay untouched")
	}
}

func TestCreateNoteWritesThenRefreshes(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	uc := newInteractor(t, &calls, backend)

	note, err := uc.CreateNote(context.Background(), dto.CreateNoteInput{Title: "Cells", Content: "c", Subject: "bio"})
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.ID != "n1" {
		t.Fatalf("unexpected note: %+v", note)
	}
	// one write plus five collection reads
	if calls.Load() != 6 {
		t.Fatalf("expected 6 requests, got %d", calls.Load())
	}
	snap := uc.Snapshot(context.Background())
	if len(snap.PendingTasks) != 1 || len(snap.CompletedTasks) != 1 || snap.Progress.XP != 120 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestRefreshFailureAfterWriteIsReported(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	uc := newInteractor(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/progress" {
			http.Error(w, `{"detail":"db offline"}`, http.StatusInternalServerError)
			return
		}
		backend(w, r)
	})

	_, err := uc.CreateNote(context.Background(), dto.CreateNoteInput{Title: "Cells", Content: "c"})
	var httpErr *remote.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Detail != "db offline" {
		t.Fatalf("expected wrapped http error, got %v", err)
	}
	if uc.Snapshot(context.Background()).Generation != 0 {
		t.Fatalf("failed refresh must not commit")
	}
}

func TestExportUnknownNoteIsNotFound(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	uc := newInteractor(t, &calls, backend)

	_, err := uc.ExportNote(context.Background(), dto.ExportNoteInput{ID: "zzz", Format: "pdf"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
