package out

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"studydesk/internal/modules/catalog/domain"
	"studydesk/internal/platform/remote"
)

func newStore(t *testing.T, handler http.HandlerFunc) *HTTPStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := remote.New(remote.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewHTTPStore(client)
}

func TestListNotesDecodesBackendTimestamps(t *testing.T) {
	t.Parallel()
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":"n1","title":"Cells","content":"c","subject":"bio","ai_summary":null,
			"created_at":"2026-03-01T09:00:00.123456","updated_at":"2026-03-01T09:00:00+00:00"}]`)
	})

	notes, err := store.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Cells" || notes[0].AISummary != "" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
	if notes[0].CreatedAt.Year() != 2026 || notes[0].UpdatedAt.IsZero() {
		t.Fatalf("timestamps not parsed: %+v", notes[0])
	}
}

func TestCreateTaskSendsDurationField(t *testing.T) {
	t.Parallel()
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if r.Method != http.MethodPost || body["duration"] != float64(45) || body["date"] != "2026-03-02" {
			t.Errorf("unexpected request %s %v", r.Method, body)
		}
		_, _ = io.WriteString(w, `{"id":"t1","title":"Read","description":"","date":"2026-03-02","duration":45,"completed":false}`)
	})

	task, err := store.CreateTask(context.Background(), domain.TaskDraft{Title: "Read", Date: "2026-03-02", DurationMin: 45})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID != "t1" || task.DurationMin != 45 {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestGenerateFlashcardsAcceptsArrayOrFencedString(t *testing.T) {
	t.Parallel()
	replies := []string{
		`{"flashcards":[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]}`,
		`{"flashcards":"` + "```json\\n[{\\\"question\\\":\\\"Q1\\\",\\\"answer\\\":\\\"A1\\\"},{\\\"question\\\":\\\"Q2\\\",\\\"answer\\\":\\\"A2\\\"}]\\n```" + `"}`,
	}
	for _, reply := range replies {
		store := newStore(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, reply)
		})
		drafts, err := store.GenerateFlashcards(context.Background(), "n1", 2)
		if err != nil {
			t.Fatalf("generate %s: %v", reply, err)
		}
		if len(drafts) != 2 || drafts[1].Question != "Q2" || drafts[0].NoteID != "n1" {
			t.Fatalf("unexpected drafts for %s: %+v", reply, drafts)
		}
	}
}

func TestReviewFlashcardSendsCorrectQuery(t *testing.T) {
	t.Parallel()
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/flashcards/c1/review" || r.URL.Query().Get("correct") != "false" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
		_, _ = io.WriteString(w, `{"message":"Flashcard reviewed","next_review":"2026-03-02T09:00:00+00:00"}`)
	})

	next, err := store.ReviewFlashcard(context.Background(), "c1", false)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if next.Day() != 2 {
		t.Fatalf("unexpected next review %v", next)
	}
}

func TestParseDraftsSkipsBlankQuestions(t *testing.T) {
	t.Parallel()
	drafts, err := parseDrafts(json.RawMessage(`[{"question":" ","answer":"x"},{"question":"Q","answer":"A"}]`), "n1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
}
