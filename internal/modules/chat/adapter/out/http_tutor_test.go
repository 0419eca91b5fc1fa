package out

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studydesk/internal/modules/chat/domain"
	"studydesk/internal/platform/remote"
)

func newTutor(t *testing.T, handler http.HandlerFunc) *HTTPTutor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := remote.New(remote.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return &HTTPTutor{client: client}
}

func TestHistoryParsesTurns(t *testing.T) {
	t.Parallel()
	tutor := newTutor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/history/s1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":"m1","session_id":"s1","message":"q","response":"a","created_at":"2026-03-01T09:00:00.5"}]`)
	})
	turns, err := tutor.History(context.Background(), "s1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(turns) != 1 || turns[0].Response != "a" || turns[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestAnalyzeUploadsMultipartFile(t *testing.T) {
	t.Parallel()
	tutor := newTutor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "Summarize this document" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		b, _ := io.ReadAll(f)
		if hdr.Filename != "notes.txt" || string(b) != "cells" {
			t.Errorf("unexpected upload %s %q", hdr.Filename, b)
		}
		_, _ = io.WriteString(w, `{"analysis":"short","filename":"notes.txt"}`)
	})
	a, err := tutor.Analyze(context.Background(), "notes.txt", strings.NewReader("cells"), "Summarize this document")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Text != "short" || a.Filename != "notes.txt" {
		t.Fatalf("unexpected analysis: %+v", a)
	}
}

func TestQuizAcceptsStringOrStructuredReply(t *testing.T) {
	t.Parallel()
	for reply, want := range map[string]string{
		`{"quiz":"1. What is ATP?"}`:  "1. What is ATP?",
		`{"quiz":[{"question":"Q"}]}`: "[\n  {\n    \"question\": \"Q\"\n  }\n]",
	} {
		tutor := newTutor(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, reply)
		})
		got, err := tutor.Quiz(context.Background(), "cells", "easy", 1)
		if err != nil {
			t.Fatalf("quiz: %v", err)
		}
		if got != want {
			t.Fatalf("quiz text = %q, want %q", got, want)
		}
	}
}

func TestQuestionBankRoundTrip(t *testing.T) {
	t.Parallel()
	tutor := newTutor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quiz/questions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"correct_answer":1`) || !strings.Contains(string(body), `"question":"Q"`) {
				t.Errorf("unexpected body %s", body)
			}
			_, _ = w.Write(body)
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":"q1","topic":"bio","question":"Q","options":["a","b"],"correct_answer":1,"difficulty":"easy","created_at":"2026-03-01T09:00:00"}]`)
		}
	})

	saved, err := tutor.SaveQuestion(context.Background(), domain.Question{
		ID:            "q1",
		Topic:         "bio",
		Text:          "Q",
		Options:       []string{"a", "b"},
		CorrectAnswer: 1,
		Difficulty:    "easy",
		CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("save question: %v", err)
	}
	if saved.ID != "q1" || saved.CreatedAt.IsZero() {
		t.Fatalf("unexpected saved question: %+v", saved)
	}

	qs, err := tutor.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 1 || qs[0].Text != "Q" || qs[0].CorrectAnswer != 1 || len(qs[0].Options) != 2 {
		t.Fatalf("unexpected questions: %+v", qs)
	}
}
