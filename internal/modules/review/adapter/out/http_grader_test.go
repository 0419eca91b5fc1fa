package out

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/platform/remote"
)

func TestGradeSendsCorrectnessAsQuery(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/flashcards/c1/review":
			if r.Method != http.MethodPatch || r.URL.Query().Get("correct") != "false" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.String())
			}
			_, _ = io.WriteString(w, `{"message":"ok","next_review":"2026-03-02T09:00:00"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Flashcard not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	client, err := remote.New(remote.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	grader := NewHTTPGrader(client)

	if err := grader.Grade(context.Background(), "c1", false); err != nil {
		t.Fatalf("grade: %v", err)
	}
	if err := grader.Grade(context.Background(), "gone", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
