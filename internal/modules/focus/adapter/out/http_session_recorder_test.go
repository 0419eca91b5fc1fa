package out

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"studydesk/internal/modules/focus/domain"
	"studydesk/internal/platform/remote"
)

func TestRecordPostsSessionPayload(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["subject"] != "Biology" || body["duration"] != float64(25) || body["focus_score"] != float64(85) {
			t.Errorf("unexpected body %v", body)
		}
		_, _ = io.WriteString(w, `{"id":"s1","subject":"Biology","duration":25,"date":"2026-03-01","focus_score":85}`)
	}))
	t.Cleanup(srv.Close)
	client, err := remote.New(remote.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := NewHTTPSessionRecorder(client).Record(context.Background(), domain.Session{
		Subject: "Biology", DurationMin: 25, Date: "2026-03-01", FocusScore: domain.FocusScore,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got.ID != "s1" {
		t.Fatalf("expected server id, got %+v", got)
	}
}
