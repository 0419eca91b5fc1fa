package out

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"studydesk/internal/modules/chat/domain"
	chatout "studydesk/internal/modules/chat/port/out"
	"studydesk/internal/platform/remote"
)

type HTTPTutor struct {
	client *remote.Client
}

func NewHTTPTutor(client *remote.Client) chatout.Tutor {
	return &HTTPTutor{client: client}
}

func (t *HTTPTutor) Ask(ctx context.Context, sessionID, message string) (string, error) {
	body := map[string]string{"session_id": sessionID, "message": message}
	var reply struct {
		Response string `json:"response"`
	}
	if err := t.client.DoJSON(ctx, http.MethodPost, "/chat", nil, body, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}

func (t *HTTPTutor) History(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	var wire []struct {
		Message   string `json:"message"`
		Response  string `json:"response"`
		CreatedAt string `json:"created_at"`
	}
	if err := t.client.DoJSON(ctx, http.MethodGet, remote.Path("chat", "history", sessionID), nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Turn, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.Turn{Message: w.Message, Response: w.Response, CreatedAt: parseTime(w.CreatedAt)})
	}
	return out, nil
}

// parseTime accepts RFC 3339 and the zone-less form the backend stores.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

func (t *HTTPTutor) Analyze(ctx context.Context, filename string, r io.Reader, query string) (domain.Analysis, error) {
	var reply struct {
		Analysis string `json:"analysis"`
		Filename string `json:"filename"`
	}
	q := url.Values{"query": []string{query}}
	if err := t.client.Upload(ctx, "/files/analyze", q, "file", filename, r, &reply); err != nil {
		return domain.Analysis{}, err
	}
	return domain.Analysis{Filename: reply.Filename, Text: reply.Analysis}, nil
}

// Quiz returns the generated quiz as text. Structured replies are re-indented
// JSON.
func (t *HTTPTutor) Quiz(ctx context.Context, topic, difficulty string, count int) (string, error) {
	body := map[string]any{"topic": topic, "difficulty": difficulty, "count": count}
	var reply struct {
		Quiz json.RawMessage `json:"quiz"`
	}
	if err := t.client.DoJSON(ctx, http.MethodPost, "/quiz/generate", nil, body, &reply); err != nil {
		return "", err
	}
	raw := bytes.TrimSpace(reply.Quiz)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw), nil
	}
	return buf.String(), nil
}

type questionWire struct {
	ID            string   `json:"id"`
	Topic         string   `json:"topic"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Difficulty    string   `json:"difficulty"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

func (w questionWire) toDomain() domain.Question {
	return domain.Question{
		ID:            w.ID,
		Topic:         w.Topic,
		Text:          w.Question,
		Options:       w.Options,
		CorrectAnswer: w.CorrectAnswer,
		Difficulty:    w.Difficulty,
		CreatedAt:     parseTime(w.CreatedAt),
	}
}

func (t *HTTPTutor) SaveQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	body := questionWire{
		ID:            q.ID,
		Topic:         q.Topic,
		Question:      q.Text,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Difficulty:    q.Difficulty,
	}
	if !q.CreatedAt.IsZero() {
		body.CreatedAt = q.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	var reply questionWire
	if err := t.client.DoJSON(ctx, http.MethodPost, "/quiz/questions", nil, body, &reply); err != nil {
		return domain.Question{}, err
	}
	return reply.toDomain(), nil
}

func (t *HTTPTutor) Questions(ctx context.Context) ([]domain.Question, error) {
	var wire []questionWire
	if err := t.client.DoJSON(ctx, http.MethodGet, "/quiz/questions", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Question, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}
