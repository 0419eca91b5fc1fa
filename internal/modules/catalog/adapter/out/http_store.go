package out

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studydesk/internal/modules/catalog/domain"
	catalogout "studydesk/internal/modules/catalog/port/out"
	"studydesk/internal/platform/remote"
)

// HTTPStore talks to the study service's REST API.
type HTTPStore struct {
	client *remote.Client
}

func NewHTTPStore(client *remote.Client) *HTTPStore {
	return &HTTPStore{client: client}
}

var (
	_ catalogout.RemoteReader = (*HTTPStore)(nil)
	_ catalogout.RemoteWriter = (*HTTPStore)(nil)
)

func (s *HTTPStore) ListNotes(ctx context.Context) ([]domain.Note, error) {
	var wire []noteWire
	if err := s.client.DoJSON(ctx, http.MethodGet, "/notes", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Note, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (s *HTTPStore) ListFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	return s.listFlashcards(ctx, "/flashcards")
}

func (s *HTTPStore) ListDueFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	return s.listFlashcards(ctx, "/flashcards/due")
}

func (s *HTTPStore) listFlashcards(ctx context.Context, path string) ([]domain.Flashcard, error) {
	var wire []flashcardWire
	if err := s.client.DoJSON(ctx, http.MethodGet, path, nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Flashcard, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (s *HTTPStore) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var wire []taskWire
	if err := s.client.DoJSON(ctx, http.MethodGet, "/tasks", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (s *HTTPStore) ListSessions(ctx context.Context) ([]domain.StudySession, error) {
	var wire []sessionWire
	if err := s.client.DoJSON(ctx, http.MethodGet, "/sessions", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.StudySession, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (s *HTTPStore) GetProgress(ctx context.Context) (domain.Progress, error) {
	var wire progressWire
	if err := s.client.DoJSON(ctx, http.MethodGet, "/progress", nil, nil, &wire); err != nil {
		return domain.Progress{}, err
	}
	return wire.toDomain(), nil
}

func (s *HTTPStore) CreateNote(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	body := map[string]string{"title": draft.Title, "content": draft.Content, "subject": draft.Subject}
	var wire noteWire
	if err := s.client.DoJSON(ctx, http.MethodPost, "/notes", nil, body, &wire); err != nil {
		return domain.Note{}, err
	}
	return wire.toDomain(), nil
}

func (s *HTTPStore) DeleteNote(ctx context.Context, id string) error {
	return s.client.DoJSON(ctx, http.MethodDelete, remote.Path("notes", id), nil, nil, nil)
}

func (s *HTTPStore) SummarizeNote(ctx context.Context, id string) (string, error) {
	var reply struct {
		Summary string `json:"summary"`
	}
	if err := s.client.DoJSON(ctx, http.MethodPost, remote.Path("notes", id, "summarize"), nil, nil, &reply); err != nil {
		return "", err
	}
	return reply.Summary, nil
}

func (s *HTTPStore) ExportNote(ctx context.Context, id string) ([]byte, string, error) {
	return s.client.Download(ctx, remote.Path("notes", id, "export"))
}

func (s *HTTPStore) GenerateFlashcards(ctx context.Context, noteID string, count int) ([]domain.FlashcardDraft, error) {
	body := map[string]any{"note_id": noteID, "count": count}
	var reply struct {
		Flashcards json.RawMessage `json:"flashcards"`
	}
	if err := s.client.DoJSON(ctx, http.MethodPost, "/flashcards/generate", nil, body, &reply); err != nil {
		return nil, err
	}
	return parseDrafts(reply.Flashcards, noteID)
}

func (s *HTTPStore) CreateFlashcard(ctx context.Context, draft domain.FlashcardDraft) (domain.Flashcard, error) {
	body := map[string]any{
		"note_id":    draft.NoteID,
		"question":   draft.Question,
		"answer":     draft.Answer,
		"difficulty": domain.MinDifficulty,
	}
	var wire flashcardWire
	if err := s.client.DoJSON(ctx, http.MethodPost, "/flashcards", nil, body, &wire); err != nil {
		return domain.Flashcard{}, err
	}
	return wire.toDomain(), nil
}

func (s *HTTPStore) ReviewFlashcard(ctx context.Context, id string, correct bool) (time.Time, error) {
	query := url.Values{"correct": []string{strconv.FormatBool(correct)}}
	var reply struct {
		NextReview wireTime `json:"next_review"`
	}
	if err := s.client.DoJSON(ctx, http.MethodPatch, remote.Path("flashcards", id, "review"), query, nil, &reply); err != nil {
		return time.Time{}, err
	}
	return reply.NextReview.Time, nil
}

func (s *HTTPStore) CreateTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	body := map[string]any{
		"title":       draft.Title,
		"description": draft.Description,
		"date":        draft.Date,
		"duration":    draft.DurationMin,
	}
	var wire taskWire
	if err := s.client.DoJSON(ctx, http.MethodPost, "/tasks", nil, body, &wire); err != nil {
		return domain.Task{}, err
	}
	return wire.toDomain(), nil
}

func (s *HTTPStore) CompleteTask(ctx context.Context, id string) error {
	return s.client.DoJSON(ctx, http.MethodPatch, remote.Path("tasks", id, "complete"), nil, nil, nil)
}

func (s *HTTPStore) DeleteTask(ctx context.Context, id string) error {
	return s.client.DoJSON(ctx, http.MethodDelete, remote.Path("tasks", id), nil, nil, nil)
}
