package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"studydesk/internal/modules/chat/domain"
	"studydesk/internal/modules/chat/dto"
	chatin "studydesk/internal/modules/chat/port/in"
	"studydesk/internal/modules/chat/service"
	"studydesk/internal/modules/chat/usecase"
	apperrors "studydesk/internal/platform/errors"
)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

type fakeID struct{}

func (fakeID) New() string { return "chat-1" }

// gatedTutor blocks each Ask until the test releases that message.
type gatedTutor struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	fail    map[string]bool
	started chan string
	history []domain.Turn
	query   string
	upload  string
	saved   []domain.Question
	bank    []domain.Question
}

func newGatedTutor() *gatedTutor {
	return &gatedTutor{gates: map[string]chan struct{}{}, fail: map[string]bool{}, started: make(chan string, 8)}
}

func (g *gatedTutor) gate(msg string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[msg]
	if !ok {
		ch = make(chan struct{})
		g.gates[msg] = ch
	}
	return ch
}

func (g *gatedTutor) Ask(_ context.Context, sessionID, message string) (string, error) {
	g.started <- message
	<-g.gate(message)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail[message] {
		return "", errors.New("tutor unavailable")
	}
	return "answer to " + message + " in " + sessionID, nil
}

func (g *gatedTutor) History(context.Context, string) ([]domain.Turn, error) {
	return g.history, nil
}

func (g *gatedTutor) Analyze(_ context.Context, filename string, r io.Reader, query string) (domain.Analysis, error) {
	b, _ := io.ReadAll(r)
	g.query = query
	g.upload = string(b)
	return domain.Analysis{Text: "analysis of " + filename}, nil
}

func (g *gatedTutor) Quiz(_ context.Context, topic, difficulty string, count int) (string, error) {
	return topic + "/" + difficulty, nil
}

func (g *gatedTutor) SaveQuestion(_ context.Context, q domain.Question) (domain.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = append(g.saved, q)
	return q, nil
}

func (g *gatedTutor) Questions(context.Context) ([]domain.Question, error) {
	return g.bank, nil
}

type memFiles struct{}

func (memFiles) Open(_ context.Context, path string) (string, []byte, error) {
	return "notes.txt", []byte("content of " + path), nil
}

func newChat(tutor *gatedTutor) chatin.Usecase {
	return usecase.NewInteractor(service.NewChatService(tutor, memFiles{}, fakeID{}, fakeClock{}, nil))
}

func send(uc chatin.Usecase, msg string, errs chan<- error) {
	_, err := uc.Send(context.Background(), msg)
	errs <- err
}

func TestOutOfOrderRepliesAppendInIssueOrder(t *testing.T) {
	t.Parallel()
	tutor := newGatedTutor()
	uc := newChat(tutor)
	errs := make(chan error, 2)

	go send(uc, "What is mitosis?", errs)
	<-tutor.started
	go send(uc, "Explain photosynthesis", errs)
	<-tutor.started

	close(tutor.gate("Explain photosynthesis"))
	if err := <-errs; err != nil {
		t.Fatalf("second send: %v", err)
	}
	if n := len(uc.Transcript()); n != 0 {
		t.Fatalf("second reply must wait for the first, transcript has %d", n)
	}

	close(tutor.gate("What is mitosis?"))
	if err := <-errs; err != nil {
		t.Fatalf("first send: %v", err)
	}
	turns := uc.Transcript()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Message != "What is mitosis?" || turns[1].Message != "Explain photosynthesis" {
		t.Fatalf("turns out of issue order: %+v", turns)
	}
	if turns[0].Response != "answer to What is mitosis? in chat-1" {
		t.Fatalf("unexpected response %q", turns[0].Response)
	}
}

func TestTranscriptGrowsOnlyOnSuccess(t *testing.T) {
	t.Parallel()
	tutor := newGatedTutor()
	tutor.fail["bad"] = true
	close(tutor.gate("bad"))
	close(tutor.gate("good"))
	uc := newChat(tutor)

	if _, err := uc.Send(context.Background(), "   "); !errors.Is(err, apperrors.ErrEmptyMessage) {
		t.Fatalf("expected empty message, got %v", err)
	}
	if _, err := uc.Send(context.Background(), "bad"); err == nil {
		t.Fatalf("expected tutor failure")
	}
	if len(uc.Transcript()) != 0 {
		t.Fatalf("failed send must not append")
	}
	if _, err := uc.Send(context.Background(), "good"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(uc.Transcript()) != 1 {
		t.Fatalf("expected exactly one turn, got %d", len(uc.Transcript()))
	}
}

func TestResumeLoadsHistoryAndSwitchesSession(t *testing.T) {
	t.Parallel()
	tutor := newGatedTutor()
	tutor.history = []domain.Turn{{Message: "old q", Response: "old a"}}
	close(tutor.gate("next"))
	uc := newChat(tutor)

	turns, err := uc.Resume(context.Background(), "chat-old")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if len(turns) != 1 || uc.SessionID() != "chat-old" {
		t.Fatalf("unexpected resume state: %d turns, session %s", len(turns), uc.SessionID())
	}
	turn, err := uc.Send(context.Background(), "next")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if turn.Response != "answer to next in chat-old" || len(uc.Transcript()) != 2 {
		t.Fatalf("send should continue the resumed session: %+v", turn)
	}
	if _, err := uc.Resume(context.Background(), ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAnalyzeDefaultsQuery(t *testing.T) {
	t.Parallel()
	tutor := newGatedTutor()
	uc := newChat(tutor)

	if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	out, err := uc.Analyze(context.Background(), dto.AnalyzeInput{Path: "/tmp/notes.txt"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if tutor.query != service.DefaultAnalyzeQuery || out.Filename != "notes.txt" || tutor.upload != "content of /tmp/notes.txt" {
		t.Fatalf("unexpected analyze call: query=%q out=%+v", tutor.query, out)
	}
}

func TestQuizValidatesInput(t *testing.T) {
	t.Parallel()
	uc := newChat(newGatedTutor())
	if _, err := uc.Quiz(context.Background(), dto.QuizInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected missing topic error, got %v", err)
	}
	if _, err := uc.Quiz(context.Background(), dto.QuizInput{Topic: "cells", Difficulty: "extreme"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected bad difficulty error, got %v", err)
	}
	out, err := uc.Quiz(context.Background(), dto.QuizInput{Topic: "cells"})
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if out.Quiz != "cells/medium" || out.Difficulty != "medium" {
		t.Fatalf("unexpected quiz: %+v", out)
	}
}

func TestSaveQuestionValidatesBeforeSaving(t *testing.T) {
	t.Parallel()
	tutor := newGatedTutor()
	uc := newChat(tutor)

	for name, in := range map[string]dto.SaveQuestionInput{
		"no topic":       {Question: "Q", Options: []string{"a", "b"}},
		"one option":     {Topic: "bio", Question: "Q", Options: []string{"a"}},
		"answer range":   {Topic: "bio", Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: 2},
		"bad difficulty": {Topic: "bio", Question: "Q", Options: []string{"a", "b"}, Difficulty: "extreme"},
	} {
		if _, err := uc.SaveQuestion(context.Background(), in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
	}
	if len(tutor.saved) != 0 {
		t.Fatalf("invalid questions must not be sent, got %+v", tutor.saved)
	}

	out, err := uc.SaveQuestion(context.Background(), dto.SaveQuestionInput{
		Topic:         " bio ",
		Question:      "Powerhouse of the cell?",
		Options:       []string{"Nucleus", "Mitochondria"},
		CorrectAnswer: 1,
	})
	if err != nil {
		t.Fatalf("save question: %v", err)
	}
	if out.ID != "chat-1" || out.Topic != "bio" || out.Difficulty != "medium" || out.CreatedAt.IsZero() {
		t.Fatalf("unexpected saved question: %+v", out)
	}
}

func TestQuestionsFilterByTopic(t *testing.T) {
	t.Parallel()
	tutor := newGatedTutor()
	tutor.bank = []domain.Question{
		{ID: "q1", Topic: "Biology", Text: "A"},
		{ID: "q2", Topic: "history", Text: "B"},
	}
	uc := newChat(tutor)

	all, err := uc.Questions(context.Background(), "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected both questions, got %+v (%v)", all, err)
	}
	bio, err := uc.Questions(context.Background(), "biology")
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(bio) != 1 || bio[0].ID != "q1" || bio[0].Question != "A" {
		t.Fatalf("unexpected filtered questions: %+v", bio)
	}
}
