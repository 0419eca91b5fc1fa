package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"studydesk/internal/modules/chat/domain"
	chatout "studydesk/internal/modules/chat/port/out"
	"studydesk/internal/platform/clock"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/platform/id"
	"studydesk/internal/platform/logger"
)

const (
	DefaultAnalyzeQuery = "Summarize this document"
	DefaultQuizCount    = 5
	DefaultDifficulty   = "medium"
)

var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

type ChatService struct {
	tutor chatout.Tutor
	files chatout.FileSource
	idGen id.Generator
	clock clock.Clock
	log   *logger.Logger

	mu         sync.Mutex
	sessionID  string
	transcript *domain.Transcript
}

func NewChatService(tutor chatout.Tutor, files chatout.FileSource, idGen id.Generator, clock clock.Clock, log *logger.Logger) *ChatService {
	return &ChatService{
		tutor:      tutor,
		files:      files,
		idGen:      idGen,
		clock:      clock,
		log:        logger.OrNop(log).With("module", "chat"),
		sessionID:  idGen.New(),
		transcript: domain.NewTranscript(nil),
	}
}

func (s *ChatService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *ChatService) Transcript() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

// Send asks one question. The turn joins the transcript only after every
// earlier send has resolved; a failed send leaves the transcript unchanged.
func (s *ChatService) Send(ctx context.Context, message string) (domain.Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Turn{}, apperrors.ErrEmptyMessage
	}

	s.mu.Lock()
	tr := s.transcript
	sessionID := s.sessionID
	ticket := tr.Issue()
	s.mu.Unlock()

	response, err := s.tutor.Ask(ctx, sessionID, message)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		tr.Release(ticket)
		s.log.Warn("chat send failed", "session", sessionID, "error", err)
		return domain.Turn{}, fmt.Errorf("send message: %w", err)
	}
	turn := domain.Turn{Message: message, Response: response, CreatedAt: s.clock.Now()}
	tr.Complete(ticket, turn)
	return turn, nil
}

// Resume switches to an existing session and loads its history. Sends still
// in flight for the previous session land in the discarded transcript.
func (s *ChatService) Resume(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	history, err := s.tutor.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = sessionID
	s.transcript = domain.NewTranscript(history)
	s.log.Info("chat resumed", "session", sessionID, "turns", len(history))
	return s.transcript.Turns(), nil
}

// Reset starts a new session with an empty transcript.
func (s *ChatService) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = s.idGen.New()
	s.transcript = domain.NewTranscript(nil)
	return s.sessionID
}

func (s *ChatService) Analyze(ctx context.Context, path, query string) (domain.Analysis, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Analysis{}, fmt.Errorf("%w: file path is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(query) == "" {
		query = DefaultAnalyzeQuery
	}
	name, data, err := s.files.Open(ctx, path)
	if err != nil {
		return domain.Analysis{}, err
	}
	analysis, err := s.tutor.Analyze(ctx, name, bytes.NewReader(data), query)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("analyze %s: %w", name, err)
	}
	if analysis.Filename == "" {
		analysis.Filename = name
	}
	return analysis, nil
}

func (s *ChatService) Quiz(ctx context.Context, topic, difficulty string, count int) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	if !difficulties[difficulty] {
		return "", fmt.Errorf("%w: difficulty must be easy, medium or hard", apperrors.ErrInvalidInput)
	}
	if count == 0 {
		count = DefaultQuizCount
	}
	if count < 0 {
		return "", fmt.Errorf("%w: count must be positive", apperrors.ErrInvalidInput)
	}
	quiz, err := s.tutor.Quiz(ctx, topic, difficulty, count)
	if err != nil {
		return "", fmt.Errorf("generate quiz: %w", err)
	}
	return quiz, nil
}

// SaveQuestion stores a question in the quiz bank. The id and creation time
// are assigned here when missing.
func (s *ChatService) SaveQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	q.Topic = strings.TrimSpace(q.Topic)
	q.Text = strings.TrimSpace(q.Text)
	q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
	if q.Difficulty == "" {
		q.Difficulty = DefaultDifficulty
	}
	if !difficulties[q.Difficulty] {
		return domain.Question{}, fmt.Errorf("%w: difficulty must be easy, medium or hard", apperrors.ErrInvalidInput)
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	if q.ID == "" {
		q.ID = s.idGen.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.clock.Now().UTC()
	}
	saved, err := s.tutor.SaveQuestion(ctx, q)
	if err != nil {
		return domain.Question{}, fmt.Errorf("save question: %w", err)
	}
	s.log.Info("quiz question saved", "id", saved.ID, "topic", saved.Topic)
	return saved, nil
}

func (s *ChatService) Questions(ctx context.Context, topic string) ([]domain.Question, error) {
	all, err := s.tutor.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return all, nil
	}
	out := make([]domain.Question, 0, len(all))
	for _, q := range all {
		if strings.EqualFold(q.Topic, topic) {
			out = append(out, q)
		}
	}
	return out, nil
}
