package usecase

import (
	"context"
	"strings"

	"studydesk/internal/modules/chat/domain"
	"studydesk/internal/modules/chat/dto"
	chatin "studydesk/internal/modules/chat/port/in"
	"studydesk/internal/modules/chat/service"
)

type Interactor struct {
	svc *service.ChatService
}

func NewInteractor(svc *service.ChatService) chatin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SessionID() string {
	return i.svc.SessionID()
}

func (i *Interactor) Send(ctx context.Context, message string) (dto.TurnOutput, error) {
	turn, err := i.svc.Send(ctx, message)
	if err != nil {
		return dto.TurnOutput{}, err
	}
	return toTurnOutput(turn), nil
}

func (i *Interactor) Transcript() []dto.TurnOutput {
	return toTurnOutputs(i.svc.Transcript())
}

func (i *Interactor) Resume(ctx context.Context, sessionID string) ([]dto.TurnOutput, error) {
	turns, err := i.svc.Resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toTurnOutputs(turns), nil
}

func (i *Interactor) NewSession() string {
	return i.svc.Reset()
}

func (i *Interactor) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalysisOutput, error) {
	a, err := i.svc.Analyze(ctx, input.Path, input.Query)
	if err != nil {
		return dto.AnalysisOutput{}, err
	}
	return dto.AnalysisOutput{Filename: a.Filename, Analysis: a.Text}, nil
}

func (i *Interactor) Quiz(ctx context.Context, input dto.QuizInput) (dto.QuizOutput, error) {
	quiz, err := i.svc.Quiz(ctx, input.Topic, input.Difficulty, input.Count)
	if err != nil {
		return dto.QuizOutput{}, err
	}
	difficulty := strings.ToLower(strings.TrimSpace(input.Difficulty))
	if difficulty == "" {
		difficulty = service.DefaultDifficulty
	}
	return dto.QuizOutput{Topic: strings.TrimSpace(input.Topic), Difficulty: difficulty, Quiz: quiz}, nil
}

func (i *Interactor) SaveQuestion(ctx context.Context, input dto.SaveQuestionInput) (dto.QuestionOutput, error) {
	q, err := i.svc.SaveQuestion(ctx, domain.Question{
		Topic:         input.Topic,
		Text:          input.Question,
		Options:       input.Options,
		CorrectAnswer: input.CorrectAnswer,
		Difficulty:    input.Difficulty,
	})
	if err != nil {
		return dto.QuestionOutput{}, err
	}
	return toQuestionOutput(q), nil
}

func (i *Interactor) Questions(ctx context.Context, topic string) ([]dto.QuestionOutput, error) {
	qs, err := i.svc.Questions(ctx, topic)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuestionOutput, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionOutput(q))
	}
	return out, nil
}

func toQuestionOutput(q domain.Question) dto.QuestionOutput {
	return dto.QuestionOutput{
		ID:            q.ID,
		Topic:         q.Topic,
		Question:      q.Text,
		Options:       append([]string(nil), q.Options...),
		CorrectAnswer: q.CorrectAnswer,
		Difficulty:    q.Difficulty,
		CreatedAt:     q.CreatedAt,
	}
}

func toTurnOutput(t domain.Turn) dto.TurnOutput {
	return dto.TurnOutput{Message: t.Message, Response: t.Response, CreatedAt: t.CreatedAt}
}

func toTurnOutputs(turns []domain.Turn) []dto.TurnOutput {
	out := make([]dto.TurnOutput, 0, len(turns))
	for _, t := range turns {
		out = append(out, toTurnOutput(t))
	}
	return out
}
