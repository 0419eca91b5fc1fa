package in

import (
	"context"

	"studydesk/internal/modules/chat/dto"
	chatin "studydesk/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SessionID() string {
	return h.usecase.SessionID()
}

func (h CLIHandler) Send(ctx context.Context, message string) (dto.TurnOutput, error) {
	return h.usecase.Send(ctx, message)
}

func (h CLIHandler) Resume(ctx context.Context, sessionID string) ([]dto.TurnOutput, error) {
	return h.usecase.Resume(ctx, sessionID)
}

func (h CLIHandler) Transcript() []dto.TurnOutput {
	return h.usecase.Transcript()
}

func (h CLIHandler) Analyze(ctx context.Context, path, query string) (dto.AnalysisOutput, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{Path: path, Query: query})
}

func (h CLIHandler) Quiz(ctx context.Context, topic, difficulty string, count int) (dto.QuizOutput, error) {
	return h.usecase.Quiz(ctx, dto.QuizInput{Topic: topic, Difficulty: difficulty, Count: count})
}

func (h CLIHandler) SaveQuestion(ctx context.Context, input dto.SaveQuestionInput) (dto.QuestionOutput, error) {
	return h.usecase.SaveQuestion(ctx, input)
}

func (h CLIHandler) Questions(ctx context.Context, topic string) ([]dto.QuestionOutput, error) {
	return h.usecase.Questions(ctx, topic)
}

func (h CLIHandler) NewSession() string {
	return h.usecase.NewSession()
}
