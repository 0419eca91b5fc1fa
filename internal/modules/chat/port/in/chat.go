package in

import (
	"context"

	"studydesk/internal/modules/chat/dto"
)

type Usecase interface {
	SessionID() string
	Send(ctx context.Context, message string) (dto.TurnOutput, error)
	Transcript() []dto.TurnOutput
	Resume(ctx context.Context, sessionID string) ([]dto.TurnOutput, error)
	NewSession() string
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalysisOutput, error)
	Quiz(ctx context.Context, input dto.QuizInput) (dto.QuizOutput, error)
	SaveQuestion(ctx context.Context, input dto.SaveQuestionInput) (dto.QuestionOutput, error)
	// Questions lists saved questions, filtered by topic when one is given.
	Questions(ctx context.Context, topic string) ([]dto.QuestionOutput, error)
}
