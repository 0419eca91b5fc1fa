package out

import (
	"context"
	"io"

	"studydesk/internal/modules/chat/domain"
)

type Tutor interface {
	Ask(ctx context.Context, sessionID, message string) (string, error)
	History(ctx context.Context, sessionID string) ([]domain.Turn, error)
	Analyze(ctx context.Context, filename string, r io.Reader, query string) (domain.Analysis, error)
	Quiz(ctx context.Context, topic, difficulty string, count int) (string, error)
	SaveQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	Questions(ctx context.Context) ([]domain.Question, error)
}

// FileSource opens local documents for analysis.
type FileSource interface {
	Open(ctx context.Context, path string) (name string, data []byte, err error)
}
