package out

import (
	"context"

	"studydesk/internal/modules/review/domain"
)

type FlashcardSource interface {
	Flashcards(ctx context.Context, scope string) ([]domain.Card, error)
}

// Grader stores one review result remotely.
type Grader interface {
	Grade(ctx context.Context, cardID string, correct bool) error
}

type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}
