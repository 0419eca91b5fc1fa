package out

import (
	"context"

	catalogin "studydesk/internal/modules/catalog/port/in"
	"studydesk/internal/modules/review/domain"
	reviewout "studydesk/internal/modules/review/port/out"
)

// CatalogAdapter reads cards from, and refreshes, the shared catalog.
type CatalogAdapter struct {
	catalog catalogin.Usecase
}

func NewCatalogAdapter(catalog catalogin.Usecase) *CatalogAdapter {
	return &CatalogAdapter{catalog: catalog}
}

var (
	_ reviewout.FlashcardSource  = (*CatalogAdapter)(nil)
	_ reviewout.CatalogRefresher = (*CatalogAdapter)(nil)
)

func (a *CatalogAdapter) Flashcards(ctx context.Context, scope string) ([]domain.Card, error) {
	cards, err := a.catalog.Flashcards(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Card{ID: c.ID, Question: c.Question, Answer: c.Answer})
	}
	return out, nil
}

func (a *CatalogAdapter) Refresh(ctx context.Context) error {
	_, err := a.catalog.Refresh(ctx)
	return err
}
