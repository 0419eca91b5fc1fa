package out

import (
	"context"

	catalogin "studydesk/internal/modules/catalog/port/in"
	focusout "studydesk/internal/modules/focus/port/out"
)

type CatalogRefresher struct {
	catalog catalogin.Usecase
}

func NewCatalogRefresher(catalog catalogin.Usecase) focusout.CatalogRefresher {
	return &CatalogRefresher{catalog: catalog}
}

func (a *CatalogRefresher) Refresh(ctx context.Context) error {
	_, err := a.catalog.Refresh(ctx)
	return err
}
