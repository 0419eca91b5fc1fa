package out

import (
	"context"

	"studydesk/internal/modules/focus/domain"
)

type SessionRecorder interface {
	Record(ctx context.Context, session domain.Session) (domain.Session, error)
}

// CatalogRefresher reloads the shared entity cache after a session lands.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}
