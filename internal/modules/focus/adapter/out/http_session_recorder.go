package out

import (
	"context"
	"net/http"

	"studydesk/internal/modules/focus/domain"
	focusout "studydesk/internal/modules/focus/port/out"
	"studydesk/internal/platform/remote"
)

type HTTPSessionRecorder struct {
	client *remote.Client
}

func NewHTTPSessionRecorder(client *remote.Client) focusout.SessionRecorder {
	return &HTTPSessionRecorder{client: client}
}

func (r *HTTPSessionRecorder) Record(ctx context.Context, session domain.Session) (domain.Session, error) {
	body := map[string]any{
		"subject":     session.Subject,
		"duration":    session.DurationMin,
		"date":        session.Date,
		"focus_score": session.FocusScore,
	}
	var reply struct {
		ID         string `json:"id"`
		Subject    string `json:"subject"`
		Duration   int    `json:"duration"`
		Date       string `json:"date"`
		FocusScore int    `json:"focus_score"`
	}
	if err := r.client.DoJSON(ctx, http.MethodPost, "/sessions", nil, body, &reply); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{
		ID:          reply.ID,
		Subject:     reply.Subject,
		DurationMin: reply.Duration,
		Date:        reply.Date,
		FocusScore:  reply.FocusScore,
	}, nil
}
