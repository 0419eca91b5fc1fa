package out

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	reviewout "studydesk/internal/modules/review/port/out"
	"studydesk/internal/platform/remote"
)

// HTTPGrader writes review results without touching the catalog; the
// service refreshes once at the end of the walk.
type HTTPGrader struct {
	client *remote.Client
}

func NewHTTPGrader(client *remote.Client) reviewout.Grader {
	return &HTTPGrader{client: client}
}

func (g *HTTPGrader) Grade(ctx context.Context, cardID string, correct bool) error {
	query := url.Values{"correct": []string{strconv.FormatBool(correct)}}
	return g.client.DoJSON(ctx, http.MethodPatch, remote.Path("flashcards", cardID, "review"), query, nil, nil)
}
