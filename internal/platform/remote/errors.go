package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "studydesk/internal/platform/errors"
)

// HTTPError is a non-2xx reply from the study service.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	msg := strings.TrimSpace(e.Detail)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		msg = "http error"
	}
	return fmt.Sprintf("%s %s: status=%d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is maps 404 replies onto apperrors.ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	return target == apperrors.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsStatus reports whether err is an HTTPError with the given status code.
func IsStatus(err error, status int) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.StatusCode == status
}

func parseHTTPError(method, path string, status int, raw []byte) error {
	body := strings.TrimSpace(string(raw))
	herr := &HTTPError{Method: method, Path: path, StatusCode: status, Body: body}

	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Detail) == 0 {
		return herr
	}
	var text string
	if err := json.Unmarshal(env.Detail, &text); err == nil {
		herr.Detail = strings.TrimSpace(text)
		return herr
	}
	herr.Detail = strings.TrimSpace(string(env.Detail))
	return herr
}
