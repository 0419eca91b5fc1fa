package dto

import "time"

type SessionOutput struct {
	ID          string `json:"id,omitempty"`
	Subject     string `json:"subject"`
	DurationMin int    `json:"duration"`
	Date        string `json:"date"`
	FocusScore  int    `json:"focus_score"`
}

type CompletionOutput struct {
	Session      SessionOutput `json:"session"`
	Error        string        `json:"error,omitempty"`
	RefreshError string        `json:"refresh_error,omitempty"`
	FinishedAt   time.Time     `json:"finished_at"`
}

type StatusOutput struct {
	State          string            `json:"state"`
	Subject        string            `json:"subject,omitempty"`
	Remaining      int               `json:"remaining"`
	DurationSecs   int               `json:"duration_secs"`
	LastCompletion *CompletionOutput `json:"last_completion,omitempty"`
}
