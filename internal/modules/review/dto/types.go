package dto

type CardView struct {
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Phase    string `json:"phase"`
	CardID   string `json:"card_id,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Correct  int    `json:"correct"`
	Wrong    int    `json:"wrong"`
}

type SummaryOutput struct {
	Total        int    `json:"total"`
	Correct      int    `json:"correct"`
	Wrong        int    `json:"wrong"`
	WriteError   string `json:"write_error,omitempty"`
	RefreshError string `json:"refresh_error,omitempty"`
}
