package dto

import "time"

type TurnOutput struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

type AnalyzeInput struct {
	Path  string
	Query string
}

type AnalysisOutput struct {
	Filename string `json:"filename"`
	Analysis string `json:"analysis"`
}

type QuizInput struct {
	Topic      string
	Difficulty string
	Count      int
}

type QuizOutput struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Quiz       string `json:"quiz"`
}

type SaveQuestionInput struct {
	Topic         string
	Question      string
	Options       []string
	CorrectAnswer int
	Difficulty    string
}

type QuestionOutput struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correct_answer"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
}
