package model

import "time"

// OptionCount is the tally of one option across responses.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// QuestionSummary aggregates the answers given to one question.
type QuestionSummary struct {
	QuestionID    string        `json:"questionId"`
	Question      string        `json:"question"`
	Type          QuestionType  `json:"type"`
	TypeLabel     string        `json:"typeLabel"`
	AnsweredCount int           `json:"answeredCount"`
	Options       []OptionCount `json:"options,omitempty"`
	RecentAnswers []string      `json:"recentAnswers,omitempty"`
}

// FormSummary is the dashboard aggregate of a form's responses.
type FormSummary struct {
	FormID         string            `json:"formId"`
	Title          string            `json:"title"`
	ResponseCount  int               `json:"responseCount"`
	AverageVibe    float64           `json:"averageVibePoints"`
	TotalVibe      int               `json:"totalVibePoints"`
	Questions      []QuestionSummary `json:"questions"`
	LastResponseAt *time.Time        `json:"lastResponseAt,omitempty"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}
