package model

import "time"

// AnswerEntry pairs a question with its answer on the wire.
type AnswerEntry struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	Answer     Answer `json:"answer" bson:"answer"`
}

// ResponsePayload is what a finished fill session hands to the response store.
type ResponsePayload struct {
	Answers    []AnswerEntry `json:"answers"`
	VibePoints int           `json:"vibePoints"`
}

// Response is one completed fill of a form. Never mutated after creation.
type Response struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	FormID      string        `json:"formId" bson:"formId"`
	Answers     []AnswerEntry `json:"answers" bson:"answers"`
	VibePoints  int           `json:"vibePoints" bson:"vibePoints"`
	SubmittedAt time.Time     `json:"submittedAt" bson:"submittedAt"`
}
