package model

// FillPhase is the coarse state of a fill session
type FillPhase string

const (
	FillAtQuestion FillPhase = "at_question"
	FillPending    FillPhase = "pending" // submission dispatched, awaiting the store
	FillSubmitted  FillPhase = "submitted"
)

// Navigation tells the presentation layer where to go after an event.
type Navigation string

const (
	NavigateNone     Navigation = ""
	NavigateThankYou Navigation = "thank-you"
)

// FillError is a rejection shown next to a question
type FillError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FillSnapshot is the client-facing view of a fill session after each event
type FillSnapshot struct {
	SessionID     string               `json:"sessionId"`
	FormID        string               `json:"formId"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Phase         FillPhase            `json:"phase"`
	Index         int                  `json:"index"`
	Total         int                  `json:"total"`
	Question      *Question            `json:"question,omitempty"`
	Answer        *Answer              `json:"answer,omitempty"`
	Errors        map[string]FillError `json:"errors"`
	VibePoints    int                  `json:"vibePoints"`
	AnsweredCount int                  `json:"answeredCount"`
	Progress      int                  `json:"progress"` // percent of questions answered
	Navigate      Navigation           `json:"navigate,omitempty"`
	ResponseID    string               `json:"responseId,omitempty"`
}
