package fill

import (
	"errors"
	"fmt"

	"vibeform/internal/model"
)

var ErrEmptyForm = errors.New("form has no questions")

// Session is one respondent's pass through a form. It owns its answers,
// score and stepper state; nothing is shared between sessions.
type Session struct {
	ID          string            `json:"id"`
	FormID      string            `json:"formId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []model.Question  `json:"questions"`
	Answers     Store             `json:"answers"`
	Score       Scorer            `json:"score"`
	Step        Step              `json:"step"`
	Errors      map[string]Reason `json:"errors"`
	ResponseID  string            `json:"responseId,omitempty"`
}

// NewSession starts a session at the first question of form.
func NewSession(id string, form *model.Form) (*Session, error) {
	if len(form.Questions) == 0 {
		return nil, ErrEmptyForm
	}
	questions := make([]model.Question, len(form.Questions))
	copy(questions, form.Questions)

	return &Session{
		ID:          id,
		FormID:      form.ID,
		Title:       form.Title,
		Description: form.Description,
		Questions:   questions,
		Answers:     NewStore(),
		Score:       Scorer{Awarded: make(map[string]int)},
		Step:        Step{Phase: model.FillAtQuestion},
		Errors:      make(map[string]Reason),
	}, nil
}

func (s *Session) question(id string) (model.Question, error) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, nil
		}
	}
	return model.Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
}

// record applies fn to the store and awards points on the transition from
// unanswered to answered.
func (s *Session) record(q model.Question, fn func()) {
	was := s.Answers.Has(q.ID)
	fn()
	if !was && s.Answers.Has(q.ID) {
		s.Score.AwardIfFirstAnswer(q.ID, q.Type.DefaultPoints())
	}
	delete(s.Errors, q.ID)
}

// SetAnswer replaces the answer to questionID. Blank answers clear it.
func (s *Session) SetAnswer(questionID string, a model.Answer) error {
	if err := s.open(); err != nil {
		return err
	}
	q, err := s.question(questionID)
	if err != nil {
		return err
	}
	if err := CheckAnswer(q, a); err != nil {
		return err
	}
	s.record(q, func() { s.Answers.Set(q.ID, a) })
	return nil
}

// ToggleEmoji flips emoji in the selection of an emoji question.
func (s *Session) ToggleEmoji(questionID, emoji string) error {
	if err := s.open(); err != nil {
		return err
	}
	q, err := s.question(questionID)
	if err != nil {
		return err
	}
	if !q.Type.MultiSelect() {
		return fmt.Errorf("%w: %s does not take a selection", ErrAnswerShape, q.Type)
	}
	if !q.HasOption(emoji) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, emoji)
	}
	s.record(q, func() { s.Answers.ToggleEmoji(q.ID, emoji) })
	return nil
}

// Progress is the percentage of questions answered.
func (s *Session) Progress() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return s.Answers.AnsweredCount() * 100 / len(s.Questions)
}

// Snapshot renders the session for the presentation layer.
func (s *Session) Snapshot() *model.FillSnapshot {
	snap := &model.FillSnapshot{
		SessionID:     s.ID,
		FormID:        s.FormID,
		Title:         s.Title,
		Description:   s.Description,
		Phase:         s.Step.Phase,
		Index:         s.Step.Index,
		Total:         len(s.Questions),
		Errors:        make(map[string]model.FillError, len(s.Errors)),
		VibePoints:    s.Score.Total,
		AnsweredCount: s.Answers.AnsweredCount(),
		Progress:      s.Progress(),
		ResponseID:    s.ResponseID,
	}
	for id, r := range s.Errors {
		snap.Errors[id] = model.FillError{Code: string(r), Message: r.Message()}
	}
	if s.Step.Phase == model.FillSubmitted {
		snap.Navigate = model.NavigateThankYou
		snap.Progress = 100
		return snap
	}
	if s.Step.Index >= 0 && s.Step.Index < len(s.Questions) {
		q := s.Questions[s.Step.Index]
		snap.Question = &q
		if a, ok := s.Answers.Get(q.ID); ok {
			snap.Answer = &a
		}
	}
	return snap
}
