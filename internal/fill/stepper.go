package fill

import (
	"errors"

	"vibeform/internal/model"
)

var (
	ErrSessionClosed     = errors.New("fill session already submitted")
	ErrSubmissionPending = errors.New("submission already in progress")
	ErrNotPending        = errors.New("no submission in progress")
)

// Step is the stepper state: AtQuestion(Index), Pending or Submitted.
type Step struct {
	Phase model.FillPhase `json:"phase"`
	Index int             `json:"index"`
}

// CommandKind tells the caller what to do after a transition.
type CommandKind string

const (
	CommandStay   CommandKind = "stay"   // remain on the current question
	CommandShow   CommandKind = "show"   // display question Index
	CommandSubmit CommandKind = "submit" // dispatch Payload, then Confirm or Abort
)

// Command is the result of a stepper transition.
type Command struct {
	Kind    CommandKind
	Index   int
	Payload *model.ResponsePayload
}

func (s *Session) open() error {
	if s.Errors == nil {
		s.Errors = make(map[string]Reason)
	}
	switch s.Step.Phase {
	case model.FillPending:
		return ErrSubmissionPending
	case model.FillSubmitted:
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) stay() Command {
	return Command{Kind: CommandStay, Index: s.Step.Index}
}

func (s *Session) show(i int) Command {
	s.Step.Index = i
	return Command{Kind: CommandShow, Index: i}
}

// Next validates the current question and advances. On the last question it
// validates the whole form and either jumps to the first rejected question or
// moves to Pending and returns the payload to submit.
func (s *Session) Next() (Command, error) {
	if err := s.open(); err != nil {
		return Command{}, err
	}

	i := s.Step.Index
	q := s.Questions[i]
	answer, _ := s.Answers.Get(q.ID)
	if r := Validate(q, answer); r != ReasonNone {
		s.Errors[q.ID] = r
		return s.stay(), nil
	}
	delete(s.Errors, q.ID)

	if i < len(s.Questions)-1 {
		return s.show(i + 1), nil
	}
	return s.finish(), nil
}

func (s *Session) finish() Command {
	reasons, first := ValidateAll(s.Questions, s.Answers)
	if first >= 0 {
		s.Errors = reasons
		return s.show(first)
	}

	s.Errors = make(map[string]Reason)
	payload := Assemble(s.Questions, s.Answers, s.Score.Settled(s.Answers))
	s.Step.Phase = model.FillPending
	return Command{Kind: CommandSubmit, Index: s.Step.Index, Payload: &payload}
}

// Back moves to the previous question without validating.
func (s *Session) Back() (Command, error) {
	if err := s.open(); err != nil {
		return Command{}, err
	}
	if s.Step.Index == 0 {
		return s.stay(), nil
	}
	return s.show(s.Step.Index - 1), nil
}

// FirstMissingRequired returns the lowest index of a required question with
// no answer, or -1.
func (s *Session) FirstMissingRequired() int {
	for i, q := range s.Questions {
		if q.Required && !s.Answers.Has(q.ID) {
			return i
		}
	}
	return -1
}

// JumpToFirstMissingRequired shows the first unanswered required question, if any.
func (s *Session) JumpToFirstMissingRequired() (Command, error) {
	if err := s.open(); err != nil {
		return Command{}, err
	}
	if i := s.FirstMissingRequired(); i >= 0 {
		return s.show(i), nil
	}
	return s.stay(), nil
}

// Confirm records a successful submission. Answers are dropped, only the
// settled point total is kept, and the session accepts no further events.
func (s *Session) Confirm(responseID string) error {
	if s.Step.Phase != model.FillPending {
		return ErrNotPending
	}
	s.Step.Phase = model.FillSubmitted
	s.ResponseID = responseID
	s.Score = Scorer{Total: s.Score.Settled(s.Answers)}
	s.Answers = NewStore()
	s.Errors = make(map[string]Reason)
	return nil
}

// Abort returns a pending session to its last question with answers and
// points intact so the respondent can retry.
func (s *Session) Abort() error {
	if s.Step.Phase != model.FillPending {
		return ErrNotPending
	}
	s.Step.Phase = model.FillAtQuestion
	return nil
}
