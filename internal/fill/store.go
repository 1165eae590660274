package fill

import (
	"errors"
	"fmt"

	"vibeform/internal/model"
)

var (
	ErrUnknownQuestion = errors.New("question is not part of this form")
	ErrAnswerShape     = errors.New("answer does not match the question type")
	ErrInvalidOption   = errors.New("answer is not one of the question options")
)

// Store maps question ids to the respondent's current answers. A missing key
// is the only representation of "unanswered".
type Store map[string]model.Answer

func NewStore() Store {
	return make(Store)
}

// Set replaces the answer for questionID. A blank answer removes it.
func (s *Store) Set(questionID string, a model.Answer) {
	if *s == nil {
		*s = make(Store)
	}
	if a.IsBlank() {
		delete(*s, questionID)
		return
	}
	(*s)[questionID] = a
}

// ToggleEmoji adds emoji to the set for questionID, or removes it if already
// selected. An emptied set removes the key.
func (s *Store) ToggleEmoji(questionID, emoji string) {
	current, _ := s.Get(questionID)
	next := make([]string, 0, len(current.Choices)+1)
	found := false
	for _, c := range current.Choices {
		if c == emoji {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		next = append(next, emoji)
	}
	s.Set(questionID, model.ChoicesAnswer(next...))
}

func (s Store) Get(questionID string) (model.Answer, bool) {
	a, ok := s[questionID]
	return a, ok
}

func (s Store) Has(questionID string) bool {
	_, ok := s[questionID]
	return ok
}

func (s Store) AnsweredCount() int {
	return len(s)
}

// CheckAnswer verifies that a has the shape q expects and only uses q's
// options. Blank answers always pass; Validate decides whether they may be blank.
func CheckAnswer(q model.Question, a model.Answer) error {
	if a.IsBlank() {
		return nil
	}
	if q.Type.MultiSelect() != a.IsMulti() {
		return fmt.Errorf("%w: %s", ErrAnswerShape, q.Type)
	}
	switch q.Type {
	case model.QuestionTypeMultiple:
		if !q.HasOption(a.Text) {
			return fmt.Errorf("%w: %q", ErrInvalidOption, a.Text)
		}
	case model.QuestionTypeEmoji:
		seen := make(map[string]bool, len(a.Choices))
		for _, c := range a.Choices {
			if !q.HasOption(c) {
				return fmt.Errorf("%w: %q", ErrInvalidOption, c)
			}
			if seen[c] {
				return fmt.Errorf("%w: %q selected twice", ErrAnswerShape, c)
			}
			seen[c] = true
		}
	}
	return nil
}
