package model

import (
	"fmt"
	"strings"
)

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeShort    QuestionType = "short"
	QuestionTypeEmail    QuestionType = "email"
	QuestionTypePhone    QuestionType = "phone"
	QuestionTypeNumber   QuestionType = "number"
	QuestionTypeDate     QuestionType = "date"
	QuestionTypeMultiple QuestionType = "multiple" // single choice among Options
	QuestionTypeEmoji    QuestionType = "emoji"    // any subset of Options
)

// QuestionTypes lists every valid type in authoring order.
var QuestionTypes = []QuestionType{
	QuestionTypeShort,
	QuestionTypeEmail,
	QuestionTypePhone,
	QuestionTypeDate,
	QuestionTypeNumber,
	QuestionTypeMultiple,
	QuestionTypeEmoji,
}

// Valid reports whether t belongs to the closed set of question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeShort, QuestionTypeEmail, QuestionTypePhone, QuestionTypeNumber,
		QuestionTypeDate, QuestionTypeMultiple, QuestionTypeEmoji:
		return true
	}
	return false
}

// HasOptions reports whether the type draws its answers from Question.Options.
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeMultiple || t == QuestionTypeEmoji
}

// MultiSelect reports whether an answer to t is a set of options rather than one string.
func (t QuestionType) MultiSelect() bool {
	return t == QuestionTypeEmoji
}

// DefaultPoints is the vibe point value awarded the first time a question of this type is answered.
func (t QuestionType) DefaultPoints() int {
	switch t {
	case QuestionTypeShort, QuestionTypeEmail, QuestionTypePhone, QuestionTypeNumber:
		return 5
	case QuestionTypeDate:
		return 8
	case QuestionTypeMultiple:
		return 10
	case QuestionTypeEmoji:
		return 12
	}
	return 0
}

// Label is the name shown on the dashboard.
func (t QuestionType) Label() string {
	switch t {
	case QuestionTypeMultiple:
		return "Multiple Choice"
	case QuestionTypeEmoji:
		return "Emoji Rating"
	}
	return string(t)
}

// Question is an author-time question definition, immutable once the form is published.
type Question struct {
	ID       string       `json:"id" bson:"id"`
	Type     QuestionType `json:"type" bson:"type"`
	Question string       `json:"question" bson:"question"`
	Options  []string     `json:"options" bson:"options"`
	Required bool         `json:"required" bson:"required"`
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// ShapeError describes a malformed question definition.
type ShapeError struct {
	Index      int    `json:"index"`
	QuestionID string `json:"questionId,omitempty"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("question %d: %s: %s", e.Index+1, e.Field, e.Message)
}

// ShapeErrors collects every malformed question of a form.
type ShapeErrors []*ShapeError

func (e ShapeErrors) Error() string {
	msgs := make([]string, len(e))
	for i, se := range e {
		msgs[i] = se.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateShape checks a question definition at authoring time. The returned
// error's Index is zero; callers validating a list set it.
func ValidateShape(q Question) *ShapeError {
	if !q.Type.Valid() {
		return &ShapeError{QuestionID: q.ID, Field: "type", Message: fmt.Sprintf("unknown question type %q", q.Type)}
	}
	if strings.TrimSpace(q.Question) == "" {
		return &ShapeError{QuestionID: q.ID, Field: "question", Message: "question text is required"}
	}
	if q.Type.HasOptions() && len(q.Options) == 0 {
		return &ShapeError{QuestionID: q.ID, Field: "options", Message: "at least one option is required"}
	}
	return nil
}

// ValidateQuestions runs ValidateShape over a list and reports every failure by index.
func ValidateQuestions(questions []Question) error {
	var errs ShapeErrors
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if se := ValidateShape(q); se != nil {
			se.Index = i
			errs = append(errs, se)
			continue
		}
		if q.ID == "" {
			errs = append(errs, &ShapeError{Index: i, Field: "id", Message: "question id is required"})
			continue
		}
		if seen[q.ID] {
			errs = append(errs, &ShapeError{Index: i, QuestionID: q.ID, Field: "id", Message: "duplicate question id"})
			continue
		}
		seen[q.ID] = true
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
