package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Answer is the value recorded for one question. Emoji questions carry a set
// of options in Choices; every other type carries a single string in Text.
// On the wire (JSON and BSON) it is a bare string or a bare array.
// The zero Answer means "no answer".
type Answer struct {
	Text    string
	Choices []string
	multi   bool
}

// TextAnswer builds a single-string answer.
func TextAnswer(s string) Answer {
	return Answer{Text: s}
}

// ChoicesAnswer builds a set answer. A nil slice is kept as an empty set.
func ChoicesAnswer(choices ...string) Answer {
	if choices == nil {
		choices = []string{}
	}
	return Answer{Choices: choices, multi: true}
}

// EmptyAnswer is the zero value of the answer shape for t.
func EmptyAnswer(t QuestionType) Answer {
	if t.MultiSelect() {
		return ChoicesAnswer()
	}
	return TextAnswer("")
}

// IsMulti reports whether the answer is a set.
func (a Answer) IsMulti() bool {
	return a.multi || a.Choices != nil
}

// IsBlank reports whether the answer counts as absent: an empty set or a string
// that is empty after trimming.
func (a Answer) IsBlank() bool {
	if a.IsMulti() {
		return len(a.Choices) == 0
	}
	return strings.TrimSpace(a.Text) == ""
}

// Contains reports whether choice is part of a set answer.
func (a Answer) Contains(choice string) bool {
	for _, c := range a.Choices {
		if c == choice {
			return true
		}
	}
	return false
}

// String renders the answer for display; sets are joined with ", ".
func (a Answer) String() string {
	if a.IsMulti() {
		return strings.Join(a.Choices, ", ")
	}
	return a.Text
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsMulti() {
		choices := a.Choices
		if choices == nil {
			choices = []string{}
		}
		return json.Marshal(choices)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*a = Answer{}
		return nil
	case strings.HasPrefix(trimmed, "["):
		var choices []string
		if err := json.Unmarshal(data, &choices); err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		*a = ChoicesAnswer(choices...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("answer must be a string or an array of strings: %w", err)
		}
		*a = TextAnswer(s)
		return nil
	}
}

func (a Answer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if a.IsMulti() {
		choices := a.Choices
		if choices == nil {
			choices = []string{}
		}
		return bson.MarshalValue(choices)
	}
	return bson.MarshalValue(a.Text)
}

func (a *Answer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*a = TextAnswer(raw.StringValue())
	case bsontype.Array:
		var choices []string
		if err := raw.Unmarshal(&choices); err != nil {
			return err
		}
		*a = ChoicesAnswer(choices...)
	case bsontype.Null, bsontype.Undefined:
		*a = Answer{}
	default:
		return fmt.Errorf("answer: unsupported bson type %s", t)
	}
	return nil
}
