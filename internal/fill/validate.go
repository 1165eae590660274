package fill

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"vibeform/internal/model"
)

// Reason is why an answer was rejected. The empty Reason means accepted.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonRequired        Reason = "REQUIRED"
	ReasonInvalidEmail    Reason = "INVALID_EMAIL"
	ReasonInvalidPhone    Reason = "INVALID_PHONE"
	ReasonInvalidNumber   Reason = "INVALID_NUMBER"
	ReasonInvalidDate     Reason = "INVALID_DATE"
	ReasonUnsupportedType Reason = "UNSUPPORTED_TYPE"
)

// Message is the text shown next to the offending question.
func (r Reason) Message() string {
	switch r {
	case ReasonRequired:
		return "This question is required"
	case ReasonInvalidEmail:
		return "Please enter a valid email address"
	case ReasonInvalidPhone:
		return "Please enter a valid phone number"
	case ReasonInvalidNumber:
		return "Please enter a valid number"
	case ReasonInvalidDate:
		return "Please select a date"
	case ReasonUnsupportedType:
		return "This question cannot be answered"
	}
	return ""
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate decides whether a is an acceptable answer to q. The zero Answer is "absent".
func Validate(q model.Question, a model.Answer) Reason {
	if !q.Type.Valid() {
		return ReasonUnsupportedType
	}
	if a.IsBlank() {
		if q.Required {
			return ReasonRequired
		}
		return ReasonNone
	}

	switch q.Type {
	case model.QuestionTypeEmail:
		if !emailPattern.MatchString(a.Text) {
			return ReasonInvalidEmail
		}
	case model.QuestionTypePhone:
		if !validPhone(a.Text) {
			return ReasonInvalidPhone
		}
	case model.QuestionTypeNumber:
		if !validNumber(a.Text) {
			return ReasonInvalidNumber
		}
	case model.QuestionTypeDate:
		// format is left to the date picker
		if strings.TrimSpace(a.Text) == "" {
			return ReasonInvalidDate
		}
	}
	return ReasonNone
}

// validPhone accepts 10 digits, or 11 digits with a leading 1, once
// everything but digits is stripped.
func validPhone(s string) bool {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	return len(d) == 10 || (len(d) == 11 && d[0] == '1')
}

// validNumber accepts finite decimal literals only; hex floats and
// underscores, which ParseFloat also takes, are rejected.
func validNumber(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateAll runs Validate over every question in order. It returns the
// reasons keyed by question id and the index of the first rejected question,
// or -1 when everything is accepted.
func ValidateAll(questions []model.Question, answers Store) (map[string]Reason, int) {
	reasons := make(map[string]Reason)
	first := -1
	for i, q := range questions {
		answer, _ := answers.Get(q.ID)
		if r := Validate(q, answer); r != ReasonNone {
			reasons[q.ID] = r
			if first < 0 {
				first = i
			}
		}
	}
	return reasons, first
}
