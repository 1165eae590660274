package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPoints(t *testing.T) {
	want := map[QuestionType]int{
		QuestionTypeShort:    5,
		QuestionTypeEmail:    5,
		QuestionTypePhone:    5,
		QuestionTypeNumber:   5,
		QuestionTypeDate:     8,
		QuestionTypeMultiple: 10,
		QuestionTypeEmoji:    12,
		"custom":             0,
	}
	for typ, points := range want {
		assert.Equal(t, points, typ.DefaultPoints(), string(typ))
	}
}

func TestValidateShape(t *testing.T) {
	assert.Nil(t, ValidateShape(Question{ID: "q", Type: QuestionTypeShort, Question: "Name?"}))

	cases := map[string]struct {
		q     Question
		field string
	}{
		"unknown type":  {Question{ID: "q", Type: "custom", Question: "?"}, "type"},
		"blank text":    {Question{ID: "q", Type: QuestionTypeShort, Question: "  "}, "question"},
		"no options":    {Question{ID: "q", Type: QuestionTypeMultiple, Question: "?"}, "options"},
		"no emoji opts": {Question{ID: "q", Type: QuestionTypeEmoji, Question: "?", Options: []string{}}, "options"},
	}
	for name, tc := range cases {
		se := ValidateShape(tc.q)
		require.NotNil(t, se, name)
		assert.Equal(t, tc.field, se.Field, name)
	}
}

func TestValidateQuestionsCollectsByIndex(t *testing.T) {
	err := ValidateQuestions([]Question{
		{ID: "a", Type: QuestionTypeShort, Question: "ok"},
		{ID: "b", Type: QuestionTypeEmoji, Question: "mood"},
		{ID: "a", Type: QuestionTypeShort, Question: "dup"},
	})

	var shapeErrs ShapeErrors
	require.True(t, errors.As(err, &shapeErrs))
	require.Len(t, shapeErrs, 2)
	assert.Equal(t, 1, shapeErrs[0].Index)
	assert.Equal(t, "options", shapeErrs[0].Field)
	assert.Equal(t, 2, shapeErrs[1].Index)
	assert.Equal(t, "id", shapeErrs[1].Field)
}
