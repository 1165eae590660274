package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAnswerJSONShapes(t *testing.T) {
	var entries []AnswerEntry
	require.NoError(t, json.Unmarshal([]byte(`[
		{"questionId":"q1","answer":"hi"},
		{"questionId":"q2","answer":["😀","😢"]},
		{"questionId":"q3","answer":[]}
	]`), &entries))

	require.Len(t, entries, 3)
	assert.False(t, entries[0].Answer.IsMulti())
	assert.Equal(t, "hi", entries[0].Answer.Text)
	assert.Equal(t, []string{"😀", "😢"}, entries[1].Answer.Choices)
	assert.True(t, entries[2].Answer.IsMulti())
	assert.True(t, entries[2].Answer.IsBlank())

	out, err := json.Marshal(entries[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"questionId":"q3","answer":[]}`, string(out))
}

func TestAnswerRejectsObjects(t *testing.T) {
	var a Answer
	assert.Error(t, json.Unmarshal([]byte(`{"text":"hi"}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
}

func TestAnswerBSONIsMixed(t *testing.T) {
	resp := Response{FormID: "f", Answers: []AnswerEntry{
		{QuestionID: "q1", Answer: TextAnswer("hi")},
		{QuestionID: "q2", Answer: ChoicesAnswer("😀")},
	}}

	data, err := bson.Marshal(resp)
	require.NoError(t, err)

	raw := bson.Raw(data)
	first := raw.Lookup("answers", "0", "answer")
	assert.Equal(t, "hi", first.StringValue())
	second := raw.Lookup("answers", "1", "answer")
	assert.Equal(t, bson.TypeArray, second.Type)

	var decoded Response
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.Equal(t, resp.Answers, decoded.Answers)
}

func TestAnswerBlankness(t *testing.T) {
	assert.True(t, Answer{}.IsBlank())
	assert.True(t, TextAnswer(" \n").IsBlank())
	assert.False(t, TextAnswer("0").IsBlank())
	assert.True(t, EmptyAnswer(QuestionTypeEmoji).IsMulti())
	assert.Equal(t, "a, b", ChoicesAnswer("a", "b").String())
}
