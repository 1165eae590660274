package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibeform/internal/model"
)

func TestSubmitNormalisesOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	form := env.createForm(t, "owner-1")

	resp, err := env.responseSvc.Submit(ctx, form.ID, model.ResponsePayload{
		Answers: []model.AnswerEntry{
			{QuestionID: "q3", Answer: model.TextAnswer("Salad")},
			{QuestionID: "q1", Answer: model.TextAnswer("great")},
		},
		VibePoints: 15,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 15, resp.VibePoints)

	require.Len(t, resp.Answers, 3)
	assert.Equal(t, "q1", resp.Answers[0].QuestionID)
	assert.Equal(t, "q2", resp.Answers[1].QuestionID)
	assert.Equal(t, []string{}, resp.Answers[1].Answer.Choices)
	assert.Equal(t, "Salad", resp.Answers[2].Answer.Text)
}

func TestSubmitRejectsInvalidPayloads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	form := env.createForm(t, "owner-1")
	hi := model.AnswerEntry{QuestionID: "q1", Answer: model.TextAnswer("hi")}

	tests := []struct {
		name    string
		payload model.ResponsePayload
	}{
		{"missing required", model.ResponsePayload{}},
		{"unknown question", model.ResponsePayload{Answers: []model.AnswerEntry{hi, {QuestionID: "zz", Answer: model.TextAnswer("x")}}}},
		{"answered twice", model.ResponsePayload{Answers: []model.AnswerEntry{hi, hi}}},
		{"option not offered", model.ResponsePayload{Answers: []model.AnswerEntry{hi, {QuestionID: "q3", Answer: model.TextAnswer("Soup")}}}},
		{"wrong shape", model.ResponsePayload{Answers: []model.AnswerEntry{hi, {QuestionID: "q2", Answer: model.TextAnswer("😃")}}}},
		{"negative points", model.ResponsePayload{Answers: []model.AnswerEntry{hi}, VibePoints: -1}},
		{"too many points", model.ResponsePayload{Answers: []model.AnswerEntry{hi}, VibePoints: 28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.responseSvc.Submit(ctx, form.ID, tt.payload)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}

	_, err := env.responseSvc.Submit(ctx, "missing", model.ResponsePayload{})
	assert.ErrorIs(t, err, ErrFormNotFound)

	stored, err := env.responses.GetByFormID(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestResponseListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	form := env.createForm(t, "owner-1")
	other := env.createForm(t, "owner-1")

	first, err := env.responseSvc.Submit(ctx, form.ID, model.ResponsePayload{
		Answers: []model.AnswerEntry{{QuestionID: "q1", Answer: model.TextAnswer("one")}},
	})
	require.NoError(t, err)
	second, err := env.responseSvc.Submit(ctx, form.ID, model.ResponsePayload{
		Answers: []model.AnswerEntry{{QuestionID: "q1", Answer: model.TextAnswer("two")}},
	})
	require.NoError(t, err)

	list, err := env.responseSvc.List(ctx, "owner-1", form.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	_, err = env.responseSvc.List(ctx, "owner-2", form.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, env.responseSvc.Delete(ctx, "owner-1", other.ID, first.ID), ErrResponseNotFound)
	require.NoError(t, env.responseSvc.Delete(ctx, "owner-1", form.ID, first.ID))

	got, err := env.formSvc.GetByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, got.Responses)

	assert.ErrorIs(t, env.responseSvc.Delete(ctx, "owner-1", form.ID, first.ID), ErrResponseNotFound)
}
