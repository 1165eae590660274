package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibeform/internal/authoring"
	"vibeform/internal/model"
)

func TestFormCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	form := env.createForm(t, "owner-1")
	assert.NotEmpty(t, form.ID)
	assert.Equal(t, "owner-1", form.OwnerID)
	assert.Equal(t, model.DefaultDescription, form.Description)
	require.Len(t, form.Questions, 3)

	_, err := env.responseSvc.Submit(ctx, form.ID, model.ResponsePayload{
		Answers: []model.AnswerEntry{{QuestionID: "q1", Answer: model.TextAnswer("good")}},
	})
	require.NoError(t, err)

	env.createForm(t, "owner-2")

	list, err := env.formSvc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, form.ID, list[0].ID)
	assert.Len(t, list[0].Responses, 1)
}

func TestFormCreateRejectsBadShape(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.formSvc.Create(context.Background(), "o", &model.FormInput{
		Title:     "Broken",
		Questions: []model.Question{{Type: model.QuestionTypeMultiple, Question: "Pick", Options: []string{" "}}},
	})
	var shapeErrs model.ShapeErrors
	require.ErrorAs(t, err, &shapeErrs)
	assert.Equal(t, "options", shapeErrs[0].Field)

	_, err = env.formSvc.Create(context.Background(), "o", &model.FormInput{Title: "  "})
	assert.ErrorIs(t, err, authoring.ErrTitleRequired)
}

func TestFormUpdateAndOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	form := env.createForm(t, "owner-1")

	input := sampleInput()
	input.Title = "Renamed"
	input.Questions = input.Questions[:1]

	_, err := env.formSvc.Update(ctx, "intruder", form.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := env.formSvc.Update(ctx, "owner-1", form.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, form.CreatedAt, updated.CreatedAt)

	got, err := env.formSvc.GetByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Len(t, got.Questions, 1)

	_, err = env.formSvc.Update(ctx, "owner-1", "missing", input)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestFormDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	form := env.createForm(t, "owner-1")
	other := env.createForm(t, "owner-1")

	for _, id := range []string{form.ID, form.ID, other.ID} {
		_, err := env.responseSvc.Submit(ctx, id, model.ResponsePayload{
			Answers: []model.AnswerEntry{{QuestionID: "q1", Answer: model.TextAnswer("x")}},
		})
		require.NoError(t, err)
	}

	assert.ErrorIs(t, env.formSvc.Delete(ctx, "owner-2", form.ID), ErrForbidden)
	require.NoError(t, env.formSvc.Delete(ctx, "owner-1", form.ID))

	_, err := env.formSvc.GetByID(ctx, form.ID)
	assert.ErrorIs(t, err, ErrFormNotFound)

	left, err := env.responses.GetByFormID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)
	gone, err := env.responses.GetByFormID(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)
}
