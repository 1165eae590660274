package fill

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibeform/internal/model"
)

func newTestSession(t *testing.T, questions ...model.Question) *Session {
	t.Helper()
	s, err := NewSession("s1", &model.Form{ID: "f1", Title: "T", Questions: questions})
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsEmptyForm(t *testing.T) {
	_, err := NewSession("s1", &model.Form{ID: "f1", Title: "T"})
	assert.ErrorIs(t, err, ErrEmptyForm)
}

func TestScoringAwardsOncePerQuestion(t *testing.T) {
	s := newTestSession(t, model.Question{ID: "q1", Type: model.QuestionTypeShort, Question: "Name"})

	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("a")))
	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("ab")))
	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("")))
	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("abc")))

	assert.Equal(t, 5, s.Score.Total)
	assert.Equal(t, 5, s.Score.Settled(s.Answers))
}

func TestScoringEmojiToggleAwardsOnce(t *testing.T) {
	s := newTestSession(t, model.Question{ID: "q", Type: model.QuestionTypeEmoji, Question: "Mood", Options: []string{"😀", "😢"}})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.ToggleEmoji("q", "😀"))
		require.NoError(t, s.ToggleEmoji("q", "😀"))
	}
	require.NoError(t, s.ToggleEmoji("q", "😢"))

	assert.Equal(t, 12, s.Score.Total)
}

func TestScoringPointsPerType(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "d", Type: model.QuestionTypeDate, Question: "When"},
		model.Question{ID: "m", Type: model.QuestionTypeMultiple, Question: "Pick", Options: []string{"x", "y"}},
	)
	require.NoError(t, s.SetAnswer("d", model.TextAnswer("2024-01-02")))
	require.NoError(t, s.SetAnswer("m", model.TextAnswer("x")))
	require.NoError(t, s.SetAnswer("m", model.TextAnswer("y")))

	assert.Equal(t, 18, s.Score.Total)
}

func TestSetAnswerRejectsForeignInput(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "m", Type: model.QuestionTypeMultiple, Question: "Pick", Options: []string{"x"}},
		model.Question{ID: "s", Type: model.QuestionTypeShort, Question: "Say"},
	)

	assert.ErrorIs(t, s.SetAnswer("nope", model.TextAnswer("x")), ErrUnknownQuestion)
	assert.ErrorIs(t, s.SetAnswer("m", model.TextAnswer("z")), ErrInvalidOption)
	assert.ErrorIs(t, s.ToggleEmoji("s", "😀"), ErrAnswerShape)
	assert.Equal(t, 0, s.Score.Total)
}

func TestNextStaysOnRejection(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "a", Type: model.QuestionTypeShort, Question: "A", Required: true},
		model.Question{ID: "b", Type: model.QuestionTypeEmail, Question: "B", Required: true},
		model.Question{ID: "c", Type: model.QuestionTypeShort, Question: "C"},
	)
	s.Errors["c"] = ReasonRequired

	cmd, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, CommandStay, cmd.Kind)
	assert.Equal(t, 0, s.Step.Index)
	assert.Equal(t, ReasonRequired, s.Errors["a"])
	assert.Equal(t, ReasonRequired, s.Errors["c"], "other questions' reasons are kept")

	require.NoError(t, s.SetAnswer("a", model.TextAnswer("x")))
	assert.NotContains(t, s.Errors, "a")
	cmd, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CommandShow, Index: 1}, cmd)
}

func TestBackNeverValidates(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "a", Type: model.QuestionTypeShort, Question: "A"},
		model.Question{ID: "b", Type: model.QuestionTypeEmail, Question: "B"},
	)
	_, err := s.Next()
	require.NoError(t, err)
	require.NoError(t, s.SetAnswer("b", model.TextAnswer("not-an-email")))

	cmd, err := s.Back()
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CommandShow, Index: 0}, cmd)
	assert.Empty(t, s.Errors)

	cmd, err = s.Back()
	require.NoError(t, err)
	assert.Equal(t, CommandStay, cmd.Kind)
	assert.Equal(t, 0, s.Step.Index)
}

func TestJumpToFirstMissingRequired(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "a", Type: model.QuestionTypeShort, Question: "A", Required: true},
		model.Question{ID: "b", Type: model.QuestionTypeShort, Question: "B"},
		model.Question{ID: "c", Type: model.QuestionTypeShort, Question: "C", Required: true},
	)
	require.NoError(t, s.SetAnswer("a", model.TextAnswer("x")))

	cmd, err := s.JumpToFirstMissingRequired()
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CommandShow, Index: 2}, cmd)

	require.NoError(t, s.SetAnswer("c", model.TextAnswer("y")))
	cmd, err = s.JumpToFirstMissingRequired()
	require.NoError(t, err)
	assert.Equal(t, CommandStay, cmd.Kind)
	assert.Equal(t, 2, s.Step.Index)
}

func TestFinishLandsOnFirstRejected(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "A", Type: model.QuestionTypeShort, Question: "A", Required: true},
		model.Question{ID: "B", Type: model.QuestionTypeShort, Question: "B"},
		model.Question{ID: "C", Type: model.QuestionTypeShort, Question: "C", Required: true},
	)
	require.NoError(t, s.SetAnswer("A", model.TextAnswer("ok")))
	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, 2, s.Step.Index)

	cmd, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CommandStay, Index: 2}, cmd)
	assert.Equal(t, map[string]Reason{"C": ReasonRequired}, s.Errors)
	got, _ := s.Answers.Get("A")
	assert.Equal(t, "ok", got.Text)
	assert.Equal(t, model.FillAtQuestion, s.Step.Phase)
}

func TestFinishRecordsAllRejections(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "A", Type: model.QuestionTypeShort, Question: "A", Required: true},
		model.Question{ID: "B", Type: model.QuestionTypeEmail, Question: "B"},
		model.Question{ID: "C", Type: model.QuestionTypeShort, Question: "C"},
	)
	require.NoError(t, s.SetAnswer("B", model.TextAnswer("not-an-email")))
	require.NoError(t, s.SetAnswer("C", model.TextAnswer("fine")))
	s.Step.Index = 2

	cmd, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CommandShow, Index: 0}, cmd)
	assert.Equal(t, map[string]Reason{"A": ReasonRequired, "B": ReasonInvalidEmail}, s.Errors)
	assert.Equal(t, model.FillAtQuestion, s.Step.Phase)
}

func TestSubmitPayloadFollowsFormOrder(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "q1", Type: model.QuestionTypeShort, Question: "1"},
		model.Question{ID: "q2", Type: model.QuestionTypeMultiple, Question: "2", Options: []string{"x"}},
		model.Question{ID: "q3", Type: model.QuestionTypeNumber, Question: "3"},
	)
	require.NoError(t, s.SetAnswer("q3", model.TextAnswer("7")))
	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("first")))
	require.NoError(t, s.SetAnswer("q2", model.TextAnswer("x")))
	s.Step.Index = 2

	cmd, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, CommandSubmit, cmd.Kind)

	var ids []string
	for _, e := range cmd.Payload.Answers {
		ids = append(ids, e.QuestionID)
	}
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids)
	assert.Equal(t, 20, cmd.Payload.VibePoints)
}

func TestPendingBlocksEventsUntilConfirmOrAbort(t *testing.T) {
	s := newTestSession(t, model.Question{ID: "q1", Type: model.QuestionTypeShort, Question: "1"})
	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("x")))

	cmd, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, CommandSubmit, cmd.Kind)

	_, err = s.Next()
	assert.ErrorIs(t, err, ErrSubmissionPending)
	assert.ErrorIs(t, s.SetAnswer("q1", model.TextAnswer("y")), ErrSubmissionPending)

	require.NoError(t, s.Abort())
	assert.Equal(t, model.FillAtQuestion, s.Step.Phase)
	assert.Equal(t, 5, s.Score.Total)

	cmd, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, CommandSubmit, cmd.Kind)
	assert.Equal(t, 5, cmd.Payload.VibePoints)
	require.NoError(t, s.Confirm("r1"))

	_, err = s.Back()
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.Confirm("r2"), ErrNotPending)
	assert.True(t, errors.Is(s.Abort(), ErrNotPending))
	snap := s.Snapshot()
	assert.Equal(t, model.NavigateThankYou, snap.Navigate)
	assert.Equal(t, 5, snap.VibePoints)
	assert.Equal(t, "r1", snap.ResponseID)
	assert.Equal(t, 0, s.Answers.AnsweredCount())
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "q1", Type: model.QuestionTypeShort, Question: "Hi?", Required: true},
		model.Question{ID: "q2", Type: model.QuestionTypeEmoji, Question: "Mood", Options: []string{"😀", "😢"}},
	)

	cmd, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, CommandStay, cmd.Kind)
	assert.Equal(t, ReasonRequired, s.Errors["q1"])

	require.NoError(t, s.SetAnswer("q1", model.TextAnswer("hi")))
	cmd, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CommandShow, Index: 1}, cmd)

	require.NoError(t, s.ToggleEmoji("q2", "😀"))
	total := s.Score.Total
	require.NoError(t, s.ToggleEmoji("q2", "😀"))
	assert.False(t, s.Answers.Has("q2"))
	assert.Equal(t, total, s.Score.Total)

	cmd, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, CommandSubmit, cmd.Kind)

	body, err := json.Marshal(cmd.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"answers":[{"questionId":"q1","answer":"hi"},{"questionId":"q2","answer":[]}],"vibePoints":5}`, string(body))
}

func TestSessionSurvivesJSONRoundTrip(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "q1", Type: model.QuestionTypeShort, Question: "1", Required: true},
		model.Question{ID: "q2", Type: model.QuestionTypeEmoji, Question: "2", Options: []string{"😀"}},
	)
	require.NoError(t, s.ToggleEmoji("q2", "😀"))
	_, err := s.Next()
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, s.Answers, restored.Answers)
	assert.Equal(t, s.Errors, restored.Errors)
	assert.Equal(t, s.Score, restored.Score)
	assert.Equal(t, s.Step, restored.Step)
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t,
		model.Question{ID: "q1", Type: model.QuestionTypeShort, Question: "1", Required: true},
		model.Question{ID: "q2", Type: model.QuestionTypeShort, Question: "2"},
	)
	_, err := s.Next()
	require.NoError(t, err)
	require.NoError(t, s.SetAnswer("q2", model.TextAnswer("later")))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, "q1", snap.Question.ID)
	assert.Nil(t, snap.Answer)
	assert.Equal(t, 50, snap.Progress)
	assert.Equal(t, model.FillError{Code: "REQUIRED", Message: "This question is required"}, snap.Errors["q1"])
}
