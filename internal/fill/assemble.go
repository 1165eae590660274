package fill

import "vibeform/internal/model"

// Assemble builds the response payload in form order. Unanswered questions
// carry the empty value of their answer shape.
func Assemble(questions []model.Question, answers Store, points int) model.ResponsePayload {
	entries := make([]model.AnswerEntry, 0, len(questions))
	for _, q := range questions {
		a, ok := answers.Get(q.ID)
		if !ok {
			a = model.EmptyAnswer(q.Type)
		}
		entries = append(entries, model.AnswerEntry{QuestionID: q.ID, Answer: a})
	}
	return model.ResponsePayload{Answers: entries, VibePoints: points}
}
