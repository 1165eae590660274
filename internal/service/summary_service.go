package service

import (
	"context"
	"fmt"
	"time"

	"vibeform/internal/cache"
	"vibeform/internal/log"
	"vibeform/internal/model"
	"vibeform/internal/repository"
)

// recentAnswerLimit caps the free-text answers listed per question.
const recentAnswerLimit = 5

// SummaryService builds the dashboard summary of a form's responses
type SummaryService struct {
	forms        *FormService
	responseRepo repository.ResponseRepo
	summaryCache cache.SummaryCache
}

// NewSummaryService creates a new summary service
func NewSummaryService(forms *FormService, responseRepo repository.ResponseRepo, summaryCache cache.SummaryCache) *SummaryService {
	return &SummaryService{
		forms:        forms,
		responseRepo: responseRepo,
		summaryCache: summaryCache,
	}
}

// Get returns the summary from cache, computing and caching it on a miss
func (s *SummaryService) Get(ctx context.Context, ownerID, formID string) (*model.FormSummary, error) {
	form, err := s.forms.GetOwned(ctx, ownerID, formID)
	if err != nil {
		return nil, err
	}

	cached, err := s.summaryCache.Get(ctx, formID)
	if err != nil {
		log.Warnf("summary cache read failed for %s: %v", formID, err)
	}
	if cached != nil {
		return cached, nil
	}

	responses, err := s.responseRepo.GetByFormID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	summary := Summarize(form, responses, time.Now())

	if err := s.summaryCache.Set(ctx, summary); err != nil {
		log.Warnf("summary cache write failed for %s: %v", formID, err)
	}
	return summary, nil
}

// Summarize aggregates responses per question. responses are expected newest
// first, as the repository returns them.
func Summarize(form *model.Form, responses []*model.Response, now time.Time) *model.FormSummary {
	summary := &model.FormSummary{
		FormID:        form.ID,
		Title:         form.Title,
		ResponseCount: len(responses),
		Questions:     make([]model.QuestionSummary, 0, len(form.Questions)),
		GeneratedAt:   now,
	}

	for _, r := range responses {
		summary.TotalVibe += r.VibePoints
		if summary.LastResponseAt == nil || r.SubmittedAt.After(*summary.LastResponseAt) {
			at := r.SubmittedAt
			summary.LastResponseAt = &at
		}
	}
	if len(responses) > 0 {
		summary.AverageVibe = float64(summary.TotalVibe) / float64(len(responses))
	}

	for _, q := range form.Questions {
		summary.Questions = append(summary.Questions, summarizeQuestion(q, responses))
	}
	return summary
}

func summarizeQuestion(q model.Question, responses []*model.Response) model.QuestionSummary {
	qs := model.QuestionSummary{
		QuestionID: q.ID,
		Question:   q.Question,
		Type:       q.Type,
		TypeLabel:  q.Type.Label(),
	}

	counts := make(map[string]int, len(q.Options))
	for _, r := range responses {
		for _, entry := range r.Answers {
			if entry.QuestionID != q.ID || entry.Answer.IsBlank() {
				continue
			}
			qs.AnsweredCount++
			switch {
			case q.Type.MultiSelect():
				for _, c := range entry.Answer.Choices {
					counts[c]++
				}
			case q.Type.HasOptions():
				counts[entry.Answer.Text]++
			default:
				if len(qs.RecentAnswers) < recentAnswerLimit {
					qs.RecentAnswers = append(qs.RecentAnswers, entry.Answer.Text)
				}
			}
		}
	}

	if q.Type.HasOptions() {
		qs.Options = make([]model.OptionCount, 0, len(q.Options))
		for _, opt := range q.Options {
			qs.Options = append(qs.Options, model.OptionCount{Option: opt, Count: counts[opt]})
		}
	}
	return qs
}
