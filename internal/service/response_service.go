package service

import (
	"context"
	"fmt"

	"vibeform/internal/fill"
	"vibeform/internal/log"
	"vibeform/internal/model"
	"vibeform/internal/repository"
)

// ResponseService stores and manages completed responses
type ResponseService struct {
	forms        *FormService
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
}

// NewResponseService creates a new response service
func NewResponseService(forms *FormService, formRepo repository.FormRepo, responseRepo repository.ResponseRepo) *ResponseService {
	return &ResponseService{
		forms:        forms,
		formRepo:     formRepo,
		responseRepo: responseRepo,
	}
}

// Submit validates a payload against the form and stores it. Answers are
// stored in form order whatever order they arrive in.
func (s *ResponseService) Submit(ctx context.Context, formID string, payload model.ResponsePayload) (*model.Response, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	answers, err := checkPayload(form, payload)
	if err != nil {
		return nil, err
	}

	assembled := fill.Assemble(form.Questions, answers, payload.VibePoints)
	response := &model.Response{
		FormID:     form.ID,
		Answers:    assembled.Answers,
		VibePoints: assembled.VibePoints,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}
	if err := s.formRepo.AddResponse(ctx, form.ID, response.ID); err != nil {
		return nil, fmt.Errorf("failed to link response: %w", err)
	}
	s.forms.invalidateSummary(ctx, form.ID)

	log.WithFields(log.Fields{"form": form.ID, "response": response.ID, "vibePoints": response.VibePoints}).Info("response submitted")
	return response, nil
}

func checkPayload(form *model.Form, payload model.ResponsePayload) (fill.Store, error) {
	maxPoints := 0
	for _, q := range form.Questions {
		maxPoints += q.Type.DefaultPoints()
	}
	if payload.VibePoints < 0 || payload.VibePoints > maxPoints {
		return nil, fmt.Errorf("%w: vibePoints must be between 0 and %d", ErrInvalidResponse, maxPoints)
	}

	answers := fill.NewStore()
	for _, entry := range payload.Answers {
		q, ok := form.QuestionByID(entry.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidResponse, entry.QuestionID)
		}
		if answers.Has(q.ID) {
			return nil, fmt.Errorf("%w: question %q answered twice", ErrInvalidResponse, q.ID)
		}
		if err := fill.CheckAnswer(q, entry.Answer); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		answers.Set(q.ID, entry.Answer)
	}

	if reasons, first := fill.ValidateAll(form.Questions, answers); first >= 0 {
		q := form.Questions[first]
		return nil, fmt.Errorf("%w: question %q: %s", ErrInvalidResponse, q.ID, reasons[q.ID])
	}
	return answers, nil
}

// List returns a form's responses, newest first
func (s *ResponseService) List(ctx context.Context, ownerID, formID string) ([]*model.Response, error) {
	if _, err := s.forms.GetOwned(ctx, ownerID, formID); err != nil {
		return nil, err
	}
	return s.responseRepo.GetByFormID(ctx, formID)
}

// Delete removes one response from a form
func (s *ResponseService) Delete(ctx context.Context, ownerID, formID, responseID string) error {
	if _, err := s.forms.GetOwned(ctx, ownerID, formID); err != nil {
		return err
	}

	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return fmt.Errorf("failed to get response: %w", err)
	}
	if response == nil || response.FormID != formID {
		return ErrResponseNotFound
	}

	if err := s.responseRepo.Delete(ctx, responseID); err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	if err := s.formRepo.RemoveResponse(ctx, formID, responseID); err != nil {
		return fmt.Errorf("failed to unlink response: %w", err)
	}
	s.forms.invalidateSummary(ctx, formID)
	return nil
}
