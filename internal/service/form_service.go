package service

import (
	"context"
	"fmt"

	"vibeform/internal/authoring"
	"vibeform/internal/cache"
	"vibeform/internal/log"
	"vibeform/internal/model"
	"vibeform/internal/repository"
)

// FormService handles form CRUD operations
type FormService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	summaryCache cache.SummaryCache
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo, summaryCache cache.SummaryCache) *FormService {
	return &FormService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		summaryCache: summaryCache,
	}
}

// Create publishes a new form for ownerID
func (s *FormService) Create(ctx context.Context, ownerID string, input *model.FormInput) (*model.Form, error) {
	form, err := authoring.FromQuestions(input.Questions).Publish(input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	form.OwnerID = ownerID

	if _, err := s.formRepo.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}
	log.WithFields(log.Fields{"form": form.ID, "owner": ownerID, "questions": len(form.Questions)}).Info("form created")
	return form, nil
}

// GetByID retrieves a form by ID
func (s *FormService) GetByID(ctx context.Context, id string) (*model.Form, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// GetOwned retrieves a form and checks that ownerID owns it
func (s *FormService) GetOwned(ctx context.Context, ownerID, id string) (*model.Form, error) {
	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return form, nil
}

// ListByOwner returns the owner's forms with their responses
func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]*model.FormWithResponses, error) {
	forms, err := s.formRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	result := make([]*model.FormWithResponses, 0, len(forms))
	for _, f := range forms {
		responses, err := s.responseRepo.GetByFormID(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list responses of %s: %w", f.ID, err)
		}
		result = append(result, &model.FormWithResponses{Form: *f, Responses: responses})
	}
	return result, nil
}

// Update replaces the title, description and entire question list
func (s *FormService) Update(ctx context.Context, ownerID, id string, input *model.FormInput) (*model.Form, error) {
	existing, err := s.GetOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	form, err := authoring.FromQuestions(input.Questions).Publish(input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	form.ID = existing.ID
	form.OwnerID = existing.OwnerID
	form.Responses = existing.Responses
	form.CreatedAt = existing.CreatedAt

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}
	s.invalidateSummary(ctx, id)
	return form, nil
}

// Delete removes a form and all of its responses
func (s *FormService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return err
	}

	removed, err := s.responseRepo.DeleteByFormID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	if err := s.formRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}
	s.invalidateSummary(ctx, id)
	log.WithFields(log.Fields{"form": id, "responses": removed}).Info("form deleted")
	return nil
}

func (s *FormService) invalidateSummary(ctx context.Context, formID string) {
	if err := s.summaryCache.Invalidate(ctx, formID); err != nil {
		log.Warnf("failed to invalidate summary of %s: %v", formID, err)
	}
}
