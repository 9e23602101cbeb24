package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"nlpdform/internal/model"
	"nlpdform/internal/repository"
)

// EmailService records the generated follow-up emails for submissions
type EmailService struct {
	repo repository.EmailOutputRepo
}

// NewEmailService creates a new email output service
func NewEmailService(repo repository.EmailOutputRepo) *EmailService {
	return &EmailService{
		repo: repo,
	}
}

// Create stores an email output record for a submission
func (s *EmailService) Create(ctx context.Context, input *model.EmailOutputInput) (*model.EmailOutput, error) {
	if input.SubmissionID == "" {
		return nil, &ValidationError{Field: "submission_id", Message: "submission id is required"}
	}

	output := &model.EmailOutput{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		SubmissionID: input.SubmissionID,

		EmailUserMarkdown:  input.EmailUserMarkdown,
		EmailUserSubject:   input.EmailUserSubject,
		EmailSalesMarkdown: input.EmailSalesMarkdown,
		EmailSalesSubject:  input.EmailSalesSubject,
	}
	if err := s.repo.Create(ctx, output); err != nil {
		log.Printf("[Emails] ERROR: create output for submission %s failed: %v", input.SubmissionID, err)
		return nil, err
	}

	log.Printf("[Emails] output created for submission %s", input.SubmissionID)
	return output, nil
}

// GetBySubmissionID retrieves the email output for a submission, (nil, nil)
// when none exists
func (s *EmailService) GetBySubmissionID(ctx context.Context, submissionID string) (*model.EmailOutput, error) {
	return s.repo.GetBySubmissionID(ctx, submissionID)
}
