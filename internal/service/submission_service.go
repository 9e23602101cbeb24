package service

import (
	"context"
	"log"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"nlpdform/internal/model"
	"nlpdform/internal/repository"
)

// SubmissionService validates and stores questionnaire submissions
type SubmissionService struct {
	repo repository.SubmissionRepo
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(repo repository.SubmissionRepo) *SubmissionService {
	return &SubmissionService{
		repo: repo,
	}
}

// Submit validates the input, materializes the submission with the
// server-generated fields (id, creation time, session id, consent timestamp)
// and persists it. Validation runs before any write, so a rejected input
// leaves no partial record behind.
func (s *SubmissionService) Submit(ctx context.Context, input *model.SubmissionInput) (*model.Submission, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &model.Submission{
		ID:        uuid.NewString(),
		CreatedAt: now,

		UserEmail:     input.UserEmail,
		UserFirstName: input.UserFirstName,
		UserLastName:  input.UserLastName,
		CompanyName:   input.CompanyName,
		CompanySize:   input.CompanySize,
		Industry:      input.Industry,
		Canton:        input.Canton,

		Answers: input.Answers,

		ScoreRaw:        input.ScoreRaw,
		ScoreNormalized: input.ScoreNormalized,
		RiskLevel:       input.RiskLevel,

		Status: model.StatusPending,

		ConsentMarketing: input.ConsentMarketing,
		SessionID:        uuid.NewString(),

		DeviceType:  input.DeviceType,
		UTMSource:   input.UTMSource,
		UTMCampaign: input.UTMCampaign,
	}
	if input.ConsentMarketing {
		ts := now
		sub.ConsentTimestamp = &ts
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		log.Printf("[Submissions] ERROR: create %s failed: %v", sub.ID, err)
		return nil, err
	}

	log.Printf("[Submissions] created %s for %s", sub.ID, sub.UserEmail)
	return sub, nil
}

// Get retrieves a submission by id, (nil, nil) when unknown
func (s *SubmissionService) Get(ctx context.Context, id string) (*model.Submission, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of submissions ordered by creation time
func (s *SubmissionService) List(ctx context.Context, skip, limit int64) ([]*model.Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

// UpdateStatus merges a new processing status (and optionally a teaser text)
// into the stored submission. The status is accepted as-is: the processing
// pipeline owns the vocabulary, not this API.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id, status string, teaserText *string) error {
	if status == "" {
		return &ValidationError{Field: "status", Message: "status is required"}
	}
	if err := s.repo.UpdateStatus(ctx, id, status, teaserText); err != nil {
		if err != repository.ErrNotFound {
			log.Printf("[Submissions] ERROR: update status of %s failed: %v", id, err)
		}
		return err
	}
	return nil
}

func validateSubmission(input *model.SubmissionInput) error {
	if input.UserEmail == "" {
		return &ValidationError{Field: "user_email", Message: "email is required"}
	}
	if _, err := mail.ParseAddress(input.UserEmail); err != nil {
		return &ValidationError{Field: "user_email", Message: "invalid email address"}
	}
	if input.UserFirstName == "" {
		return &ValidationError{Field: "user_first_name", Message: "first name is required"}
	}
	if input.UserLastName == "" {
		return &ValidationError{Field: "user_last_name", Message: "last name is required"}
	}
	if input.CompanyName == "" {
		return &ValidationError{Field: "company_name", Message: "company name is required"}
	}
	if input.Answers == nil {
		return &ValidationError{Field: "answers", Message: "answers are required"}
	}
	if input.RiskLevel == "" {
		return &ValidationError{Field: "risk_level", Message: "risk level is required"}
	}
	return nil
}
