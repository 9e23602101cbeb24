package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"nlpdform/internal/model"
	"nlpdform/internal/repository"
)

// StatusService manages the legacy health-check records
type StatusService struct {
	repo repository.StatusCheckRepo
}

// NewStatusService creates a new status check service
func NewStatusService(repo repository.StatusCheckRepo) *StatusService {
	return &StatusService{
		repo: repo,
	}
}

// CreateCheck records a new status check
func (s *StatusService) CreateCheck(ctx context.Context, input *model.StatusCheckInput) (*model.StatusCheck, error) {
	if input.ClientName == "" {
		return nil, &ValidationError{Field: "client_name", Message: "client name is required"}
	}

	check := &model.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: input.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		log.Printf("[Status] ERROR: create check for %s failed: %v", input.ClientName, err)
		return nil, err
	}
	return check, nil
}

// ListChecks returns the recorded status checks
func (s *StatusService) ListChecks(ctx context.Context) ([]*model.StatusCheck, error) {
	return s.repo.List(ctx, 1000)
}
