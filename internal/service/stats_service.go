package service

import (
	"context"
	"log"

	"nlpdform/internal/model"
	"nlpdform/internal/repository"
)

// StatsService produces aggregate statistics over stored submissions.
// It recomputes from the store on every call; at the expected volume a
// running aggregate is not worth the bookkeeping.
type StatsService struct {
	repo repository.SubmissionRepo
}

// NewStatsService creates a new statistics service
func NewStatsService(repo repository.SubmissionRepo) *StatsService {
	return &StatsService{
		repo: repo,
	}
}

// Compute returns the total count, counts grouped by risk level and by
// industry, and the mean normalized score rounded to two decimals (0 when
// the store is empty).
func (s *StatsService) Compute(ctx context.Context) (*model.SubmissionStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		log.Printf("[Stats] ERROR: aggregation failed: %v", err)
		return nil, err
	}
	return stats, nil
}
