package repository

import (
	"context"
	"math"
	"sync"

	"nlpdform/internal/model"
)

// In-memory fallback stores, selected when no MongoDB connection string is
// configured. Process-lifetime only: everything is lost on restart. All
// accesses go through a mutex so concurrent request handling stays safe.

type memorySubmissionRepo struct {
	mu   sync.Mutex
	subs []*model.Submission
}

// NewMemorySubmissionRepo creates an in-memory submission repository
func NewMemorySubmissionRepo() SubmissionRepo {
	return &memorySubmissionRepo{}
}

func (r *memorySubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, sub)
	return nil
}

// List returns submissions in insertion order, offset by skip and capped at
// limit. The Mongo variant sorts by created_at descending instead; for this
// store insertion order and creation order coincide.
func (r *memorySubmissionRepo) List(_ context.Context, skip, limit int64) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Submission, 0)
	if skip >= int64(len(r.subs)) {
		return out, nil
	}
	for _, sub := range r.subs[skip:] {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, sub)
	}
	return out, nil
}

func (r *memorySubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *memorySubmissionRepo) UpdateStatus(_ context.Context, id, status string, teaserText *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		if sub.ID == id {
			sub.Status = status
			if teaserText != nil {
				sub.TeaserText = teaserText
			}
			return nil
		}
	}
	return ErrNotFound
}

func (r *memorySubmissionRepo) Stats(_ context.Context) (*model.SubmissionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &model.SubmissionStats{
		TotalSubmissions: int64(len(r.subs)),
		RiskLevels:       make(map[string]int64),
		Industries:       make(map[string]int64),
	}

	var sum float64
	for _, sub := range r.subs {
		if sub.RiskLevel != "" {
			stats.RiskLevels[sub.RiskLevel]++
		}
		if sub.Industry != "" {
			stats.Industries[sub.Industry]++
		}
		sum += sub.ScoreNormalized
	}
	if len(r.subs) > 0 {
		stats.AverageScore = math.Round(sum/float64(len(r.subs))*100) / 100
	}
	return stats, nil
}

type memoryStatusCheckRepo struct {
	mu     sync.Mutex
	checks []*model.StatusCheck
}

// NewMemoryStatusCheckRepo creates an in-memory status check repository
func NewMemoryStatusCheckRepo() StatusCheckRepo {
	return &memoryStatusCheckRepo{}
}

func (r *memoryStatusCheckRepo) Create(_ context.Context, check *model.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, check)
	return nil
}

func (r *memoryStatusCheckRepo) List(_ context.Context, limit int64) ([]*model.StatusCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.StatusCheck, 0)
	for _, check := range r.checks {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, check)
	}
	return out, nil
}

type memoryEmailOutputRepo struct {
	mu      sync.Mutex
	outputs []*model.EmailOutput
}

// NewMemoryEmailOutputRepo creates an in-memory email output repository
func NewMemoryEmailOutputRepo() EmailOutputRepo {
	return &memoryEmailOutputRepo{}
}

func (r *memoryEmailOutputRepo) Create(_ context.Context, output *model.EmailOutput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs = append(r.outputs, output)
	return nil
}

func (r *memoryEmailOutputRepo) GetBySubmissionID(_ context.Context, submissionID string) (*model.EmailOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, output := range r.outputs {
		if output.SubmissionID == submissionID {
			return output, nil
		}
	}
	return nil, nil
}
