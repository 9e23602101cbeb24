package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nlpdform/internal/model"
)

// AnalysisCache handles Redis operations for analysis results. The cache is
// advisory: the analyze path must behave identically when it is absent, and
// callers are expected to log and ignore cache errors.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*model.AnalysisResult, error)
	Set(ctx context.Context, key string, result *model.AnalysisResult) error
}

type analysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a new analysis result cache
func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *analysisCache) resultKey(key string) string {
	return fmt.Sprintf("analysis:%s", key)
}

func (c *analysisCache) Get(ctx context.Context, key string) (*model.AnalysisResult, error) {
	data, err := c.client.Get(ctx, c.resultKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *analysisCache) Set(ctx context.Context, key string, result *model.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.resultKey(key), data, c.ttl).Err()
}
