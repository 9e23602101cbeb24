package config

import (
	"os"
	"time"
)

// AIConfig holds the OpenAI Assistants configuration for the analysis proxy
type AIConfig struct {
	APIKey      string `json:"-"` // Never serialize
	AssistantID string `json:"assistantId"`
	BaseURL     string `json:"baseUrl"`

	// PollInterval is how often a running analysis is checked for completion
	PollInterval time.Duration `json:"-"`

	// MaxWait bounds the total time spent waiting on a single run
	MaxWait time.Duration `json:"-"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:       os.Getenv("OPENAI_API_KEY"),
		AssistantID:  os.Getenv("OPENAI_ASSISTANT_ID"),
		BaseURL:      getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		PollInterval: 1500 * time.Millisecond,
		MaxWait:      45 * time.Second,
	}
}

// IsEnabled returns true if the assistant is fully configured. When it is
// not, the analysis service answers with the deterministic templated
// fallback instead of calling out.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != "" && c.AssistantID != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
