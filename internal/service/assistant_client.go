package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nlpdform/internal/config"
)

// Assistant run states. A run is still pending while queued or in progress;
// any other state is terminal.
const (
	runStatusQueued     = "queued"
	runStatusInProgress = "in_progress"
	runStatusCompleted  = "completed"
)

// AssistantClient wraps the OpenAI Assistants API calls used by the
// analysis proxy: create a thread, post the payload, start a run, poll it,
// and read back the assistant's reply.
type AssistantClient struct {
	cfg        *config.AIConfig
	httpClient *http.Client
}

// NewAssistantClient creates a new assistant API client
func NewAssistantClient(cfg *config.AIConfig) *AssistantClient {
	return &AssistantClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type assistantThread struct {
	ID string `json:"id"`
}

type AssistantRun struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Pending reports whether the run has not reached a terminal state yet
func (r *AssistantRun) Pending() bool {
	return r.Status == runStatusQueued || r.Status == runStatusInProgress
}

type assistantMessageList struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

// CreateThread starts a fresh conversation thread
func (c *AssistantClient) CreateThread(ctx context.Context) (string, error) {
	var thread assistantThread
	if err := c.doRequest(ctx, "POST", "/threads", map[string]interface{}{}, &thread); err != nil {
		return "", err
	}
	if thread.ID == "" {
		return "", fmt.Errorf("thread creation returned no id")
	}
	return thread.ID, nil
}

// AddMessage posts a user message onto the thread
func (c *AssistantClient) AddMessage(ctx context.Context, threadID, content string) error {
	body := map[string]string{
		"role":    "user",
		"content": content,
	}
	return c.doRequest(ctx, "POST", "/threads/"+threadID+"/messages", body, nil)
}

// StartRun starts an assistant run on the thread
func (c *AssistantClient) StartRun(ctx context.Context, threadID string) (*AssistantRun, error) {
	body := map[string]string{
		"assistant_id": c.cfg.AssistantID,
	}
	var run AssistantRun
	if err := c.doRequest(ctx, "POST", "/threads/"+threadID+"/runs", body, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches the current state of a run
func (c *AssistantClient) GetRun(ctx context.Context, threadID, runID string) (*AssistantRun, error) {
	var run AssistantRun
	if err := c.doRequest(ctx, "GET", "/threads/"+threadID+"/runs/"+runID, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestAssistantReply returns the text of the most recent assistant message
// on the thread. The messages endpoint lists newest first.
func (c *AssistantClient) LatestAssistantReply(ctx context.Context, threadID string) (string, error) {
	var list assistantMessageList
	if err := c.doRequest(ctx, "GET", "/threads/"+threadID+"/messages", nil, &list); err != nil {
		return "", err
	}

	for _, msg := range list.Data {
		if msg.Role != "assistant" {
			continue
		}
		for _, part := range msg.Content {
			if part.Text.Value != "" {
				return part.Text.Value, nil
			}
		}
	}
	return "", fmt.Errorf("no assistant reply on thread %s", threadID)
}

// doRequest performs a JSON request against the assistants API and decodes
// the response into out when given
func (c *AssistantClient) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBody)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return fmt.Errorf("assistant API %s %s returned %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}
