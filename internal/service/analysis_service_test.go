package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlpdform/internal/config"
	"nlpdform/internal/model"
)

func greenPayload() *model.AnalysisPayload {
	return &model.AnalysisPayload{
		User:     model.AnalysisUser{FirstName: "Alice", Company: "Acme"},
		Answers:  map[string]string{"q1": "yes"},
		Score:    model.AnalysisScore{Raw: 3, Normalized: 2.5, Level: model.RiskGreen},
		HasEmail: true,
	}
}

// assistantStub fakes the assistants API: it walks through the given run
// statuses one GetRun call at a time and serves replyText as the assistant's
// message.
type assistantStub struct {
	mu        sync.Mutex
	statuses  []string
	replyText string
	polls     int
}

func (s *assistantStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == "POST" && r.URL.Path == "/threads":
			fmt.Fprint(w, `{"id":"thread_1"}`)
		case r.Method == "POST" && strings.HasSuffix(r.URL.Path, "/messages"):
			fmt.Fprint(w, `{"id":"msg_1"}`)
		case r.Method == "POST" && strings.HasSuffix(r.URL.Path, "/runs"):
			fmt.Fprint(w, `{"id":"run_1","status":"queued"}`)
		case r.Method == "GET" && strings.Contains(r.URL.Path, "/runs/"):
			s.mu.Lock()
			status := s.statuses[len(s.statuses)-1]
			if s.polls < len(s.statuses) {
				status = s.statuses[s.polls]
			}
			s.polls++
			s.mu.Unlock()
			fmt.Fprintf(w, `{"id":"run_1","status":%q}`, status)
		case r.Method == "GET" && strings.HasSuffix(r.URL.Path, "/messages"):
			s.mu.Lock()
			reply := s.replyText
			s.mu.Unlock()
			writeStubMessageList(w, reply)
		default:
			http.NotFound(w, r)
		}
	}
}

func writeStubMessageList(w http.ResponseWriter, reply string) {
	fmt.Fprintf(w, `{"data":[{"role":"assistant","content":[{"type":"text","text":{"value":%q}}]}]}`, reply)
}

func newStubService(t *testing.T, stub *assistantStub) *AnalysisService {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	cfg := &config.AIConfig{
		APIKey:       "test-key",
		AssistantID:  "asst_test",
		BaseURL:      srv.URL,
		PollInterval: 5 * time.Millisecond,
		MaxWait:      150 * time.Millisecond,
	}
	return NewAnalysisService(cfg, nil)
}

func TestAnalyzeFallbackWhenUnconfigured(t *testing.T) {
	svc := NewAnalysisService(&config.AIConfig{}, nil)

	tests := []struct {
		level    string
		wantLead string
	}{
		{level: model.RiskRed, wantLead: model.LeadHot},
		{level: model.RiskOrange, wantLead: model.LeadWarm},
		{level: model.RiskGreen, wantLead: model.LeadCold},
		{level: "violet", wantLead: model.LeadWarm},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			payload := greenPayload()
			payload.Score.Level = tt.level

			result, err := svc.Analyze(context.Background(), payload)
			require.NoError(t, err)

			assert.NotEmpty(t, result.Teaser)
			assert.Contains(t, result.Teaser, "Alice")
			assert.Contains(t, result.Teaser, "Acme")
			assert.Equal(t, tt.wantLead, result.LeadTemperature)
			assert.Nil(t, result.EmailUser)
			assert.Nil(t, result.EmailSales)

			// Same payload, same answer
			again, err := svc.Analyze(context.Background(), payload)
			require.NoError(t, err)
			assert.Equal(t, result, again)
		})
	}
}

func TestAnalyzeParsesFencedReply(t *testing.T) {
	stub := &assistantStub{
		statuses: []string{"in_progress", "completed"},
		replyText: "```json\n" +
			`{"teaser":"Analyse complète","lead_temperature":"HOT","email_user":"Bonjour Alice"}` +
			"\n```",
	}
	svc := newStubService(t, stub)

	result, err := svc.Analyze(context.Background(), greenPayload())
	require.NoError(t, err)

	assert.Equal(t, "Analyse complète", result.Teaser)
	assert.Equal(t, model.LeadHot, result.LeadTemperature)
	require.NotNil(t, result.EmailUser)
	assert.Equal(t, "Bonjour Alice", *result.EmailUser)
	assert.Nil(t, result.EmailSales)
}

func TestAnalyzeSummaryAndDerivedTemperature(t *testing.T) {
	stub := &assistantStub{
		statuses:  []string{"completed"},
		replyText: `{"summary":"Résumé court"}`,
	}
	svc := newStubService(t, stub)

	result, err := svc.Analyze(context.Background(), greenPayload())
	require.NoError(t, err)

	// teaser falls back to summary, temperature to the risk-level mapping
	assert.Equal(t, "Résumé court", result.Teaser)
	assert.Equal(t, model.LeadCold, result.LeadTemperature)
}

func TestAnalyzeDegradedOnUnparseableReply(t *testing.T) {
	raw := strings.Repeat("x", 1000)
	stub := &assistantStub{
		statuses:  []string{"completed"},
		replyText: raw,
	}
	svc := newStubService(t, stub)

	result, err := svc.Analyze(context.Background(), greenPayload())
	require.NoError(t, err)

	assert.Equal(t, raw[:800], result.Teaser)
	assert.Equal(t, model.LeadCold, result.LeadTemperature)
	assert.Nil(t, result.EmailUser)
}

func TestAnalyzeTimeout(t *testing.T) {
	stub := &assistantStub{statuses: []string{"in_progress"}}
	svc := newStubService(t, stub)

	_, err := svc.Analyze(context.Background(), greenPayload())
	assert.ErrorIs(t, err, ErrAnalysisTimeout)
}

func TestAnalyzeFailedRun(t *testing.T) {
	stub := &assistantStub{statuses: []string{"failed"}}
	svc := newStubService(t, stub)

	_, err := svc.Analyze(context.Background(), greenPayload())
	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "failed", gatewayErr.State)
}

func TestAnalyzeUnreachableAssistant(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := &config.AIConfig{
		APIKey:       "test-key",
		AssistantID:  "asst_test",
		BaseURL:      srv.URL,
		PollInterval: 5 * time.Millisecond,
		MaxWait:      100 * time.Millisecond,
	}
	svc := NewAnalysisService(cfg, nil)

	_, err := svc.Analyze(context.Background(), greenPayload())
	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
}

func TestClassifyLead(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{level: "red", want: model.LeadHot},
		{level: "high", want: model.LeadHot},
		{level: "orange", want: model.LeadWarm},
		{level: "medium", want: model.LeadWarm},
		{level: "green", want: model.LeadCold},
		{level: "low", want: model.LeadCold},
		{level: "", want: model.LeadWarm},
		{level: "unknown", want: model.LeadWarm},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLead(tt.level), "level %q", tt.level)
	}
}
