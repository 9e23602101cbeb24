package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"

	"nlpdform/internal/cache"
	"nlpdform/internal/config"
	"nlpdform/internal/model"
)

// teaserMaxLen caps the teaser when the assistant's reply cannot be parsed
// and the raw text is used instead
const teaserMaxLen = 800

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// AnalysisService proxies the external AI assistant to turn a submission's
// answers and score into a teaser and a lead classification. When the
// assistant is not configured it answers from deterministic templates
// instead, so the endpoint works in every deployment.
type AnalysisService struct {
	cfg    *config.AIConfig
	client *AssistantClient
	cache  cache.AnalysisCache // optional, nil when Redis is not configured
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(cfg *config.AIConfig, resultCache cache.AnalysisCache) *AnalysisService {
	return &AnalysisService{
		cfg:    cfg,
		client: NewAssistantClient(cfg),
		cache:  resultCache,
	}
}

// assistantAnalysis is the shape we try to read out of the assistant's
// free-form JSON reply. Every field is optional.
type assistantAnalysis struct {
	Teaser          string  `json:"teaser"`
	Summary         string  `json:"summary"`
	LeadTemperature string  `json:"lead_temperature"`
	EmailUser       *string `json:"email_user"`
	EmailSales      *string `json:"email_sales"`
}

// Analyze produces the analysis for a payload. Errors are limited to
// ErrAnalysisTimeout and *GatewayError; every other outcome, including an
// unparseable assistant reply, is a (possibly degraded) success.
func (s *AnalysisService) Analyze(ctx context.Context, payload *model.AnalysisPayload) (*model.AnalysisResult, error) {
	if !s.cfg.IsEnabled() {
		log.Printf("[Analysis] assistant not configured, using fallback response")
		return s.fallbackResponse(payload), nil
	}

	key := payloadKey(payload)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[Analysis] cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err := s.runAssistant(ctx, payload)
	if err != nil {
		if err == ErrAnalysisTimeout {
			return nil, err
		}
		if _, ok := err.(*GatewayError); ok {
			return nil, err
		}
		log.Printf("[Analysis] ERROR: assistant call failed: %v", err)
		return nil, &GatewayError{State: "error", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			log.Printf("[Analysis] cache write failed: %v", err)
		}
	}
	return result, nil
}

// runAssistant drives one full assistant round trip: thread, message, run,
// bounded poll, reply extraction.
func (s *AnalysisService) runAssistant(ctx context.Context, payload *model.AnalysisPayload) (*model.AnalysisResult, error) {
	threadID, err := s.client.CreateThread(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := s.client.AddMessage(ctx, threadID, string(body)); err != nil {
		return nil, err
	}

	run, err := s.client.StartRun(ctx, threadID)
	if err != nil {
		return nil, err
	}

	run, err = s.waitForRun(ctx, threadID, run)
	if err != nil {
		return nil, err
	}
	if run.Status != runStatusCompleted {
		return nil, &GatewayError{State: run.Status}
	}

	text, err := s.client.LatestAssistantReply(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return s.parseReply(payload, text), nil
}

// waitForRun polls the run until it leaves the pending states, bounded by
// the configured maximum wait. The wait selects on the context so a caller
// hangup stops the polling immediately.
func (s *AnalysisService) waitForRun(ctx context.Context, threadID string, run *AssistantRun) (*AssistantRun, error) {
	if !run.Pending() {
		return run, nil
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.cfg.MaxWait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			log.Printf("[Analysis] run %s still %s after %s, giving up", run.ID, run.Status, s.cfg.MaxWait)
			return nil, ErrAnalysisTimeout
		case <-ticker.C:
			next, err := s.client.GetRun(ctx, threadID, run.ID)
			if err != nil {
				return nil, err
			}
			run = next
			if !run.Pending() {
				return run, nil
			}
		}
	}
}

// parseReply turns the assistant's reply text into an AnalysisResult. An
// unparseable reply is not an error: the raw text becomes the teaser and the
// lead temperature falls back to the deterministic mapping.
func (s *AnalysisService) parseReply(payload *model.AnalysisPayload, text string) *model.AnalysisResult {
	jsonStr := text
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		jsonStr = m[1]
	}

	var reply assistantAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &reply); err != nil {
		log.Printf("[Analysis] reply is not valid JSON, using raw text: %v", err)
		return &model.AnalysisResult{
			Teaser:          truncate(text, teaserMaxLen),
			LeadTemperature: ClassifyLead(payload.Score.Level),
		}
	}

	teaser := reply.Teaser
	if teaser == "" {
		teaser = reply.Summary
	}
	if teaser == "" {
		teaser = s.fallbackResponse(payload).Teaser
	}

	temperature := reply.LeadTemperature
	if temperature == "" {
		temperature = ClassifyLead(payload.Score.Level)
	}

	return &model.AnalysisResult{
		Teaser:          teaser,
		LeadTemperature: temperature,
		EmailUser:       reply.EmailUser,
		EmailSales:      reply.EmailSales,
	}
}

// fallbackResponse builds the deterministic templated analysis used when the
// assistant is unavailable or stays silent on a field
func (s *AnalysisService) fallbackResponse(payload *model.AnalysisPayload) *model.AnalysisResult {
	teasers := map[string]string{
		model.RiskGreen: fmt.Sprintf(
			"Bravo %s! Votre organisation %s obtient un score de %.1f/10, ce qui indique une bonne maîtrise des exigences nLPD. Quelques ajustements mineurs pourraient renforcer encore votre conformité. Consultez votre email pour un rapport détaillé avec des recommandations personnalisées.",
			payload.User.FirstName, payload.User.Company, payload.Score.Normalized),
		model.RiskOrange: fmt.Sprintf(
			"%s, votre organisation %s obtient un score de %.1f/10. Des lacunes significatives ont été identifiées dans votre conformité nLPD. Sans action corrective, vous pourriez être exposé en cas d'audit du PFPDT ou d'incident de sécurité. Consultez votre email pour découvrir vos 3 priorités d'action.",
			payload.User.FirstName, payload.User.Company, payload.Score.Normalized),
		model.RiskRed: fmt.Sprintf(
			"Attention %s! Votre organisation %s présente un score de %.1f/10, révélant des failles critiques dans votre conformité nLPD. Un audit du PFPDT pourrait entraîner des sanctions allant jusqu'à CHF 250'000. Une mise en conformité urgente est recommandée. Consultez votre email pour un plan d'action prioritaire.",
			payload.User.FirstName, payload.User.Company, payload.Score.Normalized),
	}

	teaser, ok := teasers[payload.Score.Level]
	if !ok {
		teaser = teasers[model.RiskOrange]
	}

	return &model.AnalysisResult{
		Teaser:          teaser,
		LeadTemperature: ClassifyLead(payload.Score.Level),
	}
}

// ClassifyLead maps a risk level onto a lead temperature. Unrecognized
// levels are treated as WARM.
func ClassifyLead(riskLevel string) string {
	switch riskLevel {
	case model.RiskRed, "high":
		return model.LeadHot
	case model.RiskOrange, "medium":
		return model.LeadWarm
	case model.RiskGreen, "low":
		return model.LeadCold
	default:
		return model.LeadWarm
	}
}

// payloadKey derives the cache key for a payload from its JSON form
func payloadKey(payload *model.AnalysisPayload) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
