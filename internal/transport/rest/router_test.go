package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlpdform/internal/config"
	"nlpdform/internal/model"
	"nlpdform/internal/repository"
	"nlpdform/internal/service"
)

// newTestRouter wires the full API against the in-memory stores with the
// assistant unconfigured, the same shape a deployment without MONGO_URI and
// OPENAI_API_KEY gets.
func newTestRouter() http.Handler {
	submissionRepo := repository.NewMemorySubmissionRepo()
	return NewRouter(&Container{
		SubmissionService: service.NewSubmissionService(submissionRepo),
		StatsService:      service.NewStatsService(submissionRepo),
		AnalysisService:   service.NewAnalysisService(&config.AIConfig{}, nil),
		StatusService:     service.NewStatusService(repository.NewMemoryStatusCheckRepo()),
		EmailService:      service.NewEmailService(repository.NewMemoryEmailOutputRepo()),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func submissionBody(riskLevel string) map[string]interface{} {
	return map[string]interface{}{
		"user_email":       "alice@example.com",
		"user_first_name":  "Alice",
		"user_last_name":   "Martin",
		"company_name":     "Acme",
		"industry":         "finance",
		"answers":          map[string]string{"q1": "yes"},
		"score_raw":        3,
		"score_normalized": 2.5,
		"risk_level":       riskLevel,
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRootEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "GET", "/api/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Contains(t, body["message"], "running")
}

func TestCreateSubmission(t *testing.T) {
	router := newTestRouter()

	body := submissionBody("green")
	body["consent_marketing"] = true

	rec := doJSON(t, router, "POST", "/api/submissions", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sub model.Submission
	decodeBody(t, rec, &sub)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "pending", sub.Status)
	assert.NotNil(t, sub.ConsentTimestamp)

	// The stored record is retrievable under the generated id
	rec = doJSON(t, router, "GET", "/api/submissions/"+sub.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSubmissionValidation(t *testing.T) {
	router := newTestRouter()

	body := submissionBody("green")
	body["user_email"] = "not-an-email"

	rec := doJSON(t, router, "POST", "/api/submissions", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody map[string]string
	decodeBody(t, rec, &errBody)
	assert.Contains(t, errBody["error"], "user_email")
}

func TestCreateSubmissionMalformedBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/api/submissions", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSubmissionNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "GET", "/api/submissions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSubmissions(t *testing.T) {
	router := newTestRouter()

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, "POST", "/api/submissions", submissionBody("green"))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, "GET", "/api/submissions?limit=2&skip=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var subs []model.Submission
	decodeBody(t, rec, &subs)
	assert.Len(t, subs, 2)
}

func TestUpdateSubmissionStatus(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/api/submissions", submissionBody("red"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var sub model.Submission
	decodeBody(t, rec, &sub)

	rec = doJSON(t, router, "PATCH", fmt.Sprintf("/api/submissions/%s/status", sub.ID), map[string]string{
		"status":      "processed",
		"teaser_text": "voilà",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/submissions/"+sub.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &sub)
	assert.Equal(t, "processed", sub.Status)
	require.NotNil(t, sub.TeaserText)
	assert.Equal(t, "voilà", *sub.TeaserText)

	rec = doJSON(t, router, "PATCH", "/api/submissions/unknown/status", map[string]string{"status": "processed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter()

	for _, level := range []string{"red", "red", "green"} {
		rec := doJSON(t, router, "POST", "/api/submissions", submissionBody(level))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.SubmissionStats
	decodeBody(t, rec, &stats)
	assert.Equal(t, int64(3), stats.TotalSubmissions)
	assert.Equal(t, map[string]int64{"red": 2, "green": 1}, stats.RiskLevels)
	assert.Equal(t, map[string]int64{"finance": 3}, stats.Industries)
	assert.Equal(t, 2.5, stats.AverageScore)
}

func TestAnalyzeEndpointFallback(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/api/analyze", map[string]interface{}{
		"payload": map[string]interface{}{
			"user":      map[string]string{"first_name": "Alice", "company": "Acme"},
			"answers":   map[string]string{"q1": "yes"},
			"score":     map[string]interface{}{"raw": 9, "normalized": 8.0, "level": "red"},
			"has_email": true,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.AnalysisResult
	decodeBody(t, rec, &result)
	assert.NotEmpty(t, result.Teaser)
	assert.Equal(t, model.LeadHot, result.LeadTemperature)
	assert.Nil(t, result.EmailUser)
}

func TestAnalyzeEndpointMissingPayload(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/api/analyze", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailOutputEndpoints(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/api/emails", map[string]string{
		"submission_id":      "sub-1",
		"email_user_subject": "Votre rapport nLPD",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var output model.EmailOutput
	decodeBody(t, rec, &output)
	assert.NotEmpty(t, output.ID)
	assert.Equal(t, "sub-1", output.SubmissionID)

	rec = doJSON(t, router, "GET", "/api/emails/sub-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/emails/sub-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusCheckEndpoints(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/api/status", map[string]string{"client_name": "monitor"})
	require.Equal(t, http.StatusOK, rec.Code)

	var check model.StatusCheck
	decodeBody(t, rec, &check)
	assert.NotEmpty(t, check.ID)
	assert.Equal(t, "monitor", check.ClientName)

	rec = doJSON(t, router, "GET", "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var checks []model.StatusCheck
	decodeBody(t, rec, &checks)
	assert.Len(t, checks, 1)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("OPTIONS", "/api/submissions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
