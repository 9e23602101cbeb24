package model

// Lead temperatures, the sales-prioritization tags derived from risk level
const (
	LeadHot  = "HOT"
	LeadWarm = "WARM"
	LeadCold = "COLD"
)

// Risk levels produced by the questionnaire scoring
const (
	RiskGreen  = "green"
	RiskOrange = "orange"
	RiskRed    = "red"
)

// AnalysisUser identifies the respondent inside an analysis payload
type AnalysisUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Company   string `json:"company"`
}

// AnalysisScore carries the questionnaire score inside an analysis payload
type AnalysisScore struct {
	Raw        int     `json:"raw"`
	Normalized float64 `json:"normalized"`
	Level      string  `json:"level"`
}

// AnalysisPayload is what gets forwarded to the assistant: respondent
// identity, the raw answers, and the computed score
type AnalysisPayload struct {
	User     AnalysisUser      `json:"user"`
	Answers  map[string]string `json:"answers"`
	Score    AnalysisScore     `json:"score"`
	HasEmail bool              `json:"has_email"`
}

// AnalysisResult is the outcome of an analysis, whether AI-generated,
// degraded (unparseable assistant output) or templated fallback. The email
// bodies are passed through unvalidated and are null when absent.
type AnalysisResult struct {
	Teaser          string  `json:"teaser"`
	LeadTemperature string  `json:"lead_temperature"`
	EmailUser       *string `json:"email_user"`
	EmailSales      *string `json:"email_sales"`
}
