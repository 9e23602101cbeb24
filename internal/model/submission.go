package model

import "time"

// Submission is one respondent's completed questionnaire together with the
// computed score and risk classification. All server-generated fields (id,
// timestamps, session id) are set at intake and never trusted from the caller.
type Submission struct {
	ID        string    `json:"id" bson:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Identity
	UserEmail     string `json:"user_email" bson:"user_email"`
	UserFirstName string `json:"user_first_name" bson:"user_first_name"`
	UserLastName  string `json:"user_last_name" bson:"user_last_name"`
	CompanyName   string `json:"company_name" bson:"company_name"`
	CompanySize   string `json:"company_size,omitempty" bson:"company_size,omitempty"`
	Industry      string `json:"industry,omitempty" bson:"industry,omitempty"`
	Canton        string `json:"canton,omitempty" bson:"canton,omitempty"`

	// Answers, keyed by question key
	Answers map[string]string `json:"answers" bson:"answers"`

	// Scoring
	ScoreRaw        int     `json:"score_raw" bson:"score_raw"`
	ScoreNormalized float64 `json:"score_normalized" bson:"score_normalized"`
	RiskLevel       string  `json:"risk_level" bson:"risk_level"`

	// Processing status
	Status     string  `json:"status" bson:"status"`
	TeaserText *string `json:"teaser_text,omitempty" bson:"teaser_text,omitempty"`

	// Consent. ConsentTimestamp is present iff ConsentMarketing is true and
	// equals CreatedAt.
	ConsentMarketing bool       `json:"consent_marketing" bson:"consent_marketing"`
	ConsentTimestamp *time.Time `json:"consent_timestamp,omitempty" bson:"consent_timestamp,omitempty"`

	// Metadata
	SessionID   string `json:"session_id,omitempty" bson:"session_id,omitempty"`
	DeviceType  string `json:"device_type,omitempty" bson:"device_type,omitempty"`
	UTMSource   string `json:"utm_source,omitempty" bson:"utm_source,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty" bson:"utm_campaign,omitempty"`
}

// StatusPending is the processing status assigned to every new submission.
const StatusPending = "pending"

// SubmissionInput is the intake body for creating a submission
type SubmissionInput struct {
	UserEmail     string `json:"user_email"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	CompanyName   string `json:"company_name"`
	CompanySize   string `json:"company_size,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Canton        string `json:"canton,omitempty"`

	Answers map[string]string `json:"answers"`

	ScoreRaw        int     `json:"score_raw"`
	ScoreNormalized float64 `json:"score_normalized"`
	RiskLevel       string  `json:"risk_level"`

	ConsentMarketing bool `json:"consent_marketing"`

	DeviceType  string `json:"device_type,omitempty"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
}

// SubmissionStats is the aggregate view over all stored submissions.
// RiskLevels and Industries only carry keys that actually occur; levels with
// no submissions are absent rather than zero.
type SubmissionStats struct {
	TotalSubmissions int64            `json:"total_submissions"`
	RiskLevels       map[string]int64 `json:"risk_levels"`
	Industries       map[string]int64 `json:"industries"`
	AverageScore     float64          `json:"average_score"`
}

// StatusCheck is the legacy health-check record, append and read only
type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// StatusCheckInput is the intake body for creating a status check
type StatusCheckInput struct {
	ClientName string `json:"client_name"`
}

// EmailOutput records the generated follow-up emails for a submission
type EmailOutput struct {
	ID           string    `json:"id" bson:"id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	SubmissionID string    `json:"submission_id" bson:"submission_id"`

	// Generated content
	EmailUserMarkdown  string `json:"email_user_markdown,omitempty" bson:"email_user_markdown,omitempty"`
	EmailUserSubject   string `json:"email_user_subject,omitempty" bson:"email_user_subject,omitempty"`
	EmailSalesMarkdown string `json:"email_sales_markdown,omitempty" bson:"email_sales_markdown,omitempty"`
	EmailSalesSubject  string `json:"email_sales_subject,omitempty" bson:"email_sales_subject,omitempty"`

	// Send status
	UserEmailSent    bool       `json:"user_email_sent" bson:"user_email_sent"`
	UserEmailSentAt  *time.Time `json:"user_email_sent_at,omitempty" bson:"user_email_sent_at,omitempty"`
	SalesEmailSent   bool       `json:"sales_email_sent" bson:"sales_email_sent"`
	SalesEmailSentAt *time.Time `json:"sales_email_sent_at,omitempty" bson:"sales_email_sent_at,omitempty"`

	ErrorMessage string `json:"error_message,omitempty" bson:"error_message,omitempty"`
}

// EmailOutputInput is the intake body for recording email outputs
type EmailOutputInput struct {
	SubmissionID       string `json:"submission_id"`
	EmailUserMarkdown  string `json:"email_user_markdown"`
	EmailUserSubject   string `json:"email_user_subject"`
	EmailSalesMarkdown string `json:"email_sales_markdown"`
	EmailSalesSubject  string `json:"email_sales_subject"`
}
