package models

// InsightKind classifies a generated insight.
type InsightKind string

const (
	InsightKindForecast   InsightKind = "forecast"
	InsightKindAnomaly    InsightKind = "anomaly"
	InsightKindTrend      InsightKind = "trend"
	InsightKindRisk       InsightKind = "risk"
	InsightKindSuggestion InsightKind = "suggestion"
)

// InsightSeverity indicates how urgently an insight needs attention.
// For risk and anomaly insights it is derived from the numeric payload,
// never set independently.
type InsightSeverity string

const (
	SeverityInfo    InsightSeverity = "info"
	SeverityWarning InsightSeverity = "warning"
	SeverityDanger  InsightSeverity = "danger"
)

// Insight is a generated observation about a user's spending. Rows are
// created by the insight service during a generation pass, flipped to
// read by the user, and removed by the 30-day retention sweep.
type Insight struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;index:idx_insights_user_created" json:"user_id"`
	Kind     InsightKind     `gorm:"size:20;not null;index" json:"kind"`
	Severity InsightSeverity `gorm:"size:10;not null;default:info" json:"severity"`
	Title    string          `gorm:"size:200;not null" json:"title"`
	Message  string          `gorm:"not null" json:"message"`

	// Calendar month the insight applies to.
	AppliesToMonth int `json:"applies_to_month,omitempty"`
	AppliesToYear  int `json:"applies_to_year,omitempty"`

	// Numeric payload, in minor currency units where monetary.
	PredictedAmount *int64 `gorm:"type:bigint" json:"predicted_amount,omitempty"`
	ActualAmount    *int64 `gorm:"type:bigint" json:"actual_amount,omitempty"`
	RiskScore       *int   `json:"risk_score,omitempty"`

	IsRead bool `gorm:"default:false" json:"is_read"`
}
