package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAnalysisCompleted is emitted when an account analysis produced a score.
	EventTypeAnalysisCompleted = "botscore.analysis.completed"

	// EventTypeHighRiskAccountDetected is emitted when an account lands in the high tier.
	EventTypeHighRiskAccountDetected = "botscore.high_risk.detected"

	// EventTypeAnalysisDegraded is emitted when an analysis could not be computed.
	EventTypeAnalysisDegraded = "botscore.analysis.degraded"
)

// AnalysisCompleted is published for every scored analysis.
type AnalysisCompleted struct {
	AnalysisID  uuid.UUID `json:"analysis_id"`
	Handle      string    `json:"handle"`
	Platform    string    `json:"platform"`
	BotScore    int       `json:"bot_score"`
	RiskLevel   string    `json:"risk_level"`
	Verdict     string    `json:"verdict"`
	Confidence  int       `json:"confidence"`
	RedFlags    []string  `json:"red_flags"`
	CompletedAt time.Time `json:"completed_at"`
}

func (e AnalysisCompleted) EventType() string      { return EventTypeAnalysisCompleted }
func (e AnalysisCompleted) AggregateID() uuid.UUID { return e.AnalysisID }
func (e AnalysisCompleted) OccurredAt() time.Time  { return e.CompletedAt }

// HighRiskAccountDetected is published when an account is classified high risk, so campaign
// owners can block payouts before the applicant is onboarded.
type HighRiskAccountDetected struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	Handle     string    `json:"handle"`
	Platform   string    `json:"platform"`
	BotScore   int       `json:"bot_score"`
	RedFlags   []string  `json:"red_flags"`
	DetectedAt time.Time `json:"detected_at"`
}

func (e HighRiskAccountDetected) EventType() string      { return EventTypeHighRiskAccountDetected }
func (e HighRiskAccountDetected) AggregateID() uuid.UUID { return e.AnalysisID }
func (e HighRiskAccountDetected) OccurredAt() time.Time  { return e.DetectedAt }

// AnalysisDegraded is published when the metrics provider or the engine failed.
type AnalysisDegraded struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	Handle     string    `json:"handle"`
	Platform   string    `json:"platform"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failed_at"`
}

func (e AnalysisDegraded) EventType() string      { return EventTypeAnalysisDegraded }
func (e AnalysisDegraded) AggregateID() uuid.UUID { return e.AnalysisID }
func (e AnalysisDegraded) OccurredAt() time.Time  { return e.FailedAt }
