package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/clippintel/botscore/internal/domain/event"
	"github.com/clippintel/botscore/internal/domain/valueobject"
	"github.com/clippintel/botscore/pkg/events"
)

// ErrAnalysisNotFound is returned by repositories when no stored analysis matches.
var ErrAnalysisNotFound = errors.New("analysis not found")

const (
	MinConfidence = 65
	MaxConfidence = 98
)

// Degraded results carry fixed guidance instead of tier-specific recommendations.
const (
	DegradedReviewRecommendation = "MANUAL REVIEW REQUIRED - automated analysis unavailable"
	DegradedRetryRecommendation  = "Retry the analysis once the metrics provider recovers"
)

// BotAnalysisResult is the aggregate root for one account analysis. It is never mutated
// after construction.
type BotAnalysisResult struct {
	pending events.Buffer

	analysisDate    time.Time
	account         AccountIdentity
	riskLevel       valueobject.RiskLevel
	verdict         valueobject.Verdict
	signals         valueobject.BotSignals
	metrics         AccountMetrics
	scoreBreakdown  []valueobject.ScoreContribution
	redFlags        []valueobject.RedFlag
	recommendations []string
	processingTime  time.Duration
	botScore        int
	confidence      int
	degraded        bool
	id              uuid.UUID
}

// AnalysisParams carries the engine output for a successful analysis.
type AnalysisParams struct {
	Account         AccountIdentity
	Metrics         AccountMetrics
	Signals         valueobject.BotSignals
	ScoreBreakdown  []valueobject.ScoreContribution
	RedFlags        []valueobject.RedFlag
	Recommendations []string
	BotScore        int
	Confidence      int
	ProcessingTime  time.Duration
}

// NewAnalysisResult builds a scored result. The risk tier and verdict are derived from the
// score so they can never disagree with it.
func NewAnalysisResult(p AnalysisParams) (*BotAnalysisResult, error) {
	if p.Account.Handle == "" {
		return nil, fmt.Errorf("account handle is required")
	}
	if p.BotScore < 0 || p.BotScore > 100 {
		return nil, fmt.Errorf("bot score must be between 0 and 100, got %d", p.BotScore)
	}
	if p.Confidence < MinConfidence || p.Confidence > MaxConfidence {
		return nil, fmt.Errorf("confidence must be between %d and %d, got %d", MinConfidence, MaxConfidence, p.Confidence)
	}
	if len(p.Recommendations) == 0 {
		return nil, fmt.Errorf("at least one recommendation is required")
	}

	level := valueobject.RiskLevelFromScore(p.BotScore)
	r := &BotAnalysisResult{
		id:              uuid.New(),
		account:         p.Account,
		botScore:        p.BotScore,
		riskLevel:       level,
		verdict:         valueobject.VerdictFromRiskLevel(level),
		signals:         p.Signals,
		metrics:         p.Metrics,
		scoreBreakdown:  nonNil(p.ScoreBreakdown),
		redFlags:        nonNil(p.RedFlags),
		recommendations: p.Recommendations,
		confidence:      p.Confidence,
		analysisDate:    time.Now().UTC(),
		processingTime:  p.ProcessingTime,
	}

	r.pending.Record(event.AnalysisCompleted{
		AnalysisID:  r.id,
		Handle:      r.account.Handle,
		Platform:    r.account.Platform.String(),
		BotScore:    r.botScore,
		RiskLevel:   r.riskLevel.String(),
		Verdict:     r.verdict.String(),
		Confidence:  r.confidence,
		RedFlags:    r.RedFlags(),
		CompletedAt: r.analysisDate,
	})
	if level.Equal(valueobject.RiskLevelHigh) {
		r.pending.Record(event.HighRiskAccountDetected{
			AnalysisID: r.id,
			Handle:     r.account.Handle,
			Platform:   r.account.Platform.String(),
			BotScore:   r.botScore,
			RedFlags:   r.RedFlags(),
			DetectedAt: r.analysisDate,
		})
	}
	return r, nil
}

// NewDegradedResult builds the well-formed result returned when an analysis could not be
// computed. reason is rendered after the "ANALYSIS FAILED:" marker. metrics may be nil when
// the snapshot was never obtained.
func NewDegradedResult(account AccountIdentity, reason string, metrics *AccountMetrics, processingTime time.Duration) *BotAnalysisResult {
	r := &BotAnalysisResult{
		id:             uuid.New(),
		account:        account,
		riskLevel:      valueobject.RiskLevelUnknown,
		verdict:        valueobject.VerdictReview,
		scoreBreakdown: []valueobject.ScoreContribution{},
		redFlags: []valueobject.RedFlag{{
			Code:     "analysis_failed",
			Severity: valueobject.SeverityFailure,
			Message:  reason,
		}},
		recommendations: []string{DegradedReviewRecommendation, DegradedRetryRecommendation},
		confidence:      MinConfidence,
		analysisDate:    time.Now().UTC(),
		processingTime:  processingTime,
		degraded:        true,
	}
	if metrics != nil {
		r.metrics = *metrics
	}

	r.pending.Record(event.AnalysisDegraded{
		AnalysisID: r.id,
		Handle:     account.Handle,
		Platform:   account.Platform.String(),
		Reason:     reason,
		FailedAt:   r.analysisDate,
	})
	return r
}

// ReconstructParams holds persisted state.
type ReconstructParams struct {
	AnalysisDate    time.Time
	Account         AccountIdentity
	RiskLevel       valueobject.RiskLevel
	Verdict         valueobject.Verdict
	Signals         valueobject.BotSignals
	Metrics         AccountMetrics
	ScoreBreakdown  []valueobject.ScoreContribution
	RedFlags        []valueobject.RedFlag
	Recommendations []string
	ProcessingTime  time.Duration
	BotScore        int
	Confidence      int
	Degraded        bool
	ID              uuid.UUID
}

// Reconstruct rebuilds a result from persisted data (no validation, no events).
func Reconstruct(p ReconstructParams) *BotAnalysisResult {
	return &BotAnalysisResult{
		id:              p.ID,
		account:         p.Account,
		botScore:        p.BotScore,
		riskLevel:       p.RiskLevel,
		verdict:         p.Verdict,
		signals:         p.Signals,
		metrics:         p.Metrics,
		scoreBreakdown:  nonNil(p.ScoreBreakdown),
		redFlags:        nonNil(p.RedFlags),
		recommendations: p.Recommendations,
		confidence:      p.Confidence,
		analysisDate:    p.AnalysisDate,
		processingTime:  p.ProcessingTime,
		degraded:        p.Degraded,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// --- Accessors ---

func (r *BotAnalysisResult) ID() uuid.UUID                    { return r.id }
func (r *BotAnalysisResult) Account() AccountIdentity         { return r.account }
func (r *BotAnalysisResult) BotScore() int                    { return r.botScore }
func (r *BotAnalysisResult) RiskLevel() valueobject.RiskLevel { return r.riskLevel }
func (r *BotAnalysisResult) Verdict() valueobject.Verdict     { return r.verdict }
func (r *BotAnalysisResult) Signals() valueobject.BotSignals  { return r.signals }
func (r *BotAnalysisResult) Metrics() AccountMetrics          { return r.metrics }
func (r *BotAnalysisResult) Flags() []valueobject.RedFlag     { return r.redFlags }
func (r *BotAnalysisResult) Recommendations() []string        { return r.recommendations }
func (r *BotAnalysisResult) Confidence() int                  { return r.confidence }
func (r *BotAnalysisResult) AnalysisDate() time.Time          { return r.analysisDate }
func (r *BotAnalysisResult) ProcessingTime() time.Duration    { return r.processingTime }
func (r *BotAnalysisResult) IsDegraded() bool                 { return r.degraded }
func (r *BotAnalysisResult) ScoreBreakdown() []valueobject.ScoreContribution {
	return r.scoreBreakdown
}

// RedFlags returns the rendered flags, e.g. "CRITICAL: ...". Never nil.
func (r *BotAnalysisResult) RedFlags() []string {
	return valueobject.RenderRedFlags(r.redFlags)
}

// ProcessingTimeSeconds is the elapsed analysis time in seconds, rounded to milliseconds.
func (r *BotAnalysisResult) ProcessingTimeSeconds() float64 {
	return math.Round(r.processingTime.Seconds()*1000) / 1000
}

// DomainEvents returns the events raised at construction and clears them, so a second call
// returns nil.
func (r *BotAnalysisResult) DomainEvents() []events.DomainEvent {
	return r.pending.Drain()
}
