package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/domain/event"
	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/valueobject"
)

func testAccount(t *testing.T) model.AccountIdentity {
	t.Helper()
	id, err := model.NewAccountIdentity("creator", valueobject.PlatformTikTok)
	require.NoError(t, err)
	return id
}

func validParams(t *testing.T, score int) model.AnalysisParams {
	t.Helper()
	return model.AnalysisParams{
		Account:         testAccount(t),
		BotScore:        score,
		Confidence:      75,
		Recommendations: []string{"APPROVE - Low risk profile detected"},
		ProcessingTime:  1234567 * time.Microsecond,
	}
}

func TestNewAnalysisResult_LowRisk(t *testing.T) {
	r, err := model.NewAnalysisResult(validParams(t, 12))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, valueobject.RiskLevelLow, r.RiskLevel())
	assert.Equal(t, valueobject.VerdictApprove, r.Verdict())
	assert.False(t, r.IsDegraded())
	assert.NotNil(t, r.RedFlags())
	assert.Empty(t, r.RedFlags())
	assert.NotNil(t, r.ScoreBreakdown())
	assert.Equal(t, 1.235, r.ProcessingTimeSeconds())

	evts := r.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.EventTypeAnalysisCompleted, evts[0].EventType())
	assert.Equal(t, r.ID(), evts[0].AggregateID())
	assert.Empty(t, r.DomainEvents(), "events are drained")
}

func TestNewAnalysisResult_HighRiskEmitsDetection(t *testing.T) {
	p := validParams(t, 90)
	p.RedFlags = []valueobject.RedFlag{{Code: "network_health", Severity: valueobject.SeverityCritical, Message: "Account primarily connects to other suspicious accounts"}}
	r, err := model.NewAnalysisResult(p)
	require.NoError(t, err)

	assert.Equal(t, valueobject.RiskLevelHigh, r.RiskLevel())
	assert.Equal(t, valueobject.VerdictReject, r.Verdict())
	assert.Equal(t, []string{"CRITICAL: Account primarily connects to other suspicious accounts"}, r.RedFlags())

	evts := r.DomainEvents()
	require.Len(t, evts, 2)
	detected, ok := evts[1].(event.HighRiskAccountDetected)
	require.True(t, ok)
	assert.Equal(t, 90, detected.BotScore)
	assert.Equal(t, "tiktok", detected.Platform)
}

func TestNewAnalysisResult_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.AnalysisParams)
		wantErr string
	}{
		{name: "score too high", mutate: func(p *model.AnalysisParams) { p.BotScore = 101 }, wantErr: "bot score must be between 0 and 100"},
		{name: "score negative", mutate: func(p *model.AnalysisParams) { p.BotScore = -1 }, wantErr: "bot score must be between 0 and 100"},
		{name: "confidence below floor", mutate: func(p *model.AnalysisParams) { p.Confidence = 64 }, wantErr: "confidence must be between 65 and 98"},
		{name: "confidence above ceiling", mutate: func(p *model.AnalysisParams) { p.Confidence = 99 }, wantErr: "confidence must be between 65 and 98"},
		{name: "no recommendations", mutate: func(p *model.AnalysisParams) { p.Recommendations = nil }, wantErr: "at least one recommendation"},
		{name: "no account", mutate: func(p *model.AnalysisParams) { p.Account = model.AccountIdentity{} }, wantErr: "account handle is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams(t, 50)
			tt.mutate(&p)
			_, err := model.NewAnalysisResult(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDegradedResult(t *testing.T) {
	r := model.NewDegradedResult(testAccount(t), "provider unavailable: connection refused", nil, 50*time.Millisecond)

	assert.True(t, r.IsDegraded())
	assert.Equal(t, 0, r.BotScore())
	assert.Equal(t, valueobject.RiskLevelUnknown, r.RiskLevel())
	assert.Equal(t, valueobject.VerdictReview, r.Verdict())
	assert.True(t, r.Signals().IsZero())
	assert.Equal(t, model.MinConfidence, r.Confidence())
	assert.Equal(t, []string{"ANALYSIS FAILED: provider unavailable: connection refused"}, r.RedFlags())
	assert.Equal(t, []string{model.DegradedReviewRecommendation, model.DegradedRetryRecommendation}, r.Recommendations())

	evts := r.DomainEvents()
	require.Len(t, evts, 1)
	degraded, ok := evts[0].(event.AnalysisDegraded)
	require.True(t, ok)
	assert.Equal(t, "provider unavailable: connection refused", degraded.Reason)
}

func TestReconstruct_NoEvents(t *testing.T) {
	id := uuid.New()
	r := model.Reconstruct(model.ReconstructParams{
		ID:              id,
		Account:         testAccount(t),
		BotScore:        80,
		RiskLevel:       valueobject.RiskLevelHigh,
		Verdict:         valueobject.VerdictReject,
		Recommendations: []string{"REJECT IMMEDIATELY - Multiple bot indicators detected"},
		Confidence:      95,
		AnalysisDate:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	assert.Equal(t, id, r.ID())
	assert.Equal(t, 80, r.BotScore())
	assert.Empty(t, r.DomainEvents())
	assert.NotNil(t, r.Flags())
}
