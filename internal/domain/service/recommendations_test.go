package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/service"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
	"github.com/clippintel/botscore/pkg/testutil"
)

func TestRecommendationEngine_LowWithoutFlags(t *testing.T) {
	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelLow, nil, 0, testutil.OrganicMetrics())

	assert.Equal(t, []string{
		service.RecApprove,
		service.RecAuthentic,
		service.RecHighQuality,
		service.RecPremiumCampaigns,
		service.RecStandardOnboarding,
		"FRAUD RISK: LOW - Potential loss if account is fake",
	}, recs)
}

func TestRecommendationEngine_LowWithFlags(t *testing.T) {
	flags := []vo.RedFlag{{Code: "watch_time_quality", Severity: vo.SeverityWarning, Message: "x"}}
	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelLow, flags, 8, testutil.OrganicMetrics())

	assert.Equal(t, []string{
		service.RecApprove,
		service.RecAuthentic,
		service.RecMonitor,
		service.RecStandardOnboarding,
		"FRAUD RISK: LOW - Potential loss if account is fake",
	}, recs)
}

func TestRecommendationEngine_MediumChecklist(t *testing.T) {
	m := testutil.OrganicMetrics()
	m.CommentQuality = 65
	m.GeographicConcentration = 80
	m.ViewVelocitySpikes = 6

	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelMedium, nil, 50, m)

	assert.Equal(t, []string{
		service.RecManualReview,
		service.RecRequestVerify,
		service.RecChecklist,
		service.RecLiveVideoProof,
		service.RecExplainGeo,
		service.RecAskPromotion,
		service.RecReducedPayout,
		service.RecPhoneVerification,
		"FRAUD RISK: MEDIUM - Potential loss if account is fake",
	}, recs)
}

func TestRecommendationEngine_MediumOmitsSettledItems(t *testing.T) {
	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelMedium, nil, 45, testutil.OrganicMetrics())

	assert.NotContains(t, recs, service.RecLiveVideoProof)
	assert.NotContains(t, recs, service.RecExplainGeo)
	assert.NotContains(t, recs, service.RecAskPromotion)
	assert.Contains(t, recs, service.RecPhoneVerification)
}

func TestRecommendationEngine_HighBotFarm(t *testing.T) {
	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelHigh, make([]vo.RedFlag, 4), 97, testutil.BotFarmMetrics())

	assert.Equal(t, []string{
		service.RecRejectImmediately,
		service.RecDoNotPay,
		service.RecViewManipulation,
		service.RecPurchasedGeo,
		service.RecProfessionalFarm,
		service.RecDocumentAccount,
		service.RecVelocityInsight,
		"FRAUD RISK: HIGH - Potential loss if account is fake",
	}, recs)
}

func TestRecommendationEngine_CriticalVolume(t *testing.T) {
	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelHigh, make([]vo.RedFlag, 5), 80, testutil.OrganicMetrics())

	assert.Contains(t, recs, "CRITICAL: 5 red flags detected - extremely high risk")
	assert.NotContains(t, recs, service.RecProfessionalFarm)
}

func TestRecommendationEngine_UnknownTierIsNeverEmpty(t *testing.T) {
	recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelUnknown, nil, 0, model.AccountMetrics{})

	assert.Equal(t, []string{
		model.DegradedReviewRecommendation,
		"FRAUD RISK: LOW - Potential loss if account is fake",
	}, recs)
}

func TestRecommendationEngine_FraudRiskCost(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{40, "LOW"},
		{41, "MEDIUM"},
		{70, "MEDIUM"},
		{71, "HIGH"},
	}
	for _, tt := range tests {
		recs := service.NewRecommendationEngine().Recommend(vo.RiskLevelMedium, nil, tt.score, testutil.OrganicMetrics())
		assert.Equal(t, "FRAUD RISK: "+tt.want+" - Potential loss if account is fake", recs[len(recs)-1], "score %d", tt.score)
	}
}
