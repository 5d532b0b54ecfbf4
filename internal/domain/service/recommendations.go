package service

import (
	"fmt"

	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

// Recommendation texts. Tier directives lead each list.
const (
	RecRejectImmediately = "REJECT IMMEDIATELY - Multiple bot indicators detected"
	RecDoNotPay          = "DO NOT PAY - Account shows clear artificial engagement"
	RecViewManipulation  = "View manipulation detected - classic bot farm behavior"
	RecPurchasedGeo      = "Geographic concentration indicates purchased engagement"
	RecProfessionalFarm  = "Account shows professional bot farm characteristics"
	RecDocumentAccount   = "Document this account for future reference"

	RecManualReview       = "MANUAL REVIEW REQUIRED - Proceed with extreme caution"
	RecRequestVerify      = "Request additional verification before approval"
	RecChecklist          = "VERIFICATION CHECKLIST:"
	RecLiveVideoProof     = "Ask for live video proof of account control"
	RecExplainGeo         = "Request explanation for geographic audience concentration"
	RecAskPromotion       = "Ask about recent viral content or promotion methods"
	RecReducedPayout      = "Consider reduced payout until verification complete"
	RecPhoneVerification  = "Phone verification strongly recommended"
	RecApprove            = "APPROVE - Low risk profile detected"
	RecAuthentic          = "Account shows authentic engagement patterns"
	RecHighQuality        = "HIGH QUALITY - No significant red flags identified"
	RecPremiumCampaigns   = "Ideal for premium campaigns"
	RecMonitor            = "Monitor for any changes in engagement patterns"
	RecStandardOnboarding = "Proceed with standard onboarding process"
	RecVelocityInsight    = "AGENCY INSIGHT: View velocity spikes are primary bot indicator"
)

// criticalFlagVolume is the flag count from which a volume warning is appended.
const criticalFlagVolume = 5

// RecommendationEngine turns a tier and its evidence into ordered guidance.
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new RecommendationEngine instance.
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Recommend returns tier-specific guidance followed by the cross-tier lines. The fraud-risk
// cost line is always last, so the list is never empty.
func (e *RecommendationEngine) Recommend(level vo.RiskLevel, flags []vo.RedFlag, score int, m model.AccountMetrics) []string {
	var recs []string

	switch {
	case level.Equal(vo.RiskLevelHigh):
		recs = append(recs, RecRejectImmediately, RecDoNotPay)
		if m.ViewVelocitySpikes > 15 {
			recs = append(recs, RecViewManipulation)
		}
		if m.GeographicConcentration > 90 {
			recs = append(recs, RecPurchasedGeo)
		}
		if score >= 85 {
			recs = append(recs, RecProfessionalFarm)
		}
		recs = append(recs, RecDocumentAccount)

	case level.Equal(vo.RiskLevelMedium):
		recs = append(recs, RecManualReview, RecRequestVerify, RecChecklist)
		if m.CommentQuality < 70 {
			recs = append(recs, RecLiveVideoProof)
		}
		if m.GeographicConcentration > 75 {
			recs = append(recs, RecExplainGeo)
		}
		if m.ViewVelocitySpikes > 5 {
			recs = append(recs, RecAskPromotion)
		}
		recs = append(recs, RecReducedPayout, RecPhoneVerification)

	case level.Equal(vo.RiskLevelLow):
		recs = append(recs, RecApprove, RecAuthentic)
		if len(flags) == 0 {
			recs = append(recs, RecHighQuality, RecPremiumCampaigns)
		} else {
			recs = append(recs, RecMonitor)
		}
		recs = append(recs, RecStandardOnboarding)

	default:
		recs = append(recs, model.DegradedReviewRecommendation)
	}

	if m.ViewVelocitySpikes > 10 {
		recs = append(recs, RecVelocityInsight)
	}
	if len(flags) >= criticalFlagVolume {
		recs = append(recs, fmt.Sprintf("CRITICAL: %d red flags detected - extremely high risk", len(flags)))
	}
	recs = append(recs, fmt.Sprintf("FRAUD RISK: %s - Potential loss if account is fake", fraudRiskCost(score)))

	return recs
}

func fraudRiskCost(score int) string {
	switch {
	case score > 70:
		return "HIGH"
	case score > 40:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
