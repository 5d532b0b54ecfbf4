package service

import (
	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

const baseConfidence = 75

// ConfidenceEstimator rates how decisive the evidence was, in [65,98].
type ConfidenceEstimator struct{}

// NewConfidenceEstimator creates a new ConfidenceEstimator instance.
func NewConfidenceEstimator() *ConfidenceEstimator {
	return &ConfidenceEstimator{}
}

// Confidence starts from 75, rises for unambiguous bot evidence, and drops slightly for an
// engagement rate in the normal 3-8% band.
func (e *ConfidenceEstimator) Confidence(m model.AccountMetrics, _ vo.BotSignals) int {
	c := baseConfidence
	if m.ViewVelocitySpikes > 15 || m.GeographicConcentration > 95 {
		c += 20
	}
	if m.CommentQuality < 30 && m.EngagementLagTime > 120 {
		c += 15
	}
	if m.NetworkHealth < 30 {
		c += 10
	}
	if m.EngagementRate > 3 && m.EngagementRate < 8 {
		c -= 5
	}
	return clamp(c, model.MinConfidence, model.MaxConfidence)
}
