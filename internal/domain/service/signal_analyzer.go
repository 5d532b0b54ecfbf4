package service

import (
	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

// SignalAnalyzer derives the five categorical bot signals from a metrics snapshot.
// Each signal is a threshold ladder checked most-severe first.
type SignalAnalyzer struct{}

// NewSignalAnalyzer creates a new SignalAnalyzer instance.
func NewSignalAnalyzer() *SignalAnalyzer {
	return &SignalAnalyzer{}
}

// Analyze derives signals. It is pure and never fails on validated metrics.
func (a *SignalAnalyzer) Analyze(m model.AccountMetrics) vo.BotSignals {
	return vo.BotSignals{
		FollowerQuality:     followerQuality(m),
		EngagementPattern:   engagementPattern(m),
		ContentConsistency:  contentConsistency(m),
		AccountAge:          accountAge(m),
		ProfileCompleteness: profileCompleteness(m),
	}
}

func followerQuality(m model.AccountMetrics) vo.FollowerQuality {
	switch {
	case m.FollowerToFollowingRatio < 0.05 ||
		m.GeographicConcentration > 95 ||
		m.ProfileCompletionScore < 30:
		return vo.FollowerQualityFake
	case m.FollowerToFollowingRatio < 0.1 ||
		m.GeographicConcentration > 85 ||
		m.NetworkHealth < 40:
		return vo.FollowerQualitySuspicious
	default:
		return vo.FollowerQualityNormal
	}
}

func engagementPattern(m model.AccountMetrics) vo.EngagementPattern {
	switch {
	case m.ViewVelocitySpikes > 15 ||
		m.EngagementLagTime > 120 ||
		m.EngagementRate > 18 ||
		(m.EngagementRate < 0.1 && m.Followers > 5000):
		return vo.EngagementAutomated
	case m.ViewVelocitySpikes > 10 ||
		m.EngagementLagTime > 90 ||
		m.EngagementRate > 12:
		return vo.EngagementSuspicious
	default:
		return vo.EngagementOrganic
	}
}

func contentConsistency(m model.AccountMetrics) vo.ContentConsistency {
	switch {
	case m.ContentOriginality < 30 || (m.Posts < 10 && m.Followers > 10000):
		return vo.ContentInconsistent
	case m.ContentOriginality < 50 || m.Posts < 20 || m.CommentQuality < 50:
		return vo.ContentPoor
	default:
		return vo.ContentGood
	}
}

// accountAge estimates an age class from activity; no creation date is available.
func accountAge(m model.AccountMetrics) vo.AccountAge {
	switch {
	case m.Followers < 500 || m.Posts < 10 || m.TemporalPatterns < 30:
		return vo.AccountVeryNew
	case m.Followers < 1000 || m.ActivityConsistency < 60 || m.TemporalPatterns < 50:
		return vo.AccountRecent
	default:
		return vo.AccountEstablished
	}
}

func profileCompleteness(m model.AccountMetrics) vo.ProfileCompleteness {
	switch {
	case m.ProfileCompletionScore < 40:
		return vo.ProfileMinimal
	case m.ProfileCompletionScore < 70:
		return vo.ProfileIncomplete
	default:
		return vo.ProfileComplete
	}
}
