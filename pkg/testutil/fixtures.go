package testutil

import (
	"github.com/google/uuid"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/valueobject"
)

// Fixed UUIDs for deterministic testing
var (
	TestAnalysisID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestAnalysisID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// Fixed identities for deterministic testing
var (
	OrganicCreator = model.AccountIdentity{Handle: "organic.creator", Platform: valueobject.PlatformInstagram}
	BotFarmCreator = model.AccountIdentity{Handle: "growth_hack_2024", Platform: valueobject.PlatformTikTok}
)

// OrganicMetrics is a typical healthy account: followers 5000, following 1200, 3.5%
// engagement, no velocity spikes, a spread-out audience and good comments.
func OrganicMetrics() model.AccountMetrics {
	return model.AccountMetrics{
		Followers:               5000,
		Following:               1200,
		Posts:                   150,
		AvgLikes:                160,
		AvgComments:             15,
		EngagementRate:          3.5,
		ViewVelocitySpikes:      1,
		GeographicConcentration: 35,
		EngagementLagTime:       10,
		WatchTimeQuality:        75,
		CommentQuality:          80,
		ProfileCompletionScore:  85,
		ActivityConsistency:     80,
		NetworkHealth:           75,
		ContentOriginality:      85,
		TemporalPatterns:        80,
	}.WithDerivedRates()
}

// BotFarmMetrics is OrganicMetrics with the classic bot-farm pattern layered on top:
// 20 velocity spikes per hour, 96% single-country audience, 130 minute engagement lag
// and generic comments.
func BotFarmMetrics() model.AccountMetrics {
	m := OrganicMetrics()
	m.ViewVelocitySpikes = 20
	m.GeographicConcentration = 96
	m.EngagementLagTime = 130
	m.CommentQuality = 20
	return m
}

// SaturatedBotMetrics trips every rule in the score table, including both compound bonuses.
func SaturatedBotMetrics() model.AccountMetrics {
	return model.AccountMetrics{
		Followers:               80000,
		Following:               2000000,
		Posts:                   4,
		AvgLikes:                12000,
		AvgComments:             900,
		EngagementRate:          16.1,
		ViewVelocitySpikes:      25,
		GeographicConcentration: 99,
		EngagementLagTime:       180,
		WatchTimeQuality:        20,
		CommentQuality:          10,
		ProfileCompletionScore:  15,
		ActivityConsistency:     30,
		NetworkHealth:           12,
		ContentOriginality:      15,
		TemporalPatterns:        20,
	}.WithDerivedRates()
}
