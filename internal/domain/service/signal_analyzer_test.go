package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/service"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
	"github.com/clippintel/botscore/pkg/testutil"
)

func TestSignalAnalyzer_OrganicAccount(t *testing.T) {
	signals := service.NewSignalAnalyzer().Analyze(testutil.OrganicMetrics())

	assert.Equal(t, vo.BotSignals{
		FollowerQuality:     vo.FollowerQualityNormal,
		EngagementPattern:   vo.EngagementOrganic,
		ContentConsistency:  vo.ContentGood,
		AccountAge:          vo.AccountEstablished,
		ProfileCompleteness: vo.ProfileComplete,
	}, signals)
}

func TestSignalAnalyzer_Ladders(t *testing.T) {
	analyzer := service.NewSignalAnalyzer()

	tests := []struct {
		name   string
		mutate func(*model.AccountMetrics)
		check  func(t *testing.T, s vo.BotSignals)
	}{
		{"ratio below 0.1 is suspicious", func(m *model.AccountMetrics) { m.FollowerToFollowingRatio = 0.08 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.FollowerQualitySuspicious, s.FollowerQuality) }},
		{"ratio below 0.05 is fake", func(m *model.AccountMetrics) { m.FollowerToFollowingRatio = 0.04 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.FollowerQualityFake, s.FollowerQuality) }},
		{"weak network is suspicious", func(m *model.AccountMetrics) { m.NetworkHealth = 35 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.FollowerQualitySuspicious, s.FollowerQuality) }},
		{"concentrated audience is suspicious", func(m *model.AccountMetrics) { m.GeographicConcentration = 90 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.FollowerQualitySuspicious, s.FollowerQuality) }},
		{"bare profile means fake followers", func(m *model.AccountMetrics) { m.ProfileCompletionScore = 25 },
			func(t *testing.T, s vo.BotSignals) {
				assert.Equal(t, vo.FollowerQualityFake, s.FollowerQuality)
				assert.Equal(t, vo.ProfileMinimal, s.ProfileCompleteness)
			}},
		{"velocity above 10 is suspicious", func(m *model.AccountMetrics) { m.ViewVelocitySpikes = 12 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementSuspicious, s.EngagementPattern) }},
		{"velocity of exactly 15 is still suspicious", func(m *model.AccountMetrics) { m.ViewVelocitySpikes = 15 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementSuspicious, s.EngagementPattern) }},
		{"lag above 90 is suspicious", func(m *model.AccountMetrics) { m.EngagementLagTime = 100 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementSuspicious, s.EngagementPattern) }},
		{"engagement above 12 is suspicious", func(m *model.AccountMetrics) { m.EngagementRate = 13 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementSuspicious, s.EngagementPattern) }},
		{"engagement above 18 is automated", func(m *model.AccountMetrics) { m.EngagementRate = 19 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementAutomated, s.EngagementPattern) }},
		{"dead engagement on a large account is automated", func(m *model.AccountMetrics) {
			m.Followers = 6000
			m.EngagementRate = 0.05
		}, func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementAutomated, s.EngagementPattern) }},
		{"dead engagement on exactly 5000 followers stays organic", func(m *model.AccountMetrics) { m.EngagementRate = 0.05 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.EngagementOrganic, s.EngagementPattern) }},
		{"reposted content is inconsistent", func(m *model.AccountMetrics) { m.ContentOriginality = 25 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.ContentInconsistent, s.ContentConsistency) }},
		{"few posts for a big audience is inconsistent", func(m *model.AccountMetrics) {
			m.Posts = 8
			m.Followers = 12000
		}, func(t *testing.T, s vo.BotSignals) {
			assert.Equal(t, vo.ContentInconsistent, s.ContentConsistency)
			assert.Equal(t, vo.AccountVeryNew, s.AccountAge)
		}},
		{"under 20 posts is poor", func(m *model.AccountMetrics) { m.Posts = 15 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.ContentPoor, s.ContentConsistency) }},
		{"weak comments are poor", func(m *model.AccountMetrics) { m.CommentQuality = 45 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.ContentPoor, s.ContentConsistency) }},
		{"under 500 followers is very new", func(m *model.AccountMetrics) { m.Followers = 400 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.AccountVeryNew, s.AccountAge) }},
		{"under 1000 followers is recent", func(m *model.AccountMetrics) { m.Followers = 800 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.AccountRecent, s.AccountAge) }},
		{"irregular activity is recent", func(m *model.AccountMetrics) { m.ActivityConsistency = 50 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.AccountRecent, s.AccountAge) }},
		{"round-the-clock posting is very new", func(m *model.AccountMetrics) { m.TemporalPatterns = 25 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.AccountVeryNew, s.AccountAge) }},
		{"profile at 60 is incomplete", func(m *model.AccountMetrics) { m.ProfileCompletionScore = 60 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.ProfileIncomplete, s.ProfileCompleteness) }},
		{"profile at exactly 70 is complete", func(m *model.AccountMetrics) { m.ProfileCompletionScore = 70 },
			func(t *testing.T, s vo.BotSignals) { assert.Equal(t, vo.ProfileComplete, s.ProfileCompleteness) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.OrganicMetrics()
			tt.mutate(&m)
			tt.check(t, analyzer.Analyze(m))
		})
	}
}

func TestSignalAnalyzer_ZeroFollowingIsSafe(t *testing.T) {
	m := testutil.OrganicMetrics()
	m.Followers = 0
	m.Following = 0
	m = m.WithDerivedRates()

	signals := service.NewSignalAnalyzer().Analyze(m)
	assert.Equal(t, vo.FollowerQualityFake, signals.FollowerQuality)
}
