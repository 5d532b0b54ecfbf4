package service_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/service"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
	"github.com/clippintel/botscore/pkg/testutil"
)

func TestEngine_BotFarmIsHighRisk(t *testing.T) {
	a := service.NewEngine().Evaluate(testutil.BotFarmMetrics())

	assert.Equal(t, vo.RiskLevelHigh, a.RiskLevel)
	assert.GreaterOrEqual(t, a.BotScore, 75)
	require.GreaterOrEqual(t, len(a.RedFlags), 4)

	rendered := vo.RenderRedFlags(a.RedFlags)
	assert.Contains(t, rendered, "CRITICAL: Extreme view velocity spikes detected (20 per hour)")
	assert.Contains(t, rendered, "CRITICAL: 96% of audience from single country")
	assert.Equal(t, service.RecRejectImmediately, a.Recommendations[0])
	assert.Equal(t, 98, a.Confidence)
}

func TestEngine_OrganicIsLowRisk(t *testing.T) {
	a := service.NewEngine().Evaluate(testutil.OrganicMetrics())

	assert.Equal(t, vo.RiskLevelLow, a.RiskLevel)
	assert.Equal(t, 0, a.BotScore)
	assert.Empty(t, a.RedFlags)
	assert.Contains(t, a.Recommendations, service.RecApprove)
	assert.Equal(t, 70, a.Confidence)
}

func TestEngine_ZeroFollowingDoesNotPanic(t *testing.T) {
	tests := []struct {
		name      string
		followers int64
	}{
		{"followers but following nobody", 2500},
		{"empty account", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.OrganicMetrics()
			m.Followers = tt.followers
			m.Following = 0
			m = m.WithDerivedRates()

			var a service.Assessment
			require.NotPanics(t, func() { a = service.NewEngine().Evaluate(m) })
			assert.False(t, math.IsNaN(m.FollowerToFollowingRatio) || math.IsInf(m.FollowerToFollowingRatio, 0))
			assert.GreaterOrEqual(t, a.BotScore, 0)
			if tt.followers == 0 {
				assert.Equal(t, vo.FollowerQualityFake, a.Signals.FollowerQuality)
			}
		})
	}
}

func TestEngine_OutputBounds(t *testing.T) {
	engine := service.NewEngine()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		m := randomMetrics(rng)
		a := engine.Evaluate(m)

		assert.GreaterOrEqual(t, a.BotScore, 0)
		assert.LessOrEqual(t, a.BotScore, 100)
		assert.GreaterOrEqual(t, a.Confidence, model.MinConfidence)
		assert.LessOrEqual(t, a.Confidence, model.MaxConfidence)
		assert.NotEmpty(t, a.Recommendations)
		assert.NotNil(t, a.RedFlags)
		assert.True(t, a.RiskLevel.Equal(vo.RiskLevelFromScore(a.BotScore)))
	}
}

func TestEngine_VelocityIsMonotonic(t *testing.T) {
	engine := service.NewEngine()
	bases := []model.AccountMetrics{testutil.OrganicMetrics(), testutil.BotFarmMetrics(), testutil.SaturatedBotMetrics()}

	for _, base := range bases {
		prev := -1
		for v := 0.0; v <= 40; v += 0.5 {
			m := base
			m.ViewVelocitySpikes = v
			score := engine.Evaluate(m).BotScore
			assert.GreaterOrEqual(t, score, prev, "velocity %v", v)
			prev = score
		}
	}
}

func TestEngine_Idempotent(t *testing.T) {
	engine := service.NewEngine()
	m := testutil.BotFarmMetrics()

	assert.Equal(t, engine.Evaluate(m), engine.Evaluate(m))
	assert.Equal(t, engine.Evaluate(m), service.NewEngine().Evaluate(m))
}

func TestClassify_Partition(t *testing.T) {
	assert.Equal(t, vo.RiskLevelLow, service.Classify(44))
	assert.Equal(t, vo.RiskLevelMedium, service.Classify(45))
	assert.Equal(t, vo.RiskLevelMedium, service.Classify(74))
	assert.Equal(t, vo.RiskLevelHigh, service.Classify(75))
}

func randomMetrics(rng *rand.Rand) model.AccountMetrics {
	pct := func() float64 { return float64(rng.Intn(101)) }
	return model.AccountMetrics{
		Followers:               rng.Int63n(200000),
		Following:               rng.Int63n(5000),
		Posts:                   rng.Int63n(500),
		AvgLikes:                float64(rng.Intn(10000)),
		AvgComments:             float64(rng.Intn(1000)),
		EngagementRate:          rng.Float64() * 25,
		ViewVelocitySpikes:      rng.Float64() * 30,
		GeographicConcentration: pct(),
		EngagementLagTime:       rng.Float64() * 240,
		WatchTimeQuality:        pct(),
		CommentQuality:          pct(),
		ProfileCompletionScore:  pct(),
		ActivityConsistency:     pct(),
		NetworkHealth:           pct(),
		ContentOriginality:      pct(),
		TemporalPatterns:        pct(),
	}.WithDerivedRates()
}
