package service

import (
	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

// Metric names one numeric field of a snapshot.
type Metric struct {
	Name  string
	Value func(model.AccountMetrics) float64
}

var (
	MetricViewVelocitySpikes = Metric{"viewVelocitySpikes", func(m model.AccountMetrics) float64 { return m.ViewVelocitySpikes }}
	MetricGeoConcentration   = Metric{"geographicConcentration", func(m model.AccountMetrics) float64 { return m.GeographicConcentration }}
	MetricEngagementLag      = Metric{"engagementLagTime", func(m model.AccountMetrics) float64 { return m.EngagementLagTime }}
	MetricCommentQuality     = Metric{"commentQuality", func(m model.AccountMetrics) float64 { return m.CommentQuality }}
	MetricWatchTimeQuality   = Metric{"watchTimeQuality", func(m model.AccountMetrics) float64 { return m.WatchTimeQuality }}
	MetricNetworkHealth      = Metric{"networkHealth", func(m model.AccountMetrics) float64 { return m.NetworkHealth }}
	MetricTemporalPatterns   = Metric{"temporalPatterns", func(m model.AccountMetrics) float64 { return m.TemporalPatterns }}
	MetricProfileCompletion  = Metric{"profileCompletionScore", func(m model.AccountMetrics) float64 { return m.ProfileCompletionScore }}
	MetricEngagementRate     = Metric{"engagementRate", func(m model.AccountMetrics) float64 { return m.EngagementRate }}
)

// Op is a strict comparison against a threshold.
type Op int

const (
	Above Op = iota // value > threshold
	Below           // value < threshold
)

// Condition is a single strict threshold test on a metric.
type Condition struct {
	Metric    Metric
	Op        Op
	Threshold float64
}

// Holds reports whether the snapshot satisfies the condition.
func (c Condition) Holds(m model.AccountMetrics) bool {
	v := c.Metric.Value(m)
	if c.Op == Above {
		return v > c.Threshold
	}
	return v < c.Threshold
}

// ScoreRule is one row of the score table. Points returns zero when the rule does not fire.
type ScoreRule interface {
	RuleName() string
	Points(m model.AccountMetrics, s vo.BotSignals) int
}

// Tier is one step of a ladder.
type Tier struct {
	Threshold float64
	Points    int
}

// LadderRule awards the points of the first matching tier. Tiers are ordered most severe first,
// so a ladder contributes at most once.
type LadderRule struct {
	Name   string
	Metric Metric
	Op     Op
	Tiers  []Tier
}

func (r LadderRule) RuleName() string { return r.Name }

func (r LadderRule) Points(m model.AccountMetrics, _ vo.BotSignals) int {
	for _, t := range r.Tiers {
		if (Condition{Metric: r.Metric, Op: r.Op, Threshold: t.Threshold}).Holds(m) {
			return t.Points
		}
	}
	return 0
}

// SignalRule awards points for a derived signal value.
type SignalRule struct {
	Name   string
	Signal func(vo.BotSignals) string
	Award  map[string]int
}

func (r SignalRule) RuleName() string { return r.Name }

func (r SignalRule) Points(_ model.AccountMetrics, s vo.BotSignals) int {
	return r.Award[r.Signal(s)]
}

// CompoundRule awards a bonus when every condition holds.
type CompoundRule struct {
	Name  string
	AllOf []Condition
	Bonus int
}

func (r CompoundRule) RuleName() string { return r.Name }

func (r CompoundRule) Points(m model.AccountMetrics, _ vo.BotSignals) int {
	for _, c := range r.AllOf {
		if !c.Holds(m) {
			return 0
		}
	}
	return r.Bonus
}

// DefaultScoreRules returns the weight table used for scoring, in evaluation order.
func DefaultScoreRules() []ScoreRule {
	return []ScoreRule{
		// Agency-priority signals.
		LadderRule{Name: "view_velocity", Metric: MetricViewVelocitySpikes, Op: Above,
			Tiers: []Tier{{15, 25}, {10, 18}, {5, 10}}},
		LadderRule{Name: "geographic_concentration", Metric: MetricGeoConcentration, Op: Above,
			Tiers: []Tier{{95, 20}, {85, 15}, {75, 8}}},
		LadderRule{Name: "engagement_lag", Metric: MetricEngagementLag, Op: Above,
			Tiers: []Tier{{120, 15}, {90, 10}, {60, 5}}},
		LadderRule{Name: "comment_quality", Metric: MetricCommentQuality, Op: Below,
			Tiers: []Tier{{30, 15}, {50, 10}, {70, 5}}},

		// Derived signals.
		SignalRule{Name: "follower_quality",
			Signal: func(s vo.BotSignals) string { return string(s.FollowerQuality) },
			Award:  map[string]int{string(vo.FollowerQualityFake): 12, string(vo.FollowerQualitySuspicious): 8}},
		SignalRule{Name: "engagement_pattern",
			Signal: func(s vo.BotSignals) string { return string(s.EngagementPattern) },
			Award:  map[string]int{string(vo.EngagementAutomated): 10, string(vo.EngagementSuspicious): 6}},
		SignalRule{Name: "content_consistency",
			Signal: func(s vo.BotSignals) string { return string(s.ContentConsistency) },
			Award:  map[string]int{string(vo.ContentInconsistent): 3}},

		// Modifiers.
		LadderRule{Name: "watch_time_quality", Metric: MetricWatchTimeQuality, Op: Below, Tiers: []Tier{{40, 8}}},
		LadderRule{Name: "network_health", Metric: MetricNetworkHealth, Op: Below, Tiers: []Tier{{30, 10}}},
		LadderRule{Name: "temporal_patterns", Metric: MetricTemporalPatterns, Op: Below, Tiers: []Tier{{30, 8}}},
		LadderRule{Name: "profile_completion", Metric: MetricProfileCompletion, Op: Below, Tiers: []Tier{{30, 6}}},

		// Compound patterns.
		CompoundRule{Name: "bot_farm_pattern", Bonus: 15, AllOf: []Condition{
			{Metric: MetricViewVelocitySpikes, Op: Above, Threshold: 20},
			{Metric: MetricGeoConcentration, Op: Above, Threshold: 90},
		}},
		CompoundRule{Name: "boosted_engagement", Bonus: 12, AllOf: []Condition{
			{Metric: MetricEngagementRate, Op: Above, Threshold: 15},
			{Metric: MetricCommentQuality, Op: Below, Threshold: 40},
		}},
	}
}
