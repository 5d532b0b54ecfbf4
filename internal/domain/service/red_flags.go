package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

// RedFlagGenerator re-checks the scoring thresholds and explains each one that fired.
// It does not look at the score.
type RedFlagGenerator struct{}

// NewRedFlagGenerator creates a new RedFlagGenerator instance.
func NewRedFlagGenerator() *RedFlagGenerator {
	return &RedFlagGenerator{}
}

// Flags returns findings in a fixed order: velocity, geography, lag and comments first, then
// secondary signals. The result is empty, never nil, when nothing fires.
func (g *RedFlagGenerator) Flags(m model.AccountMetrics, _ vo.BotSignals) []vo.RedFlag {
	flags := make([]vo.RedFlag, 0)
	add := func(code string, sev vo.Severity, format string, args ...any) {
		flags = append(flags, vo.RedFlag{Code: code, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case m.ViewVelocitySpikes > 15:
		add("view_velocity", vo.SeverityCritical, "Extreme view velocity spikes detected (%s per hour)", num(m.ViewVelocitySpikes))
	case m.ViewVelocitySpikes > 10:
		add("view_velocity", vo.SeverityWarning, "High view velocity spikes detected (%s per hour)", num(m.ViewVelocitySpikes))
	}

	switch {
	case m.GeographicConcentration > 95:
		add("geographic_concentration", vo.SeverityCritical, "%s%% of audience from single country", num(m.GeographicConcentration))
	case m.GeographicConcentration > 85:
		add("geographic_concentration", vo.SeverityWarning, "%s%% audience concentration in one region", num(m.GeographicConcentration))
	}

	switch {
	case m.EngagementLagTime > 120:
		add("engagement_lag", vo.SeverityCritical, "%d+ hour delay between views and engagement", int(math.Floor(m.EngagementLagTime/60)))
	case m.EngagementLagTime > 90:
		add("engagement_lag", vo.SeverityWarning, "Significant delay between views and engagement (%s minutes)", num(m.EngagementLagTime))
	}

	if m.CommentQuality < 30 {
		add("comment_quality", vo.SeverityCritical, "Comments appear generic, repetitive, or AI-generated")
	}
	if m.WatchTimeQuality < 40 {
		add("watch_time_quality", vo.SeverityWarning, "Watch time insufficient to explain viral view counts")
	}
	if m.NetworkHealth < 30 {
		add("network_health", vo.SeverityCritical, "Account primarily connects to other suspicious accounts")
	}
	if m.TemporalPatterns < 30 {
		add("temporal_patterns", vo.SeverityWarning, "Unnatural 24/7 activity patterns (no human sleep cycles)")
	}
	switch {
	case m.FollowerToFollowingRatio <= 0:
		add("follow_ratio", vo.SeverityCritical, "Extreme follow ratio (no followers, following %d)", m.Following)
	case m.FollowerToFollowingRatio < 0.05:
		add("follow_ratio", vo.SeverityCritical, "Extreme follow ratio (1:%d)", int64(math.Floor(1/m.FollowerToFollowingRatio)))
	}
	if m.EngagementRate > 15 {
		add("engagement_rate", vo.SeverityCritical, "Unrealistic engagement rate (%s%%)",
			decimal.NewFromFloat(m.EngagementRate).StringFixed(1))
	}
	if m.ContentOriginality < 30 {
		add("content_originality", vo.SeverityWarning, "Primarily reposts/stolen content")
	}
	if m.Posts < 10 && m.Followers > 10000 {
		add("content_volume", vo.SeverityCritical, "High follower count with minimal content")
	}

	return flags
}

// num renders a metric the way it was supplied: integers without a fraction.
func num(v float64) string {
	return decimal.NewFromFloat(v).String()
}
