package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedMetrics reports a snapshot with missing fields or out-of-range values.
var ErrMalformedMetrics = errors.New("malformed metrics")

// AccountMetrics is one point-in-time snapshot of an account's behavior, as supplied by a
// metrics provider. Percentage and score fields are expected in [0,100]; the engine does not
// re-clamp them.
type AccountMetrics struct {
	// Population.
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`

	// Engagement.
	AvgLikes                 float64  `json:"avgLikes"`
	AvgComments              float64  `json:"avgComments"`
	AvgViews                 *float64 `json:"avgViews,omitempty"`
	EngagementRate           float64  `json:"engagementRate"`
	FollowerToFollowingRatio float64  `json:"followerToFollowingRatio"`

	// Behavioral. ViewVelocitySpikes (per hour) and EngagementLagTime (minutes) are unbounded.
	ViewVelocitySpikes      float64 `json:"viewVelocitySpikes"`
	GeographicConcentration float64 `json:"geographicConcentration"`
	EngagementLagTime       float64 `json:"engagementLagTime"`
	WatchTimeQuality        float64 `json:"watchTimeQuality"`
	CommentQuality          float64 `json:"commentQuality"`
	ProfileCompletionScore  float64 `json:"profileCompletionScore"`
	ActivityConsistency     float64 `json:"activityConsistency"`
	NetworkHealth           float64 `json:"networkHealth"`
	ContentOriginality      float64 `json:"contentOriginality"`
	TemporalPatterns        float64 `json:"temporalPatterns"`
}

// requiredMetricFields are the keys a provider payload must carry. Ratios and the
// engagement rate can be derived, and avgViews only exists on video platforms.
var requiredMetricFields = []string{
	"followers", "following", "posts", "avgLikes", "avgComments",
	"viewVelocitySpikes", "geographicConcentration", "engagementLagTime",
	"watchTimeQuality", "commentQuality", "profileCompletionScore",
	"activityConsistency", "networkHealth", "contentOriginality", "temporalPatterns",
}

// DecodeAccountMetrics parses a JSON snapshot, rejecting payloads with missing required
// fields, wrong types, or out-of-range values. The returned metrics have derived rates filled in.
func DecodeAccountMetrics(data []byte) (AccountMetrics, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return AccountMetrics{}, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}

	var missing []string
	for _, name := range requiredMetricFields {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return AccountMetrics{}, fmt.Errorf("%w: missing fields: %s", ErrMalformedMetrics, strings.Join(missing, ", "))
	}

	var m AccountMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return AccountMetrics{}, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}
	if err := m.Validate(); err != nil {
		return AccountMetrics{}, err
	}
	return m.WithDerivedRates(), nil
}

// Validate checks the ranges a provider guarantees.
func (m AccountMetrics) Validate() error {
	var problems []string

	counts := []struct {
		name  string
		value int64
	}{
		{"followers", m.Followers},
		{"following", m.Following},
		{"posts", m.Posts},
	}
	for _, c := range counts {
		if c.value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be non-negative, got %d", c.name, c.value))
		}
	}

	unbounded := []struct {
		name  string
		value float64
	}{
		{"avgLikes", m.AvgLikes},
		{"avgComments", m.AvgComments},
		{"engagementRate", m.EngagementRate},
		{"followerToFollowingRatio", m.FollowerToFollowingRatio},
		{"viewVelocitySpikes", m.ViewVelocitySpikes},
		{"engagementLagTime", m.EngagementLagTime},
	}
	if m.AvgViews != nil {
		unbounded = append(unbounded, struct {
			name  string
			value float64
		}{"avgViews", *m.AvgViews})
	}
	for _, u := range unbounded {
		if math.IsNaN(u.value) || math.IsInf(u.value, 0) || u.value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a finite non-negative number, got %v", u.name, u.value))
		}
	}

	for _, p := range m.percentages() {
		if math.IsNaN(p.value) || p.value < 0 || p.value > 100 {
			problems = append(problems, fmt.Sprintf("%s must be within [0,100], got %v", p.name, p.value))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedMetrics, strings.Join(problems, "; "))
	}
	return nil
}

func (m AccountMetrics) percentages() []struct {
	name  string
	value float64
} {
	return []struct {
		name  string
		value float64
	}{
		{"geographicConcentration", m.GeographicConcentration},
		{"watchTimeQuality", m.WatchTimeQuality},
		{"commentQuality", m.CommentQuality},
		{"profileCompletionScore", m.ProfileCompletionScore},
		{"activityConsistency", m.ActivityConsistency},
		{"networkHealth", m.NetworkHealth},
		{"contentOriginality", m.ContentOriginality},
		{"temporalPatterns", m.TemporalPatterns},
	}
}

// FollowRatio returns followers/following. An account following nobody is treated as
// following one account, so the ratio stays finite and equals the follower count.
func FollowRatio(followers, following int64) float64 {
	if following <= 0 {
		following = 1
	}
	return float64(followers) / float64(following)
}

// EngagementRate returns (likes + comments) / followers as a percentage rounded to two
// places, or zero for an account without followers.
func EngagementRate(avgLikes, avgComments float64, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	rate := decimal.NewFromFloat(avgLikes).
		Add(decimal.NewFromFloat(avgComments)).
		Div(decimal.NewFromInt(followers)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return rate.InexactFloat64()
}

// WithDerivedRates returns a copy whose follower ratio is recomputed from the population
// counts, and whose engagement rate is computed when the provider left it at zero.
func (m AccountMetrics) WithDerivedRates() AccountMetrics {
	out := m
	out.FollowerToFollowingRatio = FollowRatio(m.Followers, m.Following)
	if out.EngagementRate == 0 {
		out.EngagementRate = EngagementRate(m.AvgLikes, m.AvgComments, m.Followers)
	}
	return out
}
