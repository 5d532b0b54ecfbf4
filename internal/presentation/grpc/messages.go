package grpc

import (
	"time"

	"github.com/clippintel/botscore/internal/application/dto"
)

// Proto-aligned request/response message types.

// AccountRef identifies an account on the wire.
type AccountRef struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
}

// AnalyzeAccountRequest represents the proto AnalyzeAccountRequest message.
type AnalyzeAccountRequest struct {
	Account *AccountRef `json:"account"`
}

// AnalyzeAccountResponse represents the proto AnalyzeAccountResponse message.
type AnalyzeAccountResponse struct {
	Analysis *AnalysisMsg `json:"analysis"`
}

// AnalyzeBatchRequest represents the proto AnalyzeBatchRequest message.
type AnalyzeBatchRequest struct {
	Accounts []*AccountRef `json:"accounts"`
}

// AnalyzeBatchResponse represents the proto AnalyzeBatchResponse message.
type AnalyzeBatchResponse struct {
	Analyses []*AnalysisMsg   `json:"analyses"`
	Summary  *BatchSummaryMsg `json:"summary"`
}

// GetAnalysisRequest represents the proto GetAnalysisRequest message.
type GetAnalysisRequest struct {
	ID string `json:"id"`
}

// GetAnalysisResponse represents the proto GetAnalysisResponse message.
type GetAnalysisResponse struct {
	Analysis *AnalysisMsg `json:"analysis"`
}

// ListAnalysesRequest represents the proto ListAnalysesRequest message.
type ListAnalysesRequest struct {
	Account  *AccountRef `json:"account"`
	PageSize int32       `json:"page_size"`
	Offset   int32       `json:"offset"`
}

// ListAnalysesResponse represents the proto ListAnalysesResponse message.
type ListAnalysesResponse struct {
	Analyses []*AnalysisMsg `json:"analyses"`
}

// SignalsMsg represents the proto BotSignals message.
type SignalsMsg struct {
	FollowerQuality     string `json:"follower_quality"`
	EngagementPattern   string `json:"engagement_pattern"`
	ContentConsistency  string `json:"content_consistency"`
	AccountAge          string `json:"account_age"`
	ProfileCompleteness string `json:"profile_completeness"`
}

// MetricsMsg represents the proto AccountMetrics message.
type MetricsMsg struct {
	Followers                int64    `json:"followers"`
	Following                int64    `json:"following"`
	Posts                    int64    `json:"posts"`
	AvgLikes                 float64  `json:"avg_likes"`
	AvgComments              float64  `json:"avg_comments"`
	AvgViews                 *float64 `json:"avg_views,omitempty"`
	EngagementRate           float64  `json:"engagement_rate"`
	FollowerToFollowingRatio float64  `json:"follower_to_following_ratio"`
	ViewVelocitySpikes       float64  `json:"view_velocity_spikes"`
	GeographicConcentration  float64  `json:"geographic_concentration"`
	EngagementLagTime        float64  `json:"engagement_lag_time"`
	WatchTimeQuality         float64  `json:"watch_time_quality"`
	CommentQuality           float64  `json:"comment_quality"`
	ProfileCompletionScore   float64  `json:"profile_completion_score"`
	ActivityConsistency      float64  `json:"activity_consistency"`
	NetworkHealth            float64  `json:"network_health"`
	ContentOriginality       float64  `json:"content_originality"`
	TemporalPatterns         float64  `json:"temporal_patterns"`
}

// ScoreContributionMsg represents the proto ScoreContribution message.
type ScoreContributionMsg struct {
	Rule   string `json:"rule"`
	Points int32  `json:"points"`
}

// AnalysisMsg represents the proto BotAnalysis message.
type AnalysisMsg struct {
	ID                    string                  `json:"id"`
	Account               *AccountRef             `json:"account"`
	BotScore              int32                   `json:"bot_score"`
	RiskLevel             string                  `json:"risk_level"`
	Verdict               string                  `json:"verdict"`
	Signals               *SignalsMsg             `json:"signals"`
	Metrics               *MetricsMsg             `json:"metrics"`
	ScoreBreakdown        []*ScoreContributionMsg `json:"score_breakdown"`
	RedFlags              []string                `json:"red_flags"`
	Recommendations       []string                `json:"recommendations"`
	Confidence            int32                   `json:"confidence"`
	AnalysisDate          string                  `json:"analysis_date"`
	ProcessingTimeSeconds float64                 `json:"processing_time_seconds"`
	Degraded              bool                    `json:"degraded"`
}

// BatchSummaryMsg represents the proto BatchSummary message.
type BatchSummaryMsg struct {
	Total           int32   `json:"total"`
	Completed       int32   `json:"completed"`
	Failed          int32   `json:"failed"`
	HighRisk        int32   `json:"high_risk"`
	AverageBotScore float64 `json:"average_bot_score"`
}

func toAnalysisMsg(r dto.AnalysisResponse) *AnalysisMsg {
	breakdown := make([]*ScoreContributionMsg, 0, len(r.ScoreBreakdown))
	for _, c := range r.ScoreBreakdown {
		breakdown = append(breakdown, &ScoreContributionMsg{Rule: c.Rule, Points: int32(c.Points)})
	}
	m := r.Metrics

	return &AnalysisMsg{
		ID:        r.ID.String(),
		Account:   &AccountRef{Handle: r.Account.Handle, Platform: r.Account.Platform},
		BotScore:  int32(r.BotScore),
		RiskLevel: r.RiskLevel,
		Verdict:   r.Verdict,
		Signals: &SignalsMsg{
			FollowerQuality:     string(r.Signals.FollowerQuality),
			EngagementPattern:   string(r.Signals.EngagementPattern),
			ContentConsistency:  string(r.Signals.ContentConsistency),
			AccountAge:          string(r.Signals.AccountAge),
			ProfileCompleteness: string(r.Signals.ProfileCompleteness),
		},
		Metrics: &MetricsMsg{
			Followers:                m.Followers,
			Following:                m.Following,
			Posts:                    m.Posts,
			AvgLikes:                 m.AvgLikes,
			AvgComments:              m.AvgComments,
			AvgViews:                 m.AvgViews,
			EngagementRate:           m.EngagementRate,
			FollowerToFollowingRatio: m.FollowerToFollowingRatio,
			ViewVelocitySpikes:       m.ViewVelocitySpikes,
			GeographicConcentration:  m.GeographicConcentration,
			EngagementLagTime:        m.EngagementLagTime,
			WatchTimeQuality:         m.WatchTimeQuality,
			CommentQuality:           m.CommentQuality,
			ProfileCompletionScore:   m.ProfileCompletionScore,
			ActivityConsistency:      m.ActivityConsistency,
			NetworkHealth:            m.NetworkHealth,
			ContentOriginality:       m.ContentOriginality,
			TemporalPatterns:         m.TemporalPatterns,
		},
		ScoreBreakdown:        breakdown,
		RedFlags:              r.RedFlags,
		Recommendations:       r.Recommendations,
		Confidence:            int32(r.Confidence),
		AnalysisDate:          r.AnalysisDate.UTC().Format(time.RFC3339Nano),
		ProcessingTimeSeconds: r.ProcessingTimeSeconds,
		Degraded:              r.Degraded,
	}
}

func toAnalysisMsgs(rs []dto.AnalysisResponse) []*AnalysisMsg {
	out := make([]*AnalysisMsg, 0, len(rs))
	for _, r := range rs {
		out = append(out, toAnalysisMsg(r))
	}
	return out
}
