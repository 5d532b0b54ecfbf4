package valueobject

// FollowerQuality grades how genuine an account's audience looks.
type FollowerQuality string

const (
	FollowerQualityNormal     FollowerQuality = "normal"
	FollowerQualitySuspicious FollowerQuality = "suspicious"
	FollowerQualityFake       FollowerQuality = "fake"
)

// EngagementPattern grades how human the engagement looks.
type EngagementPattern string

const (
	EngagementOrganic    EngagementPattern = "organic"
	EngagementSuspicious EngagementPattern = "suspicious"
	EngagementAutomated  EngagementPattern = "automated"
)

// ContentConsistency grades originality and posting volume.
type ContentConsistency string

const (
	ContentGood         ContentConsistency = "good"
	ContentPoor         ContentConsistency = "poor"
	ContentInconsistent ContentConsistency = "inconsistent"
)

// AccountAge is an age class estimated from activity, not a creation date.
type AccountAge string

const (
	AccountEstablished AccountAge = "established"
	AccountRecent      AccountAge = "recent"
	AccountVeryNew     AccountAge = "very_new"
)

// ProfileCompleteness grades how filled-in the profile is.
type ProfileCompleteness string

const (
	ProfileComplete   ProfileCompleteness = "complete"
	ProfileIncomplete ProfileCompleteness = "incomplete"
	ProfileMinimal    ProfileCompleteness = "minimal"
)

// BotSignals holds the five categorical judgments derived from one metrics snapshot.
// The zero value (all fields empty) marks signals that could not be derived.
type BotSignals struct {
	FollowerQuality     FollowerQuality     `json:"followerQuality"`
	EngagementPattern   EngagementPattern   `json:"engagementPattern"`
	ContentConsistency  ContentConsistency  `json:"contentConsistency"`
	AccountAge          AccountAge          `json:"accountAge"`
	ProfileCompleteness ProfileCompleteness `json:"profileCompleteness"`
}

// IsZero reports whether no signal was derived.
func (s BotSignals) IsZero() bool {
	return s == BotSignals{}
}
