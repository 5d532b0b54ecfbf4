package valueobject

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is an immutable value object representing the bot-risk tier of an account.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "low"}
	RiskLevelMedium = RiskLevel{value: "medium"}
	RiskLevelHigh   = RiskLevel{value: "high"}

	// RiskLevelUnknown marks a degraded analysis where no score could be computed.
	RiskLevelUnknown = RiskLevel{value: "unknown"}
)

// Tier boundaries, inclusive on the low side.
const (
	HighRiskThreshold   = 75
	MediumRiskThreshold = 45
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	case "unknown":
		return RiskLevelUnknown, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore classifies a bot score (0-100) into a risk tier.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskLevelHigh
	case score >= MediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// IsKnown reports whether the level came from an actual score.
func (r RiskLevel) IsKnown() bool {
	return r.value == "low" || r.value == "medium" || r.value == "high"
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// MarshalJSON renders the level as its string literal.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// UnmarshalJSON parses one of the known literals.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := RiskLevelFromString(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}
