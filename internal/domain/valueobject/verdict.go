package valueobject

import "fmt"

// Verdict is the onboarding decision implied by a risk tier.
type Verdict struct {
	value string
}

var (
	VerdictApprove = Verdict{value: "APPROVE"}
	VerdictReview  = Verdict{value: "REVIEW"}
	VerdictReject  = Verdict{value: "REJECT"}
)

// VerdictFromString reconstructs a verdict from its string representation.
func VerdictFromString(s string) (Verdict, error) {
	switch s {
	case "APPROVE":
		return VerdictApprove, nil
	case "REVIEW":
		return VerdictReview, nil
	case "REJECT":
		return VerdictReject, nil
	default:
		return Verdict{}, fmt.Errorf("invalid verdict: %s", s)
	}
}

// VerdictFromRiskLevel maps a risk tier to its verdict. Anything that is not a
// scored low or high tier goes to manual review.
func VerdictFromRiskLevel(level RiskLevel) Verdict {
	switch {
	case level.Equal(RiskLevelLow):
		return VerdictApprove
	case level.Equal(RiskLevelHigh):
		return VerdictReject
	default:
		return VerdictReview
	}
}

func (v Verdict) String() string { return v.value }

// Equal checks equality with another Verdict.
func (v Verdict) Equal(other Verdict) bool {
	return v.value == other.value
}
