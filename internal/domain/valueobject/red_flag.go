package valueobject

import "fmt"

// Severity tags a red flag.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	// SeverityFailure marks the single flag carried by a degraded result.
	SeverityFailure Severity = "failure"
)

// SeverityFromString parses a persisted severity.
func SeverityFromString(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityCritical, SeverityWarning, SeverityFailure:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("invalid severity: %s", s)
	}
}

func (s Severity) prefix() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityFailure:
		return "ANALYSIS FAILED"
	default:
		return "WARNING"
	}
}

// RedFlag is one human-readable finding behind a score.
type RedFlag struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String renders the flag with its severity prefix, e.g. "CRITICAL: ...".
func (f RedFlag) String() string {
	return f.Severity.prefix() + ": " + f.Message
}

// IsCritical reports whether the flag carries critical severity.
func (f RedFlag) IsCritical() bool {
	return f.Severity == SeverityCritical
}

// RenderRedFlags renders flags in order. The result is never nil.
func RenderRedFlags(flags []RedFlag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, f.String())
	}
	return out
}

// ScoreContribution records the points one scoring rule added.
type ScoreContribution struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// SumContributions adds up the points of every contribution.
func SumContributions(cs []ScoreContribution) int {
	total := 0
	for _, c := range cs {
		total += c.Points
	}
	return total
}
