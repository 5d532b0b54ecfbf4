package service

import (
	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

// ScoreCalculator sums the points of every firing rule in its table.
type ScoreCalculator struct {
	rules []ScoreRule
}

// NewScoreCalculator creates a calculator over DefaultScoreRules.
func NewScoreCalculator() *ScoreCalculator {
	return NewScoreCalculatorWithRules(DefaultScoreRules())
}

// NewScoreCalculatorWithRules creates a calculator over a custom table.
func NewScoreCalculatorWithRules(rules []ScoreRule) *ScoreCalculator {
	return &ScoreCalculator{rules: rules}
}

// Rules returns the table in evaluation order.
func (c *ScoreCalculator) Rules() []ScoreRule {
	return c.rules
}

// Breakdown returns the contribution of each firing rule, in table order.
func (c *ScoreCalculator) Breakdown(m model.AccountMetrics, s vo.BotSignals) []vo.ScoreContribution {
	hits := make([]vo.ScoreContribution, 0, len(c.rules))
	for _, r := range c.rules {
		if p := r.Points(m, s); p != 0 {
			hits = append(hits, vo.ScoreContribution{Rule: r.RuleName(), Points: p})
		}
	}
	return hits
}

// Score returns the clamped sum of the breakdown.
func (c *ScoreCalculator) Score(m model.AccountMetrics, s vo.BotSignals) int {
	return ClampScore(vo.SumContributions(c.Breakdown(m, s)))
}

// ClampScore bounds a raw point total to [0,100].
func ClampScore(score int) int {
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
