package service

import (
	"github.com/clippintel/botscore/internal/domain/model"
	vo "github.com/clippintel/botscore/internal/domain/valueobject"
)

// Assessment is the engine's verdict on one snapshot.
type Assessment struct {
	Signals         vo.BotSignals
	ScoreBreakdown  []vo.ScoreContribution
	RedFlags        []vo.RedFlag
	Recommendations []string
	RiskLevel       vo.RiskLevel
	BotScore        int
	Confidence      int
}

// Engine runs the scoring pipeline over one snapshot. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	signals     *SignalAnalyzer
	scorer      *ScoreCalculator
	flags       *RedFlagGenerator
	recommender *RecommendationEngine
	confidence  *ConfidenceEstimator
}

// NewEngine creates an engine with the default score table.
func NewEngine() *Engine {
	return NewEngineWithScorer(NewScoreCalculator())
}

// NewEngineWithScorer creates an engine around a custom score calculator.
func NewEngineWithScorer(scorer *ScoreCalculator) *Engine {
	return &Engine{
		signals:     NewSignalAnalyzer(),
		scorer:      scorer,
		flags:       NewRedFlagGenerator(),
		recommender: NewRecommendationEngine(),
		confidence:  NewConfidenceEstimator(),
	}
}

// Classify maps a score to its risk tier.
func Classify(score int) vo.RiskLevel {
	return vo.RiskLevelFromScore(score)
}

// Evaluate derives signals, then score and flags, then tier, recommendations and confidence.
func (e *Engine) Evaluate(m model.AccountMetrics) Assessment {
	signals := e.signals.Analyze(m)
	breakdown := e.scorer.Breakdown(m, signals)
	score := ClampScore(vo.SumContributions(breakdown))
	flags := e.flags.Flags(m, signals)
	level := Classify(score)

	return Assessment{
		Signals:         signals,
		ScoreBreakdown:  breakdown,
		BotScore:        score,
		RiskLevel:       level,
		RedFlags:        flags,
		Recommendations: e.recommender.Recommend(level, flags, score, m),
		Confidence:      e.confidence.Confidence(m, signals),
	}
}
