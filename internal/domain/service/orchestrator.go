package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
)

// DefaultBatchPacing is the pause between consecutive batch items.
const DefaultBatchPacing = 2 * time.Second

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the real-time Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// OrchestratorConfig tunes batch behavior. Zero values select the defaults.
type OrchestratorConfig struct {
	Pacing time.Duration
	Sleep  Sleeper
}

// Orchestrator fetches metrics, runs the engine and assembles results. It never returns an
// error: every failure becomes a degraded result.
type Orchestrator struct {
	engine   *Engine
	provider port.MetricsProvider
	recorder port.AnalysisRecorder
	logger   *slog.Logger
	pacing   time.Duration
	sleep    Sleeper
}

// NewOrchestrator creates an orchestrator. recorder may be nil.
func NewOrchestrator(
	engine *Engine,
	provider port.MetricsProvider,
	recorder port.AnalysisRecorder,
	logger *slog.Logger,
	cfg OrchestratorConfig,
) *Orchestrator {
	if cfg.Pacing == 0 {
		cfg.Pacing = DefaultBatchPacing
	}
	if cfg.Sleep == nil {
		cfg.Sleep = SleepContext
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Orchestrator{
		engine:   engine,
		provider: provider,
		recorder: recorder,
		logger:   logger,
		pacing:   cfg.Pacing,
		sleep:    cfg.Sleep,
	}
}

// AnalyzeAccount runs one analysis.
func (o *Orchestrator) AnalyzeAccount(ctx context.Context, account model.AccountIdentity) (result *model.BotAnalysisResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = o.degrade(ctx, account, fmt.Sprintf("engine failure: %v", r), nil, start)
		}
	}()

	if err := ctx.Err(); err != nil {
		return o.degrade(ctx, account, "analysis cancelled: "+err.Error(), nil, start)
	}

	metrics, err := o.provider.FetchMetrics(ctx, account)
	o.recorder.RecordProviderFetch(ctx, account, time.Since(start), err)
	if err != nil {
		return o.degrade(ctx, account, failureReason(err), nil, start)
	}
	if err := metrics.Validate(); err != nil {
		return o.degrade(ctx, account, err.Error(), nil, start)
	}
	metrics = metrics.WithDerivedRates()

	a := o.engine.Evaluate(metrics)
	result, err = model.NewAnalysisResult(model.AnalysisParams{
		Account:         account,
		Metrics:         metrics,
		Signals:         a.Signals,
		ScoreBreakdown:  a.ScoreBreakdown,
		RedFlags:        a.RedFlags,
		Recommendations: a.Recommendations,
		BotScore:        a.BotScore,
		Confidence:      a.Confidence,
		ProcessingTime:  time.Since(start),
	})
	if err != nil {
		return o.degrade(ctx, account, "engine failure: "+err.Error(), &metrics, start)
	}

	o.recorder.RecordAnalysis(ctx, result)
	o.logger.Info("account analyzed",
		"analysis_id", result.ID(),
		"handle", account.Handle,
		"platform", account.Platform.String(),
		"bot_score", result.BotScore(),
		"risk_level", result.RiskLevel().String(),
		"red_flags", len(a.RedFlags),
	)
	return result
}

// AnalyzeBatch analyzes accounts one at a time, pausing between items. The result has one
// entry per account, in input order. Once ctx is done the remaining items are degraded
// without contacting the provider.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, accounts []model.AccountIdentity) []*model.BotAnalysisResult {
	results := make([]*model.BotAnalysisResult, 0, len(accounts))
	for i, account := range accounts {
		if i > 0 {
			// The sleep error is ctx.Err(), which AnalyzeAccount reports itself.
			_ = o.sleep(ctx, o.pacing)
		}
		results = append(results, o.AnalyzeAccount(ctx, account))
	}

	degraded := 0
	for _, r := range results {
		if r.IsDegraded() {
			degraded++
		}
	}
	o.logger.Info("batch analyzed", "total", len(results), "degraded", degraded)
	return results
}

func (o *Orchestrator) degrade(ctx context.Context, account model.AccountIdentity, reason string, metrics *model.AccountMetrics, start time.Time) *model.BotAnalysisResult {
	result := model.NewDegradedResult(account, reason, metrics, time.Since(start))
	o.recorder.RecordAnalysis(ctx, result)
	o.logger.Warn("analysis degraded",
		"analysis_id", result.ID(),
		"handle", account.Handle,
		"platform", account.Platform.String(),
		"error", reason,
	)
	return result
}

// failureReason renders err as "<class>: <detail>". Errors wrapping a known sentinel already
// start with the class name.
func failureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "analysis cancelled: " + err.Error()
	case errors.Is(err, port.ErrProviderUnavailable),
		errors.Is(err, port.ErrAccountNotFound),
		errors.Is(err, model.ErrMalformedMetrics):
		return err.Error()
	default:
		return "metrics provider failure: " + err.Error()
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(context.Context, *model.BotAnalysisResult) {}
func (nopRecorder) RecordProviderFetch(context.Context, model.AccountIdentity, time.Duration, error) {
}
