package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
)

// Compile-time interface check.
var _ port.AnalysisRecorder = (*Recorder)(nil)

const meterName = "github.com/clippintel/botscore"

// Fetch outcomes reported on botscore_provider_fetch_seconds.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
	OutcomeCancelled   = "cancelled"
	OutcomeError       = "error"
)

// Recorder implements port.AnalysisRecorder with OpenTelemetry instruments.
type Recorder struct {
	analyses metric.Int64Counter
	scores   metric.Int64Histogram
	fetches  metric.Float64Histogram
}

// NewRecorder creates the instruments on the given MeterProvider.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	meter := mp.Meter(meterName)

	analyses, err := meter.Int64Counter("botscore_analyses_total",
		metric.WithDescription("Account analyses by platform, risk level and degradation."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating analyses counter: %w", err)
	}

	scores, err := meter.Int64Histogram("botscore_bot_score",
		metric.WithDescription("Bot scores of completed analyses."),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 45, 60, 75, 90, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bot score histogram: %w", err)
	}

	fetches, err := meter.Float64Histogram("botscore_provider_fetch_seconds",
		metric.WithDescription("Metrics provider fetch latency, retries included."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, fmt.Errorf("creating provider fetch histogram: %w", err)
	}

	return &Recorder{analyses: analyses, scores: scores, fetches: fetches}, nil
}

// RecordAnalysis counts a result. Scores of degraded results are not observed.
func (r *Recorder) RecordAnalysis(ctx context.Context, result *model.BotAnalysisResult) {
	platform := attribute.String("platform", result.Account().Platform.String())

	r.analyses.Add(ctx, 1, metric.WithAttributes(
		platform,
		attribute.String("risk_level", result.RiskLevel().String()),
		attribute.Bool("degraded", result.IsDegraded()),
	))
	if !result.IsDegraded() {
		r.scores.Record(ctx, int64(result.BotScore()), metric.WithAttributes(platform))
	}
}

// RecordProviderFetch observes one provider call.
func (r *Recorder) RecordProviderFetch(ctx context.Context, account model.AccountIdentity, elapsed time.Duration, err error) {
	r.fetches.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("platform", account.Platform.String()),
		attribute.String("outcome", Outcome(err)),
	))
}

// Outcome classifies a fetch error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	case errors.Is(err, port.ErrAccountNotFound):
		return OutcomeNotFound
	case errors.Is(err, port.ErrProviderUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, model.ErrMalformedMetrics):
		return OutcomeMalformed
	default:
		return OutcomeError
	}
}
