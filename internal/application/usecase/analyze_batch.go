package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/domain/service"
)

// MaxBatchSize bounds one batch request.
const MaxBatchSize = 100

// AnalyzeBatch is the use case for analyzing a list of accounts sequentially.
type AnalyzeBatch struct {
	orchestrator *service.Orchestrator
	sink         *resultSink
}

// NewAnalyzeBatch creates a new AnalyzeBatch use case. repo and publisher may be nil.
func NewAnalyzeBatch(
	orchestrator *service.Orchestrator,
	repo port.AnalysisRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AnalyzeBatch {
	return &AnalyzeBatch{
		orchestrator: orchestrator,
		sink:         &resultSink{repo: repo, publisher: publisher, logger: logger},
	}
}

// Execute validates every identity up front, then runs the batch. The response has one
// result per requested account, in request order.
func (uc *AnalyzeBatch) Execute(ctx context.Context, req dto.AnalyzeBatchRequest) (resp dto.BatchAnalysisResponse, err error) {
	ctx, span := tracer.Start(ctx, "AnalyzeBatch", trace.WithAttributes(attribute.Int("botscore.batch_size", len(req.Accounts))))
	defer func() {
		if err != nil {
			recordError(span, err)
		}
		span.End()
	}()

	if len(req.Accounts) == 0 {
		return dto.BatchAnalysisResponse{}, fmt.Errorf("%w: at least one account is required", ErrInvalidRequest)
	}
	if len(req.Accounts) > MaxBatchSize {
		return dto.BatchAnalysisResponse{}, fmt.Errorf("%w: batch of %d exceeds the limit of %d", ErrInvalidRequest, len(req.Accounts), MaxBatchSize)
	}

	accounts := make([]model.AccountIdentity, 0, len(req.Accounts))
	for i, a := range req.Accounts {
		account, err := toIdentity(a)
		if err != nil {
			return dto.BatchAnalysisResponse{}, fmt.Errorf("account %d: %w", i, err)
		}
		accounts = append(accounts, account)
	}

	results := uc.orchestrator.AnalyzeBatch(ctx, accounts)
	for _, r := range results {
		uc.sink.handle(ctx, r)
	}

	summary := dto.Summarize(results)
	span.SetAttributes(
		attribute.Int("botscore.batch_failed", summary.Failed),
		attribute.Int("botscore.batch_high_risk", summary.HighRisk),
	)

	return dto.BatchAnalysisResponse{
		Results: dto.FromModels(results),
		Summary: summary,
	}, nil
}
