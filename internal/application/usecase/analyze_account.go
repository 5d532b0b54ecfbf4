package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/domain/service"
	"github.com/clippintel/botscore/internal/domain/valueobject"
)

// ErrInvalidRequest marks caller mistakes, such as an unknown platform.
var ErrInvalidRequest = errors.New("invalid request")

// ErrStorageDisabled is returned by read use cases when no repository is configured.
var ErrStorageDisabled = errors.New("analysis storage is disabled")

// AnalyzeAccount is the use case for analyzing one account.
type AnalyzeAccount struct {
	orchestrator *service.Orchestrator
	sink         *resultSink
}

// NewAnalyzeAccount creates a new AnalyzeAccount use case. repo and publisher may be nil.
func NewAnalyzeAccount(
	orchestrator *service.Orchestrator,
	repo port.AnalysisRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AnalyzeAccount {
	return &AnalyzeAccount{
		orchestrator: orchestrator,
		sink:         &resultSink{repo: repo, publisher: publisher, logger: logger},
	}
}

// Execute validates the identity, analyzes the account, then stores and announces the result.
// Only an invalid identity produces an error; analysis failures come back as degraded results.
func (uc *AnalyzeAccount) Execute(ctx context.Context, req dto.AnalyzeAccountRequest) (dto.AnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeAccount")
	defer span.End()

	account, err := toIdentity(req)
	if err != nil {
		recordError(span, err)
		return dto.AnalysisResponse{}, err
	}

	result := uc.orchestrator.AnalyzeAccount(ctx, account)
	annotateResult(span, result)
	uc.sink.handle(ctx, result)

	return dto.FromModel(result), nil
}

func toIdentity(req dto.AnalyzeAccountRequest) (model.AccountIdentity, error) {
	platform, err := valueobject.PlatformFromString(req.Platform)
	if err != nil {
		return model.AccountIdentity{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	account, err := model.NewAccountIdentity(req.Handle, platform)
	if err != nil {
		return model.AccountIdentity{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return account, nil
}

// resultSink persists results and publishes their events. Failures are logged and never
// change the result handed back to the caller.
type resultSink struct {
	repo      port.AnalysisRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

func (s *resultSink) handle(ctx context.Context, result *model.BotAnalysisResult) {
	if s.repo != nil {
		if err := s.repo.Save(ctx, result); err != nil {
			s.logger.Error("failed to save analysis", "analysis_id", result.ID(), "error", err)
		}
	}

	events := result.DomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish analysis events", "analysis_id", result.ID(), "error", err)
	}
}
