package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/pkg/events"
)

var (
	// ErrProviderUnavailable reports a network failure, timeout or server error at the
	// metrics provider.
	ErrProviderUnavailable = errors.New("metrics provider unavailable")

	// ErrAccountNotFound reports that the provider has no data for the account.
	ErrAccountNotFound = errors.New("account not found")
)

// MetricsProvider supplies a behavior snapshot for an account. Implementations own their
// retry, backoff and rate-limit policy.
type MetricsProvider interface {
	// FetchMetrics returns the snapshot, or an error wrapping ErrProviderUnavailable,
	// ErrAccountNotFound or model.ErrMalformedMetrics.
	FetchMetrics(ctx context.Context, account model.AccountIdentity) (model.AccountMetrics, error)
}

// AnalysisRepository defines the persistence port for analysis results.
type AnalysisRepository interface {
	// Save persists a result.
	Save(ctx context.Context, result *model.BotAnalysisResult) error

	// FindByID retrieves a result by its identifier, or model.ErrAnalysisNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*model.BotAnalysisResult, error)

	// FindByAccount lists results for an account, newest first.
	FindByAccount(ctx context.Context, account model.AccountIdentity, limit, offset int) ([]*model.BotAnalysisResult, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// AnalysisRecorder receives measurements about analyses and provider calls.
type AnalysisRecorder interface {
	RecordAnalysis(ctx context.Context, result *model.BotAnalysisResult)
	RecordProviderFetch(ctx context.Context, account model.AccountIdentity, elapsed time.Duration, err error)
}
