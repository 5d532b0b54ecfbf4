package usecase_test

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/service"
	"github.com/clippintel/botscore/pkg/events"
)

// --- Mock implementations ---

type mockAnalysisRepository struct {
	saved             []*model.BotAnalysisResult
	saveFunc          func(ctx context.Context, result *model.BotAnalysisResult) error
	findByIDFunc      func(ctx context.Context, id uuid.UUID) (*model.BotAnalysisResult, error)
	findByAccountFunc func(ctx context.Context, account model.AccountIdentity, limit, offset int) ([]*model.BotAnalysisResult, error)
}

func (m *mockAnalysisRepository) Save(ctx context.Context, result *model.BotAnalysisResult) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, result)
	}
	m.saved = append(m.saved, result)
	return nil
}

func (m *mockAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BotAnalysisResult, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, model.ErrAnalysisNotFound
}

func (m *mockAnalysisRepository) FindByAccount(ctx context.Context, account model.AccountIdentity, limit, offset int) ([]*model.BotAnalysisResult, error) {
	if m.findByAccountFunc != nil {
		return m.findByAccountFunc(ctx, account, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.EventType())
	}
	return out
}

type mockProvider struct {
	fetchFunc func(ctx context.Context, account model.AccountIdentity) (model.AccountMetrics, error)
}

func (m *mockProvider) FetchMetrics(ctx context.Context, account model.AccountIdentity) (model.AccountMetrics, error) {
	return m.fetchFunc(ctx, account)
}

func newTestOrchestrator(provider *mockProvider) *service.Orchestrator {
	return service.NewOrchestrator(service.NewEngine(), provider, nil, slog.Default(), service.OrchestratorConfig{
		Sleep: func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	})
}
