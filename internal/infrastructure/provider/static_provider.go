package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
)

// Compile-time interface check.
var _ port.MetricsProvider = (*StaticProvider)(nil)

// StaticProvider serves snapshots from memory. It backs the CLI and local development.
type StaticProvider struct {
	snapshots map[string]model.AccountMetrics
	mu        sync.RWMutex
}

// NewStaticProvider creates an empty StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{snapshots: make(map[string]model.AccountMetrics)}
}

// LoadStaticProvider reads a fixtures file: a JSON object mapping "handle:platform" to a
// metrics snapshot. Every snapshot is validated.
func LoadStaticProvider(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseStaticProvider(data)
}

// ParseStaticProvider builds a StaticProvider from fixtures JSON.
func ParseStaticProvider(data []byte) (*StaticProvider, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	p := NewStaticProvider()
	for key, doc := range raw {
		account, err := model.ParseAccountIdentity(key)
		if err != nil {
			return nil, fmt.Errorf("fixture %q: %w", key, err)
		}
		m, err := model.DecodeAccountMetrics(doc)
		if err != nil {
			return nil, fmt.Errorf("fixture %q: %w", key, err)
		}
		p.Add(account, m)
	}
	return p, nil
}

// Add stores (or replaces) the snapshot for an account.
func (p *StaticProvider) Add(account model.AccountIdentity, m model.AccountMetrics) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots[account.Key()] = m
}

// Len returns the number of stored snapshots.
func (p *StaticProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.snapshots)
}

// FetchMetrics returns the stored snapshot for the account. Handles match case-insensitively.
func (p *StaticProvider) FetchMetrics(ctx context.Context, account model.AccountIdentity) (model.AccountMetrics, error) {
	if err := ctx.Err(); err != nil {
		return model.AccountMetrics{}, err
	}

	p.mu.RLock()
	m, ok := p.snapshots[account.Key()]
	p.mu.RUnlock()
	if !ok {
		return model.AccountMetrics{}, fmt.Errorf("%w: %s", port.ErrAccountNotFound, account)
	}
	return m, nil
}
