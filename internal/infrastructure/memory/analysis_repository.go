package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
)

// Compile-time interface check.
var _ port.AnalysisRepository = (*AnalysisRepository)(nil)

// DefaultCapacity bounds an AnalysisRepository created with a non-positive capacity.
const DefaultCapacity = 10000

// AnalysisRepository keeps results in process memory. Once full, the oldest saved result
// is evicted.
type AnalysisRepository struct {
	byID     map[uuid.UUID]*model.BotAnalysisResult
	order    []uuid.UUID
	capacity int
	mu       sync.RWMutex
}

// NewAnalysisRepository creates an in-memory repository holding up to capacity results.
func NewAnalysisRepository(capacity int) *AnalysisRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &AnalysisRepository{
		byID:     make(map[uuid.UUID]*model.BotAnalysisResult),
		capacity: capacity,
	}
}

// Save stores a result, replacing any earlier copy with the same id.
func (r *AnalysisRepository) Save(ctx context.Context, result *model.BotAnalysisResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[result.ID()]; !exists {
		r.order = append(r.order, result.ID())
	}
	r.byID[result.ID()] = result

	for len(r.order) > r.capacity {
		delete(r.byID, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

// FindByID retrieves a result by its identifier.
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BotAnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrAnalysisNotFound, id)
	}
	return result, nil
}

// FindByAccount lists results for an account, newest first.
func (r *AnalysisRepository) FindByAccount(ctx context.Context, account model.AccountIdentity, limit, offset int) ([]*model.BotAnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var matches []*model.BotAnalysisResult
	for _, id := range r.order {
		if res := r.byID[id]; res.Account().Key() == account.Key() {
			matches = append(matches, res)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].AnalysisDate().After(matches[j].AnalysisDate())
	})

	if offset >= len(matches) {
		return []*model.BotAnalysisResult{}, nil
	}
	matches = matches[offset:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}
