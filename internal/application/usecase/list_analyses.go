package usecase

import (
	"context"
	"fmt"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/domain/port"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListAnalyses is the use case for listing an account's stored analyses, newest first.
type ListAnalyses struct {
	repo port.AnalysisRepository
}

// NewListAnalyses creates a new ListAnalyses use case. A nil repo disables it.
func NewListAnalyses(repo port.AnalysisRepository) *ListAnalyses {
	return &ListAnalyses{repo: repo}
}

// Execute lists analyses. Limit defaults to 20 and is capped at 100.
func (uc *ListAnalyses) Execute(ctx context.Context, req dto.ListAnalysesRequest) (dto.ListAnalysesResponse, error) {
	if uc.repo == nil {
		return dto.ListAnalysesResponse{}, ErrStorageDisabled
	}
	account, err := toIdentity(dto.AnalyzeAccountRequest{Handle: req.Handle, Platform: req.Platform})
	if err != nil {
		return dto.ListAnalysesResponse{}, err
	}
	if req.Offset < 0 {
		return dto.ListAnalysesResponse{}, fmt.Errorf("%w: offset must be non-negative", ErrInvalidRequest)
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	results, err := uc.repo.FindByAccount(ctx, account, limit, req.Offset)
	if err != nil {
		return dto.ListAnalysesResponse{}, fmt.Errorf("failed to list analyses: %w", err)
	}

	return dto.ListAnalysesResponse{Analyses: dto.FromModels(results)}, nil
}
