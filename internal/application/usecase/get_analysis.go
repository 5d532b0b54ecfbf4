package usecase

import (
	"context"
	"fmt"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
)

// GetAnalysis is the use case for retrieving a stored analysis.
type GetAnalysis struct {
	repo port.AnalysisRepository
}

// NewGetAnalysis creates a new GetAnalysis use case. A nil repo disables it.
func NewGetAnalysis(repo port.AnalysisRepository) *GetAnalysis {
	return &GetAnalysis{repo: repo}
}

// Execute retrieves an analysis by ID.
func (uc *GetAnalysis) Execute(ctx context.Context, req dto.GetAnalysisRequest) (dto.AnalysisResponse, error) {
	if uc.repo == nil {
		return dto.AnalysisResponse{}, ErrStorageDisabled
	}
	result, err := uc.repo.FindByID(ctx, req.AnalysisID)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to find analysis: %w", err)
	}
	if result == nil {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %s", model.ErrAnalysisNotFound, req.AnalysisID)
	}

	return dto.FromModel(result), nil
}
