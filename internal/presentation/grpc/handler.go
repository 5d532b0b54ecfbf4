package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/application/usecase"
	"github.com/clippintel/botscore/internal/domain/model"
)

// Compile-time assertion that BotDetectionHandler implements BotDetectionServiceServer.
var _ BotDetectionServiceServer = (*BotDetectionHandler)(nil)

// BotDetectionHandler implements the gRPC BotDetectionServiceServer interface.
type BotDetectionHandler struct {
	UnimplementedBotDetectionServiceServer
	analyzeAccount *usecase.AnalyzeAccount
	analyzeBatch   *usecase.AnalyzeBatch
	getAnalysis    *usecase.GetAnalysis
	listAnalyses   *usecase.ListAnalyses
	logger         *slog.Logger
}

// NewBotDetectionHandler creates a new gRPC handler.
func NewBotDetectionHandler(
	analyzeAccount *usecase.AnalyzeAccount,
	analyzeBatch *usecase.AnalyzeBatch,
	getAnalysis *usecase.GetAnalysis,
	listAnalyses *usecase.ListAnalyses,
	logger *slog.Logger,
) *BotDetectionHandler {
	return &BotDetectionHandler{
		analyzeAccount: analyzeAccount,
		analyzeBatch:   analyzeBatch,
		getAnalysis:    getAnalysis,
		listAnalyses:   listAnalyses,
		logger:         logger,
	}
}

// AnalyzeAccount scores one account. Provider failures come back as a degraded analysis,
// not as an RPC error.
func (h *BotDetectionHandler) AnalyzeAccount(ctx context.Context, req *AnalyzeAccountRequest) (*AnalyzeAccountResponse, error) {
	if req == nil || req.Account == nil {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}

	result, err := h.analyzeAccount.Execute(ctx, dto.AnalyzeAccountRequest{
		Handle:   req.Account.Handle,
		Platform: req.Account.Platform,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "AnalyzeAccount", err)
	}

	return &AnalyzeAccountResponse{Analysis: toAnalysisMsg(result)}, nil
}

// AnalyzeBatch scores a list of accounts sequentially.
func (h *BotDetectionHandler) AnalyzeBatch(ctx context.Context, req *AnalyzeBatchRequest) (*AnalyzeBatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	accounts := make([]dto.AnalyzeAccountRequest, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		if a == nil {
			return nil, status.Error(codes.InvalidArgument, "accounts must not contain null entries")
		}
		accounts = append(accounts, dto.AnalyzeAccountRequest{Handle: a.Handle, Platform: a.Platform})
	}

	result, err := h.analyzeBatch.Execute(ctx, dto.AnalyzeBatchRequest{Accounts: accounts})
	if err != nil {
		return nil, h.toStatus(ctx, "AnalyzeBatch", err)
	}

	s := result.Summary
	return &AnalyzeBatchResponse{
		Analyses: toAnalysisMsgs(result.Results),
		Summary: &BatchSummaryMsg{
			Total:           int32(s.Total),
			Completed:       int32(s.Completed),
			Failed:          int32(s.Failed),
			HighRisk:        int32(s.HighRisk),
			AverageBotScore: s.AverageBotScore,
		},
	}, nil
}

// GetAnalysis returns a stored analysis.
func (h *BotDetectionHandler) GetAnalysis(ctx context.Context, req *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAnalysis.Execute(ctx, dto.GetAnalysisRequest{AnalysisID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "GetAnalysis", err)
	}

	return &GetAnalysisResponse{Analysis: toAnalysisMsg(result)}, nil
}

// ListAnalyses returns the stored analyses of an account, newest first.
func (h *BotDetectionHandler) ListAnalyses(ctx context.Context, req *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	if req == nil || req.Account == nil {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}

	result, err := h.listAnalyses.Execute(ctx, dto.ListAnalysesRequest{
		Handle:   req.Account.Handle,
		Platform: req.Account.Platform,
		Limit:    int(req.PageSize),
		Offset:   int(req.Offset),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "ListAnalyses", err)
	}

	return &ListAnalysesResponse{Analyses: toAnalysisMsgs(result.Analyses)}, nil
}

// toStatus maps use case errors onto gRPC codes. Unexpected errors are logged and hidden.
func (h *BotDetectionHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrAnalysisNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrStorageDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "rpc failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}
