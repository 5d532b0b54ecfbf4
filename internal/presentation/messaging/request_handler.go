package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/application/usecase"
	pkgkafka "github.com/clippintel/botscore/pkg/kafka"
)

// AccountAnalyzer runs one analysis. It is satisfied by *usecase.AnalyzeAccount.
type AccountAnalyzer interface {
	Execute(ctx context.Context, req dto.AnalyzeAccountRequest) (dto.AnalysisResponse, error)
}

// RequestHandler analyzes accounts named by messages on the request topic. The result is
// stored and announced by the use case, so nothing is written back here.
type RequestHandler struct {
	analyzer AccountAnalyzer
	logger   *slog.Logger
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(analyzer AccountAnalyzer, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{analyzer: analyzer, logger: logger}
}

// Handle processes one message. Undecodable or invalid requests are logged and dropped so
// they do not block the partition.
func (h *RequestHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var req dto.AnalyzeAccountRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		h.logger.Warn("dropping undecodable analysis request",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Headers))
	resp, err := h.analyzer.Execute(ctx, req)
	if errors.Is(err, usecase.ErrInvalidRequest) {
		h.logger.Warn("dropping invalid analysis request",
			"handle", req.Handle,
			"platform", req.Platform,
			"error", err,
		)
		return nil
	}
	if err != nil {
		return err
	}

	h.logger.Info("analysis request processed",
		"analysis_id", resp.ID,
		"handle", resp.Account.Handle,
		"bot_score", resp.BotScore,
		"degraded", resp.Degraded,
	)
	return nil
}
