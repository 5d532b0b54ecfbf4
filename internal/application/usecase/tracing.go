package usecase

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/clippintel/botscore/internal/domain/model"
)

var tracer = otel.Tracer("github.com/clippintel/botscore/internal/application/usecase")

func annotateResult(span trace.Span, r *model.BotAnalysisResult) {
	span.SetAttributes(
		attribute.String("botscore.analysis_id", r.ID().String()),
		attribute.String("botscore.platform", r.Account().Platform.String()),
		attribute.Int("botscore.bot_score", r.BotScore()),
		attribute.String("botscore.risk_level", r.RiskLevel().String()),
		attribute.Bool("botscore.degraded", r.IsDegraded()),
	)
	if r.IsDegraded() {
		span.SetStatus(codes.Error, "analysis degraded")
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
