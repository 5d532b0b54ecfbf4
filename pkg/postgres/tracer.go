package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/clippintel/botscore/pkg/postgres")

var dbSystem = attribute.String("db.system", "postgresql")

// QueryTracer opens a client span around every query and batch. It implements
// pgx.QueryTracer and pgx.BatchTracer.
type QueryTracer struct{}

var (
	_ pgx.QueryTracer = QueryTracer{}
	_ pgx.BatchTracer = QueryTracer{}
)

func (QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx, _ = tracer.Start(ctx, "postgres.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(dbSystem, attribute.String("db.statement", data.SQL)),
	)
	return ctx
}

func (QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	endSpan(span, data.Err, data.CommandTag.RowsAffected())
}

func (QueryTracer) TraceBatchStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceBatchStartData) context.Context {
	size := 0
	if data.Batch != nil {
		size = data.Batch.Len()
	}
	ctx, _ = tracer.Start(ctx, "postgres.batch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(dbSystem, attribute.Int("db.batch_size", size)),
	)
	return ctx
}

func (QueryTracer) TraceBatchQuery(ctx context.Context, _ *pgx.Conn, data pgx.TraceBatchQueryData) {
	if data.Err != nil {
		trace.SpanFromContext(ctx).RecordError(data.Err, trace.WithAttributes(attribute.String("db.statement", data.SQL)))
	}
}

func (QueryTracer) TraceBatchEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceBatchEndData) {
	endSpan(trace.SpanFromContext(ctx), data.Err, -1)
}

func endSpan(span trace.Span, err error, rows int64) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if rows >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", rows))
	}
	span.End()
}
