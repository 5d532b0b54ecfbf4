package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/clippintel/botscore/pkg/postgres"
)

func TestQueryTracer(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	qt := postgres.QueryTracer{}
	ctx := context.Background()

	qctx := qt.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "DELETE FROM bot_analyses"})
	qt.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("DELETE 3")})

	qctx = qt.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT broken"})
	qt.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{Err: errors.New("syntax error")})

	batch := &pgx.Batch{}
	batch.Queue("INSERT INTO bot_analysis_red_flags VALUES (1)")
	batch.Queue("INSERT INTO bot_analysis_red_flags VALUES (2)")
	bctx := qt.TraceBatchStart(ctx, nil, pgx.TraceBatchStartData{Batch: batch})
	qt.TraceBatchEnd(bctx, nil, pgx.TraceBatchEndData{})

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	ok := spans[0]
	assert.Equal(t, "postgres.query", ok.Name())
	assert.Contains(t, ok.Attributes(), attribute.String("db.statement", "DELETE FROM bot_analyses"))
	assert.Contains(t, ok.Attributes(), attribute.Int64("db.rows_affected", 3))
	assert.Equal(t, codes.Unset, ok.Status().Code)

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "syntax error", failed.Status().Description)

	batched := spans[2]
	assert.Equal(t, "postgres.batch", batched.Name())
	assert.Contains(t, batched.Attributes(), attribute.Int("db.batch_size", 2))
}
