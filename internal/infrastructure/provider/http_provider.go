package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
)

// Compile-time interface check.
var _ port.MetricsProvider = (*HTTPProvider)(nil)

const maxResponseBytes = 1 << 20

var tracer = otel.Tracer("github.com/clippintel/botscore/internal/infrastructure/provider")

// HTTPConfig configures an HTTPProvider.
type HTTPConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	InitialBackoff time.Duration
	MaxRetries     int
	RatePerMinute  int
}

// HTTPProvider fetches snapshots from a remote metrics service. Server errors and network
// failures are retried with exponential backoff; every attempt waits on a shared rate limiter.
type HTTPProvider struct {
	client         *http.Client
	limiter        *rate.Limiter
	logger         *slog.Logger
	baseURL        string
	apiKey         string
	initialBackoff time.Duration
	maxRetries     int
}

// NewHTTPProvider creates a new HTTPProvider.
func NewHTTPProvider(cfg HTTPConfig, logger *slog.Logger) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	initial := cfg.InitialBackoff
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}
	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}

	return &HTTPProvider{
		client:         &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(limit, 1),
		logger:         logger,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		initialBackoff: initial,
		maxRetries:     max(cfg.MaxRetries, 0),
	}
}

type metricsRequest struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
}

// FetchMetrics requests the snapshot for an account.
func (p *HTTPProvider) FetchMetrics(ctx context.Context, account model.AccountIdentity) (model.AccountMetrics, error) {
	ctx, span := tracer.Start(ctx, "HTTPProvider.FetchMetrics",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("botscore.handle", account.Handle),
			attribute.String("botscore.platform", account.Platform.String()),
		),
	)
	defer span.End()

	body, err := json.Marshal(metricsRequest{Handle: account.Handle, Platform: account.Platform.String()})
	if err != nil {
		return model.AccountMetrics{}, fmt.Errorf("failed to encode request: %w", err)
	}

	var metrics model.AccountMetrics
	attempt := 0
	operation := func() error {
		attempt++
		if err := p.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return backoff.Permanent(ctxErr)
			}
			return backoff.Permanent(fmt.Errorf("%w: rate limiter: %v", port.ErrProviderUnavailable, err))
		}
		m, err := p.fetchOnce(ctx, body, account)
		if err != nil {
			return err
		}
		metrics = m
		return nil
	}

	notify := func(err error, wait time.Duration) {
		p.logger.WarnContext(ctx, "metrics fetch failed, retrying",
			"handle", account.Handle,
			"platform", account.Platform.String(),
			"attempt", attempt,
			"retry_in", wait,
			"error", err,
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), uint64(p.maxRetries)), ctx)
	err = backoff.RetryNotify(operation, policy, notify)
	span.SetAttributes(attribute.Int("botscore.attempts", attempt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.AccountMetrics{}, err
	}
	return metrics, nil
}

func (p *HTTPProvider) newBackOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.initialBackoff,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         5 * time.Second,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

// fetchOnce performs one request. Errors that must not be retried come back wrapped in
// backoff.Permanent.
func (p *HTTPProvider) fetchOnce(ctx context.Context, body []byte, account model.AccountIdentity) (model.AccountMetrics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/metrics", bytes.NewReader(body))
	if err != nil {
		return model.AccountMetrics{}, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.AccountMetrics{}, backoff.Permanent(ctxErr)
		}
		return model.AccountMetrics{}, fmt.Errorf("%w: %v", port.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.AccountMetrics{}, fmt.Errorf("%w: failed to read response body: %v", port.ErrProviderUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.AccountMetrics{}, backoff.Permanent(fmt.Errorf("%w: %s", port.ErrAccountNotFound, account))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return model.AccountMetrics{}, fmt.Errorf("%w: status %d", port.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return model.AccountMetrics{}, backoff.Permanent(
			fmt.Errorf("%w: status %d: %s", port.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(payload))),
		)
	}

	m, err := model.DecodeAccountMetrics(payload)
	if err != nil {
		return model.AccountMetrics{}, backoff.Permanent(err)
	}
	return m, nil
}
