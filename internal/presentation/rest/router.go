package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig collects the handlers mounted by NewRouter. Metrics and RateLimiter may be nil.
type RouterConfig struct {
	Analyses       *AnalysisHandler
	Health         *HealthHandler
	Metrics        http.Handler
	RateLimiter    *ClientRateLimiter
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// BatchTimeout bounds POST /v1/analyses/batch separately from RequestTimeout, since a
	// batch is paced item by item. Zero leaves the batch bounded only by the client.
	BatchTimeout time.Duration
}

// BatchTimeout returns the time a full batch of maxItems needs: one pacing gap and one
// provider call per item.
func BatchTimeout(maxItems int, pacing, perItem time.Duration) time.Duration {
	return time.Duration(maxItems) * (pacing + perItem)
}

// NewRouter builds the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(cfg.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", cfg.Health.Healthz)
	router.Get("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics)
	}

	router.Route("/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
			r.Post("/analyses", cfg.Analyses.AnalyzeAccount)
			r.Get("/analyses/{id}", cfg.Analyses.GetAnalysis)
			r.Get("/accounts/{platform}/{handle}/analyses", cfg.Analyses.ListAnalyses)
		})

		r.With(withDeadline(cfg.BatchTimeout)).Post("/analyses/batch", cfg.Analyses.AnalyzeBatch)
	})

	return router
}

// withDeadline attaches a context deadline when d is positive.
func withDeadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "http request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
