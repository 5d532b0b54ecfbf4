package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clippintel/botscore/internal/application/usecase"
	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/domain/service"
	"github.com/clippintel/botscore/internal/infrastructure/config"
	kafkainfra "github.com/clippintel/botscore/internal/infrastructure/kafka"
	"github.com/clippintel/botscore/internal/infrastructure/memory"
	"github.com/clippintel/botscore/internal/infrastructure/postgres"
	"github.com/clippintel/botscore/internal/infrastructure/provider"
	"github.com/clippintel/botscore/internal/infrastructure/telemetry"
	grpcpresentation "github.com/clippintel/botscore/internal/presentation/grpc"
	"github.com/clippintel/botscore/internal/presentation/messaging"
	"github.com/clippintel/botscore/internal/presentation/rest"
	"github.com/clippintel/botscore/migrations"
	pkgkafka "github.com/clippintel/botscore/pkg/kafka"
	"github.com/clippintel/botscore/pkg/observability"
	pkgpostgres "github.com/clippintel/botscore/pkg/postgres"
)

const serviceName = "botscored"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("botscored exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting botscored",
		slog.String("http_port", cfg.HTTPPort),
		slog.String("grpc_port", cfg.GRPCPort),
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", slog.String("error", err.Error()))
	} else {
		defer shutdownOnExit(logger, "tracer", shutdownTracer)
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer shutdownOnExit(logger, "meter provider", meterProvider.Shutdown)

	recorder, err := telemetry.NewRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create telemetry recorder: %w", err)
	}

	checks := map[string]rest.ReadinessCheck{}

	// Storage.
	repo, closeRepo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()
	if pool, ok := repo.(interface{ Ping(context.Context) error }); ok {
		checks["database"] = pool.Ping
	}

	// Messaging.
	var (
		publisher port.EventPublisher
		producer  *pkgkafka.Producer
	)
	kafkaCfg := pkgkafka.Config{
		ClientID:      cfg.KafkaClientID,
		ConsumerGroup: cfg.KafkaConsumerGroup,
		Brokers:       cfg.KafkaBrokers,
		TLS:           cfg.KafkaTLS,
		SASL: pkgkafka.SASLConfig{
			Mechanism: cfg.KafkaSASLMechanism,
			Username:  cfg.KafkaSASLUsername,
			Password:  cfg.KafkaSASLPassword,
		},
	}
	if cfg.PublishEvents() {
		producer, err = pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("failed to close kafka producer", slog.String("error", err.Error()))
			}
		}()
		publisher = kafkainfra.NewPublisher(producer, cfg.KafkaTopic, logger)
		checks["kafka"] = producer.Ping
		logger.Info("publishing analysis events", slog.String("topic", cfg.KafkaTopic))
	}

	// Metrics provider.
	metrics, err := newMetricsProvider(cfg, logger)
	if err != nil {
		return err
	}

	// Wire domain services.
	orchestrator := service.NewOrchestrator(service.NewEngine(), metrics, recorder, logger, service.OrchestratorConfig{
		Pacing: cfg.BatchPacing,
	})

	// Wire use cases.
	analyzeAccountUC := usecase.NewAnalyzeAccount(orchestrator, repo, publisher, logger)
	analyzeBatchUC := usecase.NewAnalyzeBatch(orchestrator, repo, publisher, logger)
	getAnalysisUC := usecase.NewGetAnalysis(repo)
	listAnalysesUC := usecase.NewListAnalyses(repo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewBotDetectionHandler(analyzeAccountUC, analyzeBatchUC, getAnalysisUC, listAnalysesUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		Reflection:  cfg.GRPCReflection,
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	var limiter *rest.ClientRateLimiter
	if cfg.HTTPRateLimitRPS > 0 {
		limiter = rest.NewClientRateLimiter(float64(cfg.HTTPRateLimitRPS), cfg.HTTPRateLimitBurst)
	}
	// A full batch outlives the per-request timeout; the write deadline has to cover it.
	batchTimeout := rest.BatchTimeout(usecase.MaxBatchSize, cfg.BatchPacing, cfg.ProviderTimeout)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Analyses:     rest.NewAnalysisHandler(analyzeAccountUC, analyzeBatchUC, getAnalysisUC, listAnalysesUC, logger),
			Health:       rest.NewHealthHandler(serviceName, checks, logger),
			Metrics:      metricsHandler,
			RateLimiter:  limiter,
			Logger:       logger,
			BatchTimeout: batchTimeout,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: max(120*time.Second, batchTimeout+30*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if cfg.ConsumeRequests() {
		handler := messaging.NewRequestHandler(analyzeAccountUC, logger)
		consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.KafkaRequestTopic, handler.Handle, logger)
		if err != nil {
			return fmt.Errorf("failed to create kafka consumer: %w", err)
		}
		defer func() {
			if err := consumer.Close(); err != nil {
				logger.Error("failed to close kafka consumer", slog.String("error", err.Error()))
			}
		}()
		go func() {
			if err := consumer.Start(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("kafka consumer error: %w", err)
			}
		}()
		logger.Info("consuming analysis requests", slog.String("topic", cfg.KafkaRequestTopic))
	}

	logger.Info("botscored started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", slog.String("error", runErr.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down botscored")
	stopConsumer()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	grpcServer.Stop()

	logger.Info("botscored stopped")
	return runErr
}

// newRepository picks the result store: none when persistence is off, PostgreSQL when a
// database is configured, process memory otherwise.
func newRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.AnalysisRepository, func(), error) {
	if !cfg.PersistResults {
		logger.Info("result persistence disabled")
		return nil, func() {}, nil
	}
	if !cfg.UsePostgres() {
		logger.Warn("DATABASE_URL not set, keeping results in memory",
			slog.Int("capacity", cfg.MemoryCapacity),
		)
		return memory.NewAnalysisRepository(cfg.MemoryCapacity), func() {}, nil
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 30*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		URL:            cfg.DatabaseURL,
		MaxConns:       int32(cfg.DatabaseMaxConns),
		ConnectRetries: uint64(max(cfg.DatabaseConnectRetries, 0)),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database")

	migrationSource := pkgpostgres.Migrations{FS: migrations.FS}
	if cfg.MigrationsDir != "" {
		migrationSource = pkgpostgres.Migrations{URL: cfg.MigrationsDir}
	}
	if err := pkgpostgres.MigrateUp(cfg.DatabaseURL, migrationSource); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &pingableRepository{
		AnalysisRepository: postgres.NewAnalysisRepository(pool),
		pool:               pool,
	}, pool.Close, nil
}

// pingableRepository exposes the pool health check next to the repository.
type pingableRepository struct {
	*postgres.AnalysisRepository
	pool *pgxpool.Pool
}

func (r *pingableRepository) Ping(ctx context.Context) error {
	return pkgpostgres.Ping(ctx, r.pool)
}

func newMetricsProvider(cfg *config.Config, logger *slog.Logger) (port.MetricsProvider, error) {
	switch {
	case cfg.ProviderURL != "":
		logger.Info("using HTTP metrics provider", slog.String("url", cfg.ProviderURL))
		return provider.NewHTTPProvider(provider.HTTPConfig{
			BaseURL:       cfg.ProviderURL,
			APIKey:        cfg.ProviderAPIKey,
			Timeout:       cfg.ProviderTimeout,
			MaxRetries:    cfg.ProviderMaxRetries,
			RatePerMinute: cfg.ProviderRatePerMinute,
		}, logger), nil
	case cfg.ProviderFixtures != "":
		p, err := provider.LoadStaticProvider(cfg.ProviderFixtures)
		if err != nil {
			return nil, fmt.Errorf("failed to load metrics fixtures: %w", err)
		}
		logger.Info("using fixture metrics provider",
			slog.String("path", cfg.ProviderFixtures),
			slog.Int("accounts", p.Len()),
		)
		return p, nil
	default:
		logger.Warn("no metrics provider configured, every analysis will degrade")
		return provider.NewStaticProvider(), nil
	}
}

func shutdownOnExit(logger *slog.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.String("component", name), slog.String("error", err.Error()))
	}
}
