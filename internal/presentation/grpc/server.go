package grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/clippintel/botscore/pkg/tlsutil"
)

// ServerConfig holds the gRPC listener settings.
type ServerConfig struct {
	Address     string
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

// Server wraps the gRPC server with bot detection handlers.
type Server struct {
	grpcServer *grpclib.Server
	health     *health.Server
	logger     *slog.Logger
	address    string
}

// NewServer creates a new gRPC server for the bot detection service. TLS is enabled when both
// certificate paths are set; a bad key pair is an error rather than a silent plaintext fallback.
func NewServer(handler BotDetectionServiceServer, cfg ServerConfig, logger *slog.Logger) (*Server, error) {
	serverOpts := []grpclib.ServerOption{
		grpclib.ChainUnaryInterceptor(
			recoveryInterceptor(logger),
			loggingInterceptor(logger),
		),
	}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		creds, err := tlsutil.ServerCredentials(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load gRPC TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpclib.Creds(creds))
		logger.Info("gRPC TLS enabled", slog.String("cert", cfg.TLSCertFile))
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpclib.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	RegisterBotDetectionServiceServer(grpcServer, handler)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
		address:    cfg.Address,
	}, nil
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on an existing listener.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server starting",
		slog.String("address", listener.Addr().String()),
	)
	return s.grpcServer.Serve(listener)
}

// Stop marks the service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
