package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/domain/service"
	"github.com/clippintel/botscore/internal/infrastructure/provider"
	grpcpresentation "github.com/clippintel/botscore/internal/presentation/grpc"
	"github.com/clippintel/botscore/pkg/observability"
	"github.com/clippintel/botscore/pkg/tlsutil"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	logLevel    string
	fixtures    string
	providerURL string
	apiKey      string
	server      string
	caFile      string
	timeout     time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "botscore",
		Short: "Score social media accounts for bot activity",
		Long: `botscore estimates how likely an account is automated or runs on purchased
engagement. Analyses run locally against a metrics provider, or remotely on a botscored
server when --server is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.fixtures, "fixtures", "", "JSON file of metrics snapshots keyed by handle:platform")
	flags.StringVar(&opts.providerURL, "provider-url", "", "base URL of a remote metrics provider")
	flags.StringVar(&opts.apiKey, "provider-api-key", os.Getenv("METRICS_PROVIDER_API_KEY"), "metrics provider API key")
	flags.StringVar(&opts.server, "server", "", "botscored gRPC address; analyses run remotely when set")
	flags.StringVar(&opts.caFile, "ca", "", "CA certificate for a TLS --server")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for the command")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
		newGetCmd(opts),
		newDevCertsCmd(),
		newMigrateCmd(),
	)

	return rootCmd
}

func (o *globalOptions) logger(stderr io.Writer) *slog.Logger {
	return observability.InitLogger(observability.LogConfig{
		Output: stderr,
		Level:  o.logLevel,
		Format: "text",
	})
}

// metricsProvider resolves the provider for local analyses.
func (o *globalOptions) metricsProvider(logger *slog.Logger) (port.MetricsProvider, error) {
	switch {
	case o.providerURL != "" && o.fixtures != "":
		return nil, errors.New("--provider-url and --fixtures are mutually exclusive")
	case o.providerURL != "":
		return provider.NewHTTPProvider(provider.HTTPConfig{
			BaseURL:    o.providerURL,
			APIKey:     o.apiKey,
			MaxRetries: 3,
		}, logger), nil
	case o.fixtures != "":
		p, err := provider.LoadStaticProvider(o.fixtures)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.New("no metrics source: set --fixtures, --provider-url or --server")
	}
}

func (o *globalOptions) orchestrator(logger *slog.Logger, pacing time.Duration) (*service.Orchestrator, error) {
	metrics, err := o.metricsProvider(logger)
	if err != nil {
		return nil, err
	}
	return service.NewOrchestrator(service.NewEngine(), metrics, nil, logger, service.OrchestratorConfig{
		Pacing: pacing,
	}), nil
}

// dial connects to --server. The caller closes the connection.
func (o *globalOptions) dial() (*grpcpresentation.BotDetectionServiceClient, *grpclib.ClientConn, error) {
	var creds credentials.TransportCredentials = insecure.NewCredentials()
	if o.caFile != "" {
		tlsCreds, err := tlsutil.ClientCredentials(o.caFile)
		if err != nil {
			return nil, nil, err
		}
		creds = tlsCreds
	}

	conn, err := grpclib.NewClient(o.server, grpclib.WithTransportCredentials(creds))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", o.server, err)
	}
	return grpcpresentation.NewBotDetectionServiceClient(conn), conn, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
