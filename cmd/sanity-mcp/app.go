package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"pkt.systems/pslog"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"github.com/Purple-Horizons/sanity-mcp/client"
	"github.com/Purple-Horizons/sanity-mcp/internal/svcfields"
	"github.com/Purple-Horizons/sanity-mcp/mcp"
)

const (
	projectIDKey     = "project_id"
	datasetKey       = "dataset"
	apiVersionKey    = "api_version"
	tokenKey         = "token"
	useCDNKey        = "use_cdn"
	metricsListenKey = "metrics_listen"
	otelTracesKey    = "otel_traces"
)

func submain(ctx context.Context) int {
	baseLogger := pslog.LoggerFromEnv(context.Background(),
		pslog.WithEnvPrefix("SANITY_LOG_"),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeStructured, MinLevel: pslog.InfoLevel}),
		pslog.WithEnvWriter(os.Stderr),
	).With("app", "sanity-mcp")
	cmd := newRootCommand(baseLogger)
	ctx = withSignalCancel(ctx)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if err != context.Canceled {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(baseLogger pslog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sanity-mcp",
		Short:         "sanity-mcp serves a Sanity Content Lake dataset as MCP tools over stdio",
		SilenceErrors: true,
		Example: `
  # Serve a public dataset read-only over stdio
  SANITY_PROJECT_ID=zp7mbokg sanity-mcp

  # Serve with write access and a metrics listener
  SANITY_PROJECT_ID=zp7mbokg SANITY_TOKEN=sk... sanity-mcp --metrics-listen 127.0.0.1:9464

  # One-off GROQ query against the staging dataset
  sanity-mcp query --project-id zp7mbokg --dataset staging '*[_type == "post"][0...3]'
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := sanityConfigFromViper()
			if err != nil {
				return err
			}
			svc, err := mcp.NewServer(mcp.NewServerRequest{
				Config: mcp.Config{
					Sanity:        cfg,
					MetricsListen: viper.GetString(metricsListenKey),
				},
				Logger:        baseLogger,
				ClientOptions: clientOptionsFromViper(),
			})
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("project-id", "p", "", "Sanity project id (required)")
	flags.StringP("dataset", "d", sanitymcp.DefaultDataset, "dataset name")
	flags.String("api-version", sanitymcp.DefaultAPIVersion, "API version date")
	flags.StringP("token", "t", "", "API token; omit for public read-only access")
	flags.String("cdn", "", "force CDN use: true or false (default: CDN for token-less reads)")
	flags.Bool("otel-traces", false, "instrument outbound HTTP with OpenTelemetry tracing")
	cmd.Flags().String("metrics-listen", "", "optional host:port for the Prometheus metrics listener")

	mustBindFlag(projectIDKey, "SANITY_PROJECT_ID", flags.Lookup("project-id"))
	mustBindFlag(datasetKey, "SANITY_DATASET", flags.Lookup("dataset"))
	mustBindFlag(apiVersionKey, "SANITY_API_VERSION", flags.Lookup("api-version"))
	mustBindFlag(tokenKey, "SANITY_TOKEN", flags.Lookup("token"))
	mustBindFlag(useCDNKey, "SANITY_USE_CDN", flags.Lookup("cdn"))
	mustBindFlag(otelTracesKey, "SANITY_OTEL_TRACES", flags.Lookup("otel-traces"))
	mustBindFlag(metricsListenKey, "SANITY_METRICS_LISTEN", cmd.Flags().Lookup("metrics-listen"))

	cliLogger := svcfields.WithSubsystem(baseLogger, "cli")
	cmd.AddCommand(
		newQueryCommand(cliLogger),
		newGetCommand(cliLogger),
		newPublishCommand(cliLogger),
		newUnpublishCommand(cliLogger),
		newUploadCommand(cliLogger),
		newVersionCommand(),
	)
	return cmd
}

func mustBindFlag(key, env string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for key %s not found", key))
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
	if env != "" {
		if err := viper.BindEnv(key, env); err != nil {
			panic(err)
		}
	}
}

// sanityConfigFromViper assembles the upstream configuration from flags and
// environment, failing fast when the project id is missing.
func sanityConfigFromViper() (sanitymcp.Config, error) {
	cfg := sanitymcp.Config{
		ProjectID:  strings.TrimSpace(viper.GetString(projectIDKey)),
		Dataset:    strings.TrimSpace(viper.GetString(datasetKey)),
		APIVersion: strings.TrimSpace(viper.GetString(apiVersionKey)),
		Token:      strings.TrimSpace(viper.GetString(tokenKey)),
	}
	if cfg.ProjectID == "" {
		return sanitymcp.Config{}, fmt.Errorf("project id required: set --project-id or SANITY_PROJECT_ID")
	}
	if raw := strings.TrimSpace(viper.GetString(useCDNKey)); raw != "" {
		use, err := strconv.ParseBool(raw)
		if err != nil {
			return sanitymcp.Config{}, fmt.Errorf("invalid --cdn value %q: %w", raw, err)
		}
		cfg.UseCDN = &use
	}
	cfg = cfg.WithDefaults()
	return cfg, cfg.Validate()
}

func clientOptionsFromViper() []client.Option {
	if !viper.GetBool(otelTracesKey) {
		return nil
	}
	return []client.Option{client.WithHTTPClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})}
}

func withSignalCancel(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(signals)
	}()
	return ctx
}
