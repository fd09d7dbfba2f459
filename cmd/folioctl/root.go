package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"folio/config"
	"folio/content"
	"folio/export"
	"folio/logging"
	"folio/storage"
	"folio/telemetry"
)

var (
	cfgFile   string
	appConfig config.Config
	logger    *slog.Logger

	shutdownTracer telemetry.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "folioctl",
	Short: "Operate the folio content gateway",
	Long: `folioctl reads posts and pages from the configured publication,
exports content snapshots to S3, aggregates page view events and
browses content in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shutdownTracer != nil {
			return shutdownTracer(context.Background())
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	// stdout carries command output; logs go to stderr
	logger = logging.New(os.Stderr, cfg.Log).With("cmd", cmd.Name())
	slog.SetDefault(logger)

	shutdown, err := telemetry.InitTracer(cmd.Context(), cfg, "folioctl")
	if err != nil {
		logger.Warn("Failed to init tracer", "error", err)
		return nil
	}
	shutdownTracer = shutdown
	return nil
}

func newGateway() (*content.Gateway, error) {
	return content.FromConfig(appConfig.Content, logger)
}

// newExporter wires the gateway and, when a bucket is configured, S3.
func newExporter(ctx context.Context) (*export.Exporter, error) {
	gw, err := newGateway()
	if err != nil {
		return nil, err
	}

	cfg := export.Config{
		Source: gw,
		Pages:  appConfig.Content.Pages,
		Logger: logger,
	}
	if appConfig.S3Enabled() {
		s3c, err := storage.NewS3(ctx, storage.S3Config{
			Region:       appConfig.S3.Region,
			Profile:      appConfig.S3.Profile,
			UsePathStyle: appConfig.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init S3 client: %w", err)
		}
		cfg.Store = s3c
		cfg.Bucket = appConfig.S3.Bucket
		cfg.Prefix = appConfig.S3.Prefix
	}
	return export.New(cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
