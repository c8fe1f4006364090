// Package main provides the CLI entrypoint for the financial planning intake service.
// It wires subcommands (serve, options), loads configuration, and initializes logging.
package main

import (
	"context"
	"finplan/internal/config"
	"finplan/internal/refdata"
	"finplan/pkg/logger"
	"finplan/pkg/metrics"
	"finplan/pkg/planner/httpplanner"
	"finplan/pkg/refcache"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPlanner creates the planning service client using configuration values.
func getPlanner(ctx context.Context, cfg *config.Config, instruments *metrics.Instruments) *httpplanner.Client {
	client, err := httpplanner.New(&http.Client{Timeout: cfg.Planner.Timeout}, httpplanner.Options{
		BaseURL:       cfg.Planner.BaseURL,
		MaxReportSize: cfg.Planner.MaxReportSize,
		Instruments:   instruments,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create planning service client", zap.Error(err))
	}

	return client
}

// getLoader creates the reference data loader, backed by the Redis cache when
// it is enabled, and returns it along with a cleanup function.
func getLoader(ctx context.Context, cfg *config.Config, client *httpplanner.Client) (*refdata.Loader, func()) {
	if !cfg.ReferenceCache.Enabled {
		return refdata.NewLoader(client, nil), func() {}
	}

	rdb, err := refcache.NewClient(ctx,
		cfg.ReferenceCache.Addr,
		cfg.ReferenceCache.Password,
		cfg.ReferenceCache.DB)
	if err != nil {
		logger.Fatal(ctx, "could not connect to reference cache", zap.Error(err))
	}
	cache := refcache.New(rdb, refcache.Options{
		TTL:    cfg.ReferenceCache.TTL,
		Prefix: cfg.ReferenceCache.Prefix,
	})

	return refdata.NewLoader(client, cache), func() {
		logger.Info(ctx, "closing reference cache client...")
		if err := rdb.Close(); err != nil {
			logger.Warn(ctx, "could not close reference cache connection", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "finplan",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	if err = logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		optionsCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
