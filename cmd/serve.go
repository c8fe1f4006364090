package main

import (
	"context"
	"errors"
	"finplan/internal/api"
	"finplan/internal/api/handler/v1handler"
	"finplan/internal/config"
	"finplan/internal/report"
	"finplan/pkg/logger"
	"finplan/pkg/metrics"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getInstruments creates the otel instruments exported through the
// Prometheus registry, along with a function flushing them on shutdown.
func getInstruments(ctx context.Context) (*metrics.Instruments, func(ctx context.Context)) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	instruments, err := metrics.NewInstruments(mp)
	if err != nil {
		logger.Fatal(ctx, "could not create instruments", zap.Error(err))
	}

	return instruments, func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func setupServer(ctx context.Context, cfg *config.Config, v1 *v1handler.Handler) func(ctx context.Context) {
	server := api.NewServer(api.Deps{V1: v1}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the intake API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			instruments, stopInstruments := getInstruments(ctx)
			client := getPlanner(ctx, cfg, instruments)
			loader, closeCache := getLoader(ctx, cfg, client)
			defer closeCache()

			v1 := v1handler.New(v1handler.Deps{
				Planner:     client,
				Loader:      loader,
				Exporter:    report.NewExporter(client, instruments),
				Instruments: instruments,
			}, v1handler.NewOptions(cfg))
			go v1.Sessions().Run(ctx, cfg.Session.SweepInterval)

			stopWebserver := setupServer(ctx, cfg, v1)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopInstruments(shutdownCtx)
		},
	}

	return cmd
}
