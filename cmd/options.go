package main

import (
	"context"
	"encoding/json"
	"finplan/internal/config"
	"finplan/pkg/logger"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func optionsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Prints the reference data offered by the planning service",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Planner.Timeout)
			defer cancel()

			loader, closeCache := getLoader(ctx, cfg, getPlanner(ctx, cfg, nil))
			defer closeCache()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(loader.Load(ctx)); err != nil {
				logger.Error(ctx, "could not print options", zap.Error(err))
			}
		},
	}

	return cmd
}
