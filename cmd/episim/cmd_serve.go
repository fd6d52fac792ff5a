package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/episim/internal/config"
	"github.com/katalvlaran/episim/internal/server"
	"github.com/katalvlaran/episim/internal/session"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulation sessions over HTTP",
		Long: `Start the JSON API. Settings come from defaults, then the YAML file
given by --config, then EPISIM_* environment variables, then flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := commandLogger(cmd, cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file")
	cmd.Flags().String("addr", "", "Listen address, overrides server.addr")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	registry := session.NewRegistry(cfg, logger)
	srv := server.NewServer(cfg, registry, logger)

	logger.Info("starting episim",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.Int("max_sessions", cfg.Server.MaxSessions),
		zap.Int("max_nodes", cfg.Network.MaxNodes),
		zap.Int("max_edges", cfg.Network.MaxEdges),
	)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("stopped")

	return nil
}
