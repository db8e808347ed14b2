package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"winugly/internal/app"
	"winugly/internal/config"
	"winugly/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Win Ugly Coach API
// @version 1.0
// @description Strategy coaching reports generated by Gemini.
// @BasePath /
func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "winugly-server",
		Short:        "Serve the Win Ugly strategy coach",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (default $WINUGLY_CONFIG)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, config.SetupMessage)
		}
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Session.EphemeralSecret {
		logger.Warn("JWT_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.Close(context.Background())

	if err := a.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server exited")
	return nil
}
