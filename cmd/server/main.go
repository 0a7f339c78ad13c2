package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Prajapati29/syncroom/internal/app"
	"github.com/Prajapati29/syncroom/internal/config"
	"github.com/Prajapati29/syncroom/internal/log"
)

func main() {
	var (
		configPath string
		overrides  config.Config
	)

	rootCmd := &cobra.Command{
		Use:   "syncroom-server",
		Short: "Synchronized watch-party room server",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrapLog := log.New(overrides.LogLevel)

			cfg, path, err := config.Load(bootstrapLog, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting syncroom server")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(&cfg, logger)
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.DurationVar(&overrides.RoomIdleThreshold, "room-idle-threshold", 0, "evict empty rooms idle longer than this")
	flags.DurationVar(&overrides.SweepInterval, "sweep-interval", 0, "period of the idle-room sweep")
	flags.DurationVar(&overrides.MetadataTimeout, "metadata-timeout", 0, "bound on one metadata lookup")
	flags.IntVar(&overrides.ChatCapacity, "chat-capacity", 0, "chat messages kept per room")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
