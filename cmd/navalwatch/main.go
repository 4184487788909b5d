package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"navalwatch/internal/app"
	"navalwatch/internal/config"
	"navalwatch/internal/logger"
)

var version = "0.2.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "navalwatch",
		Short:   "Aggregate naval/AI news feeds into a static daily digest",
		Long:    "Navalwatch fetches open RSS/JSON news feeds, deduplicates and scores entries by keyword relevance, and publishes a ranked static HTML digest with a CSV export.",
		Version: version,
		// A failed run must surface as a non-zero exit, not a usage dump.
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			logger.Init()
		},
	}

	rootCmd.SetVersionTemplate("navalwatch version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/feeds.yaml", "path to the YAML config file")

	rootCmd.AddCommand(newRunCmd(&configPath))
	rootCmd.AddCommand(newWatchCmd(&configPath))

	return rootCmd
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one digest run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.New(cfg).Run(ctx)
		},
	}
}

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the digest on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := app.New(cfg)
			c := cron.New()
			_, err = c.AddFunc(cfg.WatchSchedule, func() {
				// A failed scheduled run waits for the next tick.
				if err := runner.Run(ctx); err != nil {
					logger.Error("scheduled run failed", "error", err)
				}
			})
			if err != nil {
				return err
			}

			logger.Info("watch started", "schedule", cfg.WatchSchedule)
			c.Start()
			<-ctx.Done()

			logger.Info("watch stopping")
			<-c.Stop().Done()
			return nil
		},
	}
}
