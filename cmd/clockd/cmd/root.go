package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/server"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// database overrides the SQLite file alarms are stored in.
	database string
	// logLevel overrides the configured log level.
	logLevel string
	// debug suppresses the sleep timer's host shutdown.
	debug bool
	// allowMultiple skips the single-instance check.
	allowMultiple bool

	// rootCmd represents the base command for running the clock daemon.
	rootCmd = &cobra.Command{
		Use:   "clockd [listen-address]",
		Short: "Run the alarm clock daemon.",
		Long: `Starts the clock daemon that owns alarms, the countdown timer, the stopwatch
and the sleep timer, and serves them over gRPC to clockctl.

Alarms are stored in SQLite and rescheduled on start, so alarms survive restarts.
Listen address can be provided as argument to override config (e.g., 127.0.0.1:9090).
Only one daemon runs per host unless --allow-multiple is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				Database:      database,
				LogLevel:      logLevel,
				Debug:         debug,
				AllowMultiple: allowMultiple,
			})
		},
	}
)

// Execute runs the clockd CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&database, "database", "", "path to the SQLite alarm database")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "skip the single-instance check")

	// Hidden debug flag to skip shutdown for debugging.
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "skip host shutdown for debugging")

	err := rootCmd.Flags().MarkHidden("debug")
	if err != nil {
		panic(err)
	}
}
