package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/watcher"
)

// watchInterval is the delay between daemon polls.
var watchInterval time.Duration

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print ringing alarms and finished timers as they happen.",
		Long: `Polls the daemon until interrupted and prints a line whenever an alarm starts
or stops ringing, the countdown finishes or the sleep timer ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return watcher.Run(ctx, &watcher.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				PollInterval:  watchInterval,
				Output:        cmd.OutOrStdout(),
			})
		},
	}

	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", watcher.DefaultPollInterval, "poll interval")

	rootCmd.AddCommand(watchCmd)
}
