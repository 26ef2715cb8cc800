package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// sleepSound overrides the configured sleep sound.
	sleepSound string
	// sleepShutdown asks the daemon to shut the host down when the timer ends.
	sleepShutdown bool

	sleepCmd = &cobra.Command{
		Use:   "sleep",
		Short: "Control the sleep timer.",
	}

	sleepStartCmd = &cobra.Command{
		Use:   "start [duration]",
		Short: "Play a sound that fades out and stops after duration.",
		Long: `Starts the sleep timer. Playback volume fades to zero over the final minutes.

Without a duration the last sleep duration is reused.
--shutdown overrides the configured shutdown behaviour when given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &client.SleepInput{Sound: sleepSound}

			if len(args) > 0 {
				d, err := time.ParseDuration(args[0])
				if err != nil {
					return err
				}

				in.Duration = d
			}

			if cmd.Flags().Changed("shutdown") {
				shutdown := sleepShutdown
				in.Shutdown = &shutdown
			}

			return withSession(func(ctx context.Context, s *client.Session, _ []string) error {
				return s.StartSleep(ctx, in)
			})(cmd, args)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	sleepStartCmd.Flags().StringVar(&sleepSound, "sound", "", "sound to play")
	sleepStartCmd.Flags().BoolVar(&sleepShutdown, "shutdown", false, "shut the host down when the timer ends")

	sleepCmd.AddCommand(
		sleepStartCmd,
		sessionCommand("cancel", "Stop the sleep timer and playback.", (*client.Session).CancelSleep),
		sessionCommand("status", "Show the sleep timer.", (*client.Session).SleepStatus),
	)

	rootCmd.AddCommand(sleepCmd)
}
