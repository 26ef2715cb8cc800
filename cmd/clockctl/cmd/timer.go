package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	timerCmd = &cobra.Command{
		Use:   "timer",
		Short: "Control the countdown timer.",
	}

	timerSetCmd = &cobra.Command{
		Use:   "set <duration>",
		Short: "Set the countdown length, e.g. 1h30m or 90s.",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return err
			}

			return s.SetTimer(ctx, d)
		}),
	}

	timerStartCmd = sessionCommand("start", "Start or resume the countdown.", (*client.Session).StartTimer)
	timerPauseCmd = sessionCommand("pause", "Pause the countdown.", (*client.Session).PauseTimer)
	timerResetCmd = sessionCommand("reset", "Rewind the countdown to its full length.",
		(*client.Session).ResetTimer)
	timerStatusCmd = sessionCommand("status", "Show the countdown.", (*client.Session).TimerStatus)
)

// sessionCommand builds an argument-less subcommand around one session operation.
func sessionCommand(use, short string, fn func(*client.Session, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return fn(s, ctx)
		}),
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	timerCmd.AddCommand(timerSetCmd, timerStartCmd, timerPauseCmd, timerResetCmd, timerStatusCmd)
	rootCmd.AddCommand(timerCmd)
}
