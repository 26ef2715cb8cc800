package cmd

import (
	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-clock/internal/service/client"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	stopwatchCmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Control the stopwatch.",
	}

	stopwatchCmd.AddCommand(
		sessionCommand("start", "Start or resume the stopwatch.", (*client.Session).StartStopwatch),
		sessionCommand("pause", "Pause the stopwatch.", (*client.Session).PauseStopwatch),
		sessionCommand("lap", "Record a lap.", (*client.Session).LapStopwatch),
		sessionCommand("reset", "Clear elapsed time and laps.", (*client.Session).ResetStopwatch),
		sessionCommand("status", "Show elapsed time and laps.", (*client.Session).StopwatchStatus),
	)

	rootCmd.AddCommand(stopwatchCmd)
}
