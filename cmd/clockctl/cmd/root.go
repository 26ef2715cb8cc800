package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/version"

	client "github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the daemon address from config.
	serverAddress string

	// rootCmd represents the base command for talking to clockd.
	rootCmd = &cobra.Command{
		Use:   "clockctl",
		Short: "Control the alarm clock daemon.",
		Long: `Manages alarms, the countdown timer, the stopwatch and the sleep timer
kept by clockd, and prints the current time in other zones.

The daemon address is loaded from configuration file unless --server is given.`,
		SilenceUsage: true,
	}
)

// Execute runs the clockctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withSession wraps fn into a RunE that connects to the daemon first.
func withSession(fn func(ctx context.Context, s *client.Session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		session, err := client.Connect(ctx, &client.Options{
			ConfigPath:    cfgPath,
			ServerAddress: serverAddress,
			Output:        cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}

		defer session.Close() //nolint:errcheck // Nothing useful to do on close failure.

		return fn(ctx, session, args)
	}
}

// errInvalidID is returned for alarm ids that are not positive integers.
var errInvalidID = errors.New("invalid alarm id")

// parseID parses an alarm id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", arg, errInvalidID)
	}

	return id, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "daemon address, overrides configuration")
}
