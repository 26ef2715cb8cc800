package cmd

import (
	"context"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-clock/internal/service/client"
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "clock [zone...]",
		Short: "Show the current time in other zones.",
		Long: `Prints the current time in each IANA zone given, e.g. Europe/Paris,
or in the zones configured for the daemon when none are given.`,
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			return s.WorldClock(ctx, args)
		}),
	})
}
