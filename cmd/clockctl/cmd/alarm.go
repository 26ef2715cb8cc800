package cmd

import (
	"context"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// alarmInput collects the add flags.
	alarmInput client.AlarmInput
	// snoozeMinutes overrides the daemon's snooze length.
	snoozeMinutes int32

	alarmCmd = &cobra.Command{
		Use:   "alarm",
		Short: "Manage alarms.",
	}

	alarmListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all alarms.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.ListAlarms(ctx)
		}),
	}

	alarmShowCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "Show one alarm.",
		Args:  cobra.ExactArgs(1),
		RunE:  withID((*client.Session).ShowAlarm),
	}

	alarmAddCmd = &cobra.Command{
		Use:   "add <HH:mm>",
		Short: "Create an alarm.",
		Long: `Creates an alarm ringing at the given time of day.

Without --repeat the alarm rings once and then disables itself.
--repeat takes day numbers (1 is Monday) or names, e.g. "mon,wed,fri".`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			in := alarmInput
			in.Time = args[0]

			return s.AddAlarm(ctx, &in)
		}),
	}

	alarmEditCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an alarm; only given flags are applied.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit := alarmEditFlags.edit(cmd)

			return withID(func(s *client.Session, ctx context.Context, id int64) error {
				return s.EditAlarm(ctx, id, edit)
			})(cmd, args)
		},
	}

	alarmDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE:  withID((*client.Session).DeleteAlarm),
	}

	alarmEnableCmd = &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable and schedule an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: withID(func(s *client.Session, ctx context.Context, id int64) error {
			return s.SetAlarmEnabled(ctx, id, true)
		}),
	}

	alarmDisableCmd = &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable an alarm without deleting it.",
		Args:  cobra.ExactArgs(1),
		RunE: withID(func(s *client.Session, ctx context.Context, id int64) error {
			return s.SetAlarmEnabled(ctx, id, false)
		}),
	}

	alarmNextCmd = &cobra.Command{
		Use:   "next",
		Short: "Show the alarm that rings soonest.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.NextAlarm(ctx)
		}),
	}

	alarmDismissCmd = &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Silence a ringing alarm.",
		Args:  cobra.ExactArgs(1),
		RunE:  withID((*client.Session).DismissAlarm),
	}

	alarmSnoozeCmd = &cobra.Command{
		Use:   "snooze <id>",
		Short: "Silence a ringing alarm and ring it again later.",
		Args:  cobra.ExactArgs(1),
		RunE: withID(func(s *client.Session, ctx context.Context, id int64) error {
			return s.SnoozeAlarm(ctx, id, snoozeMinutes)
		}),
	}
)

// withID adapts an operation on one alarm id to a RunE.
//
//nolint:revive // Method expressions put the receiver before the context.
func withID(fn func(s *client.Session, ctx context.Context, id int64) error) func(*cobra.Command, []string) error {
	return withSession(func(ctx context.Context, s *client.Session, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return fn(s, ctx, id)
	})
}

// editFlags holds edit flag values; only flags the user set are applied.
type editFlags struct {
	time    string
	label   string
	repeat  string
	sound   string
	vibrate bool
}

var alarmEditFlags = new(editFlags)

func (f *editFlags) edit(cmd *cobra.Command) *client.AlarmEdit {
	edit := new(client.AlarmEdit)
	flags := cmd.Flags()

	if flags.Changed("time") {
		edit.Time = &f.time
	}

	if flags.Changed("label") {
		edit.Label = &f.label
	}

	if flags.Changed("repeat") {
		edit.Repeat = &f.repeat
	}

	if flags.Changed("sound") {
		edit.Sound = &f.sound
	}

	if flags.Changed("vibrate") {
		edit.Vibrate = &f.vibrate
	}

	return edit
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	add := alarmAddCmd.Flags()
	add.StringVarP(&alarmInput.Label, "label", "l", "", "alarm label")
	add.StringVarP(&alarmInput.Repeat, "repeat", "r", "", "repeat days, e.g. mon,tue or 1,2")
	add.StringVar(&alarmInput.Sound, "sound", "", "sound to play")
	add.BoolVar(&alarmInput.Vibrate, "vibrate", false, "vibrate while ringing")
	add.BoolVar(&alarmInput.Disabled, "disabled", false, "save the alarm disabled")

	edit := alarmEditCmd.Flags()
	edit.StringVarP(&alarmEditFlags.time, "time", "t", "", "new time of day, HH:mm")
	edit.StringVarP(&alarmEditFlags.label, "label", "l", "", "new label")
	edit.StringVarP(&alarmEditFlags.repeat, "repeat", "r", "", "new repeat days; empty for one-time")
	edit.StringVar(&alarmEditFlags.sound, "sound", "", "new sound")
	edit.BoolVar(&alarmEditFlags.vibrate, "vibrate", false, "vibrate while ringing")

	alarmSnoozeCmd.Flags().Int32VarP(&snoozeMinutes, "minutes", "m", 0, "snooze length in minutes, 0 for the configured one")

	alarmCmd.AddCommand(alarmListCmd, alarmShowCmd, alarmAddCmd, alarmEditCmd, alarmDeleteCmd,
		alarmEnableCmd, alarmDisableCmd, alarmNextCmd, alarmDismissCmd, alarmSnoozeCmd)
	rootCmd.AddCommand(alarmCmd)
}
