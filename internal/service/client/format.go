package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

const nextLayout = "Mon 02 Jan 15:04"

// writeAlarms renders alarms as an aligned table.
func writeAlarms(w io.Writer, alarms []*pb.Alarm) error {
	if len(alarms) == 0 {
		_, err := fmt.Fprintln(w, "No alarms")

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ID\tTIME\tREPEAT\tENABLED\tNEXT\tLABEL")

	for _, alarm := range alarms {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			alarm.ID,
			alarm.Time,
			repeatString(alarm.Repeat),
			enabledString(alarm),
			nextString(alarm.NextFire),
			alarm.Label,
		)
	}

	return tw.Flush()
}

func repeatString(days []int32) string {
	list := make([]domain.Weekday, 0, len(days))
	for _, day := range days {
		list = append(list, domain.Weekday(day))
	}

	set, err := domain.NewWeekdays(list...)
	if err != nil {
		return "?"
	}

	return set.String()
}

func enabledString(alarm *pb.Alarm) string {
	switch {
	case alarm.Ringing:
		return "ringing"
	case alarm.Enabled:
		return "yes"
	default:
		return "no"
	}
}

func nextString(at time.Time) string {
	if at.IsZero() {
		return "-"
	}

	return at.Local().Format(nextLayout)
}

// formatMillis renders a millisecond count as HH:MM:SS, adding .mmm when withMillis is set.
func formatMillis(ms int64, withMillis bool) string {
	if ms < 0 {
		ms = 0
	}

	d := time.Duration(ms) * time.Millisecond
	hours := int64(d / time.Hour)
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60

	if withMillis {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms%1000)
	}

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// timerLine summarises a countdown state on one line.
func timerLine(state *pb.TimerState) string {
	if state == nil {
		return "idle"
	}

	line := fmt.Sprintf("%s %s / %s", state.State,
		formatMillis(state.RemainingMillis, false), formatMillis(state.TotalMillis, false))

	if !state.Deadline.IsZero() {
		line += " (ends " + state.Deadline.Local().Format(time.TimeOnly) + ")"
	}

	return line
}

// writeStopwatch renders the elapsed time and the lap list as received, newest first.
func writeStopwatch(w io.Writer, state *pb.StopwatchState) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", state.State, formatMillis(state.ElapsedMillis, true)); err != nil {
		return err
	}

	if len(state.Laps) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "LAP\tSPLIT\tTOTAL")

	for _, lap := range state.Laps {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n",
			lap.Number, formatMillis(lap.SplitMillis, true), formatMillis(lap.ElapsedMillis, true))
	}

	return tw.Flush()
}

// writeSleep renders the sleep timer with its fade volume.
func writeSleep(w io.Writer, state *pb.SleepTimerState) error {
	var b strings.Builder

	b.WriteString(timerLine(state.Timer))
	fmt.Fprintf(&b, "\nvolume %.0f%% of %.0f%%, fade over the last %s",
		state.Volume*100, state.MaxVolume*100, formatMillis(state.FadeWindowMillis, false))

	if state.ShutdownOnFinish {
		b.WriteString(", shutdown when done")
	}

	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())

	return err
}

// writeZones renders world clock entries as a table.
func writeZones(w io.Writer, zones []*pb.ZoneTime) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ZONE\tTIME\tOFFSET")

	for _, zone := range zones {
		// Times arrive in UTC; render them at the zone's own offset.
		local := zone.Time.In(time.FixedZone(zone.Abbreviation, int(zone.OffsetSeconds)))

		_, _ = fmt.Fprintf(tw, "%s\t%s %s\t%s\n",
			zone.Zone, local.Format("Mon 15:04"), zone.Abbreviation, formatOffset(zone.OffsetSeconds))
	}

	return tw.Flush()
}

func formatOffset(seconds int32) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}

	return fmt.Sprintf("UTC%c%02d:%02d", sign, seconds/3600, seconds%3600/60)
}
