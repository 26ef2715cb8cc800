package client

import (
	"context"
	"time"

	"github.com/oshokin/alarm-clock/internal/service/common"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// AlarmInput describes a new alarm from the command line.
type AlarmInput struct {
	// Time is "HH:mm".
	Time string
	// Label is optional.
	Label string
	// Repeat lists days as numbers or names, e.g. "mon,wed,fri"; empty means one-time.
	Repeat string
	// Sound is optional; the daemon falls back to its default.
	Sound string
	// Vibrate enables vibration while ringing.
	Vibrate bool
	// Disabled saves the alarm without scheduling it.
	Disabled bool
}

// AlarmEdit carries the fields to change; nil fields are kept.
type AlarmEdit struct {
	Time    *string
	Label   *string
	Repeat  *string
	Sound   *string
	Vibrate *bool
}

// ListAlarms prints every alarm.
func (s *Session) ListAlarms(ctx context.Context) error {
	resp, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).ListAlarms, &pb.Empty{})
	if err != nil {
		return callError("list alarms", err)
	}

	return writeAlarms(s.out, resp.Alarms)
}

// ShowAlarm prints a single alarm.
func (s *Session) ShowAlarm(ctx context.Context, id int64) error {
	alarm, err := s.getAlarm(ctx, id)
	if err != nil {
		return err
	}

	return writeAlarms(s.out, []*pb.Alarm{alarm})
}

// AddAlarm creates an alarm and prints it.
func (s *Session) AddAlarm(ctx context.Context, in *AlarmInput) error {
	repeat, err := repeatDays(in.Repeat)
	if err != nil {
		return err
	}

	alarm, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).CreateAlarm, &pb.SaveAlarmRequest{
		Alarm: &pb.Alarm{
			Time:    in.Time,
			Label:   in.Label,
			Enabled: !in.Disabled,
			Vibrate: in.Vibrate,
			Repeat:  repeat,
			Sound:   in.Sound,
		},
	})
	if err != nil {
		return callError("create alarm", err)
	}

	return writeAlarms(s.out, []*pb.Alarm{alarm})
}

// EditAlarm applies edit to an existing alarm and prints the result.
func (s *Session) EditAlarm(ctx context.Context, id int64, edit *AlarmEdit) error {
	alarm, err := s.getAlarm(ctx, id)
	if err != nil {
		return err
	}

	if edit.Time != nil {
		alarm.Time = *edit.Time
	}

	if edit.Label != nil {
		alarm.Label = *edit.Label
	}

	if edit.Repeat != nil {
		if alarm.Repeat, err = repeatDays(*edit.Repeat); err != nil {
			return err
		}
	}

	if edit.Sound != nil {
		alarm.Sound = *edit.Sound
	}

	if edit.Vibrate != nil {
		alarm.Vibrate = *edit.Vibrate
	}

	updated, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).UpdateAlarm,
		&pb.SaveAlarmRequest{Alarm: alarm})
	if err != nil {
		return callError("update alarm", err)
	}

	return writeAlarms(s.out, []*pb.Alarm{updated})
}

// DeleteAlarm removes an alarm.
func (s *Session) DeleteAlarm(ctx context.Context, id int64) error {
	if _, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).DeleteAlarm,
		&pb.AlarmRequest{ID: id}); err != nil {
		return callError("delete alarm", err)
	}

	s.printf("Alarm %d deleted\n", id)

	return nil
}

// SetAlarmEnabled toggles an alarm and prints it.
func (s *Session) SetAlarmEnabled(ctx context.Context, id int64, enabled bool) error {
	alarm, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).SetAlarmEnabled,
		&pb.SetAlarmEnabledRequest{ID: id, Enabled: enabled})
	if err != nil {
		return callError("set alarm enabled", err)
	}

	return writeAlarms(s.out, []*pb.Alarm{alarm})
}

// NextAlarm prints the alarm that fires soonest.
func (s *Session) NextAlarm(ctx context.Context) error {
	resp, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).NextAlarm, &pb.Empty{})
	if err != nil {
		return callError("next alarm", err)
	}

	if resp.Alarm == nil {
		s.printf("No alarms enabled\n")

		return nil
	}

	s.printf("Alarm %d %q rings %s (in %s)\n", resp.Alarm.ID, resp.Alarm.Label,
		nextString(resp.At), time.Until(resp.At).Round(time.Minute))

	return nil
}

// DismissAlarm silences a ringing alarm.
func (s *Session) DismissAlarm(ctx context.Context, id int64) error {
	if _, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).DismissAlarm,
		&pb.AlarmRequest{ID: id}); err != nil {
		return callError("dismiss alarm", err)
	}

	s.printf("Alarm %d dismissed\n", id)

	return nil
}

// SnoozeAlarm silences a ringing alarm and rings it again after minutes,
// or after the daemon's snooze length when minutes is zero.
func (s *Session) SnoozeAlarm(ctx context.Context, id int64, minutes int32) error {
	resp, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).SnoozeAlarm,
		&pb.SnoozeAlarmRequest{ID: id, Minutes: minutes})
	if err != nil {
		return callError("snooze alarm", err)
	}

	s.printf("Alarm %d snoozed until %s\n", resp.ID, resp.At.Local().Format(time.TimeOnly))

	return nil
}

func (s *Session) getAlarm(ctx context.Context, id int64) (*pb.Alarm, error) {
	alarm, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).GetAlarm, &pb.AlarmRequest{ID: id})
	if err != nil {
		return nil, callError("get alarm", err)
	}

	return alarm, nil
}

// repeatDays parses a day list into wire day numbers.
func repeatDays(s string) ([]int32, error) {
	set, err := domain.ParseWeekdays(s)
	if err != nil {
		return nil, err
	}

	days := set.Days()
	out := make([]int32, 0, len(days))

	for _, day := range days {
		out = append(out, int32(day))
	}

	return out, nil
}
