package clock

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/domain/countdown"
	"github.com/oshokin/alarm-clock/internal/domain/sleep"
	"github.com/oshokin/alarm-clock/internal/domain/stopwatch"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// statusError maps domain errors to gRPC status codes.
func statusError(err error, operation string) error {
	var code codes.Code

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, alarms.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, countdown.ErrInvalidDuration),
		errors.Is(err, sleep.ErrInvalidVolume),
		errors.Is(err, sleep.ErrInvalidWindow):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrNotRinging),
		errors.Is(err, countdown.ErrNotSet),
		errors.Is(err, countdown.ErrBusy),
		errors.Is(err, countdown.ErrCompleted):
		code = codes.FailedPrecondition
	default:
		return status.Errorf(codes.Internal, "unable to %s", operation)
	}

	return status.Errorf(code, "%s: %v", operation, err)
}

func invalidArgument(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

// toDomainAlarm validates a create or update request.
func toDomainAlarm(req *pb.SaveAlarmRequest) (*domain.Alarm, error) {
	if req == nil || req.Alarm == nil {
		return nil, invalidArgument("alarm is required")
	}

	tod, err := domain.ParseTimeOfDay(req.Alarm.Time)
	if err != nil {
		return nil, statusError(err, "parse alarm time")
	}

	days := make([]domain.Weekday, 0, len(req.Alarm.Repeat))
	for _, day := range req.Alarm.Repeat {
		days = append(days, domain.Weekday(day))
	}

	repeat, err := domain.NewWeekdays(days...)
	if err != nil {
		return nil, statusError(err, "parse repeat days")
	}

	return &domain.Alarm{
		ID:      req.Alarm.ID,
		Time:    tod,
		Label:   req.Alarm.Label,
		Enabled: req.Alarm.Enabled,
		Vibrate: req.Alarm.Vibrate,
		Repeat:  repeat,
		Sound:   req.Alarm.Sound,
	}, nil
}

// toProtoAlarm converts a domain alarm as seen at now.
func (s *Server) toProtoAlarm(alarm *domain.Alarm, now time.Time) *pb.Alarm {
	if alarm == nil {
		return new(pb.Alarm)
	}

	message := &pb.Alarm{
		ID:        alarm.ID,
		Time:      alarm.Time.String(),
		Label:     alarm.Label,
		Enabled:   alarm.Enabled,
		Vibrate:   alarm.Vibrate,
		Sound:     alarm.Sound,
		CreatedAt: alarm.CreatedAt,
		UpdatedAt: alarm.UpdatedAt,
		Ringing:   s.alarms.Ringing(alarm.ID),
	}

	for _, day := range alarm.Repeat.Days() {
		message.Repeat = append(message.Repeat, int32(day))
	}

	if alarm.Enabled {
		message.NextFire = alarm.NextFire(now)
	}

	return message
}

func toProtoTimer(snapshot countdown.Snapshot) *pb.TimerState {
	return &pb.TimerState{
		State:           snapshot.State.String(),
		TotalMillis:     snapshot.Total.Milliseconds(),
		RemainingMillis: snapshot.Remaining.Milliseconds(),
		Deadline:        snapshot.Deadline,
	}
}

func toProtoStopwatch(snapshot stopwatch.Snapshot) *pb.StopwatchState {
	message := &pb.StopwatchState{
		State:         snapshot.State.String(),
		ElapsedMillis: snapshot.Elapsed.Milliseconds(),
	}

	for _, lap := range snapshot.Laps {
		message.Laps = append(message.Laps, &pb.Lap{
			Number:        int32(lap.Number), //nolint:gosec // Lap counts stay far below 2^31.
			ElapsedMillis: lap.Elapsed.Milliseconds(),
			SplitMillis:   lap.Split.Milliseconds(),
		})
	}

	return message
}

func toProtoSleep(snapshot sleep.Snapshot) *pb.SleepTimerState {
	return &pb.SleepTimerState{
		Timer:            toProtoTimer(snapshot.Snapshot),
		Volume:           snapshot.Volume,
		MaxVolume:        snapshot.Fade.Max,
		FadeWindowMillis: snapshot.Fade.Window.Milliseconds(),
		ShutdownOnFinish: snapshot.ShutdownOnFinish,
	}
}
