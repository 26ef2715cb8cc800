package clock

import (
	"context"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/countdown"
	"github.com/oshokin/alarm-clock/internal/domain/sleep"
	"github.com/oshokin/alarm-clock/internal/domain/stopwatch"
	"github.com/oshokin/alarm-clock/internal/worldclock"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// AlarmService abstracts the alarm operations the transport depends on.
type AlarmService interface {
	List(ctx context.Context) ([]*domain.Alarm, error)
	Get(ctx context.Context, id int64) (*domain.Alarm, error)
	Create(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error)
	Update(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*domain.Alarm, error)
	Delete(ctx context.Context, id int64) error
	Next(ctx context.Context) (*domain.Alarm, time.Time, error)
	Ringing(id int64) bool
	Dismiss(ctx context.Context, id int64) error
	Snooze(ctx context.Context, id int64, d time.Duration) (time.Time, error)
}

// CountdownService abstracts the countdown timer.
type CountdownService interface {
	Set(ctx context.Context, total time.Duration) (countdown.Snapshot, error)
	Start(ctx context.Context) (countdown.Snapshot, error)
	Pause(ctx context.Context) countdown.Snapshot
	Reset(ctx context.Context) countdown.Snapshot
	Snapshot() countdown.Snapshot
}

// StopwatchService abstracts the stopwatch.
type StopwatchService interface {
	Start(ctx context.Context) stopwatch.Snapshot
	Pause(ctx context.Context) stopwatch.Snapshot
	Lap(ctx context.Context) stopwatch.Snapshot
	Reset(ctx context.Context) stopwatch.Snapshot
	Snapshot() stopwatch.Snapshot
}

// SleepService abstracts the sleep timer.
type SleepService interface {
	Start(ctx context.Context, total time.Duration, sound string, shutdown *bool) (sleep.Snapshot, error)
	Cancel(ctx context.Context) sleep.Snapshot
	Snapshot() sleep.Snapshot
}

// Services are the business services behind the API.
type Services struct {
	Alarms    AlarmService
	Countdown CountdownService
	Stopwatch StopwatchService
	Sleep     SleepService
	// Zones are reported by WorldClock when a request names none.
	Zones []string
}

// Server implements the ClockService gRPC API.
type Server struct {
	alarms    AlarmService
	countdown CountdownService
	stopwatch StopwatchService
	sleep     SleepService
	zones     []string
}

var _ pb.ClockServiceServer = (*Server)(nil)

// maxSnoozeMinutes caps a requested snooze at one day.
const maxSnoozeMinutes = 24 * 60

// NewServer wires the provided services into a gRPC handler.
func NewServer(services *Services) *Server {
	return &Server{
		alarms:    services.Alarms,
		countdown: services.Countdown,
		stopwatch: services.Stopwatch,
		sleep:     services.Sleep,
		zones:     services.Zones,
	}
}

// ListAlarms returns every alarm.
func (s *Server) ListAlarms(ctx context.Context, _ *pb.Empty) (*pb.ListAlarmsResponse, error) {
	list, err := s.alarms.List(ctx)
	if err != nil {
		return nil, statusError(err, "list alarms")
	}

	now := time.Now()
	response := &pb.ListAlarmsResponse{Alarms: make([]*pb.Alarm, 0, len(list))}

	for _, alarm := range list {
		response.Alarms = append(response.Alarms, s.toProtoAlarm(alarm, now))
	}

	return response, nil
}

// GetAlarm returns one alarm.
func (s *Server) GetAlarm(ctx context.Context, req *pb.AlarmRequest) (*pb.Alarm, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	alarm, err := s.alarms.Get(ctx, req.ID)
	if err != nil {
		return nil, statusError(err, "get alarm")
	}

	return s.toProtoAlarm(alarm, time.Now()), nil
}

// CreateAlarm stores and schedules a new alarm.
func (s *Server) CreateAlarm(ctx context.Context, req *pb.SaveAlarmRequest) (*pb.Alarm, error) {
	alarm, err := toDomainAlarm(req)
	if err != nil {
		return nil, err
	}

	created, err := s.alarms.Create(ctx, alarm)
	if err != nil {
		return nil, statusError(err, "create alarm")
	}

	return s.toProtoAlarm(created, time.Now()), nil
}

// UpdateAlarm replaces an alarm.
func (s *Server) UpdateAlarm(ctx context.Context, req *pb.SaveAlarmRequest) (*pb.Alarm, error) {
	alarm, err := toDomainAlarm(req)
	if err != nil {
		return nil, err
	}

	if alarm.ID <= 0 {
		return nil, invalidArgument("alarm id is required")
	}

	updated, err := s.alarms.Update(ctx, alarm)
	if err != nil {
		return nil, statusError(err, "update alarm")
	}

	return s.toProtoAlarm(updated, time.Now()), nil
}

// DeleteAlarm removes an alarm.
func (s *Server) DeleteAlarm(ctx context.Context, req *pb.AlarmRequest) (*pb.Empty, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	if err := s.alarms.Delete(ctx, req.ID); err != nil {
		return nil, statusError(err, "delete alarm")
	}

	return new(pb.Empty), nil
}

// SetAlarmEnabled enables or disables an alarm.
func (s *Server) SetAlarmEnabled(ctx context.Context, req *pb.SetAlarmEnabledRequest) (*pb.Alarm, error) {
	if req == nil || req.ID <= 0 {
		return nil, invalidArgument("alarm id is required")
	}

	alarm, err := s.alarms.SetEnabled(ctx, req.ID, req.Enabled)
	if err != nil {
		return nil, statusError(err, "set alarm enabled")
	}

	return s.toProtoAlarm(alarm, time.Now()), nil
}

// NextAlarm reports the enabled alarm firing soonest.
func (s *Server) NextAlarm(ctx context.Context, _ *pb.Empty) (*pb.NextAlarmResponse, error) {
	alarm, at, err := s.alarms.Next(ctx)
	if err != nil {
		return nil, statusError(err, "next alarm")
	}

	if alarm == nil {
		return new(pb.NextAlarmResponse), nil
	}

	return &pb.NextAlarmResponse{
		Alarm: s.toProtoAlarm(alarm, time.Now()),
		At:    at,
	}, nil
}

// DismissAlarm silences a ringing alarm.
func (s *Server) DismissAlarm(ctx context.Context, req *pb.AlarmRequest) (*pb.Empty, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	if err := s.alarms.Dismiss(ctx, req.ID); err != nil {
		return nil, statusError(err, "dismiss alarm")
	}

	return new(pb.Empty), nil
}

// SnoozeAlarm silences a ringing alarm until the snooze ends.
func (s *Server) SnoozeAlarm(ctx context.Context, req *pb.SnoozeAlarmRequest) (*pb.SnoozeAlarmResponse, error) {
	if req == nil || req.ID <= 0 {
		return nil, invalidArgument("alarm id is required")
	}

	if req.Minutes < 0 || req.Minutes > maxSnoozeMinutes {
		return nil, invalidArgument("snooze minutes must be between 0 and 1440")
	}

	at, err := s.alarms.Snooze(ctx, req.ID, time.Duration(req.Minutes)*time.Minute)
	if err != nil {
		return nil, statusError(err, "snooze alarm")
	}

	return &pb.SnoozeAlarmResponse{ID: req.ID, At: at}, nil
}

// SetTimer sets the countdown duration.
func (s *Server) SetTimer(ctx context.Context, req *pb.SetTimerRequest) (*pb.TimerState, error) {
	if req == nil {
		return nil, invalidArgument("request is required")
	}

	total, err := countdown.Duration(int(req.Hours), int(req.Minutes), int(req.Seconds))
	if err != nil {
		return nil, statusError(err, "set timer")
	}

	snapshot, err := s.countdown.Set(ctx, total)
	if err != nil {
		return nil, statusError(err, "set timer")
	}

	return toProtoTimer(snapshot), nil
}

// StartTimer runs or resumes the countdown.
func (s *Server) StartTimer(ctx context.Context, _ *pb.Empty) (*pb.TimerState, error) {
	snapshot, err := s.countdown.Start(ctx)
	if err != nil {
		return nil, statusError(err, "start timer")
	}

	return toProtoTimer(snapshot), nil
}

// PauseTimer freezes the countdown.
func (s *Server) PauseTimer(ctx context.Context, _ *pb.Empty) (*pb.TimerState, error) {
	return toProtoTimer(s.countdown.Pause(ctx)), nil
}

// ResetTimer returns the countdown to idle.
func (s *Server) ResetTimer(ctx context.Context, _ *pb.Empty) (*pb.TimerState, error) {
	return toProtoTimer(s.countdown.Reset(ctx)), nil
}

// GetTimer returns the countdown state.
func (s *Server) GetTimer(context.Context, *pb.Empty) (*pb.TimerState, error) {
	return toProtoTimer(s.countdown.Snapshot()), nil
}

// StartStopwatch runs or resumes the stopwatch.
func (s *Server) StartStopwatch(ctx context.Context, _ *pb.Empty) (*pb.StopwatchState, error) {
	return toProtoStopwatch(s.stopwatch.Start(ctx)), nil
}

// PauseStopwatch freezes the stopwatch.
func (s *Server) PauseStopwatch(ctx context.Context, _ *pb.Empty) (*pb.StopwatchState, error) {
	return toProtoStopwatch(s.stopwatch.Pause(ctx)), nil
}

// LapStopwatch records a lap.
func (s *Server) LapStopwatch(ctx context.Context, _ *pb.Empty) (*pb.StopwatchState, error) {
	return toProtoStopwatch(s.stopwatch.Lap(ctx)), nil
}

// ResetStopwatch clears the stopwatch.
func (s *Server) ResetStopwatch(ctx context.Context, _ *pb.Empty) (*pb.StopwatchState, error) {
	return toProtoStopwatch(s.stopwatch.Reset(ctx)), nil
}

// GetStopwatch returns the stopwatch state.
func (s *Server) GetStopwatch(context.Context, *pb.Empty) (*pb.StopwatchState, error) {
	return toProtoStopwatch(s.stopwatch.Snapshot()), nil
}

// StartSleepTimer (re)starts the sleep timer.
func (s *Server) StartSleepTimer(ctx context.Context, req *pb.StartSleepTimerRequest) (*pb.SleepTimerState, error) {
	if req == nil {
		req = new(pb.StartSleepTimerRequest)
	}

	if req.DurationMillis < 0 || req.DurationMillis > countdown.MaxDuration.Milliseconds() {
		return nil, invalidArgument("duration must be between 0 and " + countdown.MaxDuration.String())
	}

	total := time.Duration(req.DurationMillis) * time.Millisecond

	snapshot, err := s.sleep.Start(ctx, total, req.Sound, req.ShutdownOnFinish)
	if err != nil {
		return nil, statusError(err, "start sleep timer")
	}

	return toProtoSleep(snapshot), nil
}

// CancelSleepTimer stops the sleep timer.
func (s *Server) CancelSleepTimer(ctx context.Context, _ *pb.Empty) (*pb.SleepTimerState, error) {
	return toProtoSleep(s.sleep.Cancel(ctx)), nil
}

// GetSleepTimer returns the sleep timer state.
func (s *Server) GetSleepTimer(context.Context, *pb.Empty) (*pb.SleepTimerState, error) {
	return toProtoSleep(s.sleep.Snapshot()), nil
}

// WorldClock returns the current time in the requested or configured zones.
func (s *Server) WorldClock(_ context.Context, req *pb.WorldClockRequest) (*pb.WorldClockResponse, error) {
	zones := s.zones
	if req != nil && len(req.Zones) > 0 {
		zones = req.Zones
	}

	locations, err := worldclock.Resolve(zones)
	if err != nil {
		return nil, invalidArgument(err.Error())
	}

	entries := worldclock.At(time.Now(), locations)
	response := &pb.WorldClockResponse{Zones: make([]*pb.ZoneTime, 0, len(entries))}

	for _, entry := range entries {
		response.Zones = append(response.Zones, &pb.ZoneTime{
			Zone:          entry.Zone,
			Abbreviation:  entry.Abbreviation,
			Time:          entry.Time,
			OffsetSeconds: int32(entry.Offset / time.Second),
		})
	}

	return response, nil
}

func requireID(req *pb.AlarmRequest) error {
	if req == nil || req.ID <= 0 {
		return invalidArgument("alarm id is required")
	}

	return nil
}
