package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"

	"github.com/oshokin/alarm-clock/internal/service/common"

	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// errNegativeDuration is returned for durations below zero.
var errNegativeDuration = errors.New("duration must not be negative")

// SleepInput describes a sleep timer start request.
type SleepInput struct {
	// Duration zero reuses the last sleep duration.
	Duration time.Duration
	// Sound is optional.
	Sound string
	// Shutdown overrides the daemon's setting when not nil.
	Shutdown *bool
}

// SetTimer sets the countdown length.
func (s *Session) SetTimer(ctx context.Context, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%s: %w", d, errNegativeDuration)
	}

	total := int64(d / time.Second)

	return timerCall(ctx, s, "set timer", (*pb.ClockServiceClient).SetTimer, &pb.SetTimerRequest{
		Hours:   int32(total / 3600),      //nolint:gosec // Bounded by the daemon's validation.
		Minutes: int32(total % 3600 / 60), //nolint:gosec // Always below 60.
		Seconds: int32(total % 60),        //nolint:gosec // Always below 60.
	})
}

// StartTimer starts or resumes the countdown.
func (s *Session) StartTimer(ctx context.Context) error {
	return timerCall(ctx, s, "start timer", (*pb.ClockServiceClient).StartTimer, &pb.Empty{})
}

// PauseTimer pauses the countdown.
func (s *Session) PauseTimer(ctx context.Context) error {
	return timerCall(ctx, s, "pause timer", (*pb.ClockServiceClient).PauseTimer, &pb.Empty{})
}

// ResetTimer rewinds the countdown to its full length.
func (s *Session) ResetTimer(ctx context.Context) error {
	return timerCall(ctx, s, "reset timer", (*pb.ClockServiceClient).ResetTimer, &pb.Empty{})
}

// TimerStatus prints the countdown.
func (s *Session) TimerStatus(ctx context.Context) error {
	return timerCall(ctx, s, "get timer", (*pb.ClockServiceClient).GetTimer, &pb.Empty{})
}

// StartStopwatch starts or resumes the stopwatch.
func (s *Session) StartStopwatch(ctx context.Context) error {
	return stopwatchCall(ctx, s, "start stopwatch", (*pb.ClockServiceClient).StartStopwatch)
}

// PauseStopwatch pauses the stopwatch.
func (s *Session) PauseStopwatch(ctx context.Context) error {
	return stopwatchCall(ctx, s, "pause stopwatch", (*pb.ClockServiceClient).PauseStopwatch)
}

// LapStopwatch records a lap.
func (s *Session) LapStopwatch(ctx context.Context) error {
	return stopwatchCall(ctx, s, "record lap", (*pb.ClockServiceClient).LapStopwatch)
}

// ResetStopwatch clears elapsed time and laps.
func (s *Session) ResetStopwatch(ctx context.Context) error {
	return stopwatchCall(ctx, s, "reset stopwatch", (*pb.ClockServiceClient).ResetStopwatch)
}

// StopwatchStatus prints the stopwatch.
func (s *Session) StopwatchStatus(ctx context.Context) error {
	return stopwatchCall(ctx, s, "get stopwatch", (*pb.ClockServiceClient).GetStopwatch)
}

// StartSleep starts the sleep timer.
func (s *Session) StartSleep(ctx context.Context, in *SleepInput) error {
	if in.Duration < 0 {
		return fmt.Errorf("%s: %w", in.Duration, errNegativeDuration)
	}

	return sleepCall(ctx, s, "start sleep timer", (*pb.ClockServiceClient).StartSleepTimer,
		&pb.StartSleepTimerRequest{
			DurationMillis:   in.Duration.Milliseconds(),
			Sound:            in.Sound,
			ShutdownOnFinish: in.Shutdown,
		})
}

// CancelSleep stops the sleep timer and its playback.
func (s *Session) CancelSleep(ctx context.Context) error {
	return sleepCall(ctx, s, "cancel sleep timer", (*pb.ClockServiceClient).CancelSleepTimer, &pb.Empty{})
}

// SleepStatus prints the sleep timer.
func (s *Session) SleepStatus(ctx context.Context) error {
	return sleepCall(ctx, s, "get sleep timer", (*pb.ClockServiceClient).GetSleepTimer, &pb.Empty{})
}

// WorldClock prints the current time in zones, or in the daemon's configured zones when empty.
func (s *Session) WorldClock(ctx context.Context, zones []string) error {
	resp, err := common.Call(ctx, s.client, (*pb.ClockServiceClient).WorldClock,
		&pb.WorldClockRequest{Zones: zones})
	if err != nil {
		return callError("world clock", err)
	}

	return writeZones(s.out, resp.Zones)
}

func timerCall[Req any](
	ctx context.Context,
	s *Session,
	operation string,
	rpc func(*pb.ClockServiceClient, context.Context, *Req, ...grpc.CallOption) (*pb.TimerState, error),
	req *Req,
) error {
	state, err := common.Call(ctx, s.client, rpc, req)
	if err != nil {
		return callError(operation, err)
	}

	s.printf("%s\n", timerLine(state))

	return nil
}

func stopwatchCall(
	ctx context.Context,
	s *Session,
	operation string,
	rpc func(*pb.ClockServiceClient, context.Context, *pb.Empty, ...grpc.CallOption) (*pb.StopwatchState, error),
) error {
	state, err := common.Call(ctx, s.client, rpc, &pb.Empty{})
	if err != nil {
		return callError(operation, err)
	}

	return writeStopwatch(s.out, state)
}

func sleepCall[Req any](
	ctx context.Context,
	s *Session,
	operation string,
	rpc func(*pb.ClockServiceClient, context.Context, *Req, ...grpc.CallOption) (*pb.SleepTimerState, error),
	req *Req,
) error {
	state, err := common.Call(ctx, s.client, rpc, req)
	if err != nil {
		return callError(operation, err)
	}

	return writeSleep(s.out, state)
}
