package pb

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified service name.
const ServiceName = "clock.v1.ClockService"

// ClockServiceServer is the server API for ClockService.
type ClockServiceServer interface {
	ListAlarms(ctx context.Context, req *Empty) (*ListAlarmsResponse, error)
	GetAlarm(ctx context.Context, req *AlarmRequest) (*Alarm, error)
	CreateAlarm(ctx context.Context, req *SaveAlarmRequest) (*Alarm, error)
	UpdateAlarm(ctx context.Context, req *SaveAlarmRequest) (*Alarm, error)
	DeleteAlarm(ctx context.Context, req *AlarmRequest) (*Empty, error)
	SetAlarmEnabled(ctx context.Context, req *SetAlarmEnabledRequest) (*Alarm, error)
	NextAlarm(ctx context.Context, req *Empty) (*NextAlarmResponse, error)
	DismissAlarm(ctx context.Context, req *AlarmRequest) (*Empty, error)
	SnoozeAlarm(ctx context.Context, req *SnoozeAlarmRequest) (*SnoozeAlarmResponse, error)
	SetTimer(ctx context.Context, req *SetTimerRequest) (*TimerState, error)
	StartTimer(ctx context.Context, req *Empty) (*TimerState, error)
	PauseTimer(ctx context.Context, req *Empty) (*TimerState, error)
	ResetTimer(ctx context.Context, req *Empty) (*TimerState, error)
	GetTimer(ctx context.Context, req *Empty) (*TimerState, error)
	StartStopwatch(ctx context.Context, req *Empty) (*StopwatchState, error)
	PauseStopwatch(ctx context.Context, req *Empty) (*StopwatchState, error)
	LapStopwatch(ctx context.Context, req *Empty) (*StopwatchState, error)
	ResetStopwatch(ctx context.Context, req *Empty) (*StopwatchState, error)
	GetStopwatch(ctx context.Context, req *Empty) (*StopwatchState, error)
	StartSleepTimer(ctx context.Context, req *StartSleepTimerRequest) (*SleepTimerState, error)
	CancelSleepTimer(ctx context.Context, req *Empty) (*SleepTimerState, error)
	GetSleepTimer(ctx context.Context, req *Empty) (*SleepTimerState, error)
	WorldClock(ctx context.Context, req *WorldClockRequest) (*WorldClockResponse, error)
}

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ServiceDesc describes ClockService for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Descriptors are package-level by grpc convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListAlarms", ClockServiceServer.ListAlarms),
		unary("GetAlarm", ClockServiceServer.GetAlarm),
		unary("CreateAlarm", ClockServiceServer.CreateAlarm),
		unary("UpdateAlarm", ClockServiceServer.UpdateAlarm),
		unary("DeleteAlarm", ClockServiceServer.DeleteAlarm),
		unary("SetAlarmEnabled", ClockServiceServer.SetAlarmEnabled),
		unary("NextAlarm", ClockServiceServer.NextAlarm),
		unary("DismissAlarm", ClockServiceServer.DismissAlarm),
		unary("SnoozeAlarm", ClockServiceServer.SnoozeAlarm),
		unary("SetTimer", ClockServiceServer.SetTimer),
		unary("StartTimer", ClockServiceServer.StartTimer),
		unary("PauseTimer", ClockServiceServer.PauseTimer),
		unary("ResetTimer", ClockServiceServer.ResetTimer),
		unary("GetTimer", ClockServiceServer.GetTimer),
		unary("StartStopwatch", ClockServiceServer.StartStopwatch),
		unary("PauseStopwatch", ClockServiceServer.PauseStopwatch),
		unary("LapStopwatch", ClockServiceServer.LapStopwatch),
		unary("ResetStopwatch", ClockServiceServer.ResetStopwatch),
		unary("GetStopwatch", ClockServiceServer.GetStopwatch),
		unary("StartSleepTimer", ClockServiceServer.StartSleepTimer),
		unary("CancelSleepTimer", ClockServiceServer.CancelSleepTimer),
		unary("GetSleepTimer", ClockServiceServer.GetSleepTimer),
		unary("WorldClock", ClockServiceServer.WorldClock),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clock.proto",
}

// RegisterClockServiceServer registers srv with s.
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds the descriptor of a unary method, decoding Req and running
// the server interceptor chain when one is installed.
func unary[Req, Resp any](
	method string,
	call func(ClockServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			server, _ := srv.(ClockServiceServer)

			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}

			handler := func(ctx context.Context, req any) (any, error) {
				typed, _ := req.(*Req)

				return call(server, ctx, typed)
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}

// ClockServiceClient is the client API for ClockService.
type ClockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient returns a client issuing calls over cc.
func NewClockServiceClient(cc grpc.ClientConnInterface) *ClockServiceClient {
	return &ClockServiceClient{cc: cc}
}

// invoke performs one unary call.
func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in any,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)

	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// ListAlarms calls ClockService.ListAlarms.
func (c *ClockServiceClient) ListAlarms(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListAlarmsResponse, error) {
	return invoke[ListAlarmsResponse](ctx, c.cc, "ListAlarms", in, opts)
}

// GetAlarm calls ClockService.GetAlarm.
func (c *ClockServiceClient) GetAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*Alarm, error) {
	return invoke[Alarm](ctx, c.cc, "GetAlarm", in, opts)
}

// CreateAlarm calls ClockService.CreateAlarm.
func (c *ClockServiceClient) CreateAlarm(ctx context.Context, in *SaveAlarmRequest, opts ...grpc.CallOption) (*Alarm, error) {
	return invoke[Alarm](ctx, c.cc, "CreateAlarm", in, opts)
}

// UpdateAlarm calls ClockService.UpdateAlarm.
func (c *ClockServiceClient) UpdateAlarm(ctx context.Context, in *SaveAlarmRequest, opts ...grpc.CallOption) (*Alarm, error) {
	return invoke[Alarm](ctx, c.cc, "UpdateAlarm", in, opts)
}

// DeleteAlarm calls ClockService.DeleteAlarm.
func (c *ClockServiceClient) DeleteAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAlarm", in, opts)
}

// SetAlarmEnabled calls ClockService.SetAlarmEnabled.
func (c *ClockServiceClient) SetAlarmEnabled(ctx context.Context, in *SetAlarmEnabledRequest, opts ...grpc.CallOption) (*Alarm, error) {
	return invoke[Alarm](ctx, c.cc, "SetAlarmEnabled", in, opts)
}

// NextAlarm calls ClockService.NextAlarm.
func (c *ClockServiceClient) NextAlarm(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NextAlarmResponse, error) {
	return invoke[NextAlarmResponse](ctx, c.cc, "NextAlarm", in, opts)
}

// DismissAlarm calls ClockService.DismissAlarm.
func (c *ClockServiceClient) DismissAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DismissAlarm", in, opts)
}

// SnoozeAlarm calls ClockService.SnoozeAlarm.
func (c *ClockServiceClient) SnoozeAlarm(ctx context.Context, in *SnoozeAlarmRequest, opts ...grpc.CallOption) (*SnoozeAlarmResponse, error) {
	return invoke[SnoozeAlarmResponse](ctx, c.cc, "SnoozeAlarm", in, opts)
}

// SetTimer calls ClockService.SetTimer.
func (c *ClockServiceClient) SetTimer(ctx context.Context, in *SetTimerRequest, opts ...grpc.CallOption) (*TimerState, error) {
	return invoke[TimerState](ctx, c.cc, "SetTimer", in, opts)
}

// StartTimer calls ClockService.StartTimer.
func (c *ClockServiceClient) StartTimer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TimerState, error) {
	return invoke[TimerState](ctx, c.cc, "StartTimer", in, opts)
}

// PauseTimer calls ClockService.PauseTimer.
func (c *ClockServiceClient) PauseTimer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TimerState, error) {
	return invoke[TimerState](ctx, c.cc, "PauseTimer", in, opts)
}

// ResetTimer calls ClockService.ResetTimer.
func (c *ClockServiceClient) ResetTimer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TimerState, error) {
	return invoke[TimerState](ctx, c.cc, "ResetTimer", in, opts)
}

// GetTimer calls ClockService.GetTimer.
func (c *ClockServiceClient) GetTimer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TimerState, error) {
	return invoke[TimerState](ctx, c.cc, "GetTimer", in, opts)
}

// StartStopwatch calls ClockService.StartStopwatch.
func (c *ClockServiceClient) StartStopwatch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StopwatchState, error) {
	return invoke[StopwatchState](ctx, c.cc, "StartStopwatch", in, opts)
}

// PauseStopwatch calls ClockService.PauseStopwatch.
func (c *ClockServiceClient) PauseStopwatch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StopwatchState, error) {
	return invoke[StopwatchState](ctx, c.cc, "PauseStopwatch", in, opts)
}

// LapStopwatch calls ClockService.LapStopwatch.
func (c *ClockServiceClient) LapStopwatch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StopwatchState, error) {
	return invoke[StopwatchState](ctx, c.cc, "LapStopwatch", in, opts)
}

// ResetStopwatch calls ClockService.ResetStopwatch.
func (c *ClockServiceClient) ResetStopwatch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StopwatchState, error) {
	return invoke[StopwatchState](ctx, c.cc, "ResetStopwatch", in, opts)
}

// GetStopwatch calls ClockService.GetStopwatch.
func (c *ClockServiceClient) GetStopwatch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StopwatchState, error) {
	return invoke[StopwatchState](ctx, c.cc, "GetStopwatch", in, opts)
}

// StartSleepTimer calls ClockService.StartSleepTimer.
func (c *ClockServiceClient) StartSleepTimer(ctx context.Context, in *StartSleepTimerRequest, opts ...grpc.CallOption) (*SleepTimerState, error) {
	return invoke[SleepTimerState](ctx, c.cc, "StartSleepTimer", in, opts)
}

// CancelSleepTimer calls ClockService.CancelSleepTimer.
func (c *ClockServiceClient) CancelSleepTimer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SleepTimerState, error) {
	return invoke[SleepTimerState](ctx, c.cc, "CancelSleepTimer", in, opts)
}

// GetSleepTimer calls ClockService.GetSleepTimer.
func (c *ClockServiceClient) GetSleepTimer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SleepTimerState, error) {
	return invoke[SleepTimerState](ctx, c.cc, "GetSleepTimer", in, opts)
}

// WorldClock calls ClockService.WorldClock.
func (c *ClockServiceClient) WorldClock(ctx context.Context, in *WorldClockRequest, opts ...grpc.CallOption) (*WorldClockResponse, error) {
	return invoke[WorldClockResponse](ctx, c.cc, "WorldClock", in, opts)
}
