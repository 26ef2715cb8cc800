package integration

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/server"

	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// daemon is a clockd instance running in the test process.
type daemon struct {
	addr    string
	cfgPath string
	stop    func()
}

// reservePort returns a free loopback address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

// writeConfig stores settings pointing at a private database and wake lock file in dir.
func writeConfig(t *testing.T, dir, addr string) string {
	t.Helper()

	cfg := config.Default()
	cfg.ServerAddress = addr
	cfg.Database = filepath.Join(dir, "alarms.db")
	cfg.WakeLockFile = filepath.Join(dir, "clock.wakelock")
	cfg.Timeout = 2 * time.Second
	cfg.LogLevel = "error"
	cfg.Debug = true
	cfg.WorldClock.Zones = []string{"UTC", "Asia/Tokyo"}

	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(path, cfg))

	return path
}

// startDaemon runs clockd with the settings in cfgPath and waits until it answers.
func startDaemon(t *testing.T, addr, cfgPath string) *daemon {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{
			ConfigPath:    cfgPath,
			AllowMultiple: true,
		})
	}()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	require.Eventually(t, func() bool {
		_, err := common.Call(ctx, c, (*pb.ClockServiceClient).ListAlarms, &pb.Empty{})

		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	d := &daemon{addr: addr, cfgPath: cfgPath}
	d.stop = func() {
		cancel()
		require.NoError(t, <-done)
	}

	return d
}

func dial(t *testing.T, addr string) *common.Client {
	t.Helper()

	c, err := common.Dial(context.Background(), addr, common.WithCallTimeout(2*time.Second))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

// TestDaemon_AlarmsSurviveRestart creates alarms, restarts the daemon on the same database
// and checks the alarms and their schedule come back.
func TestDaemon_AlarmsSurviveRestart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	addr := reservePort(t)
	cfgPath := writeConfig(t, dir, addr)
	ctx := context.Background()

	first := startDaemon(t, addr, cfgPath)
	c := dial(t, addr)

	created, err := common.Call(ctx, c, (*pb.ClockServiceClient).CreateAlarm, &pb.SaveAlarmRequest{
		Alarm: &pb.Alarm{Time: "06:45", Label: "gym", Enabled: true, Repeat: []int32{1, 3, 5}},
	})
	require.NoError(t, err)
	require.Positive(t, created.ID)
	require.False(t, created.NextFire.IsZero())

	disabled, err := common.Call(ctx, c, (*pb.ClockServiceClient).CreateAlarm, &pb.SaveAlarmRequest{
		Alarm: &pb.Alarm{Time: "23:10", Label: "nap"},
	})
	require.NoError(t, err)
	require.True(t, disabled.NextFire.IsZero())

	first.stop()

	second := startDaemon(t, addr, cfgPath)
	defer second.stop()

	c = dial(t, addr)

	list, err := common.Call(ctx, c, (*pb.ClockServiceClient).ListAlarms, &pb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Alarms, 2)

	next, err := common.Call(ctx, c, (*pb.ClockServiceClient).NextAlarm, &pb.Empty{})
	require.NoError(t, err)
	require.NotNil(t, next.Alarm)
	require.Equal(t, created.ID, next.Alarm.ID)
	require.True(t, next.At.Equal(created.NextFire))

	_, err = common.Call(ctx, c, (*pb.ClockServiceClient).DeleteAlarm, &pb.AlarmRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = common.Call(ctx, c, (*pb.ClockServiceClient).GetAlarm, &pb.AlarmRequest{ID: created.ID})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = common.Call(ctx, c, (*pb.ClockServiceClient).DismissAlarm, &pb.AlarmRequest{ID: disabled.ID})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
}

// TestDaemon_ClientSession drives the daemon through the clockctl session.
func TestDaemon_ClientSession(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	addr := reservePort(t)
	cfgPath := writeConfig(t, dir, addr)

	d := startDaemon(t, addr, cfgPath)
	defer d.stop()

	ctx := context.Background()

	var out bytes.Buffer

	session, err := client.Connect(ctx, &client.Options{ConfigPath: cfgPath, Output: &out})
	require.NoError(t, err)

	defer func() {
		require.NoError(t, session.Close())
	}()

	require.NoError(t, session.AddAlarm(ctx, &client.AlarmInput{Time: "07:30", Label: "work", Repeat: "mon,tue"}))
	require.Contains(t, out.String(), "07:30")
	require.Contains(t, out.String(), "Mon")

	out.Reset()
	require.NoError(t, session.NextAlarm(ctx))
	require.Contains(t, out.String(), `"work"`)

	require.Error(t, session.AddAlarm(ctx, &client.AlarmInput{Time: "25:00"}))
	require.Error(t, session.DismissAlarm(ctx, 1))

	out.Reset()
	require.NoError(t, session.SetTimer(ctx, 90*time.Second))
	require.Contains(t, out.String(), "00:01:30")

	out.Reset()
	require.NoError(t, session.StartStopwatch(ctx))
	require.NoError(t, session.LapStopwatch(ctx))
	require.Contains(t, out.String(), "LAP")

	out.Reset()
	require.NoError(t, session.WorldClock(ctx, nil))
	require.Contains(t, out.String(), "Asia/Tokyo")

	out.Reset()
	require.NoError(t, session.SleepStatus(ctx))
	require.Contains(t, out.String(), "volume")
}
