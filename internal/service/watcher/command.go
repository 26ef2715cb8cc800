package watcher

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"

	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// PollInterval defines the interval between daemon checks.
	PollInterval time.Duration
	// Output receives one line per event; os.Stdout when nil.
	Output io.Writer
}

// DefaultPollInterval is used when Options.PollInterval is not positive.
const DefaultPollInterval = time.Second

// Run polls the daemon until ctx is cancelled and prints every state change.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "clockctl-watch")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching clock daemon", "server_address", serverAddress, "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var previous *observation

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current, err := observe(ctx, client)
			if err != nil {
				logger.ErrorKV(ctx, "Check daemon failed", "error", err)

				continue
			}

			for _, event := range changes(previous, current) {
				_, _ = fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.TimeOnly), event)
			}

			previous = current
		}
	}
}

// observation is what the watcher knows about the daemon after one poll.
type observation struct {
	// ringing maps ids of ringing alarms to their labels.
	ringing  map[int64]string
	timer    string
	sleep    string
	shutdown bool
}

func observe(ctx context.Context, client *common.Client) (*observation, error) {
	list, err := common.Call(ctx, client, (*pb.ClockServiceClient).ListAlarms, &pb.Empty{})
	if err != nil {
		return nil, err
	}

	timer, err := common.Call(ctx, client, (*pb.ClockServiceClient).GetTimer, &pb.Empty{})
	if err != nil {
		return nil, err
	}

	sleep, err := common.Call(ctx, client, (*pb.ClockServiceClient).GetSleepTimer, &pb.Empty{})
	if err != nil {
		return nil, err
	}

	return newObservation(list.Alarms, timer, sleep), nil
}

func newObservation(alarms []*pb.Alarm, timer *pb.TimerState, sleep *pb.SleepTimerState) *observation {
	o := &observation{
		ringing: make(map[int64]string),
		timer:   timer.State,
	}

	for _, alarm := range alarms {
		if alarm.Ringing {
			o.ringing[alarm.ID] = alarm.Label
		}
	}

	if sleep != nil && sleep.Timer != nil {
		o.sleep = sleep.Timer.State
		o.shutdown = sleep.ShutdownOnFinish
	}

	return o
}

// changes lists events between two polls. The first poll only reports alarms
// already ringing.
func changes(previous, current *observation) []string {
	var events []string

	for _, id := range slices.Sorted(maps.Keys(current.ringing)) {
		if previous != nil {
			if _, ok := previous.ringing[id]; ok {
				continue
			}
		}

		events = append(events, fmt.Sprintf("alarm %d %q is ringing", id, current.ringing[id]))
	}

	if previous == nil {
		return events
	}

	for _, id := range slices.Sorted(maps.Keys(previous.ringing)) {
		if _, ok := current.ringing[id]; !ok {
			events = append(events, fmt.Sprintf("alarm %d stopped ringing", id))
		}
	}

	if previous.timer != current.timer && current.timer == "completed" {
		events = append(events, "timer finished")
	}

	if previous.sleep == "running" && current.sleep != "running" {
		switch {
		case current.sleep == "completed" && current.shutdown:
			events = append(events, "sleep timer finished, host shutting down")
		case current.sleep == "completed":
			events = append(events, "sleep timer finished")
		default:
			events = append(events, "sleep timer cancelled")
		}
	}

	return events
}
