package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/clock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/observability"
	"github.com/oshokin/alarm-clock/internal/platform/audio"
	"github.com/oshokin/alarm-clock/internal/platform/instance"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
	"github.com/oshokin/alarm-clock/internal/platform/oneshot"
	"github.com/oshokin/alarm-clock/internal/platform/power"
	"github.com/oshokin/alarm-clock/internal/platform/wakelock"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/worldclock"

	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
)

// Options controls the clockd process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the configured gRPC address.
	ListenAddress string
	// Database overrides the configured SQLite path.
	Database string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Debug suppresses host power actions.
	Debug bool
	// AllowMultiple skips the single-instance check.
	AllowMultiple bool
}

var (
	// ErrNoServerAddress indicates missing server configuration.
	ErrNoServerAddress = errors.New("no server address configured")
	// errUnknownLogLevel is returned for a log level zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Run starts the daemon and blocks until ctx is cancelled or the server stops.
// Loads configuration first, then restores persisted alarms before serving.
//
//nolint:funlen // Linear start-up sequence reads best in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "clockd")

	// Load configuration first; command line flags override the file.
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errUnknownLogLevel)
	}

	logger.SetLevel(level)

	// Refuse to start next to another clockd, which would ring every alarm twice.
	if !opts.AllowMultiple {
		if err := instance.EnsureSingle(instance.CurrentExecutable()); err != nil {
			return err
		}
	}

	// Release a wake lock left behind by a crashed daemon.
	lock := wakelock.NewFile(cfg.WakeLockFile)
	if err := lock.Recover(ctx); err != nil {
		logger.WarnKV(ctx, "Failed to recover wake lock", "error", err)
	}

	// Open the SQLite store holding alarms and remembered settings.
	store, err := alarms.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open alarm store: %w", err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			logger.WarnKV(ctx, "Failed to close alarm store", "error", err)
		}
	}()

	// Fail early on a misspelled world clock zone.
	if _, err := worldclock.Resolve(cfg.WorldClock.Zones); err != nil {
		return fmt.Errorf("world clock: %w", err)
	}

	// The runners outlive every request; they stop with the daemon.
	runCtx, stopRunners := context.WithCancel(ctx)
	defer stopRunners()

	notifier := notify.Log{}

	var timers *oneshot.Local

	// Create alarm service; its one-shot scheduler needs the service as handler.
	alarmSvc := newAlarmService(&alarmDeps{
		repo:     store,
		player:   audio.NewLogPlayer(),
		notifier: notifier,
		lock:     lock,
		settings: cfg.Alarm,
		timers: func(handler oneshot.Handler) oneshot.Service {
			timers = oneshot.NewLocal(handler, cfg.Alarm.Exact)
			return timers
		},
	})
	defer timers.Close()

	// Start the countdown, stopwatch and sleep timer runners.
	countdownSvc := newCountdownRunner(runCtx, cfg.Tick.Countdown, store, audio.NewLogPlayer(), notifier,
		cfg.Alarm.DefaultSound)
	stopwatchSvc := newStopwatchRunner(runCtx, cfg.Tick.Stopwatch, notifier)
	sleepSvc := newSleepRunner(runCtx, &sleepDeps{
		interval: cfg.Tick.Sleep,
		settings: store,
		player:   audio.NewLogPlayer(),
		notifier: notifier,
		lock:     lock,
		power:    power.Host{Debug: cfg.Debug},
		config:   cfg.Sleep,
		sound:    cfg.Alarm.DefaultSound,
	})

	// Schedule every enabled alarm found in the store.
	if err := alarmSvc.Restore(ctx); err != nil {
		return err
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", cfg.ServerAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ServerAddress, err)
	}

	// Create and configure gRPC server with the clock services.
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor(ctx)))
	pb.RegisterClockServiceServer(grpcServer, api.NewServer(&api.Services{
		Alarms:    alarmSvc,
		Countdown: countdownSvc,
		Stopwatch: stopwatchSvc,
		Sleep:     sleepSvc,
		Zones:     cfg.WorldClock.Zones,
	}))

	// Metrics are optional and served on their own address.
	if cfg.MetricsAddress != "" {
		go func() {
			if err := observability.Serve(runCtx, cfg.MetricsAddress); err != nil {
				logger.ErrorKV(ctx, "Metrics server failed", "error", err)
			}
		}()
	}

	logger.InfoKV(ctx, "Clock daemon listening",
		"listen_address", lis.Addr().String(), "database", cfg.Database, "exact_alarms", cfg.Alarm.Exact)

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()

		// Stop runners after the last request so no state changes under a reply.
		shutdownCtx := context.WithoutCancel(ctx)
		sleepSvc.Close(shutdownCtx)
		countdownSvc.Close(shutdownCtx)
		stopwatchSvc.Close(shutdownCtx)
		alarmSvc.Close(shutdownCtx)
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "Clock daemon stopped")

	return nil
}

// loadConfig reads the settings file and applies command line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.ListenAddress != "" {
		cfg.ServerAddress = opts.ListenAddress
	}

	if cfg.ServerAddress == "" {
		return nil, ErrNoServerAddress
	}

	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.Debug {
		cfg.Debug = true
	}

	return cfg, nil
}
