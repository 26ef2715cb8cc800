package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by clockd and clockctl.
type Config struct {
	// ServerAddress is the gRPC address clockd listens on and clockctl dials.
	ServerAddress string `yaml:"server_addr"`
	// Database is the path to the SQLite alarm store.
	Database string `yaml:"database"`
	// Timeout bounds every RPC issued by clockctl.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level written by the daemon.
	LogLevel string `yaml:"log_level"`
	// MetricsAddress enables the Prometheus endpoint when set.
	MetricsAddress string `yaml:"metrics_addr"`
	// WakeLockFile is the marker file held while the daemon must stay awake.
	WakeLockFile string `yaml:"wake_lock_file"`
	// Debug suppresses host power actions.
	Debug bool `yaml:"debug"`

	Tick       Tick       `yaml:"tick"`
	Alarm      Alarm      `yaml:"alarm"`
	Sleep      Sleep      `yaml:"sleep"`
	WorldClock WorldClock `yaml:"world_clock"`
}

// Tick holds the polling interval of each runner.
type Tick struct {
	Countdown time.Duration `yaml:"countdown"`
	Stopwatch time.Duration `yaml:"stopwatch"`
	Sleep     time.Duration `yaml:"sleep"`
}

// Alarm holds ringing and registration settings.
type Alarm struct {
	// Snooze is how far a snoozed alarm is pushed back.
	Snooze time.Duration `yaml:"snooze"`
	// RingTimeout silences an alarm nobody dismissed.
	RingTimeout time.Duration `yaml:"ring_timeout"`
	// DefaultSound is played when an alarm has no sound or its sound is unavailable.
	DefaultSound string `yaml:"default_sound"`
	// Exact allows exact one-shot registrations; false forces the inexact path.
	Exact bool `yaml:"exact"`
	// InexactWindow is the slack granted to inexact registrations.
	InexactWindow time.Duration `yaml:"inexact_window"`
}

// Sleep holds sleep timer settings.
type Sleep struct {
	FadeWindow       time.Duration `yaml:"fade_window"`
	MaxVolume        float64       `yaml:"max_volume"`
	ShutdownOnFinish bool          `yaml:"shutdown_on_finish"`
}

// WorldClock lists the zones reported by the world clock.
type WorldClock struct {
	Zones []string `yaml:"zones"`
}

const (
	// DefaultConfigFilename is the default settings filename.
	DefaultConfigFilename = "alarm-clock-settings.yaml"
	// DefaultDatabaseFilename is the default SQLite filename.
	DefaultDatabaseFilename = "alarm-clock.db"
	// DefaultWakeLockFilename is the default wake lock marker filename.
	DefaultWakeLockFilename = "alarm-clock.wakelock"
	// DefaultServerAddress is used when the settings file names none.
	DefaultServerAddress = "127.0.0.1:50061"
	// DefaultTimeout is the default RPC timeout.
	DefaultTimeout = 5 * time.Second
	// DefaultFilePermissions is the permission used for files the binaries write.
	DefaultFilePermissions = 0o600

	// MinTick and MaxTick bound every runner polling interval.
	MinTick = 30 * time.Millisecond
	MaxTick = time.Second

	defaultCountdownTick = 100 * time.Millisecond
	defaultStopwatchTick = 30 * time.Millisecond
	defaultSleepTick     = time.Second

	defaultSnooze        = 10 * time.Minute
	defaultRingTimeout   = 5 * time.Minute
	defaultSound         = "default"
	defaultInexactWindow = time.Minute
	defaultFadeWindow    = 30 * time.Second
	defaultMaxVolume     = 1.0
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTickOutOfRange is returned when a polling interval is outside [MinTick, MaxTick].
	errTickOutOfRange = errors.New("tick interval out of range")
	// errVolumeOutOfRange is returned when max_volume is outside (0, 1].
	errVolumeOutOfRange = errors.New("max volume must be in (0, 1]")
	// errNegativeDuration is returned for durations that must not be negative.
	errNegativeDuration = errors.New("duration must not be negative")
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		ServerAddress: DefaultServerAddress,
		Alarm: Alarm{
			Exact: true,
		},
	}

	// Defaults never fail validation.
	_ = Validate(cfg) //nolint:errcheck // See above.

	return cfg
}

// Load reads configuration from path and validates it.
// A missing file at the default path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := &Config{
		Alarm: Alarm{
			Exact: true,
		},
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks every field.
//
//nolint:cyclop // One flat pass over the settings reads better than helpers.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if cfg.MetricsAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.Database == "" {
		cfg.Database = DefaultDatabaseFilename
	}

	if cfg.WakeLockFile == "" {
		cfg.WakeLockFile = DefaultWakeLockFilename
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	ticks := []struct {
		name     string
		value    *time.Duration
		fallback time.Duration
	}{
		{"countdown", &cfg.Tick.Countdown, defaultCountdownTick},
		{"stopwatch", &cfg.Tick.Stopwatch, defaultStopwatchTick},
		{"sleep", &cfg.Tick.Sleep, defaultSleepTick},
	}

	for _, tick := range ticks {
		if *tick.value == 0 {
			*tick.value = tick.fallback
		}

		if *tick.value < MinTick || *tick.value > MaxTick {
			return fmt.Errorf("%s tick %s: %w", tick.name, *tick.value, errTickOutOfRange)
		}
	}

	if cfg.Alarm.Snooze < 0 || cfg.Alarm.RingTimeout < 0 || cfg.Alarm.InexactWindow < 0 || cfg.Sleep.FadeWindow < 0 {
		return errNegativeDuration
	}

	if cfg.Alarm.Snooze == 0 {
		cfg.Alarm.Snooze = defaultSnooze
	}

	if cfg.Alarm.RingTimeout == 0 {
		cfg.Alarm.RingTimeout = defaultRingTimeout
	}

	if cfg.Alarm.InexactWindow == 0 {
		cfg.Alarm.InexactWindow = defaultInexactWindow
	}

	if cfg.Alarm.DefaultSound == "" {
		cfg.Alarm.DefaultSound = defaultSound
	}

	if cfg.Sleep.FadeWindow == 0 {
		cfg.Sleep.FadeWindow = defaultFadeWindow
	}

	if cfg.Sleep.MaxVolume == 0 {
		cfg.Sleep.MaxVolume = defaultMaxVolume
	}

	if cfg.Sleep.MaxVolume < 0 || cfg.Sleep.MaxVolume > 1 {
		return errVolumeOutOfRange
	}

	if len(cfg.WorldClock.Zones) == 0 {
		cfg.WorldClock.Zones = []string{"UTC"}
	}

	for _, zone := range cfg.WorldClock.Zones {
		if _, err := time.LoadLocation(zone); err != nil {
			return fmt.Errorf("invalid world clock zone %q: %w", zone, err)
		}
	}

	return nil
}
