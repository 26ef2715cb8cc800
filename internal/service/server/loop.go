package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// loop polls step every interval until step returns false or ctx ends.
// Runners bump a generation counter on every start and stop; step returns
// false once the counter moved, so a superseded loop exits on its next tick.
func loop(ctx context.Context, interval time.Duration, step func(now time.Time) bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !step(now) {
				return
			}
		}
	}
}

// remembered reads a duration stored in whole seconds under key.
func remembered(ctx context.Context, settings alarms.Settings, key string) (time.Duration, error) {
	value, err := settings.GetSetting(ctx, key)
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %q: %w", key, err)
	}

	return time.Duration(seconds) * time.Second, nil
}

// remember stores d in whole seconds under key; failures are only logged.
func remember(ctx context.Context, settings alarms.Settings, key string, d time.Duration) {
	value := strconv.FormatInt(int64(d/time.Second), 10)

	if err := settings.SetSetting(ctx, key, value); err != nil {
		logger.WarnKV(ctx, "Failed to remember duration", "key", key, "error", err)
	}
}
