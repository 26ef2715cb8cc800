// Package observability exposes the daemon's Prometheus metrics.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/alarm-clock/internal/logger"
)

const namespace = "alarm_clock"

// Registration modes reported by RecordRegistration.
const (
	ModeExact   = "exact"
	ModeInexact = "inexact"
)

// readHeaderTimeout bounds slow metric scrapers.
const readHeaderTimeout = 5 * time.Second

var (
	alarmsFired = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "alarm",
		Name:      "fired_total",
		Help:      "Alarms that started ringing, by kind (one_time, repeating, snooze).",
	}, []string{"kind"})
	alarmsScheduled = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "alarm",
		Name:      "scheduled",
		Help:      "Alarms currently registered with the timer service.",
	})
	registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "alarm",
		Name:      "registrations_total",
		Help:      "Timer service registrations, by mode.",
	}, []string{"mode"})
	unitsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "timer",
		Name:      "completed_total",
		Help:      "Countdowns and sleep timers that ran to zero, by unit.",
	}, []string{"unit"})
	laps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stopwatch",
		Name:      "laps_total",
		Help:      "Stopwatch laps recorded.",
	})
	sleepVolume = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sleep",
		Name:      "volume",
		Help:      "Current sleep timer output volume in [0, 1].",
	})
)

func init() { //nolint:gochecknoinits // Collectors are registered once per process.
	prometheus.MustRegister(alarmsFired, alarmsScheduled, registrations, unitsCompleted, laps, sleepVolume)
}

// RecordAlarmFired counts an alarm that started ringing.
func RecordAlarmFired(kind string) {
	alarmsFired.WithLabelValues(kind).Inc()
}

// SetAlarmsScheduled sets the number of registered alarms.
func SetAlarmsScheduled(n int) {
	alarmsScheduled.Set(float64(n))
}

// RecordRegistration counts a timer service registration.
func RecordRegistration(mode string) {
	registrations.WithLabelValues(mode).Inc()
}

// RecordCompleted counts a unit reaching zero.
func RecordCompleted(unit string) {
	unitsCompleted.WithLabelValues(unit).Inc()
}

// RecordLap counts a stopwatch lap.
func RecordLap() {
	laps.Inc()
}

// SetSleepVolume publishes the sleep timer volume.
func SetSleepVolume(volume float64) {
	sleepVolume.Set(volume)
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), readHeaderTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WarnKV(ctx, "Metrics server shutdown failed", "error", err)
		}
	}()

	logger.InfoKV(ctx, "Serving metrics", "address", addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
