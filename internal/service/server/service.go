package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/observability"
	"github.com/oshokin/alarm-clock/internal/platform/audio"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
	"github.com/oshokin/alarm-clock/internal/platform/oneshot"
	"github.com/oshokin/alarm-clock/internal/platform/wakelock"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// Kinds of fired alarms reported to metrics.
const (
	kindOneTime   = "one_time"
	kindRepeating = "repeating"
	kindSnooze    = "snooze"
)

// alarmDeps are the collaborators of the alarm service.
type alarmDeps struct {
	repo     alarms.Repository
	player   audio.Player
	notifier notify.Notifier
	lock     wakelock.Lock
	settings config.Alarm
	// timers builds the timer service calling back into the alarm service.
	timers func(oneshot.Handler) oneshot.Service
}

// alarmService keeps the timer service registrations in line with the stored
// alarms and rings them when they fire.
//
// Registrations are keyed by alarm id; a snoozed alarm is registered under
// the negated id so its regular occurrence stays scheduled.
type alarmService struct {
	repo     alarms.Repository
	timers   oneshot.Service
	player   audio.Player
	notifier notify.Notifier
	lock     wakelock.Lock
	settings config.Alarm

	// mu protects scheduled and ringing.
	mu        sync.Mutex
	scheduled map[int64]time.Time
	ringing   map[int64]*time.Timer
}

// newAlarmService wires the alarm service to its own timer service.
func newAlarmService(deps *alarmDeps) *alarmService {
	s := &alarmService{
		repo:      deps.repo,
		player:    deps.player,
		notifier:  deps.notifier,
		lock:      deps.lock,
		settings:  deps.settings,
		scheduled: make(map[int64]time.Time),
		ringing:   make(map[int64]*time.Timer),
	}

	s.timers = deps.timers(s.fire)

	return s
}

// Restore schedules every enabled alarm in the store.
func (s *alarmService) Restore(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("restore alarms: %w", err)
	}

	for _, alarm := range list {
		if err := s.schedule(ctx, alarm); err != nil {
			return err
		}
	}

	logger.InfoKV(ctx, "Alarms restored", "total", len(list), "scheduled", s.scheduledCount())

	return nil
}

// List returns every alarm.
func (s *alarmService) List(ctx context.Context) ([]*domain.Alarm, error) {
	return s.repo.List(ctx)
}

// Get returns one alarm.
func (s *alarmService) Get(ctx context.Context, id int64) (*domain.Alarm, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new alarm and schedules it when enabled.
func (s *alarmService) Create(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error) {
	created, err := s.repo.Create(ctx, alarm)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm created", "id", created.ID, "time", created.Time, "repeat", created.Repeat)

	return created, s.schedule(ctx, created)
}

// Update replaces an alarm and reschedules it.
func (s *alarmService) Update(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error) {
	updated, err := s.repo.Update(ctx, alarm)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm updated", "id", updated.ID, "time", updated.Time, "enabled", updated.Enabled)

	return updated, s.schedule(ctx, updated)
}

// SetEnabled enables or disables an alarm.
func (s *alarmService) SetEnabled(ctx context.Context, id int64, enabled bool) (*domain.Alarm, error) {
	alarm, err := s.repo.SetEnabled(ctx, id, enabled)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm toggled", "id", id, "enabled", enabled)

	return alarm, s.schedule(ctx, alarm)
}

// Delete removes an alarm, its registrations and silences it.
func (s *alarmService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.unschedule(id)
	s.timers.Cancel(-id)
	s.stopRinging(ctx, id)

	logger.InfoKV(ctx, "Alarm deleted", "id", id)

	return nil
}

// Next returns the enabled alarm firing soonest after now, or nil.
func (s *alarmService) Next(ctx context.Context) (*domain.Alarm, time.Time, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	var (
		next *domain.Alarm
		at   time.Time
		now  = time.Now()
	)

	for _, alarm := range list {
		if !alarm.Enabled {
			continue
		}

		fire := alarm.NextFire(now)
		if next == nil || fire.Before(at) {
			next, at = alarm, fire
		}
	}

	return next, at, nil
}

// Ringing reports whether the alarm is ringing.
func (s *alarmService) Ringing(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ringing[id]

	return ok
}

// Dismiss silences a ringing alarm.
func (s *alarmService) Dismiss(ctx context.Context, id int64) error {
	if !s.stopRinging(ctx, id) {
		return fmt.Errorf("alarm %d: %w", id, domain.ErrNotRinging)
	}

	logger.InfoKV(ctx, "Alarm dismissed", "id", id)

	return nil
}

// Snooze silences a ringing alarm and rings it again after d, or after the
// configured snooze when d is not positive.
func (s *alarmService) Snooze(ctx context.Context, id int64, d time.Duration) (time.Time, error) {
	if d <= 0 {
		d = s.settings.Snooze
	}

	if !s.stopRinging(ctx, id) {
		return time.Time{}, fmt.Errorf("alarm %d: %w", id, domain.ErrNotRinging)
	}

	// Snoozes are keyed by the negated id so the alarm's own registration stays.
	at, err := s.register(ctx, time.Now().Add(d), -id)
	if err != nil {
		return time.Time{}, err
	}

	logger.InfoKV(ctx, "Alarm snoozed", "id", id, "until", at)

	return at, nil
}

// Close cancels every registration and silences ringing alarms.
func (s *alarmService) Close(ctx context.Context) {
	s.mu.Lock()
	ids := make([]int64, 0, len(s.ringing)+len(s.scheduled))

	for id := range s.ringing {
		ids = append(ids, id)
	}

	for id := range s.scheduled {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.timers.Cancel(id)
		s.stopRinging(ctx, id)
	}
}

// schedule registers the next occurrence of an enabled alarm, or cancels a disabled one.
func (s *alarmService) schedule(ctx context.Context, alarm *domain.Alarm) error {
	if !alarm.Enabled {
		s.unschedule(alarm.ID)
		return nil
	}

	at, err := s.register(ctx, alarm.NextFire(time.Now()), alarm.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.scheduled[alarm.ID] = at
	count := len(s.scheduled)
	s.mu.Unlock()

	observability.SetAlarmsScheduled(count)

	logger.DebugKV(ctx, "Alarm scheduled", "id", alarm.ID, "at", at)

	return nil
}

// register asks for an exact registration and falls back to an inexact one
// when the timer service refuses it. It returns the instant registered.
func (s *alarmService) register(ctx context.Context, at time.Time, key int64) (time.Time, error) {
	err := s.timers.RegisterExact(ctx, at, key)
	if err == nil {
		observability.RecordRegistration(observability.ModeExact)
		return at, nil
	}

	if !errors.Is(err, oneshot.ErrExactNotPermitted) {
		return time.Time{}, fmt.Errorf("register alarm %d: %w", key, err)
	}

	logger.DebugKV(ctx, "Exact alarms not permitted, using inexact registration", "id", key)

	if err := s.timers.RegisterInexact(ctx, at, s.settings.InexactWindow, key); err != nil {
		return time.Time{}, fmt.Errorf("register alarm %d: %w", key, err)
	}

	observability.RecordRegistration(observability.ModeInexact)

	return oneshot.AlignUp(at, s.settings.InexactWindow), nil
}

func (s *alarmService) unschedule(id int64) {
	s.timers.Cancel(id)

	s.mu.Lock()
	delete(s.scheduled, id)
	count := len(s.scheduled)
	s.mu.Unlock()

	observability.SetAlarmsScheduled(count)
}

func (s *alarmService) scheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.scheduled)
}

// fire is the timer service callback. It rings the alarm under a wake lock,
// then disables a one-time alarm or schedules the next occurrence.
func (s *alarmService) fire(ctx context.Context, key int64) {
	id, snoozed := key, key < 0
	if snoozed {
		id = -key
	}

	ctx = logger.WithKV(ctx, "alarm_id", id)

	// Keep the host awake until the alarm is ringing and rescheduled.
	release, err := s.lock.Acquire(ctx, fmt.Sprintf("alarm-%d", id))
	if err != nil {
		logger.WarnKV(ctx, "Wake lock unavailable", "error", err)
	}
	defer release()

	// This registration is spent.
	if !snoozed {
		s.mu.Lock()
		delete(s.scheduled, id)
		s.mu.Unlock()
	}

	// Reload the alarm: it may have been edited or disabled since it was scheduled.
	alarm, err := s.repo.Get(ctx, id)
	if err != nil {
		logger.ErrorKV(ctx, "Fired alarm cannot be loaded", "error", err)
		return
	}

	if !snoozed && !alarm.Enabled {
		logger.Debug(ctx, "Fired alarm is disabled, ignoring")
		return
	}

	s.ring(ctx, alarm)

	// A snooze leaves the schedule alone; otherwise disable or move to the next occurrence.
	switch {
	case snoozed:
		observability.RecordAlarmFired(kindSnooze)
	case alarm.OneTime():
		observability.RecordAlarmFired(kindOneTime)

		if _, err := s.repo.SetEnabled(ctx, id, false); err != nil {
			logger.ErrorKV(ctx, "Failed to disable one-time alarm", "error", err)
		}

		s.unschedule(id)
	default:
		observability.RecordAlarmFired(kindRepeating)

		if err := s.schedule(ctx, alarm); err != nil {
			logger.ErrorKV(ctx, "Failed to reschedule alarm", "error", err)
		}
	}
}

// ring starts playback and the ring timeout of alarm.
func (s *alarmService) ring(ctx context.Context, alarm *domain.Alarm) {
	// Play the alarm's sound, falling back to the default and the built-in one.
	sound, err := audio.PlayWithFallback(ctx, s.player, alarm.Sound, s.settings.DefaultSound)
	if err != nil {
		logger.ErrorKV(ctx, "Alarm sound unavailable", "error", err)
	}

	// Tell the user which alarm is ringing.
	s.notifier.AlarmRinging(ctx, notify.Ringing{
		AlarmID: alarm.ID,
		Label:   alarm.Label,
		Time:    alarm.Time.String(),
		Sound:   sound,
		Vibrate: alarm.Vibrate,
	})

	if alarm.Vibrate {
		if err := s.notifier.Vibrate(ctx); err != nil {
			logger.WarnKV(ctx, "Vibration failed", "error", err)
		}
	}

	s.notifier.StartForeground(ctx, notify.UnitAlarm, time.Time{})

	// Silence the alarm after the ring timeout unless dismissed or snoozed first.
	timeoutCtx := context.WithoutCancel(ctx)

	// The timer is stored before its callback can take the lock; a previous
	// ring's timer is stopped so it cannot silence this one.
	s.mu.Lock()
	if previous, ok := s.ringing[alarm.ID]; ok {
		previous.Stop()
	}

	var timeout *time.Timer

	timeout = time.AfterFunc(s.settings.RingTimeout, func() {
		s.ringOut(timeoutCtx, alarm.ID, timeout)
	})
	s.ringing[alarm.ID] = timeout
	s.mu.Unlock()
}

// ringOut silences id when timeout still belongs to its current ring.
func (s *alarmService) ringOut(ctx context.Context, id int64, timeout *time.Timer) {
	if s.silence(ctx, id, timeout) {
		logger.InfoKV(ctx, "Alarm rang out", "id", id)
	}
}

// stopRinging silences id and reports whether it was ringing. Playback and
// the foreground display end with the last ringing alarm.
func (s *alarmService) stopRinging(ctx context.Context, id int64) bool {
	return s.silence(ctx, id, nil)
}

// silence stops the ring of id; a non-nil expected must match its ring timer.
func (s *alarmService) silence(ctx context.Context, id int64, expected *time.Timer) bool {
	s.mu.Lock()

	timeout, ok := s.ringing[id]
	if ok && expected != nil && timeout != expected {
		ok = false
	}

	if ok {
		timeout.Stop()
		delete(s.ringing, id)
	}

	silent := len(s.ringing) == 0
	s.mu.Unlock()

	if ok && silent {
		s.player.Stop(ctx)
		s.notifier.StopForeground(ctx, notify.UnitAlarm)
	}

	return ok
}
