package server

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// memoryRepository is an in-memory alarms.Repository and alarms.Settings.
type memoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	alarms   map[int64]*domain.Alarm
	settings map[string]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		alarms:   make(map[int64]*domain.Alarm),
		settings: make(map[string]string),
	}
}

func (m *memoryRepository) List(context.Context) ([]*domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*domain.Alarm, 0, len(m.alarms))
	for _, a := range m.alarms {
		list = append(list, a.Clone())
	}

	slices.SortFunc(list, func(a, b *domain.Alarm) int { return int(a.ID - b.ID) })

	return list, nil
}

func (m *memoryRepository) Get(_ context.Context, id int64) (*domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.alarms[id]
	if !ok {
		return nil, fmt.Errorf("alarm %d: %w", id, alarms.ErrNotFound)
	}

	return a.Clone(), nil
}

func (m *memoryRepository) Create(_ context.Context, alarm *domain.Alarm) (*domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++

	stored := alarm.Clone()
	stored.ID = m.nextID
	m.alarms[stored.ID] = stored

	return stored.Clone(), nil
}

func (m *memoryRepository) Update(_ context.Context, alarm *domain.Alarm) (*domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.alarms[alarm.ID]; !ok {
		return nil, fmt.Errorf("alarm %d: %w", alarm.ID, alarms.ErrNotFound)
	}

	m.alarms[alarm.ID] = alarm.Clone()

	return alarm.Clone(), nil
}

func (m *memoryRepository) SetEnabled(_ context.Context, id int64, enabled bool) (*domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.alarms[id]
	if !ok {
		return nil, fmt.Errorf("alarm %d: %w", id, alarms.ErrNotFound)
	}

	a.Enabled = enabled

	return a.Clone(), nil
}

func (m *memoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.alarms[id]; !ok {
		return fmt.Errorf("alarm %d: %w", id, alarms.ErrNotFound)
	}

	delete(m.alarms, id)

	return nil
}

func (m *memoryRepository) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.settings[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, alarms.ErrNotFound)
	}

	return v, nil
}

func (m *memoryRepository) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[key] = value

	return nil
}

func (m *memoryRepository) setting(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.settings[key]
}

// recordingNotifier records every notification.
type recordingNotifier struct {
	mu         sync.Mutex
	foreground map[notify.Unit]bool
	ringing    []notify.Ringing
	finished   []notify.Unit
	vibrations int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{foreground: make(map[notify.Unit]bool)}
}

func (n *recordingNotifier) StartForeground(_ context.Context, unit notify.Unit, _ time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.foreground[unit] = true
}

func (n *recordingNotifier) StopForeground(_ context.Context, unit notify.Unit) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.foreground[unit] = false
}

func (n *recordingNotifier) AlarmRinging(_ context.Context, ringing notify.Ringing) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.ringing = append(n.ringing, ringing)
}

func (n *recordingNotifier) Vibrate(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.vibrations++

	return nil
}

func (n *recordingNotifier) Finished(_ context.Context, unit notify.Unit) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.finished = append(n.finished, unit)
}

func (n *recordingNotifier) inForeground(unit notify.Unit) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.foreground[unit]
}

func (n *recordingNotifier) rings() []notify.Ringing {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.ringing)
}

func (n *recordingNotifier) finishedUnits() []notify.Unit {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.finished)
}

// countingLock is a wakelock.Lock counting active holders.
type countingLock struct {
	mu       sync.Mutex
	held     int
	acquired int
}

func (l *countingLock) Acquire(context.Context, string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held++
	l.acquired++

	var once sync.Once

	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()

			l.held--
		})
	}, nil
}

func (l *countingLock) counts() (held, acquired int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.held, l.acquired
}

// recordingPower is a power.Controller counting shutdowns.
type recordingPower struct {
	mu        sync.Mutex
	shutdowns int
}

func (p *recordingPower) Shutdown(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.shutdowns++

	return nil
}

func (p *recordingPower) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.shutdowns
}
