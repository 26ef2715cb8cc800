package alarms

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenMemory(context.Background())
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func weekdays(t *testing.T, days ...domain.Weekday) domain.Weekdays {
	t.Helper()

	set, err := domain.NewWeekdays(days...)
	require.NoError(t, err)

	return set
}

// TestOpen_MigratesOnce checks the schema version and that reopening a file does not re-migrate.
func TestOpen_MigratesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "clock.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)

	var version int
	require.NoError(t, s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	require.Equal(t, currentVersion, version)

	_, err = s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 6}, Enabled: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)

	defer func() { _ = s.Close() }()

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, s.migrate(ctx))
}

// TestCreateGet stores every field and reads it back.
func TestCreateGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Alarm{
		Time:    domain.TimeOfDay{Hour: 7, Minute: 5},
		Label:   "work",
		Enabled: true,
		Vibrate: true,
		Repeat:  weekdays(t, domain.Monday, domain.Friday),
		Sound:   "file:///usr/share/sounds/bell.ogg",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Equal(t, "07:05", got.Time.String())
	require.Equal(t, "1,5", got.Repeat.Encode())
	require.True(t, got.Vibrate)

	// Stored as zero-padded text.
	var raw string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT time FROM alarms WHERE id = ?`, created.ID).Scan(&raw))
	require.Equal(t, "07:05", raw)
}

// TestAutoIncrementIDs ensures ids grow and are not reused after delete.
func TestAutoIncrementIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 8}})
	require.NoError(t, err)

	// Same time is allowed.
	second, err := s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 8}})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	require.NoError(t, s.Delete(ctx, second.ID))

	third, err := s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 8}})
	require.NoError(t, err)
	require.Greater(t, third.ID, second.ID)
}

// TestUpdateSetEnabledDelete covers mutations and missing rows.
func TestUpdateSetEnabledDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 6, Minute: 30}, Enabled: true})
	require.NoError(t, err)

	a.Label = "run"
	a.Time = domain.TimeOfDay{Hour: 6, Minute: 45}
	a.Repeat = weekdays(t, domain.Saturday)

	updated, err := s.Update(ctx, a)
	require.NoError(t, err)
	require.Equal(t, "run", updated.Label)
	require.Equal(t, "06:45", updated.Time.String())
	require.True(t, updated.Repeat.Contains(domain.Saturday))

	disabled, err := s.SetEnabled(ctx, a.ID, false)
	require.NoError(t, err)
	require.False(t, disabled.Enabled)

	require.NoError(t, s.Delete(ctx, a.ID))

	_, err = s.Get(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)

	_, err = s.SetEnabled(ctx, a.ID, true)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, a)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestList_OrdersAndSkipsCorruptRows sorts by time and never returns rows with unparseable times.
func TestList_OrdersAndSkipsCorruptRows(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	late, err := s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 22}})
	require.NoError(t, err)

	early, err := s.Create(ctx, &domain.Alarm{Time: domain.TimeOfDay{Hour: 5}})
	require.NoError(t, err)

	// A legacy 12-hour value is recovered by the fallback layouts.
	_, err = s.db.ExecContext(ctx, `INSERT INTO alarms (time) VALUES ('7:15 PM')`)
	require.NoError(t, err)

	res, err := s.db.ExecContext(ctx, `INSERT INTO alarms (time) VALUES ('quarter past')`)
	require.NoError(t, err)

	corruptID, err := res.LastInsertId()
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	ids := make([]int64, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}

	require.NotContains(t, ids, corruptID)
	require.Equal(t, early.ID, list[0].ID)
	require.Equal(t, late.ID, list[1].ID)
	require.Equal(t, "19:15", list[2].Time.String())

	_, err = s.Get(ctx, corruptID)
	require.ErrorIs(t, err, domain.ErrInvalidTime)
}

// TestListEmpty returns a nil slice for an empty table.
func TestListEmpty(t *testing.T) {
	t.Parallel()

	list, err := newTestStore(t).List(context.Background())
	require.NoError(t, err)
	require.Nil(t, list)
}

// TestSettings covers seeded defaults, upserts and missing keys.
func TestSettings(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	v, err := s.GetSetting(ctx, SettingCountdownLast)
	require.NoError(t, err)
	require.Equal(t, "300", v)

	require.NoError(t, s.SetSetting(ctx, SettingCountdownLast, "90"))

	v, err = s.GetSetting(ctx, SettingCountdownLast)
	require.NoError(t, err)
	require.Equal(t, "90", v)

	_, err = s.GetSetting(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
