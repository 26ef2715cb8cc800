package alarms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// ErrNotFound is returned when no row matches the requested id or key.
var ErrNotFound = errors.New("not found")

// Repository defines persistence operations for alarms.
type Repository interface {
	List(ctx context.Context) ([]*domain.Alarm, error)
	Get(ctx context.Context, id int64) (*domain.Alarm, error)
	Create(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error)
	Update(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*domain.Alarm, error)
	Delete(ctx context.Context, id int64) error
}

const selectColumns = `SELECT id, time, label, enabled, vibrate, repeat_days, sound, created_at, updated_at FROM alarms`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// List returns every alarm ordered by time of day, then id.
// Rows whose stored time or repeat days cannot be parsed are skipped and logged;
// they are never scheduled with a guessed time.
func (s *Store) List(ctx context.Context) ([]*domain.Alarm, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY time, id`)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()

	var alarms []*domain.Alarm

	for rows.Next() {
		alarm, err := scanAlarm(rows)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTime) || errors.Is(err, domain.ErrInvalidWeekday) {
				logger.WarnKV(ctx, "Skipping corrupt alarm record", "error", err)
				continue
			}

			return nil, err
		}

		alarms = append(alarms, alarm)
	}

	return alarms, rows.Err()
}

// Get returns the alarm with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*domain.Alarm, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	alarm, err := scanAlarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alarm %d: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	return alarm, nil
}

// Create inserts alarm and returns the stored record with its id.
func (s *Store) Create(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error) {
	now := formatTime(time.Now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO alarms (time, label, enabled, vibrate, repeat_days, sound, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		alarm.Time.String(), alarm.Label, alarm.Enabled, alarm.Vibrate, alarm.Repeat.Encode(), alarm.Sound, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}

	return s.Get(ctx, id)
}

// Update replaces every editable field of the alarm with alarm.ID.
func (s *Store) Update(ctx context.Context, alarm *domain.Alarm) (*domain.Alarm, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alarms SET time = ?, label = ?, enabled = ?, vibrate = ?, repeat_days = ?, sound = ?, updated_at = ?
		 WHERE id = ?`,
		alarm.Time.String(), alarm.Label, alarm.Enabled, alarm.Vibrate, alarm.Repeat.Encode(), alarm.Sound,
		formatTime(time.Now()), alarm.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update alarm %d: %w", alarm.ID, err)
	}

	if err := requireAffected(res, alarm.ID); err != nil {
		return nil, err
	}

	return s.Get(ctx, alarm.ID)
}

// SetEnabled flips the enabled flag of the alarm with the given id.
func (s *Store) SetEnabled(ctx context.Context, id int64, enabled bool) (*domain.Alarm, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alarms SET enabled = ?, updated_at = ? WHERE id = ?`,
		enabled, formatTime(time.Now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("set alarm %d enabled: %w", id, err)
	}

	if err := requireAffected(res, id); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the alarm with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete alarm %d: %w", id, err)
	}

	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("alarm %d: %w", id, err)
	}

	if affected == 0 {
		return fmt.Errorf("alarm %d: %w", id, ErrNotFound)
	}

	return nil
}

func scanAlarm(row rowScanner) (*domain.Alarm, error) {
	var (
		alarm                        domain.Alarm
		timeText, repeatText         string
		createdAtText, updatedAtText string
	)

	err := row.Scan(
		&alarm.ID, &timeText, &alarm.Label, &alarm.Enabled, &alarm.Vibrate,
		&repeatText, &alarm.Sound, &createdAtText, &updatedAtText,
	)
	if err != nil {
		return nil, err
	}

	alarm.Time, err = domain.ParseTimeOfDay(timeText)
	if err != nil {
		return nil, fmt.Errorf("alarm %d: %w", alarm.ID, err)
	}

	alarm.Repeat, err = domain.ParseWeekdays(repeatText)
	if err != nil {
		return nil, fmt.Errorf("alarm %d: %w", alarm.ID, err)
	}

	alarm.CreatedAt, _ = time.Parse(time.RFC3339, createdAtText)
	alarm.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtText)

	return &alarm, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
