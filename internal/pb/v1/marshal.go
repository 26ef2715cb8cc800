package pb

import "google.golang.org/protobuf/encoding/protowire"

func (*Empty) encode(*encoder) {}

func (*Empty) decode(b []byte) error {
	return decodeFields(b, skipField)
}

func (m *Alarm) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint(1, m.ID)
	e.text(2, m.Time)
	e.text(3, m.Label)
	e.flag(4, m.Enabled)
	e.flag(5, m.Vibrate)
	e.packedInt32(6, m.Repeat)
	e.text(7, m.Sound)
	e.timestamp(8, m.CreatedAt)
	e.timestamp(9, m.UpdatedAt)
	e.timestamp(10, m.NextFire)
	e.flag(11, m.Ringing)
}

func (m *Alarm) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int64Field(num, typ, b, &m.ID)
		case 2:
			return stringField(num, typ, b, &m.Time)
		case 3:
			return stringField(num, typ, b, &m.Label)
		case 4:
			return boolField(num, typ, b, &m.Enabled)
		case 5:
			return boolField(num, typ, b, &m.Vibrate)
		case 6:
			return int32sField(num, typ, b, &m.Repeat)
		case 7:
			return stringField(num, typ, b, &m.Sound)
		case 8:
			return timeField(num, typ, b, &m.CreatedAt)
		case 9:
			return timeField(num, typ, b, &m.UpdatedAt)
		case 10:
			return timeField(num, typ, b, &m.NextFire)
		case 11:
			return boolField(num, typ, b, &m.Ringing)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *AlarmRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint(1, m.ID)
}

func (m *AlarmRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return int64Field(num, typ, b, &m.ID)
		}

		return skipField(num, typ, b)
	})
}

func (m *ListAlarmsResponse) encode(e *encoder) {
	if m == nil {
		return
	}

	encodeMessages(e, 1, m.Alarms)
}

func (m *ListAlarmsResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return messagesField(num, typ, b, &m.Alarms)
		}

		return skipField(num, typ, b)
	})
}

func (m *SaveAlarmRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	encodeMessage(e, 1, m.Alarm)
}

func (m *SaveAlarmRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return messageField(num, typ, b, &m.Alarm)
		}

		return skipField(num, typ, b)
	})
}

func (m *SetAlarmEnabledRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint(1, m.ID)
	e.flag(2, m.Enabled)
}

func (m *SetAlarmEnabledRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int64Field(num, typ, b, &m.ID)
		case 2:
			return boolField(num, typ, b, &m.Enabled)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *NextAlarmResponse) encode(e *encoder) {
	if m == nil {
		return
	}

	encodeMessage(e, 1, m.Alarm)
	e.timestamp(2, m.At)
}

func (m *NextAlarmResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return messageField(num, typ, b, &m.Alarm)
		case 2:
			return timeField(num, typ, b, &m.At)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *SnoozeAlarmRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint(1, m.ID)
	e.varint32(2, m.Minutes)
}

func (m *SnoozeAlarmRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int64Field(num, typ, b, &m.ID)
		case 2:
			return int32Field(num, typ, b, &m.Minutes)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *SnoozeAlarmResponse) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint(1, m.ID)
	e.timestamp(2, m.At)
}

func (m *SnoozeAlarmResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int64Field(num, typ, b, &m.ID)
		case 2:
			return timeField(num, typ, b, &m.At)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *SetTimerRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint32(1, m.Hours)
	e.varint32(2, m.Minutes)
	e.varint32(3, m.Seconds)
}

func (m *SetTimerRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int32Field(num, typ, b, &m.Hours)
		case 2:
			return int32Field(num, typ, b, &m.Minutes)
		case 3:
			return int32Field(num, typ, b, &m.Seconds)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *TimerState) encode(e *encoder) {
	if m == nil {
		return
	}

	e.text(1, m.State)
	e.varint(2, m.TotalMillis)
	e.varint(3, m.RemainingMillis)
	e.timestamp(4, m.Deadline)
}

func (m *TimerState) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return stringField(num, typ, b, &m.State)
		case 2:
			return int64Field(num, typ, b, &m.TotalMillis)
		case 3:
			return int64Field(num, typ, b, &m.RemainingMillis)
		case 4:
			return timeField(num, typ, b, &m.Deadline)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *Lap) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint32(1, m.Number)
	e.varint(2, m.ElapsedMillis)
	e.varint(3, m.SplitMillis)
}

func (m *Lap) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int32Field(num, typ, b, &m.Number)
		case 2:
			return int64Field(num, typ, b, &m.ElapsedMillis)
		case 3:
			return int64Field(num, typ, b, &m.SplitMillis)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *StopwatchState) encode(e *encoder) {
	if m == nil {
		return
	}

	e.text(1, m.State)
	e.varint(2, m.ElapsedMillis)
	encodeMessages(e, 3, m.Laps)
}

func (m *StopwatchState) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return stringField(num, typ, b, &m.State)
		case 2:
			return int64Field(num, typ, b, &m.ElapsedMillis)
		case 3:
			return messagesField(num, typ, b, &m.Laps)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *StartSleepTimerRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	e.varint(1, m.DurationMillis)
	e.text(2, m.Sound)
	e.optionalFlag(3, m.ShutdownOnFinish)
}

func (m *StartSleepTimerRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return int64Field(num, typ, b, &m.DurationMillis)
		case 2:
			return stringField(num, typ, b, &m.Sound)
		case 3:
			return optionalBoolField(num, typ, b, &m.ShutdownOnFinish)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *SleepTimerState) encode(e *encoder) {
	if m == nil {
		return
	}

	encodeMessage(e, 1, m.Timer)
	e.double(2, m.Volume)
	e.double(3, m.MaxVolume)
	e.varint(4, m.FadeWindowMillis)
	e.flag(5, m.ShutdownOnFinish)
}

func (m *SleepTimerState) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return messageField(num, typ, b, &m.Timer)
		case 2:
			return doubleField(num, typ, b, &m.Volume)
		case 3:
			return doubleField(num, typ, b, &m.MaxVolume)
		case 4:
			return int64Field(num, typ, b, &m.FadeWindowMillis)
		case 5:
			return boolField(num, typ, b, &m.ShutdownOnFinish)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *WorldClockRequest) encode(e *encoder) {
	if m == nil {
		return
	}

	e.texts(1, m.Zones)
}

func (m *WorldClockRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return stringsField(num, typ, b, &m.Zones)
		}

		return skipField(num, typ, b)
	})
}

func (m *ZoneTime) encode(e *encoder) {
	if m == nil {
		return
	}

	e.text(1, m.Zone)
	e.text(2, m.Abbreviation)
	e.timestamp(3, m.Time)
	e.varint32(4, m.OffsetSeconds)
}

func (m *ZoneTime) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return stringField(num, typ, b, &m.Zone)
		case 2:
			return stringField(num, typ, b, &m.Abbreviation)
		case 3:
			return timeField(num, typ, b, &m.Time)
		case 4:
			return int32Field(num, typ, b, &m.OffsetSeconds)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *WorldClockResponse) encode(e *encoder) {
	if m == nil {
		return
	}

	encodeMessages(e, 1, m.Zones)
}

func (m *WorldClockResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return messagesField(num, typ, b, &m.Zones)
		}

		return skipField(num, typ, b)
	})
}
