package pb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func roundtrip[T any](t *testing.T, in *T) *T {
	t.Helper()

	var codec Codec

	data, err := codec.Marshal(in)
	require.NoError(t, err)

	out := new(T)
	require.NoError(t, codec.Unmarshal(data, out))

	return out
}

func TestCodec_Alarm(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 6, 30, 15, 500, time.FixedZone("MSK", 3*3600))
	in := &Alarm{
		ID:        -7,
		Time:      "07:05",
		Label:     "work",
		Enabled:   true,
		Repeat:    []int32{1, 5, 7},
		Sound:     "/usr/share/sounds/bell.ogg",
		CreatedAt: created,
		NextFire:  created.Add(24 * time.Hour),
		Ringing:   true,
	}

	out := roundtrip(t, in)
	require.Equal(t, in.ID, out.ID)
	require.Equal(t, in.Time, out.Time)
	require.Equal(t, in.Label, out.Label)
	require.True(t, out.Enabled)
	require.False(t, out.Vibrate)
	require.Equal(t, in.Repeat, out.Repeat)
	require.Equal(t, in.Sound, out.Sound)
	require.True(t, in.CreatedAt.Equal(out.CreatedAt))
	require.Equal(t, time.UTC, out.CreatedAt.Location())
	require.True(t, out.UpdatedAt.IsZero())
	require.True(t, in.NextFire.Equal(out.NextFire))
	require.True(t, out.Ringing)
}

func TestCodec_EmptyMessages(t *testing.T) {
	t.Parallel()

	var codec Codec

	data, err := codec.Marshal(new(Empty))
	require.NoError(t, err)
	require.Empty(t, data)

	data, err = codec.Marshal(new(Alarm))
	require.NoError(t, err)
	require.Empty(t, data, "zero values are omitted")

	require.NoError(t, codec.Unmarshal(nil, new(Alarm)))
}

func TestCodec_NestedMessages(t *testing.T) {
	t.Parallel()

	list := roundtrip(t, &ListAlarmsResponse{Alarms: []*Alarm{{ID: 1}, {ID: 2, Time: "08:00"}}})
	require.Len(t, list.Alarms, 2)
	require.Equal(t, int64(2), list.Alarms[1].ID)
	require.Equal(t, "08:00", list.Alarms[1].Time)

	next := roundtrip(t, &NextAlarmResponse{})
	require.Nil(t, next.Alarm)
	require.True(t, next.At.IsZero())

	sleeping := roundtrip(t, &SleepTimerState{
		Timer:            &TimerState{State: "running", TotalMillis: 60000, RemainingMillis: 1500},
		Volume:           0.25,
		MaxVolume:        0.5,
		FadeWindowMillis: 30000,
		ShutdownOnFinish: true,
	})
	require.Equal(t, "running", sleeping.Timer.State)
	require.Equal(t, int64(1500), sleeping.Timer.RemainingMillis)
	require.InDelta(t, 0.25, sleeping.Volume, 0)
	require.InDelta(t, 0.5, sleeping.MaxVolume, 0)
	require.Equal(t, int64(30000), sleeping.FadeWindowMillis)
	require.True(t, sleeping.ShutdownOnFinish)

	watch := roundtrip(t, &StopwatchState{State: "paused", ElapsedMillis: 9000, Laps: []*Lap{
		{Number: 2, ElapsedMillis: 9000, SplitMillis: 4000},
		{Number: 1, ElapsedMillis: 5000, SplitMillis: 5000},
	}})
	require.Equal(t, []*Lap{
		{Number: 2, ElapsedMillis: 9000, SplitMillis: 4000},
		{Number: 1, ElapsedMillis: 5000, SplitMillis: 5000},
	}, watch.Laps)

	at := time.Date(2026, 3, 2, 3, 30, 0, 0, time.UTC)
	zones := roundtrip(t, &WorldClockResponse{Zones: []*ZoneTime{
		{Zone: "Asia/Kolkata", Abbreviation: "IST", Time: at, OffsetSeconds: 19800},
		{Zone: "America/New_York", Abbreviation: "EST", Time: at, OffsetSeconds: -18000},
	}})
	require.Len(t, zones.Zones, 2)
	require.Equal(t, int32(-18000), zones.Zones[1].OffsetSeconds)
	require.Equal(t, at, zones.Zones[0].Time)

	request := roundtrip(t, &WorldClockRequest{Zones: []string{"UTC", "Europe/Moscow"}})
	require.Equal(t, []string{"UTC", "Europe/Moscow"}, request.Zones)
}

func TestCodec_OptionalFlag(t *testing.T) {
	t.Parallel()

	unset := roundtrip(t, &StartSleepTimerRequest{DurationMillis: 60000})
	require.Nil(t, unset.ShutdownOnFinish)

	off := false
	set := roundtrip(t, &StartSleepTimerRequest{Sound: "rain", ShutdownOnFinish: &off})
	require.NotNil(t, set.ShutdownOnFinish)
	require.False(t, *set.ShutdownOnFinish)
	require.Equal(t, "rain", set.Sound)
}

func TestCodec_NegativeInt32(t *testing.T) {
	t.Parallel()

	out := roundtrip(t, &SnoozeAlarmRequest{ID: 3, Minutes: -1})
	require.Equal(t, int32(-1), out.Minutes)

	timer := roundtrip(t, &SetTimerRequest{Hours: -2, Minutes: 59, Seconds: 1})
	require.Equal(t, &SetTimerRequest{Hours: -2, Minutes: 59, Seconds: 1}, timer)
}

func TestCodec_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	var data []byte

	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendString(data, "from a newer client")
	data = protowire.AppendTag(data, 1, protowire.VarintType)
	data = protowire.AppendVarint(data, 42)
	data = protowire.AppendTag(data, 100, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)
	// Wrong wire type for enabled.
	data = protowire.AppendTag(data, 2, protowire.BytesType)
	data = protowire.AppendString(data, "yes")

	out := new(SetAlarmEnabledRequest)
	require.NoError(t, Codec{}.Unmarshal(data, out))
	require.Equal(t, int64(42), out.ID)
	require.False(t, out.Enabled)
}

func TestCodec_UnpackedRepeat(t *testing.T) {
	t.Parallel()

	var data []byte
	for _, day := range []uint64{2, 4} {
		data = protowire.AppendTag(data, 6, protowire.VarintType)
		data = protowire.AppendVarint(data, day)
	}

	out := new(Alarm)
	require.NoError(t, Codec{}.Unmarshal(data, out))
	require.Equal(t, []int32{2, 4}, out.Repeat)
}

func TestCodec_Malformed(t *testing.T) {
	t.Parallel()

	var data []byte

	data = protowire.AppendTag(data, 3, protowire.BytesType)
	data = protowire.AppendVarint(data, 10)
	data = append(data, "short"...)

	require.Error(t, Codec{}.Unmarshal(data, new(Alarm)))

	// Timestamp nanos out of range.
	var ts []byte

	ts = protowire.AppendTag(ts, 2, protowire.VarintType)
	ts = protowire.AppendVarint(ts, 2_000_000_000)
	data = protowire.AppendTag(nil, 2, protowire.BytesType)
	data = protowire.AppendBytes(data, ts)

	require.Error(t, Codec{}.Unmarshal(data, new(SnoozeAlarmResponse)))
}

func TestCodec_ProtoMessages(t *testing.T) {
	t.Parallel()

	var codec Codec

	at := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	data, err := codec.Marshal(timestamppb.New(at))
	require.NoError(t, err)

	out := new(timestamppb.Timestamp)
	require.NoError(t, codec.Unmarshal(data, out))
	require.Equal(t, at, out.AsTime())

	// A timestamp field decodes as the standalone message does.
	response := new(SnoozeAlarmResponse)
	require.NoError(t, codec.Unmarshal(protowire.AppendBytes(protowire.AppendTag(nil, 2, protowire.BytesType), data), response))
	require.Equal(t, at, response.At)
}

func TestCodec_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Codec{}.Marshal(struct{}{})
	require.ErrorIs(t, err, errUnsupportedMessage)

	require.ErrorIs(t, Codec{}.Unmarshal(nil, new(int)), errUnsupportedMessage)
	require.Equal(t, "proto", Codec{}.Name())
}
