package pb

import (
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// wireMessage is implemented by every ClockService message. Field numbers and
// types follow clock.proto; proto3 zero values are omitted.
type wireMessage interface {
	encode(e *encoder)
	decode(b []byte) error
}

// encoder appends fields to b and keeps the first error.
type encoder struct {
	b   []byte
	err error
}

func (e *encoder) varint(num protowire.Number, v int64) {
	if v == 0 {
		return
	}

	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(v))
}

func (e *encoder) varint32(num protowire.Number, v int32) {
	e.varint(num, int64(v))
}

func (e *encoder) flag(num protowire.Number, v bool) {
	if !v {
		return
	}

	e.optionalFlag(num, &v)
}

// optionalFlag writes v whenever it is set, false included.
func (e *encoder) optionalFlag(num protowire.Number, v *bool) {
	if v == nil {
		return
	}

	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(*v))
}

func (e *encoder) double(num protowire.Number, v float64) {
	if math.Float64bits(v) == 0 {
		return
	}

	e.b = protowire.AppendTag(e.b, num, protowire.Fixed64Type)
	e.b = protowire.AppendFixed64(e.b, math.Float64bits(v))
}

func (e *encoder) text(num protowire.Number, v string) {
	if v == "" {
		return
	}

	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, v)
}

func (e *encoder) texts(num protowire.Number, values []string) {
	for _, v := range values {
		e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
		e.b = protowire.AppendString(e.b, v)
	}
}

// packedInt32 writes values as one packed field.
func (e *encoder) packedInt32(num protowire.Number, values []int32) {
	if len(values) == 0 {
		return
	}

	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, uint64(int64(v)))
	}

	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, packed)
}

// timestamp writes t as a google.protobuf.Timestamp; the zero time is omitted.
func (e *encoder) timestamp(num protowire.Number, t time.Time) {
	if t.IsZero() || e.err != nil {
		return
	}

	data, err := proto.Marshal(timestamppb.New(t))
	if err != nil {
		e.err = err
		return
	}

	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, data)
}

// encodeMessage writes m as a length-delimited field; nil is omitted.
func encodeMessage[T any, P interface {
	*T
	wireMessage
}](e *encoder, num protowire.Number, m P) {
	if m == nil || e.err != nil {
		return
	}

	var sub encoder

	m.encode(&sub)

	if sub.err != nil {
		e.err = sub.err
		return
	}

	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, sub.b)
}

func encodeMessages[T any, P interface {
	*T
	wireMessage
}](e *encoder, num protowire.Number, list []P) {
	for _, m := range list {
		if m == nil {
			m = P(new(T))
		}

		encodeMessage(e, num, m)
	}
}

// fieldDecoder consumes the value of one field and returns its length.
type fieldDecoder func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// decodeFields walks every field of b.
func decodeFields(b []byte, field fieldDecoder) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]

		n, err := field(num, typ, b)
		if err != nil {
			return err
		}

		b = b[n:]
	}

	return nil
}

// skipField consumes a field the message does not know or whose type does not match.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	return n, nil
}

func varintField(num protowire.Number, typ protowire.Type, b []byte, set func(uint64)) (int, error) {
	if typ != protowire.VarintType {
		return skipField(num, typ, b)
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	set(v)

	return n, nil
}

func int64Field(num protowire.Number, typ protowire.Type, b []byte, dst *int64) (int, error) {
	return varintField(num, typ, b, func(v uint64) { *dst = int64(v) })
}

func int32Field(num protowire.Number, typ protowire.Type, b []byte, dst *int32) (int, error) {
	return varintField(num, typ, b, func(v uint64) { *dst = int32(v) }) //nolint:gosec // int32 wire semantics.
}

func boolField(num protowire.Number, typ protowire.Type, b []byte, dst *bool) (int, error) {
	return varintField(num, typ, b, func(v uint64) { *dst = protowire.DecodeBool(v) })
}

func optionalBoolField(num protowire.Number, typ protowire.Type, b []byte, dst **bool) (int, error) {
	return varintField(num, typ, b, func(v uint64) {
		value := protowire.DecodeBool(v)
		*dst = &value
	})
}

func doubleField(num protowire.Number, typ protowire.Type, b []byte, dst *float64) (int, error) {
	if typ != protowire.Fixed64Type {
		return skipField(num, typ, b)
	}

	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	*dst = math.Float64frombits(v)

	return n, nil
}

func bytesField(num protowire.Number, typ protowire.Type, b []byte, set func([]byte) error) (int, error) {
	if typ != protowire.BytesType {
		return skipField(num, typ, b)
	}

	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	if err := set(v); err != nil {
		return 0, err
	}

	return n, nil
}

func stringField(num protowire.Number, typ protowire.Type, b []byte, dst *string) (int, error) {
	return bytesField(num, typ, b, func(v []byte) error {
		*dst = string(v)
		return nil
	})
}

func stringsField(num protowire.Number, typ protowire.Type, b []byte, dst *[]string) (int, error) {
	return bytesField(num, typ, b, func(v []byte) error {
		*dst = append(*dst, string(v))
		return nil
	})
}

// int32sField accepts both the packed and the unpacked encoding.
func int32sField(num protowire.Number, typ protowire.Type, b []byte, dst *[]int32) (int, error) {
	if typ == protowire.VarintType {
		return varintField(num, typ, b, func(v uint64) {
			*dst = append(*dst, int32(v)) //nolint:gosec // int32 wire semantics.
		})
	}

	return bytesField(num, typ, b, func(packed []byte) error {
		for len(packed) > 0 {
			v, n := protowire.ConsumeVarint(packed)
			if n < 0 {
				return protowire.ParseError(n)
			}

			*dst = append(*dst, int32(v)) //nolint:gosec // int32 wire semantics.
			packed = packed[n:]
		}

		return nil
	})
}

func timeField(num protowire.Number, typ protowire.Type, b []byte, dst *time.Time) (int, error) {
	return bytesField(num, typ, b, func(v []byte) error {
		ts := new(timestamppb.Timestamp)
		if err := proto.Unmarshal(v, ts); err != nil {
			return err
		}

		if err := ts.CheckValid(); err != nil {
			return err
		}

		*dst = ts.AsTime()

		return nil
	})
}

func messageField[T any, P interface {
	*T
	wireMessage
}](num protowire.Number, typ protowire.Type, b []byte, dst *P) (int, error) {
	return bytesField(num, typ, b, func(v []byte) error {
		if *dst == nil {
			*dst = P(new(T))
		}

		return (*dst).decode(v)
	})
}

func messagesField[T any, P interface {
	*T
	wireMessage
}](num protowire.Number, typ protowire.Type, b []byte, dst *[]P) (int, error) {
	return bytesField(num, typ, b, func(v []byte) error {
		m := P(new(T))
		if err := m.decode(v); err != nil {
			return err
		}

		*dst = append(*dst, m)

		return nil
	})
}
