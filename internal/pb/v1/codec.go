package pb

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/encoding"
	// Registered first so the codec below replaces it.
	_ "google.golang.org/grpc/encoding/proto"
	"google.golang.org/protobuf/proto"
)

// CodecName is the content subtype the messages are exchanged with. It is
// gRPC's default, so plain clients need no call options.
const CodecName = "proto"

// Codec marshals ClockService messages in the protobuf wire format and hands
// generated protobuf messages to proto.
type Codec struct{}

var errUnsupportedMessage = errors.New("not a protobuf message")

func init() { //nolint:gochecknoinits // Codecs must be registered before any connection is created.
	encoding.RegisterCodec(Codec{})
}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		e := encoder{b: []byte{}}

		m.encode(&e)

		if e.err != nil {
			return nil, fmt.Errorf("marshal %T: %w", v, e.err)
		}

		return e.b, nil
	case proto.Message:
		data, err := proto.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("marshal %T: %w", v, err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("marshal %T: %w", v, errUnsupportedMessage)
	}
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	var err error

	switch m := v.(type) {
	case wireMessage:
		err = m.decode(data)
	case proto.Message:
		err = proto.Unmarshal(data, m)
	default:
		err = errUnsupportedMessage
	}

	if err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}

	return nil
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return CodecName
}
