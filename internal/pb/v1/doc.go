// Package pb defines the clock.v1.ClockService wire contract: request and
// response messages, the codec they travel with, the service descriptor
// servers register and the client stub.
//
// Messages are plain structs encoded in the protobuf wire format described by
// clock.proto. Timestamps travel as google.protobuf.Timestamp and decode in
// UTC.
package pb
